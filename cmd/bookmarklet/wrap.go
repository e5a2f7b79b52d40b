package main

import (
	"context"
	"fmt"
	"path/filepath"

	bookmarklet "github.com/alnah/go-bookmarklet"
	"github.com/alnah/go-bookmarklet/internal/config"
)

// parseExternalFlags parses template/stylesheet flags and returns the inputs.
func parseExternalFlags(kind string, args []string) (*externalFlags, []string, error) {
	f := &externalFlags{}
	positional, err := parseFlagSet(newExternalFlagSet(commandForKind(kind), f), args)
	if err != nil {
		return nil, nil, err
	}
	return f, positional, nil
}

// commandForKind maps an asset kind to its CLI command name.
func commandForKind(kind string) string {
	if kind == bookmarklet.KindStylesheets {
		return "stylesheet"
	}
	return "template"
}

// baseForKind returns the configured naming base for kind.
func baseForKind(kind string, cfg *config.Config) string {
	if kind == bookmarklet.KindStylesheets {
		return cfg.Assets.StylesheetsBase
	}
	return cfg.Assets.TemplatesBase
}

// runExternal wraps template or stylesheet files into artoo registrations.
func runExternal(ctx context.Context, kind string, args []string, env *Environment) error {
	f, inputs, err := parseExternalFlags(kind, args)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return fmt.Errorf("%w: %s needs at least one file or directory", ErrUsage, commandForKind(kind))
	}

	s, err := newSession(f.common, env, func(cfg *config.Config) error {
		mergeAssetFlags(&f.assets, cfg)
		if f.base != "" {
			if kind == bookmarklet.KindStylesheets {
				cfg.Assets.StylesheetsBase = f.base
			} else {
				cfg.Assets.TemplatesBase = f.base
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	task := bookmarklet.NewExternalTask(kind, baseForKind(kind, s.cfg)).WithLogger(s.logger)
	target := resolveOutputTarget(f.out.output, s.cfg.Output.Dir, ".js")

	wrap := func() error {
		files, err := collectInputs(s.cwd, inputs, isWrappable, env.Stdin)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			return fmt.Errorf("%w: no files found in %v", ErrReadInput, inputs)
		}
		results := bookmarklet.Run(ctx, task, bookmarklet.Files(files...))
		return writeResults(results, target, s.cwd, wrappedName, f.common.quiet, env)
	}
	if !f.out.watch {
		return wrap()
	}

	if err := wrap(); err != nil {
		printError(env, err, "")
	}
	return watch(ctx, watchPaths(s, inputs), isWrappable, s.logger, env, wrap)
}

// wrappedName names the script wrapping f: "list.tpl" gives "list.tpl.js".
func wrappedName(f *bookmarklet.File) string {
	return filepath.Base(f.Path) + ".js"
}
