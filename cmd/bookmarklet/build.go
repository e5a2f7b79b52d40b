package main

import (
	"context"
	"fmt"
	"iter"

	bookmarklet "github.com/alnah/go-bookmarklet"
	"github.com/alnah/go-bookmarklet/internal/config"
)

// parseBuildFlags parses build flags and returns the input paths.
func parseBuildFlags(args []string) (*buildFlags, []string, error) {
	f := &buildFlags{}
	positional, err := parseFlagSet(newBuildFlagSet(f), args)
	if err != nil {
		return nil, nil, err
	}
	return f, positional, nil
}

// runBuild builds one bookmarklet per input, or a blank one without inputs.
func runBuild(ctx context.Context, args []string, env *Environment) error {
	f, inputs, err := parseBuildFlags(args)
	if err != nil {
		return err
	}

	s, err := newSession(f.common, env, func(cfg *config.Config) error {
		mergeAssetFlags(&f.assets, cfg)
		return mergeBookmarkletFlags(&f.bookmarklet, cfg)
	})
	if err != nil {
		return err
	}

	target := resolveOutputTarget(f.out.output, s.cfg.Output.Dir, ".js")
	if target.file != "" && len(inputs) > 1 {
		return fmt.Errorf("%w: --output %s names a file but %d inputs were given", ErrUsage, target.file, len(inputs))
	}

	build := func() error {
		return buildOnce(ctx, s, inputs, target, f.common.quiet, env)
	}
	if !f.out.watch {
		return build()
	}

	if err := build(); err != nil {
		printError(env, err, s.cfg.Bookmarklet.LoadingText)
	}
	return watch(ctx, watchPaths(s, inputs), isScript, s.logger, env, build)
}

// buildOnce runs the bookmarklet task over the inputs and writes results.
func buildOnce(ctx context.Context, s *session, inputs []string, target outputTarget, quiet bool, env *Environment) error {
	task, err := bookmarklet.NewBookmarkletTask(s.options(), s.defaults, s.rendererOptions()...)
	if err != nil {
		return err
	}

	var files iter.Seq[*bookmarklet.File]
	if len(inputs) == 0 {
		files = bookmarklet.Blank(s.cfg.Output.Filename)
	} else {
		read, err := collectInputs(s.cwd, inputs, isScript, env.Stdin)
		if err != nil {
			return err
		}
		if len(read) == 0 {
			return fmt.Errorf("%w: no .js files found in %v", ErrReadInput, inputs)
		}
		files = bookmarklet.Files(read...)
	}

	results := bookmarklet.Run(ctx, task, files)
	return writeResults(results, target, s.cwd, bookmarkName, quiet, env)
}
