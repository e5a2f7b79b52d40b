package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	bookmarklet "github.com/alnah/go-bookmarklet"
	"github.com/alnah/go-bookmarklet/internal/config"
	"github.com/alnah/go-bookmarklet/internal/dateutil"
)

// Install page defaults.
const (
	defaultInstallTitle  = "artoo.js"
	defaultInstallOutput = "install.html"
)

// parseInstallFlags parses install flags and returns the optional input.
func parseInstallFlags(args []string) (*installFlags, []string, error) {
	f := &installFlags{}
	positional, err := parseFlagSet(newInstallFlagSet(f), args)
	if err != nil {
		return nil, nil, err
	}
	return f, positional, nil
}

// runInstall writes an HTML page offering the bookmarklet as a link.
func runInstall(ctx context.Context, args []string, env *Environment) error {
	f, inputs, err := parseInstallFlags(args)
	if err != nil {
		return err
	}

	s, err := newSession(f.common, env, func(cfg *config.Config) error {
		mergeAssetFlags(&f.assets, cfg)
		if f.title != "" {
			cfg.Install.Title = f.title
		}
		if f.description != "" {
			cfg.Install.Description = f.description
		}
		if f.date != "" {
			cfg.Install.Date = f.date
		}
		return mergeBookmarkletFlags(&f.bookmarklet, cfg)
	})
	if err != nil {
		return err
	}

	_, content, err := readSource(s.cwd, inputs, env.Stdin)
	if err != nil {
		return err
	}

	r, err := bookmarklet.NewRenderer(s.rendererOptions()...)
	if err != nil {
		return err
	}
	opts := s.resolved()
	line, err := r.Render(content, opts)
	if err != nil {
		return err
	}
	src, err := r.RenderSource(content, opts)
	if err != nil {
		return err
	}

	date, err := dateutil.Resolve(s.cfg.Install.Date, env.Now())
	if err != nil {
		return err
	}

	out := f.output
	if out == "" {
		out = filepath.Join(s.cfg.Output.Dir, defaultInstallOutput)
	}
	out = absPath(s.cwd, out)

	page := bookmarklet.InstallPage{
		Title:       s.cfg.Install.Title,
		Bookmarklet: line,
		Source:      src,
		Date:        date,
		OutputDir:   filepath.Dir(out),
	}
	if page.Title == "" {
		page.Title = defaultInstallTitle
	}
	if s.cfg.Install.Description != "" {
		desc := absPath(s.cwd, s.cfg.Install.Description)
		data, err := os.ReadFile(desc) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("%w: description: %v", ErrReadInput, err)
		}
		page.Description = string(data)
		page.DescriptionDir = filepath.Dir(desc)
	}

	html, err := bookmarklet.RenderInstallPage(ctx, page, s.loader)
	if err != nil {
		return err
	}

	if err := writeOutput(out, []byte(html)); err != nil {
		return err
	}
	if !f.common.quiet {
		fmt.Fprintln(env.Stdout, env.UI.OK("✓")+" Created "+out)
	}
	return nil
}
