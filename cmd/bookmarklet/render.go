package main

import (
	"context"
	"fmt"

	bookmarklet "github.com/alnah/go-bookmarklet"
	"github.com/alnah/go-bookmarklet/internal/config"
	"github.com/alnah/go-bookmarklet/internal/pipeline"
	"github.com/alnah/go-bookmarklet/internal/ui"
)

// Values accepted by --color.
const (
	colorAuto   = "auto"
	colorAlways = "always"
	colorNever  = "never"
)

// parseRenderFlags parses render flags and returns the optional input.
func parseRenderFlags(args []string) (*renderFlags, []string, error) {
	f := &renderFlags{}
	positional, err := parseFlagSet(newRenderFlagSet(f), args)
	if err != nil {
		return nil, nil, err
	}
	switch f.color {
	case colorAuto, colorAlways, colorNever:
	default:
		return nil, nil, fmt.Errorf("%w: --color must be auto, always or never, got %q", ErrUsage, f.color)
	}
	return f, positional, nil
}

// runRender prints the bookmarklet for an optional input to Stdout.
func runRender(_ context.Context, args []string, env *Environment) error {
	f, inputs, err := parseRenderFlags(args)
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

	_, content, err := readSource(s.cwd, inputs, env.Stdin)
	if err != nil {
		return err
	}

	r, err := bookmarklet.NewRenderer(s.rendererOptions()...)
	if err != nil {
		return err
	}
	opts := s.resolved()

	if !f.pretty {
		line, err := r.Render(content, opts)
		if err != nil {
			return err
		}
		fmt.Fprintln(env.Stdout, line)
		return nil
	}

	src, err := r.RenderSource(content, opts)
	if err != nil {
		return err
	}
	if !shouldHighlight(f.color, env) {
		fmt.Fprintln(env.Stdout, src)
		return nil
	}
	if err := pipeline.HighlightTerminal(env.Stdout, src, f.style); err != nil {
		return fmt.Errorf("highlighting: %w", err)
	}
	fmt.Fprintln(env.Stdout)
	return nil
}

// shouldHighlight resolves --color against Stdout and NO_COLOR.
func shouldHighlight(color string, env *Environment) bool {
	switch color {
	case colorAlways:
		return true
	case colorNever:
		return false
	}
	return ui.New(env.Stdout).Enabled()
}
