package main

import (
	"context"
	"fmt"
	"strings"

	bookmarklet "github.com/alnah/go-bookmarklet"
	"github.com/alnah/go-bookmarklet/internal/jsvm"
)

// parseCheckFlags parses check flags and returns the input.
func parseCheckFlags(args []string) (*checkFlags, []string, error) {
	f := &checkFlags{}
	positional, err := parseFlagSet(newCheckFlagSet(f), args)
	if err != nil {
		return nil, nil, err
	}
	if len(positional) != 1 {
		return nil, nil, fmt.Errorf("%w: check needs exactly one file (or - for stdin)", ErrUsage)
	}
	return f, positional, nil
}

// runCheck verifies that a generated script parses. Bookmarklets are also
// run against a stub page to report what they inject.
func runCheck(ctx context.Context, args []string, env *Environment) error {
	f, inputs, err := parseCheckFlags(args)
	if err != nil {
		return err
	}
	cwd, err := env.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}
	logger := newLogger(env.Stderr, f.common.verbose)

	path, content, err := readSource(cwd, inputs, env.Stdin)
	if err != nil {
		return err
	}
	src := strings.TrimSpace(content)

	if err := bookmarklet.Check(src); err != nil {
		return err
	}
	logger.Debug("syntax ok", "path", path, "bytes", len(src))

	if !strings.HasPrefix(src, "javascript:") {
		if !f.common.quiet {
			fmt.Fprintln(env.Stdout, env.UI.OK("✓")+" "+path+": valid script")
		}
		return nil
	}

	report, err := jsvm.Run(ctx, src, jsvm.RunOptions{ArtooLoaded: f.artooLoaded})
	if err != nil {
		return fmt.Errorf("%w: %v", bookmarklet.ErrInvalidBookmarklet, err)
	}
	if !f.common.quiet {
		printReport(env, path, report)
	}
	return nil
}

// printReport describes what the bookmarklet did on the stub page.
func printReport(env *Environment, path string, r *jsvm.Report) {
	fmt.Fprintln(env.Stdout, env.UI.OK("✓")+" "+path+": valid bookmarklet")
	for _, msg := range r.Logs {
		fmt.Fprintln(env.Stdout, "  logs    "+msg)
	}
	if script := r.Script(); script != nil {
		fmt.Fprintln(env.Stdout, "  injects "+script.Src)
		if settings := script.Attributes["settings"]; settings != "" {
			fmt.Fprintln(env.Stdout, env.UI.Dim("  settings "+settings))
		}
	}
	if r.Reloaded {
		fmt.Fprintln(env.Stdout, "  reloads settings of the loaded artoo.js")
	}
	if r.Executed {
		fmt.Fprintln(env.Stdout, "  runs artoo.exec()")
	}
}
