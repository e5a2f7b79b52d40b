package main

import (
	"bytes"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	bookmarklet "github.com/alnah/go-bookmarklet"
	"github.com/alnah/go-bookmarklet/internal/fileutil"
)

// outputTarget is where results go: one file, or a directory.
// Both empty means next to each input (or the working directory for blanks).
type outputTarget struct {
	dir  string
	file string
}

// resolveOutputTarget reads the -o flag (else configDir). A value with
// extension ext names a single file.
func resolveOutputTarget(flagOutput, configDir, ext string) outputTarget {
	out := flagOutput
	if out == "" {
		out = configDir
	}
	if strings.HasSuffix(out, ext) {
		return outputTarget{file: out}
	}
	return outputTarget{dir: out}
}

// bookmarkName names the bookmarklet built from f.
func bookmarkName(f *bookmarklet.File) string {
	if f.Base == "" {
		return filepath.Base(f.Path)
	}
	return fileutil.ReplaceExt(filepath.Base(f.Path), ".bookmark.js")
}

// pathFor places one result under t. Under an output directory the input's
// path relative to its base is kept.
func (t outputTarget) pathFor(cwd string, f *bookmarklet.File, name string) string {
	if t.file != "" {
		return absPath(cwd, t.file)
	}
	if t.dir == "" {
		if f.Base == "" {
			return filepath.Join(cwd, name)
		}
		return filepath.Join(filepath.Dir(f.Path), name)
	}
	return filepath.Join(absPath(cwd, t.dir), filepath.Dir(f.Relative()), name)
}

// batchError reports failed files. Unwrap exposes each cause to errors.Is,
// so the exit code follows what went wrong.
type batchError struct {
	total int
	errs  []error
}

func (e *batchError) Error() string {
	return fmt.Sprintf("%d of %d file(s) failed", len(e.errs), e.total)
}

func (e *batchError) Unwrap() []error { return e.errs }

// writeResults writes every successful result and prints a status line per
// file. With a single output file, outputs are concatenated in order.
func writeResults(results []bookmarklet.Result, t outputTarget, cwd string, name func(*bookmarklet.File) string, quiet bool, env *Environment) error {
	var (
		errs      []error
		succeeded int
		joined    bytes.Buffer
	)
	fail := func(path string, err error) {
		errs = append(errs, err)
		fileError(env, path, err)
	}

	for _, r := range results {
		if r.Err != nil {
			fail(r.Path, r.Err)
			continue
		}

		if t.file != "" {
			joined.Write(r.File.Bytes())
			joined.WriteByte('\n')
			succeeded++
			continue
		}

		out := t.pathFor(cwd, r.File, name(r.File))
		if err := writeOutput(out, append(slices.Clip(r.File.Bytes()), '\n')); err != nil {
			fail(r.Path, err)
			continue
		}
		succeeded++
		if !quiet {
			fmt.Fprintln(env.Stdout, env.UI.OK("✓")+" Created "+out)
		}
	}

	if t.file != "" && succeeded > 0 {
		out := absPath(cwd, t.file)
		if err := writeOutput(out, joined.Bytes()); err != nil {
			fail(out, err)
			succeeded = 0
		} else if !quiet {
			fmt.Fprintln(env.Stdout, env.UI.OK("✓")+" Created "+out)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintln(env.Stdout, env.UI.Dim(fmt.Sprintf("%d succeeded, %d failed", succeeded, len(results)-succeeded)))
	}
	if len(errs) > 0 {
		return &batchError{total: len(results), errs: errs}
	}
	return nil
}

func writeOutput(path string, data []byte) error {
	if err := fileutil.WriteFileAtomic(path, data); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}
