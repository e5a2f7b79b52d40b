package bookmarklet

import (
	"context"
	"errors"
	"iter"
	"slices"
)

// Task transforms one file. A returned error concerns that file only.
type Task interface {
	Process(ctx context.Context, f *File) (*File, error)
}

// Result is the outcome of one file in Run. Exactly one of File and Err is set.
type Result struct {
	Path string
	File *File
	Err  error
}

// Run feeds files to task one at a time. A failing file is recorded and
// dropped; the run continues with the next one. When ctx is done the run
// stops and the pending file is reported with the context error.
func Run(ctx context.Context, task Task, files iter.Seq[*File]) []Result {
	var results []Result
	for f := range files {
		if err := ctx.Err(); err != nil {
			results = append(results, Result{Path: f.Path, Err: err})
			break
		}
		out, err := task.Process(ctx, f)
		if err != nil {
			results = append(results, Result{Path: f.Path, Err: err})
			continue
		}
		results = append(results, Result{Path: out.Path, File: out})
	}
	return results
}

// Errors joins the errors of results, or returns nil.
func Errors(results []Result) error {
	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	return errors.Join(errs...)
}

// Blank yields a single file with empty buffered content. An empty filename
// means DefaultBlankName.
func Blank(filename string) iter.Seq[*File] {
	if filename == "" {
		filename = DefaultBlankName
	}
	return Files(&File{Path: filename, Contents: BufferContents{}})
}

// Files yields the given files in order.
func Files(files ...*File) iter.Seq[*File] {
	return slices.Values(files)
}
