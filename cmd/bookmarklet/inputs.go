package main

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	bookmarklet "github.com/alnah/go-bookmarklet"
)

// stdinArg reads the input from Stdin.
const stdinArg = "-"

// absPath resolves p against cwd.
func absPath(cwd, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(cwd, p)
}

// isScript matches JavaScript sources.
func isScript(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".js") &&
		!strings.HasSuffix(path, ".bookmark.js")
}

// isWrappable matches template and stylesheet sources: anything but hidden
// files and scripts, which include the wrapped outputs.
func isWrappable(path string) bool {
	name := filepath.Base(path)
	return !strings.HasPrefix(name, ".") && !strings.EqualFold(filepath.Ext(name), ".js")
}

// collectInputs reads every file named by args. Directories are walked and
// filtered with match; their files keep the directory as Base.
func collectInputs(cwd string, args []string, match func(string) bool, stdin io.Reader) ([]*bookmarklet.File, error) {
	var files []*bookmarklet.File
	for _, arg := range args {
		if arg == stdinArg {
			data, err := io.ReadAll(stdin)
			if err != nil {
				return nil, fmt.Errorf("%w: stdin: %v", ErrReadInput, err)
			}
			files = append(files, bookmarklet.NewFile(cwd, cwd, filepath.Join(cwd, "stdin.js"), data))
			continue
		}

		path := absPath(cwd, arg)
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrReadInput, err)
		}

		if !info.IsDir() {
			f, err := readInput(cwd, filepath.Dir(path), path)
			if err != nil {
				return nil, err
			}
			files = append(files, f)
			continue
		}

		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !match(p) {
				return nil
			}
			f, err := readInput(cwd, path, p)
			if err != nil {
				return err
			}
			files = append(files, f)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("%w: walking %s: %v", ErrReadInput, arg, err)
		}
	}
	return files, nil
}

func readInput(cwd, base, path string) (*bookmarklet.File, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadInput, err)
	}
	return bookmarklet.NewFile(cwd, base, path, data), nil
}

// readSource reads a single positional input, or returns "" for none.
func readSource(cwd string, args []string, stdin io.Reader) (path, content string, err error) {
	switch len(args) {
	case 0:
		return "", "", nil
	case 1:
	default:
		return "", "", fmt.Errorf("%w: expected one input, got %d", ErrUsage, len(args))
	}

	if args[0] == stdinArg {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", "", fmt.Errorf("%w: stdin: %v", ErrReadInput, err)
		}
		return "stdin", string(data), nil
	}

	path = absPath(cwd, args[0])
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrReadInput, err)
	}
	return path, string(data), nil
}
