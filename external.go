package bookmarklet

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Registry kinds of the artoo.js runtime.
const (
	KindTemplates   = "templates"
	KindStylesheets = "stylesheets"
)

// Wrap returns a script registering content as artoo.<kind>['<name>'].
// Kind and name are inserted verbatim; content is JSON-encoded.
func Wrap(kind, content, name string) string {
	// A string always encodes.
	contentJSON, _ := encodeJSON(content)
	return ";(function(undefined) {artoo." + kind + "['" + name + "'] = " + contentJSON + ";}).call(this);"
}

// AssetName computes the registry key of the file at path. If <cwd>/<base>
// exists the key is relative to it, otherwise to cwd. Keys always use
// forward slashes. Relative directories resolve against the process
// working directory.
func AssetName(cwd, path, base string) (string, error) {
	root, err := filepath.Abs(filepath.Join(cwd, base))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAssetName, err)
	}
	target, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAssetName, err)
	}

	_, statErr := os.Stat(root)
	switch {
	case statErr == nil:
	case errors.Is(statErr, fs.ErrNotExist):
		if root, err = filepath.Abs(cwd); err != nil {
			return "", fmt.Errorf("%w: %v", ErrAssetName, err)
		}
	default:
		return "", fmt.Errorf("%w: %v", ErrAssetName, statErr)
	}

	rel, err := filepath.Rel(root, target)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAssetName, err)
	}
	return filepath.ToSlash(rel), nil
}
