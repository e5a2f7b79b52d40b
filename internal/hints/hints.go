// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"path/filepath"
	"strings"
)

// ForInvalidVersion returns a hint listing accepted version forms.
func ForInvalidVersion() string {
	return format(`use "latest", "edge" or a release number like "0.3.4"`)
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-bookmarklet/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(filepath.ToSlash(p), "/go-bookmarklet/") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForStreaming returns a hint for files that only expose a stream.
func ForStreaming() string {
	return format("read the file into memory before passing it to the task")
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForLoadingText returns a hint for bookmarklets broken by unescaped quotes.
func ForLoadingText(loadingText string) string {
	if !strings.ContainsAny(loadingText, `'\`) {
		return ""
	}
	return format(`--loading-text is inserted as-is; escape quotes as \' or drop them`)
}

// ForMinifier returns hints listing available minifier engines.
func ForMinifier(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForAssetPath returns hints for invalid asset directories.
func ForAssetPath() string {
	return format("the directory should contain templates/ and/or defaults/")
}

// ForDateFormat returns a hint listing date format tokens and presets.
func ForDateFormat() string {
	return format("use auto, auto:<format> with YYYY, MM, DD tokens, or auto:iso|european|us|long")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
