package bookmarklet

import "strings"

// Version is the library version.
const Version = "0.1.0"

// Version channels accepted besides three-part release numbers.
const (
	VersionLatest = "latest"
	VersionEdge   = "edge"
)

// IsValidVersion reports whether v names a downloadable artoo.js build:
// "latest", "edge", or exactly three non-empty dot-separated parts.
func IsValidVersion(v string) bool {
	if v == VersionLatest || v == VersionEdge {
		return true
	}
	parts := strings.Split(v, ".")
	if len(parts) != 3 {
		return false
	}
	for _, p := range parts {
		if p == "" {
			return false
		}
	}
	return true
}
