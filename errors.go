package bookmarklet

import "errors"

// PluginName identifies errors raised while processing files.
const PluginName = "artoo-bookmarklet"

// Sentinel errors for library operations.
var (
	ErrInvalidVersion        = errors.New("invalid version")
	ErrStreamingNotSupported = errors.New("streaming not supported")
	ErrTemplateRender        = errors.New("bookmarklet template rendering failed")
	ErrMinify                = errors.New("bookmarklet minification failed")
	ErrUnknownMinifier       = errors.New("unknown minifier engine")
	ErrInvalidBookmarklet    = errors.New("generated bookmarklet is not valid javascript")
	ErrInstallPage           = errors.New("install page rendering failed")

	// Asset naming errors.
	ErrAssetName = errors.New("cannot compute asset name")

	// Asset loading errors.
	ErrTemplateNotFound = errors.New("template not found")
	ErrDefaultsNotFound = errors.New("defaults document not found")
	ErrInvalidDefaults  = errors.New("invalid defaults document")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)

// PluginError is the error reported for a file that could not be processed.
// errors.Is matches the wrapped sentinel; errors.As recovers the plugin name.
type PluginError struct {
	Plugin string
	Err    error
}

func (e *PluginError) Error() string {
	return e.Plugin + ": " + e.Err.Error()
}

func (e *PluginError) Unwrap() error {
	return e.Err
}

func newPluginError(err error) *PluginError {
	return &PluginError{Plugin: PluginName, Err: err}
}
