package main

import (
	"errors"
	"os"

	bookmarklet "github.com/alnah/go-bookmarklet"
	"github.com/alnah/go-bookmarklet/internal/config"
	"github.com/alnah/go-bookmarklet/internal/dateutil"
)

// Exit codes for the bookmarklet CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful build
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrReservedSetting) ||
		errors.Is(err, bookmarklet.ErrInvalidVersion) ||
		errors.Is(err, bookmarklet.ErrUnknownMinifier) ||
		errors.Is(err, bookmarklet.ErrInvalidAssetPath) ||
		errors.Is(err, bookmarklet.ErrTemplateNotFound) ||
		errors.Is(err, bookmarklet.ErrInvalidDefaults) ||
		errors.Is(err, bookmarklet.ErrTemplateRender) ||
		errors.Is(err, dateutil.ErrInvalidDateFormat) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	return ExitGeneral
}
