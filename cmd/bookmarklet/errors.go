package main

import (
	"errors"
	"fmt"

	bookmarklet "github.com/alnah/go-bookmarklet"
	"github.com/alnah/go-bookmarklet/internal/config"
	"github.com/alnah/go-bookmarklet/internal/dateutil"
	"github.com/alnah/go-bookmarklet/internal/hints"
)

// CLI errors.
var (
	ErrUsage       = errors.New("invalid usage")
	ErrReadInput   = errors.New("failed to read input")
	ErrWriteOutput = errors.New("failed to write output")
)

// hintFor returns the hint matching err, or "".
func hintFor(err error, loadingText string) string {
	switch {
	case errors.Is(err, bookmarklet.ErrInvalidVersion):
		return hints.ForInvalidVersion()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(configSearchPaths())
	case errors.Is(err, bookmarklet.ErrStreamingNotSupported):
		return hints.ForStreaming()
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	case errors.Is(err, bookmarklet.ErrUnknownMinifier):
		return hints.ForMinifier(bookmarklet.MinifierEngines())
	case errors.Is(err, bookmarklet.ErrInvalidAssetPath):
		return hints.ForAssetPath()
	case errors.Is(err, dateutil.ErrInvalidDateFormat):
		return hints.ForDateFormat()
	case errors.Is(err, bookmarklet.ErrMinify), errors.Is(err, bookmarklet.ErrInvalidBookmarklet):
		return hints.ForLoadingText(loadingText)
	default:
		return ""
	}
}

// configSearchPaths lists where a config named like the BOOKMARKLET_CONFIG
// value (or "bookmarklet") would be searched.
func configSearchPaths() []string {
	name := loadEnvConfig().ConfigPath
	if name == "" {
		name = "bookmarklet"
	}
	return config.SearchPaths(name)
}

// printError writes err and its hint to env.Stderr.
func printError(env *Environment, err error, loadingText string) {
	fmt.Fprintln(env.Stderr, env.UI.Error("error: "+err.Error())+hintFor(err, loadingText))
}

// fileError prints a per-file failure.
func fileError(env *Environment, path string, err error) {
	fmt.Fprintln(env.Stderr, env.UI.Error("✗ "+path+": "+err.Error()))
}
