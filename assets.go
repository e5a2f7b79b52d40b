package bookmarklet

import (
	"errors"

	"github.com/alnah/go-bookmarklet/internal/assets"
)

// Built-in asset names.
const (
	// DefaultTemplate is the name of the built-in bookmarklet template.
	DefaultTemplate = assets.BookmarkletTemplate

	// InstallTemplate is the name of the built-in install page template.
	InstallTemplate = assets.InstallTemplate
)

// AssetLoader defines the contract for loading templates and the defaults
// document. Implement it to serve assets from elsewhere than disk.
type AssetLoader interface {
	// LoadTemplate loads a template by name (without .tpl extension).
	// Returns ErrTemplateNotFound if the template doesn't exist.
	LoadTemplate(name string) (string, error)

	// LoadDefaults loads a defaults document by name (without .yaml extension).
	// Returns ErrDefaultsNotFound if the document doesn't exist.
	LoadDefaults(name string) ([]byte, error)
}

// NewAssetLoader creates an AssetLoader for the given base path.
// If basePath is empty, returns a loader using only embedded assets.
// If basePath is set, custom assets take precedence with fallback to embedded.
//
// The basePath directory may contain:
//   - templates/{name}.tpl for templates
//   - defaults/{name}.yaml for defaults documents
//
// Returns ErrInvalidAssetPath if basePath is set but not a valid, readable directory.
func NewAssetLoader(basePath string) (AssetLoader, error) {
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return &assetLoaderAdapter{resolver: resolver}, nil
}

// assetLoaderAdapter wraps the internal resolver to return public errors.
type assetLoaderAdapter struct {
	resolver *assets.AssetResolver
}

func (a *assetLoaderAdapter) LoadTemplate(name string) (string, error) {
	content, err := a.resolver.LoadTemplate(name)
	if err != nil {
		return "", convertAssetError(err)
	}
	return content, nil
}

func (a *assetLoaderAdapter) LoadDefaults(name string) ([]byte, error) {
	data, err := a.resolver.LoadDefaults(name)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return data, nil
}

// convertAssetError maps internal asset errors to public errors.
func convertAssetError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, assets.ErrTemplateNotFound):
		return wrapError(ErrTemplateNotFound, err)
	case errors.Is(err, assets.ErrDefaultsNotFound):
		return wrapError(ErrDefaultsNotFound, err)
	case errors.Is(err, assets.ErrInvalidBasePath):
		return wrapError(ErrInvalidAssetPath, err)
	case errors.Is(err, assets.ErrPathTraversal):
		return wrapError(ErrInvalidAssetPath, err)
	case errors.Is(err, assets.ErrInvalidAssetName):
		return wrapError(ErrTemplateNotFound, err) // invalid name means not found
	default:
		return err
	}
}

// wrapError creates an error that keeps the original message and matches
// the public sentinel with errors.Is.
func wrapError(sentinel, original error) error {
	return &wrappedAssetError{sentinel: sentinel, original: original}
}

type wrappedAssetError struct {
	sentinel error
	original error
}

func (e *wrappedAssetError) Error() string {
	return e.original.Error()
}

// Unwrap returns the public sentinel. Internal errors stay hidden.
func (e *wrappedAssetError) Unwrap() error {
	return e.sentinel
}
