package assets

import "errors"

// AssetResolver tries a custom directory first and falls back to the
// embedded assets when an asset is missing there.
type AssetResolver struct {
	custom   AssetLoader // nil if no custom path configured
	embedded AssetLoader
}

// NewAssetResolver creates an AssetResolver.
// An empty customBasePath means embedded assets only.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	resolver := &AssetResolver{embedded: NewEmbeddedLoader()}

	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		resolver.custom = fsLoader
	}
	return resolver, nil
}

// LoadTemplate loads a template, custom directory first.
func (r *AssetResolver) LoadTemplate(name string) (string, error) {
	return withFallback(r, func(l AssetLoader) (string, error) {
		return l.LoadTemplate(name)
	})
}

// LoadDefaults loads a defaults document, custom directory first.
func (r *AssetResolver) LoadDefaults(name string) ([]byte, error) {
	return withFallback(r, func(l AssetLoader) ([]byte, error) {
		return l.LoadDefaults(name)
	})
}

// HasCustomLoader reports whether a custom asset directory is configured.
func (r *AssetResolver) HasCustomLoader() bool {
	return r.custom != nil
}

func withFallback[T any](r *AssetResolver, load func(AssetLoader) (T, error)) (T, error) {
	if r.custom == nil {
		return load(r.embedded)
	}

	v, err := load(r.custom)
	if err == nil {
		return v, nil
	}

	// Only "not found" falls back; validation and I/O errors surface.
	if !isNotFoundError(err) {
		var zero T
		return zero, err
	}
	return load(r.embedded)
}

func isNotFoundError(err error) bool {
	return errors.Is(err, ErrTemplateNotFound) || errors.Is(err, ErrDefaultsNotFound)
}

var _ AssetLoader = (*AssetResolver)(nil)
