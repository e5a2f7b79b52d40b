package assets

import (
	"embed"
	"fmt"
	"path"
)

//go:embed templates/*
var templates embed.FS

//go:embed defaults/*
var defaults embed.FS

// EmbeddedLoader loads assets compiled into the binary.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadTemplate loads an embedded template by name.
func (e *EmbeddedLoader) LoadTemplate(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	content, err := templates.ReadFile(path.Join(templatesDir, name+templateExt))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}
	return string(content), nil
}

// LoadDefaults loads an embedded defaults document by name.
func (e *EmbeddedLoader) LoadDefaults(name string) ([]byte, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}

	content, err := defaults.ReadFile(path.Join(defaultsDir, name+defaultsExt))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrDefaultsNotFound, name)
	}
	return content, nil
}

var _ AssetLoader = (*EmbeddedLoader)(nil)
