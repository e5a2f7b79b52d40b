package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-bookmarklet/internal/fileutil"
	"github.com/alnah/go-bookmarklet/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrReservedSetting = errors.New("reserved setting")
)

// Field length limits.
const (
	MaxVersionLength     = 50   // "latest", "0.3.4"
	MaxURLLength         = 2048 // Browser limit
	MaxLoadingTextLength = 200  // Console message
	MaxEngineLength      = 20   // "esbuild", "tdewolff"
	MaxPathLength        = 4096 // PATH_MAX on Linux
	MaxFilenameLength    = 255  // NAME_MAX
	MaxTitleLength       = 100  // Install page title
	MaxDateLength        = 60   // "auto:" plus a date format
)

// userConfigSubdir is the directory under os.UserConfigDir searched by name.
const userConfigSubdir = "go-bookmarklet"

// Config holds all configuration for bookmarklet builds.
type Config struct {
	Bookmarklet BookmarkletConfig `yaml:"bookmarklet"`
	Minify      MinifyConfig      `yaml:"minify"`
	Assets      AssetsConfig      `yaml:"assets"`
	Output      OutputConfig      `yaml:"output"`
	Install     InstallConfig     `yaml:"install"`
}

// BookmarkletConfig mirrors the bookmarklet options.
type BookmarkletConfig struct {
	Version     string         `yaml:"version"`     // "latest", "edge" or "x.y.z" (empty = defaults)
	URL         string         `yaml:"url"`         // Empty = derived from version
	Settings    map[string]any `yaml:"settings"`    // Passed to the artoo.js runtime
	LoadingText string         `yaml:"loadingText"` // Logged while loading
	Random      bool           `yaml:"random"`      // Cache-busting query
}

// MinifyConfig selects the minifier.
type MinifyConfig struct {
	Engine string `yaml:"engine"` // "esbuild" (default), "tdewolff", "none"
}

// AssetsConfig defines asset loading and naming options.
type AssetsConfig struct {
	BasePath        string `yaml:"basePath"`        // Empty = use embedded assets
	TemplatesBase   string `yaml:"templatesBase"`   // Empty = "templates"
	StylesheetsBase string `yaml:"stylesheetsBase"` // Empty = "stylesheets"
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	Dir      string `yaml:"dir"`      // Empty = current directory
	Filename string `yaml:"filename"` // Empty = artoo.bookmark.js for blank builds
}

// InstallConfig defines install page options.
type InstallConfig struct {
	Title       string `yaml:"title"`       // Empty = "artoo.js"
	Description string `yaml:"description"` // Path to a Markdown file (optional)
	Date        string `yaml:"date"`        // Footer date, "auto" or "auto:<format>" (optional)
}

// Validate checks field lengths and reserved settings.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	checks := []struct {
		field string
		value string
		max   int
	}{
		{"bookmarklet.version", c.Bookmarklet.Version, MaxVersionLength},
		{"bookmarklet.url", c.Bookmarklet.URL, MaxURLLength},
		{"bookmarklet.loadingText", c.Bookmarklet.LoadingText, MaxLoadingTextLength},
		{"minify.engine", c.Minify.Engine, MaxEngineLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"assets.templatesBase", c.Assets.TemplatesBase, MaxPathLength},
		{"assets.stylesheetsBase", c.Assets.StylesheetsBase, MaxPathLength},
		{"output.dir", c.Output.Dir, MaxPathLength},
		{"output.filename", c.Output.Filename, MaxFilenameLength},
		{"install.title", c.Install.Title, MaxTitleLength},
		{"install.description", c.Install.Description, MaxPathLength},
		{"install.date", c.Install.Date, MaxDateLength},
	}
	for _, chk := range checks {
		if err := validateFieldLength(chk.field, chk.value, chk.max); err != nil {
			return err
		}
	}

	// eval carries file content and is always set by the renderer.
	if _, ok := c.Bookmarklet.Settings["eval"]; ok {
		return fmt.Errorf("%w: bookmarklet.settings.eval is set from the input file", ErrReservedSetting)
	}

	if strings.ContainsAny(c.Output.Filename, `/\`) {
		return fmt.Errorf("output.filename: must be a file name, got %q", c.Output.Filename)
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a configuration that defers everything to the
// embedded defaults.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := yamlutil.ReadFileStrict(configPath, &cfg); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		var pathErr *os.PathError
		if errors.As(err, &pathErr) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SearchPaths lists the files LoadConfig tries for a config name, in order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, userConfigSubdir, name+ext))
		}
	}
	return paths
}

// resolveConfigPath searches for a config file by name: current directory
// first, then ~/.config/go-bookmarklet/, .yaml before .yml.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
