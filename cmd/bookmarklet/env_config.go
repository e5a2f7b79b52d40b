package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alnah/go-bookmarklet/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // BOOKMARKLET_CONFIG: config file name or path
	Version    string // BOOKMARKLET_VERSION: artoo.js version
	URL        string // BOOKMARKLET_URL: artoo.js location
	Minifier   string // BOOKMARKLET_MINIFIER: minifier engine
	AssetPath  string // BOOKMARKLET_ASSET_PATH: custom asset directory
	OutputDir  string // BOOKMARKLET_OUTPUT_DIR: output directory
}

// knownEnvVars lists valid BOOKMARKLET_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"BOOKMARKLET_CONFIG":     true,
	"BOOKMARKLET_VERSION":    true,
	"BOOKMARKLET_URL":        true,
	"BOOKMARKLET_MINIFIER":   true,
	"BOOKMARKLET_ASSET_PATH": true,
	"BOOKMARKLET_OUTPUT_DIR": true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig() *envConfig {
	return &envConfig{
		ConfigPath: os.Getenv("BOOKMARKLET_CONFIG"),
		Version:    os.Getenv("BOOKMARKLET_VERSION"),
		URL:        os.Getenv("BOOKMARKLET_URL"),
		Minifier:   os.Getenv("BOOKMARKLET_MINIFIER"),
		AssetPath:  os.Getenv("BOOKMARKLET_ASSET_PATH"),
		OutputDir:  os.Getenv("BOOKMARKLET_OUTPUT_DIR"),
	}
}

// warnUnknownEnvVars logs warnings for unrecognized BOOKMARKLET_* variables.
// Helps catch typos like BOOKMARKLET_VERSOIN.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "BOOKMARKLET_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig overrides config values with the environment variables
// that are set. Flags are merged afterwards, giving:
// CLI flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Version != "" {
		cfg.Bookmarklet.Version = env.Version
	}
	if env.URL != "" {
		cfg.Bookmarklet.URL = env.URL
	}
	if env.Minifier != "" {
		cfg.Minify.Engine = env.Minifier
	}
	if env.AssetPath != "" {
		cfg.Assets.BasePath = env.AssetPath
	}
	if env.OutputDir != "" {
		cfg.Output.Dir = env.OutputDir
	}
}
