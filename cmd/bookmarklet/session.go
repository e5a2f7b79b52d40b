package main

import (
	"fmt"
	"log/slog"

	bookmarklet "github.com/alnah/go-bookmarklet"
	"github.com/alnah/go-bookmarklet/internal/config"
)

// session bundles what every command resolves before doing work.
type session struct {
	cfg      *config.Config
	loader   bookmarklet.AssetLoader
	defaults bookmarklet.Defaults
	minifier bookmarklet.Minifier
	logger   *slog.Logger
	cwd      string
}

// newSession loads config, applies env vars then flags (through merge),
// and prepares assets. Precedence: flags > env > config > defaults.
func newSession(common commonFlags, env *Environment, merge func(*config.Config) error) (*session, error) {
	envCfg := loadEnvConfig()
	if !common.quiet {
		warnUnknownEnvVars(env.Stderr)
	}

	cfg, err := loadConfig(common.config, envCfg.ConfigPath)
	if err != nil {
		return nil, err
	}
	applyEnvConfig(envCfg, cfg)
	if merge != nil {
		if err := merge(cfg); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	loader, err := bookmarklet.NewAssetLoader(cfg.Assets.BasePath)
	if err != nil {
		return nil, err
	}
	defaults, err := bookmarklet.LoadDefaults(loader)
	if err != nil {
		return nil, err
	}
	minifier, err := bookmarklet.NewMinifier(cfg.Minify.Engine)
	if err != nil {
		return nil, err
	}
	cwd, err := env.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}

	logger := newLogger(env.Stderr, common.verbose)
	logger.Debug("session ready",
		"engine", cfg.Minify.Engine,
		"assets", cfg.Assets.BasePath,
		"defaultVersion", defaults.Version)

	return &session{
		cfg:      cfg,
		loader:   loader,
		defaults: defaults,
		minifier: minifier,
		logger:   logger,
		cwd:      cwd,
	}, nil
}

// loadConfig loads the config named by the flag, else by BOOKMARKLET_CONFIG.
// Neither set means an empty config.
func loadConfig(flagValue, envValue string) (*config.Config, error) {
	name := flagValue
	if name == "" {
		name = envValue
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadConfig(name)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// options returns the bookmarklet options carried by the config.
func (s *session) options() bookmarklet.Options {
	b := s.cfg.Bookmarklet
	return bookmarklet.Options{
		Version:     b.Version,
		URL:         b.URL,
		Settings:    b.Settings,
		LoadingText: b.LoadingText,
		Random:      b.Random,
	}
}

// resolved returns options merged over the loaded defaults.
func (s *session) resolved() bookmarklet.Options {
	return bookmarklet.Resolve(s.options(), s.defaults)
}

func (s *session) rendererOptions() []bookmarklet.RendererOption {
	return []bookmarklet.RendererOption{
		bookmarklet.WithAssetLoader(s.loader),
		bookmarklet.WithMinifier(s.minifier),
		bookmarklet.WithLogger(s.logger),
	}
}
