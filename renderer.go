package bookmarklet

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"strings"

	"github.com/alnah/go-bookmarklet/internal/assets"
	"github.com/alnah/go-bookmarklet/internal/pipeline"
)

// Prefix starts every bookmarklet.
const Prefix = "javascript: "

// Template placeholders. Custom templates may use any subset of them.
const (
	PlaceholderSettings    = "settings"
	PlaceholderURL         = "url"
	PlaceholderLoadingText = "loadingText"
	PlaceholderRandom      = "random"
)

const randomSnippet = "var r = Math.random(); script.src += '?r=' + r;"

// Renderer turns resolved Options into bookmarklet strings.
// A Renderer is immutable after creation and safe for concurrent use.
type Renderer struct {
	tmpl     *pipeline.Substituter
	minifier Minifier
	logger   *slog.Logger
}

type rendererConfig struct {
	template    string
	hasTemplate bool
	assetLoader AssetLoader
	minifier    Minifier
	logger      *slog.Logger
}

// RendererOption configures a Renderer.
type RendererOption func(*rendererConfig)

// WithTemplate replaces the built-in bookmarklet template.
func WithTemplate(tpl string) RendererOption {
	return func(c *rendererConfig) {
		c.template = tpl
		c.hasTemplate = true
	}
}

// WithAssetLoader loads the "bookmarklet" template through loader.
// Ignored when WithTemplate is also given.
func WithAssetLoader(loader AssetLoader) RendererOption {
	return func(c *rendererConfig) {
		c.assetLoader = loader
	}
}

// WithMinifier sets the minifier. Defaults to esbuild.
func WithMinifier(m Minifier) RendererOption {
	return func(c *rendererConfig) {
		c.minifier = m
	}
}

// WithLogger sets the logger for debug output. Defaults to discarding.
func WithLogger(l *slog.Logger) RendererOption {
	return func(c *rendererConfig) {
		c.logger = l
	}
}

// NewRenderer creates a Renderer. The template is loaded and its
// placeholders checked once, here.
func NewRenderer(opts ...RendererOption) (*Renderer, error) {
	cfg := rendererConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.minifier == nil {
		cfg.minifier = pipeline.EsbuildMinifier{}
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if !cfg.hasTemplate {
		var err error
		if cfg.assetLoader != nil {
			cfg.template, err = cfg.assetLoader.LoadTemplate(DefaultTemplate)
		} else {
			cfg.template, err = assets.LoadTemplate(assets.BookmarkletTemplate)
			err = convertAssetError(err)
		}
		if err != nil {
			return nil, fmt.Errorf("loading bookmarklet template: %w", err)
		}
	}

	tmpl, err := pipeline.NewSubstituter(cfg.template,
		PlaceholderSettings, PlaceholderURL, PlaceholderLoadingText, PlaceholderRandom)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}

	return &Renderer{tmpl: tmpl, minifier: cfg.minifier, logger: cfg.logger}, nil
}

// Render builds the bookmarklet for opts, which should come from Resolve.
// Non-empty content is embedded as settings.eval for the runtime to
// evaluate. An invalid version yields a *PluginError wrapping
// ErrInvalidVersion and no output.
func (r *Renderer) Render(content string, opts Options) (string, error) {
	src, err := r.RenderSource(content, opts)
	if err != nil {
		return "", err
	}

	minified, err := r.minifier.Minify(src)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMinify, err)
	}

	out := Prefix + strings.TrimSpace(minified)
	r.logger.Debug("rendered bookmarklet",
		"version", opts.Version, "url", opts.URL,
		"eval_bytes", len(content), "bytes", len(out))
	return out, nil
}

// RenderSource returns the filled template before minification.
func (r *Renderer) RenderSource(content string, opts Options) (string, error) {
	if !IsValidVersion(opts.Version) {
		return "", newPluginError(fmt.Errorf("%w: %q", ErrInvalidVersion, opts.Version))
	}

	settings := make(map[string]any, len(opts.Settings)+1)
	maps.Copy(settings, opts.Settings)
	if content != "" {
		evalJSON, err := encodeJSON(content)
		if err != nil {
			return "", fmt.Errorf("%w: encoding content: %v", ErrTemplateRender, err)
		}
		settings[evalKey] = evalJSON
	}

	settingsJSON, err := encodeJSON(settings)
	if err != nil {
		return "", fmt.Errorf("%w: encoding settings: %v", ErrTemplateRender, err)
	}

	values := map[string]string{
		PlaceholderSettings:    settingsJSON,
		PlaceholderURL:         opts.URL,
		PlaceholderLoadingText: "",
		PlaceholderRandom:      "",
	}
	if opts.LoadingText != "" {
		values[PlaceholderLoadingText] = "console.log('" + opts.LoadingText + "');"
	}
	if opts.Random {
		values[PlaceholderRandom] = randomSnippet
	}

	src, err := r.tmpl.Execute(values)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}
	return src, nil
}

// encodeJSON encodes v without HTML escaping and without the trailing newline.
func encodeJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
