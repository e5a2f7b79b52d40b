package bookmarklet

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
)

// BookmarkletTask renders every buffered file into a bookmarklet.
type BookmarkletTask struct {
	opts     Options
	renderer *Renderer
}

// NewBookmarkletTask resolves opts against defaults once and builds the
// renderer. The version is only checked when files are processed.
func NewBookmarkletTask(opts Options, defaults Defaults, rendererOpts ...RendererOption) (*BookmarkletTask, error) {
	r, err := NewRenderer(rendererOpts...)
	if err != nil {
		return nil, err
	}
	return &BookmarkletTask{opts: Resolve(opts, defaults), renderer: r}, nil
}

// Options returns a copy of the resolved options.
func (t *BookmarkletTask) Options() Options {
	out := t.opts
	out.Settings = maps.Clone(t.opts.Settings)
	return out
}

// Process implements Task.
func (t *BookmarkletTask) Process(ctx context.Context, f *File) (*File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	// Checked before looking at the content so every file reports it.
	if !IsValidVersion(t.opts.Version) {
		return nil, newPluginError(fmt.Errorf("%w: %q", ErrInvalidVersion, t.opts.Version))
	}

	switch c := f.Contents.(type) {
	case nil, NullContents:
		return f, nil
	case BufferContents:
		out, err := t.renderer.Render(string(c), t.opts)
		if err != nil {
			return nil, err
		}
		return f.withContents(BufferContents(out)), nil
	case StreamContents:
		return nil, newPluginError(ErrStreamingNotSupported)
	default:
		return nil, fmt.Errorf("unsupported contents %T", c)
	}
}

// ExternalTask wraps buffered files as artoo.js registry entries.
type ExternalTask struct {
	kind   string
	base   string
	logger *slog.Logger
}

// NewTemplateTask registers files under artoo.templates. Names are relative
// to <cwd>/<base> when it exists; an empty base means "templates".
func NewTemplateTask(base string) *ExternalTask {
	return NewExternalTask(KindTemplates, base)
}

// NewStylesheetTask registers files under artoo.stylesheets. Names are
// relative to <cwd>/<base> when it exists; an empty base means "stylesheets".
func NewStylesheetTask(base string) *ExternalTask {
	return NewExternalTask(KindStylesheets, base)
}

// NewExternalTask registers files under artoo.<kind>.
func NewExternalTask(kind, base string) *ExternalTask {
	if base == "" {
		base = kind
	}
	return &ExternalTask{
		kind:   kind,
		base:   base,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithLogger returns a copy of t logging asset names at debug level.
func (t *ExternalTask) WithLogger(l *slog.Logger) *ExternalTask {
	out := *t
	if l != nil {
		out.logger = l
	}
	return &out
}

// Kind returns the registry kind.
func (t *ExternalTask) Kind() string { return t.kind }

// Process implements Task.
func (t *ExternalTask) Process(ctx context.Context, f *File) (*File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch c := f.Contents.(type) {
	case nil, NullContents:
		return f, nil
	case BufferContents:
		name, err := AssetName(f.Cwd, f.Path, t.base)
		if err != nil {
			return nil, newPluginError(err)
		}
		t.logger.Debug("wrapping asset", "kind", t.kind, "name", name, "path", f.Path)
		return f.withContents(BufferContents(Wrap(t.kind, string(c), name))), nil
	case StreamContents:
		return nil, newPluginError(ErrStreamingNotSupported)
	default:
		return nil, fmt.Errorf("unsupported contents %T", c)
	}
}

var (
	_ Task = (*BookmarkletTask)(nil)
	_ Task = (*ExternalTask)(nil)
)
