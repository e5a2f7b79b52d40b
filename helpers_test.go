package bookmarklet

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/alnah/go-bookmarklet/internal/jsvm"
)

// fakeLoader serves assets from memory.
type fakeLoader struct {
	templates map[string]string
	defaults  map[string][]byte
}

func (f *fakeLoader) LoadTemplate(name string) (string, error) {
	tpl, ok := f.templates[name]
	if !ok {
		return "", ErrTemplateNotFound
	}
	return tpl, nil
}

func (f *fakeLoader) LoadDefaults(name string) ([]byte, error) {
	data, ok := f.defaults[name]
	if !ok {
		return nil, ErrDefaultsNotFound
	}
	return data, nil
}

// stubMinifier returns fixed output.
type stubMinifier struct {
	out string
	err error
}

func (s stubMinifier) Minify(string) (string, error) {
	return s.out, s.err
}

// identityMinifier returns its input.
type identityMinifier struct{}

func (identityMinifier) Minify(src string) (string, error) {
	return src, nil
}

var errStub = errors.New("stub failure")

func testDefaults(t *testing.T) Defaults {
	t.Helper()

	d, err := LoadDefaults(nil)
	if err != nil {
		t.Fatalf("LoadDefaults() error = %v", err)
	}
	return d
}

func newTestRenderer(t *testing.T, opts ...RendererOption) *Renderer {
	t.Helper()

	r, err := NewRenderer(opts...)
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	return r
}

// runBookmarklet evaluates a bookmarklet against the stub page.
func runBookmarklet(t *testing.T, line string, opts jsvm.RunOptions) *jsvm.Report {
	t.Helper()

	report, err := jsvm.Run(context.Background(), line, opts)
	if err != nil {
		t.Fatalf("evaluating %q: %v", line, err)
	}
	return report
}

// injectedSettings decodes the settings attribute of the injected script.
func injectedSettings(t *testing.T, report *jsvm.Report) map[string]any {
	t.Helper()

	script := report.Script()
	if script == nil {
		t.Fatalf("no script injected, appended = %v", report.Appended)
	}
	var settings map[string]any
	if err := json.Unmarshal([]byte(script.Attributes["settings"]), &settings); err != nil {
		t.Fatalf("decoding settings attribute %q: %v", script.Attributes["settings"], err)
	}
	return settings
}
