package bookmarklet

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestRenderInstallPage(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t)
	opts := Resolve(Options{}, testDefaults(t))
	line, err := r.Render("", opts)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	src, err := r.RenderSource("", opts)
	if err != nil {
		t.Fatalf("RenderSource() error = %v", err)
	}

	t.Run("embedded template", func(t *testing.T) {
		t.Parallel()

		page, err := RenderInstallPage(context.Background(), InstallPage{
			Title:       "artoo",
			Bookmarklet: line,
			Description: "Drag me.",
			Source:      src,
		}, nil)
		if err != nil {
			t.Fatalf("RenderInstallPage() error = %v", err)
		}
		for _, want := range []string{"<title>artoo</title>", `href="javascript:`, "Drag me.", "Source</h2>"} {
			if !strings.Contains(page, want) {
				t.Errorf("page missing %q", want)
			}
		}
	})

	t.Run("custom loader", func(t *testing.T) {
		t.Parallel()

		loader := &fakeLoader{templates: map[string]string{InstallTemplate: `<a href="{{.Href}}">{{.Title}}</a>`}}
		page, err := RenderInstallPage(context.Background(), InstallPage{Title: "go", Bookmarklet: "javascript:void(0)"}, loader)
		if err != nil {
			t.Fatalf("RenderInstallPage() error = %v", err)
		}
		if page != `<a href="javascript:void%280%29">go</a>` && page != `<a href="javascript:void(0)">go</a>` {
			t.Errorf("page = %q", page)
		}
	})

	t.Run("errors", func(t *testing.T) {
		t.Parallel()

		_, err := RenderInstallPage(context.Background(), InstallPage{Title: "x", Bookmarklet: "http://x"}, nil)
		if !errors.Is(err, ErrInstallPage) {
			t.Errorf("non javascript link: error = %v, want ErrInstallPage", err)
		}

		_, err = RenderInstallPage(context.Background(), InstallPage{Bookmarklet: line}, &fakeLoader{})
		if !errors.Is(err, ErrTemplateNotFound) {
			t.Errorf("missing template: error = %v, want ErrTemplateNotFound", err)
		}
	})
}
