package bookmarklet

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewAssetLoader(t *testing.T) {
	t.Parallel()

	t.Run("embedded only", func(t *testing.T) {
		t.Parallel()

		loader, err := NewAssetLoader("")
		if err != nil {
			t.Fatalf("NewAssetLoader() error = %v", err)
		}
		tpl, err := loader.LoadTemplate(DefaultTemplate)
		if err != nil {
			t.Fatalf("LoadTemplate() error = %v", err)
		}
		if !strings.Contains(tpl, "{{settings}}") {
			t.Error("embedded template lacks the settings placeholder")
		}
	})

	t.Run("custom directory overrides", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		if err := os.MkdirAll(filepath.Join(dir, "templates"), 0o750); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, "templates", "bookmarklet.tpl"), []byte("go('{{url}}');"), 0o644); err != nil {
			t.Fatal(err)
		}

		loader, err := NewAssetLoader(dir)
		if err != nil {
			t.Fatalf("NewAssetLoader() error = %v", err)
		}
		tpl, err := loader.LoadTemplate(DefaultTemplate)
		if err != nil {
			t.Fatalf("LoadTemplate() error = %v", err)
		}
		if tpl != "go('{{url}}');" {
			t.Errorf("LoadTemplate() = %q, want custom template", tpl)
		}

		// Defaults fall back to the embedded document.
		if _, err := LoadDefaults(loader); err != nil {
			t.Errorf("LoadDefaults() error = %v", err)
		}
	})

	t.Run("invalid base path", func(t *testing.T) {
		t.Parallel()

		_, err := NewAssetLoader(filepath.Join(t.TempDir(), "missing"))
		if !errors.Is(err, ErrInvalidAssetPath) {
			t.Errorf("NewAssetLoader() error = %v, want ErrInvalidAssetPath", err)
		}
	})

	t.Run("unknown template", func(t *testing.T) {
		t.Parallel()

		loader, err := NewAssetLoader("")
		if err != nil {
			t.Fatal(err)
		}
		if _, err := loader.LoadTemplate("missing"); !errors.Is(err, ErrTemplateNotFound) {
			t.Errorf("LoadTemplate() error = %v, want ErrTemplateNotFound", err)
		}
		if _, err := loader.LoadTemplate("../etc"); !errors.Is(err, ErrTemplateNotFound) {
			t.Errorf("LoadTemplate() error = %v, want ErrTemplateNotFound for invalid name", err)
		}
	})
}

func TestConvertAssetError_KeepsMessage(t *testing.T) {
	t.Parallel()

	_, err := NewAssetLoader(filepath.Join(t.TempDir(), "missing"))
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "missing") {
		t.Errorf("error = %q, want the original message", err)
	}
}
