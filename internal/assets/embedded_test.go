package assets

import (
	"errors"
	"strings"
	"testing"
)

func TestNewEmbeddedLoader(t *testing.T) {
	t.Parallel()

	if NewEmbeddedLoader() == nil {
		t.Fatal("NewEmbeddedLoader() returned nil")
	}
}

func TestEmbeddedLoader_LoadTemplate(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	tests := []struct {
		name        string
		template    string
		wantErr     error
		wantContain []string
	}{
		{
			name:        "bookmarklet template has every placeholder",
			template:    BookmarkletTemplate,
			wantContain: []string{"{{settings}}", "{{url}}", "{{loadingText}}", "{{random}}"},
		},
		{
			name:        "install template",
			template:    InstallTemplate,
			wantContain: []string{"{{.Href}}", "{{.Body}}"},
		},
		{
			name:     "nonexistent template",
			template: "nonexistent-xyz",
			wantErr:  ErrTemplateNotFound,
		},
		{
			name:     "empty name",
			template: "",
			wantErr:  ErrInvalidAssetName,
		},
		{
			name:     "path traversal",
			template: "../defaults/defaults",
			wantErr:  ErrInvalidAssetName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := loader.LoadTemplate(tt.template)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("LoadTemplate(%q) error = %v, want %v", tt.template, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadTemplate(%q) unexpected error: %v", tt.template, err)
			}
			for _, want := range tt.wantContain {
				if !strings.Contains(got, want) {
					t.Errorf("LoadTemplate(%q) missing %q", tt.template, want)
				}
			}
		})
	}
}

func TestEmbeddedLoader_LoadDefaults(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	t.Run("built-in defaults", func(t *testing.T) {
		t.Parallel()

		got, err := loader.LoadDefaults(DefaultsName)
		if err != nil {
			t.Fatalf("LoadDefaults() error = %v", err)
		}
		for _, want := range []string{"prodUrl:", "version: latest"} {
			if !strings.Contains(string(got), want) {
				t.Errorf("LoadDefaults() missing %q", want)
			}
		}
	})

	t.Run("unknown name", func(t *testing.T) {
		t.Parallel()

		_, err := loader.LoadDefaults("missing")
		if !errors.Is(err, ErrDefaultsNotFound) {
			t.Errorf("LoadDefaults() error = %v, want ErrDefaultsNotFound", err)
		}
	})
}
