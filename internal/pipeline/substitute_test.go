package pipeline

import (
	"errors"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestNewSubstituter - Template parsing and tag checks
// ---------------------------------------------------------------------------

func TestNewSubstituter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		template string
		allowed  []string
		wantErr  error
	}{
		{"known tags", "var s = {{settings}}; load('{{url}}');", []string{"settings", "url"}, nil},
		{"no tags", "void 0;", nil, nil},
		{"tags with spaces", "{{ settings }}", []string{"settings"}, nil},
		{"unknown tag", "{{settings}} {{evil}}", []string{"settings"}, ErrUnknownPlaceholder},
		{"unclosed tag", "var s = {{settings;", []string{"settings"}, ErrTemplateParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, err := NewSubstituter(tt.template, tt.allowed...)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("NewSubstituter() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewSubstituter() unexpected error: %v", err)
			}
			if s == nil {
				t.Fatal("NewSubstituter() returned nil")
			}
		})
	}
}

func TestNewSubstituter_UnknownTagNamed(t *testing.T) {
	t.Parallel()

	_, err := NewSubstituter("{{url}} {{evil}} {{evil}}", "url")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "evil") {
		t.Errorf("error = %q, want it to name the tag", err)
	}
	if strings.Count(err.Error(), "evil") != 1 {
		t.Errorf("error = %q, want the tag listed once", err)
	}
}

// ---------------------------------------------------------------------------
// TestSubstituter_Execute - Substitution
// ---------------------------------------------------------------------------

func TestSubstituter_Execute(t *testing.T) {
	t.Parallel()

	s, err := NewSubstituter("a={{x}};b={{ y }};a2={{x}};", "x", "y")
	if err != nil {
		t.Fatalf("NewSubstituter() error = %v", err)
	}

	t.Run("replaces every occurrence", func(t *testing.T) {
		t.Parallel()

		got, err := s.Execute(map[string]string{"x": "1", "y": "2"})
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if got != "a=1;b=2;a2=1;" {
			t.Errorf("Execute() = %q", got)
		}
	})

	t.Run("values are not escaped", func(t *testing.T) {
		t.Parallel()

		got, err := s.Execute(map[string]string{"x": `console.log('it's');`, "y": ""})
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if !strings.Contains(got, `console.log('it's');`) {
			t.Errorf("Execute() = %q, want raw value", got)
		}
	})

	t.Run("missing value", func(t *testing.T) {
		t.Parallel()

		_, err := s.Execute(map[string]string{"x": "1"})
		if !errors.Is(err, ErrMissingValue) {
			t.Errorf("Execute() error = %v, want ErrMissingValue", err)
		}
	})
}
