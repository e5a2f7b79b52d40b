package pipeline

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/valyala/fasttemplate"
)

// Placeholder delimiters used by every template in this project.
const (
	startTag = "{{"
	endTag   = "}}"
)

var (
	// ErrTemplateParse indicates a template with unbalanced delimiters.
	ErrTemplateParse = errors.New("template parse failed")

	// ErrUnknownPlaceholder indicates a template tag outside the allowed set.
	ErrUnknownPlaceholder = errors.New("unknown template placeholder")

	// ErrMissingValue indicates Execute was called without a value for a tag.
	ErrMissingValue = errors.New("missing placeholder value")
)

// Substituter fills {{name}} placeholders from a fixed set of names.
// Tags are checked once at construction so a bad custom template fails
// before any file is processed.
type Substituter struct {
	tmpl *fasttemplate.Template
}

// NewSubstituter parses template and verifies it only uses allowed tags.
func NewSubstituter(template string, allowed ...string) (*Substituter, error) {
	tmpl, err := fasttemplate.NewTemplate(template, startTag, endTag)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateParse, err)
	}

	var unknown []string
	_, _ = tmpl.ExecuteFuncStringWithErr(func(_ io.Writer, tag string) (int, error) {
		name := strings.TrimSpace(tag)
		if !slices.Contains(allowed, name) && !slices.Contains(unknown, name) {
			unknown = append(unknown, name)
		}
		return 0, nil
	})
	if len(unknown) > 0 {
		return nil, fmt.Errorf("%w: %s (allowed: %s)",
			ErrUnknownPlaceholder, strings.Join(unknown, ", "), strings.Join(allowed, ", "))
	}

	return &Substituter{tmpl: tmpl}, nil
}

// Execute replaces every placeholder with its value. Values are written
// verbatim, without escaping.
func (s *Substituter) Execute(values map[string]string) (string, error) {
	return s.tmpl.ExecuteFuncStringWithErr(func(w io.Writer, tag string) (int, error) {
		v, ok := values[strings.TrimSpace(tag)]
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrMissingValue, strings.TrimSpace(tag))
		}
		return io.WriteString(w, v)
	})
}
