// Package ui styles CLI status lines. Styling is only applied when the
// destination is a terminal and NO_COLOR is unset.
package ui

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styler renders status text for one writer.
type Styler struct {
	enabled bool
	ok      lipgloss.Style
	warn    lipgloss.Style
	err     lipgloss.Style
	dim     lipgloss.Style
	bold    lipgloss.Style
}

// New returns a Styler for w, colored only if w is a terminal.
func New(w io.Writer) *Styler {
	return NewWithColor(w, IsTerminal(w) && os.Getenv("NO_COLOR") == "")
}

// NewWithColor returns a Styler with styling forced on or off.
func NewWithColor(w io.Writer, enabled bool) *Styler {
	r := lipgloss.NewRenderer(w)
	return &Styler{
		enabled: enabled,
		ok:      r.NewStyle().Foreground(lipgloss.Color("10")), // Green
		warn:    r.NewStyle().Foreground(lipgloss.Color("11")), // Yellow
		err:     r.NewStyle().Foreground(lipgloss.Color("9")),  // Red
		dim:     r.NewStyle().Foreground(lipgloss.Color("8")),  // Gray
		bold:    r.NewStyle().Bold(true),
	}
}

// IsTerminal reports whether w is a terminal file.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Enabled reports whether styling is applied.
func (s *Styler) Enabled() bool { return s.enabled }

func (s *Styler) OK(text string) string    { return s.render(s.ok, text) }
func (s *Styler) Warn(text string) string  { return s.render(s.warn, text) }
func (s *Styler) Error(text string) string { return s.render(s.err, text) }
func (s *Styler) Dim(text string) string   { return s.render(s.dim, text) }
func (s *Styler) Bold(text string) string  { return s.render(s.bold, text) }

func (s *Styler) render(style lipgloss.Style, text string) string {
	if !s.enabled {
		return text
	}
	return style.Render(text)
}
