package pipeline

import (
	"io"

	"github.com/alecthomas/chroma/v2/quick"
)

// DefaultHighlightStyle is the chroma style used for previews.
const DefaultHighlightStyle = "monokai"

// HighlightTerminal writes source to w with ANSI (256 color) highlighting.
func HighlightTerminal(w io.Writer, source, style string) error {
	if style == "" {
		style = DefaultHighlightStyle
	}
	return quick.Highlight(w, source, "javascript", "terminal256", style)
}
