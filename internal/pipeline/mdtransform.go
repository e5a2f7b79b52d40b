package pipeline

import (
	"regexp"
	"strings"
)

// Placeholders for ==marked== text. Private Use Area runes pass through
// goldmark unchanged, so raw HTML can stay disabled.
const (
	markOpen  = "\uE000"
	markClose = "\uE001"
)

var (
	lineEndings   = regexp.MustCompile(`\r\n?`)
	blankLineRuns = regexp.MustCompile(`\n{3,}`)
	markedText    = regexp.MustCompile(`==(\S(?:[^\n]*?\S)?)==`)
)

// prepareDescription normalizes description Markdown before conversion:
// unix line endings, at most one blank line in a row, and ==text==
// replaced by mark placeholders.
func prepareDescription(md string) string {
	md = lineEndings.ReplaceAllString(md, "\n")
	md = markedText.ReplaceAllString(md, markOpen+"$1"+markClose)
	return blankLineRuns.ReplaceAllString(md, "\n\n")
}

// finishMarks turns mark placeholders in converted HTML into <mark> tags.
func finishMarks(html string) string {
	return strings.NewReplacer(markOpen, "<mark>", markClose, "</mark>").Replace(html)
}
