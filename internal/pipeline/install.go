package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// ErrInstallPage indicates the install page could not be rendered.
var ErrInstallPage = errors.New("install page rendering failed")

// InstallPage is the data behind an install page.
type InstallPage struct {
	Title       string // page title and link text
	Href        string // complete "javascript: ..." bookmarklet
	Description string // Markdown shown under the link, inline HTML sanitized (optional)
	Source      string // unminified script, shown highlighted (optional)
	Date        string // build date shown in the footer (optional)

	// DescriptionDir and PageDir rebase relative links and images in the
	// description when the page is written elsewhere. Both optional.
	DescriptionDir string
	PageDir        string
}

// installView is what the page template sees.
type installView struct {
	Title string
	Href  template.URL
	Body  template.HTML
	Date  string
}

// InstallRenderer renders install pages: a drag-to-bookmarks link followed by
// Markdown documentation and the highlighted script source.
type InstallRenderer struct {
	md       goldmark.Markdown
	sanitize *bluemonday.Policy
	page     *template.Template
}

// NewInstallRenderer parses the install page html/template.
func NewInstallRenderer(pageTemplate string) (*InstallRenderer, error) {
	page, err := template.New("install").Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInstallPage, err)
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
				// Inline styles: the page ships without a chroma stylesheet.
				highlighting.WithFormatOptions(chromahtml.WithClasses(false)),
			),
		),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		// Raw HTML goes through the sanitizer below.
		goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
	)

	return &InstallRenderer{md: md, sanitize: descriptionPolicy(), page: page}, nil
}

// descriptionPolicy accepts user-generated HTML plus the inline styles
// chroma emits for highlighted code.
func descriptionPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowStyles("color", "background-color", "font-weight", "font-style", "text-decoration").Globally()
	return p
}

// Render builds the HTML page. Goldmark has no context support, so the
// conversion runs in a goroutine and ctx only bounds the wait.
func (r *InstallRenderer) Render(ctx context.Context, p InstallPage) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !strings.HasPrefix(p.Href, "javascript:") {
		return "", fmt.Errorf("%w: link must be a javascript: URL", ErrInstallPage)
	}

	type result struct {
		html string
		err  error
	}
	done := make(chan result, 1)

	go func() {
		body, err := r.body(p)
		if err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrInstallPage, err)}
			return
		}

		var out bytes.Buffer
		// Href comes from the bookmarklet renderer and the body is either
		// sanitized or generated by goldmark from the script source.
		view := installView{
			Title: p.Title,
			Href:  template.URL(p.Href), // #nosec G203
			Body:  template.HTML(body),  // #nosec G203
			Date:  p.Date,
		}
		if err := r.page.Execute(&out, view); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrInstallPage, err)}
			return
		}
		done <- result{html: out.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-done:
		return res.html, res.err
	}
}

// body converts the description and the source section.
func (r *InstallRenderer) body(p InstallPage) (string, error) {
	var desc bytes.Buffer
	if err := r.md.Convert([]byte(prepareDescription(p.Description)), &desc); err != nil {
		return "", err
	}
	description, err := RebaseLinks(finishMarks(r.sanitize.Sanitize(desc.String())), p.DescriptionDir, p.PageDir)
	if err != nil {
		return "", err
	}

	var src bytes.Buffer
	if err := r.md.Convert([]byte(sourceMarkdown(p.Source)), &src); err != nil {
		return "", err
	}
	return description + src.String(), nil
}

// sourceMarkdown renders the script as a fenced block under a heading,
// or "" without a script.
func sourceMarkdown(source string) string {
	if source == "" {
		return ""
	}

	fence := "```"
	for strings.Contains(source, fence) {
		fence += "`"
	}
	var b strings.Builder
	b.WriteString("## Source\n\n")
	b.WriteString(fence + "js\n")
	b.WriteString(strings.TrimRight(source, "\n"))
	b.WriteString("\n" + fence + "\n")
	return b.String()
}
