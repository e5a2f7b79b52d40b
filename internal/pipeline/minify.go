package pipeline

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/js"
)

// Minifier engine names.
const (
	EngineEsbuild  = "esbuild"
	EngineTdewolff = "tdewolff"
	EngineNone     = "none"
)

const jsMediaType = "application/javascript"

var (
	// ErrMinify indicates the engine rejected the script.
	ErrMinify = errors.New("minification failed")

	// ErrUnknownEngine indicates an unsupported minifier name.
	ErrUnknownEngine = errors.New("unknown minifier engine")
)

// Minifier shrinks JavaScript source without changing its behavior.
type Minifier interface {
	Minify(src string) (string, error)
}

// Engines lists the supported engine names, default first.
func Engines() []string {
	return []string{EngineEsbuild, EngineTdewolff, EngineNone}
}

// NewMinifier returns the minifier for engine. An empty name selects esbuild.
func NewMinifier(engine string) (Minifier, error) {
	switch strings.ToLower(engine) {
	case "", EngineEsbuild:
		return EsbuildMinifier{}, nil
	case EngineTdewolff:
		return NewTdewolffMinifier(), nil
	case EngineNone:
		return NopMinifier{}, nil
	default:
		return nil, fmt.Errorf("%w: %q (supported: %s)", ErrUnknownEngine, engine, strings.Join(Engines(), ", "))
	}
}

// EsbuildMinifier minifies whitespace, identifiers and syntax with esbuild.
// Template literals are lowered so the output never carries a raw newline.
type EsbuildMinifier struct{}

// Minify implements Minifier.
func (EsbuildMinifier) Minify(src string) (string, error) {
	result := api.Transform(src, api.TransformOptions{
		Loader:            api.LoaderJS,
		MinifyWhitespace:  true,
		MinifyIdentifiers: true,
		MinifySyntax:      true,
		Supported:         map[string]bool{"template-literal": false},
	})
	if len(result.Errors) > 0 {
		return "", fmt.Errorf("%w: %s", ErrMinify, formatMessage(result.Errors[0]))
	}
	return strings.TrimSpace(string(result.Code)), nil
}

func formatMessage(msg api.Message) string {
	if msg.Location == nil {
		return msg.Text
	}
	return fmt.Sprintf("%d:%d: %s", msg.Location.Line, msg.Location.Column, msg.Text)
}

// TdewolffMinifier minifies with tdewolff/minify. It may turn strings into
// template literals holding raw line breaks; those are escaped afterwards.
type TdewolffMinifier struct {
	m *minify.M
}

// NewTdewolffMinifier creates a TdewolffMinifier.
func NewTdewolffMinifier() *TdewolffMinifier {
	m := minify.New()
	m.AddFunc(jsMediaType, js.Minify)
	return &TdewolffMinifier{m: m}
}

// Minify implements Minifier.
func (t *TdewolffMinifier) Minify(src string) (string, error) {
	out, err := t.m.String(jsMediaType, src)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMinify, err)
	}
	return flattenTemplateLiterals(strings.TrimSpace(out))
}

// regexPrecedes holds the bytes after which '/' starts a regular expression
// rather than a division.
const regexPrecedes = "(,=:[!&|?{};+-*%<>~^"

// flattenTemplateLiterals rewrites raw line breaks inside template literals
// as escape sequences, so minified code fits on one line. A line break left
// anywhere else is an ErrMinify. Tagged templates reading .raw would see
// the escape text instead of the break.
func flattenTemplateLiterals(src string) (string, error) {
	var (
		b          strings.Builder
		braces     []int // open braces per pending ${ substitution
		inTemplate bool
		prev       byte // last non-space byte outside literals
	)
	b.Grow(len(src))

	for i := 0; i < len(src); i++ {
		c := src[i]
		if inTemplate {
			switch {
			case c == '\\' && i+1 < len(src) && src[i+1] == '\n':
				i++ // line continuation, cooks to nothing
			case c == '\\' && i+1 < len(src):
				b.WriteByte(c)
				i++
				b.WriteByte(src[i])
			case c == '\n':
				b.WriteString(`\n`)
			case c == '\r':
				b.WriteString(`\r`)
			case c == '`':
				inTemplate = false
				prev = c
				b.WriteByte(c)
			case c == '$' && i+1 < len(src) && src[i+1] == '{':
				braces = append(braces, 0)
				inTemplate = false
				prev = '{'
				b.WriteString("${")
				i++
			default:
				b.WriteByte(c)
			}
			continue
		}

		switch c {
		case '\'', '"':
			end, err := skipQuoted(src, i, c)
			if err != nil {
				return "", err
			}
			b.WriteString(src[i : end+1])
			prev, i = c, end
			continue
		case '/':
			if prev == 0 || strings.IndexByte(regexPrecedes, prev) >= 0 || endsWithKeyword(b.String()) {
				end, err := skipRegex(src, i)
				if err != nil {
					return "", err
				}
				b.WriteString(src[i : end+1])
				prev, i = c, end
				continue
			}
		case '`':
			inTemplate = true
		case '{':
			if n := len(braces); n > 0 {
				braces[n-1]++
			}
		case '}':
			if n := len(braces); n > 0 {
				if braces[n-1] == 0 {
					braces = braces[:n-1]
					inTemplate = true
					b.WriteByte(c)
					continue
				}
				braces[n-1]--
			}
		case '\n', '\r':
			return "", fmt.Errorf("%w: line break outside a template literal", ErrMinify)
		}
		b.WriteByte(c)
		if c != ' ' && c != '\t' {
			prev = c
		}
	}

	if inTemplate || len(braces) > 0 {
		return "", fmt.Errorf("%w: unterminated template literal", ErrMinify)
	}
	return b.String(), nil
}

// regexKeywords may directly precede a regular expression literal.
var regexKeywords = []string{"return", "typeof", "case", "do", "else", "in", "of", "void", "delete", "throw", "new", "instanceof", "yield", "await"}

// endsWithKeyword reports whether code ends with a keyword after which '/'
// opens a regular expression.
func endsWithKeyword(code string) bool {
	code = strings.TrimRight(code, " \t")
	end := len(code)
	start := end
	for start > 0 && isIdentByte(code[start-1]) {
		start--
	}
	return start < end && slices.Contains(regexKeywords, code[start:end])
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// skipQuoted returns the index of the quote closing the string at start.
func skipQuoted(src string, start int, quote byte) (int, error) {
	for i := start + 1; i < len(src); i++ {
		switch src[i] {
		case '\\':
			if i+1 < len(src) && src[i+1] == '\n' {
				return 0, fmt.Errorf("%w: line continuation in a string literal", ErrMinify)
			}
			i++
		case '\n', '\r':
			return 0, fmt.Errorf("%w: line break in a string literal", ErrMinify)
		case quote:
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: unterminated string literal", ErrMinify)
}

// skipRegex returns the index of the slash closing the regex at start.
func skipRegex(src string, start int) (int, error) {
	inClass := false
	for i := start + 1; i < len(src); i++ {
		switch src[i] {
		case '\\':
			i++
		case '[':
			inClass = true
		case ']':
			inClass = false
		case '/':
			if !inClass {
				return i, nil
			}
		case '\n', '\r':
			return 0, fmt.Errorf("%w: line break in a regular expression", ErrMinify)
		}
	}
	return 0, fmt.Errorf("%w: unterminated regular expression", ErrMinify)
}

// NopMinifier returns the source unchanged apart from surrounding whitespace.
// Debug builds only: the result keeps its line breaks.
type NopMinifier struct{}

// Minify implements Minifier.
func (NopMinifier) Minify(src string) (string, error) {
	return strings.TrimSpace(src), nil
}

var (
	_ Minifier = EsbuildMinifier{}
	_ Minifier = (*TdewolffMinifier)(nil)
	_ Minifier = NopMinifier{}
)
