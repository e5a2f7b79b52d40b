package pipeline

// Notes:
// - Exact minified output is engine specific and changes across releases, so
//   tests check properties (single line, shorter, still contains the calls).

import (
	"errors"
	"strings"
	"testing"
)

const sampleScript = `
(function(undefined) {
  // greeting
  var message = 'hello ' + 'world';
  var lines = 'a\nb';
  console.log( message, lines );
}).call(this);
`

// ---------------------------------------------------------------------------
// TestNewMinifier - Engine selection
// ---------------------------------------------------------------------------

func TestNewMinifier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		engine  string
		wantErr error
		check   func(Minifier) bool
	}{
		{"", nil, func(m Minifier) bool { _, ok := m.(EsbuildMinifier); return ok }},
		{"esbuild", nil, func(m Minifier) bool { _, ok := m.(EsbuildMinifier); return ok }},
		{"TDEWOLFF", nil, func(m Minifier) bool { _, ok := m.(*TdewolffMinifier); return ok }},
		{"none", nil, func(m Minifier) bool { _, ok := m.(NopMinifier); return ok }},
		{"uglify", ErrUnknownEngine, nil},
	}

	for _, tt := range tests {
		t.Run(tt.engine, func(t *testing.T) {
			t.Parallel()

			m, err := NewMinifier(tt.engine)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("NewMinifier(%q) error = %v, want %v", tt.engine, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewMinifier(%q) error = %v", tt.engine, err)
			}
			if !tt.check(m) {
				t.Errorf("NewMinifier(%q) = %T", tt.engine, m)
			}
		})
	}
}

func TestEngines(t *testing.T) {
	t.Parallel()

	engines := Engines()
	if len(engines) == 0 || engines[0] != EngineEsbuild {
		t.Errorf("Engines() = %v, want esbuild first", engines)
	}
}

// ---------------------------------------------------------------------------
// TestMinifiers - Behavior shared by real engines
// ---------------------------------------------------------------------------

func TestMinifiers(t *testing.T) {
	t.Parallel()

	minifiers := map[string]Minifier{
		EngineEsbuild:  EsbuildMinifier{},
		EngineTdewolff: NewTdewolffMinifier(),
	}

	for name, m := range minifiers {
		t.Run(name+" shrinks to one line", func(t *testing.T) {
			t.Parallel()

			got, err := m.Minify(sampleScript)
			if err != nil {
				t.Fatalf("Minify() error = %v", err)
			}
			if strings.Contains(got, "\n") {
				t.Errorf("Minify() = %q, contains a newline", got)
			}
			if len(got) >= len(sampleScript) {
				t.Errorf("Minify() did not shrink: %d >= %d", len(got), len(sampleScript))
			}
			if !strings.Contains(got, "console.log") {
				t.Errorf("Minify() = %q, lost the console.log call", got)
			}
			if strings.Contains(got, "greeting") {
				t.Errorf("Minify() = %q, kept a comment", got)
			}
		})

		t.Run(name+" rejects invalid syntax", func(t *testing.T) {
			t.Parallel()

			_, err := m.Minify("var = ;")
			if !errors.Is(err, ErrMinify) {
				t.Errorf("Minify() error = %v, want ErrMinify", err)
			}
		})
	}
}

func TestTdewolffMinifier_TemplateLiteral(t *testing.T) {
	t.Parallel()

	src := "(function(){var u = `//x/artoo.js\nx`; console.log(u, 'a\\nb');})();"
	got, err := NewTdewolffMinifier().Minify(src)
	if err != nil {
		t.Fatalf("Minify() error = %v", err)
	}
	if strings.ContainsAny(got, "\r\n") {
		t.Errorf("Minify() = %q, contains a line break", got)
	}
	if !strings.Contains(got, `//x/artoo.js\nx`) {
		t.Errorf("Minify() = %q, want the break escaped in the literal", got)
	}
}

// ---------------------------------------------------------------------------
// TestFlattenTemplateLiterals - Line breaks in minified output
// ---------------------------------------------------------------------------

func TestFlattenTemplateLiterals(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"no literals", "var a=1;", "var a=1;", false},
		{"break in template", "a=`x\ny`", "a=`x\\ny`", false},
		{"crlf in template", "a=`x\r\ny`", "a=`x\\r\\ny`", false},
		{"line continuation dropped", "a=`x\\\ny`", "a=`xy`", false},
		{"escaped backtick", "a=`\\`\n`", "a=`\\`\\n`", false},
		{"substitution", "a=`${f({b:1})}\n${c}`", "a=`${f({b:1})}\\n${c}`", false},
		{"nested template", "a=`${`\n`}`", "a=`${`\\n`}`", false},
		{"backtick in string", "a='`';b=1", "a='`';b=1", false},
		{"backtick in regex", "a=/`/.test(s)", "a=/`/.test(s)", false},
		{"regex after return", "return /`/", "return /`/", false},
		{"regex class with slash", "a=/[/`]/", "a=/[/`]/", false},
		{"division", "a=b/c/d", "a=b/c/d", false},
		{"break outside literal", "a=1\nb=2", "", true},
		{"break in string", "a='x\ny'", "", true},
		{"unterminated template", "a=`x", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := flattenTemplateLiterals(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrMinify) {
					t.Fatalf("flattenTemplateLiterals(%q) error = %v, want ErrMinify", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("flattenTemplateLiterals(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("flattenTemplateLiterals(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNopMinifier(t *testing.T) {
	t.Parallel()

	got, err := NopMinifier{}.Minify("  var a = 1;\n")
	if err != nil {
		t.Fatalf("Minify() error = %v", err)
	}
	if got != "var a = 1;" {
		t.Errorf("Minify() = %q", got)
	}
}
