package main

// Notes:
// - runMain: we test dispatch and exit codes for every command, end to end
//   against temp directories. Bookmarklets are built with the embedded
//   assets and the real minifiers.
// - watch mode is exercised in watch_test.go.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	bookmarklet "github.com/alnah/go-bookmarklet"
	"github.com/alnah/go-bookmarklet/internal/fileutil"
	"github.com/alnah/go-bookmarklet/internal/jsvm"
)

// run invokes runMain with "bookmarklet" prepended.
func run(t *testing.T, env *Environment, args ...string) int {
	t.Helper()
	return runMain(context.Background(), append([]string{"bookmarklet"}, args...), env)
}

// ---------------------------------------------------------------------------
// TestRunMain_Dispatch - Commands without side effects
// ---------------------------------------------------------------------------

func TestRunMain_Dispatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{"no command", nil, ExitUsage, "", "Usage: bookmarklet"},
		{"unknown command", []string{"frobnicate"}, ExitUsage, "", "Unknown command: frobnicate"},
		{"version", []string{"version"}, ExitSuccess, "bookmarklet dev", ""},
		{"help", []string{"help"}, ExitSuccess, "Commands:", ""},
		{"help build", []string{"help", "build"}, ExitSuccess, "bookmarklet build", ""},
		{"build --help", []string{"build", "--help"}, ExitSuccess, "bookmarklet build", ""},
		{"template -h", []string{"template", "-h"}, ExitSuccess, "artoo.templates", ""},
		{"bad flag", []string{"build", "--nope"}, ExitUsage, "", "invalid usage"},
		{"completion usage", []string{"completion"}, ExitSuccess, "Supported shells", ""},
		{"completion bad shell", []string{"completion", "tcsh"}, ExitUsage, "", "unsupported shell"},
		{"template needs input", []string{"template"}, ExitUsage, "", "needs at least one"},
		{"check needs input", []string{"check"}, ExitUsage, "", "exactly one file"},
		{"bad color", []string{"render", "--color", "rainbow"}, ExitUsage, "", "--color"},
		{"unknown minifier", []string{"render", "-m", "uglify"}, ExitUsage, "", "hint: available: esbuild"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := testEnv(t, t.TempDir())
			code := run(t, env, tt.args...)

			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d (stderr: %s)", code, tt.wantCode, stderr)
			}
			if tt.wantStdout != "" && !strings.Contains(stdout.String(), tt.wantStdout) {
				t.Errorf("stdout missing %q:\n%s", tt.wantStdout, stdout)
			}
			if tt.wantStderr != "" && !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr missing %q:\n%s", tt.wantStderr, stderr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunMain_Build - Bookmarklet files
// ---------------------------------------------------------------------------

func TestRunMain_Build(t *testing.T) {
	t.Parallel()

	t.Run("blank bookmarklet in cwd", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		env, stdout, stderr := testEnv(t, dir)

		if code := run(t, env, "build"); code != ExitSuccess {
			t.Fatalf("exit code = %d, stderr: %s", code, stderr)
		}

		out := readTestFile(t, filepath.Join(dir, "artoo.bookmark.js"))
		if !strings.HasPrefix(out, "javascript: ") {
			t.Errorf("output should start with the prefix, got %.40q", out)
		}
		if strings.Count(out, "\n") != 1 || !strings.HasSuffix(out, "\n") {
			t.Errorf("output should be one line plus newline, got %q", out)
		}
		if !strings.Contains(stdout.String(), "Created") {
			t.Errorf("stdout should report the file, got %q", stdout)
		}
	})

	t.Run("script embedded under settings.eval", func(t *testing.T) {
		t.Parallel()

		dir := setupTestDir(t, map[string]string{"scripts/scraper.js": "var x = 1;"})
		env, _, stderr := testEnv(t, dir)

		code := run(t, env, "build", "-q", "scripts/scraper.js", "--version", "0.3.4", "-s", "log.level=warning")
		if code != ExitSuccess {
			t.Fatalf("exit code = %d, stderr: %s", code, stderr)
		}

		out := readTestFile(t, filepath.Join(dir, "scripts", "scraper.bookmark.js"))
		report, err := jsvm.Run(context.Background(), strings.TrimSpace(out), jsvm.RunOptions{})
		if err != nil {
			t.Fatalf("running bookmarklet: %v", err)
		}
		script := report.Script()
		if script == nil {
			t.Fatal("no script injected")
		}
		if !strings.HasSuffix(script.Src, "artoo-0.3.4.min.js") {
			t.Errorf("src = %q, want artoo-0.3.4.min.js", script.Src)
		}
		settings := script.Attributes["settings"]
		if !strings.Contains(settings, `"eval":"\"var x = 1;\""`) {
			t.Errorf("settings should carry the double-encoded script, got %s", settings)
		}
		if !strings.Contains(settings, `"log.level":"warning"`) {
			t.Errorf("settings should carry --setting values, got %s", settings)
		}
	})

	t.Run("directory to output dir", func(t *testing.T) {
		t.Parallel()

		dir := setupTestDir(t, map[string]string{
			"src/a.js":            "a();",
			"src/sub/b.js":        "b();",
			"src/notes.txt":       "skip",
			"src/old.bookmark.js": "skip",
		})
		env, stdout, stderr := testEnv(t, dir)

		if code := run(t, env, "build", "src", "-o", "dist"); code != ExitSuccess {
			t.Fatalf("exit code = %d, stderr: %s", code, stderr)
		}
		for _, p := range []string{"dist/a.bookmark.js", "dist/sub/b.bookmark.js"} {
			readTestFile(t, filepath.Join(dir, filepath.FromSlash(p)))
		}
		if !strings.Contains(stdout.String(), "2 succeeded, 0 failed") {
			t.Errorf("stdout should summarize the batch, got %q", stdout)
		}
	})

	t.Run("stdin", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		env, _, stderr := testEnv(t, dir)
		env.Stdin = strings.NewReader("console.log(1);")

		if code := run(t, env, "build", "-", "-o", "out.js"); code != ExitSuccess {
			t.Fatalf("exit code = %d, stderr: %s", code, stderr)
		}
		readTestFile(t, filepath.Join(dir, "out.js"))
	})

	t.Run("invalid version", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		env, _, stderr := testEnv(t, dir)

		if code := run(t, env, "build", "--version", "bad"); code != ExitUsage {
			t.Fatalf("exit code = %d, want %d", code, ExitUsage)
		}
		if !strings.Contains(stderr.String(), "invalid version") {
			t.Errorf("stderr should name the error, got %q", stderr)
		}
		if !strings.Contains(stderr.String(), "hint:") {
			t.Errorf("stderr should carry a hint, got %q", stderr)
		}
		if fileutil.FileExists(filepath.Join(dir, "artoo.bookmark.js")) {
			t.Error("no file should be written for an invalid version")
		}
	})

	t.Run("missing input", func(t *testing.T) {
		t.Parallel()

		env, _, _ := testEnv(t, t.TempDir())
		if code := run(t, env, "build", "missing.js"); code != ExitIO {
			t.Errorf("exit code = %d, want %d", code, ExitIO)
		}
	})

	t.Run("file output with many inputs", func(t *testing.T) {
		t.Parallel()

		dir := setupTestDir(t, map[string]string{"a.js": "a();", "b.js": "b();"})
		env, _, _ := testEnv(t, dir)
		if code := run(t, env, "build", "a.js", "b.js", "-o", "one.js"); code != ExitUsage {
			t.Errorf("exit code = %d, want %d", code, ExitUsage)
		}
	})

	t.Run("config file", func(t *testing.T) {
		t.Parallel()

		dir := setupTestDir(t, map[string]string{
			"bm.yaml": "bookmarklet:\n  version: edge\n  random: true\noutput:\n  filename: scraper.js\n",
		})
		env, _, stderr := testEnv(t, dir)

		if code := run(t, env, "build", "-q", "-c", filepath.Join(dir, "bm.yaml")); code != ExitSuccess {
			t.Fatalf("exit code = %d, stderr: %s", code, stderr)
		}
		out := readTestFile(t, filepath.Join(dir, "scraper.js"))
		if !strings.Contains(out, "artoo-edge.min.js") {
			t.Errorf("output should use the configured version, got %s", out)
		}
		if !strings.Contains(out, "Math.random()") {
			t.Errorf("output should include the random query, got %s", out)
		}
	})
}

// ---------------------------------------------------------------------------
// TestRunMain_External - Template and stylesheet wrapping
// ---------------------------------------------------------------------------

func TestRunMain_External(t *testing.T) {
	t.Parallel()

	t.Run("templates named relative to ./templates", func(t *testing.T) {
		t.Parallel()

		dir := setupTestDir(t, map[string]string{
			"templates/list.tpl":       "<ul></ul>",
			"templates/parts/item.tpl": "<li>{{name}}</li>",
		})
		env, _, stderr := testEnv(t, dir)

		if code := run(t, env, "template", "-q", "templates"); code != ExitSuccess {
			t.Fatalf("exit code = %d, stderr: %s", code, stderr)
		}

		list := readTestFile(t, filepath.Join(dir, "templates", "list.tpl.js"))
		want := `;(function(undefined) {artoo.templates['list.tpl'] = "<ul></ul>";}).call(this);`
		if strings.TrimSpace(list) != want {
			t.Errorf("list.tpl.js = %q, want %q", list, want)
		}
		item := readTestFile(t, filepath.Join(dir, "templates", "parts", "item.tpl.js"))
		if !strings.Contains(item, "artoo.templates['parts/item.tpl']") {
			t.Errorf("nested name should use forward slashes, got %q", item)
		}
	})

	t.Run("stylesheets concatenated", func(t *testing.T) {
		t.Parallel()

		dir := setupTestDir(t, map[string]string{
			"css/a.css": "a{}",
			"css/b.css": "b{}",
		})
		env, _, stderr := testEnv(t, dir)

		if code := run(t, env, "stylesheet", "-q", "css", "--base", "css", "-o", "dist/styles.js"); code != ExitSuccess {
			t.Fatalf("exit code = %d, stderr: %s", code, stderr)
		}
		out := readTestFile(t, filepath.Join(dir, "dist", "styles.js"))
		if !strings.Contains(out, "artoo.stylesheets['a.css'] = \"a{}\";") ||
			!strings.Contains(out, "artoo.stylesheets['b.css'] = \"b{}\";") {
			t.Errorf("output should register both stylesheets, got %q", out)
		}
	})

	t.Run("names relative to cwd without base dir", func(t *testing.T) {
		t.Parallel()

		dir := setupTestDir(t, map[string]string{"views/home.html": "<p>hi</p>"})
		env, _, stderr := testEnv(t, dir)

		if code := run(t, env, "template", "-q", "views/home.html", "-o", "out"); code != ExitSuccess {
			t.Fatalf("exit code = %d, stderr: %s", code, stderr)
		}
		out := readTestFile(t, filepath.Join(dir, "out", "home.html.js"))
		if !strings.Contains(out, "artoo.templates['views/home.html']") {
			t.Errorf("name should be relative to cwd, got %q", out)
		}
	})
}

// ---------------------------------------------------------------------------
// TestRunMain_Render - Stdout output
// ---------------------------------------------------------------------------

func TestRunMain_Render(t *testing.T) {
	t.Parallel()

	t.Run("minified line", func(t *testing.T) {
		t.Parallel()

		env, stdout, stderr := testEnv(t, t.TempDir())
		if code := run(t, env, "render", "--loading-text", "loading"); code != ExitSuccess {
			t.Fatalf("exit code = %d, stderr: %s", code, stderr)
		}
		out := stdout.String()
		if !strings.HasPrefix(out, "javascript: ") || strings.Count(out, "\n") != 1 {
			t.Errorf("render should print one bookmarklet line, got %q", out)
		}
		if !strings.Contains(out, "loading") {
			t.Errorf("loading text missing from %q", out)
		}
	})

	t.Run("pretty without color", func(t *testing.T) {
		t.Parallel()

		env, stdout, stderr := testEnv(t, t.TempDir())
		if code := run(t, env, "render", "--pretty", "--color", "never"); code != ExitSuccess {
			t.Fatalf("exit code = %d, stderr: %s", code, stderr)
		}
		out := stdout.String()
		if strings.HasPrefix(out, "javascript:") || strings.Count(out, "\n") < 2 {
			t.Errorf("pretty output should be the multi-line source, got %q", out)
		}
		if strings.Contains(out, "\x1b[") {
			t.Error("--color never should not emit ANSI escapes")
		}
	})

	t.Run("pretty with color", func(t *testing.T) {
		t.Parallel()

		env, stdout, stderr := testEnv(t, t.TempDir())
		if code := run(t, env, "render", "-p", "--color", "always"); code != ExitSuccess {
			t.Fatalf("exit code = %d, stderr: %s", code, stderr)
		}
		if !strings.Contains(stdout.String(), "\x1b[") {
			t.Error("--color always should emit ANSI escapes")
		}
	})

	t.Run("broken loading text with none engine", func(t *testing.T) {
		t.Parallel()

		env, stdout, _ := testEnv(t, t.TempDir())
		if code := run(t, env, "render", "-m", "none", "--loading-text", "it's"); code != ExitSuccess {
			t.Fatalf("none engine should render as-is, exit code = %d", code)
		}

		path := filepath.Join(t.TempDir(), "broken.bookmark.js")
		if err := writeOutput(path, stdout.Bytes()); err != nil {
			t.Fatal(err)
		}
		env2, _, stderr := testEnv(t, filepath.Dir(path))
		if code := run(t, env2, "check", path); code != ExitGeneral {
			t.Errorf("check exit code = %d, want %d", code, ExitGeneral)
		}
		if !strings.Contains(stderr.String(), bookmarklet.ErrInvalidBookmarklet.Error()) {
			t.Errorf("stderr should report the broken script, got %q", stderr)
		}
	})

	t.Run("broken loading text with esbuild", func(t *testing.T) {
		t.Parallel()

		env, _, stderr := testEnv(t, t.TempDir())
		if code := run(t, env, "render", "--loading-text", "it's"); code != ExitGeneral {
			t.Errorf("exit code = %d, want %d", code, ExitGeneral)
		}
		if !strings.Contains(stderr.String(), "--loading-text is inserted as-is") {
			t.Errorf("stderr should carry the quoting hint, got %q", stderr)
		}
	})
}

// ---------------------------------------------------------------------------
// TestRunMain_Check - Sandbox verification
// ---------------------------------------------------------------------------

func TestRunMain_Check(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	env, _, stderr := testEnv(t, dir)
	if code := run(t, env, "build", "-q", "--loading-text", "hello"); code != ExitSuccess {
		t.Fatalf("build exit code = %d, stderr: %s", code, stderr)
	}
	bookmark := filepath.Join(dir, "artoo.bookmark.js")

	t.Run("fresh page", func(t *testing.T) {
		t.Parallel()

		env, stdout, stderr := testEnv(t, dir)
		if code := run(t, env, "check", "artoo.bookmark.js"); code != ExitSuccess {
			t.Fatalf("exit code = %d, stderr: %s", code, stderr)
		}
		out := stdout.String()
		for _, want := range []string{"valid bookmarklet", "logs    hello", "injects //medialab.github.io/artoo/public/dist/artoo-latest.min.js"} {
			if !strings.Contains(out, want) {
				t.Errorf("stdout missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("artoo already loaded", func(t *testing.T) {
		t.Parallel()

		env, stdout, stderr := testEnv(t, dir)
		if code := run(t, env, "check", "--artoo-loaded", bookmark); code != ExitSuccess {
			t.Fatalf("exit code = %d, stderr: %s", code, stderr)
		}
		if !strings.Contains(stdout.String(), "reloads settings") {
			t.Errorf("stdout should report the reload, got:\n%s", stdout)
		}
	})

	t.Run("wrapped template", func(t *testing.T) {
		t.Parallel()

		env, stdout, stderr := testEnv(t, dir)
		env.Stdin = strings.NewReader(`;(function(undefined) {artoo.templates['a'] = "x";}).call(this);`)
		if code := run(t, env, "check", "-"); code != ExitSuccess {
			t.Fatalf("exit code = %d, stderr: %s", code, stderr)
		}
		if !strings.Contains(stdout.String(), "valid script") {
			t.Errorf("stdout = %q, want valid script", stdout)
		}
	})

	t.Run("syntax error", func(t *testing.T) {
		t.Parallel()

		env, _, _ := testEnv(t, dir)
		env.Stdin = strings.NewReader("javascript: (function({")
		if code := run(t, env, "check", "-"); code != ExitGeneral {
			t.Errorf("exit code = %d, want %d", code, ExitGeneral)
		}
	})
}

// ---------------------------------------------------------------------------
// TestRunMain_Install - HTML install page
// ---------------------------------------------------------------------------

func TestRunMain_Install(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{
		"scraper.js": "artoo.scrape('li');",
		"about.md":   "# About\n\nScrapes **lists**.",
	})
	env, stdout, stderr := testEnv(t, dir)

	code := run(t, env, "install", "scraper.js", "--title", "List scraper", "--description", "about.md", "-o", "site/index.html")
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}

	page := readTestFile(t, filepath.Join(dir, "site", "index.html"))
	for _, want := range []string{"List scraper", `href="javascript:`, "<strong>lists</strong>", "artoo.scrape"} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if !strings.Contains(stdout.String(), "index.html") {
		t.Errorf("stdout should report the page, got %q", stdout)
	}
}

func TestRunMain_InstallDate(t *testing.T) {
	t.Parallel()

	t.Run("auto date and rebased image", func(t *testing.T) {
		t.Parallel()

		dir := setupTestDir(t, map[string]string{
			"docs/about.md": "![demo](demo.png) ==Scrapes== lists.",
		})
		env, _, stderr := testEnv(t, dir)

		code := run(t, env, "install", "--description", "docs/about.md", "--date", "auto:DD/MM/YYYY", "-o", "site/index.html")
		if code != ExitSuccess {
			t.Fatalf("exit code = %d, stderr: %s", code, stderr)
		}

		page := readTestFile(t, filepath.Join(dir, "site", "index.html"))
		for _, want := range []string{"Built 15/01/2024", `src="../docs/demo.png"`, "<mark>Scrapes</mark>"} {
			if !strings.Contains(page, want) {
				t.Errorf("page missing %q", want)
			}
		}
	})

	t.Run("invalid format", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		env, _, stderr := testEnv(t, dir)

		if code := run(t, env, "install", "--date", "auto:"); code != ExitUsage {
			t.Errorf("exit code = %d, want %d", code, ExitUsage)
		}
		if !strings.Contains(stderr.String(), "hint:") {
			t.Errorf("stderr should carry a hint, got %q", stderr)
		}
	})
}
