// Package pipeline implements the text stages behind bookmarklet builds:
//   - placeholder substitution over a closed set of {{name}} tags (fasttemplate)
//   - JavaScript minification (esbuild by default, tdewolff as alternative)
//   - install page rendering: Markdown via Goldmark sanitized with bluemonday,
//     highlighted source via chroma, ==mark== highlights and relative links
//     rebased with x/net/html
//   - terminal highlighting of unminified output for previews
//
// Version validation, option merging and file handling live in the root
// bookmarklet package; this package only transforms strings.
package pipeline
