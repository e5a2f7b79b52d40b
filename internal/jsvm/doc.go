// Package jsvm checks and evaluates generated scripts with goja.
//
// Run executes a bookmarklet against a minimal DOM stand-in (document,
// body, createElement, console) and reports what the script appended to
// the page. It is not a browser: only the calls a loader script makes are
// stubbed.
package jsvm
