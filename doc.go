// Package bookmarklet builds artoo.js bookmarklets and registry scripts.
//
// # Quick Start
//
// Resolve options against the embedded defaults and render:
//
//	defaults, err := bookmarklet.LoadDefaults(nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	r, err := bookmarklet.NewRenderer()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	opts := bookmarklet.Resolve(bookmarklet.Options{Version: "latest"}, defaults)
//	line, err := r.Render("", opts)
//
// The result is a single line starting with "javascript: " that injects
// artoo.js into the current page, or reloads its settings when artoo.js is
// already there. Content passed to Render travels as settings.eval and is
// evaluated by the runtime once loaded.
//
// # Files and Tasks
//
// Build tools process File values through a Task. A File holds null,
// buffered or streamed contents:
//
//	task, err := bookmarklet.NewBookmarkletTask(opts, defaults)
//	results := bookmarklet.Run(ctx, task, bookmarklet.Blank(""))
//
// Null contents pass through, buffered contents are replaced by the task
// output and streamed contents fail with ErrStreamingNotSupported. Errors
// are per file: Run records them and keeps going.
//
// NewTemplateTask and NewStylesheetTask wrap HTML templates and CSS files
// as scripts registering them in artoo.templates and artoo.stylesheets.
//
// # Errors
//
// File level failures are *PluginError values. Match their cause with
// errors.Is:
//
//	if errors.Is(err, bookmarklet.ErrInvalidVersion) { ... }
//
// # Customization
//
// Templates and defaults can be overridden from a directory:
//
//	loader, err := bookmarklet.NewAssetLoader("/path/to/assets")
//	min, err := bookmarklet.NewMinifier(bookmarklet.MinifierTdewolff)
//	r, err := bookmarklet.NewRenderer(
//	    bookmarklet.WithAssetLoader(loader),
//	    bookmarklet.WithMinifier(min),
//	)
package bookmarklet
