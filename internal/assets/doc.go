// Package assets provides the bookmarklet template, the install page template
// and the defaults document.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - go:embed copies shipped with the binary
//	    ├── FilesystemLoader  - custom directory on disk
//	    └── AssetResolver     - custom first, embedded fallback
//
// # Directory Structure
//
//	{basePath}/
//	├── templates/
//	│   ├── bookmarklet.tpl   # {{settings}} {{url}} {{loadingText}} {{random}}
//	│   └── install.tpl       # html/template for the install page
//	└── defaults/
//	    └── defaults.yaml     # prodUrl, defaults.version, defaults.settings
//
// Asset names are validated to prevent path traversal, and FilesystemLoader
// verifies resolved paths stay within basePath.
package assets
