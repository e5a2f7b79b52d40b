package assets

// Built-in asset names.
const (
	BookmarkletTemplate = "bookmarklet"
	InstallTemplate     = "install"
	DefaultsName        = "defaults"
)

// File layout below an asset root.
const (
	templatesDir = "templates"
	templateExt  = ".tpl"
	defaultsDir  = "defaults"
	defaultsExt  = ".yaml"
)

// AssetLoader loads the bookmarklet template and the defaults document.
type AssetLoader interface {
	// LoadTemplate loads templates/{name}.tpl.
	// Returns ErrTemplateNotFound if the template doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadTemplate(name string) (string, error)

	// LoadDefaults loads defaults/{name}.yaml as raw bytes.
	// Returns ErrDefaultsNotFound if the document doesn't exist.
	LoadDefaults(name string) ([]byte, error)
}
