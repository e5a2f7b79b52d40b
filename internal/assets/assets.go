package assets

// defaultLoader serves the package-level helpers.
var defaultLoader = NewEmbeddedLoader()

// LoadTemplate loads an embedded template by name.
func LoadTemplate(name string) (string, error) {
	return defaultLoader.LoadTemplate(name)
}

// LoadDefaults loads an embedded defaults document by name.
func LoadDefaults(name string) ([]byte, error) {
	return defaultLoader.LoadDefaults(name)
}
