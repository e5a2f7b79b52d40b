package bookmarklet

import (
	"fmt"
	"maps"

	"github.com/alnah/go-bookmarklet/internal/assets"
	"github.com/alnah/go-bookmarklet/internal/yamlutil"
)

// evalKey is the reserved settings key carrying embedded file content.
const evalKey = "eval"

// Options configures a bookmarklet. Zero values mean "not set".
type Options struct {
	Version     string         // "latest", "edge" or "x.y.z"
	URL         string         // artoo.js location; derived from Version when empty
	Settings    map[string]any // passed to the artoo.js runtime
	LoadingText string         // logged while artoo.js loads; trusted, not escaped
	Random      bool           // append a cache-busting query to the script URL
}

// Defaults holds the values Resolve falls back to.
type Defaults struct {
	Version  string
	Settings map[string]any
	ProdURL  string // base of derived URLs: ProdURL + "artoo-" + version + ".min.js"
}

// Resolve merges opts over defaults. Caller values win; settings are merged
// key by key. The reserved "eval" setting is always dropped. Neither input
// is modified and the result owns its settings map.
func Resolve(opts Options, defaults Defaults) Options {
	out := opts
	if out.Version == "" {
		out.Version = defaults.Version
	}

	settings := make(map[string]any, len(defaults.Settings)+len(opts.Settings))
	maps.Copy(settings, defaults.Settings)
	maps.Copy(settings, opts.Settings)
	delete(settings, evalKey)
	out.Settings = settings

	if out.URL == "" {
		out.URL = defaults.ProdURL + "artoo-" + out.Version + ".min.js"
	}
	return out
}

// defaultsDocument mirrors defaults/defaults.yaml.
type defaultsDocument struct {
	ProdURL  string `yaml:"prodUrl"`
	Defaults struct {
		Version  string         `yaml:"version"`
		Settings map[string]any `yaml:"settings"`
	} `yaml:"defaults"`
}

// LoadDefaults reads the "defaults" document through loader.
// A nil loader reads the embedded document.
func LoadDefaults(loader AssetLoader) (Defaults, error) {
	var (
		data []byte
		err  error
	)
	if loader == nil {
		data, err = assets.LoadDefaults(assets.DefaultsName)
		err = convertAssetError(err)
	} else {
		data, err = loader.LoadDefaults(assets.DefaultsName)
	}
	if err != nil {
		return Defaults{}, err
	}
	return ParseDefaults(data)
}

// ParseDefaults decodes a defaults document. Unknown fields are rejected.
func ParseDefaults(data []byte) (Defaults, error) {
	var doc defaultsDocument
	if err := yamlutil.UnmarshalStrict(data, &doc); err != nil {
		return Defaults{}, fmt.Errorf("%w: %v", ErrInvalidDefaults, err)
	}
	if doc.ProdURL == "" {
		return Defaults{}, fmt.Errorf("%w: prodUrl is required", ErrInvalidDefaults)
	}
	if doc.Defaults.Settings == nil {
		doc.Defaults.Settings = map[string]any{}
	}
	return Defaults{
		Version:  doc.Defaults.Version,
		Settings: doc.Defaults.Settings,
		ProdURL:  doc.ProdURL,
	}, nil
}
