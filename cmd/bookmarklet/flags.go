package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-bookmarklet/internal/config"
	"github.com/alnah/go-bookmarklet/internal/yamlutil"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// bookmarkletFlags holds the bookmarklet option flags.
type bookmarkletFlags struct {
	version     string
	url         string
	loadingText string
	random      bool
	settings    []string // key=value
	minifier    string
}

// assetFlags holds asset loading flags.
type assetFlags struct {
	assetPath string
}

// outputFlags holds output destination flags.
type outputFlags struct {
	output string
	watch  bool
}

// buildFlags holds flags for the build command.
type buildFlags struct {
	common      commonFlags
	bookmarklet bookmarkletFlags
	assets      assetFlags
	out         outputFlags
}

// externalFlags holds flags for the template and stylesheet commands.
type externalFlags struct {
	common commonFlags
	assets assetFlags
	out    outputFlags
	base   string
}

// renderFlags holds flags for the render command.
type renderFlags struct {
	common      commonFlags
	bookmarklet bookmarkletFlags
	assets      assetFlags
	pretty      bool
	color       string
	style       string
}

// checkFlags holds flags for the check command.
type checkFlags struct {
	common      commonFlags
	artooLoaded bool
}

// installFlags holds flags for the install command.
type installFlags struct {
	common      commonFlags
	bookmarklet bookmarkletFlags
	assets      assetFlags
	output      string
	title       string
	description string
	date        string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs")
}

// addBookmarkletFlags adds bookmarklet option flags to a FlagSet.
func addBookmarkletFlags(fs *flag.FlagSet, f *bookmarkletFlags) {
	fs.StringVar(&f.version, "version", "", `artoo.js version: "latest", "edge" or x.y.z`)
	fs.StringVar(&f.url, "url", "", "artoo.js location (default derived from version)")
	fs.StringVar(&f.loadingText, "loading-text", "", "message logged while artoo.js loads")
	fs.BoolVar(&f.random, "random", false, "append a cache-busting query to the script url")
	fs.StringArrayVarP(&f.settings, "setting", "s", nil, "artoo.js setting as key=value (repeatable)")
	fs.StringVarP(&f.minifier, "minifier", "m", "", "minifier engine: esbuild, tdewolff, none")
}

// addAssetFlags adds asset flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory (templates/, defaults/)")
}

// addOutputFlags adds output flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.StringVarP(&f.output, "output", "o", "", "output directory, or .js file")
	fs.BoolVarP(&f.watch, "watch", "w", false, "rebuild when inputs change")
}

func newBuildFlagSet(f *buildFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	addCommonFlags(fs, &f.common)
	addBookmarkletFlags(fs, &f.bookmarklet)
	addAssetFlags(fs, &f.assets)
	addOutputFlags(fs, &f.out)
	return fs
}

func newExternalFlagSet(name string, f *externalFlags) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	addCommonFlags(fs, &f.common)
	addAssetFlags(fs, &f.assets)
	addOutputFlags(fs, &f.out)
	fs.StringVarP(&f.base, "base", "b", "", "directory asset names are relative to")
	return fs
}

func newRenderFlagSet(f *renderFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	addCommonFlags(fs, &f.common)
	addBookmarkletFlags(fs, &f.bookmarklet)
	addAssetFlags(fs, &f.assets)
	fs.BoolVarP(&f.pretty, "pretty", "p", false, "print the unminified script")
	fs.StringVar(&f.color, "color", "auto", "highlight --pretty output: auto, always, never")
	fs.StringVar(&f.style, "style", "", "highlight style (default monokai)")
	return fs
}

func newCheckFlagSet(f *checkFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	addCommonFlags(fs, &f.common)
	fs.BoolVar(&f.artooLoaded, "artoo-loaded", false, "simulate a page where artoo.js is already injected")
	return fs
}

func newInstallFlagSet(f *installFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("install", flag.ContinueOnError)
	addCommonFlags(fs, &f.common)
	addBookmarkletFlags(fs, &f.bookmarklet)
	addAssetFlags(fs, &f.assets)
	fs.StringVarP(&f.output, "output", "o", "", "output HTML file (default install.html)")
	fs.StringVar(&f.title, "title", "", "link text and page title")
	fs.StringVar(&f.description, "description", "", "Markdown file shown on the page")
	fs.StringVar(&f.date, "date", "", `footer date: "auto", "auto:<format>" or literal text`)
	return fs
}

// parseFlagSet parses args and returns the positional arguments.
// flag.ErrHelp is returned unwrapped so callers can print usage.
func parseFlagSet(fs *flag.FlagSet, args []string) ([]string, error) {
	fs.SetOutput(io.Discard)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return fs.Args(), nil
}

// mergeBookmarkletFlags applies non-empty flags over cfg.
func mergeBookmarkletFlags(f *bookmarkletFlags, cfg *config.Config) error {
	if f.version != "" {
		cfg.Bookmarklet.Version = f.version
	}
	if f.url != "" {
		cfg.Bookmarklet.URL = f.url
	}
	if f.loadingText != "" {
		cfg.Bookmarklet.LoadingText = f.loadingText
	}
	if f.random {
		cfg.Bookmarklet.Random = true
	}
	if f.minifier != "" {
		cfg.Minify.Engine = f.minifier
	}

	settings, err := parseSettings(f.settings)
	if err != nil {
		return err
	}
	if len(settings) > 0 && cfg.Bookmarklet.Settings == nil {
		cfg.Bookmarklet.Settings = make(map[string]any, len(settings))
	}
	for k, v := range settings {
		cfg.Bookmarklet.Settings[k] = v
	}
	return nil
}

// mergeAssetFlags applies non-empty asset flags over cfg.
func mergeAssetFlags(f *assetFlags, cfg *config.Config) {
	if f.assetPath != "" {
		cfg.Assets.BasePath = f.assetPath
	}
}

// parseSettings turns key=value pairs into typed settings. Values are read
// as YAML scalars, so "true" is a bool and "3" a number; anything that does
// not decode stays a string.
func parseSettings(pairs []string) (map[string]any, error) {
	settings := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: --setting %q must be key=value", ErrUsage, pair)
		}

		var v any
		if err := yamlutil.Unmarshal([]byte(raw), &v); err != nil || v == nil {
			v = raw
		}
		settings[key] = v
	}
	return settings, nil
}
