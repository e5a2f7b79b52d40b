package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"slices"

	bookmarklet "github.com/alnah/go-bookmarklet"
	"github.com/alnah/go-bookmarklet/internal/config"
	"github.com/alnah/go-bookmarklet/internal/jsvm"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status    string         `json:"status"` // "ready", "warnings", "errors"
	Assets    assetsInfo     `json:"assets"`
	Minifiers []minifierInfo `json:"minifiers"`
	Config    configInfo     `json:"config"`
	Env       envInfo        `json:"environment"`
	System    systemInfo     `json:"system"`
	Warnings  []string       `json:"warnings,omitempty"`
	Errors    []string       `json:"errors,omitempty"`
}

// assetsInfo holds template and defaults checks.
type assetsInfo struct {
	Path           string `json:"path,omitempty"` // BOOKMARKLET_ASSET_PATH
	Template       bool   `json:"template"`
	InstallPage    bool   `json:"install_page"`
	Defaults       bool   `json:"defaults"`
	DefaultVersion string `json:"default_version,omitempty"`
	ProdURL        string `json:"prod_url,omitempty"`
}

// minifierInfo holds the result of building a sample with one engine.
type minifierInfo struct {
	Engine string `json:"engine"`
	OK     bool   `json:"ok"`
	Bytes  int    `json:"bytes,omitempty"`
	Error  string `json:"error,omitempty"`
}

// configInfo holds config discovery results.
type configInfo struct {
	Name  string `json:"name,omitempty"` // BOOKMARKLET_CONFIG
	Found bool   `json:"found"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS   string `json:"os"`
	Arch string `json:"arch"`
	CI   bool   `json:"ci"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(ctx context.Context, args []string, env *Environment) int {
	jsonOutput := slices.Contains(args, "--json")

	result := runDoctor(ctx)

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, env, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(ctx context.Context) *doctorResult {
	envCfg := loadEnvConfig()
	result := &doctorResult{
		Status: "ready",
		Assets: assetsInfo{Path: envCfg.AssetPath},
		Config: configInfo{Name: envCfg.ConfigPath},
		Env: envInfo{
			OS:   runtime.GOOS,
			Arch: runtime.GOARCH,
		},
	}

	loader, defaults := checkAssets(result)
	checkMinifiers(ctx, result, loader, defaults)
	checkConfig(result)
	checkEnvironment(result)
	checkSystem(result)

	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkAssets loads templates and defaults from the configured asset path.
func checkAssets(result *doctorResult) (bookmarklet.AssetLoader, bookmarklet.Defaults) {
	loader, err := bookmarklet.NewAssetLoader(result.Assets.Path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Asset path unusable: %v", err))
		loader, _ = bookmarklet.NewAssetLoader("")
	}

	if _, err := loader.LoadTemplate(bookmarklet.DefaultTemplate); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Bookmarklet template: %v", err))
	} else {
		result.Assets.Template = true
	}

	if _, err := loader.LoadTemplate(bookmarklet.InstallTemplate); err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Install page template: %v", err))
	} else {
		result.Assets.InstallPage = true
	}

	defaults, err := bookmarklet.LoadDefaults(loader)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Defaults: %v", err))
		return loader, defaults
	}
	result.Assets.Defaults = true
	result.Assets.DefaultVersion = defaults.Version
	result.Assets.ProdURL = defaults.ProdURL
	if !bookmarklet.IsValidVersion(defaults.Version) {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Default version %q is invalid", defaults.Version))
	}
	return loader, defaults
}

// checkMinifiers builds a sample bookmarklet with every engine and runs it.
func checkMinifiers(ctx context.Context, result *doctorResult, loader bookmarklet.AssetLoader, defaults bookmarklet.Defaults) {
	const sample = "artoo.log.info('doctor');"
	opts := bookmarklet.Resolve(bookmarklet.Options{LoadingText: "doctor"}, defaults)

	for _, engine := range bookmarklet.MinifierEngines() {
		info := minifierInfo{Engine: engine}
		line, err := buildSample(loader, engine, sample, opts)
		if err == nil {
			_, err = jsvm.Run(ctx, line, jsvm.RunOptions{})
		}
		if err != nil {
			info.Error = err.Error()
			result.Warnings = append(result.Warnings, fmt.Sprintf("Minifier %s: %v", engine, err))
		} else {
			info.OK = true
			info.Bytes = len(line)
		}
		result.Minifiers = append(result.Minifiers, info)
	}
}

func buildSample(loader bookmarklet.AssetLoader, engine, content string, opts bookmarklet.Options) (string, error) {
	m, err := bookmarklet.NewMinifier(engine)
	if err != nil {
		return "", err
	}
	r, err := bookmarklet.NewRenderer(bookmarklet.WithAssetLoader(loader), bookmarklet.WithMinifier(m))
	if err != nil {
		return "", err
	}
	return r.Render(content, opts)
}

// checkConfig loads the config named by BOOKMARKLET_CONFIG, if any.
func checkConfig(result *doctorResult) {
	if result.Config.Name == "" {
		return
	}
	if _, err := config.LoadConfig(result.Config.Name); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Config %s: %v", result.Config.Name, err))
		return
	}
	result.Config.Found = true
}

// checkEnvironment detects CI environments.
func checkEnvironment(result *doctorResult) {
	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}
}

// checkSystem verifies system requirements.
func checkSystem(result *doctorResult) {
	tmpDir := os.TempDir()
	testFile := filepath.Join(tmpDir, "bookmarklet-doctor-test")
	if err := os.WriteFile(testFile, []byte("test"), 0600); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", tmpDir))
	} else {
		_ = os.Remove(testFile)
		result.System.TempWritable = true
	}
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, env *Environment, r *doctorResult) {
	ok := func(format string, args ...any) {
		fmt.Fprintf(w, "  %s %s\n", env.UI.OK("[OK]"), fmt.Sprintf(format, args...))
	}
	bad := func(format string, args ...any) {
		fmt.Fprintf(w, "  %s %s\n", env.UI.Error("[ERROR]"), fmt.Sprintf(format, args...))
	}

	fmt.Fprintln(w, env.UI.Bold("bookmarklet doctor"))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Assets")
	if r.Assets.Path != "" {
		ok("Custom path: %s", r.Assets.Path)
	} else {
		ok("Source: embedded")
	}
	if r.Assets.Template {
		ok("Bookmarklet template: loaded")
	} else {
		bad("Bookmarklet template: missing")
	}
	if r.Assets.Defaults {
		ok("Defaults: version %s, %s", r.Assets.DefaultVersion, r.Assets.ProdURL)
	} else {
		bad("Defaults: not loaded")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Minifiers")
	for _, m := range r.Minifiers {
		if m.OK {
			ok("%s: %d bytes", m.Engine, m.Bytes)
		} else {
			fmt.Fprintf(w, "  %s %s: failed\n", env.UI.Warn("[WARN]"), m.Engine)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	ok("Platform: %s/%s", r.Env.OS, r.Env.Arch)
	if r.Config.Found {
		ok("Config: %s", r.Config.Name)
	}
	if r.Env.CI {
		ok("CI: detected")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		ok("Temp directory: writable")
	} else {
		bad("Temp directory: not writable")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  %s %s\n", env.UI.Warn("[WARN]"), warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  %s %s\n", env.UI.Error("[ERROR]"), err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to build")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
