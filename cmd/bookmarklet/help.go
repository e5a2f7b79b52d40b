package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: bookmarklet <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build       Build artoo.js bookmarklets from scripts")
	fmt.Fprintln(w, "  template    Wrap templates for artoo.templates")
	fmt.Fprintln(w, "  stylesheet  Wrap stylesheets for artoo.stylesheets")
	fmt.Fprintln(w, "  render      Print a bookmarklet to stdout")
	fmt.Fprintln(w, "  check       Check a generated bookmarklet or script")
	fmt.Fprintln(w, "  install     Write an HTML page to install a bookmarklet")
	fmt.Fprintln(w, "  doctor      Check assets and minifiers")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'bookmarklet help <command>' for details on a specific command.")
}

// printCommonFlags prints flags shared by every command.
func printCommonFlags(w io.Writer) {
	fmt.Fprintln(w, "Common:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs")
	fmt.Fprintln(w)
}

// printBookmarkletFlags prints the bookmarklet option flags.
func printBookmarkletFlags(w io.Writer) {
	fmt.Fprintln(w, "Bookmarklet:")
	fmt.Fprintln(w, "      --version <v>         artoo.js version: latest, edge or x.y.z")
	fmt.Fprintln(w, "      --url <url>           artoo.js location (default from version)")
	fmt.Fprintln(w, "      --loading-text <s>    Logged while artoo.js loads (inserted as-is)")
	fmt.Fprintln(w, "      --random              Add a cache-busting query to the script url")
	fmt.Fprintln(w, "  -s, --setting <k=v>       artoo.js setting, repeatable (values read as YAML)")
	fmt.Fprintln(w, "  -m, --minifier <s>        Minifier: esbuild, tdewolff, none")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Assets:")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom templates/ and defaults/")
	fmt.Fprintln(w)
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: bookmarklet build [input...] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Build one bookmarklet per script. The script runs once artoo.js is")
	fmt.Fprintln(w, "loaded. Without input, a blank bookmarklet named artoo.bookmark.js is built.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    .js file, directory of .js files, or - for stdin")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output directory, or .js file for one input")
	fmt.Fprintln(w, "  -w, --watch               Rebuild when inputs change")
	fmt.Fprintln(w)
	printBookmarkletFlags(w)
	printCommonFlags(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  bookmarklet build")
	fmt.Fprintln(w, "  bookmarklet build scraper.js --version 0.3.4 -s log.level=warning")
	fmt.Fprintln(w, "  bookmarklet build scripts/ -o dist/ --watch")
}

// printExternalUsage prints usage for the template and stylesheet commands.
func printExternalUsage(w io.Writer, name, kind string) {
	fmt.Fprintf(w, "Usage: bookmarklet %s <input...> [flags]\n", name)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Wrap files so that loading them registers artoo.%s['<name>'].\n", kind)
	fmt.Fprintf(w, "Names are relative to ./%s when it exists, else to the working directory.\n", kind)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    File or directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output directory, or .js file to concatenate")
	fmt.Fprintln(w, "  -w, --watch               Rewrap when inputs change")
	fmt.Fprintf(w, "  -b, --base <dir>          Directory names are relative to (default %s)\n", kind)
	fmt.Fprintln(w, "      --asset-path <dir>    Custom templates/ and defaults/")
	fmt.Fprintln(w)
	printCommonFlags(w)
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: bookmarklet render [input] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the bookmarklet for input (or a blank one) to stdout.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Preview:")
	fmt.Fprintln(w, "  -p, --pretty              Print the unminified script")
	fmt.Fprintln(w, "      --color <s>           Highlight --pretty output: auto, always, never")
	fmt.Fprintln(w, "      --style <s>           Highlight style (default monokai)")
	fmt.Fprintln(w)
	printBookmarkletFlags(w)
	printCommonFlags(w)
}

// printCheckUsage prints usage for the check command.
func printCheckUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: bookmarklet check <file|-> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check that a generated script parses. Bookmarklets are also run on a")
	fmt.Fprintln(w, "stub page to show the script they inject and what they log.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --artoo-loaded        Simulate a page where artoo.js is already injected")
	fmt.Fprintln(w)
	printCommonFlags(w)
}

// printInstallUsage prints usage for the install command.
func printInstallUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: bookmarklet install [input] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Write an HTML page with a link to drag to the bookmarks bar.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "  -o, --output <file>       Output HTML file (default install.html)")
	fmt.Fprintln(w, "      --title <s>           Link text and page title (default artoo.js)")
	fmt.Fprintln(w, "      --description <file>  Markdown shown on the page")
	fmt.Fprintln(w, "      --date <value>        Footer date: auto, auto:<format>, or literal text")
	fmt.Fprintln(w, "                            Formats use YYYY, MM, DD (e.g. auto:DD/MM/YYYY)")
	fmt.Fprintln(w, "                            Presets: auto:iso, auto:european, auto:us, auto:long")
	fmt.Fprintln(w)
	printBookmarkletFlags(w)
	printCommonFlags(w)
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: bookmarklet doctor [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check embedded or custom assets, build a sample with every minifier,")
	fmt.Fprintln(w, "and report the environment.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  BOOKMARKLET_CONFIG, BOOKMARKLET_VERSION, BOOKMARKLET_URL,")
	fmt.Fprintln(w, "  BOOKMARKLET_MINIFIER, BOOKMARKLET_ASSET_PATH, BOOKMARKLET_OUTPUT_DIR")
}

// runHelp prints help for the named command, or the main usage.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "build":
		printBuildUsage(env.Stdout)
	case "template":
		printExternalUsage(env.Stdout, "template", "templates")
	case "stylesheet":
		printExternalUsage(env.Stdout, "stylesheet", "stylesheets")
	case "render":
		printRenderUsage(env.Stdout)
	case "check":
		printCheckUsage(env.Stdout)
	case "install":
		printInstallUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: bookmarklet version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: bookmarklet help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n\n", args[0])
		printUsage(env.Stderr)
	}
}
