package main

import (
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	bookmarklet "github.com/alnah/go-bookmarklet"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash       Shell = "bash"
	ShellZsh        Shell = "zsh"
	ShellFish       Shell = "fish"
	ShellPowerShell Shell = "powershell"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = fmt.Errorf("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string   // --output
	Short    string   // -o (empty if none)
	Type     flagType // completion type
	Desc     string   // help text
	Values   []string // for enum flags
	FileGlob string   // for file flags
}

// commandDef describes a command for completion.
type commandDef struct {
	Name        string
	Desc        string
	Flags       []flagDef
	TakesFiles  bool   // accepts file arguments
	FilePattern string // glob for file arguments (e.g., "*.js")
}

// completionMeta holds completion-specific metadata for flags.
// This is the ONLY place where completion hints are defined.
// Flag names, types, and descriptions come from the FlagSet.
type completionMeta struct {
	Values   []string // enum values
	FileGlob string   // file glob pattern
	IsDir    bool     // directory completion
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	// Enum flags
	"minifier": {Values: bookmarklet.MinifierEngines()},
	"color":    {Values: []string{colorAuto, colorAlways, colorNever}},
	"version":  {Values: []string{bookmarklet.VersionLatest, bookmarklet.VersionEdge}},

	// File flags with glob patterns
	"config":      {FileGlob: "*.yaml,*.yml"},
	"description": {FileGlob: "*.md,*.markdown"},
	"date":        {Values: []string{"auto", "auto:iso", "auto:european", "auto:us", "auto:long"}},

	// Directory flags
	"asset-path": {IsDir: true},
	"base":       {IsDir: true},
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
// Enriches with completion metadata from flagCompletionMeta.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}
		if f.Value.Type() == "bool" {
			fd.Type = flagBool
		}

		if meta, ok := flagCompletionMeta[f.Name]; ok {
			if len(meta.Values) > 0 {
				fd.Type = flagEnum
				fd.Values = meta.Values
			} else if meta.FileGlob != "" {
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			} else if meta.IsDir {
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
// Flags are extracted from the actual FlagSets - single source of truth.
func getCommands() []commandDef {
	return []commandDef{
		{
			Name:        "build",
			Desc:        "Build bookmarklets from scripts",
			Flags:       extractFlagsFromFlagSet(newBuildFlagSet(&buildFlags{})),
			TakesFiles:  true,
			FilePattern: "*.js",
		},
		{
			Name:       "template",
			Desc:       "Wrap templates for artoo.js",
			Flags:      extractFlagsFromFlagSet(newExternalFlagSet("template", &externalFlags{})),
			TakesFiles: true,
		},
		{
			Name:        "stylesheet",
			Desc:        "Wrap stylesheets for artoo.js",
			Flags:       extractFlagsFromFlagSet(newExternalFlagSet("stylesheet", &externalFlags{})),
			TakesFiles:  true,
			FilePattern: "*.css",
		},
		{
			Name:        "render",
			Desc:        "Print a bookmarklet",
			Flags:       extractFlagsFromFlagSet(newRenderFlagSet(&renderFlags{})),
			TakesFiles:  true,
			FilePattern: "*.js",
		},
		{
			Name:        "check",
			Desc:        "Check a generated script",
			Flags:       extractFlagsFromFlagSet(newCheckFlagSet(&checkFlags{})),
			TakesFiles:  true,
			FilePattern: "*.js",
		},
		{
			Name:        "install",
			Desc:        "Write an HTML install page",
			Flags:       extractFlagsFromFlagSet(newInstallFlagSet(&installFlags{})),
			TakesFiles:  true,
			FilePattern: "*.js",
		},
		{
			Name:  "doctor",
			Desc:  "Check assets and minifiers",
			Flags: []flagDef{{Long: "json", Type: flagBool, Desc: "output as JSON"}},
		},
		{Name: "completion", Desc: "Generate shell completion script"},
		{Name: "version", Desc: "Show version information"},
		{Name: "help", Desc: "Show help for a command"},
	}
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	switch shell {
	case ShellBash:
		return generateBash(w)
	case ShellZsh:
		return generateZsh(w)
	case ShellFish:
		return generateFish(w)
	case ShellPowerShell:
		return generatePowerShell(w)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish, powershell)", ErrUnsupportedShell, shell)
	}
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}

	shell := Shell(args[0])
	return GenerateCompletion(env.Stdout, shell)
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: bookmarklet completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w, "  powershell  PowerShell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(bookmarklet completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (before compinit):")
	fmt.Fprintln(w, "    eval \"$(bookmarklet completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    bookmarklet completion fish > ~/.config/fish/completions/bookmarklet.fish")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  PowerShell:")
	fmt.Fprintln(w, "    # Add to $PROFILE:")
	fmt.Fprintln(w, "    bookmarklet completion powershell | Out-String | Invoke-Expression")
}

// commandNames returns the names of all commands.
func commandNames(cmds []commandDef) []string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return names
}

// flagWords returns "--long" and "-s" words for flags.
func flagWords(flags []flagDef) []string {
	var words []string
	for _, f := range flags {
		words = append(words, "--"+f.Long)
		if f.Short != "" {
			words = append(words, "-"+f.Short)
		}
	}
	return words
}

// globExtensions turns "*.yaml,*.yml" into ["yaml", "yml"].
func globExtensions(glob string) []string {
	var exts []string
	for _, g := range strings.Split(glob, ",") {
		if g = strings.TrimPrefix(strings.TrimSpace(g), "*."); g != "" {
			exts = append(exts, g)
		}
	}
	return exts
}

func generateBash(w io.Writer) error {
	cmds := getCommands()
	var b strings.Builder

	b.WriteString("# bash completion for bookmarklet\n")
	b.WriteString("_bookmarklet() {\n")
	b.WriteString("  local cur prev cmd\n")
	b.WriteString("  cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("  prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("  cmd=\"${COMP_WORDS[1]}\"\n\n")
	b.WriteString("  if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	fmt.Fprintf(&b, "    COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(commandNames(cmds), " "))
	b.WriteString("    return\n  fi\n\n")

	b.WriteString("  case \"$cmd\" in\n")
	for _, c := range cmds {
		if len(c.Flags) == 0 && !c.TakesFiles {
			continue
		}
		fmt.Fprintf(&b, "  %s)\n", c.Name)
		b.WriteString("    case \"$prev\" in\n")
		for _, f := range c.Flags {
			pattern := "--" + f.Long
			if f.Short != "" {
				pattern += "|-" + f.Short
			}
			switch f.Type {
			case flagEnum:
				fmt.Fprintf(&b, "    %s) COMPREPLY=($(compgen -W %q -- \"$cur\")); return ;;\n", pattern, strings.Join(f.Values, " "))
			case flagFile:
				fmt.Fprintf(&b, "    %s) COMPREPLY=($(compgen -f -X '!*.@(%s)' -- \"$cur\")); return ;;\n", pattern, strings.Join(globExtensions(f.FileGlob), "|"))
			case flagDir:
				fmt.Fprintf(&b, "    %s) COMPREPLY=($(compgen -d -- \"$cur\")); return ;;\n", pattern)
			case flagString:
				fmt.Fprintf(&b, "    %s) return ;;\n", pattern)
			}
		}
		b.WriteString("    esac\n")
		fmt.Fprintf(&b, "    if [[ \"$cur\" == -* ]]; then\n      COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(flagWords(c.Flags), " "))
		if c.TakesFiles {
			b.WriteString("    else\n      COMPREPLY=($(compgen -f -- \"$cur\"))\n")
		}
		b.WriteString("    fi\n    ;;\n")
	}
	b.WriteString("  completion)\n")
	b.WriteString("    COMPREPLY=($(compgen -W \"bash zsh fish powershell\" -- \"$cur\")) ;;\n")
	b.WriteString("  esac\n")
	b.WriteString("}\n")
	b.WriteString("shopt -s extglob\n")
	b.WriteString("complete -o filenames -F _bookmarklet bookmarklet\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func generateZsh(w io.Writer) error {
	cmds := getCommands()
	var b strings.Builder

	b.WriteString("#compdef bookmarklet\n\n")
	b.WriteString("_bookmarklet() {\n")
	b.WriteString("  local -a commands\n")
	b.WriteString("  commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "    '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	b.WriteString("  )\n\n")
	b.WriteString("  if (( CURRENT == 2 )); then\n")
	b.WriteString("    _describe 'command' commands\n")
	b.WriteString("    return\n  fi\n\n")
	b.WriteString("  case ${words[2]} in\n")
	for _, c := range cmds {
		if len(c.Flags) == 0 && !c.TakesFiles {
			continue
		}
		fmt.Fprintf(&b, "  %s)\n    _arguments \\\n", c.Name)
		for _, f := range c.Flags {
			fmt.Fprintf(&b, "      %s \\\n", zshSpec(f))
		}
		if c.TakesFiles {
			b.WriteString("      '*:file:_files'\n")
		} else {
			b.WriteString("      && return\n")
		}
		b.WriteString("    ;;\n")
	}
	b.WriteString("  completion)\n    _values 'shell' bash zsh fish powershell\n    ;;\n")
	b.WriteString("  esac\n")
	b.WriteString("}\n\n")
	b.WriteString("compdef _bookmarklet bookmarklet\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// zshSpec formats one quoted _arguments spec. Flags with a shorthand use
// brace expansion outside the quotes: {-o,--output}'[...]'.
func zshSpec(f flagDef) string {
	spec := "[" + zshEscape(f.Desc) + "]"
	switch f.Type {
	case flagEnum:
		spec += ":" + f.Long + ":(" + strings.Join(f.Values, " ") + ")"
	case flagFile:
		spec += ":file:_files -g \"*.(" + strings.Join(globExtensions(f.FileGlob), "|") + ")\""
	case flagDir:
		spec += ":directory:_files -/"
	case flagString:
		spec += ":" + f.Long + ":"
	}
	if f.Short != "" {
		return "{-" + f.Short + ",--" + f.Long + "}'" + spec + "'"
	}
	return "'--" + f.Long + spec + "'"
}

func zshEscape(s string) string {
	r := strings.NewReplacer("'", "'\\''", "[", "\\[", "]", "\\]", ":", "\\:")
	return r.Replace(s)
}

func generateFish(w io.Writer) error {
	cmds := getCommands()
	var b strings.Builder

	b.WriteString("# fish completion for bookmarklet\n")
	b.WriteString("complete -c bookmarklet -f\n")
	fmt.Fprintf(&b, "set -l bookmarklet_commands %s\n", strings.Join(commandNames(cmds), " "))
	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c bookmarklet -n \"not __fish_seen_subcommand_from $bookmarklet_commands\" -a %s -d %q\n", c.Name, c.Desc)
	}
	for _, c := range cmds {
		cond := fmt.Sprintf("-n \"__fish_seen_subcommand_from %s\"", c.Name)
		for _, f := range c.Flags {
			line := fmt.Sprintf("complete -c bookmarklet %s -l %s", cond, f.Long)
			if f.Short != "" {
				line += " -s " + f.Short
			}
			switch f.Type {
			case flagEnum:
				line += fmt.Sprintf(" -x -a %q", strings.Join(f.Values, " "))
			case flagFile, flagDir:
				line += " -r -F"
			case flagString:
				line += " -x"
			}
			line += fmt.Sprintf(" -d %q\n", f.Desc)
			b.WriteString(line)
		}
		if c.TakesFiles {
			fmt.Fprintf(&b, "complete -c bookmarklet %s -F\n", cond)
		}
	}
	b.WriteString("complete -c bookmarklet -n \"__fish_seen_subcommand_from completion\" -a \"bash zsh fish powershell\"\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func generatePowerShell(w io.Writer) error {
	cmds := getCommands()
	var b strings.Builder

	b.WriteString("# powershell completion for bookmarklet\n")
	b.WriteString("Register-ArgumentCompleter -Native -CommandName bookmarklet -ScriptBlock {\n")
	b.WriteString("    param($wordToComplete, $commandAst, $cursorPosition)\n")
	b.WriteString("    $words = $commandAst.CommandElements | ForEach-Object { $_.ToString() }\n")
	b.WriteString("    $flags = @{\n")
	for _, c := range cmds {
		quoted := make([]string, 0, len(c.Flags))
		for _, word := range flagWords(c.Flags) {
			quoted = append(quoted, "'"+word+"'")
		}
		fmt.Fprintf(&b, "        '%s' = @(%s)\n", c.Name, strings.Join(quoted, ", "))
	}
	b.WriteString("    }\n")
	fmt.Fprintf(&b, "    $commands = @('%s')\n", strings.Join(commandNames(cmds), "', '"))
	b.WriteString("    if ($words.Count -le 1 -or ($words.Count -eq 2 -and $wordToComplete)) {\n")
	b.WriteString("        $candidates = $commands\n")
	b.WriteString("    } elseif ($words[1] -eq 'completion') {\n")
	b.WriteString("        $candidates = @('bash', 'zsh', 'fish', 'powershell')\n")
	b.WriteString("    } else {\n")
	b.WriteString("        $candidates = $flags[$words[1]]\n")
	b.WriteString("    }\n")
	b.WriteString("    $candidates | Where-Object { $_ -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("        [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)\n")
	b.WriteString("    }\n")
	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}
