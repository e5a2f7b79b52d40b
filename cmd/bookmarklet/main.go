package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	bookmarklet "github.com/alnah/go-bookmarklet"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Configure GOMAXPROCS with conditional logging
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if slices.Contains(os.Args, "--verbose") || slices.Contains(os.Args, "-v") {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	ctx, stop := notifyContext(context.Background())
	code := runMain(ctx, os.Args, DefaultEnv())
	stop()
	os.Exit(code)
}

// runMain dispatches args[1] and returns the exit code.
func runMain(ctx context.Context, args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]
	var err error
	switch cmd {
	case "build":
		err = runBuild(ctx, rest, env)
	case "template":
		err = runExternal(ctx, bookmarklet.KindTemplates, rest, env)
	case "stylesheet":
		err = runExternal(ctx, bookmarklet.KindStylesheets, rest, env)
	case "render":
		err = runRender(ctx, rest, env)
	case "check":
		err = runCheck(ctx, rest, env)
	case "install":
		err = runInstall(ctx, rest, env)
	case "completion":
		err = runCompletion(rest, env)
	case "doctor":
		if slices.Contains(rest, "-h") || slices.Contains(rest, "--help") {
			printDoctorUsage(env.Stdout)
			return ExitSuccess
		}
		return runDoctorCmd(ctx, rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "bookmarklet %s (library %s)\n", Version, bookmarklet.Version)
		return ExitSuccess
	case "help", "-h", "--help":
		runHelp(rest, env)
		return ExitSuccess
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}

	if errors.Is(err, flag.ErrHelp) {
		runHelp([]string{cmd}, env)
		return ExitSuccess
	}
	if err != nil {
		printError(env, err, loadingTextArg(rest))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// loadingTextArg returns the --loading-text value in args, for hints.
// A value from the config file is not seen here.
func loadingTextArg(args []string) string {
	for i, a := range args {
		if a == "--loading-text" && i+1 < len(args) {
			return args[i+1]
		}
		if v, ok := strings.CutPrefix(a, "--loading-text="); ok {
			return v
		}
	}
	return ""
}
