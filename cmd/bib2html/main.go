package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Configure GOMAXPROCS with conditional logging.
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if hasVerboseFlag(os.Args[1:]) {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// hasVerboseFlag scans raw args for -v/--verbose before full flag parsing.
// The maxprocs logger must be decided before parseConvertFlags runs.
func hasVerboseFlag(args []string) bool {
	for _, a := range args {
		if a == "-v" || a == "--verbose" {
			return true
		}
	}
	return false
}

// runMain dispatches commands and returns the process exit code.
// args includes the program name at args[0]. Anything that is not a
// recognized command is treated as conversion input.
func runMain(args []string, env *Environment) int {
	rest := args[1:]
	if len(rest) == 0 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	switch rest[0] {
	case "version":
		fmt.Fprintf(env.Stdout, "go-bib2html %s\n", Version)
		return ExitSuccess
	case "help":
		runHelp(rest[1:], env)
		return ExitSuccess
	case "doctor":
		return runDoctorCmd(rest[1:], env)
	case "completion":
		if err := runCompletion(rest[1:], env); err != nil {
			fmt.Fprintln(env.Stderr, err)
			return exitCodeFor(err)
		}
		return ExitSuccess
	case "convert":
		// Explicit form of the default operation
		return runConvertCmd(rest[1:], env)
	}

	return runConvertCmd(rest, env)
}

// runConvertCmd parses flags and runs the default conversion operation.
func runConvertCmd(args []string, env *Environment) int {
	flags, positional, err := parseConvertFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		// pflag already printed the parse error and usage to stderr
		return ExitUsage
	}

	if flags.version {
		fmt.Fprintf(env.Stdout, "go-bib2html %s\n", Version)
		return ExitSuccess
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := runConvert(ctx, positional, flags, env); err != nil {
		fmt.Fprintf(env.Stderr, "Error: %v%s\n", err, hintFor(err))
		return exitCodeFor(err)
	}
	return ExitSuccess
}
