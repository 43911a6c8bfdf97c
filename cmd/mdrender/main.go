package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if wantsVerbose(os.Args[1:]) {
		logger := newLogger(os.Stderr, false, true)
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			logger.Debug(fmt.Sprintf(format, args...))
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	os.Exit(runMain(os.Args[1:], DefaultEnv()))
}

// runMain runs the CLI and maps the outcome to an exit code.
func runMain(args []string, env *Environment) int {
	ctx, stop := notifyContext(context.Background())
	defer stop()

	err := run(ctx, args, env)
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
	}
	return exitCodeFor(err)
}

// run dispatches to the subcommand named by args[0]. A Markdown path in
// first position is shorthand for "render".
func run(ctx context.Context, args []string, env *Environment) error {
	if len(args) == 0 {
		printUsage(env.Stderr)
		return ErrUsage
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "render":
		return runRenderCommand(ctx, rest, env)
	case "copy":
		return runCopyCommand(ctx, rest, env)
	case "variants":
		return runVariantsCommand(rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "go-mdrender %s\n", Version)
		return nil
	case "help", "-h", "--help":
		return runHelp(rest, env)
	}

	if looksLikeMarkdown(cmd) {
		return runRenderCommand(ctx, args, env)
	}
	printUsage(env.Stderr)
	return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd)
}

// wantsVerbose reports whether -v or --verbose appears before "--".
func wantsVerbose(args []string) bool {
	if i := slices.Index(args, "--"); i >= 0 {
		args = args[:i]
	}
	return slices.Contains(args, "-v") || slices.Contains(args, "--verbose")
}

// newLogger returns a text logger on w: errors only when quiet, debug when
// verbose, warnings otherwise.
func newLogger(w io.Writer, quiet, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case quiet:
		level = slog.LevelError
	case verbose:
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
