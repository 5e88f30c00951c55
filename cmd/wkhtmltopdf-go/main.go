package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	wkhtmltopdf "github.com/ajsjunior/wkhtmltopdf-1"
	"github.com/ajsjunior/wkhtmltopdf-1/internal/config"
	"github.com/ajsjunior/wkhtmltopdf-1/internal/hints"
)

// Version is set at build time via ldflags.
var Version = "dev"

// commands lists the subcommand names. Anything else is handed to convert.
var commands = map[string]bool{
	"convert": true,
	"doctor":  true,
	"init":    true,
	"version": true,
	"help":    true,
}

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		slog.Debug(fmt.Sprintf(format, args...))
	}))

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches to a subcommand and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	cmd, rest := "convert", args[1:]
	if isCommand(rest[0]) {
		cmd, rest = rest[0], rest[1:]
	}

	var err error
	switch cmd {
	case "version":
		fmt.Fprintf(env.Stdout, "wkhtmltopdf-go %s\n", Version)
		return ExitSuccess
	case "help":
		return runHelp(rest, env)
	case "doctor":
		return runDoctorCmd(ctx, rest, env)
	case "init":
		err = runInit(rest, env)
	default:
		err = runConvertCmd(ctx, rest, env)
	}

	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// isCommand reports whether arg names a subcommand.
func isCommand(arg string) bool {
	return commands[arg]
}

// hintFor returns an actionable hint for known failures, or "".
func hintFor(err error) string {
	var pe *wkhtmltopdf.ProcessError
	switch {
	case errors.Is(err, wkhtmltopdf.ErrExecutableNotFound):
		return hints.ForExecutableNotFound()
	case errors.Is(err, wkhtmltopdf.ErrConversionTimeout):
		return hints.ForTimeout()
	case errors.As(err, &pe):
		return hints.ForConversionFailed(pe.Stderr)
	case errors.Is(err, config.ErrJobNotFound):
		return hints.ForJobNotFound()
	case errors.Is(err, ErrOutputDir):
		return hints.ForOutputDirectory()
	}
	return ""
}

// newLogger returns a text logger on w. Verbose wins over quiet.
func newLogger(w io.Writer, verbose, quiet bool) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case verbose:
		level = slog.LevelDebug
	case quiet:
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
