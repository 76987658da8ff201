package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// errUsage marks errors caused by bad command-line input.
var errUsage = errors.New("usage error")

const usage = `Usage: sundew [-config PATH] <command> [flags]

Commands:
  fetch      download and clean a Project Gutenberg book
  generate   train an n-gram model on a corpus and print generated text
  cache      list or remove cached corpora
  version    print version information

Run 'sundew <command> -h' for command flags.
`

// app carries what every command needs.
type app struct {
	config *Config
	logger *slog.Logger
	stdout io.Writer
	stderr io.Writer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run parses global flags, loads the config and dispatches to a command. It
// returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("sundew", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { _, _ = fmt.Fprint(stderr, usage) }
	configPath := fs.String("config", "./config.json", "path to the JSON config file (empty for defaults only)")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	command, rest := fs.Arg(0), fs.Args()[1:]
	if command == "version" {
		_, _ = fmt.Fprintf(stdout, "sundew %s (commit %s, built %s)\n", Version, Commit, BuildDate)
		return 0
	}

	config, err := LoadConfig(*configPath)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "failed to load configuration: %v\n", err)
		return 1
	}

	a := &app{
		config: config,
		logger: slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: parseLogLevel(config.LogLevel)})),
		stdout: stdout,
		stderr: stderr,
	}

	switch command {
	case "fetch":
		err = a.runFetch(ctx, rest)
	case "generate":
		err = a.runGenerate(rest)
	case "cache":
		err = a.runCache(ctx, rest)
	default:
		_, _ = fmt.Fprintf(stderr, "unknown command %q\n\n%s", command, usage)
		return 2
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, flag.ErrHelp):
		return 0
	case errors.Is(err, errUsage):
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	default:
		a.logger.Error("Command failed", "command", command, "error", err)
		return 1
	}
}

// newFlagSet creates a subcommand flag set that reports errors instead of
// exiting.
func (a *app) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

// parseFlags parses args, turning parse failures into usage errors.
func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	return nil
}
