// Package cmd implements the CLI command structure for tasker.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tasker/internal/config"
	"github.com/nibzard/tasker/internal/logging"
	"github.com/nibzard/tasker/internal/repository"
	"github.com/nibzard/tasker/internal/shell"
	"github.com/nibzard/tasker/internal/task"
	"github.com/nibzard/tasker/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// streams are the standard streams a command reads from and writes to.
type streams struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

// app carries the loaded configuration and shared collaborators.
type app struct {
	cfg     *config.Config
	sources *config.ConfigWithSources
	logger  *log.Logger
	repo    *repository.Repository
	streams
}

// Run executes the tasker CLI.
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, streams{in: os.Stdin, out: os.Stdout, err: os.Stderr})
}

func run(ctx context.Context, args []string, s streams) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("tasker", flag.ContinueOnError)
	fs.SetOutput(s.err)
	fs.Usage = func() {
		printUsage(fs, s.err)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, s.out)
		return nil
	}
	if *showVersion {
		return versionCommand(s.out)
	}

	cfg := cws.Config
	logger, err := logging.New(s.err, logging.Options{
		Level:           cfg.LogLevel,
		Format:          cfg.LogFormat,
		ReportTimestamp: cfg.LogTimestamps,
		ReportCaller:    cfg.LogCaller,
		Prefix:          "tasker",
	})
	if err != nil {
		return fmt.Errorf("configuring logger: %w", err)
	}

	a := &app{
		cfg:     cfg,
		sources: cws,
		logger:  logger,
		repo:    repository.New(cfg.StoreFile, repository.WithLogger(logger)),
		streams: s,
	}
	logger.Debug("configuration loaded", "store", cfg.StoreFile, "files", cws.Files)

	// Determine the subcommand; "shell" is the default
	subcommand := "shell"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "shell":
		return a.shellCommand(ctx, remainingArgs)
	case "ls", "list":
		return a.lsCommand(remainingArgs)
	case "tui":
		return a.tuiCommand(ctx, remainingArgs)
	case "doctor":
		return a.doctorCommand(remainingArgs)
	case "config":
		return a.configCommand(remainingArgs)
	case "version":
		return versionCommand(s.out)
	case "help":
		printUsage(fs, s.out)
		return nil
	default:
		fmt.Fprintf(s.err, "Unknown command: %s\n", subcommand)
		printUsage(fs, s.err)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// shellCommand runs the interactive command loop.
func (a *app) shellCommand(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	sh := shell.New(a.repo, a.in, a.out,
		shell.WithPrompt(a.cfg.Prompt),
		shell.WithLogger(a.logger),
	)
	return sh.Run(ctx)
}

// lsCommand prints the tasks matching an optional filter and exits.
func (a *app) lsCommand(args []string) error {
	fs := flag.NewFlagSet("tasker ls", flag.ContinueOnError)
	fs.SetOutput(a.err)
	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) > 1 {
		return fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}
	filter := task.FilterAll
	if len(remaining) == 1 {
		f, err := task.ParseFilter(remaining[0])
		if err != nil {
			return err
		}
		filter = f
	}

	tasks, err := a.repo.List(filter)
	if err != nil {
		return err
	}
	shell.WriteTasks(a.out, tasks)
	return nil
}

// tuiCommand launches the TUI.
func (a *app) tuiCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("tasker tui", flag.ContinueOnError)
	fs.SetOutput(a.err)
	refresh := fs.Duration("refresh", 0, "Reload interval for the store file (e.g. 5s)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return ui.RunTUI(ctx, a.repo, a.cfg.StoreFile, ui.WithRefreshInterval(*refresh))
}

// configCommand prints the effective configuration.
func (a *app) configCommand(args []string) error {
	fs := flag.NewFlagSet("tasker config", flag.ContinueOnError)
	fs.SetOutput(a.err)
	example := fs.Bool("example", false, "Print an example tasker.toml")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	if *example {
		fmt.Fprint(a.out, config.ExampleConfig())
		return nil
	}

	if len(a.sources.Files) == 0 {
		fmt.Fprintln(a.out, "Config files: (none)")
	} else {
		fmt.Fprintln(a.out, "Config files:")
		for _, f := range a.sources.Files {
			fmt.Fprintf(a.out, "  %s\n", f)
		}
	}
	fmt.Fprintln(a.out)
	for _, field := range config.Fields() {
		fmt.Fprintf(a.out, "%-15s = %-40q (%s)\n", field, a.cfg.Value(field), a.sources.Sources[field])
	}
	return nil
}

func versionCommand(w io.Writer) error {
	fmt.Fprintf(w, "tasker version %s\n", Version)
	return nil
}

func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "tasker - a local task tracker with an interactive shell")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  tasker [options] [command]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  shell          Start the interactive shell (default command)")
	fmt.Fprintln(w, "  ls [filter]    List tasks (done|new|in-progress) and exit")
	fmt.Fprintln(w, "  tui            Launch the terminal task viewer")
	fmt.Fprintln(w, "  doctor [-v]    Check config and task store validity")
	fmt.Fprintln(w, "  config         Show effective configuration (-example for a sample file)")
	fmt.Fprintln(w, "  version        Show version information")
	fmt.Fprintln(w, "  help           Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Shell Commands:")
	shell.WriteHelp(w)
}
