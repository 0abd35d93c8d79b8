// Package cli parses the command line and runs one command per invocation.
package cli

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"todocli/internal/commands"
	"todocli/internal/config"
	"todocli/internal/exitcode"
	"todocli/internal/logging"
	"todocli/internal/output"
	"todocli/internal/store"
	"todocli/internal/task"
)

// StoreFactory creates a Store from config.
// Used to inject the backend during dispatch.
type StoreFactory func(ctx context.Context, cfg *config.Config) (store.Store, error)

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  StoreFactory
}

// NewDispatcher creates a new dispatcher with the given registry and store
// factory. A nil factory uses store.Open.
func NewDispatcher(registry *commands.Registry, factory StoreFactory) *Dispatcher {
	if factory == nil {
		factory = store.Open
	}
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// No args -> dispatch to "list" command with no args
	if len(args) == 0 {
		return d.dispatch(ctx, "list", nil, out, errOut)
	}

	cmdName := args[0]
	switch cmdName {
	case "--help", "-help", "-h":
		return d.dispatch(ctx, "help", args[1:], out, errOut)
	case "--version", "-version", "-v":
		return d.dispatch(ctx, "version", args[1:], out, errOut)
	}

	// If first token starts with -, it's an error (flags require a command)
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	return d.dispatch(ctx, cmdName, args[1:], out, errOut)
}

func (d *Dispatcher) dispatch(ctx context.Context, cmdName string, args []string, out, errOut io.Writer) int {
	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}
	return d.dispatchCommand(ctx, cmd, args, out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	// Create flag set with custom error handling
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves

	// Common flags
	var opts config.Options
	var quiet bool
	var debug bool

	fs.StringVar(&opts.DataDir, "data-dir", "", "")
	fs.StringVar(&opts.ConfigFile, "config", "", "")
	fs.StringVar(&opts.Backend, "backend", "", "")
	fs.BoolVar(&quiet, "quiet", false, "")
	fs.BoolVar(&debug, "debug", false, "")

	// Register command-specific flags
	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			commands.PrintUsage(out, cmd)
			return exitcode.Success
		}
		return reportFlagError(errOut, err)
	}

	// A leading "-" that survived parsing is an unknown flag, unless the
	// user ended flag parsing with "--".
	positionalArgs := fs.Args()
	if len(positionalArgs) > 0 && strings.HasPrefix(positionalArgs[0], "-") && !endedFlags(args, positionalArgs) {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", positionalArgs[0])
		return exitcode.UserError
	}

	cfg, err := config.New(opts)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.ConfigError
	}
	cfg.Quiet = quiet
	cfg.Debug = debug

	logger := logging.New(errOut, cfg.LogLevel, cfg.Debug)
	ctx = logging.WithLogger(ctx, logger)
	ctx = output.WithRenderer(ctx, lipgloss.NewRenderer(out))
	logger.Debug("dispatch", "command", cmd.Name(), "backend", cfg.Backend, "dir", cfg.Dir)

	storeCmd, isStoreCmd := cmd.(commands.StoreCommand)
	if !cmd.NeedsStore() && !isStoreCmd {
		return cmd.Run(ctx, cfg, nil, positionalArgs, out, errOut)
	}

	st, err := d.factory(ctx, cfg)
	if err != nil {
		fmt.Fprintf(errOut, "error: store error: %v\n", err)
		return exitcode.StoreError
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Warn("close store", "path", st.Path(), "err", err)
		}
	}()

	if isStoreCmd {
		return storeCmd.RunStore(ctx, cfg, st, positionalArgs, out, errOut)
	}

	loaded, err := st.Load(ctx)
	if err != nil {
		return reportStoreError(errOut, st.Path(), err)
	}
	tasks := task.NewList(loaded)

	// Hold confirmations back until the change is on disk.
	var buf bytes.Buffer
	code := cmd.Run(ctx, cfg, tasks, positionalArgs, &buf, errOut)

	if code == exitcode.Success && tasks.Changed() {
		if err := st.Save(ctx, tasks.Tasks()); err != nil {
			return reportStoreError(errOut, st.Path(), err)
		}
	} else {
		logger.Debug("store unchanged, not saving", "path", st.Path(), "code", code)
	}

	if _, err := io.Copy(out, &buf); err != nil {
		logger.Warn("write output", "err", err)
	}
	return code
}

// reportFlagError prints a flag parsing error and returns the exit code.
func reportFlagError(errOut io.Writer, err error) int {
	errStr := err.Error()

	// Check for missing flag value
	if strings.HasPrefix(errStr, "flag needs an argument:") {
		flagName := strings.TrimSpace(strings.TrimPrefix(errStr, "flag needs an argument:"))
		fmt.Fprintf(errOut, "error: flag needs an argument: %s\n", flagName)
		return exitcode.UserError
	}

	// Check for unknown flag
	if strings.HasPrefix(errStr, "flag provided but not defined:") {
		flagName := strings.TrimSpace(strings.TrimPrefix(errStr, "flag provided but not defined:"))
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", flagName)
		return exitcode.UserError
	}

	fmt.Fprintf(errOut, "error: %s\n", errStr)
	return exitcode.UserError
}

// reportStoreError prints a store load or save error and returns the exit code.
func reportStoreError(errOut io.Writer, path string, err error) int {
	var decodeErr *store.DecodeError
	switch {
	case errors.Is(err, fs.ErrNotExist):
		fmt.Fprintf(errOut, "error: store not found: %s (run: todo init)\n", path)
	case errors.As(err, &decodeErr):
		fmt.Fprintf(errOut, "error: corrupt store: %v\n", err)
	default:
		fmt.Fprintf(errOut, "error: store error: %v\n", err)
	}
	return exitcode.StoreError
}

// endedFlags reports whether positional came after a "--" terminator.
func endedFlags(args, positional []string) bool {
	n := len(args) - len(positional)
	return n > 0 && args[n-1] == "--"
}
