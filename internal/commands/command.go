// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"io"

	"todocli/internal/config"
	"todocli/internal/store"
	"todocli/internal/task"
)

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsStore returns true if the command works on the task list.
	// Commands like help and version return false.
	NeedsStore() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// cfg is always provided.
	// tasks is the loaded list, or nil if NeedsStore() returns false.
	// The caller saves tasks afterwards if Run succeeded and tasks changed.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, cfg *config.Config, tasks *task.List, args []string, out, errOut io.Writer) int
}

// StoreCommand is implemented by commands that manage the store itself
// instead of the tasks in it. The dispatcher opens the store and calls
// RunStore without loading anything.
type StoreCommand interface {
	Command

	RunStore(ctx context.Context, cfg *config.Config, st store.Store, args []string, out, errOut io.Writer) int
}
