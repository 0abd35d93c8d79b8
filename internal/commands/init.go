package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todocli/internal/config"
	"todocli/internal/exitcode"
	"todocli/internal/store"
	"todocli/internal/task"
)

func init() {
	Register(&InitCmd{})
}

// InitCmd implements the init command. It creates an empty store so that
// the other commands have something to load.
type InitCmd struct{}

func (c *InitCmd) Name() string      { return "init" }
func (c *InitCmd) Aliases() []string { return nil }
func (c *InitCmd) Synopsis() string  { return "Create an empty task store" }
func (c *InitCmd) Usage() string     { return "todo init [common flags]" }
func (c *InitCmd) NeedsStore() bool  { return false }

func (c *InitCmd) RegisterFlags(fs *flag.FlagSet) {}

// Run opens the configured store itself. The dispatcher calls RunStore.
func (c *InitCmd) Run(ctx context.Context, cfg *config.Config, tasks *task.List, args []string, out, errOut io.Writer) int {
	st, err := store.Open(ctx, cfg)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.ConfigError
	}
	defer st.Close()
	return c.RunStore(ctx, cfg, st, args, out, errOut)
}

func (c *InitCmd) RunStore(ctx context.Context, cfg *config.Config, st store.Store, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	created, err := st.Init(ctx)
	if err != nil {
		fmt.Fprintf(errOut, "error: store error: %v\n", err)
		return exitcode.StoreError
	}

	if !cfg.Quiet {
		if created {
			fmt.Fprintf(out, "initialized: %s\n", st.Path())
		} else {
			fmt.Fprintf(out, "already initialized: %s\n", st.Path())
		}
	}
	return exitcode.Success
}
