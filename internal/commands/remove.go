package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todocli/internal/config"
	"todocli/internal/exitcode"
	"todocli/internal/task"
)

func init() {
	Register(&RemoveCmd{})
}

// RemoveCmd implements the remove command.
// Remaining tasks are renumbered 1..N after a removal.
type RemoveCmd struct{}

func (c *RemoveCmd) Name() string      { return "remove" }
func (c *RemoveCmd) Aliases() []string { return []string{"rm"} }
func (c *RemoveCmd) Synopsis() string  { return "Delete a task and renumber the rest" }
func (c *RemoveCmd) Usage() string     { return "todo remove [common flags] <index>" }
func (c *RemoveCmd) NeedsStore() bool  { return true }

func (c *RemoveCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RemoveCmd) Run(ctx context.Context, cfg *config.Config, tasks *task.List, args []string, out, errOut io.Writer) int {
	index, code := parseIndexArg(args, errOut)
	if code != exitcode.Success {
		return code
	}

	removed, err := tasks.Remove(index)
	if err != nil {
		return reportTaskError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "removed: %s\n", removed.Title)
		if n := tasks.Len(); n > 0 {
			fmt.Fprintf(out, "renumbered: 1..%d\n", n)
		} else {
			fmt.Fprintln(out, "no tasks left")
		}
	}
	return exitcode.Success
}
