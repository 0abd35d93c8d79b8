package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"todocli/internal/config"
	"todocli/internal/exitcode"
	"todocli/internal/task"
)

func init() {
	Register(&DoneCmd{})
}

// DoneCmd implements the done command.
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return nil }
func (c *DoneCmd) Synopsis() string  { return "Mark a task completed" }
func (c *DoneCmd) Usage() string     { return "todo done [common flags] <index>" }
func (c *DoneCmd) NeedsStore() bool  { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, tasks *task.List, args []string, out, errOut io.Writer) int {
	index, code := parseIndexArg(args, errOut)
	if code != exitcode.Success {
		return code
	}

	t, err := tasks.MarkDone(index)
	if err != nil {
		return reportTaskError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "completed: %s\n", t.Title)
	}
	return exitcode.Success
}

// parseIndexArg parses the index argument and reports usage errors.
func parseIndexArg(args []string, errOut io.Writer) (int, int) {
	index, err := ParseIndex(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return 0, exitcode.UserError
	}
	return index, exitcode.Success
}

// reportTaskError prints a task list error and returns its exit code.
func reportTaskError(errOut io.Writer, err error) int {
	var nf *task.NotFoundError
	if errors.As(err, &nf) {
		fmt.Fprintf(errOut, "error: task not found: %d\n", nf.Index)
		return exitcode.UserError
	}
	fmt.Fprintf(errOut, "error: %v\n", err)
	return exitcode.UserError
}
