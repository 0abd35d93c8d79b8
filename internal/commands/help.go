package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"todocli/internal/config"
	"todocli/internal/exitcode"
	"todocli/internal/task"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "todo help [command]" }
func (c *HelpCmd) NeedsStore() bool  { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, tasks *task.List, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(out, helpText)
		return exitcode.Success
	}

	cmd, ok := DefaultRegistry.Find(args[0])
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", args[0])
		return exitcode.UserError
	}
	PrintUsage(out, cmd)
	return exitcode.Success
}

// PrintUsage prints the usage block of a single command.
func PrintUsage(w io.Writer, cmd Command) {
	fmt.Fprintf(w, "%s\n\nUsage:\n  %s\n", cmd.Synopsis(), cmd.Usage())
	if aliases := cmd.Aliases(); len(aliases) > 0 {
		fmt.Fprintf(w, "\nAliases: %s\n", strings.Join(aliases, ", "))
	}
	fmt.Fprint(w, commonFlagsText)
}

const helpText = `Usage:
  todo                                List all tasks
  todo list [common flags]            List all tasks (alias: ls)
  todo add [common flags] <title...>  Add a task
  todo done [common flags] <index>    Mark a task completed
  todo remove [common flags] <index>  Delete a task and renumber the rest (alias: rm)
  todo clear [common flags]           Delete all tasks
  todo init [common flags]            Create an empty task store
  todo help [command]
  todo version
` + commonFlagsText

const commonFlagsText = `
Common flags:
  --data-dir <dir>   Override the data directory
  --config <file>    Read settings from this config file
  --backend <name>   Store backend: json or sqlite
  --quiet            Suppress informational output
  --debug            Print debug logs to stderr
`
