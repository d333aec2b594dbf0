package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"habitctl/internal/config"
	"habitctl/internal/exitcode"
	"habitctl/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "habitctl help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  habitctl                                            Show today's checklist
  habitctl list [common flags] [--date YYYY-MM-DD]    Show the checklist for a date
  habitctl done [common flags] [--date YYYY-MM-DD] <id|name>
  habitctl undo [common flags] [--date YYYY-MM-DD] <id|name>
  habitctl progress [common flags] [--period weekly|monthly] [--table]
  habitctl quote [common flags]
  habitctl track [common flags]                       Interactive tracker
  habitctl register [common flags] <username> <password>
  habitctl login [common flags] <username> <password>
  habitctl logout [common flags]
  habitctl help
  habitctl version

Common flags:
  --config <dir>   Override config directory
  --server <url>   Override backend base URL
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
