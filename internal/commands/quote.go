package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"habitctl/internal/config"
	"habitctl/internal/exitcode"
	"habitctl/internal/output"
	"habitctl/internal/service"
)

func init() {
	Register(&QuoteCmd{})
}

// QuoteCmd prints the quote of the day. A failed fetch is low-severity:
// nothing is printed and the command still succeeds.
type QuoteCmd struct{}

func (c *QuoteCmd) Name() string      { return "quote" }
func (c *QuoteCmd) Aliases() []string { return nil }
func (c *QuoteCmd) Synopsis() string  { return "Print the quote of the day" }
func (c *QuoteCmd) Usage() string     { return "habitctl quote [common flags]" }
func (c *QuoteCmd) NeedsAuth() bool   { return false }

func (c *QuoteCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *QuoteCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	q, err := svc.Quote(ctx)
	if err != nil {
		if cfg.Debug {
			fmt.Fprintf(errOut, "debug: quote fetch failed: %s\n", err)
		}
		return exitcode.Success
	}
	output.FormatQuote(out, q)
	return exitcode.Success
}
