package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"habitctl/internal/chart"
	"habitctl/internal/config"
	"habitctl/internal/exitcode"
	"habitctl/internal/output"
	"habitctl/internal/progress"
	"habitctl/internal/service"
)

func init() {
	Register(&ProgressCmd{})
}

// ProgressCmd renders the aggregated completion chart for a period.
type ProgressCmd struct {
	period string
	table  bool
}

// SetPeriod sets the period (for testing).
func (c *ProgressCmd) SetPeriod(p string) { c.period = p }

// SetTable switches to plain table output (for testing).
func (c *ProgressCmd) SetTable(v bool) { c.table = v }

func (c *ProgressCmd) Name() string      { return "progress" }
func (c *ProgressCmd) Aliases() []string { return nil }
func (c *ProgressCmd) Synopsis() string  { return "Show completion per habit over a period" }
func (c *ProgressCmd) Usage() string {
	return "habitctl progress [common flags] [--period weekly|monthly] [--table]"
}
func (c *ProgressCmd) NeedsAuth() bool { return true }

func (c *ProgressCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.period, "period", string(service.PeriodWeekly), "")
	fs.BoolVar(&c.table, "table", false, "")
}

func (c *ProgressCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if c.period == "" {
		c.period = string(service.PeriodWeekly)
	}
	period := service.Period(c.period)
	if !period.Valid() {
		fmt.Fprintf(errOut, "error: period must be %q or %q\n", service.PeriodWeekly, service.PeriodMonthly)
		return exitcode.UserError
	}

	if !c.table {
		view := progress.NewView(svc, chart.NewBars, 0)
		rendered, err := view.Show(ctx, period)
		if err != nil {
			fmt.Fprintf(errOut, "error: backend error: %s\n", err)
			return exitcode.BackendError
		}
		if rendered == "" {
			if !cfg.Quiet {
				fmt.Fprintln(out, "no progress data")
			}
			return exitcode.Success
		}
		fmt.Fprint(out, rendered)
		return exitcode.Success
	}

	entries, err := svc.Progress(ctx, period)
	if err != nil {
		fmt.Fprintf(errOut, "error: backend error: %s\n", err)
		return exitcode.BackendError
	}
	if len(entries) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no progress data")
		}
		return exitcode.Success
	}
	for _, e := range entries {
		output.FormatProgressEntry(out, e)
	}
	return exitcode.Success
}
