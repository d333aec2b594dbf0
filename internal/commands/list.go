package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"habitctl/internal/checklist"
	"habitctl/internal/config"
	"habitctl/internal/dates"
	"habitctl/internal/exitcode"
	"habitctl/internal/output"
	"habitctl/internal/service"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd shows the checklist for a date. It is also the default command
// when habitctl runs without arguments.
type ListCmd struct {
	date string
}

// SetDate sets the date (for testing).
func (c *ListCmd) SetDate(date string) {
	c.date = date
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"today"} }
func (c *ListCmd) Synopsis() string  { return "Show the habit checklist for a date" }
func (c *ListCmd) Usage() string     { return "habitctl list [common flags] [--date YYYY-MM-DD]" }
func (c *ListCmd) NeedsAuth() bool   { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.date, "date", "", "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	day := c.date
	if day == "" {
		day = dates.Today()
	} else if _, err := dates.Parse(day); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}

	habits, err := svc.Habits(ctx, day)
	if err != nil {
		fmt.Fprintf(errOut, "error: backend error: %s\n", err)
		return exitcode.BackendError
	}

	cl := checklist.New(day)
	cl.Load(day, habits)

	output.FormatDateHeader(out, day)
	if cl.Empty() {
		fmt.Fprintln(out, output.NoHabitsMessage)
		return exitcode.Success
	}
	for _, h := range cl.Habits() {
		output.FormatHabit(out, h)
	}
	fmt.Fprintf(out, "%d%%\n", cl.Percentage())

	return exitcode.Success
}
