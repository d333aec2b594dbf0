package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"habitctl/internal/checklist"
	"habitctl/internal/config"
	"habitctl/internal/dates"
	"habitctl/internal/exitcode"
	"habitctl/internal/output"
	"habitctl/internal/service"
)

func init() {
	Register(&DoneCmd{})
	Register(&UndoCmd{})
}

var (
	errHabitNotFound  = errors.New("habit not found")
	errHabitAmbiguous = errors.New("ambiguous habit name")
)

// DoneCmd marks one habit completed for a date and saves the whole
// checklist, printing the server-confirmed percentage.
type DoneCmd struct {
	date string
}

// SetDate sets the date (for testing).
func (c *DoneCmd) SetDate(date string) { c.date = date }

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return nil }
func (c *DoneCmd) Synopsis() string  { return "Mark a habit completed and save" }
func (c *DoneCmd) Usage() string {
	return "habitctl done [common flags] [--date YYYY-MM-DD] <id|name>"
}
func (c *DoneCmd) NeedsAuth() bool { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.date, "date", "", "")
}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	return runMark(ctx, cfg, svc, c.date, args, true, out, errOut)
}

// UndoCmd marks one habit not completed for a date and saves.
type UndoCmd struct {
	date string
}

// SetDate sets the date (for testing).
func (c *UndoCmd) SetDate(date string) { c.date = date }

func (c *UndoCmd) Name() string      { return "undo" }
func (c *UndoCmd) Aliases() []string { return nil }
func (c *UndoCmd) Synopsis() string  { return "Mark a habit not completed and save" }
func (c *UndoCmd) Usage() string {
	return "habitctl undo [common flags] [--date YYYY-MM-DD] <id|name>"
}
func (c *UndoCmd) NeedsAuth() bool { return true }

func (c *UndoCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.date, "date", "", "")
}

func (c *UndoCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	return runMark(ctx, cfg, svc, c.date, args, false, out, errOut)
}

// runMark is the shared implementation for done and undo: fetch the date's
// checklist, set one habit's flag, save every habit back.
func runMark(ctx context.Context, cfg *config.Config, svc service.Service, date string, args []string, completed bool, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: habit id or name required")
		return exitcode.UserError
	}
	ref := strings.Join(args, " ")

	day := date
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
	if cl.Empty() {
		fmt.Fprintln(errOut, "error: no habits available for this date")
		return exitcode.UserError
	}

	habit, err := resolveHabit(cl.Habits(), ref)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s: %s\n", err, ref)
		return exitcode.UserError
	}

	if habit.Completed != completed {
		cl.Toggle(habit.ID)
	}

	pct, err := svc.SaveHabits(ctx, day, cl.Completions())
	if err != nil {
		fmt.Fprintf(errOut, "error: backend error: %s\n", err)
		return exitcode.BackendError
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "ok (%s)\n", output.Percent(pct))
	}
	return exitcode.Success
}

// resolveHabit finds a habit by exact id, exact name, or unique
// case-insensitive name prefix.
func resolveHabit(habits []service.Habit, ref string) (service.Habit, error) {
	ref = strings.TrimSpace(ref)
	for _, h := range habits {
		if h.ID == ref {
			return h, nil
		}
	}

	refLower := strings.ToLower(ref)
	var matches []service.Habit
	for _, h := range habits {
		name := strings.ToLower(strings.TrimSpace(h.Name))
		if name == refLower {
			return h, nil
		}
		if strings.HasPrefix(name, refLower) {
			matches = append(matches, h)
		}
	}

	switch len(matches) {
	case 0:
		return service.Habit{}, errHabitNotFound
	case 1:
		return matches[0], nil
	default:
		return service.Habit{}, errHabitAmbiguous
	}
}
