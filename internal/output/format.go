// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"math"
	"strings"

	"habitctl/internal/service"
)

const (
	// NoHabitsMessage is shown in place of checkboxes for an empty checklist.
	NoHabitsMessage = "No habits available."

	// Separator is the separator line for sections.
	Separator = "------------"
)

// FormatHabit formats one checklist line.
// Format: "[x] {ID:>3}  {NAME}\n" with a space instead of x when open.
func FormatHabit(w io.Writer, h service.Habit) {
	mark := " "
	if h.Completed {
		mark = "x"
	}
	fmt.Fprintf(w, "[%s] %3s  %s\n", mark, h.ID, normalizeName(h.Name))
}

// FormatDateHeader formats the checklist section header for a date.
func FormatDateHeader(w io.Writer, date string) {
	fmt.Fprintln(w, Separator)
	fmt.Fprintln(w, date)
	fmt.Fprintln(w, Separator)
}

// Percent renders a fractional percentage the way the UI displays it:
// rounded half-up to a whole number with a percent sign, e.g. 66.666 -> "67%".
func Percent(v float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(v)))
}

// FormatProgressEntry formats one row of the progress table.
// Format: "{NAME:<20} {DONE:>2}/{TOTAL:<2}  {PCT:>4}\n"
func FormatProgressEntry(w io.Writer, e service.ProgressEntry) {
	fmt.Fprintf(w, "%-20s %2d/%-2d  %4s\n",
		normalizeName(e.Name), e.CompletedDays, e.TotalDays, Percent(e.Percentage))
}

// FormatQuote formats the quote line, or nothing for an absent quote.
func FormatQuote(w io.Writer, q service.Quote) {
	if q.IsZero() {
		return
	}
	fmt.Fprintf(w, "%q — %s\n", q.Text, q.Author)
}

// normalizeName normalizes a habit name for display.
// Empty or whitespace-only names become "(unnamed)"; newlines collapse to
// spaces.
func normalizeName(name string) string {
	name = strings.ReplaceAll(name, "\r", " ")
	name = strings.ReplaceAll(name, "\n", " ")
	if strings.TrimSpace(name) == "" {
		return "(unnamed)"
	}
	return name
}
