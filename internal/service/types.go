// Package service defines the backend-agnostic interface for habit operations.
package service

// Habit is a single trackable habit with its completion flag for one date.
type Habit struct {
	// ID is the habit identifier as the backend serialized it. Kept as a
	// string so it round-trips exactly into the completions map on save.
	ID        string
	Name      string
	Completed bool
}

// Quote is a motivational quote of the day. The zero value means "no quote".
type Quote struct {
	Text   string
	Author string
}

// IsZero reports whether no quote was fetched.
func (q Quote) IsZero() bool {
	return q.Text == "" && q.Author == ""
}

// Period is an aggregation window for progress queries.
type Period string

const (
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

// Valid reports whether p is a period the backend accepts.
func (p Period) Valid() bool {
	return p == PeriodWeekly || p == PeriodMonthly
}

// ProgressEntry is one habit's aggregated completion over a period.
type ProgressEntry struct {
	Name          string
	CompletedDays int
	TotalDays     int
	Percentage    float64
}
