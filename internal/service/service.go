// Package service defines the backend-agnostic interface for habit operations.
package service

import "context"

// Service defines the interface for habit backend operations.
// All REST calls go through this interface. Commands and the TUI never
// build HTTP requests directly.
type Service interface {
	// Register creates a new account. Empty username or password is
	// rejected locally, before any request is dispatched.
	Register(ctx context.Context, username, password string) error

	// Login authenticates and returns the session token. Empty username
	// or password is rejected locally. The caller persists the token.
	Login(ctx context.Context, username, password string) (string, error)

	// Quote fetches the quote of the day. Failures are low-severity:
	// callers render nothing rather than an error.
	Quote(ctx context.Context) (Quote, error)

	// Habits returns the checklist for a date (YYYY-MM-DD), in backend
	// order. With no session token the call is silently skipped and
	// returns (nil, nil).
	Habits(ctx context.Context, date string) ([]Habit, error)

	// SaveHabits persists the completions map for a date and returns the
	// server-computed percentage, which is authoritative for display.
	// With no session token the call is silently skipped.
	SaveHabits(ctx context.Context, date string, completions map[string]bool) (float64, error)

	// Progress returns aggregated completion per habit for a period.
	// With no session token the call is silently skipped.
	Progress(ctx context.Context, period Period) ([]ProgressEntry, error)
}
