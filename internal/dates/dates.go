// Package dates handles the backend's calendar-date format.
package dates

import (
	"fmt"
	"time"
)

// Layout is the wire format for dates: zero-padded YYYY-MM-DD.
const Layout = "2006-01-02"

// Parse validates a YYYY-MM-DD string and returns its day.
func Parse(s string) (time.Time, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be in YYYY-MM-DD format: %s", s)
	}
	return t, nil
}

// Format renders a day in wire format.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Today returns the current local day in wire format.
func Today() string {
	return Format(time.Now())
}

// Shift returns the day n days away from the given YYYY-MM-DD string.
// The input must already be valid.
func Shift(day string, n int) (string, error) {
	t, err := Parse(day)
	if err != nil {
		return "", err
	}
	return Format(t.AddDate(0, 0, n)), nil
}
