// Package checklist holds the in-memory habit checklist for one date and
// derives its completion percentage. It is a pure model, decoupled from any
// rendering surface, so the percentage math is independently testable.
package checklist

import (
	"math"

	"habitctl/internal/service"
)

// Checklist is the ordered habit list for the active date.
type Checklist struct {
	date   string
	habits []service.Habit
}

// New creates an empty checklist for a date.
func New(date string) *Checklist {
	return &Checklist{date: date}
}

// Date returns the date this checklist is scoped to.
func (c *Checklist) Date() string {
	return c.date
}

// Load replaces the current list with a fresh fetch result. The previous
// date's habits are discarded.
func (c *Checklist) Load(date string, habits []service.Habit) {
	c.date = date
	c.habits = make([]service.Habit, len(habits))
	copy(c.habits, habits)
}

// Habits returns the habits in backend order.
func (c *Checklist) Habits() []service.Habit {
	return c.habits
}

// Empty reports whether the checklist has no habits. The UIs render
// "No habits available." in place of checkboxes when true.
func (c *Checklist) Empty() bool {
	return len(c.habits) == 0
}

// Toggle flips the completion flag for the given habit id and reports
// whether the id was found.
func (c *Checklist) Toggle(id string) bool {
	for i := range c.habits {
		if c.habits[i].ID == id {
			c.habits[i].Completed = !c.habits[i].Completed
			return true
		}
	}
	return false
}

// Percentage returns round-half-up(100 * completed/total), or 0 when the
// list is empty. It is always recomputed from current state, never cached.
func (c *Checklist) Percentage() int {
	if len(c.habits) == 0 {
		return 0
	}
	completed := 0
	for _, h := range c.habits {
		if h.Completed {
			completed++
		}
	}
	return int(math.Round(100 * float64(completed) / float64(len(c.habits))))
}

// Completions builds the id-to-flag map sent on save. Every habit currently
// in the list appears exactly once.
func (c *Checklist) Completions() map[string]bool {
	m := make(map[string]bool, len(c.habits))
	for _, h := range c.habits {
		m[h.ID] = h.Completed
	}
	return m
}
