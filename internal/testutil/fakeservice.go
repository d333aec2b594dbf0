// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"math"
	"strings"
	"sync"

	"habitctl/internal/service"
)

// DefaultToken is the token the fake issues on successful login.
const DefaultToken = "fake-token"

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu       sync.RWMutex
	users    map[string]string          // username -> password
	habits   map[string][]service.Habit // date -> habits
	saved    map[string]map[string]bool // date -> last saved completions
	progress map[service.Period][]service.ProgressEntry
	quote    service.Quote
	token    string

	// Error injection for testing
	RegisterErr error
	LoginErr    error
	QuoteErr    error
	HabitsErr   error
	SaveErr     error
	ProgressErr error
}

// NewFakeService creates an empty fake backend.
func NewFakeService() *FakeService {
	return &FakeService{
		users:    make(map[string]string),
		habits:   make(map[string][]service.Habit),
		saved:    make(map[string]map[string]bool),
		progress: make(map[service.Period][]service.ProgressEntry),
		token:    DefaultToken,
	}
}

// AddUser registers a known account.
func (f *FakeService) AddUser(username, password string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[username] = password
}

// AddHabit appends a habit to a date's checklist.
func (f *FakeService) AddHabit(date, id, name string, completed bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.habits[date] = append(f.habits[date], service.Habit{ID: id, Name: name, Completed: completed})
}

// SetQuote sets the quote of the day.
func (f *FakeService) SetQuote(text, author string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.quote = service.Quote{Text: text, Author: author}
}

// SetProgress sets the aggregate entries for a period.
func (f *FakeService) SetProgress(period service.Period, entries []service.ProgressEntry) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.progress[period] = entries
}

// SavedCompletions returns the completions map from the last save for a
// date, or nil.
func (f *FakeService) SavedCompletions(date string) map[string]bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.saved[date]
}

// Register implements service.Service.
func (f *FakeService) Register(ctx context.Context, username, password string) error {
	if f.RegisterErr != nil {
		return f.RegisterErr
	}
	if strings.TrimSpace(username) == "" || password == "" {
		return errors.New("username and password are required")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.users[username]; exists {
		return errors.New("Username already exists.")
	}
	f.users[username] = password
	return nil
}

// Login implements service.Service.
func (f *FakeService) Login(ctx context.Context, username, password string) (string, error) {
	if f.LoginErr != nil {
		return "", f.LoginErr
	}
	if strings.TrimSpace(username) == "" || password == "" {
		return "", errors.New("username and password are required")
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	if len(f.users) > 0 {
		if pw, ok := f.users[username]; !ok || pw != password {
			return "", errors.New("Invalid username or password.")
		}
	}
	return f.token, nil
}

// Quote implements service.Service.
func (f *FakeService) Quote(ctx context.Context) (service.Quote, error) {
	if f.QuoteErr != nil {
		return service.Quote{}, f.QuoteErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.quote, nil
}

// Habits implements service.Service.
func (f *FakeService) Habits(ctx context.Context, date string) ([]service.Habit, error) {
	if f.HabitsErr != nil {
		return nil, f.HabitsErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	habits := f.habits[date]
	result := make([]service.Habit, len(habits))
	copy(result, habits)
	return result, nil
}

// SaveHabits implements service.Service. The returned percentage is computed
// over the date's known checklist, like the real backend.
func (f *FakeService) SaveHabits(ctx context.Context, date string, completions map[string]bool) (float64, error) {
	if f.SaveErr != nil {
		return 0, f.SaveErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	saved := make(map[string]bool, len(completions))
	for id, done := range completions {
		saved[id] = done
	}
	f.saved[date] = saved

	habits := f.habits[date]
	if len(habits) == 0 {
		return 0, nil
	}
	completed := 0
	for i, h := range habits {
		done := completions[h.ID]
		habits[i].Completed = done
		if done {
			completed++
		}
	}
	pct := 100 * float64(completed) / float64(len(habits))
	return math.Round(pct*100) / 100, nil
}

// Progress implements service.Service.
func (f *FakeService) Progress(ctx context.Context, period service.Period) ([]service.ProgressEntry, error) {
	if f.ProgressErr != nil {
		return nil, f.ProgressErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	entries := f.progress[period]
	result := make([]service.ProgressEntry, len(entries))
	copy(result, entries)
	return result, nil
}
