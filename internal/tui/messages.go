package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"habitctl/internal/service"
)

// loginDoneMsg carries the login result.
type loginDoneMsg struct {
	token string
	err   error
}

// registerDoneMsg carries the registration result.
type registerDoneMsg struct {
	err error
}

// quoteMsg carries the quote of the day, possibly zero.
type quoteMsg struct {
	quote service.Quote
}

// habitsMsg carries a checklist fetch result. seq is the load sequence the
// request was issued under; a response with a stale seq is discarded.
type habitsMsg struct {
	seq    int
	date   string
	habits []service.Habit
	err    error
}

// saveDoneMsg carries the save result with the server's percentage.
type saveDoneMsg struct {
	percentage float64
	err        error
}

// progressMsg carries a rendered progress chart.
type progressMsg struct {
	period   service.Period
	rendered string
	err      error
}

func loginCmd(svc service.Service, username, password string) tea.Cmd {
	return func() tea.Msg {
		tok, err := svc.Login(context.Background(), username, password)
		return loginDoneMsg{token: tok, err: err}
	}
}

func registerCmd(svc service.Service, username, password string) tea.Cmd {
	return func() tea.Msg {
		return registerDoneMsg{err: svc.Register(context.Background(), username, password)}
	}
}

// quoteCmd fetches the quote. Failure renders as no quote, never an error.
func quoteCmd(svc service.Service) tea.Cmd {
	return func() tea.Msg {
		q, err := svc.Quote(context.Background())
		if err != nil {
			return quoteMsg{}
		}
		return quoteMsg{quote: q}
	}
}

func fetchHabitsCmd(svc service.Service, date string, seq int) tea.Cmd {
	return func() tea.Msg {
		habits, err := svc.Habits(context.Background(), date)
		return habitsMsg{seq: seq, date: date, habits: habits, err: err}
	}
}

func saveHabitsCmd(svc service.Service, date string, completions map[string]bool) tea.Cmd {
	return func() tea.Msg {
		pct, err := svc.SaveHabits(context.Background(), date, completions)
		return saveDoneMsg{percentage: pct, err: err}
	}
}
