// Package tui implements the interactive tracker: an auth screen while
// logged out, the date-scoped checklist once logged in, and a progress
// chart screen.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"habitctl/internal/chart"
	"habitctl/internal/dates"
	"habitctl/internal/output"
	"habitctl/internal/progress"
	"habitctl/internal/service"
	"habitctl/internal/session"
)

type screen int

const (
	screenAuth screen = iota
	screenTracker
	screenProgress
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	quoteStyle   = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("245"))
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4")).Bold(true)
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575"))
	percentStyle = lipgloss.NewStyle().Bold(true)
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	emptyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)
)

// Model is the root model. It owns the session controller and the single
// progress view; everything below it is per-screen state.
type Model struct {
	svc  service.Service
	ctl  *session.Controller
	view *progress.View

	screen  screen
	auth    authModel
	tracker trackerModel
	prog    progressModel

	date   string
	width  int
	height int
}

// New creates the root model. The starting screen follows the session
// controller: tracker when a token is stored, auth forms otherwise.
func New(svc service.Service, ctl *session.Controller) Model {
	m := Model{
		svc:     svc,
		ctl:     ctl,
		view:    progress.NewView(svc, chart.NewBars, 0),
		auth:    newAuthModel(),
		tracker: newTrackerModel(dates.Today()),
		prog:    newProgressModel(),
		date:    dates.Today(),
	}
	if ctl.State() == session.Authenticated {
		m.screen = screenTracker
	}
	return m
}

func (m Model) Init() tea.Cmd {
	if m.screen == screenTracker {
		return tea.Batch(
			fetchHabitsCmd(m.svc, m.date, m.tracker.loadSeq),
			quoteCmd(m.svc),
		)
	}
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case loginDoneMsg:
		if msg.err != nil {
			m.auth.setStatus(msg.err.Error(), true)
			return m, nil
		}
		if err := m.ctl.LoggedIn(msg.token); err != nil {
			m.auth.setStatus("failed to save token: "+err.Error(), true)
			return m, nil
		}
		return m.enterTracker()

	case registerDoneMsg:
		if msg.err != nil {
			m.auth.setStatus(msg.err.Error(), true)
			return m, nil
		}
		// Registration never authenticates; back to the login form with a
		// confirmation message.
		m.auth.form = formLogin
		m.auth.password.SetValue("")
		m.auth.setStatus("Registered. Please log in.", false)
		return m, nil

	case quoteMsg:
		m.tracker.quote = msg.quote
		return m, nil

	case habitsMsg:
		m.tracker.applyLoad(msg)
		return m, nil

	case saveDoneMsg:
		if msg.err != nil {
			m.tracker.setStatus(msg.err.Error(), true)
			return m, nil
		}
		// The server value is authoritative for the persisted display.
		m.tracker.setStatus("Saved: "+output.Percent(msg.percentage), false)
		return m, nil

	case progressMsg:
		m.prog.loading = false
		if msg.err != nil {
			// Chart fetch failures never reach the status line.
			return m, nil
		}
		m.prog.period = msg.period
		m.prog.rendered = msg.rendered
		return m, nil

	case tea.KeyMsg:
		switch m.screen {
		case screenAuth:
			return m.updateAuth(msg)
		case screenTracker:
			return m.updateTracker(msg)
		case screenProgress:
			return m.updateProgress(msg)
		}
	}
	return m, nil
}

func (m Model) updateAuth(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "tab", "shift+tab", "up", "down":
		m.auth.setFocus(1 - m.auth.focus)
		return m, textinput.Blink

	case "ctrl+r":
		m.auth.switchForm()
		return m, nil

	case "enter":
		if m.auth.busy {
			return m, nil
		}
		username := strings.TrimSpace(m.auth.username.Value())
		password := m.auth.password.Value()
		if username == "" || password == "" {
			// Presence check happens before any request is dispatched.
			m.auth.setStatus("Username and password are required.", true)
			return m, nil
		}
		m.auth.busy = true
		m.auth.status = ""
		if m.auth.form == formRegister {
			return m, registerCmd(m.svc, username, password)
		}
		return m, loginCmd(m.svc, username, password)
	}

	var cmd tea.Cmd
	m.auth, cmd = m.auth.update(msg)
	return m, cmd
}

func (m Model) updateTracker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "up", "k":
		m.tracker.moveCursor(-1)
		return m, nil

	case "down", "j":
		m.tracker.moveCursor(1)
		return m, nil

	case " ":
		m.tracker.toggleCurrent()
		return m, nil

	case "s":
		if m.tracker.list.Empty() {
			return m, nil
		}
		return m, saveHabitsCmd(m.svc, m.date, m.tracker.list.Completions())

	case "r":
		return m.loadDate(m.date)

	case "left":
		day, err := dates.Shift(m.date, -1)
		if err != nil {
			return m, nil
		}
		return m.loadDate(day)

	case "right":
		day, err := dates.Shift(m.date, 1)
		if err != nil {
			return m, nil
		}
		return m.loadDate(day)

	case "p":
		m.screen = screenProgress
		if m.prog.loading {
			// A fetch is already in flight; just show the screen.
			return m, nil
		}
		m.prog.loading = true
		return m, fetchProgressCmd(m.view, m.prog.period)

	case "l":
		return m.logout()
	}
	return m, nil
}

func (m Model) updateProgress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "esc", "backspace":
		m.screen = screenTracker
		return m, nil

	case "w":
		if m.prog.loading {
			return m, nil
		}
		m.prog.loading = true
		return m, fetchProgressCmd(m.view, service.PeriodWeekly)

	case "m":
		if m.prog.loading {
			return m, nil
		}
		m.prog.loading = true
		return m, fetchProgressCmd(m.view, service.PeriodMonthly)

	case "l":
		return m.logout()
	}
	return m, nil
}

// enterTracker initializes the tracker after a successful login: resolve
// today, fetch the quote, load today's habits.
func (m Model) enterTracker() (tea.Model, tea.Cmd) {
	m.screen = screenTracker
	m.date = dates.Today()
	m.tracker = newTrackerModel(m.date)
	return m, tea.Batch(
		fetchHabitsCmd(m.svc, m.date, m.tracker.loadSeq),
		quoteCmd(m.svc),
	)
}

// loadDate switches the active date under a fresh load sequence so any
// response still in flight for the old request is discarded on arrival.
func (m Model) loadDate(day string) (tea.Model, tea.Cmd) {
	m.date = day
	m.tracker.loadSeq++
	m.tracker.loading = true
	m.tracker.status = ""
	m.tracker.isError = false
	return m, fetchHabitsCmd(m.svc, day, m.tracker.loadSeq)
}

// logout clears the token, disposes the chart renderer, and returns to the
// login form. A failed token removal is shown there: the form is otherwise
// clean, but silently keeping the file would re-authenticate the next boot.
func (m Model) logout() (tea.Model, tea.Cmd) {
	err := m.ctl.Logout()
	m.view.Close()
	m.auth.reset()
	if err != nil {
		m.auth.setStatus("failed to remove token: "+err.Error(), true)
	}
	m.tracker = newTrackerModel(dates.Today())
	m.prog = newProgressModel()
	m.screen = screenAuth
	return m, textinput.Blink
}

func (m Model) View() string {
	switch m.screen {
	case screenAuth:
		return m.viewAuth()
	case screenProgress:
		return m.viewProgress()
	default:
		return m.viewTracker()
	}
}

func (m Model) viewAuth() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Habit Tracker"))
	b.WriteString("\n\n")

	if m.auth.form == formRegister {
		b.WriteString("Register\n\n")
	} else {
		b.WriteString("Log in\n\n")
	}
	b.WriteString(m.auth.username.View())
	b.WriteString("\n")
	b.WriteString(m.auth.password.View())
	b.WriteString("\n\n")

	if m.auth.busy {
		b.WriteString(emptyStyle.Render("…"))
		b.WriteString("\n")
	} else if m.auth.status != "" {
		style := okStyle
		if m.auth.isError {
			style = errStyle
		}
		b.WriteString(style.Render(m.auth.status))
		b.WriteString("\n")
	}

	other := "register"
	if m.auth.form == formRegister {
		other = "log in"
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(fmt.Sprintf("tab: switch field • enter: submit • ctrl+r: %s • esc: quit", other)))
	b.WriteString("\n")
	return b.String()
}

func (m Model) viewTracker() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Habit Tracker"))
	b.WriteString("  ")
	b.WriteString(percentStyle.Render(m.date))
	b.WriteString("\n")
	if !m.tracker.quote.IsZero() {
		b.WriteString(quoteStyle.Render(fmt.Sprintf("%q — %s", m.tracker.quote.Text, m.tracker.quote.Author)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	habits := m.tracker.list.Habits()
	switch {
	case m.tracker.loading:
		b.WriteString(emptyStyle.Render("loading…"))
		b.WriteString("\n")
	case len(habits) == 0:
		b.WriteString(emptyStyle.Render(output.NoHabitsMessage))
		b.WriteString("\n")
	default:
		for i, h := range habits {
			cursor := "  "
			if i == m.tracker.cursor {
				cursor = cursorStyle.Render("> ")
			}
			line := fmt.Sprintf("[%s] %s", mark(h.Completed), h.Name)
			if h.Completed {
				line = doneStyle.Render(line)
			}
			b.WriteString(cursor + line + "\n")
		}
		b.WriteString("\n")
		b.WriteString(percentStyle.Render(fmt.Sprintf("Progress: %d%%", m.tracker.list.Percentage())))
		b.WriteString("\n")
	}

	if m.tracker.status != "" {
		style := okStyle
		if m.tracker.isError {
			style = errStyle
		}
		b.WriteString(style.Render(m.tracker.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("space: toggle • s: save • ←/→: date • p: progress • r: reload • l: logout • q: quit"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) viewProgress() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Progress"))
	b.WriteString("  ")
	b.WriteString(percentStyle.Render(string(m.prog.period)))
	b.WriteString("\n\n")

	switch {
	case m.prog.loading:
		b.WriteString(emptyStyle.Render("loading…"))
		b.WriteString("\n")
	case m.prog.rendered == "":
		b.WriteString(emptyStyle.Render("no progress data"))
		b.WriteString("\n")
	default:
		b.WriteString(m.prog.rendered)
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("w: weekly • m: monthly • esc: back • l: logout • q: quit"))
	b.WriteString("\n")
	return b.String()
}

func mark(completed bool) string {
	if completed {
		return "x"
	}
	return " "
}
