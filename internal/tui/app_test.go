package tui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"habitctl/internal/service"
	"habitctl/internal/session"
	"habitctl/internal/testutil"
	"habitctl/internal/token"
)

// newTestModel builds a root model over a scratch token store. loggedIn
// pre-seeds a token so the model boots on the tracker screen.
func newTestModel(t *testing.T, svc service.Service, loggedIn bool) (Model, *token.Store) {
	t.Helper()
	store := token.NewStore(filepath.Join(t.TempDir(), "token"))
	if loggedIn {
		if err := store.Set("abc"); err != nil {
			t.Fatal(err)
		}
	}
	return New(svc, session.NewController(store)), store
}

// apply feeds a message through Update and unwraps the model.
func apply(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model, cmd
}

func key(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestNew_StartScreenFollowsSession(t *testing.T) {
	m, _ := newTestModel(t, testutil.NewFakeService(), false)
	if m.screen != screenAuth {
		t.Errorf("expected auth screen while logged out, got %v", m.screen)
	}

	m, _ = newTestModel(t, testutil.NewFakeService(), true)
	if m.screen != screenTracker {
		t.Errorf("expected tracker screen with a stored token, got %v", m.screen)
	}
}

func TestLoginDone_EntersTrackerAndPersistsToken(t *testing.T) {
	m, store := newTestModel(t, testutil.NewFakeService(), false)

	m, cmd := apply(t, m, loginDoneMsg{token: "fresh-token"})

	if m.screen != screenTracker {
		t.Errorf("expected tracker screen after login, got %v", m.screen)
	}
	if m.ctl.State() != session.Authenticated {
		t.Errorf("expected Authenticated, got %v", m.ctl.State())
	}
	if got := store.Get(); got != "fresh-token" {
		t.Errorf("expected token persisted, got %q", got)
	}
	if cmd == nil {
		t.Error("entering the tracker must kick off the initial fetch")
	}
}

func TestLoginDone_ErrorStaysOnAuth(t *testing.T) {
	m, store := newTestModel(t, testutil.NewFakeService(), false)
	m.auth.busy = true

	m, _ = apply(t, m, loginDoneMsg{err: errors.New("Invalid username or password.")})

	if m.screen != screenAuth {
		t.Errorf("expected auth screen after failed login, got %v", m.screen)
	}
	if m.auth.status != "Invalid username or password." || !m.auth.isError {
		t.Errorf("expected error status, got %q (isError=%v)", m.auth.status, m.auth.isError)
	}
	if m.auth.busy {
		t.Error("busy flag must clear when the result arrives")
	}
	if store.Has() {
		t.Error("failed login must not store a token")
	}
}

func TestRegisterDone_ReturnsToLoginFormWithoutAuthenticating(t *testing.T) {
	m, _ := newTestModel(t, testutil.NewFakeService(), false)
	m.auth.form = formRegister
	m.auth.password.SetValue("secret")

	m, _ = apply(t, m, registerDoneMsg{})

	if m.screen != screenAuth {
		t.Errorf("registration must not leave the auth screen, got %v", m.screen)
	}
	if m.ctl.State() != session.Unauthenticated {
		t.Error("registration must never authenticate")
	}
	if m.auth.form != formLogin {
		t.Error("expected the login form after registration")
	}
	if m.auth.status != "Registered. Please log in." || m.auth.isError {
		t.Errorf("unexpected status: %q (isError=%v)", m.auth.status, m.auth.isError)
	}
	if m.auth.password.Value() != "" {
		t.Error("password field must be cleared")
	}
}

func TestAuth_EmptyFieldsNeverDispatch(t *testing.T) {
	m, _ := newTestModel(t, testutil.NewFakeService(), false)

	m, cmd := apply(t, m, key("enter"))

	if cmd != nil {
		t.Error("empty fields must not produce a backend command")
	}
	if m.auth.status != "Username and password are required." || !m.auth.isError {
		t.Errorf("unexpected status: %q", m.auth.status)
	}
}

func TestAuth_SwitchFormClearsStatus(t *testing.T) {
	m, _ := newTestModel(t, testutil.NewFakeService(), false)
	m.auth.setStatus("Invalid username or password.", true)

	m, _ = apply(t, m, key("ctrl+r"))

	if m.auth.form != formRegister {
		t.Errorf("expected register form, got %v", m.auth.form)
	}
	if m.auth.status != "" || m.auth.isError {
		t.Errorf("form switch must clear status, got %q", m.auth.status)
	}
}

func loadedTracker(t *testing.T) Model {
	t.Helper()
	m, _ := newTestModel(t, testutil.NewFakeService(), true)
	m, _ = apply(t, m, habitsMsg{
		seq:  m.tracker.loadSeq,
		date: m.date,
		habits: []service.Habit{
			{ID: "1", Name: "Read", Completed: false},
			{ID: "2", Name: "Exercise", Completed: true},
		},
	})
	return m
}

func TestTracker_StaleLoadIsDropped(t *testing.T) {
	m := loadedTracker(t)

	// Switching the date bumps the load sequence; the old request's
	// response must be ignored when it lands afterwards.
	m, _ = apply(t, m, key("right"))
	seq := m.tracker.loadSeq

	m, _ = apply(t, m, habitsMsg{
		seq:    seq - 1,
		date:   m.date,
		habits: []service.Habit{{ID: "9", Name: "Stale", Completed: false}},
	})

	if !m.tracker.loading {
		t.Error("a stale response must not end the loading state")
	}
	if habits := m.tracker.list.Habits(); len(habits) != 2 || habits[0].Name != "Read" {
		t.Errorf("stale habits applied: %v", habits)
	}

	m, _ = apply(t, m, habitsMsg{
		seq:    seq,
		date:   m.date,
		habits: []service.Habit{{ID: "3", Name: "Fresh", Completed: false}},
	})

	if m.tracker.loading {
		t.Error("the current response must end the loading state")
	}
	if habits := m.tracker.list.Habits(); len(habits) != 1 || habits[0].Name != "Fresh" {
		t.Errorf("expected the fresh checklist, got %v", habits)
	}
}

func TestTracker_ToggleUpdatesPercentage(t *testing.T) {
	m := loadedTracker(t)

	if !strings.Contains(m.View(), "Progress: 50%") {
		t.Fatalf("expected 50%% before toggling, view:\n%s", m.View())
	}

	m, _ = apply(t, m, key(" "))

	if !strings.Contains(m.View(), "Progress: 100%") {
		t.Errorf("expected 100%% after toggling the first habit, view:\n%s", m.View())
	}
	if habits := m.tracker.list.Habits(); !habits[0].Completed {
		t.Error("expected the habit under the cursor to be completed")
	}
}

func TestTracker_SaveShowsServerPercentage(t *testing.T) {
	m := loadedTracker(t)

	m, _ = apply(t, m, saveDoneMsg{percentage: 66.666})

	if m.tracker.status != "Saved: 67%" || m.tracker.isError {
		t.Errorf("expected rounded server percentage, got %q", m.tracker.status)
	}
}

func TestTracker_SaveErrorShowsStatus(t *testing.T) {
	m := loadedTracker(t)

	m, _ = apply(t, m, saveDoneMsg{err: errors.New("session expired or invalid (run: habitctl login)")})

	if !m.tracker.isError || m.tracker.status == "" {
		t.Errorf("expected an error status, got %q", m.tracker.status)
	}
}

func TestTracker_EmptyChecklistView(t *testing.T) {
	m, _ := newTestModel(t, testutil.NewFakeService(), true)
	m, _ = apply(t, m, habitsMsg{seq: m.tracker.loadSeq, date: m.date})

	if view := m.View(); !strings.Contains(view, "No habits available.") {
		t.Errorf("expected empty-checklist message, view:\n%s", view)
	}
}

func TestTracker_SaveOnEmptyChecklistIsNoop(t *testing.T) {
	m, _ := newTestModel(t, testutil.NewFakeService(), true)
	m, _ = apply(t, m, habitsMsg{seq: m.tracker.loadSeq, date: m.date})

	_, cmd := apply(t, m, key("s"))
	if cmd != nil {
		t.Error("saving an empty checklist must not hit the backend")
	}
}

func TestLogout_ClearsEverything(t *testing.T) {
	m := loadedTracker(t)
	m.auth.username.SetValue("alice")

	m, _ = apply(t, m, key("l"))

	if m.screen != screenAuth {
		t.Errorf("expected auth screen after logout, got %v", m.screen)
	}
	if m.ctl.State() != session.Unauthenticated {
		t.Errorf("expected Unauthenticated, got %v", m.ctl.State())
	}
	if m.ctl.Token() != "" {
		t.Error("expected the token cleared")
	}
	if m.auth.username.Value() != "" || m.auth.status != "" {
		t.Error("expected a clean login form")
	}
	if len(m.tracker.list.Habits()) != 0 {
		t.Error("expected the checklist cleared")
	}
}

func TestProgressScreen_FetchFailureKeepsView(t *testing.T) {
	m := loadedTracker(t)
	m, _ = apply(t, m, key("p"))
	if m.screen != screenProgress {
		t.Fatalf("expected progress screen, got %v", m.screen)
	}

	m, _ = apply(t, m, progressMsg{period: service.PeriodWeekly, rendered: "chart\n"})
	if m.prog.rendered != "chart\n" {
		t.Fatalf("expected rendered chart, got %q", m.prog.rendered)
	}

	m, _ = apply(t, m, progressMsg{period: service.PeriodMonthly, err: errors.New("boom")})

	if m.prog.rendered != "chart\n" {
		t.Errorf("a failed refresh must keep the previous chart, got %q", m.prog.rendered)
	}
	if m.prog.period != service.PeriodWeekly {
		t.Errorf("a failed refresh must keep the previous period, got %q", m.prog.period)
	}
	if m.prog.loading {
		t.Error("loading must end when the result arrives")
	}
}

func TestProgressScreen_PeriodKeysIgnoredWhileLoading(t *testing.T) {
	m := loadedTracker(t)

	m, cmd := apply(t, m, key("p"))
	if cmd == nil {
		t.Fatal("expected a progress fetch")
	}
	if !m.prog.loading {
		t.Fatal("expected the loading state")
	}

	// Only one fetch may be in flight: the shared chart view must never
	// see two concurrent refreshes.
	m, cmd = apply(t, m, key("w"))
	if cmd != nil {
		t.Error("w must not start a second fetch while one is pending")
	}
	m, cmd = apply(t, m, key("m"))
	if cmd != nil {
		t.Error("m must not start a second fetch while one is pending")
	}

	m, _ = apply(t, m, key("esc"))
	m, cmd = apply(t, m, key("p"))
	if m.screen != screenProgress {
		t.Errorf("expected the progress screen, got %v", m.screen)
	}
	if cmd != nil {
		t.Error("re-entering the screen must not start a second fetch")
	}

	m, _ = apply(t, m, progressMsg{period: service.PeriodWeekly, rendered: "chart\n"})
	_, cmd = apply(t, m, key("m"))
	if cmd == nil {
		t.Error("expected a fresh fetch once the pending one resolved")
	}
}

func TestLogout_SurfacesTokenRemovalFailure(t *testing.T) {
	m := loadedTracker(t)

	// A token path that is a non-empty directory makes removal fail.
	dir := filepath.Join(t.TempDir(), "token")
	if err := os.MkdirAll(dir, 0700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "x"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}
	m.ctl = session.NewController(token.NewStore(dir))

	m, _ = apply(t, m, key("l"))

	if m.screen != screenAuth {
		t.Errorf("expected auth screen after logout, got %v", m.screen)
	}
	if !strings.Contains(m.auth.status, "failed to remove token") || !m.auth.isError {
		t.Errorf("expected the removal failure surfaced, got %q (isError=%v)", m.auth.status, m.auth.isError)
	}
}

func TestQuoteMsg_ShowsInView(t *testing.T) {
	m, _ := newTestModel(t, testutil.NewFakeService(), true)
	m, _ = apply(t, m, habitsMsg{seq: m.tracker.loadSeq, date: m.date})
	m, _ = apply(t, m, quoteMsg{quote: service.Quote{Text: "Do it.", Author: "Someone"}})

	if view := m.View(); !strings.Contains(view, "Do it.") || !strings.Contains(view, "Someone") {
		t.Errorf("expected the quote in the view:\n%s", view)
	}
}
