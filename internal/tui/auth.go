package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// authForm selects which form is shown while unauthenticated. The toggle is
// purely presentational; it never talks to the backend.
type authForm int

const (
	formLogin authForm = iota
	formRegister
)

type authModel struct {
	form     authForm
	username textinput.Model
	password textinput.Model
	focus    int // 0 username, 1 password
	status   string
	isError  bool
	busy     bool
}

func newAuthModel() authModel {
	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 80
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'

	return authModel{username: username, password: password}
}

// reset clears both fields and any status. Used after logout.
func (a *authModel) reset() {
	a.form = formLogin
	a.username.SetValue("")
	a.password.SetValue("")
	a.status = ""
	a.isError = false
	a.busy = false
	a.setFocus(0)
}

// switchForm toggles login/register and clears any previous status message.
func (a *authModel) switchForm() {
	if a.form == formLogin {
		a.form = formRegister
	} else {
		a.form = formLogin
	}
	a.status = ""
	a.isError = false
}

func (a *authModel) setFocus(i int) {
	a.focus = i
	if i == 0 {
		a.username.Focus()
		a.password.Blur()
	} else {
		a.password.Focus()
		a.username.Blur()
	}
}

func (a *authModel) setStatus(msg string, isError bool) {
	a.status = msg
	a.isError = isError
	a.busy = false
}

// update handles key input on the auth screen. The returned command, when
// non-nil, is a backend call built by the root model.
func (a authModel) update(msg tea.Msg) (authModel, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	a.username, cmd = a.username.Update(msg)
	cmds = append(cmds, cmd)
	a.password, cmd = a.password.Update(msg)
	cmds = append(cmds, cmd)
	return a, tea.Batch(cmds...)
}
