// Package session owns the authentication state machine.
package session

import "habitctl/internal/token"

// State is the session state. There are exactly two: auth forms are shown
// while Unauthenticated, the tracker while Authenticated.
type State int

const (
	Unauthenticated State = iota
	Authenticated
)

// String returns the state name for debug output.
func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "unauthenticated"
}

// Controller drives the two-state session machine and exclusively owns the
// token store. Views consult it; nothing else touches the token.
type Controller struct {
	tokens *token.Store
	state  State
}

// NewController boots the machine: Authenticated iff a token is stored.
func NewController(tokens *token.Store) *Controller {
	c := &Controller{tokens: tokens}
	if tokens.Has() {
		c.state = Authenticated
	}
	return c
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// Token returns the stored token, or "" when logged out.
func (c *Controller) Token() string {
	return c.tokens.Get()
}

// LoggedIn persists a freshly issued token and transitions to
// Authenticated. The caller then kicks off tracker initialization.
func (c *Controller) LoggedIn(tok string) error {
	if err := c.tokens.Set(tok); err != nil {
		return err
	}
	c.state = Authenticated
	return nil
}

// Logout clears the token and transitions to Unauthenticated. Chart and
// checklist resources are released by the caller alongside this.
func (c *Controller) Logout() error {
	c.state = Unauthenticated
	return c.tokens.Clear()
}
