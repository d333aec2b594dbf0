package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"habitctl/internal/config"
	"habitctl/internal/exitcode"
	"habitctl/internal/service"
	"habitctl/internal/session"
	"habitctl/internal/token"
)

func init() {
	Register(&LoginCmd{})
}

// LoginCmd implements the login command.
type LoginCmd struct{}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Log in and store the session token" }
func (c *LoginCmd) Usage() string     { return "habitctl login [common flags] <username> <password>" }
func (c *LoginCmd) NeedsAuth() bool   { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) != 2 {
		fmt.Fprintln(errOut, "error: username and password required")
		return exitcode.UserError
	}
	username, password := args[0], args[1]

	// Blank fields never reach the network; the service enforces the same
	// precondition before dispatching.
	if username == "" || password == "" {
		fmt.Fprintln(errOut, "error: username and password are required")
		return exitcode.UserError
	}

	tok, err := svc.Login(ctx, username, password)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.AuthError
	}

	ctl := session.NewController(token.NewStore(cfg.TokenPath()))
	if err := ctl.LoggedIn(tok); err != nil {
		fmt.Fprintf(errOut, "error: failed to save token: %s\n", err)
		return exitcode.AuthError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
