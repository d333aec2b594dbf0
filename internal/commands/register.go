package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"habitctl/internal/config"
	"habitctl/internal/exitcode"
	"habitctl/internal/service"
)

func init() {
	Register(&RegisterCmd{})
}

// RegisterCmd implements the register command. Registration never logs the
// new account in; on success it points at the login command.
type RegisterCmd struct{}

func (c *RegisterCmd) Name() string      { return "register" }
func (c *RegisterCmd) Aliases() []string { return nil }
func (c *RegisterCmd) Synopsis() string  { return "Create a new account" }
func (c *RegisterCmd) Usage() string {
	return "habitctl register [common flags] <username> <password>"
}
func (c *RegisterCmd) NeedsAuth() bool { return false }

func (c *RegisterCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RegisterCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) != 2 {
		fmt.Fprintln(errOut, "error: username and password required")
		return exitcode.UserError
	}
	username, password := args[0], args[1]

	if username == "" || password == "" {
		fmt.Fprintln(errOut, "error: username and password are required")
		return exitcode.UserError
	}

	if err := svc.Register(ctx, username, password); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.BackendError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "registered (run: habitctl login)")
	}
	return exitcode.Success
}
