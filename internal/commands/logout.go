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
	Register(&LogoutCmd{})
}

// LogoutCmd implements the logout command.
type LogoutCmd struct{}

func (c *LogoutCmd) Name() string      { return "logout" }
func (c *LogoutCmd) Aliases() []string { return nil }
func (c *LogoutCmd) Synopsis() string  { return "Discard the stored session token" }
func (c *LogoutCmd) Usage() string     { return "habitctl logout [common flags]" }
func (c *LogoutCmd) NeedsAuth() bool   { return false }

func (c *LogoutCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LogoutCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	tokens := token.NewStore(cfg.TokenPath())
	if !tokens.Has() {
		if !cfg.Quiet {
			fmt.Fprintln(out, "not logged in")
		}
		return exitcode.Success
	}

	ctl := session.NewController(tokens)
	if err := ctl.Logout(); err != nil {
		fmt.Fprintf(errOut, "error: failed to remove token: %s\n", err)
		return exitcode.AuthError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
