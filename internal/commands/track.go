package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"habitctl/internal/config"
	"habitctl/internal/exitcode"
	"habitctl/internal/service"
	"habitctl/internal/session"
	"habitctl/internal/token"
	"habitctl/internal/tui"
)

func init() {
	Register(&TrackCmd{})
}

// TrackCmd launches the interactive tracker. It needs no stored token up
// front: logged out it starts on the auth screen.
type TrackCmd struct{}

func (c *TrackCmd) Name() string      { return "track" }
func (c *TrackCmd) Aliases() []string { return []string{"tui"} }
func (c *TrackCmd) Synopsis() string  { return "Open the interactive tracker" }
func (c *TrackCmd) Usage() string     { return "habitctl track [common flags]" }
func (c *TrackCmd) NeedsAuth() bool   { return false }

func (c *TrackCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *TrackCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	ctl := session.NewController(token.NewStore(cfg.TokenPath()))
	model := tui.New(svc, ctl)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}
