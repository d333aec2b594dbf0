package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"habitctl/internal/progress"
	"habitctl/internal/service"
)

type progressModel struct {
	period   service.Period
	rendered string
	loading  bool
}

func newProgressModel() progressModel {
	return progressModel{period: service.PeriodWeekly}
}

// fetchProgressCmd runs the progress view for a period. The view disposes
// the previous chart renderer before creating the replacement.
func fetchProgressCmd(view *progress.View, period service.Period) tea.Cmd {
	return func() tea.Msg {
		rendered, err := view.Show(context.Background(), period)
		return progressMsg{period: period, rendered: rendered, err: err}
	}
}
