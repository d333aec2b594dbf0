// Package chart renders habit progress as horizontal bar charts.
package chart

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Renderer draws one chart from labels and percentage values. Exactly one
// renderer is live per view; Dispose releases it before a replacement is
// created.
type Renderer interface {
	// Render draws the chart. labels and values are parallel slices.
	Render(labels []string, values []float64) string

	// Dispose releases the renderer. Further Render calls return "".
	Dispose()
}

// Factory creates a fresh Renderer per request.
type Factory func(width int) Renderer

const (
	defaultBarWidth = 30
	minBarWidth     = 10
)

var (
	barStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575"))
	trackStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

// Bars is the default Renderer: one filled bar per habit.
type Bars struct {
	width    int
	disposed bool
}

// NewBars creates a bar chart renderer of the given bar width.
func NewBars(width int) Renderer {
	if width < minBarWidth {
		width = defaultBarWidth
	}
	return &Bars{width: width}
}

// Render draws one line per label: name, bar, rounded percentage.
func (b *Bars) Render(labels []string, values []float64) string {
	if b.disposed || len(labels) == 0 {
		return ""
	}
	// Measure display cells, not bytes, so multi-byte names keep the bar
	// column aligned.
	labelWidth := 0
	for _, l := range labels {
		if w := lipgloss.Width(l); w > labelWidth {
			labelWidth = w
		}
	}
	var sb strings.Builder
	for i, label := range labels {
		var v float64
		if i < len(values) {
			v = values[i]
		}
		pad := strings.Repeat(" ", labelWidth-lipgloss.Width(label))
		fmt.Fprintf(&sb, "%s  %s %3d%%\n",
			labelStyle.Render(label+pad),
			bar(v, b.width),
			int(math.Round(v)))
	}
	return sb.String()
}

// Dispose releases the renderer. Safe to call more than once.
func (b *Bars) Dispose() {
	b.disposed = true
}

// bar draws a single filled/empty bar for a 0-100 value.
func bar(pct float64, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := int(math.Round(pct / 100 * float64(width)))
	return barStyle.Render(strings.Repeat("█", filled)) +
		trackStyle.Render(strings.Repeat("░", width-filled))
}
