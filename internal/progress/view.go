// Package progress fetches aggregated completion data and hands it to a
// chart renderer.
package progress

import (
	"context"
	"sync"

	"habitctl/internal/chart"
	"habitctl/internal/service"
)

// View owns the single live chart renderer. A previously rendered chart is
// disposed before a new one is created, and Close disposes the last one
// exactly once on logout. Show and Close may be called from concurrent
// goroutines; the renderer swap is serialized internally.
type View struct {
	svc     service.Service
	factory chart.Factory
	width   int

	mu      sync.Mutex
	current chart.Renderer
}

// NewView creates a progress view using the given renderer factory.
func NewView(svc service.Service, factory chart.Factory, width int) *View {
	return &View{svc: svc, factory: factory, width: width}
}

// Show fetches aggregates for the period and renders them. On a fetch error
// the previous chart is left in place and the error is returned for the
// caller's low-severity logging.
func (v *View) Show(ctx context.Context, period service.Period) (string, error) {
	entries, err := v.svc.Progress(ctx, period)
	if err != nil {
		return "", err
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.current != nil {
		v.current.Dispose()
		v.current = nil
	}

	labels := make([]string, len(entries))
	values := make([]float64, len(entries))
	for i, e := range entries {
		labels[i] = e.Name
		values[i] = e.Percentage
	}
	v.current = v.factory(v.width)
	return v.current.Render(labels, values), nil
}

// Close disposes the live renderer, if any. Called on logout.
func (v *View) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.current != nil {
		v.current.Dispose()
		v.current = nil
	}
}
