package tui

import (
	"habitctl/internal/checklist"
	"habitctl/internal/service"
)

type trackerModel struct {
	list    *checklist.Checklist
	cursor  int
	quote   service.Quote
	status  string
	isError bool
	loading bool

	// loadSeq is a monotonic sequence per habits load. Responses carrying
	// an older sequence are dropped, so switching dates quickly can't
	// leave a stale checklist on screen.
	loadSeq int
}

func newTrackerModel(date string) trackerModel {
	return trackerModel{
		list:    checklist.New(date),
		loadSeq: 1,
		loading: true,
	}
}

// applyLoad installs a fetch result, discarding stale responses.
func (t *trackerModel) applyLoad(msg habitsMsg) {
	if msg.seq != t.loadSeq {
		return
	}
	t.loading = false
	if msg.err != nil {
		t.setStatus(msg.err.Error(), true)
		return
	}
	t.list.Load(msg.date, msg.habits)
	t.cursor = 0
	t.status = ""
	t.isError = false
}

func (t *trackerModel) setStatus(msg string, isError bool) {
	t.status = msg
	t.isError = isError
}

func (t *trackerModel) moveCursor(delta int) {
	n := len(t.list.Habits())
	if n == 0 {
		t.cursor = 0
		return
	}
	t.cursor += delta
	if t.cursor < 0 {
		t.cursor = 0
	}
	if t.cursor >= n {
		t.cursor = n - 1
	}
}

// toggleCurrent flips the habit under the cursor. The derived percentage is
// recomputed from live state on the next render.
func (t *trackerModel) toggleCurrent() {
	habits := t.list.Habits()
	if t.cursor < 0 || t.cursor >= len(habits) {
		return
	}
	t.list.Toggle(habits[t.cursor].ID)
}
