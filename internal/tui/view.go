package tui

import (
	"sync"

	"github.com/muurk/jeopardy/internal/board"
)

// View is the terminal surface of a game. The controller writes to it from
// whatever goroutine it runs on; the Bubble Tea model reads it on every
// redraw. It never sends messages to the program, so it is safe to call
// from inside Update.
type View struct {
	grid *board.Grid

	mu       sync.Mutex
	loading  bool
	done     int
	total    int
	label    string
	alerts   []string
	hasBoard bool
}

// NewView creates an empty terminal surface
func NewView() *View {
	return &View{grid: board.NewGrid()}
}

// SetLoading implements game.View
func (v *View) SetLoading(loading bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.loading = loading
	if loading {
		v.done, v.total, v.label = 0, 0, ""
	}
}

// Progress implements game.View
func (v *View) Progress(done, total int, label string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.done, v.total = done, total
	if label != "" {
		v.label = label
	}
}

// RenderBoard implements game.View
func (v *View) RenderBoard(categories []board.Category) {
	v.grid.RenderBoard(categories)
	v.mu.Lock()
	v.hasBoard = true
	v.mu.Unlock()
}

// RenderCell implements game.View
func (v *View) RenderCell(at board.Coord, content string, answered bool) {
	v.grid.RenderCell(at, content, answered)
}

// Alert implements game.View. Alerts queue until dismissed.
func (v *View) Alert(message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.alerts = append(v.alerts, message)
}

// PendingAlert returns the oldest undismissed alert
func (v *View) PendingAlert() (string, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.alerts) == 0 {
		return "", false
	}
	return v.alerts[0], true
}

// DismissAlert drops the oldest alert
func (v *View) DismissAlert() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.alerts) > 0 {
		v.alerts = v.alerts[1:]
	}
}

// Loading reports whether a setup is in progress
func (v *View) Loading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading
}

// LoadProgress returns the last reported progress
func (v *View) LoadProgress() (done, total int, label string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.done, v.total, v.label
}

// HasBoard reports whether a board has ever been rendered
func (v *View) HasBoard() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.hasBoard
}

// Snapshot returns the displayed grid
func (v *View) Snapshot() board.Snapshot {
	return v.grid.Snapshot()
}
