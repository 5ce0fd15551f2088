package tui

import (
	"testing"

	"github.com/muurk/jeopardy/internal/board"
)

func TestViewAlertsQueue(t *testing.T) {
	v := NewView()
	v.Alert("first")
	v.Alert("second")

	msg, ok := v.PendingAlert()
	if !ok || msg != "first" {
		t.Fatalf("PendingAlert = %q, %v", msg, ok)
	}
	v.DismissAlert()
	msg, _ = v.PendingAlert()
	if msg != "second" {
		t.Errorf("PendingAlert = %q, want second", msg)
	}
	v.DismissAlert()
	v.DismissAlert()
	if _, ok := v.PendingAlert(); ok {
		t.Error("queue should be empty")
	}
}

func TestViewLoadingResetsProgress(t *testing.T) {
	v := NewView()
	v.SetLoading(true)
	v.Progress(6, 6, "Last")
	v.SetLoading(false)
	v.SetLoading(true)

	done, total, label := v.LoadProgress()
	if done != 0 || total != 0 || label != "" {
		t.Errorf("progress not reset: %d %d %q", done, total, label)
	}
}

func TestViewRendersThroughGrid(t *testing.T) {
	v := NewView()
	if v.HasBoard() {
		t.Error("new view should have no board")
	}

	cats := testCategories()
	v.RenderBoard(cats)
	v.RenderCell(board.Coord{Category: 1, Clue: 4}, "a", true)

	cell, ok := v.Snapshot().Cell(board.Coord{Category: 1, Clue: 4})
	if !ok || !cell.Answered || cell.ID != "1-4" {
		t.Errorf("cell = %+v", cell)
	}
	if !v.HasBoard() {
		t.Error("HasBoard should be true after RenderBoard")
	}
}
