package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/muurk/jeopardy/internal/board"
)

func testSnapshot() board.Snapshot {
	cats := make([]board.Category, board.NumCategories)
	for x := range cats {
		cats[x].Title = "Title"
		for y := 0; y < board.NumClues; y++ {
			cats[x].Clues = append(cats[x].Clues, board.NewClue("question", "answer"))
		}
	}
	g := board.NewGrid()
	g.RenderBoard(cats)
	g.RenderCell(board.Coord{Category: 1, Clue: 1}, "Shown question", false)
	g.RenderCell(board.Coord{Category: 2, Clue: 2}, "Shown answer", true)
	return g.Snapshot()
}

func TestRenderBoard(t *testing.T) {
	out := RenderBoard(testSnapshot(), BoardOptions{Width: 100})

	if !strings.Contains(out, "Title") {
		t.Error("board should show category titles")
	}
	if strings.Count(out, board.Placeholder) != 28 {
		t.Errorf("expected 28 hidden cells, got %d", strings.Count(out, board.Placeholder))
	}
	if !strings.Contains(out, "Shown answer") {
		t.Error("board should show revealed content")
	}
}

func TestRenderBoardEmpty(t *testing.T) {
	if got := RenderBoard(board.Snapshot{}, BoardOptions{Width: 80}); got != "" {
		t.Errorf("empty snapshot rendered %q", got)
	}
}

func TestCellStyle(t *testing.T) {
	if CellStyle(board.Cell{Content: "x", Answered: true}).GetBackground() != SuccessColor {
		t.Error("answered cells should be green")
	}
	if CellStyle(board.Cell{Content: board.Placeholder}).GetForeground() != ValueColor {
		t.Error("hidden cells should use the value color")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		width    int
		maxLines int
		want     string
	}{
		{"fits", "short", 10, 3, "short"},
		{"wraps", "one two three", 7, 3, "one two\nthree"},
		{"cut", "one two three four", 5, 2, "one\ntwo…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.in, tt.width, tt.maxLines); got != tt.want {
				t.Errorf("Truncate(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestColumnWidth(t *testing.T) {
	if got := ColumnWidth(100, 6); got != 15 {
		t.Errorf("ColumnWidth(100, 6) = %d, want 15", got)
	}
	if got := ColumnWidth(20, 6); got != 8 {
		t.Errorf("ColumnWidth(20, 6) = %d, want minimum 8", got)
	}
}

func TestRenderSheet(t *testing.T) {
	cats := []board.Category{{
		Title: "Capitals",
		Clues: []board.Clue{board.NewClue("Capital of France", "Paris")},
	}}

	out := RenderSheet(cats, 80)
	for _, want := range []string{"CAPITALS", "0-0", "Capital of France", "Paris"} {
		if !strings.Contains(out, want) {
			t.Errorf("sheet missing %q:\n%s", want, out)
		}
	}
}

func TestHeaderParamsSorted(t *testing.T) {
	h := NewHeader("Host Sheet", "jeopardy deal", map[string]string{"Zeta": "1", "Alpha": "2"})
	out := h.SetWidth(80).Render()

	if strings.Index(out, "Alpha") > strings.Index(out, "Zeta") {
		t.Error("params should render in key order")
	}
	if !strings.Contains(out, "HOST SHEET") {
		t.Error("title should be upper-cased")
	}
}

func TestResultRender(t *testing.T) {
	ok := NewSuccessResult("Board dealt", map[string]string{"Categories": "6"}).SetWidth(80).Render()
	if !strings.Contains(ok, "SUCCESS") || !strings.Contains(ok, "Categories") {
		t.Errorf("success box missing content:\n%s", ok)
	}

	fail := NewFailureResult("Deal", errors.New("boom"), []string{"Wait a minute"}).SetWidth(80).Render()
	for _, want := range []string{"FAILED", "boom", "Troubleshooting", "Wait a minute"} {
		if !strings.Contains(fail, want) {
			t.Errorf("failure box missing %q", want)
		}
	}
}

func TestPrinterBoxes(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf).SetWidth(80)

	p.PrintHeader("Board Scan", "jeopardy scan", map[string]string{"Timeout": "5s"})
	p.PrintWarning("No boards found", map[string]string{"Start a board": "jeopardy serve --announce"})
	p.PrintError("Scan failed", errors.New("no interface"), []string{"Check the network"})

	out := buf.String()
	for _, want := range []string{"jeopardy scan", "Timeout", "WARNING", "No boards found", "jeopardy serve --announce", "FAILED", "no interface", "Check the network"} {
		if !strings.Contains(out, want) {
			t.Errorf("printer output missing %q:\n%s", want, out)
		}
	}
}

func TestResultAddDetail(t *testing.T) {
	r := NewSuccessResult("1. Living Room", nil).
		SetWidth(80).
		AddDetail("Open", "http://192.168.1.20:8080/").
		AddDetail("Host", "den.local")

	if len(r.Details) != 2 {
		t.Fatalf("Details = %v, want 2 entries", r.Details)
	}
	out := r.Render()
	if !strings.Contains(out, "http://192.168.1.20:8080/") || !strings.Contains(out, "den.local") {
		t.Errorf("result box missing details:\n%s", out)
	}
}

func TestTipsFromHint(t *testing.T) {
	hint := "Could not reach the API.\nTroubleshooting:\n  • Check your connection\n  • Verify the URL"
	tips := TipsFromHint(hint)
	if len(tips) != 2 || tips[0] != "Check your connection" {
		t.Errorf("TipsFromHint = %v", tips)
	}

	if tips := TipsFromHint("Just one line."); len(tips) != 1 {
		t.Errorf("plain hint should become one tip, got %v", tips)
	}
}

func TestRunner(t *testing.T) {
	var buf bytes.Buffer
	r := NewRunner(RunnerConfig{
		Title:      "Host Sheet",
		Command:    "jeopardy deal",
		TotalSteps: 2,
		Output:     &buf,
	}).SetWidth(80)

	err := r.Run(func(onStep StepCallback) (map[string]string, error) {
		onStep(1, "First", StepRunning, "")
		onStep(1, "First", StepComplete, "")
		onStep(2, "Second", StepComplete, "cached")
		return map[string]string{"Categories": "2"}, nil
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"HOST SHEET", "First", "Second", "(cached)", "Host Sheet complete", "Duration"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestRunnerFailure(t *testing.T) {
	var buf bytes.Buffer
	r := NewRunner(RunnerConfig{
		Title:        "Host Sheet",
		Output:       &buf,
		Troubleshoot: func(error) []string { return []string{"Try again"} },
	}).SetWidth(80)

	err := r.Run(func(StepCallback) (map[string]string, error) {
		return nil, errors.New("rate limited")
	})
	if err == nil {
		t.Fatal("Run() should return the operation error")
	}
	if !strings.Contains(buf.String(), "Try again") {
		t.Error("failure box should carry troubleshooting tips")
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
	}

	for _, tt := range tests {
		var out bytes.Buffer
		got := Confirm(strings.NewReader(tt.input), &out, "Overwrite", []string{"file exists"}, "Continue?")
		if got != tt.want {
			t.Errorf("Confirm(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
