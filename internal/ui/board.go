package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/muurk/jeopardy/internal/board"
)

// maxCellLines caps how tall a revealed clue may make its row
const maxCellLines = 3

// BoardOptions controls how a board snapshot is drawn
type BoardOptions struct {
	Width      int         // Total width available
	Cursor     board.Coord // Selected cell
	ShowCursor bool        // Whether to highlight Cursor
}

// ColumnWidth is the width of one category column for a total width
func ColumnWidth(total, columns int) int {
	if columns <= 0 {
		return total
	}
	// one border rune per column plus the closing one
	w := (total - columns - 1) / columns
	if w < 8 {
		w = 8
	}
	return w
}

// RenderBoard draws a grid snapshot as a table: category titles on top,
// one row per clue. Hidden cells show "?", answered cells are green.
func RenderBoard(snap board.Snapshot, opts BoardOptions) string {
	if snap.Empty() {
		return ""
	}
	width := opts.Width
	if width <= 0 {
		width = GetTerminalWidth()
	}
	colWidth := ColumnWidth(width, len(snap.Headers))

	headers := make([]string, len(snap.Headers))
	for i, h := range snap.Headers {
		headers[i] = Truncate(h, colWidth-2, 2)
	}

	rows := make([][]string, len(snap.Rows))
	for y, row := range snap.Rows {
		rows[y] = make([]string, len(row))
		for x, cell := range row {
			rows[y][x] = Truncate(cell.Content, colWidth-2, maxCellLines)
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(MutedColor)).
		BorderRow(true).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Width(colWidth).Padding(0, 1)
			if row == table.HeaderRow {
				return base.Inherit(CategoryHeaderStyle)
			}
			cell, ok := snap.Cell(board.Coord{Category: col, Clue: row})
			if !ok {
				return base
			}
			if opts.ShowCursor && opts.Cursor.Category == col && opts.Cursor.Clue == row {
				return base.Inherit(CursorCellStyle)
			}
			return base.Inherit(CellStyle(cell))
		})

	return t.Render()
}

// CellStyle picks the style for a cell's current display
func CellStyle(cell board.Cell) lipgloss.Style {
	switch {
	case cell.Answered:
		return AnsweredCellStyle
	case cell.Content == board.Placeholder:
		return HiddenCellStyle
	default:
		return QuestionCellStyle
	}
}

// Truncate word-wraps s to width and keeps at most maxLines lines, marking
// a cut with an ellipsis.
func Truncate(s string, width, maxLines int) string {
	if width < 1 {
		width = 1
	}
	wrapped := lipgloss.NewStyle().Width(width).Render(s)
	lines := strings.Split(wrapped, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
		last := []rune(lines[maxLines-1])
		if len(last) >= width {
			last = last[:width-1]
		}
		lines[maxLines-1] = string(last) + "…"
	}
	return strings.Join(lines, "\n")
}

// RenderSheet prints every clue of a board with its answer, category by
// category. It is the host's cheat sheet.
func RenderSheet(categories []board.Category, width int) string {
	if width <= 0 {
		width = GetTerminalWidth()
	}
	textWidth := width - 8

	var b strings.Builder
	for i, cat := range categories {
		if i > 0 {
			b.WriteString("\n")
		}
		title := fmt.Sprintf(" %d. %s ", i+1, strings.ToUpper(cat.Title))
		b.WriteString(CategoryHeaderStyle.Align(lipgloss.Left).Render(title))
		b.WriteString("\n")

		for j, clue := range cat.Clues {
			q := lipgloss.NewStyle().Width(textWidth).Render(clue.Question)
			b.WriteString(fmt.Sprintf("  %s %s\n",
				StepPendingStyle.Render(board.Coord{Category: i, Clue: j}.ID()),
				indentTail(q, "      ")))
			b.WriteString("      ")
			b.WriteString(StepCompleteStyle.Render("→ " + clue.Answer))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func indentTail(s, indent string) string {
	return strings.ReplaceAll(s, "\n", "\n"+indent)
}
