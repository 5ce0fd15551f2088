package board

import "sync"

// Cell is one displayed cell of the grid.
type Cell struct {
	ID       string `json:"id"`
	Content  string `json:"content"`
	Answered bool   `json:"answered"`
}

// Snapshot is an immutable copy of a Grid.
type Snapshot struct {
	Headers []string `json:"headers"`
	Rows    [][]Cell `json:"rows"`
}

// Empty reports whether no board has been rendered yet.
func (s Snapshot) Empty() bool {
	return len(s.Headers) == 0
}

// Cell returns the cell at c, or false if the snapshot doesn't hold it.
func (s Snapshot) Cell(c Coord) (Cell, bool) {
	if c.Clue < 0 || c.Clue >= len(s.Rows) {
		return Cell{}, false
	}
	row := s.Rows[c.Clue]
	if c.Category < 0 || c.Category >= len(row) {
		return Cell{}, false
	}
	return row[c.Category], true
}

// Grid is the rendered representation of the board: one header per
// category and one row per clue index. It never reads or writes the Store;
// it only reflects what it's told to render.
type Grid struct {
	mu      sync.RWMutex
	headers []string
	rows    [][]Cell
}

// NewGrid creates an empty grid
func NewGrid() *Grid {
	return &Grid{}
}

// RenderBoard clears the grid, writes one header per category title and a
// placeholder cell for every clue.
func (g *Grid) RenderBoard(categories []Category) {
	headers := make([]string, len(categories))
	for i, cat := range categories {
		headers[i] = cat.Title
	}

	rows := make([][]Cell, NumClues)
	for y := 0; y < NumClues; y++ {
		rows[y] = make([]Cell, len(categories))
		for x := range categories {
			rows[y][x] = Cell{
				ID:      Coord{Category: x, Clue: y}.ID(),
				Content: Placeholder,
			}
		}
	}

	g.mu.Lock()
	g.headers = headers
	g.rows = rows
	g.mu.Unlock()
}

// RenderCell overwrites a single cell. Coordinates outside the rendered
// board are ignored.
func (g *Grid) RenderCell(c Coord, content string, answered bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if c.Clue < 0 || c.Clue >= len(g.rows) {
		return
	}
	row := g.rows[c.Clue]
	if c.Category < 0 || c.Category >= len(row) {
		return
	}
	row[c.Category].Content = content
	row[c.Category].Answered = answered
}

// Clear removes everything from the grid.
func (g *Grid) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.headers = nil
	g.rows = nil
}

// Snapshot returns a copy of the grid.
func (g *Grid) Snapshot() Snapshot {
	g.mu.RLock()
	defer g.mu.RUnlock()

	headers := make([]string, len(g.headers))
	copy(headers, g.headers)

	rows := make([][]Cell, len(g.rows))
	for i, row := range g.rows {
		rows[i] = make([]Cell, len(row))
		copy(rows[i], row)
	}
	return Snapshot{Headers: headers, Rows: rows}
}
