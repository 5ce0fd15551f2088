package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	// NumCategories is the number of categories (columns) on every board
	NumCategories = 6

	// NumClues is the number of clues (rows) in every category
	NumClues = 5

	// Placeholder is what a hidden cell displays
	Placeholder = "?"
)

var (
	ErrInvalidBoard = errors.New("invalid board")
	ErrOutOfRange   = errors.New("coordinate out of range")
	ErrEmptyBoard   = errors.New("board has not been set up")
	ErrUnknownCell  = errors.New("unknown cell id")
)

// RevealState governs what a clue's cell displays.
type RevealState string

const (
	Hidden   RevealState = "hidden"
	Question RevealState = "question"
	Answer   RevealState = "answer"
)

// String implements fmt.Stringer
func (s RevealState) String() string {
	if s == "" {
		return string(Hidden)
	}
	return string(s)
}

// Clue is a single question/answer pair with its reveal state.
type Clue struct {
	Question string      `json:"question"`
	Answer   string      `json:"answer"`
	State    RevealState `json:"state"`
}

// NewClue returns a hidden clue.
func NewClue(question, answer string) Clue {
	return Clue{Question: question, Answer: answer, State: Hidden}
}

// Advance moves the clue one step through HIDDEN -> QUESTION -> ANSWER and
// returns the text the cell should now display. ANSWER is terminal: further
// calls report changed=false and leave the clue untouched.
func (c *Clue) Advance() (content string, changed bool) {
	switch c.State {
	case Hidden, "":
		c.State = Question
		return c.Question, true
	case Question:
		c.State = Answer
		return c.Answer, true
	default:
		return "", false
	}
}

// Display returns the text a cell shows for the clue's current state.
func (c Clue) Display() string {
	switch c.State {
	case Question:
		return c.Question
	case Answer:
		return c.Answer
	default:
		return Placeholder
	}
}

// Category is a named group of clues.
type Category struct {
	Title string `json:"title"`
	Clues []Clue `json:"clues"`
}

// clone returns a deep copy of the category
func (c Category) clone() Category {
	clues := make([]Clue, len(c.Clues))
	copy(clues, c.Clues)
	return Category{Title: c.Title, Clues: clues}
}

// Coord addresses a cell by category (column) and clue (row) index.
type Coord struct {
	Category int `json:"category"`
	Clue     int `json:"clue"`
}

// ID returns the stable cell key, "<category>-<clue>".
func (c Coord) ID() string {
	return fmt.Sprintf("%d-%d", c.Category, c.Clue)
}

// String implements fmt.Stringer
func (c Coord) String() string {
	return c.ID()
}

// Valid reports whether the coordinate lies on a full board.
func (c Coord) Valid() bool {
	return c.Category >= 0 && c.Category < NumCategories && c.Clue >= 0 && c.Clue < NumClues
}

// ParseCoord converts a cell id such as "2-3" back to a coordinate.
func ParseCoord(id string) (Coord, error) {
	parts := strings.Split(strings.TrimSpace(id), "-")
	if len(parts) != 2 {
		return Coord{}, fmt.Errorf("%w: %q", ErrUnknownCell, id)
	}
	x, err := strconv.Atoi(parts[0])
	if err != nil {
		return Coord{}, fmt.Errorf("%w: %q", ErrUnknownCell, id)
	}
	y, err := strconv.Atoi(parts[1])
	if err != nil {
		return Coord{}, fmt.Errorf("%w: %q", ErrUnknownCell, id)
	}
	c := Coord{Category: x, Clue: y}
	if !c.Valid() {
		return Coord{}, fmt.Errorf("%w: %q", ErrOutOfRange, id)
	}
	return c, nil
}

// AllCoords lists every cell of a full board in row-major order.
func AllCoords() []Coord {
	coords := make([]Coord, 0, NumCategories*NumClues)
	for y := 0; y < NumClues; y++ {
		for x := 0; x < NumCategories; x++ {
			coords = append(coords, Coord{Category: x, Clue: y})
		}
	}
	return coords
}

// Validate checks the fixed-size invariant: exactly NumCategories categories
// of exactly NumClues clues, each clue hidden.
func Validate(categories []Category) error {
	if len(categories) != NumCategories {
		return fmt.Errorf("%w: %d categories, want %d", ErrInvalidBoard, len(categories), NumCategories)
	}
	for i, cat := range categories {
		if len(cat.Clues) != NumClues {
			return fmt.Errorf("%w: category %d (%q) has %d clues, want %d",
				ErrInvalidBoard, i, cat.Title, len(cat.Clues), NumClues)
		}
		for j, clue := range cat.Clues {
			if clue.State != Hidden {
				return fmt.Errorf("%w: clue %d-%d starts %s", ErrInvalidBoard, i, j, clue.State)
			}
		}
	}
	return nil
}
