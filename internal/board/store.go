package board

import (
	"fmt"
	"sync"
)

// Transition describes the result of one click on a cell.
type Transition struct {
	Coord   Coord       `json:"coord"`
	Content string      `json:"content"`
	State   RevealState `json:"state"`
	Changed bool        `json:"changed"`
}

// Answered reports whether the cell should get the answered treatment.
func (t Transition) Answered() bool {
	return t.State == Answer
}

// Store is the in-memory game state: the current list of categories.
// Readers get copies; Reveal is the only mutation of a clue.
type Store struct {
	mu         sync.RWMutex
	categories []Category
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{}
}

// Reset clears the board.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = nil
}

// Replace validates and installs a new board in one step. On error the
// previous board is left untouched.
func (s *Store) Replace(categories []Category) error {
	if err := Validate(categories); err != nil {
		return err
	}

	next := make([]Category, len(categories))
	for i, cat := range categories {
		next[i] = cat.clone()
	}

	s.mu.Lock()
	s.categories = next
	s.mu.Unlock()
	return nil
}

// Len returns the number of categories currently held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.categories)
}

// Categories returns a deep copy of the board.
func (s *Store) Categories() []Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.categories == nil {
		return nil
	}
	out := make([]Category, len(s.categories))
	for i, cat := range s.categories {
		out[i] = cat.clone()
	}
	return out
}

// Clue returns a copy of the clue at c.
func (s *Store) Clue(c Coord) (Clue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	clue, err := s.locate(c)
	if err != nil {
		return Clue{}, err
	}
	return *clue, nil
}

// Reveal advances the clue at c by one step of its reveal cycle.
func (s *Store) Reveal(c Coord) (Transition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clue, err := s.locate(c)
	if err != nil {
		return Transition{}, err
	}

	content, changed := clue.Advance()
	if !changed {
		content = clue.Display()
	}
	return Transition{
		Coord:   c,
		Content: content,
		State:   clue.State,
		Changed: changed,
	}, nil
}

// locate must be called with the lock held
func (s *Store) locate(c Coord) (*Clue, error) {
	if len(s.categories) == 0 {
		return nil, ErrEmptyBoard
	}
	if c.Category < 0 || c.Category >= len(s.categories) {
		return nil, fmt.Errorf("%w: %s", ErrOutOfRange, c)
	}
	clues := s.categories[c.Category].Clues
	if c.Clue < 0 || c.Clue >= len(clues) {
		return nil, fmt.Errorf("%w: %s", ErrOutOfRange, c)
	}
	return &clues[c.Clue], nil
}
