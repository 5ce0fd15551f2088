package game

import (
	"fmt"
	"sync"
)

// Handler reacts to a click on one cell
type Handler func() error

// Events maps cell ids to click handlers. Surfaces dispatch cell ids here
// and never touch the store directly.
type Events struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewEvents creates an empty subscription table
func NewEvents() *Events {
	return &Events{handlers: make(map[string]Handler)}
}

// Subscribe registers h for cellID, replacing any earlier handler
func (e *Events) Subscribe(cellID string, h Handler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handlers[cellID] = h
}

// Unsubscribe removes the handler for cellID
func (e *Events) Unsubscribe(cellID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.handlers, cellID)
}

// Clear removes every handler
func (e *Events) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handlers = make(map[string]Handler)
}

// Len returns the number of subscribed cells
func (e *Events) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.handlers)
}

// Dispatch runs the handler subscribed to cellID.
func (e *Events) Dispatch(cellID string) error {
	e.mu.RLock()
	h, ok := e.handlers[cellID]
	e.mu.RUnlock()

	if !ok {
		return fmt.Errorf("%w: %q", ErrNoSubscriber, cellID)
	}
	return h()
}
