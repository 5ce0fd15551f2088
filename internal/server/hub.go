package server

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/muurk/jeopardy/internal/board"
	"github.com/muurk/jeopardy/internal/game"
	"github.com/muurk/jeopardy/internal/logging"
	"go.uber.org/zap"
)

// Message types pushed to browsers
const (
	MsgSnapshot = "snapshot"
	MsgLoading  = "loading"
	MsgProgress = "progress"
	MsgBoard    = "board"
	MsgCell     = "cell"
	MsgAlert    = "alert"
	MsgError    = "error"
)

// Message types sent by browsers
const (
	MsgStart = "start"
	MsgClick = "click"
)

// Message is the JSON envelope of every frame on /ws. Only the fields
// relevant to Type are set.
type Message struct {
	Type    string          `json:"type"`
	Loading bool            `json:"loading,omitempty"`
	Label   string          `json:"label,omitempty"`
	Done    int             `json:"done,omitempty"`
	Total   int             `json:"total,omitempty"`
	Board   *board.Snapshot `json:"board,omitempty"`
	Cell    *board.Cell     `json:"cell,omitempty"`
	Message string          `json:"message,omitempty"`
}

// clientMessage is a frame sent by a browser
type clientMessage struct {
	Type string `json:"type"`
	Cell string `json:"cell,omitempty"`
}

// sendBuffer is the number of frames queued per browser before it is
// considered too slow and dropped
const sendBuffer = 64

// Hub is the browser surface of a game. It implements game.View: every call
// updates the shared grid and is fanned out to all connected browsers.
// Browsers that join late get a snapshot.
type Hub struct {
	grid *board.Grid

	mu       sync.Mutex
	loading  bool
	hasBoard bool
	closed   bool
	clients  map[*client]struct{}
}

// errHubClosed is returned when a browser arrives after closeAll
var errHubClosed = errors.New("hub closed")

// NewHub creates a hub with no browsers attached
func NewHub() *Hub {
	return &Hub{
		grid:    board.NewGrid(),
		clients: make(map[*client]struct{}),
	}
}

// SetLoading implements game.View
func (h *Hub) SetLoading(loading bool) {
	h.mu.Lock()
	h.loading = loading
	msg := Message{Type: MsgLoading, Loading: loading, Label: h.triggerLabel()}
	h.mu.Unlock()

	h.broadcast(msg)
}

// Progress implements game.View
func (h *Hub) Progress(done, total int, label string) {
	h.broadcast(Message{Type: MsgProgress, Done: done, Total: total, Label: label})
}

// RenderBoard implements game.View
func (h *Hub) RenderBoard(categories []board.Category) {
	h.grid.RenderBoard(categories)
	snap := h.grid.Snapshot()

	h.mu.Lock()
	h.hasBoard = true
	h.mu.Unlock()

	h.broadcast(Message{Type: MsgBoard, Board: &snap})
}

// RenderCell implements game.View
func (h *Hub) RenderCell(at board.Coord, content string, answered bool) {
	h.grid.RenderCell(at, content, answered)
	cell, ok := h.grid.Snapshot().Cell(at)
	if !ok {
		return
	}
	h.broadcast(Message{Type: MsgCell, Cell: &cell})
}

// Alert implements game.View
func (h *Hub) Alert(message string) {
	h.broadcast(Message{Type: MsgAlert, Message: message})
}

// Snapshot returns the grid as browsers currently see it
func (h *Hub) Snapshot() board.Snapshot {
	return h.grid.Snapshot()
}

// SnapshotMessage is the frame a newly connected browser receives
func (h *Hub) SnapshotMessage() Message {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.snapshotMessage()
}

// snapshotMessage must be called with the lock held
func (h *Hub) snapshotMessage() Message {
	snap := h.grid.Snapshot()
	return Message{
		Type:    MsgSnapshot,
		Loading: h.loading,
		Label:   h.triggerLabel(),
		Board:   &snap,
	}
}

// Clients returns the number of connected browsers
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// triggerLabel must be called with the lock held
func (h *Hub) triggerLabel() string {
	switch {
	case h.loading:
		return game.LabelLoading
	case h.hasBoard:
		return game.LabelRestart
	default:
		return game.LabelStart
	}
}

// register queues a snapshot for c and adds it to the fan-out in one step,
// so no update lands between the two.
func (h *Hub) register(c *client) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return errHubClosed
	}

	data, err := json.Marshal(h.snapshotMessage())
	if err != nil {
		return err
	}
	c.send <- data
	h.clients[c] = struct{}{}
	return nil
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// closeAll disconnects every browser and refuses new ones
func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}

// broadcast queues msg for every browser. A browser whose queue is full is
// dropped rather than stalling the game.
func (h *Hub) broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		logging.Error("Failed to encode board message", zap.String("type", msg.Type), zap.Error(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			logging.Warn("Dropping slow browser", zap.String("remote_addr", c.remoteAddr))
			delete(h.clients, c)
			close(c.send)
		}
	}
}
