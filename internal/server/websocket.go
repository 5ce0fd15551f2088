package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/muurk/jeopardy/internal/game"
	"github.com/muurk/jeopardy/internal/logging"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 4096
)

// client is one connected browser
type client struct {
	conn       *websocket.Conn
	send       chan []byte
	remoteAddr string
}

// handleWebSocket upgrades the request and runs the browser's read and write
// loops until it disconnects.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if !s.track(2) {
		http.Error(w, "server shutting down", http.StatusServiceUnavailable)
		return
	}
	started := false
	defer func() {
		if !started {
			s.wg.Add(-2)
		}
	}()

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied with an HTTP error
		logging.Warn("WebSocket upgrade failed",
			zap.String("remote_addr", r.RemoteAddr),
			zap.Error(err),
		)
		return
	}

	c := &client{
		conn:       conn,
		send:       make(chan []byte, sendBuffer),
		remoteAddr: r.RemoteAddr,
	}
	logging.LogConnection(c.remoteAddr, "websocket_upgraded")

	if err := s.hub.register(c); err != nil {
		logging.Warn("Browser not registered", zap.String("remote_addr", c.remoteAddr), zap.Error(err))
		_ = conn.Close()
		return
	}

	started = true
	go func() {
		defer s.wg.Done()
		s.writePump(c)
	}()
	go func() {
		defer s.wg.Done()
		s.readPump(c)
	}()
}

// readPump handles frames from the browser. It owns closing the connection.
func (s *Server) readPump(c *client) {
	defer func() {
		s.hub.unregister(c)
		_ = c.conn.Close()
		logging.LogConnection(c.remoteAddr, "websocket_closed")
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		msgType, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logging.Info("Connection closed with error",
					zap.String("remote_addr", c.remoteAddr),
					zap.Error(err),
				)
			}
			return
		}
		logging.LogWebSocketMessage(c.remoteAddr, "received", msgType, data)

		if msgType != websocket.TextMessage {
			continue
		}
		s.handleClientMessage(c, data)
	}
}

// handleClientMessage applies one browser request
func (s *Server) handleClientMessage(c *client, data []byte) {
	var msg clientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		s.reply(c, Message{Type: MsgError, Message: "malformed message"})
		return
	}

	switch msg.Type {
	case MsgStart:
		s.startSetup()

	case MsgClick:
		err := s.ctrl.Dispatch(msg.Cell)
		switch {
		case err == nil, errors.Is(err, game.ErrNotReady):
		case errors.Is(err, game.ErrNoSubscriber):
			s.reply(c, Message{Type: MsgError, Message: "unknown cell " + msg.Cell})
		default:
			logging.Warn("Reveal failed",
				zap.String("remote_addr", c.remoteAddr),
				zap.String("cell", msg.Cell),
				zap.Error(err),
			)
		}

	default:
		s.reply(c, Message{Type: MsgError, Message: "unknown message type " + msg.Type})
	}
}

// reply queues a message for a single browser
func (s *Server) reply(c *client, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	s.hub.mu.Lock()
	defer s.hub.mu.Unlock()
	if _, ok := s.hub.clients[c]; !ok {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

// writePump drains the browser's queue and keeps the connection alive with
// pings. It stops when the hub closes the queue.
func (s *Server) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				logging.Info("Failed to write to browser",
					zap.String("remote_addr", c.remoteAddr),
					zap.Error(err),
				)
				return
			}
			logging.LogWebSocketMessage(c.remoteAddr, "sent", websocket.TextMessage, data)

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
