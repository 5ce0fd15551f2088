package server

import (
	"context"
	"crypto/tls"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/muurk/jeopardy/internal/game"
	"github.com/muurk/jeopardy/internal/logging"
)

//go:embed web
var webFiles embed.FS

// DefaultAddr is where the browser board listens unless told otherwise
const DefaultAddr = ":8080"

// Controller is the part of game.Controller the browser board drives
type Controller interface {
	Start(ctx context.Context) error
	Dispatch(cellID string) error
	Status() game.Status
}

// Config holds the server configuration
type Config struct {
	Addr     string
	CertPath string // optional; serve HTTPS when set together with KeyPath
	KeyPath  string

	// ShutdownTimeout bounds how long Shutdown waits for browsers to leave
	ShutdownTimeout time.Duration
}

// Server serves the browser board: the page, a small JSON API and the
// WebSocket the page plays through.
type Server struct {
	config     *Config
	ctrl       Controller
	hub        *Hub
	router     chi.Router
	upgrader   websocket.Upgrader
	tlsConfig  *tls.Config
	listener   net.Listener
	httpServer *http.Server

	// ctx outlives individual requests; setups started from a browser run on it
	ctx    context.Context
	cancel context.CancelFunc

	// mu orders wg.Add against Shutdown's wg.Wait
	mu      sync.Mutex
	closing bool
	wg      sync.WaitGroup
}

// New creates a server for a controller that renders to hub
func New(config *Config, ctrl Controller, hub *Hub) (*Server, error) {
	if config.Addr == "" {
		config.Addr = DefaultAddr
	}
	if config.ShutdownTimeout == 0 {
		config.ShutdownTimeout = 10 * time.Second
	}

	var tlsConfig *tls.Config
	if config.CertPath != "" || config.KeyPath != "" {
		var err error
		tlsConfig, err = NewTLSConfig(config.CertPath, config.KeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create TLS config: %w", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		config:    config,
		ctrl:      ctrl,
		hub:       hub,
		tlsConfig: tlsConfig,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		ctx:    ctx,
		cancel: cancel,
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(requestLogger)

	// the socket lives as long as the browser does; no handler timeout
	r.Get("/ws", s.handleWebSocket)

	r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(10 * time.Second))

		r.Get("/healthz", s.handleHealth)
		r.Get("/api/board", s.handleBoard)

		static, _ := fs.Sub(webFiles, "web")
		r.Handle("/*", http.FileServer(http.FS(static)))
	})

	return r
}

// Handler returns the HTTP handler (useful for tests)
func (s *Server) Handler() http.Handler {
	return s.router
}

// Listen binds the configured address. Addr is valid afterwards.
func (s *Server) Listen() (net.Addr, error) {
	listener, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", s.config.Addr, err)
	}
	if s.tlsConfig != nil {
		logging.Info("TLS Configuration", zap.Any("tls_info", GetTLSInfo(s.tlsConfig)))
		listener = tls.NewListener(listener, s.tlsConfig)
	}
	s.listener = listener
	return listener.Addr(), nil
}

// Addr returns the bound address, or nil before Listen
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Serve accepts browsers until ctx is cancelled, then shuts down gracefully.
// Listen is called first if it hasn't been.
func (s *Server) Serve(ctx context.Context) error {
	if s.listener == nil {
		if _, err := s.Listen(); err != nil {
			return err
		}
	}

	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logging.Info("Browser board listening",
		zap.String("addr", s.listener.Addr().String()),
		zap.Bool("tls", s.tlsConfig != nil),
	)

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.httpServer.Serve(s.listener)
	}()

	select {
	case <-ctx.Done():
		logging.Info("Shutdown signal received, stopping server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// Shutdown stops accepting browsers, disconnects the connected ones and
// cancels any setup a browser started.
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down server...")

	s.mu.Lock()
	s.closing = true
	s.mu.Unlock()

	s.cancel()

	var err error
	if s.httpServer != nil {
		err = s.httpServer.Shutdown(ctx)
	}

	// hijacked websocket connections are not tracked by http.Server
	s.hub.closeAll()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logging.Info("All connections closed gracefully")
	case <-ctx.Done():
		logging.Warn("Shutdown timeout, forcing close")
	}

	logging.Sync()
	return err
}

// track reserves n goroutines on the shutdown WaitGroup. It reports false
// once Shutdown has begun.
func (s *Server) track(n int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closing {
		return false
	}
	s.wg.Add(n)
	return true
}

// startSetup runs a controller Start in the background
func (s *Server) startSetup() {
	if !s.track(1) {
		logging.Debug("Start ignored, server shutting down")
		return
	}
	go func() {
		defer s.wg.Done()
		err := s.ctrl.Start(s.ctx)
		if errors.Is(err, game.ErrSetupInProgress) {
			logging.Debug("Start ignored, setup already running")
		}
	}()
}

type healthResponse struct {
	OK     bool   `json:"ok"`
	Status string `json:"status"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{OK: true, Status: s.ctrl.Status().String()})
}

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.hub.Snapshot())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Warn("Failed to write response", zap.Error(err))
	}
}

// requestLogger logs every request once it has been served
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			logging.LogHTTPRequest(r.RemoteAddr, r.Method, r.URL.Path, ww.Status(), time.Since(start))
		}()
		next.ServeHTTP(ww, r)
	})
}
