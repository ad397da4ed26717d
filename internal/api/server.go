package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Server wraps the HTTP server for the web frontend.
type Server struct {
	httpServer *http.Server
	watcher    *ConfigWatcher
	wsHub      *WebSocketHub
	logger     *zap.Logger
}

// NewServer creates a new server with the given handler and port.
// If watcher is nil, config reloading is disabled.
func NewServer(handler *Handler, port int, logger *zap.Logger, watcher *ConfigWatcher) *Server {
	mux := http.NewServeMux()

	wsHub := NewWebSocketHub(logger, handler.controller.Layout)
	mux.HandleFunc("GET /api/v1/ws", wsHub.ServeWS)
	handler.RegisterRoutes(mux)

	handler.controller.Subscribe(wsHub.OnLayout)
	if watcher != nil {
		watcher.Subscribe(wsHub)
	}

	wrapped := Logging(logger, Cors(mux))

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", port),
			Handler:      wrapped,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		watcher: watcher,
		wsHub:   wsHub,
		logger:  logger,
	}
}

// Start begins listening for HTTP requests. Blocks until shutdown.
func (s *Server) Start() error {
	if s.watcher != nil {
		if err := s.watcher.Start(); err != nil {
			s.logger.Warn("Failed to start config watcher", zap.Error(err))
		}
	}

	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.watcher != nil {
		if err := s.watcher.Stop(); err != nil {
			s.logger.Warn("Failed to stop config watcher", zap.Error(err))
		}
	}

	return s.httpServer.Shutdown(ctx)
}

// Addr returns the address the server is listening on.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Hub returns the websocket hub that fans out layout changes.
func (s *Server) Hub() *WebSocketHub {
	return s.wsHub
}

// Handler returns the wrapped root handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}
