package stream

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/brachisto/brachisto-go/internal/infrastructure/config"
)

// Server hosts the websocket endpoint
type Server struct {
	hub        *Hub
	httpServer *http.Server
}

// NewServer creates a websocket server from configuration. Returns nil
// when streaming is disabled.
func NewServer(cfg *config.StreamConfig, hub *Hub) *Server {
	if !cfg.Enabled {
		return nil
	}

	mux := http.NewServeMux()
	mux.HandleFunc(cfg.Path, hub.ServeWs)

	return &Server{
		hub: hub,
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Start serves until the listener closes; run it in a goroutine
func (s *Server) Start() error {
	if s == nil {
		return nil
	}
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("stream server: %w", err)
	}
	return nil
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	if s == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
