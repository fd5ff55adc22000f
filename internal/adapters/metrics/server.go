package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/brachisto/brachisto-go/internal/infrastructure/config"
)

// Server exposes the metrics registry over HTTP for Prometheus scraping
type Server struct {
	httpServer *http.Server
}

// NewServer creates a metrics HTTP server from configuration. Returns
// nil when metrics are disabled or the registry is not initialized.
func NewServer(cfg *config.MetricsConfig) *Server {
	if !cfg.Enabled || Registry == nil {
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle(cfg.Path, promhttp.HandlerFor(Registry, promhttp.HandlerOpts{}))

	return &Server{
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
		return fmt.Errorf("metrics server: %w", err)
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
