package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/scenmip/scenmip/internal/logging"
)

// Server serves the /metrics endpoint for a running solve.
type Server struct {
	metrics *Metrics
	logger  logging.Logger
	srv     *http.Server
}

// New creates a metrics server bound to addr.
func New(addr string, metrics *Metrics, logger logging.Logger) *Server {
	s := &Server{
		metrics: metrics,
		logger:  logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", s.handleMetrics)

	s.srv = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// handleMetrics serves the Prometheus exposition. Only GET is allowed.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.logger.Warn("rejected metrics request",
			logging.String("method", r.Method),
			logging.String("remote", r.RemoteAddr),
		)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.metrics.WritePrometheus(w, r)
}

// Start listens and serves until Shutdown is called. It returns nil on a
// clean shutdown.
func (s *Server) Start() error {
	s.logger.Info("metrics server listening", logging.String("addr", s.srv.Addr))
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
