// Package server exposes the analysis pipeline over HTTP: POST /analyze,
// its SSE streaming variant, and health/metrics endpoints, behind
// auth and rate-limit middleware.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/marisol-health/frontdesk/internal/analysis"
	"github.com/marisol-health/frontdesk/internal/config"
	"github.com/marisol-health/frontdesk/internal/ratelimit"
)

const maxRequestBytes = 256 * 1024

// Server is the HTTP gateway. The rate limiter is owned by the caller and
// passed in explicitly; it lives exactly as long as the process.
type Server struct {
	analyzer *analysis.Analyzer
	limiter  *ratelimit.Limiter
	logger   *slog.Logger
	auth     config.Auth
	provider string
	addr     string
	timeout  time.Duration
}

// New wires a Server from its collaborators. limiter may be nil when rate
// limiting is disabled.
func New(cfg config.Config, analyzer *analysis.Analyzer, limiter *ratelimit.Limiter, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		analyzer: analyzer,
		limiter:  limiter,
		logger:   logger,
		auth:     cfg.Auth,
		provider: cfg.Provider.Name,
		addr:     cfg.Server.Addr,
		timeout:  cfg.Provider.Timeout,
	}
}

// Handler builds the full middleware chain around the route mux.
// Order (outermost first): request ID, logging, metrics, body cap, auth,
// rate limit.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/analyze", s.handleAnalyze)
	mux.HandleFunc("/analyze/stream", s.handleAnalyzeStream)
	mux.Handle("/metrics", promhttp.Handler())

	var h http.Handler = mux
	h = rateLimit(s.limiter)(h)
	h = apiKeyAuth(s.auth)(h)
	h = maxBytes(maxRequestBytes)(h)
	h = recordMetrics(h)
	h = logging(s.logger)(h)
	h = requestID(h)
	return h
}

// ListenAndServe runs the server until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", s.addr, "provider", s.provider)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
