package webhook

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/custodia-labs/cascade/internal/logger"
)

// Routes served by the webhook.
const (
	EventPath   = "/events/content-deleted"
	HealthPath  = "/healthz"
	MetricsPath = "/metrics"
)

// shutdownTimeout bounds how long in-flight cleanups may run after shutdown starts.
const shutdownTimeout = 30 * time.Second

// Server receives deletion events over HTTP.
type Server struct {
	ports *Ports
	log   logger.Logger
	mux   *http.ServeMux
}

// NewServer creates a new webhook server with the given ports.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	log := ports.Log
	if log == nil {
		log = logger.Nop()
	}

	s := &Server{
		ports: ports,
		log:   log,
		mux:   http.NewServeMux(),
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.mux.HandleFunc("POST "+EventPath, s.handleContentDeleted)
	s.mux.HandleFunc("GET "+HealthPath, s.handleHealth)
	if s.ports.Metrics != nil {
		s.mux.Handle("GET "+MetricsPath, s.ports.Metrics)
	}
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// RunHTTP starts the server on addr.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until the context is cancelled.
// In-flight requests are given shutdownTimeout to finish.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		httpServer.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	s.log.Info("Listening for deletion events", "addr", ln.Addr().String(), "path", EventPath)
	err := httpServer.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
