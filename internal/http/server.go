package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-digest/internal/logging"
	"github.com/goliatone/go-digest/pkg/interfaces"
)

const defaultShutdownTimeout = 10 * time.Second

// ServerOptions configures the bundled HTTP server.
type ServerOptions struct {
	Addr            string
	BasePath        string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	Logger          interfaces.Logger
}

// Server runs the digest API behind a net/http server with graceful shutdown.
type Server struct {
	httpServer      *http.Server
	logger          interfaces.Logger
	shutdownTimeout time.Duration
}

// NewServer builds a server around the supplied API.
func NewServer(api *API, opts ServerOptions) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NoOp()
	}

	addr := strings.TrimSpace(opts.Addr)
	if addr == "" {
		addr = ":8000"
	}

	shutdownTimeout := opts.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}

	return &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      api.Handler(opts.BasePath),
			ReadTimeout:  opts.ReadTimeout,
			WriteTimeout: opts.WriteTimeout,
		},
		logger:          logger,
		shutdownTimeout: shutdownTimeout,
	}
}

// Addr reports the configured listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Run serves requests until the context is cancelled, then drains in-flight
// connections within the shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("http server listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("http server draining", "timeout", s.shutdownTimeout.String())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("http server shutdown failed", "error", err)
		return err
	}
	return <-errCh
}
