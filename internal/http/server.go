package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/mongarerobert3/todo-list-api/internal/logging"
)

// Server wraps http.Server with graceful shutdown and structured logging.
// Read and write timeouts bound every request at the transport boundary.
type Server struct {
	httpServer *http.Server
	logger     *logging.Logger
}

func NewServer(addr string, handler http.Handler, readTimeout, writeTimeout time.Duration, logger *logging.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      handler,
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
		},
		logger: logger,
	}
}

// Start begins listening and serving HTTP requests. It blocks until the
// server stops; a clean shutdown is not reported as an error.
func (s *Server) Start() error {
	s.logger.Info("server listening", "addr", s.httpServer.Addr)

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown stops accepting new requests and waits for in-flight ones to
// finish, bounded by ctx
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("server shutting down")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	s.logger.Info("server stopped")
	return nil
}
