// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Codechat Authors

package devserver

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/codegenhq/codechat/internal/config"
	"github.com/codegenhq/codechat/internal/logger"
)

const shutdownTimeout = 5 * time.Second

// Server wraps the HTTP listener with signal-driven graceful shutdown.
type Server struct {
	httpServer *http.Server
	logger     *logger.Logger
}

func NewServer(handler *Handler, cfg config.ServerConfig, log *logger.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:    cfg.Address,
			Handler: handler.Init(),
		},
		logger: log,
	}
}

// Run serves until SIGINT/SIGTERM/SIGQUIT, then shuts down gracefully.
func (s *Server) Run() error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("address", s.httpServer.Addr).Msg("launching HTTP server")
		if err := s.httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}

	s.logger.Info().Msg("server shutdown gracefully")
	return nil
}
