// Package server wires each app together: database, services, handlers,
// middleware, routes. One constructor per app (NewQA, NewFoodLog,
// NewMembers, NewBasics) builds the full dependency chain; the shared
// Server type owns the router and the graceful-shutdown loop.
//
// This is the composition root — the only place where concrete types meet.
// Handlers receive services, services receive repository interfaces, and
// nothing below this package knows which app it is running in.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	sqliteRepo "github.com/sakif/web-playground/internal/repository/sqlite"
)

// Server is one app's HTTP server. It owns the database connection (nil for
// the database-less basics app) and closes it on shutdown.
type Server struct {
	router *chi.Mux
	port   int
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// Handler exposes the router, mainly so tests can drive the full middleware
// and route stack through httptest without binding a port.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start runs the server until SIGINT/SIGTERM, then shuts down gracefully:
// stop accepting connections, give in-flight requests 30 seconds to drain,
// close the database (flushes the WAL and releases the file lock).
func (s *Server) Start() error {
	if s.db != nil {
		defer s.db.Close()
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.port)),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
