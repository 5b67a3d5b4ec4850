// Package server owns the HTTP listener and the background audit recorder.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/matiasleandrokruk/voicedesk/internal/api"
	"github.com/matiasleandrokruk/voicedesk/internal/domain/audit"
	"github.com/matiasleandrokruk/voicedesk/internal/domain/tool"
	"github.com/matiasleandrokruk/voicedesk/internal/infra/config"
	"github.com/matiasleandrokruk/voicedesk/internal/infra/eventbus"
)

// Timeouts holds HTTP server timeouts.
type Timeouts struct {
	Read  time.Duration
	Write time.Duration
	Idle  time.Duration
}

// DefaultTimeouts returns default HTTP server timeouts.
// Write is zero because /mcp streams responses.
func DefaultTimeouts() Timeouts {
	return Timeouts{
		Read: 15 * time.Second,
		Idle: 60 * time.Second,
	}
}

// Server wraps the HTTP server, the database and the audit recorder.
type Server struct {
	db       *sql.DB
	http     *http.Server
	bus      *eventbus.Bus
	recorder *audit.Recorder
	logger   *slog.Logger

	mu      sync.Mutex
	stopped bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewServer wires routes, the event bus and the audit recorder around db.
func NewServer(db *sql.DB, cfg config.Config, timeouts Timeouts, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	bus := eventbus.New()
	router, err := api.NewRouter(db, cfg, bus, logger)
	if err != nil {
		return nil, err
	}

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadTimeout:       timeouts.Read,
		ReadHeaderTimeout: timeouts.Read,
		WriteTimeout:      timeouts.Write,
		IdleTimeout:       timeouts.Idle,
	}

	return &Server{
		db:       db,
		http:     httpServer,
		bus:      bus,
		recorder: audit.NewRecorder(audit.NewService(db), logger),
		logger:   logger,
	}, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.http.Handler }

// Start runs the audit recorder and the HTTP server, blocking until the
// server stops. A clean Shutdown returns nil.
func (s *Server) Start(ctx context.Context) error {
	s.startRecorder(ctx)

	s.logger.Info("starting HTTP server", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server: listen: %w", err)
	}
	return nil
}

func (s *Server) startRecorder(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	ctx, s.cancel = context.WithCancel(ctx)
	events := s.bus.Subscribe(tool.TopicCallCompleted)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.recorder.Run(ctx, events)
	}()
}

// Shutdown stops accepting requests, drains pending audit events and closes
// the database connection. The bus, recorder and database are released even
// when draining HTTP connections fails.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down server")

	var errs []error
	if err := s.http.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("server shutdown error: %w", err))
	}

	// Closing the bus ends the recorder loop once buffered events are written.
	s.bus.Close()
	s.mu.Lock()
	s.stopped = true
	cancel := s.cancel
	s.mu.Unlock()
	s.wg.Wait()
	if cancel != nil {
		cancel()
	}

	if err := s.db.Close(); err != nil {
		errs = append(errs, fmt.Errorf("database close error: %w", err))
	}

	if err := errors.Join(errs...); err != nil {
		return err
	}
	s.logger.Info("server shutdown complete")
	return nil
}
