// Package server exposes the search routine over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/jstrzelecki/filesearch/internal/audit"
	"github.com/jstrzelecki/filesearch/internal/config"
	"github.com/jstrzelecki/filesearch/internal/search"
)

// Version is reported by the root endpoint.
const Version = "1.0.0"

// Server holds the configuration and collaborators of the HTTP surface.
// It is constructed once at startup; handlers share no mutable state.
type Server struct {
	cfg    *config.Config
	log    *slog.Logger
	trail  *audit.Trail
	decode search.DecodePolicy
	mux    *http.ServeMux
}

// New builds a Server. trail may be nil when auditing is disabled.
func New(cfg *config.Config, logger *slog.Logger, trail *audit.Trail) (*Server, error) {
	decode, err := search.ParseDecodePolicy(cfg.DecodePolicy)
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:    cfg,
		log:    logger,
		trail:  trail,
		decode: decode,
		mux:    http.NewServeMux(),
	}

	s.mux.HandleFunc("POST /search", s.handleSearch)
	s.mux.HandleFunc("POST /search-uploaded", s.handleSearchUploaded)
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /{$}", s.handleRoot)

	return s, nil
}

// Handler returns the full middleware-wrapped handler chain.
func (s *Server) Handler() http.Handler {
	return s.withRequestLog(s.mux)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr(),
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.log.Info("listening", "addr", srv.Addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.log.Info("server stopped")
	return nil
}

// searchOptions builds per-scan options from the server configuration.
func (s *Server) searchOptions() search.Options {
	return search.Options{
		Decode:      s.decode,
		MaxFileSize: s.cfg.MaxFileSize,
		SkipBinary:  s.cfg.SkipBinary,
		Logger:      s.log,
	}
}

// logOp appends to the audit trail; trouble writing the trail is logged and
// otherwise ignored so auditing can never fail a request.
func (s *Server) logOp(op, argument string, ok bool, detail string, dur time.Duration) {
	if err := s.trail.Log(op, argument, ok, detail, dur); err != nil {
		s.log.Warn("audit write failed", "op", op, "error", err)
	}
}
