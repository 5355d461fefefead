// Package server exposes the layout pipeline over HTTP.
//
// Handlers are thin wiring: they decode a request, hand it to a
// [pipeline.Runner] and encode the result. Routes:
//
//	GET  /healthz        liveness and build version
//	GET  /v1/algorithms  names accepted by the "algorithm" option
//	POST /v1/layout      lay out a graph document
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/arbor/internal/config"
	"github.com/matzehuels/arbor/pkg/pipeline"
)

// Server serves layout requests.
type Server struct {
	runner   *pipeline.Runner
	cfg      config.ServerConfig
	defaults pipeline.Options
	logger   *log.Logger
	router   chi.Router
}

// New creates a server. Request options are applied on top of defaults.
func New(runner *pipeline.Runner, cfg config.ServerConfig, defaults pipeline.Options, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	defaults.Logger = nil
	defaults.Refresh = false

	s := &Server{
		runner:   runner,
		cfg:      cfg,
		defaults: defaults,
		logger:   logger,
		router:   chi.NewRouter(),
	}

	s.router.Use(requestID)
	s.router.Use(s.observe)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/healthz", s.healthHandler)
	s.router.Route("/v1", func(r chi.Router) {
		r.Get("/algorithms", s.algorithmsHandler)
		r.Post("/layout", s.layoutHandler)
	})
	return s
}

// ServeHTTP makes the server an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run listens on the configured address until ctx is done, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
