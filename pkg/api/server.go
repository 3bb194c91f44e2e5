// Package api exposes the layout engine over HTTP.
//
// # Overview
//
// Layout computation is asynchronous: POST /api/v1/layouts accepts a graph
// and layout options, stores a job record, and returns 202 with the job ID.
// A background worker runs the pipeline and moves the record from pending
// through running to done or failed. Clients poll GET /api/v1/layouts/{id}
// until the record is done, then fetch the rendered image from the svg
// route.
//
// # Routes
//
//	POST   /api/v1/layouts          submit a graph for layout
//	GET    /api/v1/layouts          list recent layout jobs
//	GET    /api/v1/layouts/{id}     fetch one job with its layout
//	DELETE /api/v1/layouts/{id}     delete a job
//	GET    /api/v1/layouts/{id}/svg render a finished layout as SVG
//	GET    /healthz                 liveness probe
//	GET    /metrics                 Prometheus metrics
//
// # Usage
//
//	srv := api.NewServer(api.Config{Addr: ":8080"})
//	go srv.Start()
//	defer srv.Shutdown(context.Background())
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/sgdraw/pkg/cache"
	"github.com/matzehuels/sgdraw/pkg/metrics"
	"github.com/matzehuels/sgdraw/pkg/pipeline"
	"github.com/matzehuels/sgdraw/pkg/store"
)

// Defaults for the server configuration.
const (
	DefaultAddr       = ":8080"
	DefaultJobTimeout = 5 * time.Minute
	DefaultListLimit  = 50
)

// Config carries the server's dependencies. Zero-value fields fall back to
// in-memory defaults, so api.NewServer(api.Config{}) yields a working
// server with no external services.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// Store persists layout job records. Defaults to the in-memory store.
	Store store.LayoutStore

	// Cache and Keyer back the pipeline and artifact caches. Default to
	// a null cache and the standard keyer.
	Cache cache.Cache
	Keyer cache.Keyer

	// Metrics receives request and pipeline counters. Defaults to the
	// process-wide registry.
	Metrics *metrics.Registry

	// Logger receives request and job logs. Defaults to the standard
	// logger.
	Logger *log.Logger

	// JobTimeout bounds a single layout computation.
	JobTimeout time.Duration
}

// Server is the HTTP front end. Create it with [NewServer].
type Server struct {
	store      store.LayoutStore
	cache      cache.Cache
	keyer      cache.Keyer
	metrics    *metrics.Registry
	logger     *log.Logger
	runner     *pipeline.Runner
	jobTimeout time.Duration

	router     chi.Router
	httpServer *http.Server
}

// NewServer wires the routes and middleware. The returned server is ready
// to Start, or to serve through [Server.Handler] in tests.
func NewServer(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.Store == nil {
		cfg.Store = store.NewMemory()
	}
	if cfg.Cache == nil {
		cfg.Cache = cache.NewNullCache()
	}
	if cfg.Keyer == nil {
		cfg.Keyer = cache.NewDefaultKeyer()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.DefaultRegistry()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.JobTimeout <= 0 {
		cfg.JobTimeout = DefaultJobTimeout
	}

	s := &Server{
		store:      cfg.Store,
		cache:      cfg.Cache,
		keyer:      cfg.Keyer,
		metrics:    cfg.Metrics,
		logger:     cfg.Logger,
		runner:     pipeline.NewRunner(cfg.Cache, cfg.Keyer, cfg.Logger),
		jobTimeout: cfg.JobTimeout,
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", cfg.Metrics.Handler())
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/layouts", s.handleCreateLayout)
		r.Get("/layouts", s.handleListLayouts)
		r.Get("/layouts/{id}", s.handleGetLayout)
		r.Delete("/layouts/{id}", s.handleDeleteLayout)
		r.Get("/layouts/{id}/svg", s.handleLayoutSVG)
	})
	s.router = r

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the route tree for serving through a test server.
func (s *Server) Handler() http.Handler { return s.router }

// Start blocks serving HTTP until Shutdown is called or the listener
// fails.
func (s *Server) Start() error {
	s.logger.Info("http server listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("http server shutting down")
	return s.httpServer.Shutdown(ctx)
}
