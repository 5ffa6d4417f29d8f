package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/me/rrsim/internal/config"
	"github.com/me/rrsim/internal/store"
	"github.com/me/rrsim/internal/ui"
)

// Server is the rrsim REST API server.
type Server struct {
	router    chi.Router
	logger    *slog.Logger
	config    config.ServerConfig
	startTime time.Time
	store     store.Store
	seed      func() uint64 // seeds random workloads that omit a seed
	maxSSE    time.Duration // upper bound on the SSE replay interval
}

// Option configures optional Server dependencies.
type Option func(*Server)

// WithSeedSource overrides how seeds are chosen for random workloads that
// do not specify one.
func WithSeedSource(fn func() uint64) Option {
	return func(s *Server) {
		s.seed = fn
	}
}

// WithMaxReplayInterval caps the per-unit delay a client may request when
// replaying a run over SSE.
func WithMaxReplayInterval(d time.Duration) Option {
	return func(s *Server) {
		s.maxSSE = d
	}
}

// New creates a new Server with all routes registered.
func New(cfg config.ServerConfig, st store.Store, logger *slog.Logger, opts ...Option) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		logger:    logger.With("component", "server"),
		config:    cfg,
		startTime: time.Now(),
		store:     st,
		seed:      func() uint64 { return uint64(time.Now().UnixNano()) },
		maxSSE:    2 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Handler returns the http.Handler for this server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	r := s.router

	// Global middleware
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(s.logger))

	r.Route("/api/v1", func(r chi.Router) {
		// Discovery
		r.Get("/", s.handleDiscovery)

		// Health
		r.Get("/health", s.handleHealth)

		// Simulations
		r.Route("/simulations", func(r chi.Router) {
			r.Get("/", s.handleListSimulations)
			r.Post("/", s.handleCreateSimulation)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetSimulation)
				r.Delete("/", s.handleDeleteSimulation)
				r.Get("/gantt", s.handleGetGantt)
			})
		})

		// Workload generation
		r.Post("/workloads/random", s.handleRandomWorkload)

		// SSE replay of a stored timeline
		r.Route("/sse", func(r chi.Router) {
			r.Get("/simulations/{id}", s.handleSSESimulation)
		})
	})

	// HTML views of stored runs
	ui.New(s.store, s.logger).RegisterRoutes(r)
}
