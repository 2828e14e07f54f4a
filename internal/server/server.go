// Package server provides the HTTP API for nlsearch.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hyperjump/nlsearch/internal/config"
	"github.com/hyperjump/nlsearch/internal/dataset"
	"github.com/hyperjump/nlsearch/internal/search"
	"go.uber.org/zap"
)

// Server is the HTTP server for the nlsearch API.
type Server struct {
	engine   *search.Engine
	datasets *dataset.Store
	config   *config.ServerConfig
	logger   *zap.Logger
	server   *http.Server

	version    string
	stemmer    string
	similarity string
	started    time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithVersion sets the version reported by /api/v1/status.
func WithVersion(v string) Option {
	return func(s *Server) { s.version = v }
}

// WithToolkitNames sets the stemmer and similarity names reported by /api/v1/status.
func WithToolkitNames(stemmer, similarity string) Option {
	return func(s *Server) {
		s.stemmer = stemmer
		s.similarity = similarity
	}
}

// NewServer creates a server with the given dependencies. A nil store serves
// no datasets.
func NewServer(
	engine *search.Engine,
	datasets *dataset.Store,
	cfg *config.ServerConfig,
	logger *zap.Logger,
	opts ...Option,
) *Server {
	if datasets == nil {
		datasets = dataset.NewStore(logger)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		engine:   engine,
		datasets: datasets,
		config:   cfg,
		logger:   logger,
		version:  "dev",
		started:  time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Routes returns the API handler.
func (s *Server) Routes() http.Handler {
	timeout := s.config.RequestTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(timeout))
	r.Use(middleware.Compress(5))
	r.Use(limitBody(s.config.MaxBodyBytes))

	r.Post("/api/v1/search", s.handleSearch)
	r.Get("/api/v1/datasets", s.handleDatasetsList)
	r.Get("/api/v1/datasets/{name}", s.handleDatasetGet)
	r.Post("/api/v1/datasets/{name}/search", s.handleDatasetSearch)
	r.Get("/api/v1/status", s.handleStatus)
	r.Get("/health", s.handleHealth)
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := s.config.Addr()
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("Starting server", zap.String("addr", addr), zap.Int("datasets", s.datasets.Len()))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// limitBody caps request bodies at n bytes. n <= 0 disables the cap.
func limitBody(n int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if n <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, n)
			next.ServeHTTP(w, r)
		})
	}
}
