// Package server provides the HTTP API for homefax.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/hyperjump/homefax/internal/catalog"
	"github.com/hyperjump/homefax/internal/config"
	"github.com/hyperjump/homefax/internal/search"
	"github.com/hyperjump/homefax/pkg/utils"
	"go.uber.org/zap"
)

// Server is the HTTP server for the homefax API.
type Server struct {
	catalog *catalog.Catalog
	engine  *search.Engine
	config  *config.Config
	logger  *zap.Logger
	now     func() time.Time
	server  *http.Server
}

// NewServer creates a server with the given dependencies.
// cfg supplies the listen address, CORS origins, default weights and year floor.
func NewServer(
	cat *catalog.Catalog,
	engine *search.Engine,
	cfg *config.Config,
	logger *zap.Logger,
) *Server {
	return &Server{
		catalog: cat,
		engine:  engine,
		config:  cfg,
		logger:  utils.LoggerOrNop(logger),
		now:     time.Now,
	}
}

// Router builds the chi router with middleware and all routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.config.Server.CORSOrigins,
		AllowedMethods: []string{"GET", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"Content-Disposition", exportIDHeader},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/weights", s.handleWeights)
		r.Get("/export", s.handleExport)
		r.Get("/homes", s.handleListHomes)
		r.Route("/homes/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetHome)
			r.Put("/notes", s.handleUpdateNotes)
			r.Get("/report", s.handleReport)
			r.Get("/raw", s.handleRaw)
		})
	})
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("Starting server", zap.String("addr", addr), zap.Int("homes", s.catalog.Len()))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
