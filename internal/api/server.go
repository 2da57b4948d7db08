// Package api provides the HTTP API server and handlers for the
// Shelfmark application.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/shelfmark/shelfmark-server/internal/http/response"
	"github.com/shelfmark/shelfmark-server/internal/ratelimit"
	"github.com/shelfmark/shelfmark-server/internal/service"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	router      *chi.Mux
	api         huma.API
	profiles    *service.ProfileService
	books       *service.BookService
	scan        *service.ScanService
	scanLimiter *ratelimit.KeyedLimiter
	logger      *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(profiles *service.ProfileService, books *service.BookService, scan *service.ScanService, logger *slog.Logger) *Server {
	s := &Server{
		router:      chi.NewRouter(),
		profiles:    profiles,
		books:       books,
		scan:        scan,
		scanLimiter: ratelimit.New(5, 10),
		logger:      logger,
	}

	// Middleware must be attached before humachi registers the docs
	// routes on the router.
	s.setupMiddleware()

	humaConfig := huma.DefaultConfig("Shelfmark API", "1.0.0")
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler()

	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close releases server-held resources.
func (s *Server) Close() {
	s.scanLimiter.Stop()
}

// setupMiddleware configures the middleware stack. The API is consumed
// by a browser frontend served from a different origin during
// development, hence the permissive CORS policy.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	s.router.Use(s.scanRateLimit(s.scanLimiter))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Health check stays outside the API framework so probes get a
	// flat payload without the envelope.
	s.router.Get("/health", s.handleHealthCheck)

	s.registerProfileRoutes()
	s.registerBookRoutes()
	s.registerScanRoutes()
}

// handleHealthCheck returns server health status.
func (s *Server) handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]string{
		"status": "healthy",
	}, s.logger)
}
