// Package api provides the HTTP API server and handlers for the ReadNext application.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/readnextapp/readnext-server/internal/service"
	"github.com/readnextapp/readnext-server/internal/store"
)

// Services bundles the business services the handlers depend on.
type Services struct {
	Auth           *service.AuthService
	Book           *service.BookService
	Recommendation *service.RecommendationService
	Cover          *service.CoverService
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store    *store.Store
	services *Services
	router   *chi.Mux
	api      huma.API
	logger   *slog.Logger

	apiRateLimiter  *RateLimiter
	authRateLimiter *RateLimiter
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(st *store.Store, services *Services, logger *slog.Logger) *Server {
	s := &Server{
		store:    st,
		services: services,
		router:   chi.NewRouter(),
		logger:   logger,
		// A generous per-IP limit for the whole API, plus a tighter
		// one shared by login and signup to slow credential stuffing.
		apiRateLimiter:  NewRateLimiter(300, time.Minute, 100),
		authRateLimiter: NewRateLimiter(20, time.Minute, 10),
	}

	s.setupMiddleware()

	humaConfig := huma.DefaultConfig("ReadNext API", "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
	}
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler()

	s.registerHealthRoutes()
	s.registerAuthRoutes()
	s.registerUserRoutes()
	s.registerBookRoutes()
	s.registerRecommendationRoutes()
	s.registerCoverRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close releases server-held resources.
func (s *Server) Close() {
	s.apiRateLimiter.Stop()
	s.authRateLimiter.Stop()
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(RateLimitMiddleware(s.apiRateLimiter, s.logger))

	// The web client runs on its own origin during development.
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	s.router.Use(authMiddleware(s.services.Auth))
}
