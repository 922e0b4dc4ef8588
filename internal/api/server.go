// Package api exposes the HTTP surface of the server: typed huma
// operations mounted on a chi router, with a uniform response envelope.
package api

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/foodnjam/foodnjam-server/internal/auth"
	"github.com/foodnjam/foodnjam-server/internal/logger"
	"github.com/foodnjam/foodnjam-server/internal/service"
	"github.com/foodnjam/foodnjam-server/internal/store"
)

// Services groups all business logic services used by the API server.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	Auth      *service.AuthService
	Sessions  *service.SessionService
	Spotify   *service.SpotifyService
	Catalog   *service.CatalogService
	Pairing   *service.PairingService
	Favorites *service.FavoritesService
}

// Server is the HTTP API server.
type Server struct {
	store           store.Store
	services        *Services
	tokens          *auth.TokenService
	router          *chi.Mux
	api             huma.API
	log             *logger.Logger
	authRateLimiter *RateLimiter
}

// NewServer creates the API server with all routes registered.
func NewServer(st store.Store, services *Services, tokens *auth.TokenService, corsOrigins []string, log *logger.Logger) *Server {
	router := chi.NewRouter()

	s := &Server{
		store:           st,
		services:        services,
		tokens:          tokens,
		router:          router,
		log:             log,
		authRateLimiter: NewRateLimiter(20, time.Minute, 10),
	}

	s.setupMiddleware(corsOrigins)

	humaConfig := huma.DefaultConfig("FoodnJam API", "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
	}
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

	s.api = humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s.registerHealthRoutes()
	s.registerAuthRoutes()
	s.registerSpotifyRoutes()
	s.registerMealRoutes()
	s.registerPairingRoutes()
	s.registerFavoritesRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware(corsOrigins []string) {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Credential endpoints get per-IP throttling. Everything else is
	// protected by token auth and the upstream APIs' own limits.
	s.router.Use(RateLimitMiddleware(s.authRateLimiter, "/api/v1/auth/", s.log))
}

// Close releases resources owned by the server.
func (s *Server) Close() {
	s.authRateLimiter.Stop()
}
