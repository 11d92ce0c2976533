// Package api implements the Waylight REST API server.
package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"github.com/waylightapp/waylight/internal/api/handlers"
	"github.com/waylightapp/waylight/internal/api/response"
	"github.com/waylightapp/waylight/internal/lightninglane"
	"github.com/waylightapp/waylight/internal/storage/repository"
)

// Config holds configuration for the API server.
type Config struct {
	Port           int
	AllowedOrigins []string
	RateLimit      float64 // requests per second
	RateBurst      int
}

// DefaultConfig returns the default API server configuration.
func DefaultConfig() *Config {
	return &Config{
		Port:           8090,
		AllowedOrigins: []string{"http://localhost:3000"},
		RateLimit:      50,
		RateBurst:      100,
	}
}

// Repositories bundles the data access layers the server serves from.
type Repositories struct {
	Attractions repository.AttractionRepository
	Trips       repository.TripRepository
	Party       repository.PartyRepository
	Ratings     repository.RatingRepository
}

// Server represents the REST API server.
type Server struct {
	router     *chi.Mux
	httpServer *http.Server
	port       int
	limiter    *rate.Limiter

	analysisHandler *handlers.AnalysisHandler
	tripHandler     *handlers.TripHandler
	partyHandler    *handlers.PartyHandler
	ratingHandler   *handlers.RatingHandler
	parkHandler     *handlers.ParkHandler
}

// NewServer creates a new API server. tables is consulted per request so
// config hot-reloads take effect without restarting.
func NewServer(cfg *Config, repos Repositories, tables func() lightninglane.Tables) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	s := &Server{
		router:          chi.NewRouter(),
		port:            cfg.Port,
		limiter:         rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst),
		analysisHandler: handlers.NewAnalysisHandler(repos.Attractions, repos.Trips, repos.Party, repos.Ratings, tables),
		tripHandler:     handlers.NewTripHandler(repos.Trips),
		partyHandler:    handlers.NewPartyHandler(repos.Party),
		ratingHandler:   handlers.NewRatingHandler(repos.Ratings, repos.Party, repos.Attractions),
		parkHandler:     handlers.NewParkHandler(repos.Attractions),
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(30 * time.Second))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	s.router.Use(s.rateLimit)

	s.setupRoutes()
	return s
}

// rateLimit rejects requests beyond the configured server-wide budget.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			response.TooManyRequests(w, errors.New("rate limit exceeded"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// healthCheck reports server liveness.
func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Start begins listening in the background. Call Shutdown to stop.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Printf("API server starting on port %d", s.port)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("API server error: %v", err)
		}
	}()

	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// Router exposes the chi mux, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}
