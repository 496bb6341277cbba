package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/terra-clan/academy-api/internal/academy"
	"github.com/terra-clan/academy-api/internal/config"
	"github.com/terra-clan/academy-api/internal/health"
	"github.com/terra-clan/academy-api/internal/realtime"
	"github.com/terra-clan/academy-api/internal/storage"
)

// Server represents the HTTP API server
type Server struct {
	config  *config.Config
	router  *chi.Mux
	repo    storage.Repository
	service *academy.Service
	hub     *realtime.Hub
	checks  *health.Registry
}

// NewServer creates a new API server
func NewServer(
	cfg *config.Config,
	repo storage.Repository,
	service *academy.Service,
	hub *realtime.Hub,
	checks *health.Registry,
) *Server {
	if checks == nil {
		checks = health.NewRegistry()
	}
	s := &Server{
		config:  cfg,
		repo:    repo,
		service: service,
		hub:     hub,
		checks:  checks,
	}
	s.setupRouter()
	return s
}

// Router returns the configured router
func (s *Server) Router() http.Handler {
	return s.router
}

// setupRouter configures all routes and middleware
func (s *Server) setupRouter() {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(recoverer)

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.config.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Operational endpoints
	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)
	r.Handle("/metrics", promhttp.Handler())

	// Long-lived, so kept outside the request timeout
	r.Get("/api/leaderboard/stream", s.handleLeaderboardStream)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))

		// Accounts
		r.Get("/users", s.handleListUsers)
		r.Post("/users", s.handleRegister)
		r.With(s.loginLimiter()).Post("/login", s.handleLogin)

		r.Route("/users/{userId}", func(r chi.Router) {
			r.Get("/", s.handleGetUser)
			r.Get("/progress", s.handleListUserProgress)
			r.Get("/progress/{pathId}", s.handleGetUserProgress)
			r.Get("/submissions", s.handleListUserSubmissions)
		})

		// Catalog
		r.Route("/learning-paths", func(r chi.Router) {
			r.Get("/", s.handleListLearningPaths)
			r.Post("/", s.handleCreateLearningPath)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetLearningPath)
				r.Put("/", s.handleUpdateLearningPath)
				r.Delete("/", s.handleDeleteLearningPath)
				r.Get("/modules", s.handleListPathModules)
			})
		})

		r.Route("/modules", func(r chi.Router) {
			r.Post("/", s.handleCreateModule)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetModule)
				r.Put("/", s.handleUpdateModule)
				r.Delete("/", s.handleDeleteModule)
			})
		})

		// Progress
		r.Post("/user-progress", s.handleUpsertProgress)

		// Challenges
		r.Route("/challenges", func(r chi.Router) {
			r.Get("/", s.handleListChallenges)
			r.Post("/", s.handleCreateChallenge)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetChallenge)
				r.Put("/", s.handleUpdateChallenge)
				r.Delete("/", s.handleDeleteChallenge)
				r.Get("/submissions", s.handleListChallengeSubmissions)
			})
		})

		r.Route("/challenge-submissions", func(r chi.Router) {
			r.Post("/", s.handleCreateSubmission)
			r.Get("/{id}", s.handleGetSubmission)
			r.Patch("/{id}", s.handleReviewSubmission)
		})

		// Leaderboard
		r.Route("/leaderboard", func(r chi.Router) {
			r.Get("/", s.handleLeaderboard)
			r.Get("/weekly", s.handleWeeklyLeaderboard)
			r.Post("/{userId}/points", s.handleAwardPoints)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	s.router = r
}

// loginLimiter throttles login attempts per client IP
func (s *Server) loginLimiter() func(http.Handler) http.Handler {
	login := s.config.Login
	if login.RateLimit <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(
		login.RateLimit,
		login.RateWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			respondError(w, http.StatusTooManyRequests, "Too many login attempts")
		}),
	)
}
