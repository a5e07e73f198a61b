package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
	"github.com/voltask/tasksphere/internal/api/handlers"
	"github.com/voltask/tasksphere/internal/api/middleware"
	"github.com/voltask/tasksphere/internal/auth"
	"github.com/voltask/tasksphere/internal/tasks"
	"gorm.io/gorm"
)

type Router struct {
	chi.Router
}

type RouterConfig struct {
	DB             *gorm.DB
	Redis          *redis.Client
	Logger         *slog.Logger
	JWTService     *auth.JWTService
	AuthService    *auth.Service
	AllowedOrigins []string // CORS allowed origins
	RateLimitReqs  int      // Rate limit requests per window
	RateLimitSecs  int      // Rate limit window in seconds
}

func NewRouter(cfg RouterConfig) *Router {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))

	// Rate limiting - applied globally to prevent abuse
	if cfg.RateLimitReqs > 0 {
		r.Use(middleware.RateLimit(cfg.RateLimitReqs, cfg.RateLimitSecs))
	}

	// CORS - restrict to configured origins, or allow localhost in development
	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000", "http://localhost:8080"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize services
	taskService := tasks.NewService(cfg.DB, cfg.Logger)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg.DB, cfg.Redis)
	authHandler := handlers.NewAuthHandler(cfg.AuthService)
	userHandler := handlers.NewUserHandler(cfg.AuthService)
	taskHandler := handlers.NewTaskHandler(taskService)

	// Health endpoints (no auth required)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public auth endpoints
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/verify-email", authHandler.VerifyEmail)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/verify-login", authHandler.VerifyLogin)
		r.Post("/auth/forgot-password", authHandler.ForgotPassword)
		r.Post("/auth/verify-reset-otp", authHandler.VerifyResetOTP)
		// Authenticated by the reset token itself, not a session.
		r.Post("/auth/reset-password", authHandler.ResetPassword)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWTService))

			r.Get("/auth/me", authHandler.Me)
			r.Put("/auth/change-password", authHandler.ChangePassword)

			// Users endpoints
			r.Route("/users", func(r chi.Router) {
				r.Get("/", userHandler.List)
				r.With(middleware.RequireCapability(auth.CapUserInvite)).
					Post("/invite", userHandler.Invite)
				r.With(middleware.RequireCapability(auth.CapUserDeactivate)).
					Patch("/{id}/deactivate", userHandler.Deactivate)
			})

			// Tasks endpoints
			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", taskHandler.List)
				r.Patch("/{id}", taskHandler.Update)
				r.With(middleware.RequireCapability(auth.CapTaskCreate)).
					Post("/", taskHandler.Create)
				r.With(middleware.RequireCapability(auth.CapTaskAssign)).
					Patch("/{id}/assign", taskHandler.Assign)
				r.With(middleware.RequireCapability(auth.CapTaskDelete)).
					Delete("/{id}", taskHandler.Delete)
			})
		})
	})

	return &Router{r}
}
