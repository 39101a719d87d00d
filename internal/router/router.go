package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"smartpulse-backend/internal/handlers"
	"smartpulse-backend/internal/middleware"
	"smartpulse-backend/internal/models"
)

func New(
	jwtAuth *middleware.JWTAuth,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	employeeHandler *handlers.EmployeeHandler,
	projectHandler *handlers.ProjectHandler,
	sessionHandler *handlers.SessionHandler,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Auth rate limiter (10 req/min per IP); the agent ingest limit is
	// looser since trackers upload in bursts after reconnecting.
	authLimiter := middleware.NewRateLimiter(10, time.Minute)
	ingestLimiter := middleware.NewRateLimiter(120, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// Auth routes (public, rate limited)
		r.Route("/auth", func(r chi.Router) {
			r.Use(authLimiter.Middleware)
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)

			r.Group(func(r chi.Router) {
				r.Use(jwtAuth.Middleware)
				r.Post("/logout", authHandler.Logout)
				r.Get("/me", authHandler.Me)
			})
		})

		// Session ingest (desktop agent, any authenticated user)
		r.Route("/sessions", func(r chi.Router) {
			r.Use(ingestLimiter.Middleware)
			r.Use(jwtAuth.Middleware)
			r.Post("/", sessionHandler.Ingest)
		})

		// Admin dashboard routes
		r.Route("/user", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Use(middleware.RequireRole(models.RoleAdmin))
			r.Get("/stats", userHandler.Stats)
			r.Get("/insights", userHandler.Insights)
			r.Get("/reports", userHandler.Reports)
			r.Get("/alerts", userHandler.Alerts)
			r.Get("/settings", userHandler.GetSettings)
			r.Put("/settings", userHandler.UpdateSettings)
		})

		// Employee dashboard routes
		r.Route("/employees", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/stats", employeeHandler.Stats)
			r.Get("/stress", employeeHandler.Stress)
			r.Get("/work-summary", employeeHandler.WorkSummary)
			r.Get("/settings", employeeHandler.GetSettings)
			r.Put("/settings", employeeHandler.UpdateSettings)
			r.Get("/projects", employeeHandler.Projects)
			r.Patch("/projects/{id}/submit", employeeHandler.SubmitProject)
		})

		// Project management (admin only)
		r.Route("/projects", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Use(middleware.RequireRole(models.RoleAdmin))
			r.Get("/", projectHandler.List)
			r.Post("/", projectHandler.Assign)
			r.Patch("/{id}/complete", projectHandler.Complete)
			r.Patch("/{id}/reject", projectHandler.Reject)
			r.Put("/{id}/due-date", projectHandler.UpdateDueDate)
			r.Delete("/{id}", projectHandler.Delete)
		})
	})

	return r
}
