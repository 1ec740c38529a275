package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"mentorconnect-backend/internal/handlers"
	"mentorconnect-backend/internal/middleware"
	"mentorconnect-backend/internal/models"
	"mentorconnect-backend/internal/websocket"
)

func New(
	jwtAuth *middleware.JWTAuth,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	mentorHandler *handlers.MentorHandler,
	sessionHandler *handlers.SessionHandler,
	feedbackHandler *handlers.FeedbackHandler,
	notificationHandler *handlers.NotificationHandler,
	dashboardHandler *handlers.DashboardHandler,
	wsHub *websocket.Hub,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Auth rate limiter (10 req/min per IP)
	authLimiter := middleware.NewRateLimiter(10, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// ──── Auth Routes (public) ────
		r.Route("/auth", func(r chi.Router) {
			r.Use(authLimiter.Middleware)
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)

			// Logout requires auth
			r.Group(func(r chi.Router) {
				r.Use(jwtAuth.Middleware)
				r.Post("/logout", authHandler.Logout)
			})
		})

		// ──── User & Profile Routes ────
		r.Route("/users", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/me", userHandler.GetMe)
			r.Put("/me", userHandler.UpdateMe)
		})

		// ──── Mentor Directory ────
		r.Route("/mentors", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/", mentorHandler.List)
			r.Get("/{id}", mentorHandler.Get)
		})

		// ──── Mentee Routes ────
		r.Route("/mentees", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.With(middleware.RequireRole(models.RoleMentor)).Get("/", userHandler.ListMentees)
			r.Get("/{id}/skills", userHandler.MenteeSkills)
		})

		// ──── Session Routes ────
		r.Route("/sessions", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(models.RoleMentor))
				r.Post("/", sessionHandler.Create)
				r.Delete("/{id}", sessionHandler.Delete)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(models.RoleMentee))
				r.Post("/{id}/register", sessionHandler.Register)
				r.Get("/rejected", sessionHandler.Rejected)
			})
		})

		// ──── Open Programs ────
		r.Route("/programs", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/", sessionHandler.Programs)
		})

		// ──── Session Requests ────
		r.Route("/session-requests", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.With(middleware.RequireRole(models.RoleMentee)).Post("/", sessionHandler.CreateRequest)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(models.RoleMentor))
				r.Get("/", sessionHandler.PendingRequests)
				r.Post("/{id}/respond", sessionHandler.Respond)
			})
		})

		// ──── Feedback ────
		r.Route("/feedback", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Use(middleware.RequireRole(models.RoleMentee))
			r.Post("/", feedbackHandler.Submit)
		})

		// ──── Notifications ────
		r.Route("/notifications", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/", notificationHandler.List)
			r.Get("/count", notificationHandler.Count)
			r.Put("/{id}/read", notificationHandler.MarkRead)
			r.Put("/{id}/dismiss", notificationHandler.Dismiss)
		})

		// ──── Dashboards ────
		r.Route("/dashboard", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.With(middleware.RequireRole(models.RoleMentee)).Get("/mentee", dashboardHandler.Mentee)
			r.With(middleware.RequireRole(models.RoleMentor)).Get("/mentor", dashboardHandler.Mentor)
		})

		// ──── WebSocket ────
		r.Get("/ws", wsHub.HandleWebSocket)
	})

	return r
}
