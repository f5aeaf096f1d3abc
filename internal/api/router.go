package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/selomitta/agenda-be/internal/api/handlers"
	apimiddleware "github.com/selomitta/agenda-be/internal/api/middleware"
	"github.com/selomitta/agenda-be/internal/auth"
	"github.com/selomitta/agenda-be/internal/config"
	"github.com/selomitta/agenda-be/internal/services"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(cfg *config.Config, issuer *auth.Issuer, userService services.UserServiceProvider, taskService services.TaskServiceProvider, sessionService services.SessionServiceProvider) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(apimiddleware.Metrics)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Wrong method on a known route gets the JSON taxonomy, not plain text.
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusMethodNotAllowed)
		w.Write([]byte(`{"message":"Method Not Allowed"}`))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, sessionService, issuer, cfg.IsProduction())
	taskHandler := handlers.NewTaskHandler(taskService)

	r.Get("/metrics", apimiddleware.MetricsHandler().ServeHTTP)

	r.Post("/signup", authHandler.Signup)
	r.Post("/login", authHandler.Login)
	r.Post("/logout", authHandler.Logout)

	// Everything below requires a live, non-revoked session token.
	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(issuer, sessionService))

		r.Get("/me", authHandler.Me)
		r.Get("/progress", taskHandler.Progress)

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", taskHandler.List)
			r.Post("/", taskHandler.Create)
			r.Patch("/", taskHandler.UpdateItem)
			r.Delete("/", taskHandler.Delete)
		})
	})

	return r
}
