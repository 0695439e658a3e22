package api

import (
	"net/http"

	"github.com/freshtrack/freshtrack/internal/api/handlers"
	"github.com/freshtrack/freshtrack/internal/api/middleware"
	"github.com/freshtrack/freshtrack/internal/service"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(services *service.Services) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS)
	r.Use(middleware.Metrics)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Handle("/metrics", promhttp.Handler())

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth)
	productHandler := handlers.NewProductHandler(services.Product)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public auth routes
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/forgot-password", authHandler.ForgotPassword)
			r.Post("/reset-password/{token}", authHandler.ResetPassword)

			// Protected auth routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Get("/me", authHandler.Me)
				r.Delete("/account", authHandler.DeleteAccount)
			})
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth))

			r.Route("/products", func(r chi.Router) {
				r.Post("/", productHandler.Create)
				r.Get("/", productHandler.List)
				r.Get("/{id}", productHandler.Get)
				r.Put("/{id}", productHandler.Update)
				r.Delete("/{id}", productHandler.Delete)
			})
		})
	})

	return r
}
