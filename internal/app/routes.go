package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mailconf/internal/handler"
	"github.com/mailconf/internal/middleware"
)

func (app *App) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	// Health checks
	r.Get("/", handler.Health())
	r.Get("/health", handler.Health())

	configHandler := handler.NewConfigHandler(app.logger, app.store, app.mailer)

	// Read endpoints (read key only; the admin key is not accepted here)
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireKey(app.config.APIKey))

		r.Get("/config/{code}", configHandler.Get)
	})

	// Admin endpoints
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireKey(app.config.AdminKey))

		r.Post("/config/{code}", configHandler.Create)
		r.Put("/config/{code}", configHandler.Update)
		r.Delete("/config/{code}", configHandler.Delete)
		r.Post("/config/{code}/test", configHandler.Check)
		r.Get("/configs", configHandler.List)
	})

	return r
}
