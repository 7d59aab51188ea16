package dashboard

import "github.com/go-chi/chi/v5"

// SetupRoutes configures routes for the dashboard feature.
func SetupRoutes(router chi.Router, cfg Config) error {
	handlers := NewHandlers(cfg)

	router.Get("/", handlers.Page)
	router.Post("/filters", handlers.UpdateFilters)
	router.Get("/updates", handlers.Updates)
	router.Get("/api/dashboard", handlers.API)

	return nil
}
