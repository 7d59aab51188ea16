// Package router sets up HTTP routes for the UI server.
package router

import (
	"github.com/go-chi/chi/v5"

	dashboardFeature "github.com/leapstack-labs/celldash/internal/ui/features/dashboard"
	"github.com/leapstack-labs/celldash/internal/ui/resources"
)

// SetupRoutes configures all routes for the UI server.
func SetupRoutes(router chi.Router, dashboard dashboardFeature.Config) error {
	router.Handle("/static/*", resources.Handler())

	return dashboardFeature.SetupRoutes(router, dashboard)
}
