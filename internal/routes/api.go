package routes

import (
	"net/http"

	"github.com/dukerupert/maremansa/internal/middleware"
	"github.com/dukerupert/maremansa/internal/router"
)

// RegisterAPIRoutes registers the read-only catalog API and the stateless
// estimate endpoint. These routes carry no session and skip CSRF.
func RegisterAPIRoutes(r *router.Router, deps APIDeps) {
	api := r.Group(
		router.CORS(deps.AllowedOrigins),
		middleware.Timeout(middleware.ShortTimeout),
	)

	api.Get("/api/products", deps.CatalogHandler.Products)
	api.Get("/api/products/{id}", deps.CatalogHandler.Product)
	api.Get("/api/categories", deps.CatalogHandler.Categories)
	api.Get("/api/textures", deps.CatalogHandler.Textures)

	var estimateMiddleware []router.Middleware
	if deps.EstimateLimiter != nil {
		estimateMiddleware = append(estimateMiddleware, deps.EstimateLimiter.Middleware)
	}
	api.Post("/api/quotes/estimate", deps.EstimateHandler.ServeHTTP, estimateMiddleware...)

	// Preflight; CORS answers before the handler runs.
	api.Handle(http.MethodOptions, "/api/{path...}", http.NotFoundHandler())
}

// RegisterSystemRoutes registers health and metrics endpoints
func RegisterSystemRoutes(r *router.Router, deps SystemDeps) {
	if deps.Health != nil {
		r.Get("/health", deps.Health)
	}
	// Metrics endpoint (no auth required, but should be protected in production via firewall)
	if deps.Metrics != nil {
		r.Handle(http.MethodGet, "/metrics", deps.Metrics)
	}
}
