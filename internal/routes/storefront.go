package routes

import (
	"github.com/dukerupert/maremansa/internal/router"
)

// RegisterStorefrontRoutes registers all customer-facing pages
func RegisterStorefrontRoutes(r *router.Router, deps StorefrontDeps) {
	// Catalog
	r.Get("/{$}", deps.CatalogHandler.ServeHTTP)
	r.Get("/products", deps.CatalogHandler.ServeHTTP)
	r.Get("/products/{id}", deps.ProductHandler.ServeHTTP)
	r.Get("/gallery", deps.GalleryHandler.ServeHTTP)

	// Quote
	r.Get("/products/{id}/quote", deps.QuoteHandler.View)

	// Bodies are capped by middleware.StorefrontBodyLimit in the global chain,
	// ahead of CSRF.
	var quoteMiddleware []router.Middleware
	if deps.QuoteLimiter != nil {
		quoteMiddleware = append(quoteMiddleware, deps.QuoteLimiter.Middleware)
	}
	quotes := r.Group(quoteMiddleware...)
	quotes.Post("/products/{id}/quote/walls", deps.QuoteHandler.AddWall)
	quotes.Post("/products/{id}/quote/walls/{wallID}", deps.QuoteHandler.UpdateWall)
	quotes.Post("/products/{id}/quote/walls/{wallID}/remove", deps.QuoteHandler.RemoveWall)
	quotes.Post("/products/{id}/quote/texture", deps.QuoteHandler.SelectTexture)
	quotes.Post("/products/{id}/quote/submit", deps.QuoteHandler.Submit)
	quotes.Post("/products/{id}/quote/close", deps.QuoteHandler.Close)
}
