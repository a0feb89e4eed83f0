package routes

import (
	"net/http"

	"github.com/dukerupert/maremansa/internal/handler/api"
	"github.com/dukerupert/maremansa/internal/handler/storefront"
	"github.com/dukerupert/maremansa/internal/middleware"
)

// StorefrontDeps contains dependencies for storefront routes
type StorefrontDeps struct {
	// Catalog grid, also served on the home page
	CatalogHandler *storefront.CatalogHandler

	// Product detail
	ProductHandler *storefront.ProductDetailHandler

	// Quote calculator (view, walls, texture, submit, close)
	QuoteHandler *storefront.QuoteHandler

	GalleryHandler *storefront.GalleryHandler

	// QuoteLimiter throttles quote mutations per client IP. Optional.
	QuoteLimiter *middleware.RateLimiter
}

// APIDeps contains dependencies for the JSON API
type APIDeps struct {
	CatalogHandler  *api.CatalogHandler
	EstimateHandler *api.EstimateHandler

	// AllowedOrigins lists origins permitted by CORS. Empty disables CORS headers.
	AllowedOrigins []string

	// EstimateLimiter throttles estimate requests per client IP. Optional.
	EstimateLimiter *middleware.RateLimiter
}

// SystemDeps contains dependencies for operational endpoints
type SystemDeps struct {
	Health  http.HandlerFunc
	Metrics http.Handler
}
