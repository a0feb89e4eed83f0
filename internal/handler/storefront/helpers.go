package storefront

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/dukerupert/maremansa/internal/domain"
	"github.com/dukerupert/maremansa/internal/handler"
	"github.com/dukerupert/maremansa/internal/middleware"
)

// CatalogLoader returns the current catalog snapshot. It never fails: an
// unavailable content source yields the built-in collection.
type CatalogLoader interface {
	Load(ctx context.Context) domain.Catalog
}

// PageData is embedded by every page's template data.
type PageData struct {
	Title      string
	Collection string
	Year       int
	CSRFToken  string
}

// BaseTemplateData returns common data for all templates
func BaseTemplateData(r *http.Request, collection, title string) PageData {
	return PageData{
		Title:      title,
		Collection: collection,
		Year:       time.Now().Year(),
		CSRFToken:  middleware.GetCSRFToken(r.Context()),
	}
}

// PriceLabel is the grid and detail price line. Products without a price
// show the base roll price.
func PriceLabel(p domain.Product) string {
	price := p.Price
	if !price.Valid {
		price.Decimal = domain.DefaultPrice
		price.Valid = true
	}
	return "Preço à partir de " + handler.FormatBRL(price)
}

func productURL(id string) string {
	return "/products/" + url.PathEscape(id)
}

func quoteURL(id string) string {
	return productURL(id) + "/quote"
}
