package storefront

import (
	"net/http"
	"net/url"

	"github.com/dukerupert/maremansa/internal/catalog"
	"github.com/dukerupert/maremansa/internal/domain"
	"github.com/dukerupert/maremansa/internal/handler"
	"github.com/dukerupert/maremansa/internal/telemetry"
)

// CatalogHandler renders the product grid with its filter sidebar.
type CatalogHandler struct {
	catalog    CatalogLoader
	renderer   *handler.Renderer
	metrics    *telemetry.BusinessMetrics
	collection string
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(loader CatalogLoader, renderer *handler.Renderer, metrics *telemetry.BusinessMetrics, collection string) *CatalogHandler {
	return &CatalogHandler{
		catalog:    loader,
		renderer:   renderer,
		metrics:    metrics,
		collection: collection,
	}
}

// CatalogPageData contains data for the grid template
type CatalogPageData struct {
	PageData
	Heading    string
	Query      string
	Categories []FilterOption
	Textures   []TextureFilter
	Products   []ProductCard
	Filtered   bool
	ClearURL   string
}

// FilterOption is one category entry in the sidebar.
type FilterOption struct {
	Name     string
	Selected bool
	URL      string
}

// TextureFilter is one texture swatch in the sidebar. URL toggles it.
type TextureFilter struct {
	domain.Texture
	Selected bool
	URL      string
}

// ProductCard is a grid entry.
type ProductCard struct {
	domain.Product
	PriceLabel string
	URL        string
}

// ServeHTTP handles GET / and GET /products
//
// Query parameters: q, category, texture (repeatable), toggle (a texture to
// flip) and clear (reset every filter).
func (h *CatalogHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	snapshot := h.catalog.Load(ctx)

	criteria := CriteriaFromQuery(r.URL.Query())
	h.recordSearch(criteria)

	products := catalog.FilterProducts(snapshot.Products, criteria)
	cards := make([]ProductCard, 0, len(products))
	for _, p := range products {
		cards = append(cards, ProductCard{
			Product:    p,
			PriceLabel: PriceLabel(p),
			URL:        productURL(p.ID),
		})
	}

	heading := "Coleção " + h.collection
	if criteria.Category != "" && criteria.Category != catalog.AllCategories {
		heading = criteria.Category
	}

	data := CatalogPageData{
		PageData:   BaseTemplateData(r, h.collection, heading),
		Heading:    heading,
		Query:      criteria.Query,
		Categories: categoryOptions(snapshot.Categories, criteria),
		Textures:   textureFilters(snapshot.Textures, criteria),
		Products:   cards,
		Filtered:   !criteria.IsDefault(),
		ClearURL:   "/products",
	}

	h.renderer.RenderHTTP(w, "storefront/catalog", data)
}

func (h *CatalogHandler) recordSearch(c catalog.FilterCriteria) {
	if c.Query != "" {
		h.metrics.RecordCatalogSearch("query")
	}
	if c.Category != catalog.AllCategories {
		h.metrics.RecordCatalogSearch("category")
	}
	if len(c.Textures) > 0 {
		h.metrics.RecordCatalogSearch("texture")
	}
}

// CriteriaFromQuery replays the query string through the filter reducer.
func CriteriaFromQuery(q url.Values) catalog.FilterCriteria {
	c := catalog.DefaultCriteria()
	if _, ok := q["clear"]; ok {
		return c
	}

	c = catalog.Reduce(c, catalog.Action{Type: catalog.ActionSetQuery, Value: q.Get("q")})
	c = catalog.Reduce(c, catalog.Action{Type: catalog.ActionSetCategory, Value: q.Get("category")})
	for _, t := range q["texture"] {
		if !c.HasTexture(t) {
			c = catalog.Reduce(c, catalog.Action{Type: catalog.ActionToggleTexture, Value: t})
		}
	}
	if toggle := q.Get("toggle"); toggle != "" {
		c = catalog.Reduce(c, catalog.Action{Type: catalog.ActionToggleTexture, Value: toggle})
	}
	return c
}

// CriteriaURL is the canonical grid URL for the criteria.
func CriteriaURL(c catalog.FilterCriteria) string {
	q := url.Values{}
	if c.Query != "" {
		q.Set("q", c.Query)
	}
	if c.Category != "" && c.Category != catalog.AllCategories {
		q.Set("category", c.Category)
	}
	for _, t := range c.Textures {
		q.Add("texture", t)
	}
	if len(q) == 0 {
		return "/products"
	}
	return "/products?" + q.Encode()
}

func categoryOptions(categories []domain.Category, c catalog.FilterCriteria) []FilterOption {
	names := catalog.CategoryOptions(categories)
	options := make([]FilterOption, 0, len(names))
	for _, name := range names {
		next := catalog.Reduce(c, catalog.Action{Type: catalog.ActionSetCategory, Value: name})
		options = append(options, FilterOption{
			Name:     name,
			Selected: name == c.Category,
			URL:      CriteriaURL(next),
		})
	}
	return options
}

func textureFilters(textures []domain.Texture, c catalog.FilterCriteria) []TextureFilter {
	filters := make([]TextureFilter, 0, len(textures))
	for _, t := range textures {
		next := catalog.Reduce(c, catalog.Action{Type: catalog.ActionToggleTexture, Value: t.Name})
		filters = append(filters, TextureFilter{
			Texture:  t,
			Selected: c.HasTexture(t.Name),
			URL:      CriteriaURL(next),
		})
	}
	return filters
}
