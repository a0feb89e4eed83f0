package api

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/dukerupert/maremansa/internal/domain"
	"github.com/dukerupert/maremansa/internal/handler"
)

// CatalogLoader returns the current catalog snapshot.
type CatalogLoader interface {
	Load(ctx context.Context) domain.Catalog
}

// CatalogHandler serves the read-only catalog as JSON.
type CatalogHandler struct {
	catalog CatalogLoader
}

// NewCatalogHandler creates a new catalog API handler
func NewCatalogHandler(loader CatalogLoader) *CatalogHandler {
	return &CatalogHandler{catalog: loader}
}

// Product is the JSON form of domain.Product.
type Product struct {
	ID               string              `json:"id"`
	Number           string              `json:"number"`
	Name             string              `json:"name"`
	Categories       []string            `json:"categories"`
	Textures         []string            `json:"textures"`
	Images           ProductImages       `json:"images"`
	Description      string              `json:"description"`
	Material         string              `json:"material"`
	RollWidth        string              `json:"rollWidth"`
	AvailableHeights string              `json:"availableHeights"`
	Price            decimal.NullDecimal `json:"price"`
}

type ProductImages struct {
	Room   string `json:"room"`
	Sheet  string `json:"sheet"`
	Detail string `json:"detail"`
}

type Category struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
}

type Texture struct {
	Name        string `json:"name"`
	Image       string `json:"image"`
	Description string `json:"description,omitempty"`
}

// ProductsResponse is returned by GET /api/products. Fallback reports that
// the built-in collection is being served.
type ProductsResponse struct {
	Products []Product `json:"products"`
	Fallback bool      `json:"fallback"`
}

type CategoriesResponse struct {
	Categories []Category `json:"categories"`
}

type TexturesResponse struct {
	Textures []Texture `json:"textures"`
}

// Products handles GET /api/products
func (h *CatalogHandler) Products(w http.ResponseWriter, r *http.Request) {
	snapshot := h.catalog.Load(r.Context())

	resp := ProductsResponse{
		Products: make([]Product, 0, len(snapshot.Products)),
		Fallback: snapshot.Fallback,
	}
	for _, p := range snapshot.Products {
		resp.Products = append(resp.Products, toProduct(p))
	}

	handler.WriteJSON(w, http.StatusOK, resp)
}

// Product handles GET /api/products/{id}
func (h *CatalogHandler) Product(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	p, ok := h.catalog.Load(r.Context()).FindProduct(id)
	if !ok {
		handler.ErrorResponse(w, r, domain.NotFound("api.product", "Produto", id))
		return
	}
	handler.WriteJSON(w, http.StatusOK, toProduct(p))
}

// Categories handles GET /api/categories
func (h *CatalogHandler) Categories(w http.ResponseWriter, r *http.Request) {
	snapshot := h.catalog.Load(r.Context())

	resp := CategoriesResponse{Categories: make([]Category, 0, len(snapshot.Categories))}
	for _, c := range snapshot.Categories {
		resp.Categories = append(resp.Categories, Category{Name: c.Name, Slug: c.Slug, Description: c.Description})
	}

	handler.WriteJSON(w, http.StatusOK, resp)
}

// Textures handles GET /api/textures
func (h *CatalogHandler) Textures(w http.ResponseWriter, r *http.Request) {
	snapshot := h.catalog.Load(r.Context())

	resp := TexturesResponse{Textures: make([]Texture, 0, len(snapshot.Textures))}
	for _, t := range snapshot.Textures {
		resp.Textures = append(resp.Textures, Texture{Name: t.Name, Image: t.Image, Description: t.Description})
	}

	handler.WriteJSON(w, http.StatusOK, resp)
}

func toProduct(p domain.Product) Product {
	return Product{
		ID:         p.ID,
		Number:     p.Number,
		Name:       p.Name,
		Categories: nonNil(p.Categories),
		Textures:   nonNil(p.Textures),
		Images: ProductImages{
			Room:   p.ImageRoom,
			Sheet:  p.ImageSheet,
			Detail: p.ImageDetail,
		},
		Description:      p.Description,
		Material:         p.Material,
		RollWidth:        p.RollWidth,
		AvailableHeights: p.AvailableHeights,
		Price:            p.Price,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
