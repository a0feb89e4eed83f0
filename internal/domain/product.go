package domain

import (
	"context"
	"slices"

	"github.com/shopspring/decimal"
)

// =============================================================================
// CATALOG DOMAIN TYPES
// =============================================================================

// Defaults applied when a product record leaves a descriptive field empty.
const (
	DefaultMaterial         = "Vinil adesivo blockout | Papel de parede liso e texturas"
	DefaultRollWidth        = "120 cm"
	DefaultAvailableHeights = "250 e 300 cm"
	PlaceholderImage        = "/placeholder.svg"
)

// DefaultPrice is the base price per roll (R$) used when the content source
// stores a product without one.
var DefaultPrice = decimal.NewFromInt(360)

// Product is a wallpaper print in the collection.
type Product struct {
	ID     string
	Number string
	Name   string

	// Categories is non-empty and ordered; the first entry is the primary one.
	Categories []string

	// Textures holds texture names. They reference Texture.Name weakly.
	Textures []string

	ImageRoom   string
	ImageSheet  string
	ImageDetail string

	Description      string
	Material         string
	RollWidth        string
	AvailableHeights string

	// Price is per roll. Invalid when the record carries no price.
	Price decimal.NullDecimal

	SortOrder int32
}

// Images returns the carousel images in display order: room, sheet, detail.
func (p Product) Images() []string {
	return []string{p.ImageRoom, p.ImageSheet, p.ImageDetail}
}

// PrimaryCategory returns the first category or "" when none is set.
func (p Product) PrimaryCategory() string {
	if len(p.Categories) == 0 {
		return ""
	}
	return p.Categories[0]
}

// HasTexture reports whether name is one of the product's compatible textures.
func (p Product) HasTexture(name string) bool {
	return slices.Contains(p.Textures, name)
}

// HasCategory reports whether the product belongs to the category.
func (p Product) HasCategory(name string) bool {
	return slices.Contains(p.Categories, name)
}

// Category groups products for filtering.
type Category struct {
	Name        string
	Slug        string
	Description string
	SortOrder   int32
}

// Texture is a named material finish with a representative swatch image.
type Texture struct {
	Name        string
	Image       string
	Description string
	SortOrder   int32
}

// Catalog is an immutable snapshot of the content source.
type Catalog struct {
	Products   []Product
	Categories []Category
	Textures   []Texture

	// Fallback is true when the snapshot came from built-in data.
	Fallback bool
}

// FindProduct returns the product with the given id.
func (c Catalog) FindProduct(id string) (Product, bool) {
	for _, p := range c.Products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// TexturesFor resolves a product's texture names against the snapshot.
// Names without a matching texture are skipped.
func (c Catalog) TexturesFor(p Product) []Texture {
	textures := make([]Texture, 0, len(p.Textures))
	for _, name := range p.Textures {
		for _, t := range c.Textures {
			if t.Name == name {
				textures = append(textures, t)
				break
			}
		}
	}
	return textures
}

// CatalogSource reads active content from the content backend.
// Implementations return records sorted by display order.
type CatalogSource interface {
	ListActiveProducts(ctx context.Context) ([]Product, error)
	ListCategories(ctx context.Context) ([]Category, error)
	ListTextures(ctx context.Context) ([]Texture, error)
}
