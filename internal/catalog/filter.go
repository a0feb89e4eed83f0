// Package catalog narrows the product grid by search text, category and
// texture, and carries the built-in collection used when the database is down.
package catalog

import (
	"slices"
	"strings"

	"github.com/dukerupert/maremansa/internal/domain"
)

// AllCategories is the category option that disables category filtering.
const AllCategories = "Todos"

// FilterCriteria is the shopper's current grid selection.
type FilterCriteria struct {
	Query    string
	Category string
	Textures []string
}

// DefaultCriteria matches every product.
func DefaultCriteria() FilterCriteria {
	return FilterCriteria{Category: AllCategories}
}

// IsDefault reports whether the criteria match every product.
func (c FilterCriteria) IsDefault() bool {
	return strings.TrimSpace(c.Query) == "" &&
		(c.Category == "" || c.Category == AllCategories) &&
		len(c.Textures) == 0
}

// HasTexture reports whether the texture is part of the selection.
func (c FilterCriteria) HasTexture(name string) bool {
	return slices.Contains(c.Textures, name)
}

// FilterProducts returns the products matching every criterion, in input
// order. The input slice is not modified.
//
// The search text matches name, description or any category label. A texture
// selection keeps only products offered in all selected textures.
func FilterProducts(products []domain.Product, c FilterCriteria) []domain.Product {
	query := strings.ToLower(strings.TrimSpace(c.Query))
	matched := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if matchesQuery(p, query) && matchesCategory(p, c.Category) && matchesTextures(p, c.Textures) {
			matched = append(matched, p)
		}
	}
	return matched
}

func matchesQuery(p domain.Product, query string) bool {
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(p.Name), query) ||
		strings.Contains(strings.ToLower(p.Description), query) {
		return true
	}
	for _, c := range p.Categories {
		if strings.Contains(strings.ToLower(c), query) {
			return true
		}
	}
	return false
}

func matchesCategory(p domain.Product, category string) bool {
	return category == "" || category == AllCategories || p.HasCategory(category)
}

func matchesTextures(p domain.Product, selected []string) bool {
	for _, t := range selected {
		if !p.HasTexture(t) {
			return false
		}
	}
	return true
}

// CategoryOptions lists the category filter choices, AllCategories first.
func CategoryOptions(categories []domain.Category) []string {
	options := make([]string, 0, len(categories)+1)
	options = append(options, AllCategories)
	for _, c := range categories {
		options = append(options, c.Name)
	}
	return options
}

// =============================================================================
// Reducer
// =============================================================================

// ActionType names a change to the filter criteria.
type ActionType string

const (
	ActionSetQuery      ActionType = "set_query"
	ActionSetCategory   ActionType = "set_category"
	ActionToggleTexture ActionType = "toggle_texture"
	ActionClearFilters  ActionType = "clear_filters"
)

// Action is one shopper interaction with the filter sidebar.
type Action struct {
	Type  ActionType
	Value string
}

// Reduce applies an action and returns the new criteria. The input criteria
// are not modified. Unknown actions return the criteria unchanged.
func Reduce(c FilterCriteria, a Action) FilterCriteria {
	next := FilterCriteria{
		Query:    c.Query,
		Category: c.Category,
		Textures: slices.Clone(c.Textures),
	}

	switch a.Type {
	case ActionSetQuery:
		next.Query = a.Value
	case ActionSetCategory:
		next.Category = a.Value
		if next.Category == "" {
			next.Category = AllCategories
		}
	case ActionToggleTexture:
		if i := slices.Index(next.Textures, a.Value); i >= 0 {
			next.Textures = slices.Delete(next.Textures, i, i+1)
		} else if a.Value != "" {
			next.Textures = append(next.Textures, a.Value)
		}
	case ActionClearFilters:
		return DefaultCriteria()
	}

	return next
}
