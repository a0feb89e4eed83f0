package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukerupert/maremansa/internal/domain"
)

func names(products []domain.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Name
	}
	return out
}

func TestFilterProducts_DefaultCriteriaReturnsEverything(t *testing.T) {
	products := Fallback().Products

	got := FilterProducts(products, DefaultCriteria())

	assert.Equal(t, products, got)
}

func TestFilterProducts_Category(t *testing.T) {
	products := Fallback().Products

	got := FilterProducts(products, FilterCriteria{Category: "Banheiro"})

	assert.Equal(t, []string{"Peixinhos", "Rede"}, names(got))
}

func TestFilterProducts(t *testing.T) {
	products := []domain.Product{
		{Name: "Peixinhos", Description: "Peixes em tons de azul", Categories: []string{"Marinho", "Banheiro"}, Textures: []string{"Areia", "Linho"}},
		{Name: "Praia", Description: "Cena de verão", Categories: []string{"Infantil"}, Textures: []string{"Areia"}},
		{Name: "Oceano", Description: "Veleiros em águas calmas", Categories: []string{"Marinho", "Aventura"}, Textures: []string{"Linho"}},
	}

	tests := []struct {
		name     string
		criteria FilterCriteria
		want     []string
	}{
		{"query matches name case-insensitively", FilterCriteria{Query: "PRAIA"}, []string{"Praia"}},
		{"query matches description", FilterCriteria{Query: "veleiros"}, []string{"Oceano"}},
		{"query matches category label", FilterCriteria{Query: "marinho"}, []string{"Peixinhos", "Oceano"}},
		{"blank query is ignored", FilterCriteria{Query: "   "}, []string{"Peixinhos", "Praia", "Oceano"}},
		{"query with no match", FilterCriteria{Query: "floresta"}, []string{}},
		{"all categories sentinel", FilterCriteria{Category: AllCategories}, []string{"Peixinhos", "Praia", "Oceano"}},
		{"unknown category", FilterCriteria{Category: "Geométrico"}, []string{}},
		{"single texture", FilterCriteria{Textures: []string{"Linho"}}, []string{"Peixinhos", "Oceano"}},
		{"every selected texture required", FilterCriteria{Textures: []string{"Areia", "Linho"}}, []string{"Peixinhos"}},
		{"combined predicates", FilterCriteria{Query: "a", Category: "Marinho", Textures: []string{"Areia"}}, []string{"Peixinhos"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterProducts(products, tt.criteria)
			assert.Equal(t, tt.want, names(got))
		})
	}
}

func TestFilterProducts_Idempotent(t *testing.T) {
	products := Fallback().Products
	criteria := []FilterCriteria{
		DefaultCriteria(),
		{Category: "Marinho"},
		{Query: "infantil"},
		{Category: "Banheiro", Textures: []string{"Linho", "Areia"}},
		{Query: "zzz"},
	}

	for _, c := range criteria {
		once := FilterProducts(products, c)
		twice := FilterProducts(once, c)
		assert.Equal(t, once, twice)
	}
}

func TestFilterProducts_DoesNotMutateInput(t *testing.T) {
	products := Fallback().Products
	snapshot := Fallback().Products

	FilterProducts(products, FilterCriteria{Category: "Infantil"})

	assert.Equal(t, snapshot, products)
}

func TestCategoryOptions(t *testing.T) {
	options := CategoryOptions(Fallback().Categories)

	assert.Equal(t, []string{"Todos", "Marinho", "Infantil", "Banheiro", "Minimalista"}, options)
}

func TestReduce(t *testing.T) {
	c := DefaultCriteria()

	c = Reduce(c, Action{Type: ActionSetQuery, Value: "peix"})
	assert.Equal(t, "peix", c.Query)

	c = Reduce(c, Action{Type: ActionSetCategory, Value: "Marinho"})
	assert.Equal(t, "Marinho", c.Category)

	c = Reduce(c, Action{Type: ActionToggleTexture, Value: "Linho"})
	c = Reduce(c, Action{Type: ActionToggleTexture, Value: "Areia"})
	assert.Equal(t, []string{"Linho", "Areia"}, c.Textures)

	before := c
	c = Reduce(c, Action{Type: ActionToggleTexture, Value: "Linho"})
	assert.Equal(t, []string{"Areia"}, c.Textures)
	assert.Equal(t, []string{"Linho", "Areia"}, before.Textures, "reducer must not mutate its input")

	c = Reduce(c, Action{Type: ActionSetCategory, Value: ""})
	assert.Equal(t, AllCategories, c.Category)

	c = Reduce(c, Action{Type: "unknown"})
	assert.Equal(t, "peix", c.Query)

	c = Reduce(c, Action{Type: ActionClearFilters})
	assert.True(t, c.IsDefault())
	assert.Equal(t, DefaultCriteria(), c)
}

func TestFallback(t *testing.T) {
	fb := Fallback()

	require.Len(t, fb.Products, 4)
	assert.Len(t, fb.Textures, 4)
	assert.Len(t, CategoryOptions(fb.Categories), 5)
	assert.True(t, fb.Fallback)
	for _, p := range fb.Products {
		assert.NotEmpty(t, p.Categories, p.Name)
		assert.False(t, p.Price.Valid, "fallback products carry no price")
		assert.Len(t, fb.TexturesFor(p), 4)
	}
}
