package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCatalog_TexturesFor_SkipsDanglingNames(t *testing.T) {
	catalog := Catalog{
		Textures: []Texture{
			{Name: "Areia", Image: "/images/textura-areia.png"},
			{Name: "Linho", Image: "/images/textura-linho.png"},
		},
	}
	product := Product{Textures: []string{"Linho", "Veludo", "Areia"}}

	textures := catalog.TexturesFor(product)

	assert.Len(t, textures, 2)
	assert.Equal(t, "Linho", textures[0].Name)
	assert.Equal(t, "Areia", textures[1].Name)
}

func TestCatalog_FindProduct(t *testing.T) {
	catalog := Catalog{Products: []Product{{ID: "001", Name: "Peixinhos"}}}

	p, ok := catalog.FindProduct("001")
	assert.True(t, ok)
	assert.Equal(t, "Peixinhos", p.Name)

	_, ok = catalog.FindProduct("999")
	assert.False(t, ok)
}

func TestProduct_Helpers(t *testing.T) {
	p := Product{
		Categories:  []string{"Marinho", "Banheiro"},
		Textures:    []string{"Areia"},
		ImageRoom:   "room.png",
		ImageSheet:  "sheet.png",
		ImageDetail: "detail.png",
	}

	assert.Equal(t, "Marinho", p.PrimaryCategory())
	assert.Equal(t, "", Product{}.PrimaryCategory())
	assert.True(t, p.HasCategory("Banheiro"))
	assert.False(t, p.HasCategory("Infantil"))
	assert.True(t, p.HasTexture("Areia"))
	assert.False(t, p.HasTexture("Linho"))
	assert.Equal(t, []string{"room.png", "sheet.png", "detail.png"}, p.Images())
}
