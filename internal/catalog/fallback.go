package catalog

import "github.com/dukerupert/maremansa/internal/domain"

// Fallback returns the built-in Maré Mansa collection served when the content
// source cannot be reached. Each call returns fresh slices.
func Fallback() domain.Catalog {
	return domain.Catalog{
		Products:   fallbackProducts(),
		Categories: fallbackCategories(),
		Textures:   fallbackTextures(),
		Fallback:   true,
	}
}

func fallbackTextures() []domain.Texture {
	return []domain.Texture{
		{Name: "Areia", Image: "/images/textura-areia.png", SortOrder: 1},
		{Name: "Linho Soft", Image: "/images/textura-linho-soft.png", SortOrder: 2},
		{Name: "Linho", Image: "/images/textura-linho.png", SortOrder: 3},
		{Name: "Algodão", Image: "/images/textura-algodao.png", SortOrder: 4},
	}
}

func fallbackCategories() []domain.Category {
	return []domain.Category{
		{Name: "Marinho", Slug: "marinho", SortOrder: 1},
		{Name: "Infantil", Slug: "infantil", SortOrder: 2},
		{Name: "Banheiro", Slug: "banheiro", SortOrder: 3},
		{Name: "Minimalista", Slug: "minimalista", SortOrder: 4},
	}
}

func allTextures() []string {
	return []string{"Areia", "Linho Soft", "Linho", "Algodão"}
}

func fallbackProducts() []domain.Product {
	return []domain.Product{
		{
			ID:               "001",
			Number:           "001",
			Name:             "Peixinhos",
			Categories:       []string{"Marinho", "Banheiro", "Minimalista"},
			Textures:         allTextures(),
			ImageRoom:        "/images/colecao-peixinhos-1.png",
			ImageSheet:       "/images/colecao-peixinhos-2.png",
			ImageDetail:      "/images/colecao-peixinhos-3.png",
			Description:      "Padrão elegante com peixes estilizados em tons de azul. Desenho minimalista perfeito para banheiros sofisticados e ambientes que desejam trazer o oceano com discrição.",
			Material:         domain.DefaultMaterial,
			RollWidth:        domain.DefaultRollWidth,
			AvailableHeights: domain.DefaultAvailableHeights,
			SortOrder:        1,
		},
		{
			ID:               "002",
			Number:           "002",
			Name:             "Praia",
			Categories:       []string{"Infantil", "Verão", "Pessoas"},
			Textures:         allTextures(),
			ImageRoom:        "/images/colecao-praia-1.png",
			ImageSheet:       "/images/colecao-praia-2.png",
			ImageDetail:      "/images/colecao-praia-3.png",
			Description:      "Cena animada de praia com pessoas em atividades de verão, em tons pastéis suaves. Uma celebração da diversão e liberdade do litoral, ideal para quartos infantis.",
			Material:         domain.DefaultMaterial,
			RollWidth:        domain.DefaultRollWidth,
			AvailableHeights: domain.DefaultAvailableHeights,
			SortOrder:        2,
		},
		{
			ID:               "003",
			Number:           "003",
			Name:             "Oceano",
			Categories:       []string{"Marinho", "Infantil", "Aventura"},
			Textures:         allTextures(),
			ImageRoom:        "/images/colecao-oceano-1.png",
			ImageSheet:       "/images/colecao-oceano-2.png",
			ImageDetail:      "/images/colecao-oceano-3.png",
			Description:      "Paisagem marinha tranquila com veleiros navegando em águas calmas. Tonalidades turquesa e branco criam uma atmosfera serena e inspiradora para ambientes infantis.",
			Material:         domain.DefaultMaterial,
			RollWidth:        domain.DefaultRollWidth,
			AvailableHeights: domain.DefaultAvailableHeights,
			SortOrder:        3,
		},
		{
			ID:               "004",
			Number:           "004",
			Name:             "Rede",
			Categories:       []string{"Banheiro", "Marinho", "Geométrico"},
			Textures:         allTextures(),
			ImageRoom:        "/images/colecao-rede-1.png",
			ImageSheet:       "/images/colecao-rede-2.png",
			ImageDetail:      "/images/colecao-rede-3.png",
			Description:      "Padrão geométrico minimalista com peixes estilizados em uma rede de linhas. Design clean e sofisticado que traz elegância marinha para banheiros e espaços adultos.",
			Material:         domain.DefaultMaterial,
			RollWidth:        domain.DefaultRollWidth,
			AvailableHeights: domain.DefaultAvailableHeights,
			SortOrder:        4,
		},
	}
}
