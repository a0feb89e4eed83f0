package storefront

import (
	"net/http"

	"github.com/dukerupert/maremansa/internal/handler"
)

// GalleryImage is one slide of the collection showcase.
type GalleryImage struct {
	ID          string
	URL         string
	Alt         string
	Title       string
	Description string
}

// GalleryImages is the collection showcase, in display order.
var GalleryImages = []GalleryImage{
	{
		ID:          "cover",
		URL:         "/images/1.png",
		Alt:         "Capa - Clarice Jabarra Aprire Arquitetura",
		Title:       "Capa da Coleção",
		Description: "Coleção de estampas exclusivas Maré Mansa",
	},
	{
		ID:          "concept",
		URL:         "/images/3.png",
		Alt:         "Conceito da coleção",
		Title:       "Conceito",
		Description: "Estampas exclusivas que transportam a delicadeza da aquarela para sua parede",
	},
	{
		ID:          "exclusive",
		URL:         "/images/2.png",
		Alt:         "Materiais e exclusividade",
		Title:       "Materiais",
		Description: "Papéis especiais desenhados com exclusividade",
	},
	{
		ID:          "distribution",
		URL:         "/images/16.png",
		Alt:         "Distribuição exclusiva",
		Title:       "Exclusividade",
		Description: "Vendidas exclusivamente na @aSuperficie",
	},
}

// GalleryHandler renders the collection showcase.
type GalleryHandler struct {
	renderer   *handler.Renderer
	collection string
}

func NewGalleryHandler(renderer *handler.Renderer, collection string) *GalleryHandler {
	return &GalleryHandler{renderer: renderer, collection: collection}
}

// GalleryPageData contains data for the gallery template
type GalleryPageData struct {
	PageData
	Images []GalleryImage
}

// ServeHTTP handles GET /gallery
func (h *GalleryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.renderer.RenderHTTP(w, "storefront/gallery", GalleryPageData{
		PageData: BaseTemplateData(r, h.collection, "Catálogo Completo"),
		Images:   GalleryImages,
	})
}
