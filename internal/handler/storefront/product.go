package storefront

import (
	"net/http"

	"github.com/dukerupert/maremansa/internal/domain"
	"github.com/dukerupert/maremansa/internal/handler"
	"github.com/dukerupert/maremansa/internal/telemetry"
)

// imageLabels name the carousel images in Product.Images order.
var imageLabels = []string{"Ambiente", "Ficha Técnica", "Detalhe"}

// ProductDetailHandler handles the product detail page
type ProductDetailHandler struct {
	catalog    CatalogLoader
	renderer   *handler.Renderer
	metrics    *telemetry.BusinessMetrics
	collection string
}

// NewProductDetailHandler creates a new product detail handler
func NewProductDetailHandler(loader CatalogLoader, renderer *handler.Renderer, metrics *telemetry.BusinessMetrics, collection string) *ProductDetailHandler {
	return &ProductDetailHandler{
		catalog:    loader,
		renderer:   renderer,
		metrics:    metrics,
		collection: collection,
	}
}

// ProductPageData contains data for the detail template
type ProductPageData struct {
	PageData
	Product    domain.Product
	Images     []ProductImage
	Textures   []domain.Texture
	PriceLabel string
	QuoteURL   string
}

// ProductImage is one carousel slide.
type ProductImage struct {
	URL   string
	Label string
}

// ServeHTTP handles GET /products/{id}
func (h *ProductDetailHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	snapshot := h.catalog.Load(ctx)
	product, ok := snapshot.FindProduct(id)
	if !ok {
		handler.ErrorResponse(w, r, domain.NotFound("storefront.product", "Produto", id))
		return
	}

	h.metrics.RecordProductView(product.Number)

	images := make([]ProductImage, 0, len(imageLabels))
	for i, src := range product.Images() {
		if src == "" {
			src = domain.PlaceholderImage
		}
		images = append(images, ProductImage{URL: src, Label: imageLabels[i]})
	}

	data := ProductPageData{
		PageData:   BaseTemplateData(r, h.collection, product.Name),
		Product:    product,
		Images:     images,
		Textures:   snapshot.TexturesFor(product),
		PriceLabel: PriceLabel(product),
		QuoteURL:   quoteURL(product.ID),
	}

	h.renderer.RenderHTTP(w, "storefront/product", data)
}
