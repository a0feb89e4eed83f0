package storefront

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/dukerupert/maremansa/internal/catalog"
	"github.com/dukerupert/maremansa/internal/cookie"
	"github.com/dukerupert/maremansa/internal/domain"
	"github.com/dukerupert/maremansa/internal/handler"
	"github.com/dukerupert/maremansa/internal/service"
	"github.com/dukerupert/maremansa/internal/telemetry"
	"github.com/dukerupert/maremansa/web"
)

// stubCatalog serves a fixed snapshot and satisfies both CatalogLoader and
// service.ProductLookup.
type stubCatalog struct {
	snapshot domain.Catalog
}

func (s stubCatalog) Load(context.Context) domain.Catalog {
	return s.snapshot
}

func (s stubCatalog) Product(_ context.Context, id string) (domain.Product, error) {
	p, ok := s.snapshot.FindProduct(id)
	if !ok {
		return domain.Product{}, domain.NotFound("catalog.product", "Produto", id)
	}
	return p, nil
}

// testCatalog is the built-in collection with a price on Peixinhos.
func testCatalog() stubCatalog {
	c := catalog.Fallback()
	c.Fallback = false
	c.Products[0].Price = decimal.NewNullDecimal(decimal.NewFromInt(360))
	return stubCatalog{snapshot: c}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testMetrics() *telemetry.BusinessMetrics {
	return telemetry.NewBusinessMetrics("test", prometheus.NewRegistry())
}

// testRenderer parses the real storefront templates.
func testRenderer(t *testing.T) *handler.Renderer {
	t.Helper()
	templates, err := fs.Sub(web.TemplatesFS, "templates")
	require.NoError(t, err)
	r, err := handler.NewRenderer(templates, testLogger())
	require.NoError(t, err)
	return r
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("w%d", n)
	}
}

// newTestServer wires every storefront handler on a ServeMux with the same
// patterns the application registers.
func newTestServer(t *testing.T) (*http.ServeMux, *service.MemorySessionStore) {
	t.Helper()

	cat := testCatalog()
	renderer := testRenderer(t)
	metrics := testMetrics()
	store := service.NewMemorySessionStore(time.Hour)

	quotes := service.NewQuoteService(cat, store, nil, service.QuoteConfig{
		Collection:      "Maré Mansa",
		WhatsAppBaseURL: "https://wa.me/",
		WhatsAppNumber:  "5521994408290",
	}, testLogger(), metrics)
	quotes.SetIDGenerator(sequentialIDs())

	cookies := cookie.NewConfig("", false)

	grid := NewCatalogHandler(cat, renderer, metrics, "Maré Mansa")
	detail := NewProductDetailHandler(cat, renderer, metrics, "Maré Mansa")
	gallery := NewGalleryHandler(renderer, "Maré Mansa")
	qh := NewQuoteHandler(quotes, cat, renderer, cookies, time.Hour, "Maré Mansa")

	mux := http.NewServeMux()
	mux.Handle("GET /{$}", grid)
	mux.Handle("GET /products", grid)
	mux.Handle("GET /products/{id}", detail)
	mux.Handle("GET /gallery", gallery)
	mux.HandleFunc("GET /products/{id}/quote", qh.View)
	mux.HandleFunc("POST /products/{id}/quote/walls", qh.AddWall)
	mux.HandleFunc("POST /products/{id}/quote/walls/{wallID}", qh.UpdateWall)
	mux.HandleFunc("POST /products/{id}/quote/walls/{wallID}/remove", qh.RemoveWall)
	mux.HandleFunc("POST /products/{id}/quote/texture", qh.SelectTexture)
	mux.HandleFunc("POST /products/{id}/quote/submit", qh.Submit)
	mux.HandleFunc("POST /products/{id}/quote/close", qh.Close)

	return mux, store
}

func get(mux http.Handler, target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func post(mux http.Handler, target string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}
