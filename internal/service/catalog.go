package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dukerupert/maremansa/internal/catalog"
	"github.com/dukerupert/maremansa/internal/domain"
	"github.com/dukerupert/maremansa/internal/telemetry"
)

// CatalogService serves catalog snapshots read from the content source.
// A failing or empty source never surfaces to shoppers: the built-in
// collection is served instead.
type CatalogService struct {
	source  domain.CatalogSource
	ttl     time.Duration
	logger  *slog.Logger
	metrics *telemetry.BusinessMetrics
	now     func() time.Time

	mu       sync.RWMutex
	cached   *domain.Catalog
	loadedAt time.Time
}

// NewCatalogService creates a CatalogService. A zero ttl disables caching.
func NewCatalogService(source domain.CatalogSource, ttl time.Duration, logger *slog.Logger, metrics *telemetry.BusinessMetrics) *CatalogService {
	return &CatalogService{
		source:  source,
		ttl:     ttl,
		logger:  logger,
		metrics: metrics,
		now:     time.Now,
	}
}

// Load returns the current catalog snapshot.
func (s *CatalogService) Load(ctx context.Context) domain.Catalog {
	if c, ok := s.fresh(); ok {
		return c
	}

	ctx, finish := telemetry.StartSpan(ctx, "catalog.load", "load catalog from content source")
	defer finish()

	start := s.now()
	c, err := s.fetch(ctx)
	elapsed := s.now().Sub(start).Seconds()

	if err != nil {
		s.metrics.ObserveCatalogLoad("error", elapsed)
		s.logger.Warn("content source unavailable, serving built-in catalog", "error", err)
		telemetry.CaptureErrorFromContext(ctx, err, map[string]any{"op": "catalog.load"})
		s.metrics.RecordCatalogLoad("fallback")
		s.metrics.RecordFallbackServed("error")
		return catalog.Fallback()
	}
	s.metrics.ObserveCatalogLoad("ok", elapsed)
	if len(c.Products) == 0 {
		s.logger.Info("content source has no active products, serving built-in catalog")
		s.metrics.RecordCatalogLoad("fallback")
		s.metrics.RecordFallbackServed("empty")
		return catalog.Fallback()
	}

	s.metrics.RecordCatalogLoad("source")
	s.store(c)
	return c
}

// Product returns a product from the current snapshot.
func (s *CatalogService) Product(ctx context.Context, id string) (domain.Product, error) {
	p, ok := s.Load(ctx).FindProduct(id)
	if !ok {
		return domain.Product{}, domain.NotFound("catalog.product", "Produto", id)
	}
	return p, nil
}

// Invalidate drops the cached snapshot so the next Load reads the source.
func (s *CatalogService) Invalidate() {
	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()
}

func (s *CatalogService) fresh() (domain.Catalog, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.cached == nil || s.ttl <= 0 {
		return domain.Catalog{}, false
	}
	if s.now().Sub(s.loadedAt) >= s.ttl {
		return domain.Catalog{}, false
	}
	return *s.cached, true
}

func (s *CatalogService) store(c domain.Catalog) {
	if s.ttl <= 0 {
		return
	}
	s.mu.Lock()
	s.cached = &c
	s.loadedAt = s.now()
	s.mu.Unlock()
}

func (s *CatalogService) fetch(ctx context.Context) (domain.Catalog, error) {
	products, err := s.source.ListActiveProducts(ctx)
	if err != nil {
		return domain.Catalog{}, err
	}
	categories, err := s.source.ListCategories(ctx)
	if err != nil {
		return domain.Catalog{}, err
	}
	textures, err := s.source.ListTextures(ctx)
	if err != nil {
		return domain.Catalog{}, err
	}
	return domain.Catalog{
		Products:   products,
		Categories: categories,
		Textures:   textures,
	}, nil
}
