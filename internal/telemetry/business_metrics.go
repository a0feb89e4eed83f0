package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BusinessMetrics holds Prometheus metrics for storefront and quote funnel
// observability. A nil *BusinessMetrics is valid and records nothing.
type BusinessMetrics struct {
	// Catalog engagement
	ProductViews    *prometheus.CounterVec
	CatalogSearches *prometheus.CounterVec

	// Catalog source health
	CatalogLoads         *prometheus.CounterVec
	CatalogLoadDuration  *prometheus.HistogramVec
	CatalogFallbackServe *prometheus.CounterVec

	// Quote funnel
	QuotesOpened     *prometheus.CounterVec
	WallsAdded       prometheus.Counter
	QuotesRequested  *prometheus.CounterVec
	QuotesRejected   *prometheus.CounterVec
	RollsEstimated   prometheus.Histogram
	EstimatedValue   prometheus.Histogram
	APIEstimates     prometheus.Counter
	SessionStoreErrs *prometheus.CounterVec

	// Event publication
	EventsPublished *prometheus.CounterVec
}

// NewBusinessMetrics creates all business metrics and registers them with reg.
// A nil reg registers with the default Prometheus registry.
func NewBusinessMetrics(namespace string, reg prometheus.Registerer) *BusinessMetrics {
	if namespace == "" {
		namespace = "maremansa"
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	subsystem := "business"

	return &BusinessMetrics{
		// =======================================================================
		// Catalog Engagement
		// =======================================================================
		ProductViews: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "product_views_total",
				Help:      "Total product detail page views",
			},
			[]string{"product_number"},
		),
		CatalogSearches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "catalog_searches_total",
				Help:      "Total grid page views by active filter",
			},
			[]string{"filter_type"}, // filter_type: query, category, texture, none
		),

		// =======================================================================
		// Catalog Source
		// =======================================================================
		CatalogLoads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "catalog_loads_total",
				Help:      "Catalog snapshot loads by origin",
			},
			[]string{"source"}, // source: database, cache, fallback
		),
		CatalogLoadDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "catalog_load_duration_seconds",
				Help:      "Time spent reading the catalog from the content source",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
			[]string{"outcome"},
		),
		CatalogFallbackServe: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "catalog_fallback_served_total",
				Help:      "Times the built-in catalog replaced the content source",
			},
			[]string{"reason"}, // reason: error, empty
		),

		// =======================================================================
		// Quote Funnel
		// =======================================================================
		QuotesOpened: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "quotes_opened_total",
				Help:      "Quote forms opened per product",
			},
			[]string{"product_number"},
		),
		WallsAdded: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "quote_walls_added_total",
				Help:      "Walls added to quote sessions",
			},
		),
		QuotesRequested: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "quotes_requested_total",
				Help:      "Quotes handed off to WhatsApp",
			},
			[]string{"product_number", "texture"},
		),
		QuotesRejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "quotes_rejected_total",
				Help:      "Quote submissions blocked by validation",
			},
			[]string{"field"},
		),
		RollsEstimated: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "quote_rolls",
				Help:      "Estimated roll count per submitted quote",
				Buckets:   []float64{1, 2, 3, 4, 6, 8, 12, 16, 24, 32},
			},
		),
		EstimatedValue: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "quote_estimated_value_brl",
				Help:      "Estimated quote value in reais, when the product has a price",
				Buckets:   []float64{360, 720, 1080, 1440, 2160, 2880, 4320, 5760, 8640},
			},
		),
		APIEstimates: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "api_estimates_total",
				Help:      "Stateless estimates served by the JSON API",
			},
		),
		SessionStoreErrs: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "quote_session_store_errors_total",
				Help:      "Quote session store failures",
			},
			[]string{"op"},
		),

		// =======================================================================
		// Events
		// =======================================================================
		EventsPublished: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "events_published_total",
				Help:      "Quote events published to the broker",
			},
			[]string{"subject", "status"}, // status: ok, error
		),
	}
}

// Global instance for easy access from handlers
var Business *BusinessMetrics

// InitBusinessMetrics initializes the global business metrics instance
func InitBusinessMetrics(namespace string) *BusinessMetrics {
	Business = NewBusinessMetrics(namespace, nil)
	return Business
}

// RecordProductView counts a product detail view.
func (m *BusinessMetrics) RecordProductView(productNumber string) {
	if m == nil {
		return
	}
	m.ProductViews.WithLabelValues(productNumber).Inc()
}

// RecordCatalogSearch counts a grid view narrowed by one kind of filter.
func (m *BusinessMetrics) RecordCatalogSearch(filterType string) {
	if m == nil {
		return
	}
	m.CatalogSearches.WithLabelValues(filterType).Inc()
}

// RecordCatalogLoad counts where a catalog snapshot came from.
func (m *BusinessMetrics) RecordCatalogLoad(source string) {
	if m == nil {
		return
	}
	m.CatalogLoads.WithLabelValues(source).Inc()
}

// ObserveCatalogLoad records the content source round trip.
func (m *BusinessMetrics) ObserveCatalogLoad(outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.CatalogLoadDuration.WithLabelValues(outcome).Observe(seconds)
}

// RecordFallbackServed counts a fallback catalog response.
func (m *BusinessMetrics) RecordFallbackServed(reason string) {
	if m == nil {
		return
	}
	m.CatalogFallbackServe.WithLabelValues(reason).Inc()
}

// RecordQuoteOpened counts a new quote session.
func (m *BusinessMetrics) RecordQuoteOpened(productNumber string) {
	if m == nil {
		return
	}
	m.QuotesOpened.WithLabelValues(productNumber).Inc()
}

// RecordWallAdded counts one added wall.
func (m *BusinessMetrics) RecordWallAdded() {
	if m == nil {
		return
	}
	m.WallsAdded.Inc()
}

// RecordQuoteRequested counts a submitted quote and its estimate.
// value is ignored when negative.
func (m *BusinessMetrics) RecordQuoteRequested(productNumber, texture string, rolls int, value float64) {
	if m == nil {
		return
	}
	m.QuotesRequested.WithLabelValues(productNumber, texture).Inc()
	m.RollsEstimated.Observe(float64(rolls))
	if value >= 0 {
		m.EstimatedValue.Observe(value)
	}
}

// RecordQuoteRejected counts a submission blocked on field.
func (m *BusinessMetrics) RecordQuoteRejected(field string) {
	if m == nil {
		return
	}
	m.QuotesRejected.WithLabelValues(field).Inc()
}

// RecordAPIEstimate counts a JSON API estimate.
func (m *BusinessMetrics) RecordAPIEstimate() {
	if m == nil {
		return
	}
	m.APIEstimates.Inc()
}

// RecordSessionStoreError counts a failed session store operation.
func (m *BusinessMetrics) RecordSessionStoreError(op string) {
	if m == nil {
		return
	}
	m.SessionStoreErrs.WithLabelValues(op).Inc()
}

// RecordEventPublished counts a publish attempt on subject.
func (m *BusinessMetrics) RecordEventPublished(subject string, ok bool) {
	if m == nil {
		return
	}
	status := "ok"
	if !ok {
		status = "error"
	}
	m.EventsPublished.WithLabelValues(subject, status).Inc()
}
