package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/dukerupert/maremansa/internal"
	"github.com/dukerupert/maremansa/internal/cookie"
	"github.com/dukerupert/maremansa/internal/events"
	"github.com/dukerupert/maremansa/internal/handler"
	"github.com/dukerupert/maremansa/internal/handler/api"
	"github.com/dukerupert/maremansa/internal/handler/storefront"
	"github.com/dukerupert/maremansa/internal/middleware"
	"github.com/dukerupert/maremansa/internal/postgres"
	"github.com/dukerupert/maremansa/internal/router"
	"github.com/dukerupert/maremansa/internal/routes"
	"github.com/dukerupert/maremansa/internal/service"
	"github.com/dukerupert/maremansa/internal/telemetry"
	"github.com/dukerupert/maremansa/web"
)

const shutdownTimeout = 10 * time.Second

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)
	slog.SetDefault(logger)

	// Error tracking
	flushSentry, err := telemetry.InitSentry(telemetry.SentryConfig{
		DSN:              cfg.Sentry.DSN,
		Enabled:          cfg.Sentry.Enabled,
		Environment:      cfg.Sentry.Environment,
		Release:          cfg.Sentry.Release,
		SampleRate:       cfg.Sentry.SampleRate,
		TracesSampleRate: cfg.Sentry.TracesSampleRate,
		Debug:            cfg.Sentry.Debug,
	}, logger)
	if err != nil {
		return fmt.Errorf("sentry initialization failed: %w", err)
	}
	defer flushSentry()

	// HTTP and business metrics share one registry
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := middleware.NewMetrics("maremansa", registry)
	businessMetrics := telemetry.NewBusinessMetrics("maremansa", registry)

	// ==========================================================================
	// Content source
	// ==========================================================================

	// Database problems are logged, not fatal; the catalog falls back to the
	// built-in collection.
	if cfg.RunMigrations {
		migrate(ctx, cfg.DatabaseUrl, logger)
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	defer pool.Close()

	catalogStore := postgres.NewCatalogStore(pool)
	if err := catalogStore.Ping(ctx); err != nil {
		logger.Warn("content database unreachable, built-in catalog will be served", "error", err)
	} else {
		logger.Info("Database connection established")
	}

	catalogService := service.NewCatalogService(catalogStore, cfg.Catalog.CacheTTL, logger, businessMetrics)

	// ==========================================================================
	// Quote sessions and events
	// ==========================================================================

	var sessions service.SessionStore
	switch cfg.Quote.SessionStore {
	case "redis":
		client, err := service.NewRedisClient(ctx, cfg.Redis.URL)
		if err != nil {
			return fmt.Errorf("redis session store: %w", err)
		}
		defer client.Close()
		sessions = service.NewRedisSessionStore(client, cfg.Quote.SessionTTL)
		logger.Info("Quote sessions stored in redis")
	default:
		memory := service.NewMemorySessionStore(cfg.Quote.SessionTTL)
		memory.StartSweeper(ctx, time.Minute, logger)
		sessions = memory
		logger.Info("Quote sessions stored in memory", "ttl", cfg.Quote.SessionTTL)
	}

	var publisher events.Publisher = events.Nop{}
	if cfg.NATS.URL != "" {
		nc, err := events.Connect(cfg.NATS.URL, logger)
		if err != nil {
			logger.Warn("quote events disabled", "error", err)
		} else {
			publisher = events.NewNATSPublisher(nc, cfg.NATS.Subject, logger, businessMetrics)
			logger.Info("Publishing quote events", "subject", cfg.NATS.Subject)
		}
	}
	defer publisher.Close()

	quoteService := service.NewQuoteService(catalogService, sessions, publisher, service.QuoteConfig{
		Collection:      cfg.Catalog.CollectionName,
		WhatsAppBaseURL: cfg.Quote.WhatsAppBaseURL,
		WhatsAppNumber:  cfg.Quote.WhatsAppNumber,
	}, logger, businessMetrics)

	// ==========================================================================
	// Handlers
	// ==========================================================================

	logger.Info("Loading templates...")
	templates, err := fs.Sub(web.TemplatesFS, "templates")
	if err != nil {
		return fmt.Errorf("failed to open templates: %w", err)
	}
	renderer, err := handler.NewRenderer(templates, logger)
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}

	cookieConfig := cookie.NewConfig(cfg.Cookie.Domain, cfg.Cookie.Secure)
	collection := cfg.Catalog.CollectionName

	storefrontDeps := routes.StorefrontDeps{
		CatalogHandler: storefront.NewCatalogHandler(catalogService, renderer, businessMetrics, collection),
		ProductHandler: storefront.NewProductDetailHandler(catalogService, renderer, businessMetrics, collection),
		QuoteHandler:   storefront.NewQuoteHandler(quoteService, catalogService, renderer, cookieConfig, cfg.Quote.SessionTTL, collection),
		GalleryHandler: storefront.NewGalleryHandler(renderer, collection),
	}

	apiDeps := routes.APIDeps{
		CatalogHandler:  api.NewCatalogHandler(catalogService),
		EstimateHandler: api.NewEstimateHandler(quoteService),
		AllowedOrigins:  cfg.AllowedOrigins,
	}

	// ==========================================================================
	// Initialize middleware
	// ==========================================================================

	securityConfig := middleware.DefaultSecurityHeadersConfig()
	if cfg.Env == "dev" {
		securityConfig = middleware.DevelopmentSecurityHeadersConfig()
	}

	csrfConfig := middleware.DefaultCSRFConfig(cookieConfig)

	defaultRateLimiter := middleware.NewRateLimiter(middleware.DefaultRateLimiterConfig())
	defer defaultRateLimiter.Stop()
	quoteRateLimiter := middleware.NewRateLimiter(middleware.QuoteRateLimiterConfig())
	defer quoteRateLimiter.Stop()

	storefrontDeps.QuoteLimiter = quoteRateLimiter
	apiDeps.EstimateLimiter = quoteRateLimiter

	// ==========================================================================
	// Create router and register routes
	// ==========================================================================

	r := router.New(
		router.Recovery(logger),
		middleware.RequestID,
		middleware.WithClientIP(),
		middleware.WithRequestLogger(logger),
		metrics.Middleware,
		telemetry.SentryMiddleware(middleware.GetRequestID),
		middleware.SecurityHeaders(securityConfig),
		middleware.MaxBodySizeFunc(middleware.StorefrontBodyLimit),
		middleware.Timeout(middleware.DefaultTimeout),
		defaultRateLimiter.Middleware,
		router.Logger(logger),
		middleware.CSRF(csrfConfig),
	)

	// Static files
	if err := r.Embedded("/static/", web.StaticFS, "static"); err != nil {
		return fmt.Errorf("failed to mount static files: %w", err)
	}
	r.Get("/placeholder.svg", func(w http.ResponseWriter, req *http.Request) {
		http.ServeFileFS(w, req, web.StaticFS, "static/placeholder.svg")
	})
	r.Static("/images/", cfg.ImagesDir)

	routes.RegisterSystemRoutes(r, routes.SystemDeps{
		Health: func(w http.ResponseWriter, req *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("OK"))
		},
		Metrics: metrics.Handler(),
	})
	routes.RegisterStorefrontRoutes(r, storefrontDeps)
	routes.RegisterAPIRoutes(r, apiDeps)
	r.NotFound(handler.NotFoundResponse)

	// ==========================================================================
	// Start server
	// ==========================================================================

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting storefront server", "address", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	logger.Info("Server stopped")

	return nil
}

// migrate applies pending migrations over database/sql, which goose requires.
func migrate(ctx context.Context, databaseURL string, logger *slog.Logger) {
	logger.Info("Running database migrations...")
	sqlDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		logger.Warn("migrations skipped", "error", err)
		return
	}
	defer sqlDB.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		logger.Warn("migrations skipped, database unreachable", "error", err)
		return
	}

	if err := internal.RunMigrations(sqlDB); err != nil {
		logger.Error("migration failed", "error", err)
		return
	}

	version, err := internal.MigrationVersion(sqlDB)
	if err != nil {
		logger.Warn("could not read migration version", "error", err)
		return
	}
	logger.Info("Database migrations completed successfully", "version", version)
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
