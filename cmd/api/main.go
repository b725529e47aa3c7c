package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"listingapi/docs"
	"listingapi/internal/cache"
	"listingapi/internal/config"
	"listingapi/internal/database"
	"listingapi/internal/database/migration"
	"listingapi/internal/draft"
	handlers "listingapi/internal/http/handler"
	"listingapi/internal/http/middleware"
	"listingapi/internal/logging"
	"listingapi/internal/otel"
	"listingapi/internal/ratelimit"
	"listingapi/internal/repository/postgres"
	"listingapi/internal/service"
	"listingapi/internal/storage"
)

const shutdownTimeout = 10 * time.Second

// @title Listing API
// @version 1.0
// @description Marketplace listing drafts: tier validation, publishing readiness and the creation wizard.
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	log := logging.New(os.Stdout, cfg.Location())
	logging.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("main", "exit", err, nil)
		os.Exit(1)
	}
}

func run(cfg *config.AppConfig, log *logging.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Tracing falls back to a noop provider when the exporter cannot start
	shutdownTracing, err := otel.Init(ctx, otel.SettingsFromEnv(), log)
	if err != nil {
		return err
	}

	// Initialize PostgreSQL connection and create the listings schema if missing
	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
		return err
	}

	// S3-compatible object storage for submission snapshots (MinIO-supported)
	objStore, err := storage.NewMinIO(ctx, cfg.MinIO)
	if err != nil {
		return err
	}

	// Draft template used for new listings
	tpl, err := draft.Load(cfg.DraftTemplatePath)
	if err != nil {
		return err
	}

	// Metrics registry shared by the runtime collectors, the read cache and HTTP middleware
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	cacheMetrics, err := cache.NewMetrics(reg)
	if err != nil {
		return err
	}
	promMW, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return err
	}

	// Initialize the read cache, repository and service
	readCache := cache.New(cache.WithMetrics(cacheMetrics))
	listingSvc := service.NewListingService(
		postgres.NewListingPostgres(db),
		objStore,
		readCache,
		tpl,
		service.WithTTL(cfg.Cache.ListingTTL, cfg.Cache.ListTTL),
		service.WithSnapshotExpiry(cfg.SnapshotURLExpiry),
		service.WithLogger(log),
	)

	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(),
		BodyLimit:             1 << 20,
		DisableStartupMessage: true,
	})

	// Register global middleware
	// Tracing skips scrape and probe traffic
	probes := map[string]bool{"/metrics": true, "/healthz": true}
	app.Use(otelfiber.Middleware(otelfiber.WithNext(func(c *fiber.Ctx) bool {
		return probes[c.Path()]
	})))
	// RequestID adds/propagates X-Request-ID; Owner reads X-Owner-ID for handlers and logs
	app.Use(middleware.RequestID())
	app.Use(middleware.Owner())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger(log))
	app.Use(promMW.Handler())
	// Per-client rate limit, probes exempt
	app.Use(middleware.RateLimit(
		ratelimit.New(cfg.RateLimit.RPS, cfg.RateLimit.Burst, 10*time.Minute),
		"/metrics", "/healthz", "/health",
	))

	// Register HTTP routes with injected service
	handlers.RegisterRoutes(app, handlers.Deps{
		DB:       db,
		Listings: listingSvc,
		Metrics:  reg,
	})

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}
		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}
		return swagger.HandlerDefault(c)
	})

	// Server, graceful shutdown and cache sweeper share one errgroup; a signal
	// or a failing member stops the rest
	addr := ":" + cfg.Port
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("main", "server_starting", map[string]any{"addr": addr})
		return app.Listen(addr)
	})

	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		log.Info("main", "server_stopping", nil)
		err := app.ShutdownWithContext(sctx)
		if terr := shutdownTracing(sctx); terr != nil {
			log.Error("main", "tracing_shutdown_failed", terr, nil)
		}
		return err
	})

	if cfg.Cache.SweepInterval > 0 {
		g.Go(func() error {
			sweepCache(gctx, readCache, cfg.Cache.SweepInterval, log)
			return nil
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func sweepCache(ctx context.Context, c *cache.Cache, every time.Duration, log *logging.Logger) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := c.ClearExpired(); n > 0 {
				log.Info("cache", "expired_entries_cleared", map[string]any{"count": n, "remaining": c.Len()})
			}
		}
	}
}
