package api

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"gorm.io/gorm"

	catalogcache "github.com/Apurer/franchise-catalog-api/internal/domains/catalog/adapters/cache/redis"
	catalogmemory "github.com/Apurer/franchise-catalog-api/internal/domains/catalog/adapters/memory"
	catalogobs "github.com/Apurer/franchise-catalog-api/internal/domains/catalog/adapters/observability"
	catalogpostgres "github.com/Apurer/franchise-catalog-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/Apurer/franchise-catalog-api/internal/domains/catalog/application"
	catalogports "github.com/Apurer/franchise-catalog-api/internal/domains/catalog/ports"
	"github.com/Apurer/franchise-catalog-api/internal/platform/migrations"
	platformobservability "github.com/Apurer/franchise-catalog-api/internal/platform/observability"
	platformpostgres "github.com/Apurer/franchise-catalog-api/internal/platform/postgres"
	platformredis "github.com/Apurer/franchise-catalog-api/internal/platform/redis"
)

type gateways struct {
	franchises  catalogports.FranchiseRepository
	branches    catalogports.BranchRepository
	products    catalogports.ProductRepository
	topProducts catalogports.TopProductQuery
}

// NewCatalogService wires the catalog use cases over PostgreSQL (or memory when it is
// unavailable), the optional Redis read-model cache and the observability decorator.
// The returned cleanup releases every connection opened on the way.
func NewCatalogService(ctx context.Context, cfg Config, instruments *platformobservability.Instruments) (catalogports.Service, func()) {
	logger := effectiveLogger(instruments)
	gw, cleanupStorage := buildGateways(ctx, cfg, logger)

	redisClient, cleanupRedis := platformredis.ConnectOrSkip(ctx, cfg.Redis, logger)
	var cache *catalogcache.TopProductCache
	if redisClient != nil {
		gw.topProducts = catalogcache.NewTopProductCache(gw.topProducts, redisClient, cfg.TopProductsTTL, catalogcache.WithLogger(logger))
		cache, _ = gw.topProducts.(*catalogcache.TopProductCache)
	}

	var core catalogports.Service = catalogapp.NewService(gw.franchises, gw.branches, gw.products, gw.topProducts)
	core = catalogcache.NewInvalidatingService(core, cache)
	service := catalogobs.New(
		core,
		catalogobs.WithLogger(logger),
		catalogobs.WithTracer(instruments.Tracer("internal.catalog.application")),
		catalogobs.WithMeter(instruments.Meter("internal.catalog.application")),
	)
	return service, func() {
		cleanupRedis()
		cleanupStorage()
	}
}

func buildGateways(ctx context.Context, cfg Config, logger *slog.Logger) (gateways, func()) {
	db, cleanup := platformpostgres.ConnectOrFallback(ctx, cfg.PostgresDSN, logger)
	if db == nil {
		return memoryGateways(), cleanup
	}
	if err := migrations.Run(db.WithContext(ctx)); err != nil {
		logger.Warn("failed to migrate catalog schema, falling back to in-memory repositories", slog.String("error", err.Error()))
		cleanup()
		return memoryGateways(), func() {}
	}
	gw, err := postgresGateways(db)
	if err != nil {
		logger.Warn("failed to unwrap postgres connection, falling back to in-memory repositories", slog.String("error", err.Error()))
		cleanup()
		return memoryGateways(), func() {}
	}
	logger.Info("catalog repositories configured with postgres")
	return gw, cleanup
}

func memoryGateways() gateways {
	store := catalogmemory.NewStore()
	return gateways{
		franchises:  store.Franchises(),
		branches:    store.Branches(),
		products:    store.Products(),
		topProducts: store.TopProducts(),
	}
}

func postgresGateways(db *gorm.DB) (gateways, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return gateways{}, err
	}
	return gateways{
		franchises:  catalogpostgres.NewFranchiseRepository(db),
		branches:    catalogpostgres.NewBranchRepository(db),
		products:    catalogpostgres.NewProductRepository(db),
		topProducts: catalogpostgres.NewTopProductQuery(sqlDB),
	}, nil
}

// DialTemporal connects a Temporal client with tracing and structured logging attached.
func DialTemporal(cfg Config, instruments *platformobservability.Instruments, component string) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(temporalotel.TracerOptions{
		Tracer: instruments.Tracer(component),
	})
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
