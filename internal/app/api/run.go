package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	catalogserver "github.com/Apurer/franchise-catalog-api/go"

	catalogworkflows "github.com/Apurer/franchise-catalog-api/internal/domains/catalog/adapters/workflows"
	catalogports "github.com/Apurer/franchise-catalog-api/internal/domains/catalog/ports"
	platformobservability "github.com/Apurer/franchise-catalog-api/internal/platform/observability"
)

const serviceName = "franchise-catalog-api"

// Run boots the catalog HTTP API with observability, repositories and workflows wired.
// It returns when ctx is cancelled or the server fails.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	catalogService, cleanup := NewCatalogService(ctx, cfg, instruments)
	defer cleanup()

	var provisioning catalogports.WorkflowOrchestrator = catalogworkflows.NewInlineWorkflows(catalogService)
	if temporalClient, err := DialTemporal(cfg, instruments, "temporal-client"); err != nil {
		logger.Warn("Temporal workflows unavailable, running provisioning inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		provisioning = catalogworkflows.NewTemporalWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	handlers := catalogserver.ApiHandleFunctions{
		FranchiseAPI: catalogserver.NewFranchiseAPI(catalogService, provisioning),
		BranchAPI:    catalogserver.NewBranchAPI(catalogService),
		ProductAPI:   catalogserver.NewProductAPI(catalogService),
		Metrics:      instruments.MetricsHandler,
	}
	if cfg.Environment != "local" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), otelgin.Middleware(serviceName), catalogserver.RequestID())
	catalogserver.NewRouterWithGinEngine(router, handlers)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serverErr := make(chan error, 1)
	go func() {
		logger.Info("catalog API listening", slog.String("addr", server.Addr))
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("catalog API server exited", slog.String("addr", server.Addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("catalog API shutting down")
	return server.Shutdown(shutdownCtx)
}
