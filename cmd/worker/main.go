package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/franchise-catalog-api/internal/app/api"
	catalogactivities "github.com/Apurer/franchise-catalog-api/internal/durable/temporal/activities/catalog"
	catalogworkflows "github.com/Apurer/franchise-catalog-api/internal/durable/temporal/workflows/catalog"
	platformobservability "github.com/Apurer/franchise-catalog-api/internal/platform/observability"
)

func main() {
	ctx := context.Background()
	const serviceName = "franchise-catalog-worker"
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	catalogService, cleanup := api.NewCatalogService(ctx, cfg, instruments)
	defer cleanup()
	activities := catalogactivities.NewActivities(catalogService)

	temporalClient, err := api.DialTemporal(cfg, instruments, "temporal-worker")
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		cleanup()
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, catalogworkflows.ProvisioningTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(catalogworkflows.ProvisionFranchiseWorkflow, workflow.RegisterOptions{Name: catalogworkflows.ProvisionFranchiseWorkflowName})
	w.RegisterActivityWithOptions(activities.CreateFranchise, activity.RegisterOptions{Name: catalogactivities.CreateFranchiseActivityName})
	w.RegisterActivityWithOptions(activities.CreateBranch, activity.RegisterOptions{Name: catalogactivities.CreateBranchActivityName})
	w.RegisterActivityWithOptions(activities.CreateProduct, activity.RegisterOptions{Name: catalogactivities.CreateProductActivityName})

	logger.Info("worker listening", slog.String("taskQueue", catalogworkflows.ProvisioningTaskQueue), slog.String("namespace", cfg.TemporalNamespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
