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

	"github.com/Apurer/storefront-admin/internal/app/api"
	checkoutactivities "github.com/Apurer/storefront-admin/internal/durable/temporal/activities/purchases"
	checkoutworkflows "github.com/Apurer/storefront-admin/internal/durable/temporal/workflows/checkout"
	"github.com/Apurer/storefront-admin/internal/platform/migrations"
	platformobservability "github.com/Apurer/storefront-admin/internal/platform/observability"
	platformpostgres "github.com/Apurer/storefront-admin/internal/platform/postgres"
	platformtemporal "github.com/Apurer/storefront-admin/internal/platform/temporal"
)

func main() {
	ctx := context.Background()
	const serviceName = "storefront-worker"

	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, cfg.ObservabilitySettings(serviceName))
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

	db, cleanupDB := platformpostgres.Open(ctx, cfg.PostgresDSN, logger)
	defer cleanupDB()
	if db == nil {
		logger.Error("worker needs POSTGRES_DSN to share the ledger with the API")
		os.Exit(1)
	}
	if err := migrations.Run(db); err != nil {
		logger.Error("failed to migrate schema", slog.String("error", err.Error()))
		os.Exit(1)
	}
	components, err := api.Assemble(ctx, cfg, instruments, db)
	if err != nil {
		logger.Error("failed to assemble services", slog.String("error", err.Error()))
		os.Exit(1)
	}
	activities := checkoutactivities.NewActivities(components.Purchases)

	temporalClient, err := platformtemporal.Dial(cfg.TemporalSettings(), instruments)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, checkoutworkflows.CheckoutTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(checkoutworkflows.CheckoutWorkflow, workflow.RegisterOptions{Name: checkoutworkflows.CheckoutWorkflowName})
	w.RegisterActivityWithOptions(activities.CommitCheckout, activity.RegisterOptions{Name: checkoutactivities.CommitCheckoutActivityName})

	logger.Info("worker listening", slog.String("taskQueue", checkoutworkflows.CheckoutTaskQueue))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
