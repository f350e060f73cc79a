package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"

	storefrontserver "github.com/Apurer/storefront-admin/go"

	"github.com/Apurer/storefront-admin/internal/platform/migrations"
	platformobservability "github.com/Apurer/storefront-admin/internal/platform/observability"
	platformpostgres "github.com/Apurer/storefront-admin/internal/platform/postgres"
	platformtemporal "github.com/Apurer/storefront-admin/internal/platform/temporal"
)

const serviceName = "storefront-api"

// Run boots the storefront HTTP API with observability, repositories, and
// workflows wired, and serves until ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	if err := cfg.RequireAdmin(); err != nil {
		return err
	}
	instruments, shutdown, err := platformobservability.Init(ctx, cfg.ObservabilitySettings(serviceName))
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

	db, cleanupDB := platformpostgres.Open(ctx, cfg.PostgresDSN, logger)
	defer cleanupDB()
	if err := migrations.Run(db); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	var opts []AssembleOption
	temporalClient, err := dialTemporal(cfg, instruments, db != nil)
	if err != nil {
		logger.Warn("Temporal workflows unavailable, running checkouts inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		opts = append(opts, WithTemporal(temporalClient))
		logger.Info("Temporal workflows enabled", slog.String("address", cfg.Temporal.Address))
	}

	components, err := Assemble(ctx, cfg, instruments, db, opts...)
	if err != nil {
		return err
	}

	router := gin.New()
	router.Use(gin.Recovery(), otelgin.Middleware(serviceName))
	router = storefrontserver.NewRouterWithGinEngine(router, components.Handlers)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           gzhttp.GzipHandler(router),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("storefront API listening", slog.String("addr", server.Addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("storefront API server exited", slog.String("addr", server.Addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("shutting down storefront API")
		return server.Shutdown(shutdownCtx)
	}
}

// dialTemporal connects only when the ledger is shared with the worker.
func dialTemporal(cfg Config, instruments *platformobservability.Instruments, sharedLedger bool) (client.Client, error) {
	if !sharedLedger {
		return nil, errors.New("durable checkouts need POSTGRES_DSN so the worker shares the ledger")
	}
	return platformtemporal.Dial(cfg.TemporalSettings(), instruments)
}

// ObservabilitySettings maps the config onto the platform observability settings.
func (c Config) ObservabilitySettings(service string) platformobservability.Settings {
	return platformobservability.Settings{
		ServiceName:  service,
		Environment:  c.Environment,
		LogLevel:     c.LogLevel,
		OTLPEndpoint: c.OTLPEndpoint,
		OTLPInsecure: c.OTLPInsecure,
	}
}

// TemporalSettings maps the config onto the Temporal client settings.
func (c Config) TemporalSettings() platformtemporal.Settings {
	return platformtemporal.Settings{
		Address:   c.Temporal.Address,
		Namespace: c.Temporal.Namespace,
		Disabled:  c.Temporal.Disabled,
	}
}
