package main

import (
	"context"
	"log"
	"log/slog"
	"time"

	"github.com/Apurer/storefront-admin/internal/app/api"
	authpostgres "github.com/Apurer/storefront-admin/internal/domains/auth/adapters/persistence/postgres"
	platformobservability "github.com/Apurer/storefront-admin/internal/platform/observability"
	platformpostgres "github.com/Apurer/storefront-admin/internal/platform/postgres"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	logger := platformobservability.NewLogger(nil, cfg.LogLevel)
	db, cleanup := platformpostgres.Open(ctx, cfg.PostgresDSN, logger)
	defer cleanup()
	if db == nil {
		log.Fatal("POSTGRES_DSN not set or connection failed; cannot purge sessions")
	}

	purged, err := authpostgres.NewSessionStore(db).PurgeExpired(ctx)
	if err != nil {
		log.Fatalf("failed to purge sessions: %v", err)
	}
	logger.Info("session purge completed", slog.Int64("purged", purged))
}
