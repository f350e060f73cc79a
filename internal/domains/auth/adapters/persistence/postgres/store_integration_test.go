//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Apurer/storefront-admin/internal/domains/auth/domain"
	"github.com/Apurer/storefront-admin/internal/domains/auth/ports"
	"github.com/Apurer/storefront-admin/internal/platform/migrations"
)

func setupAuthPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.Run(ctx, "postgres:15-alpine",
		tcpostgres.WithDatabase("storefront_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, migrations.Run(db))

	cleanup := func() {
		if sqlDB, _ := db.DB(); sqlDB != nil {
			_ = sqlDB.Close()
		}
		_ = pgContainer.Terminate(ctx)
	}
	return db, cleanup
}

func TestAdminRepository_Upsert(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db, cleanup := setupAuthPostgresContainer(t)
	defer cleanup()

	repo := NewAdminRepository(db)
	ctx := context.Background()

	first, err := domain.NewAdmin("admin", "one")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, first))
	second, err := domain.NewAdmin("admin", "two")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, second))

	stored, err := repo.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.True(t, stored.CheckPassword("two"))

	_, err = repo.GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ports.ErrAdminNotFound)
}

func TestSessionStore_SaveGetPurge(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db, cleanup := setupAuthPostgresContainer(t)
	defer cleanup()

	store := NewSessionStore(db)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, store.Save(ctx, domain.Session{Token: "expired", Username: "admin", ExpiresAt: now.Add(-time.Minute)}))
	require.NoError(t, store.Save(ctx, domain.Session{Token: "live", Username: "admin", ExpiresAt: now.Add(time.Hour)}))

	purged, err := store.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	_, err = store.Get(ctx, "expired")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)

	live, err := store.Get(ctx, "live")
	require.NoError(t, err)
	assert.Equal(t, "admin", live.Username)

	require.NoError(t, store.Delete(ctx, "live"))
	_, err = store.Get(ctx, "live")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)
}
