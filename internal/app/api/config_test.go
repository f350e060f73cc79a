package api

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig(env.Options{Environment: map[string]string{
		"ADMIN_PASSWORD": "secret",
	}})
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, ":8080", cfg.Addr())
	require.Equal(t, "local", cfg.Environment)
	require.Equal(t, 8*time.Hour, cfg.SessionTTL)
	require.Equal(t, "admin", cfg.Admin.Username)
	require.Empty(t, cfg.PostgresDSN)
	require.False(t, cfg.Temporal.Disabled)
}

func TestLoadConfig_ReadsNestedPrefixes(t *testing.T) {
	cfg, err := loadConfig(env.Options{Environment: map[string]string{
		"PORT":                "9090",
		"POSTGRES_DSN":        "  postgres://store@db/store  ",
		"SESSION_TTL":         "30m",
		"TEMPORAL_ADDRESS":    "temporal:7233",
		"TEMPORAL_NAMESPACE":  "storefront",
		"TEMPORAL_DISABLED":   "true",
		"ADMIN_USERNAME":      "root",
		"ADMIN_PASSWORD_HASH": "$2a$10$abcdefghijklmnopqrstuv",
		"CATALOG_FILE":        "/etc/storefront/catalog.yaml",
	}})
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.Addr())
	require.Equal(t, "postgres://store@db/store", cfg.PostgresDSN)
	require.Equal(t, 30*time.Minute, cfg.SessionTTL)
	require.Equal(t, "temporal:7233", cfg.Temporal.Address)
	require.Equal(t, "storefront", cfg.Temporal.Namespace)
	require.True(t, cfg.Temporal.Disabled)
	require.Equal(t, "root", cfg.Admin.Username)
	require.Equal(t, "/etc/storefront/catalog.yaml", cfg.CatalogFile)
}

func TestConfig_RequireAdmin(t *testing.T) {
	cfg, err := loadConfig(env.Options{Environment: map[string]string{}})
	require.NoError(t, err)
	require.ErrorIs(t, cfg.RequireAdmin(), errNoAdminCredential)

	cfg.Admin.PasswordHash = "$2a$10$abcdefghijklmnopqrstuv"
	require.NoError(t, cfg.RequireAdmin())
}

func TestLoadConfig_RejectsBadDuration(t *testing.T) {
	_, err := loadConfig(env.Options{Environment: map[string]string{
		"ADMIN_PASSWORD": "secret",
		"SESSION_TTL":    "soon",
	}})
	require.Error(t, err)
}
