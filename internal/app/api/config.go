package api

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config carries environment-driven settings for the storefront processes.
type Config struct {
	Port         string        `env:"PORT" envDefault:"8080"`
	Environment  string        `env:"ENVIRONMENT" envDefault:"local"`
	LogLevel     string        `env:"LOG_LEVEL" envDefault:"info"`
	PostgresDSN  string        `env:"POSTGRES_DSN"`
	CatalogFile  string        `env:"CATALOG_FILE"`
	SessionTTL   time.Duration `env:"SESSION_TTL" envDefault:"8h"`
	OTLPEndpoint string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPInsecure bool          `env:"OTEL_EXPORTER_OTLP_INSECURE"`

	Temporal TemporalConfig `envPrefix:"TEMPORAL_"`
	Admin    AdminConfig    `envPrefix:"ADMIN_"`
}

// TemporalConfig locates the Temporal frontend used for durable checkouts.
type TemporalConfig struct {
	Address   string `env:"ADDRESS"`
	Namespace string `env:"NAMESPACE"`
	Disabled  bool   `env:"DISABLED"`
}

// AdminConfig seeds the single administrator account. A bcrypt hash wins
// over a plaintext password when both are set.
type AdminConfig struct {
	Username     string `env:"USERNAME" envDefault:"admin"`
	Password     string `env:"PASSWORD"`
	PasswordHash string `env:"PASSWORD_HASH"`
}

var errNoAdminCredential = errors.New("ADMIN_PASSWORD or ADMIN_PASSWORD_HASH must be set")

// LoadConfig reads the process environment, applies defaults, and validates.
func LoadConfig() (Config, error) {
	return loadConfig(env.Options{})
}

func loadConfig(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg.PostgresDSN = strings.TrimSpace(cfg.PostgresDSN)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the constraints env tags cannot express.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Port) == "" {
		return errors.New("PORT must not be empty")
	}
	if c.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	if strings.TrimSpace(c.Admin.Username) == "" {
		return errors.New("ADMIN_USERNAME must not be empty")
	}
	return nil
}

// RequireAdmin fails unless an admin credential is configured. Only the API
// process needs one.
func (c Config) RequireAdmin() error {
	if !c.Admin.configured() {
		return errNoAdminCredential
	}
	return nil
}

func (a AdminConfig) configured() bool {
	return a.Password != "" || strings.TrimSpace(a.PasswordHash) != ""
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}
