package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/marves/pcpartstore/pkg/config"
	"github.com/marves/pcpartstore/pkg/database"
)

// Catalog provider backends.
const (
	ProviderMemory   = "memory"
	ProviderPostgres = "postgres"
	ProviderHTTP     = "http"
)

// Config holds all configuration for the storefront server.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"HTTP_PORT" envDefault:"8080"`

	// Catalog provider: memory, postgres or http.
	CatalogProvider string `env:"CATALOG_PROVIDER" envDefault:"memory"`

	// Upstream products API, used when CatalogProvider is "http".
	ProductsAPIURL string `env:"PRODUCTS_API_URL" envDefault:"http://localhost:8081"`

	// Postgres, used when CatalogProvider is "postgres".
	PostgresHost string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser string `env:"POSTGRES_USER" envDefault:"pcpartstore"`
	PostgresPass string `env:"POSTGRES_PASSWORD" envDefault:"pcpartstore_secret"`
	PostgresDB   string `env:"POSTGRES_DB" envDefault:"pcpartstore"`
	PostgresSSL  string `env:"POSTGRES_SSLMODE" envDefault:"disable"`

	// Redis, backing cart persistence.
	RedisHost string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort int    `env:"REDIS_PORT" envDefault:"6379"`
	RedisPass string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Cart TTL in hours (default: 7 days).
	CartTTLHours int `env:"CART_TTL_HOURS" envDefault:"168"`

	// Kafka. An empty broker list disables event publishing.
	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:","`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	switch c.CatalogProvider {
	case ProviderMemory, ProviderPostgres, ProviderHTTP:
	default:
		return fmt.Errorf("invalid catalog provider: %q", c.CatalogProvider)
	}
	if c.CartTTLHours < 1 {
		return fmt.Errorf("invalid cart TTL: %d hours", c.CartTTLHours)
	}
	return nil
}

// Postgres builds the connection pool configuration.
func (c *Config) Postgres() database.PostgresConfig {
	pg := database.DefaultPostgresConfig()
	pg.Host = c.PostgresHost
	pg.Port = c.PostgresPort
	pg.User = c.PostgresUser
	pg.Password = c.PostgresPass
	pg.DBName = c.PostgresDB
	pg.SSLMode = c.PostgresSSL
	return pg
}

// Redis builds the Redis client configuration.
func (c *Config) Redis() database.RedisConfig {
	return database.RedisConfig{
		Host:     c.RedisHost,
		Port:     c.RedisPort,
		Password: c.RedisPass,
		DB:       c.RedisDB,
	}
}

// CartTTL returns the cart retention period.
func (c *Config) CartTTL() time.Duration {
	return time.Duration(c.CartTTLHours) * time.Hour
}
