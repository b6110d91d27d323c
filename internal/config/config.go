// Package config holds the catalog service configuration.
package config

import (
	"fmt"

	pkgconfig "github.com/jaumet/avook-catalog/pkg/config"
	"github.com/jaumet/avook-catalog/pkg/database"
)

// Config is read from the environment at startup.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"CATALOG_HTTP_PORT" envDefault:"8020"`

	// Catalog source selection: file, remote, or postgres.
	CatalogSource string `env:"CATALOG_SOURCE" envDefault:"file"`
	// CatalogFile is the embedded payload path (file mode).
	CatalogFile string `env:"CATALOG_FILE" envDefault:"./data/catalog.json"`
	// CatalogURL is the backend catalog endpoint (remote mode).
	CatalogURL string `env:"CATALOG_URL" envDefault:"http://localhost:8000/catalog/json/"`

	// Postgres (postgres mode)
	PostgresHost     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort     int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser     string `env:"POSTGRES_USER" envDefault:"avook"`
	PostgresPassword string `env:"POSTGRES_PASSWORD" envDefault:"avook_secret"`
	PostgresDB       string `env:"POSTGRES_DB" envDefault:"avook"`
	PostgresSSLMode  string `env:"POSTGRES_SSLMODE" envDefault:"disable"`

	// Redis payment-link cache; empty host disables it.
	RedisHost     string `env:"REDIS_HOST" envDefault:""`
	RedisPort     int    `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// Kafka; empty broker list disables the reload consumer and the
	// checkout event producer.
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"" envSeparator:","`

	// Checkout provider: mock or stripe.
	CheckoutProvider string `env:"CHECKOUT_PROVIDER" envDefault:"mock"`
	StripeAPIKey     string `env:"STRIPE_API_KEY" envDefault:""`
	StripeSuccessURL string `env:"STRIPE_SUCCESS_URL" envDefault:"http://localhost:8000/checkout/success/"`
	StripeCancelURL  string `env:"STRIPE_CANCEL_URL" envDefault:"http://localhost:8000/checkout/cancel/"`

	// Chat backend endpoint; empty disables the chat proxy.
	ChatURL string `env:"CHAT_URL" envDefault:""`

	// TranslationsDir holds one <lang>.json catalog per language.
	TranslationsDir string `env:"TRANSLATIONS_DIR" envDefault:"./data/translations"`
}

// Load reads and validates the configuration.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load catalog config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	switch c.CatalogSource {
	case "file", "remote", "postgres":
	default:
		return fmt.Errorf("invalid catalog source %q (want file, remote, or postgres)", c.CatalogSource)
	}
	switch c.CheckoutProvider {
	case "mock", "stripe":
	default:
		return fmt.Errorf("invalid checkout provider %q (want mock or stripe)", c.CheckoutProvider)
	}
	if c.CheckoutProvider == "stripe" && c.StripeAPIKey == "" {
		return fmt.Errorf("stripe checkout provider requires STRIPE_API_KEY")
	}
	return nil
}

// Postgres renders the pool configuration.
func (c *Config) Postgres() database.PostgresConfig {
	pg := database.DefaultPostgresConfig()
	pg.Host = c.PostgresHost
	pg.Port = c.PostgresPort
	pg.User = c.PostgresUser
	pg.Password = c.PostgresPassword
	pg.DBName = c.PostgresDB
	pg.SSLMode = c.PostgresSSLMode
	return pg
}

// Redis renders the cache configuration.
func (c *Config) Redis() database.RedisConfig {
	return database.RedisConfig{
		Host:     c.RedisHost,
		Port:     c.RedisPort,
		Password: c.RedisPassword,
		DB:       c.RedisDB,
	}
}
