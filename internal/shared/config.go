package shared

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string `env:"APP_ENV" envDefault:"prod"`
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":8080"`
	MetricsAddr string `env:"METRICS_ADDR" envDefault:":9100"`
	MySQLDSN    string `env:"MYSQL_DSN" envDefault:"root:root@tcp(localhost:3306)/hotel_site?parseTime=true&charset=utf8mb4,utf8&loc=UTC"`
	RedisAddr   string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass   string `env:"REDIS_PASSWORD"`
	RedisDB     int    `env:"REDIS_DB" envDefault:"0"`

	CacheTTL       time.Duration `env:"CACHE_TTL" envDefault:"15m"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`
	// CookieSecure marks visitor cookies Secure; off for plain-HTTP dev.
	CookieSecure bool `env:"COOKIE_SECURE" envDefault:"true"`

	CatalogBase string   `env:"CATALOG_BASE_URL"`
	CatalogKey  string   `env:"CATALOG_API_KEY"`
	CatalogRPS  int      `env:"CATALOG_RPS" envDefault:"5"`
	SeedWorkers int      `env:"SEED_WORKERS" envDefault:"4"`
	SeedSlugs   []string `env:"SEED_SLUGS" envSeparator:","`
}

func Load() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if c.SeedWorkers <= 0 {
		c.SeedWorkers = 1
	}
	if len(c.SeedSlugs) > 0 && c.CatalogBase == "" {
		log.Warn().Msg("SEED_SLUGS set but CATALOG_BASE_URL is empty")
	}
	return c, nil
}

// IsDev reports whether the process runs with developer defaults.
func (c Config) IsDev() bool {
	return c.AppEnv == "dev" || c.AppEnv == "development"
}
