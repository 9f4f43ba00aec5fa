package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Resolver sources
const (
	SourceCrox     = "crox"
	SourcePostgres = "postgres"
)

// Cache backends
const (
	CacheNone   = "none"
	CacheSQLite = "sqlite"
	CacheRedis  = "redis"
)

// Config holds the runtime configuration, loaded from environment variables
type Config struct {
	HTTPAddr       string        `env:"GEOHASH_HTTP_ADDR" envDefault:":8080"`
	GRPCAddr       string        `env:"GEOHASH_GRPC_ADDR" envDefault:":9090"`
	LogLevel       string        `env:"GEOHASH_LOG_LEVEL" envDefault:"info"`
	RequestTimeout time.Duration `env:"GEOHASH_REQUEST_TIMEOUT" envDefault:"15s"`

	// Market value source
	Resolver        string        `env:"GEOHASH_RESOLVER" envDefault:"crox"`
	DJIAURL         string        `env:"GEOHASH_DJIA_URL" envDefault:"http://geo.crox.net/djia"`
	DJIATimeout     time.Duration `env:"GEOHASH_DJIA_TIMEOUT" envDefault:"10s"`
	MarketTimezone  string        `env:"GEOHASH_MARKET_TZ" envDefault:"America/New_York"`
	BreakerFailures int           `env:"GEOHASH_BREAKER_FAILURES" envDefault:"5"`
	BreakerReset    time.Duration `env:"GEOHASH_BREAKER_RESET" envDefault:"30s"`

	// Resolver cache. The cache directory must be writable.
	Cache         string        `env:"GEOHASH_CACHE" envDefault:"sqlite"`
	CacheDir      string        `env:"GEOHASH_CACHE_DIR,expand" envDefault:"${HOME}/.djia"`
	CacheTTL      time.Duration `env:"GEOHASH_CACHE_TTL" envDefault:"720h"`
	RedisAddr     string        `env:"GEOHASH_REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string        `env:"GEOHASH_REDIS_PASSWORD"`
	RedisDB       int           `env:"GEOHASH_REDIS_DB" envDefault:"0"`

	// Postgres source. DB_CONN_STR wins over the individual variables.
	DBConnStr  string `env:"DB_CONN_STR"`
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD" envDefault:"postgres"`
	DBName     string `env:"DB_NAME" envDefault:"geohash"`
}

// Load parses the environment and validates the result
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks enumerated settings and their dependencies
func (c *Config) Validate() error {
	switch c.Resolver {
	case SourceCrox, SourcePostgres:
	default:
		return fmt.Errorf("GEOHASH_RESOLVER must be %q or %q, got %q", SourceCrox, SourcePostgres, c.Resolver)
	}

	switch c.Cache {
	case CacheNone, CacheRedis:
	case CacheSQLite:
		if c.CacheDir == "" {
			return fmt.Errorf("GEOHASH_CACHE_DIR is required for the sqlite cache")
		}
	default:
		return fmt.Errorf("GEOHASH_CACHE must be %q, %q or %q, got %q", CacheNone, CacheSQLite, CacheRedis, c.Cache)
	}

	if c.BreakerFailures <= 0 {
		return fmt.Errorf("GEOHASH_BREAKER_FAILURES must be positive")
	}
	if c.DJIATimeout <= 0 || c.RequestTimeout <= 0 {
		return fmt.Errorf("timeouts must be positive")
	}

	if _, err := time.LoadLocation(c.MarketTimezone); err != nil {
		return fmt.Errorf("GEOHASH_MARKET_TZ: %w", err)
	}

	return nil
}

// PostgresConnString builds the lib/pq connection string
func (c *Config) PostgresConnString() string {
	if c.DBConnStr != "" {
		return c.DBConnStr
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
}
