package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", "/home/geo")
	t.Setenv("GEOHASH_MARKET_TZ", "UTC")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, ":9090", cfg.GRPCAddr)
	assert.Equal(t, SourceCrox, cfg.Resolver)
	assert.Equal(t, CacheSQLite, cfg.Cache)
	assert.Equal(t, "/home/geo/.djia", cfg.CacheDir)
	assert.Equal(t, 10*time.Second, cfg.DJIATimeout)
	assert.Equal(t, 5, cfg.BreakerFailures)
	assert.Equal(t, "host=localhost port=5432 user=postgres password=postgres dbname=geohash sslmode=disable",
		cfg.PostgresConnString())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("GEOHASH_MARKET_TZ", "UTC")
	t.Setenv("GEOHASH_RESOLVER", "postgres")
	t.Setenv("GEOHASH_CACHE", "redis")
	t.Setenv("GEOHASH_REDIS_DB", "3")
	t.Setenv("GEOHASH_CACHE_TTL", "1h")
	t.Setenv("DB_CONN_STR", "postgres://geo@db/geohash")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, SourcePostgres, cfg.Resolver)
	assert.Equal(t, CacheRedis, cfg.Cache)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
	assert.Equal(t, "postgres://geo@db/geohash", cfg.PostgresConnString())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		key    string
		value  string
		errMsg string
	}{
		{name: "Unknown Resolver", key: "GEOHASH_RESOLVER", value: "yahoo", errMsg: "GEOHASH_RESOLVER"},
		{name: "Unknown Cache", key: "GEOHASH_CACHE", value: "memcached", errMsg: "GEOHASH_CACHE"},
		{name: "Zero Breaker Failures", key: "GEOHASH_BREAKER_FAILURES", value: "0", errMsg: "GEOHASH_BREAKER_FAILURES"},
		{name: "Bad Duration", key: "GEOHASH_DJIA_TIMEOUT", value: "soon", errMsg: "parse env"},
		{name: "Bad Timezone", key: "GEOHASH_MARKET_TZ", value: "Mars/Olympus", errMsg: "GEOHASH_MARKET_TZ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GEOHASH_MARKET_TZ", "UTC")
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
