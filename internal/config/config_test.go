package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_SQLite(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	t.Setenv("APP_PORT", "8080")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DB_PATH", "/tmp/x.db")
	t.Setenv("EVENTS_ENABLED", "yes")
	t.Setenv("RABBITMQ_URL", "amqp://broker/")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, "/tmp/x.db", cfg.DB.Path)
	assert.Equal(t, "venue-directory", cfg.ServiceName)
	assert.True(t, cfg.Events.Enabled)
	assert.Equal(t, "amqp://broker/", cfg.Events.URL)
	assert.Equal(t, "directory.events", cfg.Events.Exchange)
	assert.Equal(t, "directory.audit", cfg.Events.AuditQueue)
}

func TestLoad_MySQLMissingVars(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("APP_PORT", "8080")
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("DB_USER", "root")
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_PORT", "3306")
	t.Setenv("DB_NAME", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "APP_ENV")
	assert.Contains(t, err.Error(), "DB_HOST")
	assert.Contains(t, err.Error(), "DB_NAME")
	assert.NotContains(t, err.Error(), "DB_USER")
}

func TestLoad_UnknownDriver(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	t.Setenv("APP_PORT", "8080")
	t.Setenv("DB_DRIVER", "postgres")
	_, err := Load()
	assert.ErrorContains(t, err, "postgres")
}

func TestLoadRateLimitConfig_Clamps(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_TOKENS", "-3")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	c := LoadRateLimitConfig()
	assert.Equal(t, 1, c.Capacity)
	assert.Equal(t, 1, c.RefillTokens)
	assert.Equal(t, 10*time.Second, c.TTL)
	assert.Equal(t, "ip_route", c.KeyStrategy)
}

func TestLoadCacheConfig(t *testing.T) {
	t.Setenv("CACHE_METHODS", "get, head")
	t.Setenv("CACHE_TTL", "1m")
	t.Setenv("CACHE_INVALIDATE_ON_WRITE", "off")

	c := LoadCacheConfig()
	assert.Equal(t, map[string]bool{"GET": true, "HEAD": true}, c.Methods)
	assert.Equal(t, time.Minute, c.TTL)
	assert.False(t, c.InvalidateOnWrite)
}

func TestRedisConfig(t *testing.T) {
	t.Setenv("REDIS_ENABLED", "false")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "6380")
	cfg := LoadRedisConfig()
	assert.Equal(t, "cache:6380", cfg.Addr)

	client, err := NewRedisClient(context.Background(), cfg)
	assert.NoError(t, err)
	assert.Nil(t, client)
}
