package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tair/cocktail-catalog/pkg/database"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"HTTP_PORT", "DB_DRIVER", "REDIS_ADDR", "KAFKA_BROKERS", "CACHE_TTL", "REQUEST_TIMEOUT", "ENVIRONMENT", "TRUST_GATEWAY_HEADERS"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, database.DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.False(t, cfg.TrustGatewayHeaders)
	assert.Empty(t, cfg.RedisAddr)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", "/tmp/catalog.db")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("CACHE_TTL", "90s")
	t.Setenv("REQUEST_TIMEOUT", "bogus")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("TRUST_GATEWAY_HEADERS", "true")

	cfg := LoadConfig()
	assert.Equal(t, "9000", cfg.HTTPPort)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, database.DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "/tmp/catalog.db", cfg.Database.Path)
	assert.Equal(t, "redis:6379", cfg.RedisAddr)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, 90*time.Second, cfg.CacheTTL)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.TrustGatewayHeaders)
}

func TestTrustGatewayHeadersRejectsGarbage(t *testing.T) {
	t.Setenv("TRUST_GATEWAY_HEADERS", "sure")
	assert.False(t, LoadConfig().TrustGatewayHeaders)
}
