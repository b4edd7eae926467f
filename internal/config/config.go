package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/tair/cocktail-catalog/pkg/database"
)

// Config holds the catalog service configuration
type Config struct {
	HTTPPort       string
	Environment    string
	LogLevel       string
	ServiceName    string
	JaegerEndpoint string
	RequestTimeout time.Duration

	// TrustGatewayHeaders enables X-User-ID / X-User-Roles as identity.
	// Only set it behind a gateway that strips these headers from clients.
	TrustGatewayHeaders bool

	Database database.Config

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	KafkaBrokers []string
	KafkaGroupID string
}

// IsDevelopment reports whether console logging should be used
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// LoadConfig loads the configuration from environment variables. Empty
// REDIS_ADDR, KAFKA_BROKERS or JAEGER_ENDPOINT disable that integration.
func LoadConfig() *Config {
	return &Config{
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		ServiceName:    getEnv("OTEL_SERVICE_NAME", "cocktail-catalog"),
		JaegerEndpoint: os.Getenv("JAEGER_ENDPOINT"),
		RequestTimeout: getDuration("REQUEST_TIMEOUT", 30*time.Second),

		TrustGatewayHeaders: getBool("TRUST_GATEWAY_HEADERS", false),

		Database: database.Config{
			Driver:   getEnv("DB_DRIVER", database.DriverPostgres),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "cocktaildb"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			Path:     getEnv("DB_PATH", "cocktails.db"),
		},

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getInt("REDIS_DB", 0),
		CacheTTL:      getDuration("CACHE_TTL", time.Minute),

		KafkaBrokers: splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaGroupID: getEnv("KAFKA_GROUP_ID", "cocktail-catalog"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return b
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil && d > 0 {
		return d
	}
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
