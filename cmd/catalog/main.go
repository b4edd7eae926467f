package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tair/cocktail-catalog/internal/catalog"
	"github.com/tair/cocktail-catalog/internal/catalog/cache"
	delivery "github.com/tair/cocktail-catalog/internal/catalog/delivery/http"
	"github.com/tair/cocktail-catalog/internal/catalog/domain"
	"github.com/tair/cocktail-catalog/internal/catalog/repository"
	"github.com/tair/cocktail-catalog/internal/config"
	"github.com/tair/cocktail-catalog/kafka"
	"github.com/tair/cocktail-catalog/pkg/database"
	"github.com/tair/cocktail-catalog/pkg/logger"
	"github.com/tair/cocktail-catalog/pkg/tracing"
)

const version = "1.0.0"

func main() {
	cfg := config.LoadConfig()

	// Initialize logger
	logger.Init(cfg.ServiceName, cfg.IsDevelopment())
	logger.SetLevel(cfg.LogLevel)

	logger.Logger.Info().
		Str("service", cfg.ServiceName).
		Str("environment", cfg.Environment).
		Str("log_level", cfg.LogLevel).
		Msg("Starting cocktail catalog service")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize tracer
	tp, err := tracing.InitTracer(cfg.ServiceName, version, cfg.JaegerEndpoint)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(shutdownCtx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	// Connect to database
	db, err := database.NewGormConnection(cfg.Database)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	// Run migrations
	if err := repository.AutoMigrate(db); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	logger.Logger.Info().Str("driver", cfg.Database.Driver).Msg("Database initialized successfully")

	cocktailCache := newCache(ctx, cfg)
	publisher := newPublisher(cfg)
	if closer, ok := publisher.(*kafka.Publisher); ok {
		defer closer.Close()
	}
	startConsumer(ctx, cfg, cocktailCache)

	// Initialize handler with Wire DI
	catalogHandler, err := catalog.InitializeHTTPHandler(db, publisher, cocktailCache, prometheus.DefaultRegisterer)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize handler")
	}

	server := newHTTPServer(cfg, catalogHandler)
	go func() {
		logger.Logger.Info().
			Str("port", cfg.HTTPPort).
			Str("metrics_endpoint", "/metrics").
			Msg("HTTP server started")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	<-ctx.Done()
	logger.Logger.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error().Err(err).Msg("Server forced to shutdown")
	}
}

// newCache returns the Redis cocktail cache, or a no-op cache when Redis
// is not configured or unreachable
func newCache(ctx context.Context, cfg *config.Config) domain.CocktailCache {
	if cfg.RedisAddr == "" {
		logger.Logger.Info().Msg("Redis not configured, cocktail cache disabled")
		return domain.NopCache{}
	}

	client, err := cache.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.Logger.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("Redis unavailable, cocktail cache disabled")
		return domain.NopCache{}
	}

	logger.Logger.Info().Str("addr", cfg.RedisAddr).Dur("ttl", cfg.CacheTTL).Msg("Redis cocktail cache enabled")
	return cache.NewRedisCocktailCache(client, cfg.CacheTTL)
}

// newPublisher returns the Kafka event publisher, or a no-op publisher
func newPublisher(cfg *config.Config) domain.EventPublisher {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Logger.Info().Msg("Kafka not configured, catalog events disabled")
		return domain.NopPublisher{}
	}

	publisher, err := kafka.NewPublisher(cfg.KafkaBrokers)
	if err != nil {
		logger.Logger.Warn().Err(err).Strs("brokers", cfg.KafkaBrokers).Msg("Kafka producer unavailable, catalog events disabled")
		return domain.NopPublisher{}
	}
	return publisher
}

// startConsumer keeps the cache of every replica in step with catalog changes
func startConsumer(ctx context.Context, cfg *config.Config, cocktailCache domain.CocktailCache) {
	if len(cfg.KafkaBrokers) == 0 {
		return
	}
	if _, ok := cocktailCache.(domain.NopCache); ok {
		return
	}

	consumer, err := kafka.NewConsumer(cfg.KafkaBrokers, cfg.KafkaGroupID, []string{kafka.TopicCatalogEvents})
	if err != nil {
		logger.Logger.Warn().Err(err).Msg("Kafka consumer unavailable, cache invalidation limited to this instance")
		return
	}
	consumer.RegisterCacheInvalidation(cocktailCache)

	if err := consumer.Start(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to start Kafka consumer")
		consumer.Close()
		return
	}

	go func() {
		<-ctx.Done()
		if err := consumer.Close(); err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to close Kafka consumer")
		}
	}()
}

func newHTTPServer(cfg *config.Config, catalogHandler *delivery.CatalogHandler) *http.Server {
	router := mux.NewRouter()

	middlewareConfig := delivery.DefaultMiddlewareConfig(cfg.RequestTimeout)
	middlewareConfig.TrustGatewayHeaders = cfg.TrustGatewayHeaders
	delivery.RegisterMiddlewares(router, middlewareConfig)

	catalogHandler.RegisterRoutes(router)
	catalogHandler.RegisterHealthCheck(router)

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	return &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           delivery.SetupCORS(middlewareConfig)(router),
		ReadHeaderTimeout: 10 * time.Second,
	}
}
