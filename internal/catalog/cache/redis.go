package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tair/cocktail-catalog/internal/catalog/domain"
	"github.com/tair/cocktail-catalog/pkg/logger"
)

const (
	keyPrefix  = "catalog:cocktail:"
	DefaultTTL = time.Minute
)

// NewRedisClient connects to redis and verifies the connection
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	logger.Logger.Info().Str("redis_addr", addr).Msg("Connected to Redis")
	return client, nil
}

// RedisCocktailCache stores cocktails as JSON under catalog:cocktail:<id>
type RedisCocktailCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisCocktailCache creates a cache; a non-positive ttl uses DefaultTTL
func NewRedisCocktailCache(client redis.Cmdable, ttl time.Duration) *RedisCocktailCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisCocktailCache{client: client, ttl: ttl}
}

func cocktailKey(id uint) string {
	return keyPrefix + strconv.FormatUint(uint64(id), 10)
}

// Get returns domain.ErrCacheMiss when the cocktail is not cached
func (c *RedisCocktailCache) Get(ctx context.Context, id uint) (*domain.Cocktail, error) {
	data, err := c.client.Get(ctx, cocktailKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cocktail %d from cache: %w", id, err)
	}

	var cocktail domain.Cocktail
	if err := json.Unmarshal(data, &cocktail); err != nil {
		// unreadable entries are dropped and treated as a miss
		c.client.Del(ctx, cocktailKey(id))
		return nil, domain.ErrCacheMiss
	}
	return &cocktail, nil
}

// Set caches the cocktail with the configured ttl
func (c *RedisCocktailCache) Set(ctx context.Context, cocktail *domain.Cocktail) error {
	data, err := json.Marshal(cocktail)
	if err != nil {
		return fmt.Errorf("failed to encode cocktail %d: %w", cocktail.ID, err)
	}
	if err := c.client.Set(ctx, cocktailKey(cocktail.ID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache cocktail %d: %w", cocktail.ID, err)
	}
	return nil
}

// Invalidate removes the given cocktails from the cache
func (c *RedisCocktailCache) Invalidate(ctx context.Context, ids ...uint) error {
	if len(ids) == 0 {
		return nil
	}
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, cocktailKey(id))
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cocktails: %w", err)
	}

	logger.Debug(ctx).Int("count", len(keys)).Msg("Cocktail cache invalidated")
	return nil
}
