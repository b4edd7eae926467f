package cache

import (
	"context"
	"errors"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/cocktail-catalog/internal/catalog/domain"
)

// memoryHook answers GET, SET and DEL from a map without touching the network.
type memoryHook struct {
	mu   sync.Mutex
	data map[string]string
	ttls map[string]time.Duration
}

func newMemoryClient(t *testing.T) (*redis.Client, *memoryHook) {
	t.Helper()
	hook := &memoryHook{data: map[string]string{}, ttls: map[string]time.Duration{}}
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	client.AddHook(hook)
	t.Cleanup(func() { client.Close() })
	return client, hook
}

func (h *memoryHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return nil, errors.New("memory hook does not dial")
	}
}

func (h *memoryHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func (h *memoryHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		h.mu.Lock()
		defer h.mu.Unlock()

		args := cmd.Args()
		switch c := cmd.(type) {
		case *redis.StringCmd:
			value, ok := h.data[args[1].(string)]
			if !ok {
				c.SetErr(redis.Nil)
				return redis.Nil
			}
			c.SetVal(value)
		case *redis.StatusCmd:
			key := args[1].(string)
			switch v := args[2].(type) {
			case []byte:
				h.data[key] = string(v)
			case string:
				h.data[key] = v
			}
			if len(args) == 5 && strings.EqualFold(args[3].(string), "ex") {
				h.ttls[key] = time.Duration(args[4].(int64)) * time.Second
			}
			c.SetVal("OK")
		case *redis.IntCmd:
			var removed int64
			for _, arg := range args[1:] {
				key := arg.(string)
				if _, ok := h.data[key]; ok {
					delete(h.data, key)
					removed++
				}
			}
			c.SetVal(removed)
		}
		return nil
	}
}

func TestRedisCocktailCacheRoundTrip(t *testing.T) {
	client, hook := newMemoryClient(t)
	cache := NewRedisCocktailCache(client, 0)
	ctx := context.Background()

	_, err := cache.Get(ctx, 3)
	assert.True(t, errors.Is(err, domain.ErrCacheMiss))

	cocktail := &domain.Cocktail{
		ID:   3,
		Name: "Margarita",
		Ingredients: []domain.CompositionEntry{
			{ID: 10, Ingredient: domain.Ingredient{ID: 4, Name: "Tequila"}, Quantity: "5 cl"},
		},
	}
	require.NoError(t, cache.Set(ctx, cocktail))
	assert.Equal(t, DefaultTTL, hook.ttls["catalog:cocktail:3"])

	cached, err := cache.Get(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "Margarita", cached.Name)
	require.Len(t, cached.Ingredients, 1)
	assert.Equal(t, "Tequila", cached.Ingredients[0].Ingredient.Name)
	assert.Equal(t, "5 cl", cached.Ingredients[0].Quantity)

	require.NoError(t, cache.Invalidate(ctx, 3, 99))
	_, err = cache.Get(ctx, 3)
	assert.True(t, errors.Is(err, domain.ErrCacheMiss))

	assert.NoError(t, cache.Invalidate(ctx))
}

func TestRedisCocktailCacheDropsCorruptEntries(t *testing.T) {
	client, hook := newMemoryClient(t)
	cache := NewRedisCocktailCache(client, time.Minute)
	ctx := context.Background()

	hook.data["catalog:cocktail:8"] = "{not json"

	_, err := cache.Get(ctx, 8)
	assert.True(t, errors.Is(err, domain.ErrCacheMiss))
	_, stillThere := hook.data["catalog:cocktail:8"]
	assert.False(t, stillThere)
}

func TestNewRedisClientFailsWhenUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := NewRedisClient(ctx, "127.0.0.1:1", "", 0)
	assert.Error(t, err)
}
