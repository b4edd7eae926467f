package query

import (
	"context"
	"errors"
	"strconv"

	"golang.org/x/sync/singleflight"

	"github.com/tair/cocktail-catalog/internal/catalog/domain"
	"github.com/tair/cocktail-catalog/pkg/logger"
)

// GetCocktailQuery represents the query to get a cocktail by ID
type GetCocktailQuery struct {
	ID uint
}

// GetCocktailHandler reads single cocktails through the cache. Concurrent
// misses for the same id share one database load.
type GetCocktailHandler struct {
	store domain.Store
	cache domain.CocktailCache
	group singleflight.Group
}

// NewGetCocktailHandler creates a new get cocktail handler
func NewGetCocktailHandler(store domain.Store, cache domain.CocktailCache) *GetCocktailHandler {
	return &GetCocktailHandler{store: store, cache: cache}
}

// Handle executes the get cocktail query
func (h *GetCocktailHandler) Handle(ctx context.Context, query GetCocktailQuery) (*domain.Cocktail, error) {
	if query.ID == 0 {
		return nil, domain.InvalidInputf("invalid cocktail id")
	}

	cached, err := h.cache.Get(ctx, query.ID)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, domain.ErrCacheMiss) {
		logger.Warn(ctx).Err(err).Uint("cocktail_id", query.ID).Msg("Cocktail cache read failed")
	}

	// the load is shared, so it must outlive the caller that started it
	loadCtx := context.WithoutCancel(ctx)
	v, err, _ := h.group.Do(strconv.FormatUint(uint64(query.ID), 10), func() (interface{}, error) {
		cocktail, err := h.store.Cocktails().FindByID(loadCtx, query.ID)
		if err != nil {
			return nil, err
		}
		if err := h.cache.Set(loadCtx, cocktail); err != nil {
			logger.Warn(ctx).Err(err).Uint("cocktail_id", query.ID).Msg("Cocktail cache write failed")
		}
		return cocktail, nil
	})
	if err != nil {
		return nil, err
	}

	// callers sharing a load must not share the value
	cocktail := *v.(*domain.Cocktail)
	cocktail.Ingredients = append([]domain.CompositionEntry(nil), cocktail.Ingredients...)
	return &cocktail, nil
}
