package domain

import (
	"context"
	"errors"
	"time"
)

// Store groups the catalog repositories behind one unit of work.
type Store interface {
	Cocktails() CocktailRepository
	Compositions() CompositionRepository
	Ingredients() IngredientRepository
	Favorites() FavoriteRepository
	Colors() ColorRepository

	// Atomic runs fn in a transaction; nested calls use savepoints. The
	// Store passed to fn must be used for every call inside it.
	Atomic(ctx context.Context, fn func(tx Store) error) error
	Ping(ctx context.Context) error
}

// Catalog event types.
const (
	EventCocktailCreated   = "cocktail.created"
	EventCocktailUpdated   = "cocktail.updated"
	EventCocktailDeleted   = "cocktail.deleted"
	EventIngredientCreated = "ingredient.created"
	EventIngredientDeleted = "ingredient.deleted"
	EventFavoriteAdded     = "favorite.added"
	EventFavoriteRemoved   = "favorite.removed"
	EventColorDeleted      = "color.deleted"
)

// CatalogEvent is emitted after a write commits.
type CatalogEvent struct {
	Type         string    `json:"type"`
	CocktailID   uint      `json:"cocktail_id,omitempty"`
	IngredientID uint      `json:"ingredient_id,omitempty"`
	ColorID      uint      `json:"color_id,omitempty"`
	UserID       string    `json:"user_id,omitempty"`
	Name         string    `json:"name,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// EventPublisher delivers catalog events to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, event CatalogEvent) error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, CatalogEvent) error { return nil }

// ErrCacheMiss is returned by CocktailCache.Get when nothing is cached.
var ErrCacheMiss = errors.New("cache miss")

// CocktailCache is a read-through cache for single cocktails.
type CocktailCache interface {
	Get(ctx context.Context, id uint) (*Cocktail, error)
	Set(ctx context.Context, cocktail *Cocktail) error
	Invalidate(ctx context.Context, ids ...uint) error
}

// NopCache never stores anything.
type NopCache struct{}

func (NopCache) Get(context.Context, uint) (*Cocktail, error) { return nil, ErrCacheMiss }
func (NopCache) Set(context.Context, *Cocktail) error { return nil }
func (NopCache) Invalidate(context.Context, ...uint) error { return nil }
