package command

import (
	"context"
	"errors"
	"strings"

	"github.com/tair/cocktail-catalog/internal/catalog/domain"
)

// UpdateCocktailCommand carries the attributes to change. Nil fields are
// left as they are; the composition is never touched here.
type UpdateCocktailCommand struct {
	ID                uint
	Name              *string
	Description       *string
	Category          *string
	GlassType         *string
	PreparationMethod *string
	ImageURL          *string
	Alcoholic         *bool
}

// UpdateCocktailHandler handles cocktail attribute updates
type UpdateCocktailHandler struct {
	store  domain.Store
	events domain.EventPublisher
	cache  domain.CocktailCache
}

// NewUpdateCocktailHandler creates a new update cocktail handler
func NewUpdateCocktailHandler(store domain.Store, events domain.EventPublisher, cache domain.CocktailCache) *UpdateCocktailHandler {
	return &UpdateCocktailHandler{store: store, events: events, cache: cache}
}

// Handle executes the update cocktail command
func (h *UpdateCocktailHandler) Handle(ctx context.Context, cmd UpdateCocktailCommand) (*domain.Cocktail, error) {
	err := h.store.Atomic(ctx, func(tx domain.Store) error {
		cocktail, err := tx.Cocktails().FindByID(ctx, cmd.ID)
		if err != nil {
			return err
		}

		if cmd.Name != nil {
			name := strings.TrimSpace(*cmd.Name)
			if name == "" {
				return domain.InvalidInputf("cocktail name must not be blank")
			}
			if name != cocktail.Name {
				if _, err := tx.Cocktails().FindByName(ctx, name); err == nil {
					return domain.Conflictf("cocktail %q already exists", name)
				} else if !errors.Is(err, domain.ErrNotFound) {
					return err
				}
			}
			cocktail.Name = name
		}
		if cmd.Description != nil {
			cocktail.Description = *cmd.Description
		}
		if cmd.Category != nil {
			cocktail.Category = *cmd.Category
		}
		if cmd.GlassType != nil {
			cocktail.GlassType = *cmd.GlassType
		}
		if cmd.PreparationMethod != nil {
			cocktail.PreparationMethod = *cmd.PreparationMethod
		}
		if cmd.ImageURL != nil {
			cocktail.ImageURL = normalizeURL(cmd.ImageURL)
		}
		if cmd.Alcoholic != nil {
			cocktail.Alcoholic = *cmd.Alcoholic
		}

		return tx.Cocktails().Update(ctx, cocktail)
	})
	if err != nil {
		return nil, err
	}

	return reloadAfterChange(ctx, h.store, h.events, h.cache, cmd.ID)
}

// reloadAfterChange evicts the cached copy, emits cocktail.updated and
// returns the committed state.
func reloadAfterChange(ctx context.Context, store domain.Store, events domain.EventPublisher, cache domain.CocktailCache, id uint) (*domain.Cocktail, error) {
	evict(ctx, cache, id)

	cocktail, err := store.Cocktails().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	publish(ctx, events, domain.CatalogEvent{
		Type:       domain.EventCocktailUpdated,
		CocktailID: cocktail.ID,
		Name:       cocktail.Name,
	})
	return cocktail, nil
}
