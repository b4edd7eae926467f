package command

import (
	"context"

	"github.com/tair/cocktail-catalog/internal/catalog/domain"
	"github.com/tair/cocktail-catalog/pkg/logger"
)

// DeleteCocktailCommand represents the command to delete a cocktail
type DeleteCocktailCommand struct {
	ID uint
}

// DeleteCocktailHandler handles cocktail deletion command
type DeleteCocktailHandler struct {
	store  domain.Store
	events domain.EventPublisher
	cache  domain.CocktailCache
}

// NewDeleteCocktailHandler creates a new delete cocktail handler
func NewDeleteCocktailHandler(store domain.Store, events domain.EventPublisher, cache domain.CocktailCache) *DeleteCocktailHandler {
	return &DeleteCocktailHandler{store: store, events: events, cache: cache}
}

// Handle deletes the cocktail together with its composition rows and every
// favorite pointing at it. Ingredients are kept.
func (h *DeleteCocktailHandler) Handle(ctx context.Context, cmd DeleteCocktailCommand) error {
	var (
		name      string
		favorites int64
	)
	err := h.store.Atomic(ctx, func(tx domain.Store) error {
		cocktail, err := tx.Cocktails().FindByID(ctx, cmd.ID)
		if err != nil {
			return err
		}
		name = cocktail.Name

		if favorites, err = tx.Favorites().DeleteByCocktail(ctx, cmd.ID); err != nil {
			return err
		}
		if err := tx.Compositions().DeleteByCocktail(ctx, cmd.ID); err != nil {
			return err
		}
		return tx.Cocktails().Delete(ctx, cmd.ID)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx).
		Uint("cocktail_id", cmd.ID).
		Int64("favorites_removed", favorites).
		Msg("Cocktail deleted")

	evict(ctx, h.cache, cmd.ID)
	publish(ctx, h.events, domain.CatalogEvent{
		Type:       domain.EventCocktailDeleted,
		CocktailID: cmd.ID,
		Name:       name,
	})
	return nil
}
