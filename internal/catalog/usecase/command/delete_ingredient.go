package command

import (
	"context"

	"github.com/tair/cocktail-catalog/internal/catalog/domain"
)

// DeleteIngredientCommand represents the command to delete an ingredient
type DeleteIngredientCommand struct {
	ID uint
}

// DeleteIngredientHandler handles ingredient deletion command
type DeleteIngredientHandler struct {
	store  domain.Store
	events domain.EventPublisher
}

// NewDeleteIngredientHandler creates a new delete ingredient handler
func NewDeleteIngredientHandler(store domain.Store, events domain.EventPublisher) *DeleteIngredientHandler {
	return &DeleteIngredientHandler{store: store, events: events}
}

// Handle deletes an ingredient. It is rejected with ErrConflict while any
// cocktail still lists the ingredient.
func (h *DeleteIngredientHandler) Handle(ctx context.Context, cmd DeleteIngredientCommand) error {
	var name string
	err := h.store.Atomic(ctx, func(tx domain.Store) error {
		ingredient, err := tx.Ingredients().FindByID(ctx, cmd.ID)
		if err != nil {
			return err
		}
		name = ingredient.Name

		users, err := tx.Compositions().CocktailIDsByIngredient(ctx, cmd.ID)
		if err != nil {
			return err
		}
		if len(users) > 0 {
			return domain.Conflictf("ingredient %q is used by %d cocktail(s)", ingredient.Name, len(users))
		}

		return tx.Ingredients().Delete(ctx, cmd.ID)
	})
	if err != nil {
		return err
	}

	publish(ctx, h.events, domain.CatalogEvent{
		Type:         domain.EventIngredientDeleted,
		IngredientID: cmd.ID,
		Name:         name,
	})
	return nil
}
