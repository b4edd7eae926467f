package command

import (
	"context"
	"strings"

	"github.com/tair/cocktail-catalog/internal/catalog/domain"
)

// AddCompositionLinesCommand attaches ingredients to an existing cocktail
type AddCompositionLinesCommand struct {
	CocktailID uint
	Lines      []domain.CompositionLine
}

// AddCompositionLinesHandler handles ingredient attachment
type AddCompositionLinesHandler struct {
	store  domain.Store
	events domain.EventPublisher
	cache  domain.CocktailCache
}

// NewAddCompositionLinesHandler creates a new add composition handler
func NewAddCompositionLinesHandler(store domain.Store, events domain.EventPublisher, cache domain.CocktailCache) *AddCompositionLinesHandler {
	return &AddCompositionLinesHandler{store: store, events: events, cache: cache}
}

// Handle adds each line. An ingredient already in the cocktail gets its
// quantity overwritten instead of a second row.
func (h *AddCompositionLinesHandler) Handle(ctx context.Context, cmd AddCompositionLinesCommand) (*domain.Cocktail, error) {
	if err := validateLines(cmd.Lines); err != nil {
		return nil, err
	}

	err := h.store.Atomic(ctx, func(tx domain.Store) error {
		if _, err := tx.Cocktails().FindByID(ctx, cmd.CocktailID); err != nil {
			return err
		}
		if err := attachLines(ctx, tx, cmd.CocktailID, cmd.Lines); err != nil {
			return err
		}
		return tx.Cocktails().Touch(ctx, cmd.CocktailID)
	})
	if err != nil {
		return nil, err
	}

	return reloadAfterChange(ctx, h.store, h.events, h.cache, cmd.CocktailID)
}

// RemoveCompositionLineCommand detaches an ingredient, matched by its exact
// name, from a cocktail
type RemoveCompositionLineCommand struct {
	CocktailID     uint
	IngredientName string
}

// RemoveCompositionLineHandler handles ingredient detachment
type RemoveCompositionLineHandler struct {
	store  domain.Store
	events domain.EventPublisher
	cache  domain.CocktailCache
}

// NewRemoveCompositionLineHandler creates a new remove composition handler
func NewRemoveCompositionLineHandler(store domain.Store, events domain.EventPublisher, cache domain.CocktailCache) *RemoveCompositionLineHandler {
	return &RemoveCompositionLineHandler{store: store, events: events, cache: cache}
}

// Handle removes only the composition row; the ingredient stays in the catalog.
func (h *RemoveCompositionLineHandler) Handle(ctx context.Context, cmd RemoveCompositionLineCommand) (*domain.Cocktail, error) {
	if cmd.IngredientName == "" {
		return nil, domain.InvalidInputf("ingredient name is required")
	}

	err := h.store.Atomic(ctx, func(tx domain.Store) error {
		if _, err := tx.Cocktails().FindByID(ctx, cmd.CocktailID); err != nil {
			return err
		}
		entry, err := tx.Compositions().FindByIngredientName(ctx, cmd.CocktailID, cmd.IngredientName)
		if err != nil {
			return err
		}
		if err := tx.Compositions().Delete(ctx, entry.ID); err != nil {
			return err
		}
		return tx.Cocktails().Touch(ctx, cmd.CocktailID)
	})
	if err != nil {
		return nil, err
	}

	return reloadAfterChange(ctx, h.store, h.events, h.cache, cmd.CocktailID)
}

// UpdateCompositionQuantityCommand changes the quantity of one ingredient
// in a cocktail
type UpdateCompositionQuantityCommand struct {
	CocktailID   uint
	IngredientID uint
	Quantity     string
}

// UpdateCompositionQuantityHandler handles quantity changes
type UpdateCompositionQuantityHandler struct {
	store  domain.Store
	events domain.EventPublisher
	cache  domain.CocktailCache
}

// NewUpdateCompositionQuantityHandler creates a new quantity update handler
func NewUpdateCompositionQuantityHandler(store domain.Store, events domain.EventPublisher, cache domain.CocktailCache) *UpdateCompositionQuantityHandler {
	return &UpdateCompositionQuantityHandler{store: store, events: events, cache: cache}
}

// Handle executes the update quantity command
func (h *UpdateCompositionQuantityHandler) Handle(ctx context.Context, cmd UpdateCompositionQuantityCommand) (*domain.Cocktail, error) {
	quantity := strings.TrimSpace(cmd.Quantity)
	if quantity == "" {
		return nil, domain.InvalidInputf("quantity is required")
	}

	err := h.store.Atomic(ctx, func(tx domain.Store) error {
		if _, err := tx.Cocktails().FindByID(ctx, cmd.CocktailID); err != nil {
			return err
		}
		entry, err := tx.Compositions().FindByIngredientID(ctx, cmd.CocktailID, cmd.IngredientID)
		if err != nil {
			return err
		}
		if err := tx.Compositions().UpdateQuantity(ctx, entry.ID, quantity); err != nil {
			return err
		}
		return tx.Cocktails().Touch(ctx, cmd.CocktailID)
	})
	if err != nil {
		return nil, err
	}

	return reloadAfterChange(ctx, h.store, h.events, h.cache, cmd.CocktailID)
}
