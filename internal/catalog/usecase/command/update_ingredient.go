package command

import (
	"context"
	"errors"
	"strings"

	"github.com/tair/cocktail-catalog/internal/catalog/domain"
)

// UpdateIngredientCommand replaces every editable field of an ingredient
type UpdateIngredientCommand struct {
	ID          uint
	Name        string
	Category    string
	Unit        string
	Description string
}

// UpdateIngredientHandler handles ingredient update command
type UpdateIngredientHandler struct {
	store domain.Store
	cache domain.CocktailCache
}

// NewUpdateIngredientHandler creates a new update ingredient handler
func NewUpdateIngredientHandler(store domain.Store, cache domain.CocktailCache) *UpdateIngredientHandler {
	return &UpdateIngredientHandler{store: store, cache: cache}
}

// Handle overwrites name, category, unit and description. Blank category
// and unit fall back to their defaults.
func (h *UpdateIngredientHandler) Handle(ctx context.Context, cmd UpdateIngredientCommand) (*domain.Ingredient, error) {
	if strings.TrimSpace(cmd.Name) == "" {
		return nil, domain.InvalidInputf("ingredient name is required")
	}

	var (
		ingredient *domain.Ingredient
		affected   []uint
	)
	err := h.store.Atomic(ctx, func(tx domain.Store) error {
		var err error
		ingredient, err = tx.Ingredients().FindByID(ctx, cmd.ID)
		if err != nil {
			return err
		}

		other, err := tx.Ingredients().FindByName(ctx, cmd.Name)
		switch {
		case err == nil && other.ID != ingredient.ID:
			return domain.Conflictf("ingredient %q already exists", other.Name)
		case err != nil && !errors.Is(err, domain.ErrNotFound):
			return err
		}

		ingredient.Name = cmd.Name
		ingredient.Category = cmd.Category
		ingredient.Unit = cmd.Unit
		ingredient.Description = strings.TrimSpace(cmd.Description)
		ingredient.ApplyDefaults()

		if err := tx.Ingredients().Update(ctx, ingredient); err != nil {
			return err
		}

		affected, err = tx.Compositions().CocktailIDsByIngredient(ctx, ingredient.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	evict(ctx, h.cache, affected...)
	return ingredient, nil
}
