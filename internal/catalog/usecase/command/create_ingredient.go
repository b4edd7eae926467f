package command

import (
	"context"
	"errors"
	"strings"

	"github.com/tair/cocktail-catalog/internal/catalog/domain"
)

// CreateIngredientCommand represents the command to create a new ingredient
type CreateIngredientCommand struct {
	// ID is optional; a value that already exists is a conflict.
	ID          uint
	Name        string
	Category    string
	Unit        string
	Description string
}

// CreateIngredientHandler handles ingredient creation command
type CreateIngredientHandler struct {
	store  domain.Store
	events domain.EventPublisher
}

// NewCreateIngredientHandler creates a new create ingredient handler
func NewCreateIngredientHandler(store domain.Store, events domain.EventPublisher) *CreateIngredientHandler {
	return &CreateIngredientHandler{store: store, events: events}
}

// Handle executes the create ingredient command
func (h *CreateIngredientHandler) Handle(ctx context.Context, cmd CreateIngredientCommand) (*domain.Ingredient, error) {
	if strings.TrimSpace(cmd.Name) == "" {
		return nil, domain.InvalidInputf("ingredient name is required")
	}

	ingredient := &domain.Ingredient{
		Name:        cmd.Name,
		Category:    cmd.Category,
		Unit:        cmd.Unit,
		Description: strings.TrimSpace(cmd.Description),
	}
	ingredient.ApplyDefaults()

	if cmd.ID != 0 {
		_, err := h.store.Ingredients().FindByID(ctx, cmd.ID)
		switch {
		case err == nil:
			return nil, domain.Conflictf("ingredient %d already exists", cmd.ID)
		case !errors.Is(err, domain.ErrNotFound):
			return nil, err
		}
	}

	if _, err := h.store.Ingredients().FindByName(ctx, ingredient.Name); err == nil {
		return nil, domain.Conflictf("ingredient %q already exists", ingredient.Name)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	if err := h.store.Ingredients().Create(ctx, ingredient); err != nil {
		return nil, err
	}

	publish(ctx, h.events, domain.CatalogEvent{
		Type:         domain.EventIngredientCreated,
		IngredientID: ingredient.ID,
		Name:         ingredient.Name,
	})
	return ingredient, nil
}
