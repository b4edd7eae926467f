package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tair/cocktail-catalog/internal/catalog/domain"
)

// FindOrCreateIngredientCommand resolves an ingredient by name, creating it
// on first use.
type FindOrCreateIngredientCommand struct {
	Name     string
	Category string
	Unit     string
}

// FindOrCreateIngredientHandler handles ingredient resolution
type FindOrCreateIngredientHandler struct {
	store  domain.Store
	events domain.EventPublisher
}

// NewFindOrCreateIngredientHandler creates a new find-or-create handler
func NewFindOrCreateIngredientHandler(store domain.Store, events domain.EventPublisher) *FindOrCreateIngredientHandler {
	return &FindOrCreateIngredientHandler{store: store, events: events}
}

// Handle returns the existing ingredient whose name matches ignoring case,
// or the newly created one.
func (h *FindOrCreateIngredientHandler) Handle(ctx context.Context, cmd FindOrCreateIngredientCommand) (*domain.Ingredient, error) {
	ingredient, created, err := findOrCreateIngredient(ctx, h.store, cmd.Name, cmd.Category, cmd.Unit)
	if err != nil {
		return nil, err
	}
	if created {
		publish(ctx, h.events, domain.CatalogEvent{
			Type:         domain.EventIngredientCreated,
			IngredientID: ingredient.ID,
			Name:         ingredient.Name,
		})
	}
	return ingredient, nil
}

// findOrCreateIngredient runs on s, which may be a transaction. The insert
// happens in its own savepoint: when a concurrent caller wins the race the
// unique index rejects the insert, the savepoint is rolled back and the
// winner's row is returned instead.
func findOrCreateIngredient(ctx context.Context, s domain.Store, name, category, unit string) (*domain.Ingredient, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false, domain.InvalidInputf("ingredient name is required")
	}

	existing, err := s.Ingredients().FindByName(ctx, name)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, err
	}

	ingredient := &domain.Ingredient{Name: name, Category: category, Unit: unit}
	ingredient.ApplyDefaults()

	err = s.Atomic(ctx, func(tx domain.Store) error {
		return tx.Ingredients().Create(ctx, ingredient)
	})
	switch {
	case err == nil:
		return ingredient, true, nil
	case errors.Is(err, domain.ErrConflict):
		winner, err := s.Ingredients().FindByName(ctx, name)
		if err != nil {
			return nil, false, fmt.Errorf("failed to re-read ingredient %q after concurrent insert: %w", name, err)
		}
		return winner, false, nil
	default:
		return nil, false, err
	}
}
