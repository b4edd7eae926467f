package query

import (
	"context"
	"fmt"
	"strings"

	"github.com/tair/cocktail-catalog/internal/catalog/domain"
)

// ListIngredientsQuery lists one page of ingredients. A non-blank Name
// restricts the page to names containing it, ignoring case.
type ListIngredientsQuery struct {
	Name string
	Page domain.PageRequest
}

// IngredientsHandler handles ingredient reads
type IngredientsHandler struct {
	store domain.Store
}

// NewIngredientsHandler creates a new ingredients handler
func NewIngredientsHandler(store domain.Store) *IngredientsHandler {
	return &IngredientsHandler{store: store}
}

// Get returns one ingredient
func (h *IngredientsHandler) Get(ctx context.Context, id uint) (*domain.Ingredient, error) {
	if id == 0 {
		return nil, domain.InvalidInputf("invalid ingredient id")
	}
	return h.store.Ingredients().FindByID(ctx, id)
}

// List executes the paginated list or search
func (h *IngredientsHandler) List(ctx context.Context, query ListIngredientsQuery) (*domain.Page[domain.Ingredient], error) {
	page, err := query.Page.Normalize()
	if err != nil {
		return nil, err
	}

	var (
		ingredients []domain.Ingredient
		total       int64
	)
	if name := strings.TrimSpace(query.Name); name != "" {
		ingredients, total, err = h.store.Ingredients().Search(ctx, name, page)
	} else {
		ingredients, total, err = h.store.Ingredients().List(ctx, page)
	}
	if err != nil {
		return nil, err
	}

	result := domain.NewPage(ingredients, page, total)
	return &result, nil
}

// GroupedByCategory returns every ingredient keyed by its category, each
// group ordered by name.
func (h *IngredientsHandler) GroupedByCategory(ctx context.Context) (map[string][]domain.Ingredient, error) {
	ingredients, err := h.store.Ingredients().FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list ingredients: %w", err)
	}

	groups := make(map[string][]domain.Ingredient)
	for _, ing := range ingredients {
		groups[ing.Category] = append(groups[ing.Category], ing)
	}
	return groups, nil
}
