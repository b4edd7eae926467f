package query

import (
	"context"
	"fmt"

	"github.com/tair/cocktail-catalog/internal/catalog/domain"
)

const topCategoryLimit = 5

// GetStatsQuery represents the query to get catalog statistics
type GetStatsQuery struct{}

// GetStatsHandler handles get stats query
type GetStatsHandler struct {
	store domain.Store
}

// NewGetStatsHandler creates a new get stats handler
func NewGetStatsHandler(store domain.Store) *GetStatsHandler {
	return &GetStatsHandler{store: store}
}

// Handle executes the get stats query
func (h *GetStatsHandler) Handle(ctx context.Context, _ GetStatsQuery) (*domain.CatalogStats, error) {
	cocktails := h.store.Cocktails()

	total, err := cocktails.Count(ctx, domain.CocktailFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to get cocktail count: %w", err)
	}

	alcoholic := true
	alcoholicCount, err := cocktails.Count(ctx, domain.CocktailFilter{Alcoholic: &alcoholic})
	if err != nil {
		return nil, fmt.Errorf("failed to get alcoholic count: %w", err)
	}

	ingredients, err := h.store.Ingredients().Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get ingredient count: %w", err)
	}

	top, err := cocktails.TopCategories(ctx, topCategoryLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get top categories: %w", err)
	}
	if top == nil {
		top = []domain.CategoryCount{}
	}

	lastCreated, err := cocktails.Latest(ctx, "created_at")
	if err != nil {
		return nil, fmt.Errorf("failed to get last created cocktail: %w", err)
	}
	lastUpdated, err := cocktails.Latest(ctx, "updated_at")
	if err != nil {
		return nil, fmt.Errorf("failed to get last updated cocktail: %w", err)
	}

	return &domain.CatalogStats{
		TotalCocktails:        total,
		AlcoholicCocktails:    alcoholicCount,
		NonAlcoholicCocktails: total - alcoholicCount,
		TotalIngredients:      ingredients,
		TopCategories:         top,
		LastCreated:           lastCreated,
		LastUpdated:           lastUpdated,
	}, nil
}

// IDGapsHandler reports unused ids in the cocktail id sequence
type IDGapsHandler struct {
	store domain.Store
}

// NewIDGapsHandler creates a new id gaps handler
func NewIDGapsHandler(store domain.Store) *IDGapsHandler {
	return &IDGapsHandler{store: store}
}

// Handle is only meaningful while cocktail ids come from an increasing
// integer sequence.
func (h *IDGapsHandler) Handle(ctx context.Context) (*domain.GapReport, error) {
	ids, err := h.store.Cocktails().IDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cocktail ids: %w", err)
	}
	report := domain.NewGapReport(ids)
	return &report, nil
}
