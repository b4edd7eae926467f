package query

import (
	"context"
	"fmt"
	"strings"

	"github.com/tair/cocktail-catalog/internal/catalog/domain"
)

// ListCocktailsQuery represents the query to list one page of cocktails
type ListCocktailsQuery struct {
	Filter domain.CocktailFilter
	Page   domain.PageRequest
}

// ListCocktailsHandler handles paginated cocktail listings
type ListCocktailsHandler struct {
	store domain.Store
}

// NewListCocktailsHandler creates a new list cocktails handler
func NewListCocktailsHandler(store domain.Store) *ListCocktailsHandler {
	return &ListCocktailsHandler{store: store}
}

// Handle executes the list cocktails query
func (h *ListCocktailsHandler) Handle(ctx context.Context, query ListCocktailsQuery) (*domain.Page[domain.Cocktail], error) {
	page, err := query.Page.Normalize()
	if err != nil {
		return nil, err
	}

	filter := query.Filter
	filter.Category = strings.TrimSpace(filter.Category)
	filter.Name = strings.TrimSpace(filter.Name)

	cocktails, total, err := h.store.Cocktails().List(ctx, filter, page)
	if err != nil {
		return nil, err
	}
	result := domain.NewPage(cocktails, page, total)
	return &result, nil
}

// FindCocktailsQuery represents the query to list every matching cocktail
type FindCocktailsQuery struct {
	Filter domain.CocktailFilter
}

// FindCocktailsHandler handles unpaginated cocktail listings
type FindCocktailsHandler struct {
	store domain.Store
}

// NewFindCocktailsHandler creates a new find cocktails handler
func NewFindCocktailsHandler(store domain.Store) *FindCocktailsHandler {
	return &FindCocktailsHandler{store: store}
}

// Handle returns all matching cocktails ordered by name
func (h *FindCocktailsHandler) Handle(ctx context.Context, query FindCocktailsQuery) ([]domain.Cocktail, error) {
	cocktails, err := h.store.Cocktails().FindAll(ctx, query.Filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list cocktails: %w", err)
	}
	if cocktails == nil {
		cocktails = []domain.Cocktail{}
	}
	return cocktails, nil
}
