package query

import (
	"context"

	"github.com/tair/cocktail-catalog/internal/catalog/domain"
)

// ColorsHandler handles palette reads
type ColorsHandler struct {
	store domain.Store
}

// NewColorsHandler creates a new colors handler
func NewColorsHandler(store domain.Store) *ColorsHandler {
	return &ColorsHandler{store: store}
}

// All returns the palette ordered by name
func (h *ColorsHandler) All(ctx context.Context) ([]domain.Color, error) {
	colors, err := h.store.Colors().FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if colors == nil {
		colors = []domain.Color{}
	}
	return colors, nil
}

// Get returns one color
func (h *ColorsHandler) Get(ctx context.Context, id uint) (*domain.Color, error) {
	return h.store.Colors().FindByID(ctx, id)
}
