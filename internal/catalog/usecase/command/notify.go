package command

import (
	"context"
	"strings"
	"time"

	"github.com/tair/cocktail-catalog/internal/catalog/domain"
	"github.com/tair/cocktail-catalog/pkg/logger"
)

// publish emits an event after commit. Delivery failures are logged only;
// the write has already succeeded.
func publish(ctx context.Context, events domain.EventPublisher, event domain.CatalogEvent) {
	event.OccurredAt = time.Now().UTC()
	if err := events.Publish(ctx, event); err != nil {
		logger.Warn(ctx).
			Err(err).
			Str("event", event.Type).
			Msg("Failed to publish catalog event")
	}
}

// evict drops cached cocktails after a write touching them.
func evict(ctx context.Context, cache domain.CocktailCache, ids ...uint) {
	if len(ids) == 0 {
		return
	}
	if err := cache.Invalidate(ctx, ids...); err != nil {
		logger.Warn(ctx).
			Err(err).
			Interface("cocktail_ids", ids).
			Msg("Failed to invalidate cached cocktails")
	}
}

// validateLines checks that every requested line names an ingredient and
// carries a quantity.
func validateLines(lines []domain.CompositionLine) error {
	if len(lines) == 0 {
		return domain.InvalidInputf("at least one ingredient is required")
	}
	for i, line := range lines {
		if strings.TrimSpace(line.Name) == "" {
			return domain.InvalidInputf("ingredient %d: name is required", i+1)
		}
		if strings.TrimSpace(line.Quantity) == "" {
			return domain.InvalidInputf("ingredient %q: quantity is required", line.Name)
		}
	}
	return nil
}

// attachLines resolves each line's ingredient and upserts its composition
// row. A repeated ingredient overwrites the earlier quantity.
func attachLines(ctx context.Context, tx domain.Store, cocktailID uint, lines []domain.CompositionLine) error {
	for _, line := range lines {
		ingredient, _, err := findOrCreateIngredient(ctx, tx, line.Name, line.Category, line.Unit)
		if err != nil {
			return err
		}
		entry := &domain.CompositionEntry{
			CocktailID:   cocktailID,
			IngredientID: ingredient.ID,
			Quantity:     strings.TrimSpace(line.Quantity),
		}
		if err := tx.Compositions().Upsert(ctx, entry); err != nil {
			return err
		}
	}
	return nil
}
