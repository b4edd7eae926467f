package command

import (
	"context"
	"errors"
	"strings"

	"github.com/tair/cocktail-catalog/internal/catalog/domain"
)

// CreateCocktailCommand represents the command to create a new cocktail.
// Empty attributes take the catalog defaults; Alcoholic defaults to true.
type CreateCocktailCommand struct {
	Name              string
	Description       string
	Category          string
	GlassType         string
	PreparationMethod string
	ImageURL          *string
	Alcoholic         *bool
	Lines             []domain.CompositionLine
}

// CreateCocktailHandler handles cocktail creation command
type CreateCocktailHandler struct {
	store  domain.Store
	events domain.EventPublisher
}

// NewCreateCocktailHandler creates a new create cocktail handler
func NewCreateCocktailHandler(store domain.Store, events domain.EventPublisher) *CreateCocktailHandler {
	return &CreateCocktailHandler{store: store, events: events}
}

// Handle creates the cocktail and its composition in one transaction.
// Unknown ingredients are created on the way.
func (h *CreateCocktailHandler) Handle(ctx context.Context, cmd CreateCocktailCommand) (*domain.Cocktail, error) {
	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return nil, domain.InvalidInputf("cocktail name is required")
	}
	if err := validateLines(cmd.Lines); err != nil {
		return nil, err
	}

	cocktail := &domain.Cocktail{
		Name:              name,
		Description:       orDefault(cmd.Description, domain.DefaultCocktailDescription),
		Category:          orDefault(cmd.Category, domain.DefaultCocktailCategory),
		GlassType:         orDefault(cmd.GlassType, domain.DefaultGlassType),
		PreparationMethod: orDefault(cmd.PreparationMethod, domain.DefaultPreparationMethod),
		ImageURL:          normalizeURL(cmd.ImageURL),
		Alcoholic:         cmd.Alcoholic == nil || *cmd.Alcoholic,
	}

	err := h.store.Atomic(ctx, func(tx domain.Store) error {
		if _, err := tx.Cocktails().FindByName(ctx, name); err == nil {
			return domain.Conflictf("cocktail %q already exists", name)
		} else if !errors.Is(err, domain.ErrNotFound) {
			return err
		}

		if err := tx.Cocktails().Create(ctx, cocktail); err != nil {
			return err
		}
		return attachLines(ctx, tx, cocktail.ID, cmd.Lines)
	})
	if err != nil {
		return nil, err
	}

	created, err := h.store.Cocktails().FindByID(ctx, cocktail.ID)
	if err != nil {
		return nil, err
	}

	publish(ctx, h.events, domain.CatalogEvent{
		Type:       domain.EventCocktailCreated,
		CocktailID: created.ID,
		Name:       created.Name,
	})
	return created, nil
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}

// normalizeURL maps a blank URL to no URL.
func normalizeURL(url *string) *string {
	if url == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*url)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
