package command

import (
	"context"
	"errors"
	"strings"

	"github.com/tair/cocktail-catalog/internal/catalog/domain"
	"github.com/tair/cocktail-catalog/pkg/logger"
)

// CreateColorCommand represents the command to create a palette color
type CreateColorCommand struct {
	Name        string
	HexCode     string
	Description string
}

// CreateColorHandler handles color creation
type CreateColorHandler struct {
	store domain.Store
}

// NewCreateColorHandler creates a new create color handler
func NewCreateColorHandler(store domain.Store) *CreateColorHandler {
	return &CreateColorHandler{store: store}
}

// Handle validates the hex code as #RRGGBB and stores it upper-cased.
// Duplicate names or codes are conflicts.
func (h *CreateColorHandler) Handle(ctx context.Context, cmd CreateColorCommand) (*domain.Color, error) {
	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return nil, domain.InvalidInputf("color name is required")
	}
	hex, ok := domain.NormalizeHexCode(cmd.HexCode)
	if !ok {
		return nil, domain.InvalidInputf("hex code %q must have the form #RRGGBB", cmd.HexCode)
	}

	if _, err := h.store.Colors().FindByName(ctx, name); err == nil {
		return nil, domain.Conflictf("color %q already exists", name)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	color := &domain.Color{
		Name:        name,
		HexCode:     hex,
		Description: strings.TrimSpace(cmd.Description),
	}
	if err := h.store.Colors().Create(ctx, color); err != nil {
		return nil, err
	}
	return color, nil
}

// DeleteColorHandler handles color deletion
type DeleteColorHandler struct {
	store  domain.Store
	events domain.EventPublisher
}

// NewDeleteColorHandler creates a new delete color handler
func NewDeleteColorHandler(store domain.Store, events domain.EventPublisher) *DeleteColorHandler {
	return &DeleteColorHandler{store: store, events: events}
}

// Handle deletes the color after clearing it from every favorite that
// uses it. The favorites themselves are kept.
func (h *DeleteColorHandler) Handle(ctx context.Context, id uint) error {
	var detached int64
	err := h.store.Atomic(ctx, func(tx domain.Store) error {
		if _, err := tx.Colors().FindByID(ctx, id); err != nil {
			return err
		}
		var err error
		if detached, err = tx.Favorites().DetachColor(ctx, id); err != nil {
			return err
		}
		return tx.Colors().Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx).
		Uint("color_id", id).
		Int64("favorites_detached", detached).
		Msg("Color deleted")

	publish(ctx, h.events, domain.CatalogEvent{Type: domain.EventColorDeleted, ColorID: id})
	return nil
}
