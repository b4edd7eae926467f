package command

import (
	"context"
	"errors"
	"strings"

	"github.com/tair/cocktail-catalog/internal/catalog/domain"
)

// FavoriteCommand identifies one (user, cocktail) pair
type FavoriteCommand struct {
	UserID     string
	CocktailID uint
}

func (c FavoriteCommand) validate() error {
	if strings.TrimSpace(c.UserID) == "" {
		return domain.InvalidInputf("user id is required")
	}
	return nil
}

// AddFavoriteHandler handles favorite creation
type AddFavoriteHandler struct {
	store  domain.Store
	events domain.EventPublisher
}

// NewAddFavoriteHandler creates a new add favorite handler
func NewAddFavoriteHandler(store domain.Store, events domain.EventPublisher) *AddFavoriteHandler {
	return &AddFavoriteHandler{store: store, events: events}
}

// Handle favors a cocktail for the user. The new favorite has no color.
func (h *AddFavoriteHandler) Handle(ctx context.Context, cmd FavoriteCommand) (*domain.Favorite, error) {
	if err := cmd.validate(); err != nil {
		return nil, err
	}
	favorite, err := addFavorite(ctx, h.store, cmd)
	if err != nil {
		return nil, err
	}
	publish(ctx, h.events, domain.CatalogEvent{
		Type:       domain.EventFavoriteAdded,
		CocktailID: cmd.CocktailID,
		UserID:     cmd.UserID,
	})
	return favorite, nil
}

func addFavorite(ctx context.Context, store domain.Store, cmd FavoriteCommand) (*domain.Favorite, error) {
	cocktail, err := store.Cocktails().FindByID(ctx, cmd.CocktailID)
	if err != nil {
		return nil, err
	}

	if _, err := store.Favorites().Find(ctx, cmd.UserID, cmd.CocktailID); err == nil {
		return nil, domain.Conflictf("cocktail %d is already a favorite", cmd.CocktailID)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	// The unique (user_id, cocktail_id) index settles concurrent adds.
	favorite := &domain.Favorite{UserID: cmd.UserID, CocktailID: cmd.CocktailID}
	if err := store.Favorites().Create(ctx, favorite); err != nil {
		return nil, err
	}
	favorite.Cocktail = cocktail
	return favorite, nil
}

// RemoveFavoriteHandler handles favorite removal
type RemoveFavoriteHandler struct {
	store  domain.Store
	events domain.EventPublisher
}

// NewRemoveFavoriteHandler creates a new remove favorite handler
func NewRemoveFavoriteHandler(store domain.Store, events domain.EventPublisher) *RemoveFavoriteHandler {
	return &RemoveFavoriteHandler{store: store, events: events}
}

// Handle removes the favorite, failing with ErrNotFound when absent
func (h *RemoveFavoriteHandler) Handle(ctx context.Context, cmd FavoriteCommand) error {
	if err := cmd.validate(); err != nil {
		return err
	}
	if err := h.store.Favorites().DeleteByUserAndCocktail(ctx, cmd.UserID, cmd.CocktailID); err != nil {
		return err
	}
	publish(ctx, h.events, domain.CatalogEvent{
		Type:       domain.EventFavoriteRemoved,
		CocktailID: cmd.CocktailID,
		UserID:     cmd.UserID,
	})
	return nil
}

// ToggleFavoriteHandler flips the favorite state of a pair
type ToggleFavoriteHandler struct {
	store  domain.Store
	events domain.EventPublisher
}

// NewToggleFavoriteHandler creates a new toggle favorite handler
func NewToggleFavoriteHandler(store domain.Store, events domain.EventPublisher) *ToggleFavoriteHandler {
	return &ToggleFavoriteHandler{store: store, events: events}
}

// Handle returns true when the cocktail is a favorite afterwards. A
// concurrent toggle of the same pair can make either branch lose; the loser
// reports the state the winner left behind.
func (h *ToggleFavoriteHandler) Handle(ctx context.Context, cmd FavoriteCommand) (bool, error) {
	if err := cmd.validate(); err != nil {
		return false, err
	}

	_, err := h.store.Favorites().Find(ctx, cmd.UserID, cmd.CocktailID)
	switch {
	case err == nil:
		err := h.store.Favorites().DeleteByUserAndCocktail(ctx, cmd.UserID, cmd.CocktailID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return false, err
		}
		if err == nil {
			publish(ctx, h.events, domain.CatalogEvent{Type: domain.EventFavoriteRemoved, CocktailID: cmd.CocktailID, UserID: cmd.UserID})
		}
		return false, nil
	case errors.Is(err, domain.ErrNotFound):
		_, err := addFavorite(ctx, h.store, cmd)
		if err != nil && !errors.Is(err, domain.ErrConflict) {
			return false, err
		}
		if err == nil {
			publish(ctx, h.events, domain.CatalogEvent{Type: domain.EventFavoriteAdded, CocktailID: cmd.CocktailID, UserID: cmd.UserID})
		}
		return true, nil
	default:
		return false, err
	}
}

// ClearFavoritesHandler removes every favorite of a user
type ClearFavoritesHandler struct {
	store domain.Store
}

// NewClearFavoritesHandler creates a new clear favorites handler
func NewClearFavoritesHandler(store domain.Store) *ClearFavoritesHandler {
	return &ClearFavoritesHandler{store: store}
}

// Handle returns how many favorites were removed; clearing an empty list
// is not an error.
func (h *ClearFavoritesHandler) Handle(ctx context.Context, userID string) (int64, error) {
	if strings.TrimSpace(userID) == "" {
		return 0, domain.InvalidInputf("user id is required")
	}
	return h.store.Favorites().DeleteByUser(ctx, userID)
}

// SetFavoriteColorCommand chooses the display color of a favorite
type SetFavoriteColorCommand struct {
	UserID     string
	CocktailID uint
	Color      domain.ColorRef
}

// SetFavoriteColorHandler handles favorite color changes
type SetFavoriteColorHandler struct {
	store domain.Store
}

// NewSetFavoriteColorHandler creates a new set favorite color handler
func NewSetFavoriteColorHandler(store domain.Store) *SetFavoriteColorHandler {
	return &SetFavoriteColorHandler{store: store}
}

// Handle resolves the color by name when one is given, otherwise by id,
// and assigns it to the favorite. Both lookups and the update share a
// transaction.
func (h *SetFavoriteColorHandler) Handle(ctx context.Context, cmd SetFavoriteColorCommand) (*domain.Favorite, error) {
	if err := (FavoriteCommand{UserID: cmd.UserID}).validate(); err != nil {
		return nil, err
	}
	if cmd.Color.IsZero() {
		return nil, domain.InvalidInputf("either color id or color name is required")
	}

	var favorite *domain.Favorite
	err := h.store.Atomic(ctx, func(tx domain.Store) error {
		var err error
		favorite, err = tx.Favorites().Find(ctx, cmd.UserID, cmd.CocktailID)
		if err != nil {
			return err
		}

		var color *domain.Color
		if cmd.Color.Name != "" {
			color, err = tx.Colors().FindByName(ctx, cmd.Color.Name)
		} else {
			color, err = tx.Colors().FindByID(ctx, *cmd.Color.ID)
		}
		if err != nil {
			return err
		}

		if err := tx.Favorites().SetColor(ctx, favorite.ID, &color.ID); err != nil {
			return err
		}
		favorite.ColorID = &color.ID
		favorite.Color = color
		return nil
	})
	if err != nil {
		return nil, err
	}
	return favorite, nil
}
