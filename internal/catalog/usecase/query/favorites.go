package query

import (
	"context"
	"errors"
	"strings"

	"github.com/tair/cocktail-catalog/internal/catalog/domain"
)

func requireUser(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return domain.InvalidInputf("user id is required")
	}
	return nil
}

// FavoritesHandler answers the read side of a user's favorites
type FavoritesHandler struct {
	store domain.Store
}

// NewFavoritesHandler creates a new favorites handler
func NewFavoritesHandler(store domain.Store) *FavoritesHandler {
	return &FavoritesHandler{store: store}
}

// List returns the user's favorites in the order they were added
func (h *FavoritesHandler) List(ctx context.Context, userID string) ([]domain.Favorite, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	favorites, err := h.store.Favorites().ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if favorites == nil {
		favorites = []domain.Favorite{}
	}
	return favorites, nil
}

// IsFavorite reports whether the user favors the cocktail
func (h *FavoritesHandler) IsFavorite(ctx context.Context, userID string, cocktailID uint) (bool, error) {
	if err := requireUser(userID); err != nil {
		return false, err
	}
	_, err := h.store.Favorites().Find(ctx, userID, cocktailID)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, domain.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

// Count returns how many cocktails the user favors
func (h *FavoritesHandler) Count(ctx context.Context, userID string) (int64, error) {
	if err := requireUser(userID); err != nil {
		return 0, err
	}
	return h.store.Favorites().CountByUser(ctx, userID)
}

// MostFavorited ranks cocktails by favorite count across all users
func (h *FavoritesHandler) MostFavorited(ctx context.Context, limit int) ([]domain.FavoriteCount, error) {
	counts, err := h.store.Favorites().MostFavorited(ctx, limit)
	if err != nil {
		return nil, err
	}
	if counts == nil {
		counts = []domain.FavoriteCount{}
	}
	return counts, nil
}

// CocktailsWithFavoritesQuery represents one page of cocktails seen by a user
type CocktailsWithFavoritesQuery struct {
	UserID string
	Page   domain.PageRequest
}

// CocktailsWithFavorites annotates a page of cocktails with the user's
// favorite flag and color.
func (h *FavoritesHandler) CocktailsWithFavorites(ctx context.Context, query CocktailsWithFavoritesQuery) (*domain.Page[domain.CocktailWithFavorite], error) {
	if err := requireUser(query.UserID); err != nil {
		return nil, err
	}
	page, err := query.Page.Normalize()
	if err != nil {
		return nil, err
	}

	cocktails, total, err := h.store.Cocktails().List(ctx, domain.CocktailFilter{}, page)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(cocktails))
	for _, c := range cocktails {
		ids = append(ids, c.ID)
	}
	favorites, err := h.store.Favorites().FindByCocktailIDs(ctx, query.UserID, ids)
	if err != nil {
		return nil, err
	}
	byCocktail := make(map[uint]domain.Favorite, len(favorites))
	for _, f := range favorites {
		byCocktail[f.CocktailID] = f
	}

	content := make([]domain.CocktailWithFavorite, 0, len(cocktails))
	for _, c := range cocktails {
		item := domain.CocktailWithFavorite{Cocktail: c}
		if f, ok := byCocktail[c.ID]; ok {
			item.IsFavorite = true
			item.FavoriteColor = f.Color
		}
		content = append(content, item)
	}

	result := domain.NewPage(content, page, total)
	return &result, nil
}
