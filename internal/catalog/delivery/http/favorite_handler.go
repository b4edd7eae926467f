package http

import (
	"net/http"
	"strconv"

	"github.com/tair/cocktail-catalog/internal/catalog/domain"
	"github.com/tair/cocktail-catalog/internal/catalog/usecase/command"
)

// ListFavorites handles GET /api/favorites
func (h *CatalogHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	favorites, err := h.queries.Favorites.List(r.Context(), userID(r))
	if err != nil {
		respondDomainError(w, r, err, "list favorites")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    favorites,
	})
}

// CountFavorites handles GET /api/favorites/count
func (h *CatalogHandler) CountFavorites(w http.ResponseWriter, r *http.Request) {
	count, err := h.queries.Favorites.Count(r.Context(), userID(r))
	if err != nil {
		respondDomainError(w, r, err, "count favorites")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    map[string]int64{"count": count},
	})
}

// CheckFavorite handles GET /api/favorites/check/{cocktailId}
func (h *CatalogHandler) CheckFavorite(w http.ResponseWriter, r *http.Request) {
	cocktailID, ok := pathID(w, r, "cocktailId")
	if !ok {
		return
	}

	favorite, err := h.queries.Favorites.IsFavorite(r.Context(), userID(r), cocktailID)
	if err != nil {
		respondDomainError(w, r, err, "check favorite")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    map[string]bool{"is_favorite": favorite},
	})
}

// MostFavorited handles GET /api/favorites/most-favorited[?limit=]
func (h *CatalogHandler) MostFavorited(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = n
	}

	counts, err := h.queries.Favorites.MostFavorited(r.Context(), limit)
	if err != nil {
		respondDomainError(w, r, err, "rank favorites")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    counts,
	})
}

// AddFavorite handles POST /api/favorites/{cocktailId}
func (h *CatalogHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	cocktailID, ok := pathID(w, r, "cocktailId")
	if !ok {
		return
	}

	favorite, err := h.commands.AddFavorite.Handle(r.Context(), command.FavoriteCommand{
		UserID:     userID(r),
		CocktailID: cocktailID,
	})
	if err != nil {
		respondDomainError(w, r, err, "add favorite")
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Cocktail added to favorites",
		Data:    favorite,
	})
}

// RemoveFavorite handles DELETE /api/favorites/{cocktailId}
func (h *CatalogHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	cocktailID, ok := pathID(w, r, "cocktailId")
	if !ok {
		return
	}

	err := h.commands.RemoveFavorite.Handle(r.Context(), command.FavoriteCommand{
		UserID:     userID(r),
		CocktailID: cocktailID,
	})
	if err != nil {
		respondDomainError(w, r, err, "remove favorite")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Cocktail removed from favorites",
	})
}

// ToggleFavorite handles PUT /api/favorites/toggle/{cocktailId}
func (h *CatalogHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	cocktailID, ok := pathID(w, r, "cocktailId")
	if !ok {
		return
	}

	added, err := h.commands.ToggleFavorite.Handle(r.Context(), command.FavoriteCommand{
		UserID:     userID(r),
		CocktailID: cocktailID,
	})
	if err != nil {
		respondDomainError(w, r, err, "toggle favorite")
		return
	}

	message := "Cocktail removed from favorites"
	if added {
		message = "Cocktail added to favorites"
	}
	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    map[string]bool{"is_favorite": added},
	})
}

// ClearFavorites handles DELETE /api/favorites
func (h *CatalogHandler) ClearFavorites(w http.ResponseWriter, r *http.Request) {
	removed, err := h.commands.ClearFavorites.Handle(r.Context(), userID(r))
	if err != nil {
		respondDomainError(w, r, err, "clear favorites")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Favorites cleared",
		Data:    map[string]int64{"removed": removed},
	})
}

// SetFavoriteColor handles PATCH /api/favorites/{cocktailId}/color
func (h *CatalogHandler) SetFavoriteColor(w http.ResponseWriter, r *http.Request) {
	cocktailID, ok := pathID(w, r, "cocktailId")
	if !ok {
		return
	}

	var req struct {
		ColorID   *uint  `json:"color_id"`
		ColorName string `json:"color_name"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	favorite, err := h.commands.SetFavoriteColor.Handle(r.Context(), command.SetFavoriteColorCommand{
		UserID:     userID(r),
		CocktailID: cocktailID,
		Color:      domain.ColorRef{ID: req.ColorID, Name: req.ColorName},
	})
	if err != nil {
		respondDomainError(w, r, err, "set favorite color")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Favorite color updated",
		Data:    favorite,
	})
}
