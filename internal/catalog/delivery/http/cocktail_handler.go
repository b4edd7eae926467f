package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/tair/cocktail-catalog/internal/catalog/domain"
	"github.com/tair/cocktail-catalog/internal/catalog/usecase/command"
	"github.com/tair/cocktail-catalog/internal/catalog/usecase/query"
)

type cocktailRequest struct {
	Name              *string                  `json:"name"`
	Description       *string                  `json:"description"`
	Category          *string                  `json:"category"`
	GlassType         *string                  `json:"glass_type"`
	PreparationMethod *string                  `json:"preparation_method"`
	ImageURL          *string                  `json:"image_url"`
	Alcoholic         *bool                    `json:"alcoholic"`
	Ingredients       []domain.CompositionLine `json:"ingredients"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// listCocktails runs a paginated listing with the given filter
func (h *CatalogHandler) listCocktails(w http.ResponseWriter, r *http.Request, filter domain.CocktailFilter) {
	page, err := parsePageRequest(r)
	if err != nil {
		respondDomainError(w, r, err, "list cocktails")
		return
	}

	result, err := h.queries.ListCocktails.Handle(r.Context(), query.ListCocktailsQuery{Filter: filter, Page: page})
	if err != nil {
		respondDomainError(w, r, err, "list cocktails")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    result,
	})
}

// ListCocktails handles GET /api/public/cocktails and /api/user/cocktails
func (h *CatalogHandler) ListCocktails(w http.ResponseWriter, r *http.Request) {
	h.listCocktails(w, r, domain.CocktailFilter{})
}

// ListByCategory handles GET /api/user/cocktails/category/{category}
func (h *CatalogHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	h.listCocktails(w, r, domain.CocktailFilter{Category: mux.Vars(r)["category"]})
}

// SearchCocktails handles GET /api/user/cocktails/search?name=
func (h *CatalogHandler) SearchCocktails(w http.ResponseWriter, r *http.Request) {
	h.listCocktails(w, r, domain.CocktailFilter{Name: r.URL.Query().Get("name")})
}

// ListByAlcoholic handles GET /api/user/cocktails/alcoholic?value=
func (h *CatalogHandler) ListByAlcoholic(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("value")
	if raw == "" {
		raw = "true"
	}
	alcoholic, err := strconv.ParseBool(raw)
	if err != nil {
		respondError(w, http.StatusBadRequest, "value must be true or false")
		return
	}

	cocktails, err := h.queries.FindCocktails.Handle(r.Context(), query.FindCocktailsQuery{
		Filter: domain.CocktailFilter{Alcoholic: &alcoholic},
	})
	if err != nil {
		respondDomainError(w, r, err, "list cocktails")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    cocktails,
	})
}

// ListWithFavorites handles GET /api/user/cocktails/with-favorites
func (h *CatalogHandler) ListWithFavorites(w http.ResponseWriter, r *http.Request) {
	page, err := parsePageRequest(r)
	if err != nil {
		respondDomainError(w, r, err, "list cocktails")
		return
	}

	result, err := h.queries.Favorites.CocktailsWithFavorites(r.Context(), query.CocktailsWithFavoritesQuery{
		UserID: userID(r),
		Page:   page,
	})
	if err != nil {
		respondDomainError(w, r, err, "list cocktails")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    result,
	})
}

// GetCocktail handles GET /api/user/cocktails/{id}
func (h *CatalogHandler) GetCocktail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	cocktail, err := h.queries.GetCocktail.Handle(r.Context(), query.GetCocktailQuery{ID: id})
	if err != nil {
		respondDomainError(w, r, err, "get cocktail")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    cocktail,
	})
}

// CreateCocktail handles POST /api/cocktails
func (h *CatalogHandler) CreateCocktail(w http.ResponseWriter, r *http.Request) {
	var req cocktailRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	cocktail, err := h.commands.CreateCocktail.Handle(r.Context(), command.CreateCocktailCommand{
		Name:              deref(req.Name),
		Description:       deref(req.Description),
		Category:          deref(req.Category),
		GlassType:         deref(req.GlassType),
		PreparationMethod: deref(req.PreparationMethod),
		ImageURL:          req.ImageURL,
		Alcoholic:         req.Alcoholic,
		Lines:             req.Ingredients,
	})
	if err != nil {
		respondDomainError(w, r, err, "create cocktail")
		return
	}

	h.updateCocktailsMetric(r.Context())

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Cocktail created successfully",
		Data:    cocktail,
	})
}

// UpdateCocktail handles PUT /api/cocktails/{id}. Only the fields present
// in the body change; ingredients in the body are ignored.
func (h *CatalogHandler) UpdateCocktail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req cocktailRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	cocktail, err := h.commands.UpdateCocktail.Handle(r.Context(), command.UpdateCocktailCommand{
		ID:                id,
		Name:              req.Name,
		Description:       req.Description,
		Category:          req.Category,
		GlassType:         req.GlassType,
		PreparationMethod: req.PreparationMethod,
		ImageURL:          req.ImageURL,
		Alcoholic:         req.Alcoholic,
	})
	if err != nil {
		respondDomainError(w, r, err, "update cocktail")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Cocktail updated successfully",
		Data:    cocktail,
	})
}

// AddCompositionLines handles POST /api/cocktails/{id}/ingredients
func (h *CatalogHandler) AddCompositionLines(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var lines []domain.CompositionLine
	if !decodeJSON(w, r, &lines) {
		return
	}

	cocktail, err := h.commands.AddCompositionLines.Handle(r.Context(), command.AddCompositionLinesCommand{
		CocktailID: id,
		Lines:      lines,
	})
	if err != nil {
		respondDomainError(w, r, err, "add ingredients")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Ingredients added successfully",
		Data:    cocktail,
	})
}

// RemoveCompositionLine handles DELETE /api/cocktails/{id}/ingredients/{name}
func (h *CatalogHandler) RemoveCompositionLine(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	cocktail, err := h.commands.RemoveCompositionLine.Handle(r.Context(), command.RemoveCompositionLineCommand{
		CocktailID:     id,
		IngredientName: mux.Vars(r)["name"],
	})
	if err != nil {
		respondDomainError(w, r, err, "remove ingredient")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Ingredient removed successfully",
		Data:    cocktail,
	})
}

// UpdateCompositionQuantity handles PATCH /api/cocktails/{id}/ingredients/{ingredientId}
func (h *CatalogHandler) UpdateCompositionQuantity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	ingredientID, ok := pathID(w, r, "ingredientId")
	if !ok {
		return
	}

	var req struct {
		Quantity string `json:"quantity"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	cocktail, err := h.commands.UpdateCompositionQty.Handle(r.Context(), command.UpdateCompositionQuantityCommand{
		CocktailID:   id,
		IngredientID: ingredientID,
		Quantity:     req.Quantity,
	})
	if err != nil {
		respondDomainError(w, r, err, "update quantity")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Quantity updated successfully",
		Data:    cocktail,
	})
}

// DeleteCocktail handles DELETE /api/admin/cocktails/{id}
func (h *CatalogHandler) DeleteCocktail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.commands.DeleteCocktail.Handle(r.Context(), command.DeleteCocktailCommand{ID: id}); err != nil {
		respondDomainError(w, r, err, "delete cocktail")
		return
	}

	h.updateCocktailsMetric(r.Context())

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Cocktail deleted successfully",
	})
}

// GetIDGaps handles GET /api/admin/cocktails/gaps
func (h *CatalogHandler) GetIDGaps(w http.ResponseWriter, r *http.Request) {
	report, err := h.queries.IDGaps.Handle(r.Context())
	if err != nil {
		respondDomainError(w, r, err, "compute id gaps")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    report,
	})
}

// GetStats handles GET /api/admin/stats
func (h *CatalogHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.queries.Stats.Handle(r.Context(), query.GetStatsQuery{})
	if err != nil {
		respondDomainError(w, r, err, "get statistics")
		return
	}

	h.totalCocktails.Set(float64(stats.TotalCocktails))

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    stats,
	})
}
