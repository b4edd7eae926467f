package http

import (
	"net/http"

	"github.com/tair/cocktail-catalog/internal/catalog/usecase/command"
	"github.com/tair/cocktail-catalog/internal/catalog/usecase/query"
)

type ingredientRequest struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Unit        string `json:"unit"`
	Description string `json:"description"`
}

func (h *CatalogHandler) listIngredients(w http.ResponseWriter, r *http.Request, name string) {
	page, err := parsePageRequest(r)
	if err != nil {
		respondDomainError(w, r, err, "list ingredients")
		return
	}

	result, err := h.queries.Ingredients.List(r.Context(), query.ListIngredientsQuery{Name: name, Page: page})
	if err != nil {
		respondDomainError(w, r, err, "list ingredients")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    result,
	})
}

// ListIngredients handles GET /api/ingredients
func (h *CatalogHandler) ListIngredients(w http.ResponseWriter, r *http.Request) {
	h.listIngredients(w, r, "")
}

// SearchIngredients handles GET /api/ingredients/search?name=
func (h *CatalogHandler) SearchIngredients(w http.ResponseWriter, r *http.Request) {
	h.listIngredients(w, r, r.URL.Query().Get("name"))
}

// GroupIngredients handles GET /api/ingredients/grouped-by-category
func (h *CatalogHandler) GroupIngredients(w http.ResponseWriter, r *http.Request) {
	groups, err := h.queries.Ingredients.GroupedByCategory(r.Context())
	if err != nil {
		respondDomainError(w, r, err, "group ingredients")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    groups,
	})
}

// GetIngredient handles GET /api/ingredients/{id}
func (h *CatalogHandler) GetIngredient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	ingredient, err := h.queries.Ingredients.Get(r.Context(), id)
	if err != nil {
		respondDomainError(w, r, err, "get ingredient")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    ingredient,
	})
}

// CreateIngredient handles POST /api/ingredients
func (h *CatalogHandler) CreateIngredient(w http.ResponseWriter, r *http.Request) {
	var req ingredientRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ingredient, err := h.commands.CreateIngredient.Handle(r.Context(), command.CreateIngredientCommand{
		ID:          req.ID,
		Name:        req.Name,
		Category:    req.Category,
		Unit:        req.Unit,
		Description: req.Description,
	})
	if err != nil {
		respondDomainError(w, r, err, "create ingredient")
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Ingredient created successfully",
		Data:    ingredient,
	})
}

// FindOrCreateIngredient handles POST /api/ingredients/find-or-create
func (h *CatalogHandler) FindOrCreateIngredient(w http.ResponseWriter, r *http.Request) {
	var req ingredientRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ingredient, err := h.commands.FindOrCreateIngredient.Handle(r.Context(), command.FindOrCreateIngredientCommand{
		Name:     req.Name,
		Category: req.Category,
		Unit:     req.Unit,
	})
	if err != nil {
		respondDomainError(w, r, err, "resolve ingredient")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    ingredient,
	})
}

// UpdateIngredient handles PUT /api/ingredients/{id}
func (h *CatalogHandler) UpdateIngredient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req ingredientRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ingredient, err := h.commands.UpdateIngredient.Handle(r.Context(), command.UpdateIngredientCommand{
		ID:          id,
		Name:        req.Name,
		Category:    req.Category,
		Unit:        req.Unit,
		Description: req.Description,
	})
	if err != nil {
		respondDomainError(w, r, err, "update ingredient")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Ingredient updated successfully",
		Data:    ingredient,
	})
}

// DeleteIngredient handles DELETE /api/ingredients/{id}
func (h *CatalogHandler) DeleteIngredient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.commands.DeleteIngredient.Handle(r.Context(), command.DeleteIngredientCommand{ID: id}); err != nil {
		respondDomainError(w, r, err, "delete ingredient")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Ingredient deleted successfully",
	})
}
