package http

import (
	"net/http"

	"github.com/tair/cocktail-catalog/internal/catalog/usecase/command"
)

// ListColors handles GET /api/public/colors
func (h *CatalogHandler) ListColors(w http.ResponseWriter, r *http.Request) {
	colors, err := h.queries.Colors.All(r.Context())
	if err != nil {
		respondDomainError(w, r, err, "list colors")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    colors,
	})
}

// GetColor handles GET /api/public/colors/{id}
func (h *CatalogHandler) GetColor(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	color, err := h.queries.Colors.Get(r.Context(), id)
	if err != nil {
		respondDomainError(w, r, err, "get color")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    color,
	})
}

// CreateColor handles POST /api/admin/colors
func (h *CatalogHandler) CreateColor(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		HexCode     string `json:"hex_code"`
		Description string `json:"description"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	color, err := h.commands.CreateColor.Handle(r.Context(), command.CreateColorCommand{
		Name:        req.Name,
		HexCode:     req.HexCode,
		Description: req.Description,
	})
	if err != nil {
		respondDomainError(w, r, err, "create color")
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Color created successfully",
		Data:    color,
	})
}

// DeleteColor handles DELETE /api/admin/colors/{id}
func (h *CatalogHandler) DeleteColor(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.commands.DeleteColor.Handle(r.Context(), id); err != nil {
		respondDomainError(w, r, err, "delete color")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Color deleted successfully",
	})
}
