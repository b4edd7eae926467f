package domain

import "strings"

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	DefaultSortBy   = "name"
)

// Sortable fields per entity, keyed by the accepted request name.
var (
	CocktailSortFields = map[string]string{
		"id":                 "id",
		"name":               "name",
		"category":           "category",
		"glassType":          "glass_type",
		"glass_type":         "glass_type",
		"alcoholic":          "alcoholic",
		"createdAt":          "created_at",
		"created_at":         "created_at",
		"updatedAt":          "updated_at",
		"updated_at":         "updated_at",
		"preparationMethod":  "preparation_method",
		"preparation_method": "preparation_method",
	}
	IngredientSortFields = map[string]string{
		"id":         "id",
		"name":       "name",
		"category":   "category",
		"unit":       "unit",
		"createdAt":  "created_at",
		"created_at": "created_at",
	}
)

// PageRequest carries pagination and sorting parameters.
type PageRequest struct {
	Page    int
	Size    int
	SortBy  string
	SortDir string
}

// Normalize applies defaults and rejects out-of-range values.
func (p PageRequest) Normalize() (PageRequest, error) {
	if p.Page < 0 {
		return p, InvalidInputf("page must not be negative")
	}
	if p.Size < 0 {
		return p, InvalidInputf("size must be positive")
	}
	if p.Size == 0 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	if p.SortBy == "" {
		p.SortBy = DefaultSortBy
	}
	p.SortDir = strings.ToLower(p.SortDir)
	switch p.SortDir {
	case "":
		p.SortDir = "asc"
	case "asc", "desc":
	default:
		return p, InvalidInputf("sort direction must be asc or desc")
	}
	return p, nil
}

// Offset is the number of rows to skip.
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// OrderBy maps SortBy onto a column using the allowed fields.
func (p PageRequest) OrderBy(allowed map[string]string) (string, error) {
	column, ok := allowed[p.SortBy]
	if !ok {
		return "", InvalidInputf("cannot sort by %q", p.SortBy)
	}
	return column + " " + p.SortDir, nil
}

// Page is one slice of a sorted result set.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"total_elements"`
	TotalPages    int   `json:"total_pages"`
}

// NewPage builds a page from its content and the total row count.
func NewPage[T any](content []T, req PageRequest, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	pages := 0
	if req.Size > 0 {
		pages = int((total + int64(req.Size) - 1) / int64(req.Size))
	}
	return Page[T]{
		Content:       content,
		Page:          req.Page,
		Size:          req.Size,
		TotalElements: total,
		TotalPages:    pages,
	}
}
