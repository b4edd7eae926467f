package domain

import (
	"context"
	"time"
)

const (
	DefaultCocktailDescription = "Un buonissimo cocktail"
	DefaultCocktailCategory    = "Altro"
	DefaultGlassType           = "Bicchiere standard"
	DefaultPreparationMethod   = "Mescolare"
)

// Cocktail owns its composition entries; they are deleted with it.
type Cocktail struct {
	ID                uint               `json:"id" gorm:"primaryKey"`
	Name              string             `json:"name" gorm:"size:150;not null;uniqueIndex"`
	Description       string             `json:"description" gorm:"type:text"`
	Category          string             `json:"category" gorm:"size:50;index"`
	GlassType         string             `json:"glass_type" gorm:"size:100"`
	PreparationMethod string             `json:"preparation_method" gorm:"type:text"`
	ImageURL          *string            `json:"image_url"`
	Alcoholic         bool               `json:"alcoholic" gorm:"not null;index"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
	Ingredients       []CompositionEntry `json:"ingredients" gorm:"foreignKey:CocktailID"`
}

// TableName specifies the table name
func (Cocktail) TableName() string {
	return "cocktails"
}

// CompositionEntry links one cocktail to one ingredient with a quantity.
// It is serialized nested under its cocktail and never points back to it.
type CompositionEntry struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	CocktailID   uint       `json:"-" gorm:"not null;uniqueIndex:idx_cocktail_ingredient"`
	IngredientID uint       `json:"-" gorm:"not null;uniqueIndex:idx_cocktail_ingredient;index"`
	Ingredient   Ingredient `json:"ingredient" gorm:"foreignKey:IngredientID"`
	Quantity     string     `json:"quantity" gorm:"size:50;not null"`
}

// TableName specifies the table name
func (CompositionEntry) TableName() string {
	return "cocktail_ingredients"
}

// CompositionLine is a requested (ingredient, quantity) pair. The ingredient
// is resolved by name and created on first use.
type CompositionLine struct {
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Unit     string `json:"unit,omitempty"`
	Quantity string `json:"quantity"`
}

// CocktailFilter narrows cocktail listings. Zero values mean "any".
type CocktailFilter struct {
	Category  string
	Alcoholic *bool
	Name      string
}

// GapReport lists unused ids in the sequential cocktail id range.
type GapReport struct {
	ExistingIDs     []uint `json:"existingIds"`
	MissingIDs      []uint `json:"missingIds"`
	TotalCocktails  int    `json:"totalCocktails"`
	MaxID           uint   `json:"maxId"`
	NextAvailableID uint   `json:"nextAvailableId"`
}

// NewGapReport computes the missing ids in [1, max(ids)]. ids must be
// sorted ascending and distinct.
func NewGapReport(ids []uint) GapReport {
	report := GapReport{
		ExistingIDs:     ids,
		MissingIDs:      []uint{},
		TotalCocktails:  len(ids),
		NextAvailableID: 1,
	}
	if report.ExistingIDs == nil {
		report.ExistingIDs = []uint{}
	}
	if len(ids) == 0 {
		return report
	}

	report.MaxID = ids[len(ids)-1]
	report.NextAvailableID = report.MaxID + 1

	next := uint(1)
	for _, id := range ids {
		for ; next < id; next++ {
			report.MissingIDs = append(report.MissingIDs, next)
		}
		next = id + 1
	}
	return report
}

// CategoryCount is a category and the number of cocktails in it.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// CatalogStats summarizes the catalog for administrators.
type CatalogStats struct {
	TotalCocktails        int64           `json:"total_cocktails"`
	AlcoholicCocktails    int64           `json:"alcoholic_cocktails"`
	NonAlcoholicCocktails int64           `json:"non_alcoholic_cocktails"`
	TotalIngredients      int64           `json:"total_ingredients"`
	TopCategories         []CategoryCount `json:"top_categories"`
	LastCreated           *Cocktail       `json:"last_created,omitempty"`
	LastUpdated           *Cocktail       `json:"last_updated,omitempty"`
}

// CocktailRepository defines the contract for cocktail data access.
// Cocktails returned by Find* carry their composition with ingredients.
type CocktailRepository interface {
	Create(ctx context.Context, cocktail *Cocktail) error
	FindByID(ctx context.Context, id uint) (*Cocktail, error)
	FindByName(ctx context.Context, name string) (*Cocktail, error)
	Update(ctx context.Context, cocktail *Cocktail) error
	Touch(ctx context.Context, id uint) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter CocktailFilter, page PageRequest) ([]Cocktail, int64, error)
	FindAll(ctx context.Context, filter CocktailFilter) ([]Cocktail, error)
	IDs(ctx context.Context) ([]uint, error)
	Count(ctx context.Context, filter CocktailFilter) (int64, error)
	TopCategories(ctx context.Context, limit int) ([]CategoryCount, error)
	Latest(ctx context.Context, column string) (*Cocktail, error)
}

// CompositionRepository defines the contract for cocktail/ingredient rows.
type CompositionRepository interface {
	// Upsert inserts the entry or overwrites the quantity of the existing
	// row for the same (cocktail, ingredient) pair.
	Upsert(ctx context.Context, entry *CompositionEntry) error
	FindByIngredientID(ctx context.Context, cocktailID, ingredientID uint) (*CompositionEntry, error)
	FindByIngredientName(ctx context.Context, cocktailID uint, name string) (*CompositionEntry, error)
	UpdateQuantity(ctx context.Context, id uint, quantity string) error
	Delete(ctx context.Context, id uint) error
	DeleteByCocktail(ctx context.Context, cocktailID uint) error
	CocktailIDsByIngredient(ctx context.Context, ingredientID uint) ([]uint, error)
}
