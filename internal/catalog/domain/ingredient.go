package domain

import (
	"context"
	"strings"
	"time"
)

const (
	DefaultIngredientCategory = "Altro"
	DefaultIngredientUnit     = "pezzi"
)

// Ingredient is shared by every cocktail that lists it. Name uniqueness is
// case-insensitive and enforced through NameKey.
type Ingredient struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:100;not null"`
	NameKey     string    `json:"-" gorm:"size:100;not null;uniqueIndex"`
	Category    string    `json:"category" gorm:"size:50;not null;index"`
	Unit        string    `json:"unit" gorm:"size:30;not null"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name
func (Ingredient) TableName() string {
	return "ingredients"
}

// NormalizeName returns the lookup key used for case-insensitive matching.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ApplyDefaults fills category and unit when blank and syncs NameKey.
func (i *Ingredient) ApplyDefaults() {
	i.Name = strings.TrimSpace(i.Name)
	i.NameKey = NormalizeName(i.Name)
	if strings.TrimSpace(i.Category) == "" {
		i.Category = DefaultIngredientCategory
	}
	if strings.TrimSpace(i.Unit) == "" {
		i.Unit = DefaultIngredientUnit
	}
}

// IngredientRepository defines the contract for ingredient data access
type IngredientRepository interface {
	Create(ctx context.Context, ingredient *Ingredient) error
	FindByID(ctx context.Context, id uint) (*Ingredient, error)
	FindByName(ctx context.Context, name string) (*Ingredient, error)
	Update(ctx context.Context, ingredient *Ingredient) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, page PageRequest) ([]Ingredient, int64, error)
	Search(ctx context.Context, name string, page PageRequest) ([]Ingredient, int64, error)
	FindAll(ctx context.Context) ([]Ingredient, error)
	Count(ctx context.Context) (int64, error)
}
