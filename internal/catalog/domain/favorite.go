package domain

import (
	"context"
	"time"
)

// Favorite is a per-user bookmark of a cocktail. A user favors a given
// cocktail at most once; the color is optional.
type Favorite struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     string    `json:"user_id" gorm:"size:191;not null;uniqueIndex:idx_user_cocktail"`
	CocktailID uint      `json:"cocktail_id" gorm:"not null;uniqueIndex:idx_user_cocktail;index"`
	Cocktail   *Cocktail `json:"cocktail,omitempty" gorm:"foreignKey:CocktailID"`
	ColorID    *uint     `json:"color_id" gorm:"index"`
	Color      *Color    `json:"color,omitempty" gorm:"foreignKey:ColorID"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName specifies the table name
func (Favorite) TableName() string {
	return "favorites"
}

// ColorRef selects a color by id or by exact name. Name wins when both are set.
type ColorRef struct {
	ID   *uint
	Name string
}

// IsZero reports whether neither id nor name was supplied.
func (r ColorRef) IsZero() bool {
	return r.ID == nil && r.Name == ""
}

// FavoriteCount is how many users favored a cocktail.
type FavoriteCount struct {
	CocktailID uint  `json:"cocktail_id"`
	Count      int64 `json:"count"`
}

// CocktailWithFavorite annotates a cocktail with the caller's favorite state.
type CocktailWithFavorite struct {
	Cocktail
	IsFavorite    bool   `json:"is_favorite"`
	FavoriteColor *Color `json:"favorite_color,omitempty"`
}

// FavoriteRepository defines the contract for favorite data access
type FavoriteRepository interface {
	Create(ctx context.Context, favorite *Favorite) error
	Find(ctx context.Context, userID string, cocktailID uint) (*Favorite, error)
	DeleteByUserAndCocktail(ctx context.Context, userID string, cocktailID uint) error
	ListByUser(ctx context.Context, userID string) ([]Favorite, error)
	FindByCocktailIDs(ctx context.Context, userID string, cocktailIDs []uint) ([]Favorite, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
	DeleteByUser(ctx context.Context, userID string) (int64, error)
	DeleteByCocktail(ctx context.Context, cocktailID uint) (int64, error)
	SetColor(ctx context.Context, id uint, colorID *uint) error
	DetachColor(ctx context.Context, colorID uint) (int64, error)
	MostFavorited(ctx context.Context, limit int) ([]FavoriteCount, error)
}
