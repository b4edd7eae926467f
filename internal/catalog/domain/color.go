package domain

import (
	"context"
	"regexp"
	"strings"
	"time"
)

var hexCodePattern = regexp.MustCompile(`^#[0-9A-F]{6}$`)

// Color is a selectable display color for favorites.
type Color struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:50;not null;uniqueIndex"`
	HexCode     string    `json:"hex_code" gorm:"size:7;not null;uniqueIndex"`
	Description string    `json:"description,omitempty" gorm:"size:255"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name
func (Color) TableName() string {
	return "colors"
}

// NormalizeHexCode upper-cases the code and adds a missing leading '#'.
// It returns false when the result is not of the form #RRGGBB.
func NormalizeHexCode(code string) (string, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code != "" && !strings.HasPrefix(code, "#") {
		code = "#" + code
	}
	return code, hexCodePattern.MatchString(code)
}

// ColorRepository defines the contract for color data access
type ColorRepository interface {
	Create(ctx context.Context, color *Color) error
	FindByID(ctx context.Context, id uint) (*Color, error)
	FindByName(ctx context.Context, name string) (*Color, error)
	FindAll(ctx context.Context) ([]Color, error)
	Delete(ctx context.Context, id uint) error
}
