package repository

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"

	"github.com/tair/cocktail-catalog/internal/catalog/domain"
)

// GormColorRepository implements domain.ColorRepository using GORM
type GormColorRepository struct {
	db *gorm.DB
}

// NewGormColorRepository creates a new GORM color repository
func NewGormColorRepository(db *gorm.DB) *GormColorRepository {
	return &GormColorRepository{db: db}
}

func (r *GormColorRepository) Create(ctx context.Context, color *domain.Color) (err error) {
	ctx, span := startSpan(ctx, "color.Create",
		attribute.String("color.name", color.Name),
		attribute.String("color.hex", color.HexCode),
	)
	defer func() { finishSpan(span, err) }()

	if err := r.db.WithContext(ctx).Create(color).Error; err != nil {
		return translateError(err, "color %q", color.Name)
	}
	return nil
}

func (r *GormColorRepository) FindByID(ctx context.Context, id uint) (_ *domain.Color, err error) {
	ctx, span := startSpan(ctx, "color.FindByID", idAttr("color.id", id))
	defer func() { finishSpan(span, err) }()

	var color domain.Color
	if err := r.db.WithContext(ctx).First(&color, id).Error; err != nil {
		return nil, translateError(err, "color %d", id)
	}
	return &color, nil
}

func (r *GormColorRepository) FindByName(ctx context.Context, name string) (_ *domain.Color, err error) {
	ctx, span := startSpan(ctx, "color.FindByName", attribute.String("color.name", name))
	defer func() { finishSpan(span, err) }()

	var color domain.Color
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&color).Error; err != nil {
		return nil, translateError(err, "color %q", name)
	}
	return &color, nil
}

func (r *GormColorRepository) FindAll(ctx context.Context) (_ []domain.Color, err error) {
	ctx, span := startSpan(ctx, "color.FindAll")
	defer func() { finishSpan(span, err) }()

	var colors []domain.Color
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&colors).Error; err != nil {
		return nil, translateError(err, "colors")
	}
	return colors, nil
}

func (r *GormColorRepository) Delete(ctx context.Context, id uint) (err error) {
	ctx, span := startSpan(ctx, "color.Delete", idAttr("color.id", id))
	defer func() { finishSpan(span, err) }()

	result := r.db.WithContext(ctx).Delete(&domain.Color{}, id)
	if result.Error != nil {
		return translateError(result.Error, "color %d", id)
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundf("color %d", id)
	}
	return nil
}
