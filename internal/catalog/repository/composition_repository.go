package repository

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tair/cocktail-catalog/internal/catalog/domain"
)

// GormCompositionRepository implements domain.CompositionRepository using GORM
type GormCompositionRepository struct {
	db *gorm.DB
}

// NewGormCompositionRepository creates a new GORM composition repository
func NewGormCompositionRepository(db *gorm.DB) *GormCompositionRepository {
	return &GormCompositionRepository{db: db}
}

// Upsert inserts the entry or overwrites the quantity of the row already
// linking the same cocktail and ingredient.
func (r *GormCompositionRepository) Upsert(ctx context.Context, entry *domain.CompositionEntry) (err error) {
	ctx, span := startSpan(ctx, "composition.Upsert",
		idAttr("cocktail.id", entry.CocktailID),
		idAttr("ingredient.id", entry.IngredientID),
		attribute.String("composition.quantity", entry.Quantity),
	)
	defer func() { finishSpan(span, err) }()

	err = r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "cocktail_id"}, {Name: "ingredient_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"quantity"}),
		}).
		Create(entry).Error
	if err != nil {
		return translateError(err, "composition of cocktail %d", entry.CocktailID)
	}
	return nil
}

// FindByIngredientID retrieves the row linking a cocktail to an ingredient
func (r *GormCompositionRepository) FindByIngredientID(ctx context.Context, cocktailID, ingredientID uint) (_ *domain.CompositionEntry, err error) {
	ctx, span := startSpan(ctx, "composition.FindByIngredientID",
		idAttr("cocktail.id", cocktailID),
		idAttr("ingredient.id", ingredientID),
	)
	defer func() { finishSpan(span, err) }()

	var entry domain.CompositionEntry
	err = r.db.WithContext(ctx).
		Preload("Ingredient").
		Where("cocktail_id = ? AND ingredient_id = ?", cocktailID, ingredientID).
		First(&entry).Error
	if err != nil {
		return nil, translateError(err, "ingredient %d in cocktail %d", ingredientID, cocktailID)
	}
	return &entry, nil
}

// FindByIngredientName matches the ingredient name exactly, case included
func (r *GormCompositionRepository) FindByIngredientName(ctx context.Context, cocktailID uint, name string) (_ *domain.CompositionEntry, err error) {
	ctx, span := startSpan(ctx, "composition.FindByIngredientName",
		idAttr("cocktail.id", cocktailID),
		attribute.String("ingredient.name", name),
	)
	defer func() { finishSpan(span, err) }()

	var entry domain.CompositionEntry
	err = r.db.WithContext(ctx).
		Preload("Ingredient").
		Joins("JOIN ingredients ON ingredients.id = cocktail_ingredients.ingredient_id").
		Where("cocktail_ingredients.cocktail_id = ? AND ingredients.name = ?", cocktailID, name).
		First(&entry).Error
	if err != nil {
		return nil, translateError(err, "ingredient %q in cocktail %d", name, cocktailID)
	}
	return &entry, nil
}

// UpdateQuantity sets the quantity of one composition row
func (r *GormCompositionRepository) UpdateQuantity(ctx context.Context, id uint, quantity string) (err error) {
	ctx, span := startSpan(ctx, "composition.UpdateQuantity", idAttr("composition.id", id))
	defer func() { finishSpan(span, err) }()

	result := r.db.WithContext(ctx).
		Model(&domain.CompositionEntry{}).
		Where("id = ?", id).
		Update("quantity", quantity)
	if result.Error != nil {
		return translateError(result.Error, "composition %d", id)
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundf("composition %d", id)
	}
	return nil
}

// Delete removes one composition row; the ingredient itself is kept
func (r *GormCompositionRepository) Delete(ctx context.Context, id uint) (err error) {
	ctx, span := startSpan(ctx, "composition.Delete", idAttr("composition.id", id))
	defer func() { finishSpan(span, err) }()

	result := r.db.WithContext(ctx).Delete(&domain.CompositionEntry{}, id)
	if result.Error != nil {
		return translateError(result.Error, "composition %d", id)
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundf("composition %d", id)
	}
	return nil
}

// DeleteByCocktail removes every composition row of a cocktail
func (r *GormCompositionRepository) DeleteByCocktail(ctx context.Context, cocktailID uint) (err error) {
	ctx, span := startSpan(ctx, "composition.DeleteByCocktail", idAttr("cocktail.id", cocktailID))
	defer func() { finishSpan(span, err) }()

	if err := r.db.WithContext(ctx).Where("cocktail_id = ?", cocktailID).Delete(&domain.CompositionEntry{}).Error; err != nil {
		return translateError(err, "composition of cocktail %d", cocktailID)
	}
	return nil
}

// CocktailIDsByIngredient returns the cocktails that use an ingredient
func (r *GormCompositionRepository) CocktailIDsByIngredient(ctx context.Context, ingredientID uint) (_ []uint, err error) {
	ctx, span := startSpan(ctx, "composition.CocktailIDsByIngredient", idAttr("ingredient.id", ingredientID))
	defer func() { finishSpan(span, err) }()

	var ids []uint
	err = r.db.WithContext(ctx).
		Model(&domain.CompositionEntry{}).
		Where("ingredient_id = ?", ingredientID).
		Order("cocktail_id ASC").
		Pluck("cocktail_id", &ids).Error
	if err != nil {
		return nil, translateError(err, "composition of ingredient %d", ingredientID)
	}
	return ids, nil
}
