package repository

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"

	"github.com/tair/cocktail-catalog/internal/catalog/domain"
)

// GormIngredientRepository implements domain.IngredientRepository using GORM
type GormIngredientRepository struct {
	db *gorm.DB
}

// NewGormIngredientRepository creates a new GORM ingredient repository
func NewGormIngredientRepository(db *gorm.DB) *GormIngredientRepository {
	return &GormIngredientRepository{db: db}
}

// Create inserts an ingredient. A name that differs only by case from an
// existing one violates the name_key index and yields ErrConflict.
func (r *GormIngredientRepository) Create(ctx context.Context, ingredient *domain.Ingredient) (err error) {
	ctx, span := startSpan(ctx, "ingredient.Create", attribute.String("ingredient.name", ingredient.Name))
	defer func() { finishSpan(span, err) }()

	ingredient.NameKey = domain.NormalizeName(ingredient.Name)
	if err := r.db.WithContext(ctx).Create(ingredient).Error; err != nil {
		return translateError(err, "ingredient %q", ingredient.Name)
	}
	span.SetAttributes(idAttr("ingredient.id", ingredient.ID))
	return nil
}

// FindByID retrieves an ingredient by ID
func (r *GormIngredientRepository) FindByID(ctx context.Context, id uint) (_ *domain.Ingredient, err error) {
	ctx, span := startSpan(ctx, "ingredient.FindByID", idAttr("ingredient.id", id))
	defer func() { finishSpan(span, err) }()

	var ingredient domain.Ingredient
	if err := r.db.WithContext(ctx).First(&ingredient, id).Error; err != nil {
		return nil, translateError(err, "ingredient %d", id)
	}
	return &ingredient, nil
}

// FindByName retrieves an ingredient by case-insensitive name
func (r *GormIngredientRepository) FindByName(ctx context.Context, name string) (_ *domain.Ingredient, err error) {
	ctx, span := startSpan(ctx, "ingredient.FindByName", attribute.String("ingredient.name", name))
	defer func() { finishSpan(span, err) }()

	var ingredient domain.Ingredient
	if err := r.db.WithContext(ctx).Where("name_key = ?", domain.NormalizeName(name)).First(&ingredient).Error; err != nil {
		return nil, translateError(err, "ingredient %q", name)
	}
	return &ingredient, nil
}

// Update overwrites every editable column
func (r *GormIngredientRepository) Update(ctx context.Context, ingredient *domain.Ingredient) (err error) {
	ctx, span := startSpan(ctx, "ingredient.Update", idAttr("ingredient.id", ingredient.ID))
	defer func() { finishSpan(span, err) }()

	ingredient.NameKey = domain.NormalizeName(ingredient.Name)
	result := r.db.WithContext(ctx).
		Model(ingredient).
		Select("name", "name_key", "category", "unit", "description").
		Updates(ingredient)
	if result.Error != nil {
		return translateError(result.Error, "ingredient %q", ingredient.Name)
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundf("ingredient %d", ingredient.ID)
	}
	return nil
}

// Delete removes an ingredient
func (r *GormIngredientRepository) Delete(ctx context.Context, id uint) (err error) {
	ctx, span := startSpan(ctx, "ingredient.Delete", idAttr("ingredient.id", id))
	defer func() { finishSpan(span, err) }()

	result := r.db.WithContext(ctx).Delete(&domain.Ingredient{}, id)
	if result.Error != nil {
		return translateError(result.Error, "ingredient %d", id)
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundf("ingredient %d", id)
	}
	return nil
}

// List returns one page of ingredients and the total count
func (r *GormIngredientRepository) List(ctx context.Context, page domain.PageRequest) ([]domain.Ingredient, int64, error) {
	return r.page(ctx, "ingredient.List", "", page)
}

// Search returns one page of ingredients whose name contains the term,
// ignoring case.
func (r *GormIngredientRepository) Search(ctx context.Context, name string, page domain.PageRequest) ([]domain.Ingredient, int64, error) {
	return r.page(ctx, "ingredient.Search", domain.NormalizeName(name), page)
}

func (r *GormIngredientRepository) page(ctx context.Context, op, term string, page domain.PageRequest) (_ []domain.Ingredient, _ int64, err error) {
	ctx, span := startSpan(ctx, op,
		attribute.String("search.term", term),
		attribute.Int("page.number", page.Page),
		attribute.Int("page.size", page.Size),
	)
	defer func() { finishSpan(span, err) }()

	order, err := page.OrderBy(domain.IngredientSortFields)
	if err != nil {
		return nil, 0, err
	}

	scope := func(db *gorm.DB) *gorm.DB {
		if term != "" {
			return db.Where("name_key LIKE ? ESCAPE '\\'", containsPattern(term))
		}
		return db
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.Ingredient{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, translateError(err, "ingredients")
	}

	var ingredients []domain.Ingredient
	err = r.db.WithContext(ctx).
		Scopes(scope).
		Order(order).
		Order("id ASC").
		Limit(page.Size).
		Offset(page.Offset()).
		Find(&ingredients).Error
	if err != nil {
		return nil, 0, translateError(err, "ingredients")
	}
	return ingredients, total, nil
}

// FindAll returns every ingredient ordered by category and name
func (r *GormIngredientRepository) FindAll(ctx context.Context) (_ []domain.Ingredient, err error) {
	ctx, span := startSpan(ctx, "ingredient.FindAll")
	defer func() { finishSpan(span, err) }()

	var ingredients []domain.Ingredient
	if err := r.db.WithContext(ctx).Order("category ASC").Order("name ASC").Find(&ingredients).Error; err != nil {
		return nil, translateError(err, "ingredients")
	}
	return ingredients, nil
}

// Count returns the number of ingredients
func (r *GormIngredientRepository) Count(ctx context.Context) (_ int64, err error) {
	ctx, span := startSpan(ctx, "ingredient.Count")
	defer func() { finishSpan(span, err) }()

	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Ingredient{}).Count(&count).Error; err != nil {
		return 0, translateError(err, "ingredients")
	}
	return count, nil
}
