package repository

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tair/cocktail-catalog/internal/catalog/domain"
)

// GormCocktailRepository implements domain.CocktailRepository using GORM
type GormCocktailRepository struct {
	db *gorm.DB
}

// NewGormCocktailRepository creates a new GORM cocktail repository
func NewGormCocktailRepository(db *gorm.DB) *GormCocktailRepository {
	return &GormCocktailRepository{db: db}
}

// withComposition preloads composition rows in insertion order together
// with their ingredients.
func withComposition(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("cocktail_ingredients.id ASC")
		}).
		Preload("Ingredients.Ingredient")
}

func applyCocktailFilter(db *gorm.DB, filter domain.CocktailFilter) *gorm.DB {
	if filter.Category != "" {
		db = db.Where("category = ?", filter.Category)
	}
	if filter.Alcoholic != nil {
		db = db.Where("alcoholic = ?", *filter.Alcoholic)
	}
	if name := strings.TrimSpace(filter.Name); name != "" {
		db = db.Where("LOWER(name) LIKE ? ESCAPE '\\'", containsPattern(strings.ToLower(name)))
	}
	return db
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// containsPattern builds a LIKE pattern matching term literally as a
// substring; use it with ESCAPE '\'.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

// Create inserts the cocktail row only; composition rows are written
// through CompositionRepository.
func (r *GormCocktailRepository) Create(ctx context.Context, cocktail *domain.Cocktail) (err error) {
	ctx, span := startSpan(ctx, "cocktail.Create", attribute.String("cocktail.name", cocktail.Name))
	defer func() { finishSpan(span, err) }()

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(cocktail).Error; err != nil {
		return translateError(err, "cocktail %q", cocktail.Name)
	}
	span.SetAttributes(idAttr("cocktail.id", cocktail.ID))
	return nil
}

// FindByID retrieves a cocktail with its composition
func (r *GormCocktailRepository) FindByID(ctx context.Context, id uint) (_ *domain.Cocktail, err error) {
	ctx, span := startSpan(ctx, "cocktail.FindByID", idAttr("cocktail.id", id))
	defer func() { finishSpan(span, err) }()

	var cocktail domain.Cocktail
	if err := withComposition(r.db.WithContext(ctx)).First(&cocktail, id).Error; err != nil {
		return nil, translateError(err, "cocktail %d", id)
	}
	return &cocktail, nil
}

// FindByName retrieves a cocktail by exact, case-sensitive name
func (r *GormCocktailRepository) FindByName(ctx context.Context, name string) (_ *domain.Cocktail, err error) {
	ctx, span := startSpan(ctx, "cocktail.FindByName", attribute.String("cocktail.name", name))
	defer func() { finishSpan(span, err) }()

	var cocktail domain.Cocktail
	if err := withComposition(r.db.WithContext(ctx)).Where("name = ?", name).First(&cocktail).Error; err != nil {
		return nil, translateError(err, "cocktail %q", name)
	}
	return &cocktail, nil
}

// Update writes every attribute column; composition is left untouched.
func (r *GormCocktailRepository) Update(ctx context.Context, cocktail *domain.Cocktail) (err error) {
	ctx, span := startSpan(ctx, "cocktail.Update", idAttr("cocktail.id", cocktail.ID))
	defer func() { finishSpan(span, err) }()

	result := r.db.WithContext(ctx).
		Model(cocktail).
		Omit(clause.Associations).
		Select("name", "description", "category", "glass_type", "preparation_method", "image_url", "alcoholic", "updated_at").
		Updates(cocktail)
	if result.Error != nil {
		return translateError(result.Error, "cocktail %q", cocktail.Name)
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundf("cocktail %d", cocktail.ID)
	}
	return nil
}

// Touch refreshes updated_at after a composition change
func (r *GormCocktailRepository) Touch(ctx context.Context, id uint) (err error) {
	ctx, span := startSpan(ctx, "cocktail.Touch", idAttr("cocktail.id", id))
	defer func() { finishSpan(span, err) }()

	result := r.db.WithContext(ctx).
		Model(&domain.Cocktail{}).
		Where("id = ?", id).
		Update("updated_at", r.db.NowFunc())
	if result.Error != nil {
		return translateError(result.Error, "cocktail %d", id)
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundf("cocktail %d", id)
	}
	return nil
}

// Delete removes the cocktail row
func (r *GormCocktailRepository) Delete(ctx context.Context, id uint) (err error) {
	ctx, span := startSpan(ctx, "cocktail.Delete", idAttr("cocktail.id", id))
	defer func() { finishSpan(span, err) }()

	result := r.db.WithContext(ctx).Delete(&domain.Cocktail{}, id)
	if result.Error != nil {
		return translateError(result.Error, "cocktail %d", id)
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundf("cocktail %d", id)
	}
	return nil
}

// List returns one page of cocktails matching the filter and the total count
func (r *GormCocktailRepository) List(ctx context.Context, filter domain.CocktailFilter, page domain.PageRequest) (_ []domain.Cocktail, _ int64, err error) {
	ctx, span := startSpan(ctx, "cocktail.List",
		attribute.Int("page.number", page.Page),
		attribute.Int("page.size", page.Size),
		attribute.String("filter.category", filter.Category),
	)
	defer func() { finishSpan(span, err) }()

	order, err := page.OrderBy(domain.CocktailSortFields)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := applyCocktailFilter(r.db.WithContext(ctx).Model(&domain.Cocktail{}), filter).Count(&total).Error; err != nil {
		return nil, 0, translateError(err, "cocktails")
	}

	var cocktails []domain.Cocktail
	err = withComposition(applyCocktailFilter(r.db.WithContext(ctx), filter)).
		Order(order).
		Order("id ASC").
		Limit(page.Size).
		Offset(page.Offset()).
		Find(&cocktails).Error
	if err != nil {
		return nil, 0, translateError(err, "cocktails")
	}
	return cocktails, total, nil
}

// FindAll returns every cocktail matching the filter ordered by name
func (r *GormCocktailRepository) FindAll(ctx context.Context, filter domain.CocktailFilter) (_ []domain.Cocktail, err error) {
	ctx, span := startSpan(ctx, "cocktail.FindAll", attribute.String("filter.category", filter.Category))
	defer func() { finishSpan(span, err) }()

	var cocktails []domain.Cocktail
	if err := withComposition(applyCocktailFilter(r.db.WithContext(ctx), filter)).Order("name ASC").Find(&cocktails).Error; err != nil {
		return nil, translateError(err, "cocktails")
	}
	return cocktails, nil
}

// IDs returns every cocktail id in ascending order
func (r *GormCocktailRepository) IDs(ctx context.Context) (_ []uint, err error) {
	ctx, span := startSpan(ctx, "cocktail.IDs")
	defer func() { finishSpan(span, err) }()

	var ids []uint
	if err := r.db.WithContext(ctx).Model(&domain.Cocktail{}).Order("id ASC").Pluck("id", &ids).Error; err != nil {
		return nil, translateError(err, "cocktail ids")
	}
	return ids, nil
}

// Count returns the number of cocktails matching the filter
func (r *GormCocktailRepository) Count(ctx context.Context, filter domain.CocktailFilter) (_ int64, err error) {
	ctx, span := startSpan(ctx, "cocktail.Count")
	defer func() { finishSpan(span, err) }()

	var count int64
	if err := applyCocktailFilter(r.db.WithContext(ctx).Model(&domain.Cocktail{}), filter).Count(&count).Error; err != nil {
		return 0, translateError(err, "cocktails")
	}
	return count, nil
}

// TopCategories returns the most populated categories first
func (r *GormCocktailRepository) TopCategories(ctx context.Context, limit int) (_ []domain.CategoryCount, err error) {
	ctx, span := startSpan(ctx, "cocktail.TopCategories", attribute.Int("limit", limit))
	defer func() { finishSpan(span, err) }()

	var counts []domain.CategoryCount
	err = r.db.WithContext(ctx).
		Model(&domain.Cocktail{}).
		Select("category, COUNT(*) AS count").
		Group("category").
		Order("count DESC, category ASC").
		Limit(limit).
		Scan(&counts).Error
	if err != nil {
		return nil, translateError(err, "cocktail categories")
	}
	return counts, nil
}

// Latest returns the most recent cocktail by created_at or updated_at,
// or nil when the catalog is empty.
func (r *GormCocktailRepository) Latest(ctx context.Context, column string) (_ *domain.Cocktail, err error) {
	ctx, span := startSpan(ctx, "cocktail.Latest", attribute.String("column", column))
	defer func() { finishSpan(span, err) }()

	if column != "created_at" && column != "updated_at" {
		return nil, domain.InvalidInputf("cannot order by %q", column)
	}

	var cocktails []domain.Cocktail
	if err := r.db.WithContext(ctx).Order(column + " DESC").Order("id DESC").Limit(1).Find(&cocktails).Error; err != nil {
		return nil, translateError(err, "cocktails")
	}
	if len(cocktails) == 0 {
		return nil, nil
	}
	return &cocktails[0], nil
}
