package repository

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tair/cocktail-catalog/internal/catalog/domain"
)

// GormFavoriteRepository implements domain.FavoriteRepository using GORM
type GormFavoriteRepository struct {
	db *gorm.DB
}

// NewGormFavoriteRepository creates a new GORM favorite repository
func NewGormFavoriteRepository(db *gorm.DB) *GormFavoriteRepository {
	return &GormFavoriteRepository{db: db}
}

func userAttr(userID string) attribute.KeyValue {
	return attribute.String("user.id", userID)
}

// Create inserts a favorite. A second row for the same (user, cocktail)
// pair violates idx_user_cocktail and yields ErrConflict.
func (r *GormFavoriteRepository) Create(ctx context.Context, favorite *domain.Favorite) (err error) {
	ctx, span := startSpan(ctx, "favorite.Create", userAttr(favorite.UserID), idAttr("cocktail.id", favorite.CocktailID))
	defer func() { finishSpan(span, err) }()

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(favorite).Error; err != nil {
		return translateError(err, "favorite of cocktail %d", favorite.CocktailID)
	}
	return nil
}

// Find retrieves the favorite of a user for a cocktail, with its color
func (r *GormFavoriteRepository) Find(ctx context.Context, userID string, cocktailID uint) (_ *domain.Favorite, err error) {
	ctx, span := startSpan(ctx, "favorite.Find", userAttr(userID), idAttr("cocktail.id", cocktailID))
	defer func() { finishSpan(span, err) }()

	var favorite domain.Favorite
	err = r.db.WithContext(ctx).
		Preload("Color").
		Where("user_id = ? AND cocktail_id = ?", userID, cocktailID).
		First(&favorite).Error
	if err != nil {
		return nil, translateError(err, "favorite of cocktail %d", cocktailID)
	}
	return &favorite, nil
}

// DeleteByUserAndCocktail removes one favorite
func (r *GormFavoriteRepository) DeleteByUserAndCocktail(ctx context.Context, userID string, cocktailID uint) (err error) {
	ctx, span := startSpan(ctx, "favorite.Delete", userAttr(userID), idAttr("cocktail.id", cocktailID))
	defer func() { finishSpan(span, err) }()

	result := r.db.WithContext(ctx).
		Where("user_id = ? AND cocktail_id = ?", userID, cocktailID).
		Delete(&domain.Favorite{})
	if result.Error != nil {
		return translateError(result.Error, "favorite of cocktail %d", cocktailID)
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundf("favorite of cocktail %d", cocktailID)
	}
	return nil
}

// ListByUser returns the favorites of a user in insertion order, each with
// its cocktail, the cocktail composition and the chosen color.
func (r *GormFavoriteRepository) ListByUser(ctx context.Context, userID string) (_ []domain.Favorite, err error) {
	ctx, span := startSpan(ctx, "favorite.ListByUser", userAttr(userID))
	defer func() { finishSpan(span, err) }()

	var favorites []domain.Favorite
	err = r.db.WithContext(ctx).
		Preload("Cocktail").
		Preload("Cocktail.Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("cocktail_ingredients.id ASC")
		}).
		Preload("Cocktail.Ingredients.Ingredient").
		Preload("Color").
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&favorites).Error
	if err != nil {
		return nil, translateError(err, "favorites")
	}
	return favorites, nil
}

// FindByCocktailIDs returns the favorites of a user among the given cocktails
func (r *GormFavoriteRepository) FindByCocktailIDs(ctx context.Context, userID string, cocktailIDs []uint) (_ []domain.Favorite, err error) {
	ctx, span := startSpan(ctx, "favorite.FindByCocktailIDs", userAttr(userID), attribute.Int("cocktail.count", len(cocktailIDs)))
	defer func() { finishSpan(span, err) }()

	var favorites []domain.Favorite
	if len(cocktailIDs) == 0 {
		return favorites, nil
	}
	err = r.db.WithContext(ctx).
		Preload("Color").
		Where("user_id = ? AND cocktail_id IN ?", userID, cocktailIDs).
		Find(&favorites).Error
	if err != nil {
		return nil, translateError(err, "favorites")
	}
	return favorites, nil
}

// CountByUser returns the number of favorites of a user
func (r *GormFavoriteRepository) CountByUser(ctx context.Context, userID string) (_ int64, err error) {
	ctx, span := startSpan(ctx, "favorite.CountByUser", userAttr(userID))
	defer func() { finishSpan(span, err) }()

	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Favorite{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, translateError(err, "favorites")
	}
	return count, nil
}

// DeleteByUser removes every favorite of a user
func (r *GormFavoriteRepository) DeleteByUser(ctx context.Context, userID string) (_ int64, err error) {
	ctx, span := startSpan(ctx, "favorite.DeleteByUser", userAttr(userID))
	defer func() { finishSpan(span, err) }()

	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&domain.Favorite{})
	if result.Error != nil {
		return 0, translateError(result.Error, "favorites")
	}
	return result.RowsAffected, nil
}

// DeleteByCocktail removes every favorite pointing at a cocktail
func (r *GormFavoriteRepository) DeleteByCocktail(ctx context.Context, cocktailID uint) (_ int64, err error) {
	ctx, span := startSpan(ctx, "favorite.DeleteByCocktail", idAttr("cocktail.id", cocktailID))
	defer func() { finishSpan(span, err) }()

	result := r.db.WithContext(ctx).Where("cocktail_id = ?", cocktailID).Delete(&domain.Favorite{})
	if result.Error != nil {
		return 0, translateError(result.Error, "favorites of cocktail %d", cocktailID)
	}
	return result.RowsAffected, nil
}

// SetColor points a favorite at a color, or clears it when colorID is nil
func (r *GormFavoriteRepository) SetColor(ctx context.Context, id uint, colorID *uint) (err error) {
	ctx, span := startSpan(ctx, "favorite.SetColor", idAttr("favorite.id", id))
	defer func() { finishSpan(span, err) }()

	var value any = gorm.Expr("NULL")
	if colorID != nil {
		value = *colorID
	}

	result := r.db.WithContext(ctx).Model(&domain.Favorite{}).Where("id = ?", id).Update("color_id", value)
	if result.Error != nil {
		return translateError(result.Error, "favorite %d", id)
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundf("favorite %d", id)
	}
	return nil
}

// DetachColor clears the color of every favorite using it
func (r *GormFavoriteRepository) DetachColor(ctx context.Context, colorID uint) (_ int64, err error) {
	ctx, span := startSpan(ctx, "favorite.DetachColor", idAttr("color.id", colorID))
	defer func() { finishSpan(span, err) }()

	result := r.db.WithContext(ctx).
		Model(&domain.Favorite{}).
		Where("color_id = ?", colorID).
		Update("color_id", gorm.Expr("NULL"))
	if result.Error != nil {
		return 0, translateError(result.Error, "favorites of color %d", colorID)
	}
	return result.RowsAffected, nil
}

// MostFavorited counts favorites per cocktail, highest first. A limit of
// zero or less returns every cocktail that has at least one favorite.
func (r *GormFavoriteRepository) MostFavorited(ctx context.Context, limit int) (_ []domain.FavoriteCount, err error) {
	ctx, span := startSpan(ctx, "favorite.MostFavorited", attribute.Int("limit", limit))
	defer func() { finishSpan(span, err) }()

	query := r.db.WithContext(ctx).
		Model(&domain.Favorite{}).
		Select("cocktail_id, COUNT(*) AS count").
		Group("cocktail_id").
		Order("count DESC, cocktail_id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var counts []domain.FavoriteCount
	if err := query.Scan(&counts).Error; err != nil {
		return nil, translateError(err, "favorite counts")
	}
	return counts, nil
}
