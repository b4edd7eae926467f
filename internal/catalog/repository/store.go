package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/tair/cocktail-catalog/internal/catalog/domain"
)

// GormStore implements domain.Store on a single *gorm.DB handle, which is
// either the connection pool or an open transaction.
type GormStore struct {
	db           *gorm.DB
	cocktails    *GormCocktailRepository
	compositions *GormCompositionRepository
	ingredients  *GormIngredientRepository
	favorites    *GormFavoriteRepository
	colors       *GormColorRepository
}

// NewGormStore creates a store over db
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{
		db:           db,
		cocktails:    NewGormCocktailRepository(db),
		compositions: NewGormCompositionRepository(db),
		ingredients:  NewGormIngredientRepository(db),
		favorites:    NewGormFavoriteRepository(db),
		colors:       NewGormColorRepository(db),
	}
}

// AutoMigrate creates or updates the catalog schema
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.Ingredient{},
		&domain.Color{},
		&domain.Cocktail{},
		&domain.CompositionEntry{},
		&domain.Favorite{},
	); err != nil {
		return fmt.Errorf("failed to migrate catalog schema: %w", err)
	}
	return nil
}

func (s *GormStore) Cocktails() domain.CocktailRepository       { return s.cocktails }
func (s *GormStore) Compositions() domain.CompositionRepository { return s.compositions }
func (s *GormStore) Ingredients() domain.IngredientRepository   { return s.ingredients }
func (s *GormStore) Favorites() domain.FavoriteRepository       { return s.favorites }
func (s *GormStore) Colors() domain.ColorRepository             { return s.colors }

// Atomic runs fn inside a transaction. Calling it on a store that is
// already transactional opens a savepoint, so a failing inner block can be
// rolled back without aborting the outer one.
func (s *GormStore) Atomic(ctx context.Context, fn func(tx domain.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewGormStore(tx))
	})
}

// Ping checks database connectivity
func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql db: %w", err)
	}
	return sqlDB.PingContext(ctx)
}
