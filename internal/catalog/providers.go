package catalog

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	httpDelivery "github.com/tair/cocktail-catalog/internal/catalog/delivery/http"
	"github.com/tair/cocktail-catalog/internal/catalog/domain"
	"github.com/tair/cocktail-catalog/internal/catalog/repository"
	"github.com/tair/cocktail-catalog/internal/catalog/usecase/command"
	"github.com/tair/cocktail-catalog/internal/catalog/usecase/query"
)

// ProvideStore provides the GORM-backed catalog store
func ProvideStore(db *gorm.DB) domain.Store {
	return repository.NewGormStore(db)
}

// Wire sets
var (
	RepositorySet = wire.NewSet(
		ProvideStore,
	)

	CommandSet = wire.NewSet(
		command.NewCreateCocktailHandler,
		command.NewUpdateCocktailHandler,
		command.NewDeleteCocktailHandler,
		command.NewAddCompositionLinesHandler,
		command.NewRemoveCompositionLineHandler,
		command.NewUpdateCompositionQuantityHandler,
		command.NewFindOrCreateIngredientHandler,
		command.NewCreateIngredientHandler,
		command.NewUpdateIngredientHandler,
		command.NewDeleteIngredientHandler,
		command.NewAddFavoriteHandler,
		command.NewRemoveFavoriteHandler,
		command.NewToggleFavoriteHandler,
		command.NewClearFavoritesHandler,
		command.NewSetFavoriteColorHandler,
		command.NewCreateColorHandler,
		command.NewDeleteColorHandler,
		wire.Struct(new(httpDelivery.Commands), "*"),
	)

	QuerySet = wire.NewSet(
		query.NewGetCocktailHandler,
		query.NewListCocktailsHandler,
		query.NewFindCocktailsHandler,
		query.NewGetStatsHandler,
		query.NewIDGapsHandler,
		query.NewIngredientsHandler,
		query.NewFavoritesHandler,
		query.NewColorsHandler,
		wire.Struct(new(httpDelivery.Queries), "*"),
	)
)
