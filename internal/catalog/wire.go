//go:build wireinject
// +build wireinject

package catalog

import (
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	httpDelivery "github.com/tair/cocktail-catalog/internal/catalog/delivery/http"
	"github.com/tair/cocktail-catalog/internal/catalog/domain"
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, events domain.EventPublisher, cache domain.CocktailCache, reg prometheus.Registerer) (*httpDelivery.CatalogHandler, error) {
	wire.Build(
		RepositorySet,
		CommandSet,
		QuerySet,
		httpDelivery.NewCatalogHandler,
	)
	return nil, nil
}
