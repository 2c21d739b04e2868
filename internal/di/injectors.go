//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"swiperank/internal"
	"swiperank/internal/catalog"
	"swiperank/internal/controllers"
	"swiperank/internal/providers"
	"swiperank/internal/scheduler"
	"swiperank/internal/services"
	"swiperank/internal/storage"
	"swiperank/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, func(), error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		storage.NewCompressorProvider,
		storage.NewStoreProvider,
		catalog.NewCatalogProvider,
		services.NewSwipeService,
		services.NewProfileService,
		services.NewCollectionService,
		scheduler.NewScheduler,
		controllers.NewApiController,
		controllers.NewProfileController,
		controllers.NewCollectionsController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewHandler,
		internal.NewApp,
	)

	return nil, nil, nil
}
