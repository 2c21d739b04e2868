package catalog

import (
	"context"
	"swiperank/internal/providers"
	"swiperank/internal/storage"
	"swiperank/internal/structures"
)

// NewCatalogProvider builds the configured loader and performs the first
// load. A failed first load is logged and the daemon starts with an empty
// catalog that the scheduler keeps retrying.
func NewCatalogProvider(conf *structures.Config, compressor storage.CompressorInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) (CatalogServiceInterface, func(), error) {
	var loader LoaderInterface
	switch conf.Catalog.Source {
	case "mongo":
		ml, err := NewMongoLoader(conf.Catalog.Mongo)
		if err != nil {
			return nil, nil, err
		}
		loader = ml
	default:
		loader = NewFileLoader(conf.Catalog.Path, compressor)
	}

	cs := NewCatalogService(loader, logger, metrics)
	if err := cs.Reload(context.Background()); err != nil {
		logger.Errorf(providers.TypeApp, "Initial catalog load failed: %s", err)
	}

	cleanup := func() {
		if err := loader.Close(context.Background()); err != nil {
			logger.Errorf(providers.TypeApp, "Failed to close catalog source: %s", err)
		}
	}
	return cs, cleanup, nil
}
