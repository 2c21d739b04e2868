package storage

import (
	"fmt"
	"swiperank/internal/providers"
	"swiperank/internal/structures"
)

// NewStoreProvider opens the configured driver behind a circuit breaker.
// The returned cleanup closes the store.
func NewStoreProvider(conf *structures.Config, compressor CompressorInterface, logger providers.Logger) (StoreInterface, func(), error) {
	var (
		inner StoreInterface
		err   error
	)

	switch conf.Persistence.Driver {
	case "badger":
		inner, err = NewBadgerStore(conf.Persistence.BadgerDir)
	case "redis":
		inner, err = NewRedisStore(conf.Persistence.Redis)
	case "memory":
		inner = NewMemoryStore()
	case "file", "":
		inner = NewFileStore(conf.Persistence.FilePath, compressor, logger)
	default:
		err = fmt.Errorf("unknown persistence driver %q", conf.Persistence.Driver)
	}
	if err != nil {
		return nil, nil, err
	}

	logger.Infof(providers.TypeApp, "State store opened with %s driver", driverName(conf.Persistence.Driver))

	store := NewBreakerStore(inner, conf.Persistence.Breaker, logger)
	cleanup := func() {
		if err := store.Close(); err != nil {
			logger.Errorf(providers.TypeApp, "Failed to close state store: %s", err)
		}
	}
	return store, cleanup, nil
}

func driverName(d string) string {
	if d == "" {
		return "file"
	}
	return d
}
