package catalog

import (
	"context"
	"fmt"
	"strings"
	"swiperank/internal/models"
	"swiperank/internal/providers"

	"go.uber.org/atomic"
)

type LoaderInterface interface {
	Load(ctx context.Context) ([]*models.Product, error)
	Source() string
	Close(ctx context.Context) error
}

type CatalogServiceInterface interface {
	Products() []*models.Product
	Get(id string) (*models.Product, bool)
	Len() int
	Generation() uint64
	Replace(products []*models.Product) int
	Reload(ctx context.Context) error
}

type snapshot struct {
	products []*models.Product
	byID     map[string]*models.Product
}

// CatalogService holds an immutable product snapshot that Reload swaps
// atomically. Readers never block.
type CatalogService struct {
	current    atomic.Pointer[snapshot]
	generation atomic.Uint64
	loader     LoaderInterface
	logger     providers.Logger
	metrics    providers.MetricsProviderInterface
}

func NewCatalogService(loader LoaderInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) *CatalogService {
	cs := &CatalogService{loader: loader, logger: logger, metrics: metrics}
	cs.current.Store(&snapshot{products: []*models.Product{}, byID: map[string]*models.Product{}})
	return cs
}

// Products returns the catalog in source order. The slice is shared and
// must not be modified.
func (cs *CatalogService) Products() []*models.Product {
	return cs.current.Load().products
}

func (cs *CatalogService) Get(id string) (*models.Product, bool) {
	p, ok := cs.current.Load().byID[id]
	return p, ok
}

func (cs *CatalogService) Len() int {
	return len(cs.current.Load().products)
}

// Generation increases every time the catalog is replaced.
func (cs *CatalogService) Generation() uint64 {
	return cs.generation.Load()
}

// Replace installs products as the new catalog. Entries without an id are
// dropped and the first occurrence of a duplicate id wins.
func (cs *CatalogService) Replace(products []*models.Product) int {
	next := &snapshot{
		products: make([]*models.Product, 0, len(products)),
		byID:     make(map[string]*models.Product, len(products)),
	}
	for i, p := range products {
		if p == nil || strings.TrimSpace(p.ID) == "" {
			cs.logger.Warnf(providers.TypeApp, "Catalog entry %d has no id, skipped", i)
			continue
		}
		if _, dup := next.byID[p.ID]; dup {
			cs.logger.Warnf(providers.TypeApp, "Duplicate catalog id %s, keeping the first entry", p.ID)
			continue
		}
		next.byID[p.ID] = p
		next.products = append(next.products, p)
	}

	cs.current.Store(next)
	cs.generation.Inc()
	cs.metrics.SetCatalogSize(len(next.products))
	return len(next.products)
}

// Reload fetches the catalog from its source. On failure the previous
// snapshot stays in place.
func (cs *CatalogService) Reload(ctx context.Context) error {
	if cs.loader == nil {
		return nil
	}
	products, err := cs.loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("load catalog from %s: %w", cs.loader.Source(), err)
	}
	n := cs.Replace(products)
	cs.logger.Infof(providers.TypeApp, "Catalog loaded from %s: %d products", cs.loader.Source(), n)
	return nil
}
