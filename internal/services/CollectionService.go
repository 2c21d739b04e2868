package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"swiperank/internal/models"
	"swiperank/internal/providers"
	"swiperank/internal/storage"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
)

var ErrCollectionNotFound = errors.New("collection not found")

type CollectionServiceInterface interface {
	CreateCollection(ctx context.Context, userID, name string, product *models.Product) (models.Collection, error)
	AddToCollection(ctx context.Context, userID, collectionID, productID string) (bool, error)
	RemoveCollection(ctx context.Context, userID, collectionID string) bool
	ListCollections(ctx context.Context, userID string) []models.Collection
	FlushDirty(ctx context.Context) (flushed, failed int)
	EvictIdle(cutoff time.Time) int
}

type CollectionService struct {
	states *userStates[[]*models.Collection]
	store  storage.StoreInterface
	logger providers.Logger
	now    func() time.Time
}

func NewCollectionService(store storage.StoreInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) CollectionServiceInterface {
	s := &CollectionService{store: store, logger: logger, now: time.Now}
	s.states = newUserStates("collections", stateCodec[[]*models.Collection]{
		empty:  func() []*models.Collection { return nil },
		load:   s.load,
		encode: encodeCollections,
	}, store, logger, metrics)
	return s
}

// CreateCollection starts a new collection holding product. The collection
// image is a snapshot of the product's first image, empty when it has none.
func (s *CollectionService) CreateCollection(ctx context.Context, userID, name string, product *models.Product) (models.Collection, error) {
	if product == nil {
		return models.Collection{}, errors.New("collection needs an initial product")
	}
	id, err := uuid.NewV7()
	if err != nil {
		return models.Collection{}, fmt.Errorf("generate collection id: %w", err)
	}

	c := models.NewCollection(id.String(), strings.TrimSpace(name), product, s.now().UTC())
	s.states.update(ctx, userID, func(list *[]*models.Collection) bool {
		*list = append(*list, c)
		return true
	})
	return c.Clone(), nil
}

// AddToCollection appends productID. Adding a product twice is a no-op.
func (s *CollectionService) AddToCollection(ctx context.Context, userID, collectionID, productID string) (bool, error) {
	found := false
	added, _ := s.states.update(ctx, userID, func(list *[]*models.Collection) bool {
		for _, c := range *list {
			if c.ID == collectionID {
				found = true
				return c.AddProduct(productID)
			}
		}
		return false
	})
	if !found {
		return false, fmt.Errorf("add to %s: %w", collectionID, ErrCollectionNotFound)
	}
	return added, nil
}

func (s *CollectionService) RemoveCollection(ctx context.Context, userID, collectionID string) bool {
	removed, _ := s.states.update(ctx, userID, func(list *[]*models.Collection) bool {
		for i, c := range *list {
			if c.ID == collectionID {
				*list = append((*list)[:i:i], (*list)[i+1:]...)
				return true
			}
		}
		return false
	})
	return removed
}

func (s *CollectionService) ListCollections(ctx context.Context, userID string) []models.Collection {
	out := make([]models.Collection, 0)
	s.states.view(ctx, userID, func(list []*models.Collection) {
		for _, c := range list {
			out = append(out, c.Clone())
		}
	})
	return out
}

func (s *CollectionService) FlushDirty(ctx context.Context) (int, int) {
	return s.states.flushDirty(ctx)
}

func (s *CollectionService) EvictIdle(cutoff time.Time) int {
	return s.states.evictIdle(cutoff)
}

func (s *CollectionService) load(ctx context.Context, userID string) ([]*models.Collection, error) {
	list, _, err := readJSON[[]*models.Collection](ctx, s.store, s.logger, storage.UserKey(userID, storage.KeyCollections))
	if err != nil {
		return nil, err
	}

	out := make([]*models.Collection, 0, len(list))
	for _, c := range list {
		if c == nil || c.ID == "" {
			continue
		}
		if c.ProductIDs == nil {
			c.ProductIDs = []string{}
		}
		out = append(out, c)
	}
	return out, nil
}

func encodeCollections(userID string, list []*models.Collection) (*storage.Batch, error) {
	key := storage.UserKey(userID, storage.KeyCollections)
	if len(list) == 0 {
		return storage.NewBatch().Delete(key), nil
	}
	data, err := json.Marshal(list)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", key, err)
	}
	return storage.NewBatch().Set(key, data), nil
}
