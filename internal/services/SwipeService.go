package services

import (
	"context"
	"fmt"
	"swiperank/internal/models"
	"swiperank/internal/providers"
	"swiperank/internal/ranking"
	"swiperank/internal/storage"
	"time"

	json "github.com/goccy/go-json"
)

type SwipeResult struct {
	Changed  bool   `json:"changed"`
	Moved    bool   `json:"moved"`
	Revision uint64 `json:"revision"`
}

type SwipeServiceInterface interface {
	RecordSwipe(ctx context.Context, userID string, product *models.Product, direction models.Direction) SwipeResult
	ResetAll(ctx context.Context, userID string) uint64
	GetState(ctx context.Context, userID string) *models.SwipeState
	GetRankedCandidates(ctx context.Context, userID string, catalog []*models.Product) []*models.Product
	Revision(ctx context.Context, userID string) uint64
	FlushDirty(ctx context.Context) (flushed, failed int)
	EvictIdle(cutoff time.Time) int
	UsersInMemory() int
	DirtyUsers() int
}

type SwipeService struct {
	states  *userStates[*models.SwipeState]
	store   storage.StoreInterface
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
}

func NewSwipeService(store storage.StoreInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) SwipeServiceInterface {
	s := &SwipeService{store: store, logger: logger, metrics: metrics}
	s.states = newUserStates("swipes", stateCodec[*models.SwipeState]{
		empty:  models.NewSwipeState,
		load:   s.load,
		encode: encodeSwipeState,
	}, store, logger, metrics)
	return s
}

// RecordSwipe applies a like or dislike. Repeating the recorded direction
// changes nothing; reversing it moves the id and re-adjusts the weights.
func (s *SwipeService) RecordSwipe(ctx context.Context, userID string, product *models.Product, direction models.Direction) SwipeResult {
	var outcome models.SwipeOutcome
	changed, rev := s.states.update(ctx, userID, func(state **models.SwipeState) bool {
		outcome = (*state).Apply(product, direction)
		return outcome.Changed
	})
	if changed {
		s.metrics.IncSwipes(string(direction))
	}
	return SwipeResult{Changed: changed, Moved: outcome.Moved, Revision: rev}
}

func (s *SwipeService) ResetAll(ctx context.Context, userID string) uint64 {
	_, rev := s.states.update(ctx, userID, func(state **models.SwipeState) bool {
		*state = models.NewSwipeState()
		return true
	})
	return rev
}

// GetState returns a copy safe to read without locks.
func (s *SwipeService) GetState(ctx context.Context, userID string) *models.SwipeState {
	var out *models.SwipeState
	s.states.view(ctx, userID, func(state *models.SwipeState) {
		out = state.Clone()
	})
	return out
}

func (s *SwipeService) GetRankedCandidates(ctx context.Context, userID string, catalog []*models.Product) []*models.Product {
	var ranked []*models.Product
	s.states.view(ctx, userID, func(state *models.SwipeState) {
		ranked = ranking.RankCandidates(catalog, state.Weights, state.Liked, state.Disliked)
	})
	return ranked
}

func (s *SwipeService) Revision(ctx context.Context, userID string) uint64 {
	return s.states.revision(ctx, userID)
}

func (s *SwipeService) FlushDirty(ctx context.Context) (int, int) {
	return s.states.flushDirty(ctx)
}

func (s *SwipeService) EvictIdle(cutoff time.Time) int {
	return s.states.evictIdle(cutoff)
}

func (s *SwipeService) UsersInMemory() int {
	return s.states.len()
}

func (s *SwipeService) DirtyUsers() int {
	return s.states.dirtyCount()
}

func (s *SwipeService) load(ctx context.Context, userID string) (*models.SwipeState, error) {
	state := models.NewSwipeState()

	weights, found, err := readJSON[models.AttributeWeightMap](ctx, s.store, s.logger, storage.UserKey(userID, storage.KeyWeightages))
	if err != nil {
		return nil, err
	}
	if found && weights != nil {
		state.Weights = weights
	}

	liked, found, err := readJSON[*models.IDSet](ctx, s.store, s.logger, storage.UserKey(userID, storage.KeyLikedProducts))
	if err != nil {
		return nil, err
	}
	if found && liked != nil {
		state.Liked = liked
	}

	disliked, found, err := readJSON[*models.IDSet](ctx, s.store, s.logger, storage.UserKey(userID, storage.KeyDislikedProducts))
	if err != nil {
		return nil, err
	}
	if found && disliked != nil {
		state.Disliked = disliked
	}

	// A hand-edited store may list an id in both sets; the like wins.
	for _, id := range state.Liked.IDs() {
		state.Disliked.Remove(id)
	}
	return state, nil
}

// encodeSwipeState writes the three keys together, or deletes them all
// once the state is back to empty.
func encodeSwipeState(userID string, state *models.SwipeState) (*storage.Batch, error) {
	keys := []string{
		storage.UserKey(userID, storage.KeyWeightages),
		storage.UserKey(userID, storage.KeyLikedProducts),
		storage.UserKey(userID, storage.KeyDislikedProducts),
	}

	batch := storage.NewBatch()
	if state.IsEmpty() {
		for _, k := range keys {
			batch.Delete(k)
		}
		return batch, nil
	}

	values := []interface{}{state.Weights, state.Liked, state.Disliked}
	for i, v := range values {
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("marshal %s: %w", keys[i], err)
		}
		batch.Set(keys[i], data)
	}
	return batch, nil
}
