package storage

import (
	"context"
	"errors"
	"swiperank/internal/providers"
	"swiperank/internal/structures"

	"github.com/sony/gobreaker/v2"
)

const breakerName = "state-store"

// BreakerStore stops hammering an unavailable backend. While the breaker is
// open, calls fail fast with gobreaker.ErrOpenState and the caller keeps its
// in-memory state dirty for a later retry.
type BreakerStore struct {
	inner StoreInterface
	cb    *gobreaker.CircuitBreaker[[]byte]
}

func NewBreakerStore(inner StoreInterface, conf structures.BreakerConfig, logger providers.Logger) *BreakerStore {
	threshold := conf.FailureThreshold
	if threshold == 0 {
		threshold = 5
	}

	cb := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Timeout:     conf.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotFound) || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warnf(providers.TypeApp, "Circuit breaker %s: %s -> %s", name, from, to)
		},
	})

	return &BreakerStore{inner: inner, cb: cb}
}

func (s *BreakerStore) Get(ctx context.Context, key string) ([]byte, error) {
	return s.cb.Execute(func() ([]byte, error) {
		return s.inner.Get(ctx, key)
	})
}

func (s *BreakerStore) Apply(ctx context.Context, batch *Batch) error {
	_, err := s.cb.Execute(func() ([]byte, error) {
		return nil, s.inner.Apply(ctx, batch)
	})
	return err
}

func (s *BreakerStore) Maintain(ctx context.Context) error {
	return s.inner.Maintain(ctx)
}

func (s *BreakerStore) Close() error {
	return s.inner.Close()
}

func (s *BreakerStore) State() gobreaker.State {
	return s.cb.State()
}
