package services

import (
	"context"
	"errors"
	"swiperank/internal/providers"
	"swiperank/internal/storage"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"go.uber.org/atomic"
)

const persistTimeout = 5 * time.Second

type userEntry[T any] struct {
	mu          sync.Mutex
	value       T
	evicted     bool
	// pending holds changes made while the store could not be read. They are
	// replayed over the durable value once it loads.
	pending     []func(value *T) bool
	transient   atomic.Bool
	dirty       atomic.Bool
	revision    atomic.Uint64
	lastTouched atomic.Int64
}

func newUserEntry[T any](value T) *userEntry[T] {
	e := &userEntry[T]{value: value}
	// Seeding with the clock keeps revisions increasing across evict and reload.
	e.revision.Store(uint64(time.Now().UnixNano()))
	return e
}

type stateCodec[T any] struct {
	empty  func() T
	load   func(ctx context.Context, userID string) (T, error)
	encode func(userID string, value T) (*storage.Batch, error)
}

// userStates is the in-memory, per-user source of truth. Values are loaded
// from the store on first touch and written back after every change.
type userStates[T any] struct {
	mu      sync.RWMutex
	name    string
	users   map[string]*userEntry[T]
	codec   stateCodec[T]
	store   storage.StoreInterface
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
}

func newUserStates[T any](name string, codec stateCodec[T], store storage.StoreInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) *userStates[T] {
	return &userStates[T]{
		name:    name,
		users:   make(map[string]*userEntry[T]),
		codec:   codec,
		store:   store,
		logger:  logger,
		metrics: metrics,
	}
}

// acquire returns the user's entry locked. The caller must release it.
func (u *userStates[T]) acquire(ctx context.Context, userID string) *userEntry[T] {
	for {
		u.mu.RLock()
		e, ok := u.users[userID]
		u.mu.RUnlock()

		if !ok {
			e = u.loadEntry(ctx, userID)
			u.mu.Lock()
			if existing, found := u.users[userID]; found {
				e = existing
			} else {
				u.users[userID] = e
			}
			u.mu.Unlock()
		}

		e.mu.Lock()
		if e.evicted {
			e.mu.Unlock()
			continue
		}
		if e.transient.Load() {
			u.reload(ctx, userID, e)
		}
		e.lastTouched.Store(time.Now().UnixNano())
		return e
	}
}

func (u *userStates[T]) release(e *userEntry[T]) {
	e.mu.Unlock()
}

// loadEntry reads durable state. If the backend cannot be read the entry is
// transient: it starts empty, keeps changes in memory and is never written
// back until the durable value has been read.
func (u *userStates[T]) loadEntry(ctx context.Context, userID string) *userEntry[T] {
	value, err := u.codec.load(ctx, userID)
	if err != nil {
		u.logger.Errorf(providers.TypeApp, "Failed to load %s for user %s: %s", u.name, userID, err)
		e := newUserEntry(u.codec.empty())
		e.transient.Store(true)
		return e
	}
	return newUserEntry(value)
}

// reload retries the durable read for a transient entry and replays the
// changes made since. e must be locked. It reports whether the entry is
// now backed by the store.
func (u *userStates[T]) reload(ctx context.Context, userID string, e *userEntry[T]) bool {
	value, err := u.codec.load(ctx, userID)
	if err != nil {
		u.logger.Debugf(providers.TypeApp, "Store still unreadable for %s of user %s: %s", u.name, userID, err)
		return false
	}

	changed := false
	for _, op := range e.pending {
		if op(&value) {
			changed = true
		}
	}
	e.value = value
	e.pending = nil
	e.transient.Store(false)
	e.revision.Inc()

	if !changed {
		e.dirty.Store(false)
		return true
	}
	u.logger.Infof(providers.TypeApp, "Store readable again, merged %s changes for user %s", u.name, userID)
	e.dirty.Store(u.persist(ctx, userID, e.value) != nil)
	return true
}

func (u *userStates[T]) view(ctx context.Context, userID string, fn func(value T)) uint64 {
	e := u.acquire(ctx, userID)
	defer u.release(e)
	fn(e.value)
	return e.revision.Load()
}

// update applies fn and persists the result when fn reports a change.
// Persistence failures are logged and leave the user dirty for FlushDirty.
func (u *userStates[T]) update(ctx context.Context, userID string, fn func(value *T) bool) (bool, uint64) {
	e := u.acquire(ctx, userID)
	defer u.release(e)

	if !fn(&e.value) {
		return false, e.revision.Load()
	}
	rev := e.revision.Inc()

	if e.transient.Load() {
		e.pending = append(e.pending, fn)
		u.logger.Warnf(providers.TypeApp, "Store unavailable, %s change for user %s kept in memory only", u.name, userID)
		return true, rev
	}

	if err := u.persist(ctx, userID, e.value); err != nil {
		e.dirty.Store(true)
	} else {
		e.dirty.Store(false)
	}
	return true, rev
}

func (u *userStates[T]) persist(ctx context.Context, userID string, value T) error {
	batch, err := u.codec.encode(userID, value)
	if err != nil {
		u.metrics.IncPersistenceFailures(u.name)
		u.logger.Errorf(providers.TypeApp, "Failed to encode %s for user %s: %s", u.name, userID, err)
		return err
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()

	start := time.Now()
	err = u.store.Apply(ctx, batch)
	u.metrics.ObservePersistenceDuration(time.Since(start))
	if err != nil {
		u.metrics.IncPersistenceFailures(u.name)
		u.logger.Errorf(providers.TypeApp, "Failed to persist %s for user %s: %s", u.name, userID, err)
		return err
	}
	return nil
}

func (u *userStates[T]) revision(ctx context.Context, userID string) uint64 {
	e := u.acquire(ctx, userID)
	defer u.release(e)
	return e.revision.Load()
}

// flushDirty retries persistence for every dirty user and the durable read
// for every transient one.
func (u *userStates[T]) flushDirty(ctx context.Context) (flushed, failed int) {
	type pending struct {
		id string
		e  *userEntry[T]
	}

	u.mu.RLock()
	var todo []pending
	for id, e := range u.users {
		if e.dirty.Load() || e.transient.Load() {
			todo = append(todo, pending{id: id, e: e})
		}
	}
	u.mu.RUnlock()

	for _, p := range todo {
		p.e.mu.Lock()
		if p.e.evicted {
			p.e.mu.Unlock()
			continue
		}
		if p.e.transient.Load() {
			if u.reload(ctx, p.id, p.e) && !p.e.dirty.Load() {
				flushed++
			} else {
				failed++
			}
			p.e.mu.Unlock()
			continue
		}
		if !p.e.dirty.Load() {
			p.e.mu.Unlock()
			continue
		}
		if err := u.persist(ctx, p.id, p.e.value); err != nil {
			failed++
		} else {
			p.e.dirty.Store(false)
			flushed++
		}
		p.e.mu.Unlock()
	}
	return flushed, failed
}

// evictIdle drops clean users not touched since cutoff. Dirty and transient
// users and users with an operation in flight are kept.
func (u *userStates[T]) evictIdle(cutoff time.Time) int {
	limit := cutoff.UnixNano()
	evicted := 0

	u.mu.Lock()
	defer u.mu.Unlock()
	for id, e := range u.users {
		if e.lastTouched.Load() > limit || !e.mu.TryLock() {
			continue
		}
		if !e.dirty.Load() && !e.transient.Load() && e.lastTouched.Load() <= limit {
			e.evicted = true
			delete(u.users, id)
			evicted++
		}
		e.mu.Unlock()
	}
	return evicted
}

func (u *userStates[T]) len() int {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return len(u.users)
}

func (u *userStates[T]) dirtyCount() int {
	u.mu.RLock()
	defer u.mu.RUnlock()
	n := 0
	for _, e := range u.users {
		if e.dirty.Load() || e.transient.Load() {
			n++
		}
	}
	return n
}

// readJSON decodes key into a fresh V. found is false when the key is
// absent or holds malformed data; only backend failures return an error.
func readJSON[V any](ctx context.Context, store storage.StoreInterface, logger providers.Logger, key string) (value V, found bool, err error) {
	data, err := store.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return value, false, nil
	}
	if err != nil {
		return value, false, err
	}

	var decoded V
	if err := json.Unmarshal(data, &decoded); err != nil {
		logger.Warnf(providers.TypeApp, "Malformed value under %s ignored: %s", key, err)
		return value, false, nil
	}
	return decoded, true, nil
}
