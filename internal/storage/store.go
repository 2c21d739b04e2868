package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: key not found")

// Key names of the per-user state. Every key is namespaced by user id.
const (
	KeyWeightages        = "weightages"
	KeyLikedProducts     = "liked_products"
	KeyDislikedProducts  = "disliked_products"
	KeyCollections       = "collections"
	KeyPreferenceProfile = "preference_profile"
)

func UserKey(userID, name string) string {
	return userID + ":" + name
}

// Batch groups writes that must land together.
type Batch struct {
	Sets    map[string][]byte
	Deletes []string
}

func NewBatch() *Batch {
	return &Batch{Sets: make(map[string][]byte)}
}

func (b *Batch) Set(key string, value []byte) *Batch {
	b.Sets[key] = value
	return b
}

func (b *Batch) Delete(key string) *Batch {
	b.Deletes = append(b.Deletes, key)
	return b
}

func (b *Batch) Len() int {
	return len(b.Sets) + len(b.Deletes)
}

// StoreInterface is a durable key-value store. Apply is all-or-nothing:
// a reader never observes part of a batch.
type StoreInterface interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Apply(ctx context.Context, batch *Batch) error
	// Maintain runs driver housekeeping such as value log GC.
	Maintain(ctx context.Context) error
	Close() error
}
