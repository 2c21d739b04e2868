package services

import (
	"context"
	"swiperank/internal/models"
	"swiperank/internal/storage"
	"swiperank/internal/testutil"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCollectionFixture() (*CollectionService, *testutil.FlakyStore) {
	store := testutil.NewFlakyStore()
	svc := NewCollectionService(store, &testutil.MockLogger{}, testutil.NewMockMetrics()).(*CollectionService)
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return svc, store
}

func TestCollectionService_CreateUsesFirstImage(t *testing.T) {
	svc, _ := newCollectionFixture()
	ctx := context.Background()
	p := &models.Product{ID: "p1", ProductImages: []string{"https://img/1.jpg", "https://img/2.jpg"}}

	c, err := svc.CreateCollection(ctx, "default", " Summer ", p)
	require.NoError(t, err)

	parsed, err := uuid.Parse(c.ID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
	assert.Equal(t, "Summer", c.Name)
	assert.Equal(t, "https://img/1.jpg", c.Image)
	assert.Equal(t, []string{"p1"}, c.ProductIDs)
}

func TestCollectionService_CreateWithoutImages(t *testing.T) {
	svc, _ := newCollectionFixture()

	c, err := svc.CreateCollection(context.Background(), "default", "Bare", &models.Product{ID: "p1"})
	require.NoError(t, err)
	assert.Equal(t, "", c.Image)
}

func TestCollectionService_CreateRequiresProduct(t *testing.T) {
	svc, _ := newCollectionFixture()
	_, err := svc.CreateCollection(context.Background(), "default", "x", nil)
	assert.Error(t, err)
}

func TestCollectionService_AddIsIdempotent(t *testing.T) {
	svc, _ := newCollectionFixture()
	ctx := context.Background()
	c, _ := svc.CreateCollection(ctx, "default", "Summer", &models.Product{ID: "p1"})

	added, err := svc.AddToCollection(ctx, "default", c.ID, "p2")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = svc.AddToCollection(ctx, "default", c.ID, "p2")
	require.NoError(t, err)
	assert.False(t, added)

	list := svc.ListCollections(ctx, "default")
	require.Len(t, list, 1)
	assert.Equal(t, []string{"p1", "p2"}, list[0].ProductIDs)
}

func TestCollectionService_AddToUnknownCollection(t *testing.T) {
	svc, _ := newCollectionFixture()

	_, err := svc.AddToCollection(context.Background(), "default", "nope", "p1")
	assert.ErrorIs(t, err, ErrCollectionNotFound)
}

func TestCollectionService_RemoveAndList(t *testing.T) {
	svc, store := newCollectionFixture()
	ctx := context.Background()
	a, _ := svc.CreateCollection(ctx, "default", "A", &models.Product{ID: "p1"})
	b, _ := svc.CreateCollection(ctx, "default", "B", &models.Product{ID: "p2"})

	list := svc.ListCollections(ctx, "default")
	require.Len(t, list, 2)
	assert.Equal(t, "A", list[0].Name)
	assert.Equal(t, "B", list[1].Name)

	assert.True(t, svc.RemoveCollection(ctx, "default", a.ID))
	assert.False(t, svc.RemoveCollection(ctx, "default", a.ID))

	list = svc.ListCollections(ctx, "default")
	require.Len(t, list, 1)
	assert.Equal(t, b.ID, list[0].ID)

	assert.True(t, svc.RemoveCollection(ctx, "default", b.ID))
	assert.NotNil(t, svc.ListCollections(ctx, "default"))
	assert.Empty(t, store.Raw(storage.UserKey("default", storage.KeyCollections)))
}

func TestCollectionService_PersistsOrderedList(t *testing.T) {
	svc, store := newCollectionFixture()
	ctx := context.Background()
	a, _ := svc.CreateCollection(ctx, "u1", "A", &models.Product{ID: "p1"})
	_, _ = svc.CreateCollection(ctx, "u1", "B", &models.Product{ID: "p2"})

	var stored []models.Collection
	require.NoError(t, json.Unmarshal([]byte(store.Raw(storage.UserKey("u1", storage.KeyCollections))), &stored))
	require.Len(t, stored, 2)
	assert.Equal(t, a.ID, stored[0].ID)

	fresh := NewCollectionService(store, &testutil.MockLogger{}, testutil.NewMockMetrics())
	list := fresh.ListCollections(ctx, "u1")
	require.Len(t, list, 2)
	assert.Equal(t, []string{"p1"}, list[0].ProductIDs)
}

func TestCollectionService_ListReturnsCopies(t *testing.T) {
	svc, _ := newCollectionFixture()
	ctx := context.Background()
	_, _ = svc.CreateCollection(ctx, "u1", "A", &models.Product{ID: "p1"})

	list := svc.ListCollections(ctx, "u1")
	list[0].ProductIDs[0] = "mutated"

	assert.Equal(t, "p1", svc.ListCollections(ctx, "u1")[0].ProductIDs[0])
}
