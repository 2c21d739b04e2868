package scheduler

import (
	"context"
	"errors"
	"swiperank/internal/catalog"
	"swiperank/internal/models"
	"swiperank/internal/services"
	"swiperank/internal/storage"
	"swiperank/internal/structures"
	"swiperank/internal/testutil"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLoader struct {
	products []*models.Product
	err      error
}

func (l *stubLoader) Load(_ context.Context) ([]*models.Product, error) { return l.products, l.err }
func (l *stubLoader) Source() string                                    { return "stub" }
func (l *stubLoader) Close(_ context.Context) error                     { return nil }

type fixture struct {
	sched   *Scheduler
	store   *testutil.FlakyStore
	loader  *stubLoader
	catalog *catalog.CatalogService
	swipes  services.SwipeServiceInterface
	profile services.ProfileServiceInterface
	metrics *testutil.MockMetrics
}

func newFixture(conf *structures.Config) *fixture {
	logger := &testutil.MockLogger{}
	metrics := testutil.NewMockMetrics()
	store := testutil.NewFlakyStore()
	loader := &stubLoader{}
	cat := catalog.NewCatalogService(loader, logger, metrics)
	swipes := services.NewSwipeService(store, logger, metrics)
	profiles := services.NewProfileService(store, logger, metrics)
	collections := services.NewCollectionService(store, logger, metrics)

	s := NewScheduler(conf, logger, metrics, store, cat, swipes, profiles, collections).(*Scheduler)
	return &fixture{sched: s, store: store, loader: loader, catalog: cat, swipes: swipes, profile: profiles, metrics: metrics}
}

func testConfig() *structures.Config {
	return &structures.Config{
		Persistence: structures.Persistence{RetryInterval: time.Hour},
		State:       structures.StateConfig{UserTTL: time.Minute, MaintenanceInterval: time.Hour},
		Catalog:     structures.CatalogConfig{ReloadInterval: time.Hour},
	}
}

func TestScheduler_PersistFlushesDirtyUsers(t *testing.T) {
	f := newFixture(testConfig())
	ctx := context.Background()
	f.store.SetFailApply(true)

	f.swipes.RecordSwipe(ctx, "u1", &models.Product{ID: "p1"}, models.DirectionLike)
	_, err := f.profile.Save(ctx, "u1", &models.PreferenceProfile{Likes: []string{"boho"}})
	require.NoError(t, err)

	assert.Error(t, f.sched.Persist())

	f.store.SetFailApply(false)
	require.NoError(t, f.sched.Persist())

	assert.JSONEq(t, `["p1"]`, f.store.Raw(storage.UserKey("u1", storage.KeyLikedProducts)))
	assert.NotEmpty(t, f.store.Raw(storage.UserKey("u1", storage.KeyPreferenceProfile)))
	assert.Equal(t, 0, f.swipes.DirtyUsers())
}

func TestScheduler_RestoreReloadsCatalog(t *testing.T) {
	f := newFixture(testConfig())
	f.loader.products = []*models.Product{{ID: "a"}, {ID: "b"}}

	require.NoError(t, f.sched.Restore())
	assert.Equal(t, 2, f.catalog.Len())

	f.loader.err = errors.New("down")
	assert.Error(t, f.sched.Restore())
	assert.Equal(t, 2, f.catalog.Len())
}

func TestScheduler_MaintainEvictsIdleUsers(t *testing.T) {
	conf := testConfig()
	conf.State.UserTTL = time.Nanosecond
	f := newFixture(conf)
	ctx := context.Background()

	f.swipes.RecordSwipe(ctx, "u1", &models.Product{ID: "p1"}, models.DirectionLike)
	time.Sleep(time.Millisecond)

	f.sched.maintain()

	assert.Equal(t, 0, f.swipes.UsersInMemory())
	assert.Equal(t, 0, f.metrics.UsersInMemory)
	assert.True(t, f.swipes.GetState(ctx, "u1").Liked.Has("p1"))
}

func TestScheduler_MaintainWithoutTTLKeepsUsers(t *testing.T) {
	conf := testConfig()
	conf.State.UserTTL = 0
	f := newFixture(conf)

	f.swipes.RecordSwipe(context.Background(), "u1", &models.Product{ID: "p1"}, models.DirectionLike)
	f.sched.maintain()

	assert.Equal(t, 1, f.swipes.UsersInMemory())
	assert.Equal(t, 1, f.metrics.UsersInMemory)
}

func TestScheduler_InitAndStop(t *testing.T) {
	f := newFixture(testConfig())
	f.sched.Init()
	f.sched.Stop()
}
