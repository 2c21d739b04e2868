package scheduler

import (
	"context"
	"fmt"
	"swiperank/internal/catalog"
	"swiperank/internal/providers"
	"swiperank/internal/scheduler/interfaces"
	"swiperank/internal/services"
	"swiperank/internal/storage"
	"swiperank/internal/structures"
	"sync"
	"time"

	"github.com/roylee0704/gron"
)

// userStateHolder is implemented by every per-user service.
type userStateHolder interface {
	FlushDirty(ctx context.Context) (flushed, failed int)
	EvictIdle(cutoff time.Time) int
}

type Scheduler struct {
	config  *structures.Config
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
	store   storage.StoreInterface
	catalog catalog.CatalogServiceInterface
	swipes  services.SwipeServiceInterface
	holders map[string]userStateHolder
	cron    *gron.Cron
	opsMu   sync.Mutex
}

func (s *Scheduler) Init() {
	s.cron = gron.New()

	s.cron.AddFunc(gron.Every(s.config.Persistence.RetryInterval), func() {
		_ = s.Persist()
	})

	if s.config.Catalog.ReloadInterval > 0 {
		s.cron.AddFunc(gron.Every(s.config.Catalog.ReloadInterval), func() {
			if err := s.Restore(); err != nil {
				s.logger.Errorf(providers.TypeApp, "Catalog reload failed: %s", err)
			}
		})
	}

	if s.config.State.MaintenanceInterval > 0 {
		s.cron.AddFunc(gron.Every(s.config.State.MaintenanceInterval), s.maintain)
	}

	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Restore reloads the catalog from its source.
func (s *Scheduler) Restore() error {
	return s.catalog.Reload(context.Background())
}

// Persist retries every user whose last write did not reach the store.
func (s *Scheduler) Persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	ctx := context.Background()
	totalFailed := 0
	for name, h := range s.holders {
		flushed, failed := h.FlushDirty(ctx)
		if flushed > 0 {
			s.logger.Infof(providers.TypeApp, "Persisted %d pending %s users", flushed, name)
		}
		totalFailed += failed
	}

	if totalFailed > 0 {
		err := fmt.Errorf("%d users still pending persistence", totalFailed)
		s.logger.Errorf(providers.TypeApp, "Error while persisting data: %s", err)
		return err
	}
	return nil
}

func (s *Scheduler) maintain() {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	if ttl := s.config.State.UserTTL; ttl > 0 {
		cutoff := time.Now().Add(-ttl)
		for name, h := range s.holders {
			if n := h.EvictIdle(cutoff); n > 0 {
				s.logger.Debugf(providers.TypeApp, "Evicted %d idle %s users", n, name)
			}
		}
	}
	s.metrics.SetUsersInMemory(s.swipes.UsersInMemory())

	if err := s.store.Maintain(context.Background()); err != nil {
		s.logger.Warnf(providers.TypeApp, "Store maintenance failed: %s", err)
	}
}

func NewScheduler(
	config *structures.Config,
	logger providers.Logger,
	metrics providers.MetricsProviderInterface,
	store storage.StoreInterface,
	catalogService catalog.CatalogServiceInterface,
	swipes services.SwipeServiceInterface,
	profiles services.ProfileServiceInterface,
	collections services.CollectionServiceInterface,
) interfaces.SchedulerInterface {
	return &Scheduler{
		config:  config,
		logger:  logger,
		metrics: metrics,
		store:   store,
		catalog: catalogService,
		swipes:  swipes,
		holders: map[string]userStateHolder{
			"swipe":      swipes,
			"profile":    profiles,
			"collection": collections,
		},
	}
}
