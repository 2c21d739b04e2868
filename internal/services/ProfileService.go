package services

import (
	"context"
	"fmt"
	"swiperank/internal/models"
	"swiperank/internal/providers"
	"swiperank/internal/storage"
	"time"

	json "github.com/goccy/go-json"
	"github.com/gookit/validate"
)

type ValidationError struct {
	Errors validate.Errors
}

func (e *ValidationError) Error() string {
	return "invalid preference profile: " + e.Errors.One()
}

type ProfileServiceInterface interface {
	Get(ctx context.Context, userID string) *models.PreferenceProfile
	Save(ctx context.Context, userID string, profile *models.PreferenceProfile) (*models.PreferenceProfile, error)
	Revision(ctx context.Context, userID string) uint64
	FlushDirty(ctx context.Context) (flushed, failed int)
	EvictIdle(cutoff time.Time) int
}

type ProfileService struct {
	states *userStates[*models.PreferenceProfile]
	store  storage.StoreInterface
	logger providers.Logger
}

func NewProfileService(store storage.StoreInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) ProfileServiceInterface {
	s := &ProfileService{store: store, logger: logger}
	s.states = newUserStates("profile", stateCodec[*models.PreferenceProfile]{
		empty:  func() *models.PreferenceProfile { return nil },
		load:   s.load,
		encode: encodeProfile,
	}, store, logger, metrics)
	return s
}

// Get returns a copy of the stored profile, or nil when the user has none.
func (s *ProfileService) Get(ctx context.Context, userID string) *models.PreferenceProfile {
	var out *models.PreferenceProfile
	s.states.view(ctx, userID, func(p *models.PreferenceProfile) {
		out = p.Clone()
	})
	return out
}

// Save normalizes and validates the profile before replacing the stored one.
func (s *ProfileService) Save(ctx context.Context, userID string, profile *models.PreferenceProfile) (*models.PreferenceProfile, error) {
	if profile == nil {
		profile = &models.PreferenceProfile{}
	}
	normalized := profile.Clone()
	normalized.Normalize()

	v := validate.Struct(normalized)
	if !v.Validate() {
		return nil, &ValidationError{Errors: v.Errors}
	}

	s.states.update(ctx, userID, func(p **models.PreferenceProfile) bool {
		*p = normalized.Clone()
		return true
	})
	return normalized, nil
}

func (s *ProfileService) Revision(ctx context.Context, userID string) uint64 {
	return s.states.revision(ctx, userID)
}

func (s *ProfileService) FlushDirty(ctx context.Context) (int, int) {
	return s.states.flushDirty(ctx)
}

func (s *ProfileService) EvictIdle(cutoff time.Time) int {
	return s.states.evictIdle(cutoff)
}

func (s *ProfileService) load(ctx context.Context, userID string) (*models.PreferenceProfile, error) {
	profile, found, err := readJSON[*models.PreferenceProfile](ctx, s.store, s.logger, storage.UserKey(userID, storage.KeyPreferenceProfile))
	if err != nil || !found {
		return nil, err
	}
	if profile != nil {
		profile.Normalize()
	}
	return profile, nil
}

func encodeProfile(userID string, profile *models.PreferenceProfile) (*storage.Batch, error) {
	key := storage.UserKey(userID, storage.KeyPreferenceProfile)
	if profile == nil {
		return storage.NewBatch().Delete(key), nil
	}
	data, err := json.Marshal(profile)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", key, err)
	}
	return storage.NewBatch().Set(key, data), nil
}
