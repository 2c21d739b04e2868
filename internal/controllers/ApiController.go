package controllers

import (
	"net/http"
	"swiperank/internal/catalog"
	"swiperank/internal/models"
	"swiperank/internal/providers"
	"swiperank/internal/ranking"
	"swiperank/internal/services"

	json "github.com/goccy/go-json"
)

type ApiController struct {
	logger   providers.Logger
	swipes   services.SwipeServiceInterface
	profiles services.ProfileServiceInterface
	catalog  catalog.CatalogServiceInterface
	cache    providers.CacheProviderInterface
}

type swipeRequest struct {
	User      string `json:"u"`
	ProductID string `json:"product_id"`
	Direction string `json:"direction"`
}

type historyResponse struct {
	Liked      []string                  `json:"liked_products"`
	Disliked   []string                  `json:"disliked_products"`
	Weightages models.AttributeWeightMap `json:"weightages"`
}

type resetResponse struct {
	Revision uint64 `json:"revision"`
}

func NewApiController(logger providers.Logger, swipes services.SwipeServiceInterface, profiles services.ProfileServiceInterface, catalogService catalog.CatalogServiceInterface, cache providers.CacheProviderInterface) *ApiController {
	return &ApiController{
		logger:   logger,
		swipes:   swipes,
		profiles: profiles,
		catalog:  catalogService,
		cache:    cache,
	}
}

func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

// Feed returns undecided products ranked by the user's learned weights.
// The cache key changes whenever the user's state or the catalog changes.
func (ac *ApiController) Feed(w http.ResponseWriter, r *http.Request) {
	u := getUser(r)
	limit := getLimit(r)
	rev := ac.swipes.Revision(r.Context(), u)
	key := providers.ResponseCacheKey(providers.CacheFeed, u, rev, ac.catalog.Generation(), limit)

	ac.serveFromCacheOrCompute(w, key, func() (any, error) {
		ranked := ac.swipes.GetRankedCandidates(r.Context(), u, ac.catalog.Products())
		return applyLimit(ranked, limit), nil
	})
}

func (ac *ApiController) Swipe(w http.ResponseWriter, r *http.Request) {
	var req swipeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	direction, err := models.ParseDirection(req.Direction)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	product, ok := ac.catalog.Get(req.ProductID)
	if !ok {
		ac.logger.Debugf(providers.TypePost, "Swipe on unknown product %q", req.ProductID)
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	result := ac.swipes.RecordSwipe(r.Context(), bodyUser(req.User), product, direction)
	writeJSON(w, http.StatusOK, result)
}

func (ac *ApiController) Reset(w http.ResponseWriter, r *http.Request) {
	rev := ac.swipes.ResetAll(r.Context(), getUser(r))
	writeJSON(w, http.StatusOK, resetResponse{Revision: rev})
}

func (ac *ApiController) History(w http.ResponseWriter, r *http.Request) {
	state := ac.swipes.GetState(r.Context(), getUser(r))
	writeJSON(w, http.StatusOK, historyResponse{
		Liked:      state.Liked.IDs(),
		Disliked:   state.Disliked.IDs(),
		Weightages: state.Weights,
	})
}

// Recommendations ranks the catalog against the user's onboarding profile.
// Without a profile every product scores 0 and catalog order is kept.
func (ac *ApiController) Recommendations(w http.ResponseWriter, r *http.Request) {
	u := getUser(r)
	limit := getLimit(r)
	rev := ac.profiles.Revision(r.Context(), u)
	key := providers.ResponseCacheKey(providers.CacheRecommendations, u, rev, ac.catalog.Generation(), limit)

	ac.serveFromCacheOrCompute(w, key, func() (any, error) {
		ranked := ranking.RankByPreference(ac.catalog.Products(), ac.profiles.Get(r.Context(), u))
		return applyLimit(ranked, limit), nil
	})
}
