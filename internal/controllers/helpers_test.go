package controllers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"swiperank/internal/catalog"
	"swiperank/internal/models"
	"swiperank/internal/services"
	"swiperank/internal/testutil"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
)

type harness struct {
	store       *testutil.FlakyStore
	cache       *testutil.MockCache
	catalog     *catalog.CatalogService
	swipes      services.SwipeServiceInterface
	profiles    services.ProfileServiceInterface
	collections services.CollectionServiceInterface
	api         *ApiController
	profile     *ProfileController
	coll        *CollectionsController
	health      *HealthController
}

func testCatalog() []*models.Product {
	return []*models.Product{
		{ID: "p1", Name: "Oversized Hoodie", Brand: "Nike", Category: "tops",
			ProductImages: []string{"https://img/p1.jpg"},
			Properties:    models.Properties{Style: "streetwear", ColorFamily: "black"}},
		{ID: "p2", Name: "Linen Shirt", Brand: "Uniqlo", Category: "tops",
			Properties: models.Properties{Style: "minimal", ColorFamily: "white"}},
		{ID: "p3", Name: "Cargo Pants", Brand: "Carhartt", Category: "bottoms",
			Properties: models.Properties{Style: "streetwear", ColorFamily: "olive"}},
		{ID: "p4", Name: "Leather Jacket", Brand: "Zara", Category: "outerwear",
			Properties: models.Properties{Style: "biker", ColorFamily: "black"}},
	}
}

func newHarness() *harness {
	logger := &testutil.MockLogger{}
	metrics := testutil.NewMockMetrics()
	store := testutil.NewFlakyStore()
	cache := testutil.NewMockCache()

	cat := catalog.NewCatalogService(nil, logger, metrics)
	cat.Replace(testCatalog())

	h := &harness{
		store:       store,
		cache:       cache,
		catalog:     cat,
		swipes:      services.NewSwipeService(store, logger, metrics),
		profiles:    services.NewProfileService(store, logger, metrics),
		collections: services.NewCollectionService(store, logger, metrics),
	}
	h.api = NewApiController(logger, h.swipes, h.profiles, cat, cache)
	h.profile = NewProfileController(logger, h.profiles)
	h.coll = NewCollectionsController(logger, h.collections, cat)
	h.health = NewHealthController(h.swipes, cat)
	return h
}

func call(handler http.HandlerFunc, method, target string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		data, _ := json.Marshal(b)
		buf.Write(data)
	}
	req := httptest.NewRequest(method, target, &buf)
	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	return out
}

func productIDs(products []models.Product) []string {
	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	return ids
}

func jsonUnmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
