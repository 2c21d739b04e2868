package ranking

import (
	"swiperank/internal/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id, style string) *models.Product {
	return &models.Product{ID: id, Name: id, Properties: models.Properties{Style: style}}
}

func ids(products []*models.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestRankCandidates_StreetwearScenario(t *testing.T) {
	a := product("A", "streetwear")
	b := product("B", "minimalist")
	state := models.NewSwipeState()

	state.Apply(a, models.DirectionLike)
	assert.Equal(t, models.AttributeWeightMap{models.PropertyStyle: {"streetwear": 1}}, state.Weights)

	ranked := RankCandidates([]*models.Product{a, b}, state.Weights, state.Liked, state.Disliked)
	assert.Equal(t, []string{"B"}, ids(ranked))
	assert.Equal(t, 0, state.Weights.Score(ranked[0]))
}

func TestRankCandidates_ExcludesDecided(t *testing.T) {
	catalog := []*models.Product{
		product("1", "boho"), product("2", "boho"), product("3", "sporty"), product("4", "sporty"),
	}
	liked := models.NewIDSet("1")
	disliked := models.NewIDSet("3")

	ranked := RankCandidates(catalog, models.NewAttributeWeightMap(), liked, disliked)
	for _, p := range ranked {
		assert.False(t, liked.Has(p.ID) || disliked.Has(p.ID), p.ID)
	}
	assert.Equal(t, []string{"2", "4"}, ids(ranked))
}

func TestRankCandidates_SortsByScoreDescending(t *testing.T) {
	weights := models.AttributeWeightMap{
		models.PropertyStyle:       {"boho": 2, "sporty": -1},
		models.PropertyColorFamily: {"green": 3},
	}
	green := &models.Product{ID: "g", Properties: models.Properties{Style: "sporty", ColorFamily: "green"}}
	catalog := []*models.Product{product("s", "sporty"), product("plain", ""), product("b", "boho"), green}

	ranked := RankCandidates(catalog, weights, nil, nil)
	assert.Equal(t, []string{"b", "g", "plain", "s"}, ids(ranked))
}

func TestRankCandidates_TiesKeepCatalogOrderAndAreDeterministic(t *testing.T) {
	catalog := []*models.Product{
		product("z", "x"), product("y", "x"), product("x", "x"), product("w", "x"),
	}
	weights := models.AttributeWeightMap{models.PropertyStyle: {"x": 1}}

	first := RankCandidates(catalog, weights, models.NewIDSet(), models.NewIDSet())
	second := RankCandidates(catalog, weights, models.NewIDSet(), models.NewIDSet())

	assert.Equal(t, []string{"z", "y", "x", "w"}, ids(first))
	assert.Equal(t, ids(first), ids(second))
}

func TestRankCandidates_EmptyIsNotNil(t *testing.T) {
	ranked := RankCandidates(nil, nil, nil, nil)
	require.NotNil(t, ranked)
	assert.Empty(t, ranked)

	all := models.NewIDSet("a")
	ranked = RankCandidates([]*models.Product{product("a", "x")}, nil, all, nil)
	require.NotNil(t, ranked)
	assert.Empty(t, ranked)
}
