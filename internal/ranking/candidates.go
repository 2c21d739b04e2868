package ranking

import (
	"sort"
	"swiperank/internal/models"
)

type scored struct {
	product *models.Product
	score   int
}

// RankCandidates returns the catalog products not yet swiped, ordered by
// the sum of their learned attribute weights. Ties keep catalog order.
// The result is never nil.
func RankCandidates(catalog []*models.Product, weights models.AttributeWeightMap, liked, disliked *models.IDSet) []*models.Product {
	candidates := make([]scored, 0, len(catalog))
	for _, p := range catalog {
		if p == nil || decided(p.ID, liked, disliked) {
			continue
		}
		candidates = append(candidates, scored{product: p, score: weights.Score(p)})
	}

	return sortScored(candidates)
}

func decided(id string, liked, disliked *models.IDSet) bool {
	return (liked != nil && liked.Has(id)) || (disliked != nil && disliked.Has(id))
}

func sortScored(items []scored) []*models.Product {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].score > items[j].score
	})

	out := make([]*models.Product, len(items))
	for i, item := range items {
		out[i] = item.product
	}
	return out
}
