package ranking

import (
	"strings"
	"swiperank/internal/models"
)

const (
	// ExcludedScore marks a product that matched a dislike tag.
	ExcludedScore = -10000
	// excludeBelow sits between ordinary low scores and ExcludedScore.
	excludeBelow = -100

	WeightStyle    = 30
	WeightColor    = 25
	WeightCategory = 15
	WeightBrand    = 10
	WeightFit      = 10
	WeightFabric   = 5
	WeightOccasion = 5
)

// ScoreProduct scores p against an onboarding profile using plain
// case-insensitive substring matching. A nil profile scores 0.
func ScoreProduct(p *models.Product, profile *models.PreferenceProfile) int {
	if p == nil || profile == nil {
		return 0
	}

	haystack := strings.ToLower(haystackOf(p))
	for _, tag := range profile.Dislikes {
		tag = cleanTag(tag)
		if tag == "" {
			continue
		}
		if strings.Contains(haystack, tag) {
			return ExcludedScore
		}
	}

	f := lowerFields(p)
	score := 0
	for _, tag := range profile.Likes {
		tag = cleanTag(tag)
		if tag == "" {
			continue
		}
		if strings.Contains(f.style, tag) {
			score += WeightStyle
		}
		// The name rule needs a trailing space after the tag: "red " in "red dress".
		if strings.Contains(f.color, tag) || strings.Contains(f.name, tag+" ") {
			score += WeightColor
		}
		if containsAny(f.categories, tag) {
			score += WeightCategory
		}
		if strings.Contains(f.brand, tag) {
			score += WeightBrand
		}
		if strings.Contains(f.fit, tag) {
			score += WeightFit
		}
		if strings.Contains(f.fabric, tag) {
			score += WeightFabric
		}
		if strings.Contains(f.occasion, tag) {
			score += WeightOccasion
		}
	}
	return score
}

// RankByPreference drops excluded products and stable-sorts the rest by
// ScoreProduct, highest first. products is not modified.
func RankByPreference(products []*models.Product, profile *models.PreferenceProfile) []*models.Product {
	items := make([]scored, 0, len(products))
	for _, p := range products {
		if p == nil {
			continue
		}
		s := ScoreProduct(p, profile)
		if s < excludeBelow {
			continue
		}
		items = append(items, scored{product: p, score: s})
	}
	return sortScored(items)
}

func haystackOf(p *models.Product) string {
	parts := make([]string, 0, 6+len(p.Categories))
	parts = append(parts, p.Name, p.Brand, p.Category)
	parts = append(parts, p.Categories...)
	parts = append(parts, p.Properties.Style, p.Properties.ColorFamily, p.Description)
	return strings.Join(parts, " ")
}

type fields struct {
	name, brand, style, color, fit, fabric, occasion string
	categories                                       []string
}

func lowerFields(p *models.Product) fields {
	cats := make([]string, 0, 1+len(p.Categories))
	cats = append(cats, strings.ToLower(p.Category))
	for _, c := range p.Categories {
		cats = append(cats, strings.ToLower(c))
	}
	return fields{
		name:       strings.ToLower(p.Name),
		brand:      strings.ToLower(p.Brand),
		style:      strings.ToLower(p.Properties.Style),
		color:      strings.ToLower(p.Properties.ColorFamily),
		fit:        strings.ToLower(p.Properties.Fit),
		fabric:     strings.ToLower(p.Properties.Fabric),
		occasion:   strings.ToLower(p.Properties.Occasion),
		categories: cats,
	}
}

func containsAny(values []string, tag string) bool {
	for _, v := range values {
		if strings.Contains(v, tag) {
			return true
		}
	}
	return false
}

func cleanTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}
