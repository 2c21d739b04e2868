package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttributeWeightMap_AbsentIsZero(t *testing.T) {
	m := NewAttributeWeightMap()
	assert.Equal(t, 0, m.Weight(PropertyStyle, "boho"))
}

func TestAttributeWeightMap_CanGoNegative(t *testing.T) {
	m := NewAttributeWeightMap()
	m.Adjust(PropertyFit, "slim", -1)
	m.Adjust(PropertyFit, "slim", -1)
	assert.Equal(t, -2, m.Weight(PropertyFit, "slim"))
}

func TestAttributeWeightMap_Score(t *testing.T) {
	m := AttributeWeightMap{
		PropertyStyle:       {"minimalist": 3},
		PropertyColorFamily: {"white": -1},
		PropertyFabric:      {"linen": 2},
	}
	p := &Product{Properties: Properties{Style: "minimalist", ColorFamily: "white", Fit: "relaxed"}}
	assert.Equal(t, 2, m.Score(p))
}

func TestProperties_PairsOrderAndSkipsBlank(t *testing.T) {
	p := Properties{Occasion: "party", Style: "boho", Fit: " "}
	assert.Equal(t, []PropertyPair{
		{Key: PropertyStyle, Value: "boho"},
		{Key: PropertyOccasion, Value: "party"},
	}, p.Pairs())
}
