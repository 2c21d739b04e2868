package models

// AttributeWeightMap maps a property key to observed values and their
// accumulated weight. Missing pairs weigh 0.
type AttributeWeightMap map[string]map[string]int

func NewAttributeWeightMap() AttributeWeightMap {
	return make(AttributeWeightMap)
}

func (m AttributeWeightMap) Weight(key, value string) int {
	values, ok := m[key]
	if !ok {
		return 0
	}
	return values[value]
}

// Adjust adds delta to the (key, value) weight, creating the pair if needed.
func (m AttributeWeightMap) Adjust(key, value string, delta int) {
	values := m[key]
	if values == nil {
		values = make(map[string]int)
		m[key] = values
	}
	values[value] += delta
}

// Score sums the weights of every populated property of p.
func (m AttributeWeightMap) Score(p *Product) int {
	score := 0
	for _, pair := range p.Properties.Pairs() {
		score += m.Weight(pair.Key, pair.Value)
	}
	return score
}

func (m AttributeWeightMap) Clone() AttributeWeightMap {
	out := make(AttributeWeightMap, len(m))
	for key, values := range m {
		copied := make(map[string]int, len(values))
		for value, w := range values {
			copied[value] = w
		}
		out[key] = copied
	}
	return out
}
