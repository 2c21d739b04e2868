package models

// SwipeState is everything a user's swipes have produced: the learned
// weights and the liked/disliked id sets. It performs no I/O.
type SwipeState struct {
	Weights  AttributeWeightMap
	Liked    *IDSet
	Disliked *IDSet
}

// SwipeOutcome describes what Apply changed.
type SwipeOutcome struct {
	Changed bool
	// Moved is true when the product was previously recorded in the opposite direction.
	Moved bool
}

func NewSwipeState() *SwipeState {
	return &SwipeState{
		Weights:  NewAttributeWeightMap(),
		Liked:    NewIDSet(),
		Disliked: NewIDSet(),
	}
}

func (s *SwipeState) set(d Direction) *IDSet {
	if d == DirectionLike {
		return s.Liked
	}
	return s.Disliked
}

// Apply records a swipe with "last swipe wins" semantics. Repeating the
// recorded direction is a no-op. Reversing moves the id to the other set
// and adjusts the weights again, so like followed by dislike nets zero.
func (s *SwipeState) Apply(p *Product, d Direction) SwipeOutcome {
	if p == nil || s.set(d).Has(p.ID) {
		return SwipeOutcome{}
	}

	moved := s.set(d.Opposite()).Remove(p.ID)
	s.set(d).Add(p.ID)

	delta := d.Delta()
	for _, pair := range p.Properties.Pairs() {
		s.Weights.Adjust(pair.Key, pair.Value, delta)
	}
	return SwipeOutcome{Changed: true, Moved: moved}
}

// Decided reports whether id is in either set.
func (s *SwipeState) Decided(id string) bool {
	return s.Liked.Has(id) || s.Disliked.Has(id)
}

func (s *SwipeState) IsEmpty() bool {
	return len(s.Weights) == 0 && s.Liked.Len() == 0 && s.Disliked.Len() == 0
}

func (s *SwipeState) Clone() *SwipeState {
	return &SwipeState{
		Weights:  s.Weights.Clone(),
		Liked:    s.Liked.Clone(),
		Disliked: s.Disliked.Clone(),
	}
}
