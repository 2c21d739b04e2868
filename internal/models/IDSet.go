package models

import json "github.com/goccy/go-json"

// IDSet is an insertion-ordered set of product ids.
// It serializes as a plain JSON array.
type IDSet struct {
	ids   []string
	index map[string]int
}

func NewIDSet(ids ...string) *IDSet {
	s := &IDSet{index: make(map[string]int, len(ids))}
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

func (s *IDSet) Has(id string) bool {
	_, ok := s.index[id]
	return ok
}

// Add appends id and reports whether it was absent.
func (s *IDSet) Add(id string) bool {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if _, ok := s.index[id]; ok {
		return false
	}
	s.index[id] = len(s.ids)
	s.ids = append(s.ids, id)
	return true
}

// Remove deletes id keeping the order of the remaining ids.
func (s *IDSet) Remove(id string) bool {
	pos, ok := s.index[id]
	if !ok {
		return false
	}
	s.ids = append(s.ids[:pos], s.ids[pos+1:]...)
	delete(s.index, id)
	for i := pos; i < len(s.ids); i++ {
		s.index[s.ids[i]] = i
	}
	return true
}

func (s *IDSet) Len() int {
	return len(s.ids)
}

// IDs returns a copy of the ids in insertion order.
func (s *IDSet) IDs() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

func (s *IDSet) Clone() *IDSet {
	return NewIDSet(s.ids...)
}

func (s *IDSet) MarshalJSON() ([]byte, error) {
	if s.ids == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.ids)
}

func (s *IDSet) UnmarshalJSON(data []byte) error {
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*s = *NewIDSet(ids...)
	return nil
}
