package domain

import (
	"iter"
	"slices"
)

// OrderedSet is a set of paths that remembers insertion order.
// Adding a value that is already present is a no-op.
type OrderedSet struct {
	items []InternedString
	index map[InternedString]int
}

// NewOrderedSet creates a set holding values in the given order, dropping duplicates.
func NewOrderedSet(values ...string) *OrderedSet {
	s := &OrderedSet{index: make(map[InternedString]int, len(values))}
	for _, v := range values {
		s.Add(v)
	}
	return s
}

// Add appends value unless it is already present. It reports whether the set changed.
func (s *OrderedSet) Add(value string) bool {
	return s.AddInterned(NewInternedString(value))
}

// AddInterned is Add for an already interned value.
func (s *OrderedSet) AddInterned(value InternedString) bool {
	if s.index == nil {
		s.index = make(map[InternedString]int)
	}
	if _, ok := s.index[value]; ok {
		return false
	}
	s.index[value] = len(s.items)
	s.items = append(s.items, value)
	return true
}

// Has reports whether value is in the set.
func (s *OrderedSet) Has(value string) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[NewInternedString(value)]
	return ok
}

// Remove deletes value and keeps the relative order of the remaining items.
func (s *OrderedSet) Remove(value string) bool {
	key := NewInternedString(value)
	pos, ok := s.index[key]
	if !ok {
		return false
	}
	s.items = slices.Delete(s.items, pos, pos+1)
	delete(s.index, key)
	for i := pos; i < len(s.items); i++ {
		s.index[s.items[i]] = i
	}
	return true
}

// Len returns the number of items.
func (s *OrderedSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// Values returns a copy of the items in insertion order.
func (s *OrderedSet) Values() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.items))
	for i, v := range s.items {
		out[i] = v.String()
	}
	return out
}

// All iterates the items in insertion order.
func (s *OrderedSet) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		if s == nil {
			return
		}
		for _, v := range s.items {
			if !yield(v.String()) {
				return
			}
		}
	}
}

// Equal reports whether both sets hold the same items in the same order.
func (s *OrderedSet) Equal(other *OrderedSet) bool {
	if s.Len() != other.Len() {
		return false
	}
	for i := range s.Len() {
		if s.items[i] != other.items[i] {
			return false
		}
	}
	return true
}

// SameMembers reports whether both sets hold the same items, ignoring order.
func (s *OrderedSet) SameMembers(other *OrderedSet) bool {
	if s.Len() != other.Len() {
		return false
	}
	for i := range s.Len() {
		if _, ok := other.index[s.items[i]]; !ok {
			return false
		}
	}
	return true
}

// Clone returns an independent copy.
func (s *OrderedSet) Clone() *OrderedSet {
	c := &OrderedSet{index: make(map[InternedString]int, s.Len())}
	if s == nil {
		return c
	}
	c.items = slices.Clone(s.items)
	for k, v := range s.index {
		c.index[k] = v
	}
	return c
}
