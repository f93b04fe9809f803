package sets

import (
	"cmp"
	"slices"
)

// Set is a generic hash set for comparable keys.
// Usage: s := sets.New("intro", "usage"); s.Add("faq"); if s.Has("usage") {...}
type Set[T comparable] map[T]struct{}

// New creates a set pre-populated with the provided values.
func New[T comparable](vals ...T) Set[T] {
	s := make(Set[T], len(vals))
	for _, v := range vals {
		s[v] = struct{}{}
	}
	return s
}

// Add inserts value into the set and reports whether it was newly added.
func (s Set[T]) Add(v T) bool {
	if _, ok := s[v]; ok {
		return false
	}
	s[v] = struct{}{}
	return true
}

// Has returns true if v is present.
func (s Set[T]) Has(v T) bool {
	_, ok := s[v]
	return ok
}

// Len returns the number of elements.
func (s Set[T]) Len() int { return len(s) }

// Sorted returns the elements of an ordered set in ascending order.
func Sorted[T cmp.Ordered](s Set[T]) []T {
	out := make([]T, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// Ordered is an insertion-ordered set. It keeps the first occurrence of each value.
type Ordered[T comparable] struct {
	seen  Set[T]
	items []T
}

// NewOrdered creates an empty insertion-ordered set.
func NewOrdered[T comparable]() *Ordered[T] {
	return &Ordered[T]{seen: New[T]()}
}

// Add appends v unless it was already added.
func (o *Ordered[T]) Add(v T) {
	if o.seen.Add(v) {
		o.items = append(o.items, v)
	}
}

// Items returns the values in insertion order.
func (o *Ordered[T]) Items() []T {
	return slices.Clone(o.items)
}

// Len returns the number of distinct values added.
func (o *Ordered[T]) Len() int { return len(o.items) }
