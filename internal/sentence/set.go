package sentence

import (
	"fmt"
	"sort"
)

// Set is an ordered collection of items grouped by level. Items keep the
// order they were loaded in, both globally and within each level.
type Set struct {
	items   []Item
	byLevel map[int][]Item
	byID    map[string]Item
	levels  []int
}

// NewSet indexes items by level and ID.
func NewSet(items []Item) *Set {
	s := &Set{
		items:   items,
		byLevel: make(map[int][]Item),
		byID:    make(map[string]Item, len(items)),
	}
	for _, it := range items {
		if _, ok := s.byLevel[it.Level]; !ok {
			s.levels = append(s.levels, it.Level)
		}
		s.byLevel[it.Level] = append(s.byLevel[it.Level], it)
		if _, dup := s.byID[it.ID]; !dup {
			s.byID[it.ID] = it
		}
	}
	sort.Ints(s.levels)
	return s
}

// Items returns every item in load order.
func (s *Set) Items() []Item {
	return s.items
}

// Len returns the number of items.
func (s *Set) Len() int {
	return len(s.items)
}

// Levels returns the distinct levels in ascending order.
func (s *Set) Levels() []int {
	return s.levels
}

// ByLevel returns the items of a level in load order.
func (s *Set) ByLevel(level int) []Item {
	return s.byLevel[level]
}

// HasLevel reports whether at least one item belongs to level.
func (s *Set) HasLevel(level int) bool {
	return len(s.byLevel[level]) > 0
}

// NextLevel returns the smallest level greater than level.
func (s *Set) NextLevel(level int) (int, bool) {
	for _, l := range s.levels {
		if l > level {
			return l, true
		}
	}
	return 0, false
}

// FirstLevel returns the lowest level, or false for an empty set.
func (s *Set) FirstLevel() (int, bool) {
	if len(s.levels) == 0 {
		return 0, false
	}
	return s.levels[0], true
}

// Categories returns the distinct categories of a level in first-seen order.
func (s *Set) Categories(level int) []string {
	seen := make(map[string]bool)
	var out []string
	for _, it := range s.byLevel[level] {
		if it.Category == "" || seen[it.Category] {
			continue
		}
		seen[it.Category] = true
		out = append(out, it.Category)
	}
	return out
}

// Find returns the item with the given ID.
func (s *Set) Find(id string) (Item, bool) {
	it, ok := s.byID[id]
	return it, ok
}

// Validate checks structural invariants of the set: unique IDs, positive
// levels, and a non-empty target sentence on every item.
func (s *Set) Validate() []error {
	var errs []error
	seen := make(map[string]bool, len(s.items))
	for _, it := range s.items {
		if seen[it.ID] {
			errs = append(errs, fmt.Errorf("duplicate sentence id %q", it.ID))
		}
		seen[it.ID] = true
		if it.Level < 1 {
			errs = append(errs, fmt.Errorf("sentence %q: level %d must be >= 1", it.ID, it.Level))
		}
		if it.Target == "" {
			errs = append(errs, fmt.Errorf("sentence %q: empty target sentence", it.ID))
		}
	}
	return errs
}
