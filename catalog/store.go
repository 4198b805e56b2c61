package catalog

import (
	"slices"
	"strings"

	"github.com/poiesic/coursematch/core"
)

// Store is an immutable, position-indexed table of catalog items.
type Store struct {
	items []*core.Item
}

// NewStore copies items into a new store.
func NewStore(items []*core.Item) *Store {
	return &Store{items: slices.Clone(items)}
}

// Len returns the number of items.
func (s *Store) Len() int {
	return len(s.items)
}

// Item returns the item at row i.
func (s *Store) Item(i int) *core.Item {
	return s.items[i]
}

// Items returns a copy of the item slice in row order.
func (s *Store) Items() []*core.Item {
	return slices.Clone(s.items)
}

// Prefix returns a store holding the first n rows.
func (s *Store) Prefix(n int) *Store {
	if n >= len(s.items) {
		return s
	}
	if n < 0 {
		n = 0
	}
	return &Store{items: s.items[:n:n]}
}

// Topics returns the distinct topic labels in first-seen order.
func (s *Store) Topics() []string {
	return s.distinct(func(it *core.Item) string { return it.Topic })
}

// Difficulties returns the distinct difficulty labels in first-seen order.
func (s *Store) Difficulties() []string {
	return s.distinct(func(it *core.Item) string { return it.Difficulty })
}

func (s *Store) distinct(label func(*core.Item) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, it := range s.items {
		l := strings.TrimSpace(label(it))
		if l == "" || seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	return out
}

// Stats summarizes the catalog contents.
type Stats struct {
	Items         int
	Specialized   int
	LocaleContext int
	Rated         int
	AverageRating float64 // Over rated items only
	ByTopic       map[string]int
	ByDifficulty  map[string]int
}

// Stats computes summary counts over the store.
func (s *Store) Stats() Stats {
	st := Stats{
		Items:        len(s.items),
		ByTopic:      make(map[string]int),
		ByDifficulty: make(map[string]int),
	}
	var ratingSum float64
	for _, it := range s.items {
		if it.Specialized {
			st.Specialized++
		}
		if it.LocaleContext {
			st.LocaleContext++
		}
		if it.Rating != nil {
			st.Rated++
			ratingSum += *it.Rating
		}
		if it.Topic != "" {
			st.ByTopic[it.Topic]++
		}
		if it.Difficulty != "" {
			st.ByDifficulty[it.Difficulty]++
		}
	}
	if st.Rated > 0 {
		st.AverageRating = ratingSum / float64(st.Rated)
	}
	return st
}
