package search

import (
	"github.com/poiesic/coursematch/core"
)

// Filters restrict ranked results. Zero values impose no constraint.
// Labels match exactly, so "Beginner" and "beginner" are different levels.
type Filters struct {
	Difficulties []string // Accepted difficulty labels; empty accepts all
	Topics       []string // Accepted topic labels; empty accepts all
	MinRating    float64  // Unrated items count as 0
}

// Active reports whether any filter constrains the result.
func (f Filters) Active() bool {
	return len(labelSet(f.Difficulties)) > 0 || len(labelSet(f.Topics)) > 0 || f.MinRating > 0
}

// Match reports whether item satisfies every active filter.
func (f Filters) Match(item *core.Item) bool {
	return f.matcher()(item)
}

// matcher compiles the filters into a predicate for repeated use.
func (f Filters) matcher() func(*core.Item) bool {
	difficulties := labelSet(f.Difficulties)
	topics := labelSet(f.Topics)
	minRating := f.MinRating

	return func(item *core.Item) bool {
		if len(difficulties) > 0 && !difficulties[item.Difficulty] {
			return false
		}
		if len(topics) > 0 && !topics[item.Topic] {
			return false
		}
		return item.RatingOrZero() >= minRating
	}
}

// labelSet collects labels for exact membership tests. Empty labels are ignored.
func labelSet(labels []string) map[string]bool {
	set := make(map[string]bool, len(labels))
	for _, l := range labels {
		if l != "" {
			set[l] = true
		}
	}
	return set
}
