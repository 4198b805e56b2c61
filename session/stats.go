package session

import (
	"context"
	"time"

	"github.com/poiesic/coursematch/catalog"
	"github.com/poiesic/coursematch/core"
)

// Stats summarizes the catalog, recorded queries and feedback.
type Stats struct {
	Catalog        catalog.Stats
	Advisory       *catalog.Advisory // Nil when catalog and index were aligned
	Feedback       core.FeedbackTally
	Queries        int
	AverageLatency time.Duration // Over recorded queries
}

// Stats computes the current summary.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	tally, err := s.feedback.Tally(ctx)
	if err != nil {
		return nil, err
	}

	entries, err := s.allEntries(ctx)
	if err != nil {
		return nil, err
	}

	st := &Stats{
		Catalog:  s.engine.Corpus().Store().Stats(),
		Advisory: s.advisory,
		Feedback: *tally,
		Queries:  len(entries),
	}
	if len(entries) > 0 {
		var total float64
		for _, e := range entries {
			total += e.LatencyMillis
		}
		avg := total / float64(len(entries))
		st.AverageLatency = time.Duration(avg * float64(time.Millisecond))
	}

	return st, nil
}

// allEntries returns every recorded request, oldest first.
func (s *Service) allEntries(ctx context.Context) ([]*core.HistoryEntry, error) {
	count, err := s.history.Count(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := s.history.GetRecentEntries(ctx, count)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}
