package session

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/poiesic/coursematch/core"
)

var exportHeader = []string{"timestamp", "query", "results", "top_results", "top_similarity", "latency_ms", "filters"}

// ExportHistoryCSV writes every recorded request to w as CSV, oldest first.
// It returns the number of entries written.
func (s *Service) ExportHistoryCSV(ctx context.Context, w io.Writer) (int, error) {
	entries, err := s.allEntries(ctx)
	if err != nil {
		return 0, err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return 0, err
	}
	for _, e := range entries {
		record := []string{
			e.Timestamp.UTC().Format(time.RFC3339),
			e.Query,
			strconv.Itoa(len(e.ResultNames)),
			strings.Join(e.ResultNames, "; "),
			strconv.FormatFloat(float64(e.TopSimilarity), 'f', 4, 32),
			strconv.FormatFloat(e.LatencyMillis, 'f', 2, 64),
			describeFilters(e),
		}
		if err := cw.Write(record); err != nil {
			return 0, err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, fmt.Errorf("failed to write history: %w", err)
	}

	return len(entries), nil
}

// describeFilters renders the filters of an entry, e.g.
// "difficulty=Beginner|Advanced topic=Data & AI min_rating=4.0".
func describeFilters(e *core.HistoryEntry) string {
	var parts []string
	if len(e.Difficulties) > 0 {
		parts = append(parts, "difficulty="+strings.Join(e.Difficulties, "|"))
	}
	if len(e.Topics) > 0 {
		parts = append(parts, "topic="+strings.Join(e.Topics, "|"))
	}
	if e.MinRating > 0 {
		parts = append(parts, "min_rating="+strconv.FormatFloat(e.MinRating, 'f', 1, 64))
	}
	return strings.Join(parts, " ")
}
