package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/poiesic/coursematch/core"
	"github.com/poiesic/coursematch/explain"
	"github.com/poiesic/coursematch/metrics"
	"github.com/poiesic/coursematch/session"
)

type jsonRecommendation struct {
	Rank        int                  `json:"rank"`
	Name        string               `json:"name"`
	Provider    string               `json:"provider,omitempty"`
	Difficulty  string               `json:"difficulty,omitempty"`
	Topic       string               `json:"topic,omitempty"`
	Rating      *float64             `json:"rating,omitempty"`
	Skills      []string             `json:"skills,omitempty"`
	URL         string               `json:"url,omitempty"`
	Similarity  float32              `json:"similarity"`
	Explanation *explain.Explanation `json:"explanation,omitempty"`
}

type jsonResponse struct {
	Query           string               `json:"query"`
	Normalized      string               `json:"normalized"`
	LatencyMillis   float64              `json:"latency_ms"`
	Recommendations []jsonRecommendation `json:"recommendations"`
}

func writeJSON(w io.Writer, resp *session.Response) error {
	out := jsonResponse{
		Query:           resp.Query,
		Normalized:      resp.Normalized,
		LatencyMillis:   float64(resp.Latency.Microseconds()) / 1000.0,
		Recommendations: make([]jsonRecommendation, len(resp.Recommendations)),
	}
	for i, rec := range resp.Recommendations {
		out.Recommendations[i] = jsonRecommendation{
			Rank:        i + 1,
			Name:        rec.Item.Name,
			Provider:    rec.Item.Provider,
			Difficulty:  rec.Item.Difficulty,
			Topic:       rec.Item.Topic,
			Rating:      rec.Item.Rating,
			Skills:      rec.Item.Skills,
			URL:         rec.Item.URL,
			Similarity:  rec.Similarity,
			Explanation: rec.Explanation,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func printResponse(w io.Writer, resp *session.Response) {
	if len(resp.Recommendations) == 0 {
		fmt.Fprintln(w, "No courses matched. Try different wording or fewer filters.")
		return
	}

	fmt.Fprintf(w, "Found %d courses in %v\n", len(resp.Recommendations), resp.Latency.Round(time.Microsecond))
	for i, rec := range resp.Recommendations {
		item := rec.Item
		fmt.Fprintf(w, "%d. %s", i+1, item.Name)
		if item.Provider != "" {
			fmt.Fprintf(w, " (%s)", item.Provider)
		}
		fmt.Fprintf(w, " [%.3f]\n", rec.Similarity)

		var details []string
		if item.Difficulty != "" {
			details = append(details, item.Difficulty)
		}
		if item.Topic != "" {
			details = append(details, item.Topic)
		}
		if item.Rating != nil {
			details = append(details, fmt.Sprintf("rated %.1f", *item.Rating))
		}
		if len(details) > 0 {
			fmt.Fprintf(w, "   %s\n", strings.Join(details, " | "))
		}
		if rec.Explanation != nil {
			fmt.Fprintf(w, "   Relevance: %s\n", rec.Explanation.Relevance)
			fmt.Fprintf(w, "   Context: %s\n", rec.Explanation.Context)
		}
	}
}

func printHistory(w io.Writer, entries []*core.HistoryEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No queries recorded yet")
		return
	}
	for _, e := range entries {
		fmt.Fprintf(w, "%s  %-40s  %d courses\n",
			e.Timestamp.UTC().Format("2006-01-02 15:04 UTC"), truncate(e.Query, 40), len(e.ResultNames))
	}
}

func printTally(w io.Writer, tally *core.FeedbackTally) {
	fmt.Fprintf(w, "Feedback: %d helpful, %d not helpful", tally.Helpful, tally.NotHelpful)
	if tally.Total() > 0 {
		fmt.Fprintf(w, " (%.1f%% positive)", tally.PositiveRate())
	}
	fmt.Fprintln(w)
}

func printStats(w io.Writer, st *session.Stats) {
	fmt.Fprintf(w, "Courses:        %d\n", st.Catalog.Items)
	fmt.Fprintf(w, "Topics:         %d\n", len(st.Catalog.ByTopic))
	fmt.Fprintf(w, "Specialized:    %d\n", st.Catalog.Specialized)
	if st.Catalog.Rated > 0 {
		fmt.Fprintf(w, "Average rating: %.2f (%d rated)\n", st.Catalog.AverageRating, st.Catalog.Rated)
	}
	fmt.Fprintf(w, "Queries:        %d\n", st.Queries)
	if st.Queries > 0 {
		fmt.Fprintf(w, "Avg latency:    %v\n", st.AverageLatency.Round(time.Microsecond))
	}
	printTally(w, &st.Feedback)
	if st.Advisory != nil {
		fmt.Fprintf(w, "Warning: %s\n", st.Advisory)
	}
}

func printSummary(w io.Writer, s metrics.Summary) {
	fmt.Fprintf(w, "Session: %d queries, %d empty, avg %v", s.Queries, s.EmptyResults, s.AvgLatency.Round(time.Microsecond))
	if s.Helpful+s.NotHelpful > 0 {
		fmt.Fprintf(w, ", feedback %d/%d helpful", s.Helpful, s.Helpful+s.NotHelpful)
	}
	fmt.Fprintln(w)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
