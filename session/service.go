// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package session serves recommendations and keeps the query history and
// feedback tally that surround them.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/poiesic/coursematch/catalog"
	"github.com/poiesic/coursematch/core"
	"github.com/poiesic/coursematch/explain"
	"github.com/poiesic/coursematch/metrics"
	"github.com/poiesic/coursematch/search"
	"github.com/poiesic/coursematch/storage"
)

// Request is a single recommendation request.
type Request struct {
	Query   string
	TopK    int
	Filters search.Filters
	Explain bool
}

// Recommendation is a ranked item with its optional explanation.
type Recommendation struct {
	core.Result
	Explanation *explain.Explanation
}

// Response carries the outcome of a request.
type Response struct {
	Query           string
	Normalized      string
	Recommendations []Recommendation
	Latency         time.Duration
	EntryID         core.ID // Zero if the request could not be recorded
}

// Service answers recommendation requests over a loaded corpus.
type Service struct {
	engine   *search.Engine
	history  storage.HistoryRepository
	feedback storage.FeedbackRepository
	metrics  *metrics.Collector
	renderer *explain.Renderer
	advisory *catalog.Advisory
	clock    func() time.Time
	logger   *slog.Logger
}

// Option configures a Service.
type Option func(*Service) error

// WithMetrics records every query and feedback vote in collector.
func WithMetrics(collector *metrics.Collector) Option {
	return func(s *Service) error {
		s.metrics = collector
		return nil
	}
}

// WithRenderer sets the renderer used for explanations.
// Default is explain.NewRenderer().
func WithRenderer(renderer *explain.Renderer) Option {
	return func(s *Service) error {
		if renderer != nil {
			s.renderer = renderer
		}
		return nil
	}
}

// WithAdvisory attaches the alignment advisory produced when the corpus was
// loaded so Stats can report it.
func WithAdvisory(advisory *catalog.Advisory) Option {
	return func(s *Service) error {
		s.advisory = advisory
		return nil
	}
}

// WithClock sets the time source for history timestamps.
// Default is time.Now.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) error {
		if clock == nil {
			clock = time.Now
		}
		s.clock = clock
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewService creates a recommendation service.
func NewService(engine *search.Engine, history storage.HistoryRepository, feedback storage.FeedbackRepository, opts ...Option) (*Service, error) {
	if engine == nil {
		return nil, ErrEngineRequired
	}
	if history == nil {
		return nil, ErrHistoryRepositoryRequired
	}
	if feedback == nil {
		return nil, ErrFeedbackRepositoryRequired
	}

	s := &Service{
		engine:   engine,
		history:  history,
		feedback: feedback,
		clock:    time.Now,
		logger:   slog.Default().With("component", "session"),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	if s.renderer == nil {
		renderer, err := explain.NewRenderer(explain.WithLogger(s.logger))
		if err != nil {
			return nil, err
		}
		s.renderer = renderer
	}
	if s.metrics != nil {
		s.metrics.SetCorpusRows(engine.Corpus().Len())
	}

	return s, nil
}

// Recommend ranks the catalog against req and records the request in the
// history. A request that cannot be recorded is still answered.
func (s *Service) Recommend(ctx context.Context, req Request) (*Response, error) {
	if strings.TrimSpace(req.Query) == "" {
		return nil, ErrEmptyQuery
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var monitor search.RankMonitor
	if s.metrics != nil {
		monitor = s.metrics
	}

	started := time.Now()
	results := s.engine.RankWithMonitor(req.Query, req.TopK, req.Filters, monitor)
	latency := time.Since(started)

	resp := &Response{
		Query:           req.Query,
		Normalized:      search.Normalize(req.Query),
		Recommendations: make([]Recommendation, len(results)),
		Latency:         latency,
	}

	for i, result := range results {
		resp.Recommendations[i] = Recommendation{Result: result}
		if !req.Explain {
			continue
		}
		explanation, err := s.renderer.Explain(result, req.Query)
		if err != nil {
			return nil, fmt.Errorf("failed to explain %q: %w", result.Item.Name, err)
		}
		resp.Recommendations[i].Explanation = &explanation
	}

	entry := s.historyEntry(req, resp, results)
	saved, err := s.history.AddEntries(ctx, entry)
	if err != nil {
		s.logger.Warn("failed to record query", "query", req.Query, "err", err)
	} else {
		resp.EntryID = saved[0].Id
	}

	s.logger.Debug("served recommendation",
		"query", resp.Normalized,
		"results", len(results),
		"latency", latency)

	return resp, nil
}

func (s *Service) historyEntry(req Request, resp *Response, results []core.Result) *core.HistoryEntry {
	names := make([]string, len(results))
	for i, r := range results {
		names[i] = r.Item.Name
	}

	var top float32
	if len(results) > 0 {
		top = results[0].Similarity
	}

	return &core.HistoryEntry{
		Query:         req.Query,
		Normalized:    resp.Normalized,
		TopK:          max(req.TopK, 0),
		Difficulties:  req.Filters.Difficulties,
		Topics:        req.Filters.Topics,
		MinRating:     req.Filters.MinRating,
		ResultNames:   names,
		TopSimilarity: top,
		LatencyMillis: float64(resp.Latency.Microseconds()) / 1000.0,
		Timestamp:     s.clock().UTC(),
	}
}

// History returns up to limit past requests, most recent first.
func (s *Service) History(ctx context.Context, limit int) ([]*core.HistoryEntry, error) {
	return s.history.GetRecentEntries(ctx, limit)
}

// ClearHistory removes every recorded request.
func (s *Service) ClearHistory(ctx context.Context) error {
	return s.history.Clear(ctx)
}

// RecordFeedback adds one vote and returns the updated tally.
func (s *Service) RecordFeedback(ctx context.Context, kind core.FeedbackKind) (*core.FeedbackTally, error) {
	tally, err := s.feedback.Record(ctx, kind)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.ObserveFeedback(kind)
	}

	s.logger.Info("feedback recorded", "kind", kind, "helpful", tally.Helpful, "notHelpful", tally.NotHelpful)
	return tally, nil
}

// Feedback returns the current tally.
func (s *Service) Feedback(ctx context.Context) (*core.FeedbackTally, error) {
	return s.feedback.Tally(ctx)
}
