package search

import (
	"cmp"
	"log/slog"
	"math"
	"slices"
	"time"

	"github.com/poiesic/coursematch/core"
)

// Engine ranks catalog items against free-text queries.
type Engine struct {
	corpus  *Corpus
	monitor RankMonitor
	logger  *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// WithMonitor sets the monitor used when Rank is called without one.
// Default is a no-op monitor.
func WithMonitor(monitor RankMonitor) Option {
	return func(e *Engine) error {
		if monitor == nil {
			monitor = &noopMonitor{}
		}
		e.monitor = monitor
		return nil
	}
}

// NewEngine creates a new ranking engine over corpus.
func NewEngine(corpus *Corpus, opts ...Option) (*Engine, error) {
	if corpus == nil {
		return nil, ErrCorpusRequired
	}

	e := &Engine{
		corpus:  corpus,
		monitor: &noopMonitor{},
		logger:  slog.Default().With("component", "ranking-engine"),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// Corpus returns the corpus the engine ranks over.
func (e *Engine) Corpus() *Corpus {
	return e.corpus
}

// Rank returns at most topK items matching filters, most similar first.
// A query without letters, a non-positive topK, or filters that no item
// passes yield an empty result.
func (e *Engine) Rank(query string, topK int, filters Filters) []core.Result {
	return e.RankWithMonitor(query, topK, filters, nil)
}

// RankWithMonitor ranks like Rank and reports each stage to monitor.
// A nil monitor falls back to the engine's monitor.
func (e *Engine) RankWithMonitor(query string, topK int, filters Filters, monitor RankMonitor) []core.Result {
	if monitor == nil {
		monitor = e.monitor
	}

	started := time.Now()
	monitor.Start(query)

	normalized := Normalize(query)
	monitor.AfterNormalize(normalized)
	if normalized == "" || topK <= 0 {
		e.logger.Debug("nothing to rank", "query", query, "topK", topK)
		monitor.Finish(nil, time.Since(started))
		return []core.Result{}
	}

	// 1. Score every row
	q := e.corpus.vectorizer.Vectorize(normalized)
	scores := e.corpus.index.Score(q)
	monitor.AfterScoring(len(scores))

	// 2. Filter
	match := filters.matcher()
	results := make([]core.Result, 0, len(scores))
	for row, sim := range scores {
		item := e.corpus.store.Item(row)
		if !match(item) {
			continue
		}
		results = append(results, core.Result{
			Item:       item,
			Row:        row,
			Similarity: sim,
		})
	}
	monitor.AfterFilter(len(results))

	if len(results) == 0 {
		e.logger.Debug("no items passed filters", "query", normalized)
		monitor.Finish(results, time.Since(started))
		return results
	}

	// 3. Order and truncate
	slices.SortStableFunc(results, compareResults)
	if len(results) > topK {
		results = results[:topK]
	}

	e.logger.Debug("ranked query",
		"query", normalized,
		"scored", len(scores),
		"returned", len(results))

	monitor.Finish(results, time.Since(started))
	return results
}

// compareResults orders by similarity, then rating with unrated items last,
// then specialized items first. All keys descend.
func compareResults(a, b core.Result) int {
	if c := cmp.Compare(b.Similarity, a.Similarity); c != 0 {
		return c
	}
	if c := cmp.Compare(ratingKey(b.Item), ratingKey(a.Item)); c != 0 {
		return c
	}
	switch {
	case a.Item.Specialized == b.Item.Specialized:
		return 0
	case a.Item.Specialized:
		return -1
	default:
		return 1
	}
}

func ratingKey(item *core.Item) float64 {
	if item.Rating == nil {
		return math.Inf(-1)
	}
	return *item.Rating
}
