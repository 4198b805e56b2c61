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

package indexer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/coursematch/core"
	"github.com/poiesic/coursematch/search"
	"github.com/poiesic/coursematch/storage"
	"github.com/poiesic/coursematch/vectorspace"
)

// Indexer builds catalog snapshots.
type Indexer struct {
	snapshots      storage.SnapshotRepository
	fitter         *vectorspace.Fitter
	pool           *ants.Pool
	batchSize      int
	maxRetries     int
	retryDelay     time.Duration
	progress       io.Writer
	reportInterval int
	logger         *slog.Logger
}

// Option configures an Indexer.
type Option func(*Indexer) error

// WithBatchSize sets how many items are vectorized and written per batch.
// Default is DefaultBatchSize.
func WithBatchSize(size int) Option {
	return func(ix *Indexer) error {
		if size < 1 {
			size = DefaultBatchSize
		}
		ix.batchSize = size
		return nil
	}
}

// WithPoolSize sets the vectorization worker pool size.
// Default is runtime.NumCPU(), with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(ix *Indexer) error {
		if size < 1 {
			size = 1
		}
		if ix.pool != nil {
			ix.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		ix.pool = pool
		return nil
	}
}

// WithMaxRetries sets how many times a failed write is retried.
// Default is 3.
func WithMaxRetries(n int) Option {
	return func(ix *Indexer) error {
		if n < 0 {
			n = 0
		}
		ix.maxRetries = n
		return nil
	}
}

// WithRetryDelay sets the base backoff delay between write attempts.
// Default is one second.
func WithRetryDelay(d time.Duration) Option {
	return func(ix *Indexer) error {
		if d <= 0 {
			return fmt.Errorf("retry delay must be positive, got %v", d)
		}
		ix.retryDelay = d
		return nil
	}
}

// WithProgress reports progress to w every interval items.
// Default is no progress output.
func WithProgress(w io.Writer, interval int) Option {
	return func(ix *Indexer) error {
		ix.progress = w
		ix.reportInterval = interval
		return nil
	}
}

// WithFitter sets the fitter used to learn the vocabulary.
// Default is vectorspace.NewFitter().
func WithFitter(fitter *vectorspace.Fitter) Option {
	return func(ix *Indexer) error {
		if fitter == nil {
			fitter = vectorspace.NewFitter()
		}
		ix.fitter = fitter
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(ix *Indexer) error {
		if logger == nil {
			logger = slog.Default()
		}
		ix.logger = logger
		return nil
	}
}

// NewIndexer creates an indexer writing to snapshots.
// Call Release when done to stop the worker pool.
func NewIndexer(snapshots storage.SnapshotRepository, opts ...Option) (*Indexer, error) {
	if snapshots == nil {
		return nil, ErrSnapshotRepositoryRequired
	}

	pool, err := ants.NewPool(max(runtime.NumCPU(), 1))
	if err != nil {
		return nil, err
	}

	ix := &Indexer{
		snapshots:  snapshots,
		fitter:     vectorspace.NewFitter(),
		pool:       pool,
		batchSize:  DefaultBatchSize,
		maxRetries: 3,
		retryDelay: time.Second,
		logger:     slog.Default().With("component", "indexer"),
	}

	for _, opt := range opts {
		if optErr := opt(ix); optErr != nil {
			ix.Release()
			return nil, optErr
		}
	}

	return ix, nil
}

// Release stops the worker pool.
func (ix *Indexer) Release() {
	if ix.pool != nil {
		ix.pool.Release()
	}
}

// Build replaces the stored snapshot with one built from items.
// Items must be valid; the first invalid item aborts the build before
// anything is written. Items are stored in the order given.
func (ix *Indexer) Build(ctx context.Context, items []*core.Item) (*core.SnapshotInfo, error) {
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	for i, item := range items {
		if err := core.ValidateItem(item); err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
	}

	docs := make([]string, len(items))
	for i, item := range items {
		docs[i] = search.Normalize(item.Text())
	}

	vocab, err := ix.fitter.Fit(docs)
	if err != nil {
		return nil, fmt.Errorf("failed to fit vocabulary: %w", err)
	}
	ix.logger.Debug("fitted vocabulary", "items", len(items), "terms", vocab.Size())

	if err := ix.retry(ctx, func() error { return ix.snapshots.Clear(ctx) }); err != nil {
		return nil, fmt.Errorf("failed to clear snapshot: %w", err)
	}

	tracker := NewProgressTracker(ix.progress, len(items), ix.reportInterval)
	tracker.Start()

	iterator := NewItemIterator(items, ix.batchSize)
	err = iterator.ForEach(ctx, func(offset int, batch []*core.Item) error {
		rows, err := ix.vectorize(vocab, docs[offset:offset+len(batch)])
		if err != nil {
			return fmt.Errorf("failed to vectorize batch at %d: %w", offset, err)
		}

		if err := ix.retry(ctx, func() error {
			return ix.snapshots.PutItems(ctx, offset, batch...)
		}); err != nil {
			return fmt.Errorf("failed to write items at %d after %d attempts: %w", offset, ix.attempts(), err)
		}
		if err := ix.retry(ctx, func() error {
			return ix.snapshots.PutRows(ctx, offset, rows...)
		}); err != nil {
			return fmt.Errorf("failed to write rows at %d after %d attempts: %w", offset, ix.attempts(), err)
		}

		tracker.Increment(len(batch))
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := ix.retry(ctx, func() error { return ix.snapshots.PutVocabulary(ctx, vocab) }); err != nil {
		return nil, fmt.Errorf("failed to write vocabulary: %w", err)
	}

	info := &core.SnapshotInfo{
		Items:   len(items),
		Rows:    len(items),
		Terms:   vocab.Size(),
		BuiltAt: time.Now().UTC(),
	}
	if err := ix.retry(ctx, func() error { return ix.snapshots.PutInfo(ctx, info) }); err != nil {
		return nil, fmt.Errorf("failed to write snapshot info: %w", err)
	}

	tracker.Finish()

	ix.logger.Info("snapshot built",
		"items", info.Items,
		"terms", info.Terms,
		"batches", iterator.Batches(),
		"elapsed", tracker.Elapsed().Round(time.Millisecond))

	return info, nil
}

// vectorize transforms docs on the worker pool, preserving order.
func (ix *Indexer) vectorize(vocab *vectorspace.Vocabulary, docs []string) ([]vectorspace.SparseVector, error) {
	rows := make([]vectorspace.SparseVector, len(docs))

	var wg sync.WaitGroup
	for i, doc := range docs {
		wg.Add(1)
		if err := ix.pool.Submit(func() {
			defer wg.Done()
			rows[i] = ix.fitter.Transform(vocab, doc)
		}); err != nil {
			wg.Done()
			wg.Wait()
			return nil, err
		}
	}
	wg.Wait()

	return rows, nil
}

func (ix *Indexer) retry(ctx context.Context, op func() error) error {
	return RetryWithBackoff(ctx, op, ix.attempts(), ix.retryDelay)
}

func (ix *Indexer) attempts() int {
	return ix.maxRetries + 1
}
