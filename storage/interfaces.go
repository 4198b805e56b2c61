package storage

import (
	"context"
	"time"

	"github.com/poiesic/coursematch/core"
	"github.com/poiesic/coursematch/vectorspace"
)

type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close releases resources held by the repository.
	Close() error
}

// SnapshotRepository persists the artifacts produced by an index build:
// catalog items, their TF-IDF rows and the fitted vocabulary.
// Items and rows are addressed by catalog position.
type SnapshotRepository interface {
	Repository

	// Clear removes every snapshot artifact.
	Clear(ctx context.Context) error

	// PutItems stores items at positions offset, offset+1, ...
	PutItems(ctx context.Context, offset int, items ...*core.Item) error

	// PutRows stores matrix rows at positions offset, offset+1, ...
	PutRows(ctx context.Context, offset int, rows ...vectorspace.SparseVector) error

	// PutVocabulary stores the fitted vocabulary, replacing any previous one.
	PutVocabulary(ctx context.Context, vocab *vectorspace.Vocabulary) error

	// PutInfo stores the build summary.
	PutInfo(ctx context.Context, info *core.SnapshotInfo) error

	// LoadItems returns all items in position order.
	// Returns ErrCorruptSnapshot if positions are not contiguous from zero.
	LoadItems(ctx context.Context) ([]*core.Item, error)

	// LoadRows returns all rows in position order.
	// Returns ErrCorruptSnapshot if positions are not contiguous from zero.
	LoadRows(ctx context.Context) ([]vectorspace.SparseVector, error)

	// LoadVocabulary returns the stored vocabulary.
	// Returns ErrNotFound if no vocabulary was stored.
	LoadVocabulary(ctx context.Context) (*vectorspace.Vocabulary, error)

	// Info returns the build summary.
	// Returns ErrNotFound if no snapshot was built.
	Info(ctx context.Context) (*core.SnapshotInfo, error)
}

// HistoryRepository records executed queries.
type HistoryRepository interface {
	Repository

	// AddEntries stores entries, assigning sequence IDs.
	// Sets Timestamp if not already set.
	AddEntries(ctx context.Context, entries ...*core.HistoryEntry) ([]*core.HistoryEntry, error)

	// GetEntry retrieves a single entry by ID.
	// Returns ErrNotFound if the entry doesn't exist.
	GetEntry(ctx context.Context, id core.ID) (*core.HistoryEntry, error)

	// GetRecentEntries returns up to limit entries, most recent first.
	GetRecentEntries(ctx context.Context, limit int) ([]*core.HistoryEntry, error)

	// GetEntriesByDateRange returns entries where start <= Timestamp < end,
	// oldest first.
	GetEntriesByDateRange(ctx context.Context, start, end time.Time) ([]*core.HistoryEntry, error)

	// Count returns the number of stored entries.
	Count(ctx context.Context) (int, error)

	// Clear removes all entries.
	Clear(ctx context.Context) error
}

// FeedbackRepository keeps the running helpful / not helpful tally.
type FeedbackRepository interface {
	// Record adds one vote and returns the updated tally.
	Record(ctx context.Context, kind core.FeedbackKind) (*core.FeedbackTally, error)

	// Tally returns the current tally. A store with no votes returns a zero tally.
	Tally(ctx context.Context) (*core.FeedbackTally, error)

	// Reset clears the tally.
	Reset(ctx context.Context) error
}
