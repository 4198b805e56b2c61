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

package coursematch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/poiesic/coursematch/catalog"
	"github.com/poiesic/coursematch/indexer"
	"github.com/poiesic/coursematch/search"
	"github.com/poiesic/coursematch/session"
	"github.com/poiesic/coursematch/storage"
	"github.com/poiesic/coursematch/storage/badger"
	"github.com/poiesic/coursematch/vectorspace"
)

// ErrNoSnapshot is returned when a corpus is requested before any index build.
var ErrNoSnapshot = errors.New("no catalog snapshot; run an index build first")

type Database struct {
	backend      *badger.Backend
	snapshotRepo storage.SnapshotRepository
	historyRepo  storage.HistoryRepository
	feedbackRepo storage.FeedbackRepository
	logger       *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	logger *slog.Logger
}

// WithDatabaseLogger sets the logger used by the database and the services it creates.
func WithDatabaseLogger(logger *slog.Logger) DatabaseOption {
	return func(o *databaseOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// NewDatabase opens or creates a database at filePath.
func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	return openDatabase(filePath, false, opts...)
}

// NewMemoryDatabase creates a database that lives only in memory.
func NewMemoryDatabase(opts ...DatabaseOption) (*Database, error) {
	return openDatabase("", true, opts...)
}

func openDatabase(filePath string, inMemory bool, opts ...DatabaseOption) (*Database, error) {
	options := &databaseOptions{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, inMemory, badger.WithBackendLogger(options.logger))
	if err != nil {
		return nil, err
	}

	historyRepo, err := badger.NewHistoryRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	return &Database{
		backend:      backend,
		snapshotRepo: badger.NewSnapshotRepository(backend),
		historyRepo:  historyRepo,
		feedbackRepo: badger.NewFeedbackRepository(backend),
		logger:       options.logger,
	}, nil
}

func (db *Database) Close() error {
	if err := db.historyRepo.Close(); err != nil {
		db.logger.Error("error closing history repository", "err", err)
		return err
	}
	if err := db.snapshotRepo.Close(); err != nil {
		db.logger.Error("error closing snapshot repository", "err", err)
		return err
	}

	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (db *Database) SnapshotRepository() storage.SnapshotRepository {
	return db.snapshotRepo
}

func (db *Database) HistoryRepository() storage.HistoryRepository {
	return db.historyRepo
}

func (db *Database) FeedbackRepository() storage.FeedbackRepository {
	return db.feedbackRepo
}

// NewIndexer creates an indexer that writes to this database's snapshot.
// Call Release on the result when done.
func (db *Database) NewIndexer(opts ...indexer.Option) (*indexer.Indexer, error) {
	opts = append([]indexer.Option{indexer.WithLogger(db.logger)}, opts...)
	return indexer.NewIndexer(db.snapshotRepo, opts...)
}

// LoadCorpus reads the stored snapshot into a rankable corpus.
// A catalog and index of different lengths are truncated to their common
// prefix and reported through the advisory. A missing snapshot returns
// ErrNoSnapshot; a malformed one is an error.
func (db *Database) LoadCorpus(ctx context.Context) (*search.Corpus, *catalog.Advisory, error) {
	if _, err := db.snapshotRepo.Info(ctx); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, ErrNoSnapshot
		}
		return nil, nil, err
	}

	items, err := db.snapshotRepo.LoadItems(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	rows, err := db.snapshotRepo.LoadRows(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load index: %w", err)
	}
	vocab, err := db.snapshotRepo.LoadVocabulary(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load vocabulary: %w", err)
	}

	matrix, err := vectorspace.NewMatrix(rows, vocab.Size())
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", storage.ErrCorruptSnapshot, err)
	}

	corpus, advisory, err := search.NewCorpus(catalog.NewStore(items), vocab, matrix)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", storage.ErrCorruptSnapshot, err)
	}
	if advisory != nil {
		db.logger.Warn("catalog and index disagree", "advisory", advisory.String())
	}

	db.logger.Debug("loaded corpus", "rows", corpus.Len(), "terms", vocab.Size())
	return corpus, advisory, nil
}

// NewEngine loads the stored snapshot and creates a ranking engine over it.
func (db *Database) NewEngine(ctx context.Context, opts ...search.Option) (*search.Engine, *catalog.Advisory, error) {
	corpus, advisory, err := db.LoadCorpus(ctx)
	if err != nil {
		return nil, nil, err
	}

	opts = append([]search.Option{search.WithLogger(db.logger)}, opts...)
	engine, err := search.NewEngine(corpus, opts...)
	if err != nil {
		return nil, nil, err
	}
	return engine, advisory, nil
}

// NewSession loads the stored snapshot and creates a recommendation service
// backed by this database's history and feedback.
func (db *Database) NewSession(ctx context.Context, opts ...session.Option) (*session.Service, error) {
	engine, advisory, err := db.NewEngine(ctx)
	if err != nil {
		return nil, err
	}

	opts = append([]session.Option{
		session.WithLogger(db.logger),
		session.WithAdvisory(advisory),
	}, opts...)
	return session.NewService(engine, db.historyRepo, db.feedbackRepo, opts...)
}
