package badger

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/coursematch/core"
	"github.com/poiesic/coursematch/storage"
	"github.com/poiesic/coursematch/vectorspace"
)

// SnapshotRepository implements storage.SnapshotRepository for BadgerDB.
type SnapshotRepository struct {
	backend *Backend
}

var _ storage.SnapshotRepository = (*SnapshotRepository)(nil)

// NewSnapshotRepository creates a new SnapshotRepository.
func NewSnapshotRepository(backend *Backend) *SnapshotRepository {
	return &SnapshotRepository{
		backend: backend,
	}
}

// Close is a no-op; the backend owns the database.
func (r *SnapshotRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *SnapshotRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// Clear removes every snapshot artifact.
func (r *SnapshotRepository) Clear(ctx context.Context) error {
	return r.backend.DeletePrefix(itemPrefix, rowPrefix, vocabularyKey, snapshotInfoKey)
}

// PutItems stores items at consecutive positions starting at offset.
func (r *SnapshotRepository) PutItems(ctx context.Context, offset int, items ...*core.Item) error {
	if offset < 0 {
		return storage.ErrInvalidQuery
	}
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for i, item := range items {
			key := makePositionKey(itemPrefix, offset+i)
			if err := tx.Set(key, storage.MarshalItem(item)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// PutRows stores rows at consecutive positions starting at offset.
func (r *SnapshotRepository) PutRows(ctx context.Context, offset int, rows ...vectorspace.SparseVector) error {
	if offset < 0 {
		return storage.ErrInvalidQuery
	}
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for i, row := range rows {
			key := makePositionKey(rowPrefix, offset+i)
			if err := tx.Set(key, storage.MarshalRow(row)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// PutVocabulary stores the fitted vocabulary.
func (r *SnapshotRepository) PutVocabulary(ctx context.Context, vocab *vectorspace.Vocabulary) error {
	if vocab == nil {
		return storage.ErrInvalidQuery
	}
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set([]byte(vocabularyKey), storage.MarshalVocabulary(vocab)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// PutInfo stores the build summary.
func (r *SnapshotRepository) PutInfo(ctx context.Context, info *core.SnapshotInfo) error {
	if info == nil {
		return storage.ErrInvalidQuery
	}
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set([]byte(snapshotInfoKey), storage.MarshalSnapshotInfo(info)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// LoadItems returns all items in position order.
func (r *SnapshotRepository) LoadItems(ctx context.Context) ([]*core.Item, error) {
	var items []*core.Item
	err := scanPositions(ctx, r.backend, itemPrefix, func(val []byte) error {
		item, err := storage.UnmarshalItem(val)
		if err != nil {
			return err
		}
		items = append(items, item)
		return nil
	})
	return items, err
}

// LoadRows returns all rows in position order.
func (r *SnapshotRepository) LoadRows(ctx context.Context) ([]vectorspace.SparseVector, error) {
	var rows []vectorspace.SparseVector
	err := scanPositions(ctx, r.backend, rowPrefix, func(val []byte) error {
		row, err := storage.UnmarshalRow(val)
		if err != nil {
			return err
		}
		rows = append(rows, row)
		return nil
	})
	return rows, err
}

// LoadVocabulary returns the stored vocabulary.
func (r *SnapshotRepository) LoadVocabulary(ctx context.Context) (*vectorspace.Vocabulary, error) {
	var vocab *vectorspace.Vocabulary
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get([]byte(vocabularyKey))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var err error
			vocab, err = storage.UnmarshalVocabulary(val)
			if err != nil {
				return fmt.Errorf("%w: vocabulary: %w", storage.ErrCorruptSnapshot, err)
			}
			return nil
		})
	}, false)
	return vocab, err
}

// Info returns the build summary.
func (r *SnapshotRepository) Info(ctx context.Context) (*core.SnapshotInfo, error) {
	var info *core.SnapshotInfo
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get([]byte(snapshotInfoKey))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var err error
			info, err = storage.UnmarshalSnapshotInfo(val)
			return err
		})
	}, false)
	return info, err
}

// scanPositions visits every value under prefix in position order and
// verifies positions run 0, 1, 2, ... without gaps.
func scanPositions(ctx context.Context, backend *Backend, prefix string, visit func(val []byte) error) error {
	return backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		expected := 0
		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			item := iter.Item()
			pos, err := parsePositionKey(prefix, item.Key())
			if err != nil {
				return err
			}
			if pos != expected {
				return fmt.Errorf("%w: %s position %d missing", storage.ErrCorruptSnapshot, prefix, expected)
			}
			expected++

			if err := item.Value(visit); err != nil {
				return fmt.Errorf("%w: %s position %d: %w", storage.ErrCorruptSnapshot, prefix, pos, err)
			}
		}
		return nil
	}, false)
}
