package badger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/coursematch/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenBackend_InMemory(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	require.NotNil(t, backend)
	defer backend.Close()

	assert.False(t, backend.IsClosed())
}

func TestOpenBackend_FileSystem(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "db")
	backend, err := OpenBackend(dir, false)
	require.NoError(t, err)
	defer backend.Close()

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestOpenBackend_NotADirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))

	_, err := OpenBackend(path, false)
	assert.Error(t, err)
}

func TestBackendClose(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)

	require.NoError(t, backend.Close())
	assert.True(t, backend.IsClosed())

	err = backend.WithTx(func(tx *badger.Txn) error { return nil }, false)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
}

func TestWithTransaction(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()
	require.NoError(t, backend.WithTransaction(ctx, func(ctx context.Context) error { return nil }))

	boom := errors.New("boom")
	assert.ErrorIs(t, backend.WithTransaction(ctx, func(ctx context.Context) error { return boom }), boom)
}

func TestDeletePrefix(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	defer backend.Close()

	err = backend.WithTx(func(tx *badger.Txn) error {
		for _, k := range []string{"aa:1", "aa:2", "ab:1", "b:1"} {
			if err := tx.Set([]byte(k), []byte("v")); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
	require.NoError(t, err)

	require.NoError(t, backend.DeletePrefix("aa:", "b:", "missing:"))

	var remaining []string
	err = backend.WithTx(func(tx *badger.Txn) error {
		iter := tx.NewIterator(badger.DefaultIteratorOptions)
		defer iter.Close()
		for iter.Rewind(); iter.Valid(); iter.Next() {
			remaining = append(remaining, string(iter.Item().KeyCopy(nil)))
		}
		return nil
	}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"ab:1"}, remaining)
}

func TestPositionKeys(t *testing.T) {
	a := makePositionKey(itemPrefix, 2)
	b := makePositionKey(itemPrefix, 256)
	assert.Less(t, string(a), string(b), "BigEndian keys sort by position")

	pos, err := parsePositionKey(itemPrefix, b)
	require.NoError(t, err)
	assert.Equal(t, 256, pos)

	_, err = parsePositionKey(itemPrefix, []byte(itemPrefix+"x"))
	assert.ErrorIs(t, err, storage.ErrCorruptSnapshot)
}

func TestOpenBackend_Options(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	dir := t.TempDir()
	backend, err := OpenBackend(dir, false, WithBackendLogger(logger), WithSyncWrites(true))
	require.NoError(t, err)
	defer backend.Close()

	assert.Same(t, logger, backend.logger)
	assert.True(t, backend.db.Opts().SyncWrites)
}

func TestOpenBackend_EmptyPath(t *testing.T) {
	_, err := OpenBackend("", false)
	assert.Error(t, err)
}

func TestCountPrefix(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	defer backend.Close()

	err = backend.WithTx(func(tx *badger.Txn) error {
		for _, k := range []string{"aa:1", "aa:2", "ab:1"} {
			if err := tx.Set([]byte(k), []byte("v")); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
	require.NoError(t, err)

	n, err := backend.CountPrefix("aa:")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = backend.CountPrefix("zz:")
	require.NoError(t, err)
	assert.Zero(t, n)
}
