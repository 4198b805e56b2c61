package indexer

import "errors"

var (
	// ErrInvalidMaxAttempts is returned when maxAttempts is <= 0
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrSnapshotRepositoryRequired is returned when no snapshot repository is provided.
	ErrSnapshotRepositoryRequired = errors.New("snapshot repository is required")

	// ErrNoItems is returned when a build is requested for an empty catalog.
	ErrNoItems = errors.New("catalog has no items")
)
