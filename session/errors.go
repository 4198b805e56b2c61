package session

import "errors"

var (
	// ErrEngineRequired is returned when no ranking engine is provided.
	ErrEngineRequired = errors.New("ranking engine is required")

	// ErrHistoryRepositoryRequired is returned when no history repository is provided.
	ErrHistoryRepositoryRequired = errors.New("history repository is required")

	// ErrFeedbackRepositoryRequired is returned when no feedback repository is provided.
	ErrFeedbackRepositoryRequired = errors.New("feedback repository is required")

	// ErrEmptyQuery is returned when a request carries no query text.
	ErrEmptyQuery = errors.New("query cannot be empty")
)
