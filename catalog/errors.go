package catalog

import "errors"

var (
	// ErrInvalidRow indicates an input row could not be turned into an Item.
	ErrInvalidRow = errors.New("invalid catalog row")

	// ErrMissingColumn indicates a required CSV column is absent.
	ErrMissingColumn = errors.New("missing required column")

	// ErrUnsupportedFormat indicates an import file with an unknown extension.
	ErrUnsupportedFormat = errors.New("unsupported catalog format")

	// ErrEmptyCatalog indicates an import produced no items.
	ErrEmptyCatalog = errors.New("catalog is empty")
)
