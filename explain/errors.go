package explain

import "errors"

var (
	// ErrUnknownTemplate indicates a template name the renderer does not use.
	ErrUnknownTemplate = errors.New("unknown template")

	// ErrInvalidTemplate indicates a template that fails to render.
	ErrInvalidTemplate = errors.New("invalid template")

	// ErrItemRequired indicates a result without an item.
	ErrItemRequired = errors.New("item is required")
)
