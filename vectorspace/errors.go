package vectorspace

import "errors"

var (
	// ErrMalformedVocabulary is returned when vocabulary terms and weights are inconsistent.
	ErrMalformedVocabulary = errors.New("malformed vocabulary")

	// ErrMalformedMatrix is returned when matrix rows reference invalid columns or values.
	ErrMalformedMatrix = errors.New("malformed matrix")

	// ErrEmptyCorpus is returned when fitting is attempted without documents.
	ErrEmptyCorpus = errors.New("no documents to fit")

	// ErrEmptyVocabulary is returned when fitting produced no terms.
	ErrEmptyVocabulary = errors.New("fitted vocabulary is empty")
)
