package search

import (
	"fmt"

	"github.com/poiesic/coursematch/catalog"
	"github.com/poiesic/coursematch/vectorspace"
)

// Corpus is the read-only state a ranking engine works over: the catalog, the
// vectorizer and the similarity index, aligned row for row.
type Corpus struct {
	store      *catalog.Store
	vectorizer *vectorspace.Vectorizer
	index      *vectorspace.Index
}

// NewCorpus assembles a corpus from loaded artifacts.
// A catalog and matrix of different lengths are truncated to their common
// prefix and reported through the advisory. Missing artifacts or a matrix
// whose column count differs from the vocabulary are errors.
func NewCorpus(store *catalog.Store, vocab *vectorspace.Vocabulary, matrix *vectorspace.Matrix) (*Corpus, *catalog.Advisory, error) {
	if store == nil {
		return nil, nil, ErrCatalogRequired
	}
	if vocab == nil {
		return nil, nil, ErrVocabularyRequired
	}
	if matrix == nil {
		return nil, nil, ErrMatrixRequired
	}
	if matrix.Cols() != vocab.Size() {
		return nil, nil, fmt.Errorf("%w: %d columns, %d terms", ErrDimensionMismatch, matrix.Cols(), vocab.Size())
	}

	store, matrix, advisory := catalog.Align(store, matrix)

	return &Corpus{
		store:      store,
		vectorizer: vectorspace.NewVectorizer(vocab),
		index:      vectorspace.NewIndex(matrix),
	}, advisory, nil
}

// Len returns the number of rankable rows.
func (c *Corpus) Len() int {
	return c.store.Len()
}

// Store returns the aligned catalog.
func (c *Corpus) Store() *catalog.Store {
	return c.store
}

// Vectorizer returns the query vectorizer.
func (c *Corpus) Vectorizer() *vectorspace.Vectorizer {
	return c.vectorizer
}

// Index returns the aligned similarity index.
func (c *Corpus) Index() *vectorspace.Index {
	return c.index
}
