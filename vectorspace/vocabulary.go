package vectorspace

import (
	"fmt"
	"math"
)

// Vocabulary is a fitted term to column mapping with per-term IDF weights.
type Vocabulary struct {
	terms   []string
	idf     []float32
	columns map[string]int32
}

// NewVocabulary builds a vocabulary from aligned terms and IDF weights.
// Terms must be unique and non-empty; weights must be finite and positive.
func NewVocabulary(terms []string, idf []float32) (*Vocabulary, error) {
	if len(terms) == 0 {
		return nil, fmt.Errorf("%w: no terms", ErrMalformedVocabulary)
	}
	if len(terms) != len(idf) {
		return nil, fmt.Errorf("%w: %d terms but %d weights", ErrMalformedVocabulary, len(terms), len(idf))
	}

	columns := make(map[string]int32, len(terms))
	for i, term := range terms {
		if term == "" {
			return nil, fmt.Errorf("%w: empty term at column %d", ErrMalformedVocabulary, i)
		}
		if _, dup := columns[term]; dup {
			return nil, fmt.Errorf("%w: duplicate term %q", ErrMalformedVocabulary, term)
		}
		w := float64(idf[i])
		if math.IsNaN(w) || math.IsInf(w, 0) || w <= 0 {
			return nil, fmt.Errorf("%w: invalid weight %v for %q", ErrMalformedVocabulary, idf[i], term)
		}
		columns[term] = int32(i)
	}

	v := &Vocabulary{
		terms:   make([]string, len(terms)),
		idf:     make([]float32, len(idf)),
		columns: columns,
	}
	copy(v.terms, terms)
	copy(v.idf, idf)
	return v, nil
}

// Size returns the number of terms (columns).
func (v *Vocabulary) Size() int {
	return len(v.terms)
}

// Column returns the column of a term.
func (v *Vocabulary) Column(term string) (int32, bool) {
	col, ok := v.columns[term]
	return col, ok
}

// Term returns the term stored at a column.
func (v *Vocabulary) Term(col int32) string {
	return v.terms[col]
}

// IDF returns the inverse document frequency weight of a column.
func (v *Vocabulary) IDF(col int32) float32 {
	return v.idf[col]
}

// Terms returns a copy of the terms in column order.
func (v *Vocabulary) Terms() []string {
	out := make([]string, len(v.terms))
	copy(out, v.terms)
	return out
}

// Weights returns a copy of the IDF weights in column order.
func (v *Vocabulary) Weights() []float32 {
	out := make([]float32, len(v.idf))
	copy(out, v.idf)
	return out
}
