package vectorspace

import (
	"math"
	"slices"
)

// Fitter learns a vocabulary and IDF weights from a document collection.
// Documents are expected to be normalized already.
type Fitter struct {
	minTokenLength int
	stopWords      map[string]bool
}

// FitOption configures a Fitter.
type FitOption func(*Fitter)

// WithMinTokenLength drops tokens shorter than n characters.
// Default is DefaultMinTokenLength.
func WithMinTokenLength(n int) FitOption {
	return func(f *Fitter) {
		if n < 1 {
			n = 1
		}
		f.minTokenLength = n
	}
}

// WithStopWords replaces the stop word list.
// Default is DefaultStopWords; an empty list disables stop word removal.
func WithStopWords(words []string) FitOption {
	return func(f *Fitter) {
		f.stopWords = StopSet(words)
	}
}

// NewFitter creates a fitter with the given options applied.
func NewFitter(opts ...FitOption) *Fitter {
	f := &Fitter{
		minTokenLength: DefaultMinTokenLength,
		stopWords:      StopSet(DefaultStopWords),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fit learns a vocabulary from docs.
// Terms are assigned columns in lexical order. Weights use smoothed inverse
// document frequency: ln((1+n)/(1+df)) + 1.
func (f *Fitter) Fit(docs []string) (*Vocabulary, error) {
	if len(docs) == 0 {
		return nil, ErrEmptyCorpus
	}

	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]bool)
		for _, tok := range f.tokens(doc) {
			if !seen[tok] {
				seen[tok] = true
				df[tok]++
			}
		}
	}
	if len(df) == 0 {
		return nil, ErrEmptyVocabulary
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	slices.Sort(terms)

	n := float64(len(docs))
	idf := make([]float32, len(terms))
	for i, term := range terms {
		idf[i] = float32(math.Log((1+n)/(1+float64(df[term]))) + 1)
	}

	return NewVocabulary(terms, idf)
}

// Transform vectorizes a fitted document using the same token filtering as Fit.
func (f *Fitter) Transform(vocab *Vocabulary, doc string) SparseVector {
	return NewVectorizer(vocab).vectorizeTokens(f.tokens(doc))
}

func (f *Fitter) tokens(doc string) []string {
	return Tokens(doc, f.minTokenLength, f.stopWords)
}
