package vectorspace

import "strings"

// Vectorizer projects normalized text into a fixed vocabulary space.
// It never learns new terms.
type Vectorizer struct {
	vocab *Vocabulary
}

// NewVectorizer creates a vectorizer over a fitted vocabulary.
func NewVectorizer(vocab *Vocabulary) *Vectorizer {
	return &Vectorizer{vocab: vocab}
}

// Vocabulary returns the vocabulary the vectorizer projects onto.
func (v *Vectorizer) Vocabulary() *Vocabulary {
	return v.vocab
}

// Vectorize returns the L2-normalized TF-IDF vector of a normalized string.
// Terms missing from the vocabulary are ignored, so text with no known terms
// (including the empty string) yields a zero vector.
func (v *Vectorizer) Vectorize(normalized string) SparseVector {
	return v.vectorizeTokens(strings.Fields(normalized))
}

func (v *Vectorizer) vectorizeTokens(tokens []string) SparseVector {
	if len(tokens) == 0 {
		return SparseVector{}
	}

	counts := make(map[int32]float32, len(tokens))
	for _, tok := range tokens {
		if col, ok := v.vocab.Column(tok); ok {
			counts[col]++
		}
	}
	for col, tf := range counts {
		counts[col] = tf * v.vocab.IDF(col)
	}

	return fromCounts(counts).Normalized()
}
