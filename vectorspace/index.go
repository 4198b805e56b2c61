package vectorspace

// Index scores query vectors against every row of a matrix.
type Index struct {
	matrix *Matrix
	norms  []float64
}

// NewIndex creates an index over m, precomputing row norms.
func NewIndex(m *Matrix) *Index {
	norms := make([]float64, m.Rows())
	for i := range norms {
		norms[i] = m.Row(i).Norm()
	}
	return &Index{matrix: m, norms: norms}
}

// Rows returns the number of indexed rows.
func (ix *Index) Rows() int {
	return ix.matrix.Rows()
}

// Matrix returns the underlying matrix.
func (ix *Index) Matrix() *Matrix {
	return ix.matrix
}

// Score returns the cosine similarity between q and each row, in row order.
// A zero query or a zero row scores 0.
func (ix *Index) Score(q SparseVector) []float32 {
	scores := make([]float32, ix.matrix.Rows())

	qNorm := q.Norm()
	if qNorm == 0 {
		return scores
	}

	for i := range scores {
		if ix.norms[i] == 0 {
			continue
		}
		sim := q.Dot(ix.matrix.Row(i)) / (qNorm * ix.norms[i])
		// Clamp rounding drift
		if sim > 1 {
			sim = 1
		} else if sim < -1 {
			sim = -1
		}
		scores[i] = float32(sim)
	}

	return scores
}
