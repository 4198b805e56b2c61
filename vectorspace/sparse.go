package vectorspace

import (
	"math"
	"slices"
)

// SparseVector holds the non-zero entries of a vector.
// Indices are strictly increasing column numbers; Values are aligned with them.
type SparseVector struct {
	Indices []int32
	Values  []float32
}

// Len returns the number of stored entries.
func (v SparseVector) Len() int {
	return len(v.Indices)
}

// IsZero reports whether the vector has no non-zero entries.
func (v SparseVector) IsZero() bool {
	for _, x := range v.Values {
		if x != 0 {
			return false
		}
	}
	return true
}

// Norm returns the Euclidean length of the vector.
func (v SparseVector) Norm() float64 {
	var sum float64
	for _, x := range v.Values {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

// Dot returns the inner product of two sparse vectors.
func (v SparseVector) Dot(o SparseVector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(v.Indices) && j < len(o.Indices) {
		switch {
		case v.Indices[i] == o.Indices[j]:
			sum += float64(v.Values[i]) * float64(o.Values[j])
			i++
			j++
		case v.Indices[i] < o.Indices[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// Normalized returns a copy of v scaled to unit length.
// A zero vector is returned unchanged.
func (v SparseVector) Normalized() SparseVector {
	norm := v.Norm()
	out := SparseVector{
		Indices: slices.Clone(v.Indices),
		Values:  slices.Clone(v.Values),
	}
	if norm == 0 {
		return out
	}
	for i := range out.Values {
		out.Values[i] = float32(float64(out.Values[i]) / norm)
	}
	return out
}

// fromCounts builds a sparse vector from column weights, sorted by column.
func fromCounts(weights map[int32]float32) SparseVector {
	if len(weights) == 0 {
		return SparseVector{}
	}
	indices := make([]int32, 0, len(weights))
	for col := range weights {
		indices = append(indices, col)
	}
	slices.Sort(indices)
	values := make([]float32, len(indices))
	for i, col := range indices {
		values[i] = weights[col]
	}
	return SparseVector{Indices: indices, Values: values}
}
