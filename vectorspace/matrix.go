package vectorspace

import (
	"fmt"
	"math"
)

// Matrix is an immutable sparse matrix in compressed sparse row layout.
type Matrix struct {
	indptr  []int
	indices []int32
	data    []float32
	cols    int
}

// NewMatrix packs rows into a matrix with the given column count.
// Every row must have strictly increasing column indices within [0, cols)
// and finite values.
func NewMatrix(rows []SparseVector, cols int) (*Matrix, error) {
	if cols <= 0 {
		return nil, fmt.Errorf("%w: column count %d", ErrMalformedMatrix, cols)
	}

	nnz := 0
	for _, r := range rows {
		nnz += len(r.Indices)
	}

	m := &Matrix{
		indptr:  make([]int, 1, len(rows)+1),
		indices: make([]int32, 0, nnz),
		data:    make([]float32, 0, nnz),
		cols:    cols,
	}

	for i, r := range rows {
		if len(r.Indices) != len(r.Values) {
			return nil, fmt.Errorf("%w: row %d has %d indices and %d values", ErrMalformedMatrix, i, len(r.Indices), len(r.Values))
		}
		prev := int32(-1)
		for k, col := range r.Indices {
			if col <= prev || int(col) >= cols {
				return nil, fmt.Errorf("%w: row %d column %d out of order or range", ErrMalformedMatrix, i, col)
			}
			val := float64(r.Values[k])
			if math.IsNaN(val) || math.IsInf(val, 0) {
				return nil, fmt.Errorf("%w: row %d column %d value %v", ErrMalformedMatrix, i, col, r.Values[k])
			}
			prev = col
		}
		m.indices = append(m.indices, r.Indices...)
		m.data = append(m.data, r.Values...)
		m.indptr = append(m.indptr, len(m.indices))
	}

	return m, nil
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int {
	return len(m.indptr) - 1
}

// Cols returns the number of columns.
func (m *Matrix) Cols() int {
	return m.cols
}

// Row returns a read-only view of row i.
func (m *Matrix) Row(i int) SparseVector {
	start, end := m.indptr[i], m.indptr[i+1]
	return SparseVector{
		Indices: m.indices[start:end:end],
		Values:  m.data[start:end:end],
	}
}

// Prefix returns a matrix holding the first n rows.
// n larger than the row count returns m itself.
func (m *Matrix) Prefix(n int) *Matrix {
	if n >= m.Rows() {
		return m
	}
	if n < 0 {
		n = 0
	}
	end := m.indptr[n]
	return &Matrix{
		indptr:  m.indptr[: n+1 : n+1],
		indices: m.indices[:end:end],
		data:    m.data[:end:end],
		cols:    m.cols,
	}
}
