package catalog

import (
	"fmt"

	"github.com/poiesic/coursematch/vectorspace"
)

// Advisory reports that the catalog and index disagreed in length and were
// truncated to their common prefix.
type Advisory struct {
	CatalogRows int
	IndexRows   int
	Kept        int
}

// Dropped returns how many rows were cut from the catalog and the index.
func (a *Advisory) Dropped() (catalog, index int) {
	return a.CatalogRows - a.Kept, a.IndexRows - a.Kept
}

func (a *Advisory) String() string {
	return fmt.Sprintf("catalog has %d items but index has %d rows; using the first %d",
		a.CatalogRows, a.IndexRows, a.Kept)
}

// Align truncates store and matrix to their common row prefix.
// The advisory is nil when both already have the same length.
// Rows are never reordered or dropped from the middle.
func Align(store *Store, matrix *vectorspace.Matrix) (*Store, *vectorspace.Matrix, *Advisory) {
	items, rows := store.Len(), matrix.Rows()
	if items == rows {
		return store, matrix, nil
	}
	kept := min(items, rows)
	return store.Prefix(kept), matrix.Prefix(kept), &Advisory{
		CatalogRows: items,
		IndexRows:   rows,
		Kept:        kept,
	}
}
