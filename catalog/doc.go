// Package catalog holds the immutable course table and the importers that
// build it from CSV or JSON Lines files.
//
// The Store is aligned row for row with the similarity index built over it.
// When a persisted table and index disagree in length, Align truncates both to
// their common prefix and reports an Advisory instead of failing.
package catalog
