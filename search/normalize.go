package search

import "strings"

// Normalize extracts maximal runs of ASCII letters from raw, lower-cases them
// and joins them with single spaces. Everything else is a separator.
// Input without letters normalizes to the empty string.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))

	inWord := false
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case 'a' <= c && c <= 'z':
		case 'A' <= c && c <= 'Z':
			c += 'a' - 'A'
		default:
			inWord = false
			continue
		}
		if !inWord && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inWord = true
		b.WriteByte(c)
	}

	return b.String()
}
