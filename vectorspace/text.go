package vectorspace

import "strings"

// DefaultMinTokenLength drops single-letter tokens when fitting.
const DefaultMinTokenLength = 2

// DefaultStopWords are excluded from fitted vocabularies.
var DefaultStopWords = []string{
	"the", "a", "an", "be", "is", "are", "was", "to", "of", "and", "in", "that",
	"have", "it", "for", "not", "on", "with", "as", "you", "do", "at", "this", "but",
	"by", "from", "or", "your", "will", "how", "can", "into", "about", "we", "our",
}

// StopSet builds a lookup set from a list of stop words.
func StopSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			set[w] = true
		}
	}
	return set
}

// Tokens splits normalized text into words, dropping stop words and tokens
// shorter than minLen.
func Tokens(normalized string, minLen int, stop map[string]bool) []string {
	words := strings.Fields(normalized)
	filtered := make([]string, 0, len(words))

	for _, word := range words {
		if len(word) < minLen || stop[word] {
			continue
		}
		filtered = append(filtered, word)
	}

	return filtered
}
