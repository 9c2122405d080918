package answer

import "strings"

// Similarity returns the word-overlap ratio of two normalized strings: the
// size of the multiset intersection of their words divided by the longer
// word count. Word order is ignored.
func Similarity(a, b string) float64 {
	wa := strings.Fields(a)
	wb := strings.Fields(b)
	longest := max(len(wa), len(wb))
	if longest == 0 {
		return 0
	}

	counts := make(map[string]int, len(wb))
	for _, w := range wb {
		counts[w]++
	}
	matched := 0
	for _, w := range wa {
		if counts[w] > 0 {
			counts[w]--
			matched++
		}
	}
	return float64(matched) / float64(longest)
}
