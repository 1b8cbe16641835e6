package match

import (
	"slices"

	"github.com/sahilm/fuzzy"
)

// Filter returns the indexes of texts that contain pattern as a
// case-insensitive subsequence, in input order. An empty pattern keeps
// everything.
func Filter(pattern string, texts []string) []int {
	if pattern == "" {
		idx := make([]int, len(texts))
		for i := range texts {
			idx[i] = i
		}
		return idx
	}

	matches := fuzzy.Find(pattern, texts)
	idx := make([]int, 0, len(matches))
	for _, m := range matches {
		idx = append(idx, m.Index)
	}
	slices.Sort(idx)
	return idx
}
