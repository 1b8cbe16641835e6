// Package match picks the task a user most likely meant from free text.
package match

import (
	"errors"
	"slices"
	"sort"
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"

	"github.com/colonyops/habit/internal/core/task"
)

// ErrNoMatch is returned when there are no candidates to match against.
var ErrNoMatch = errors.New("no match found")

// Scored is a candidate with its similarity score (0-100).
type Scored struct {
	Candidate task.Searchable
	Score     int
}

// Best returns the candidate whose text scores highest against query.
// Ties go to the earliest candidate. There is no minimum score: any
// non-empty candidate list yields a result.
func Best(query string, candidates []task.Searchable) (task.Searchable, error) {
	if len(candidates) == 0 {
		return task.Searchable{}, ErrNoMatch
	}

	best, bestScore := 0, -1
	for i, c := range candidates {
		if s := Score(query, c.Text()); s > bestScore {
			best, bestScore = i, s
		}
	}
	return candidates[best], nil
}

// Rank scores every candidate, highest first; equal scores keep input order.
func Rank(query string, candidates []task.Searchable) []Scored {
	out := make([]Scored, len(candidates))
	for i, c := range candidates {
		out[i] = Scored{Candidate: c, Score: Score(query, c.Text())}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// Score is a token-based partial ratio between query and text. Both sides
// are lower-cased and tokenized; the result is the better of the sorted-token
// partial ratio and the token-set partial ratio.
func Score(query, text string) int {
	qt, tt := tokens(query), tokens(text)
	if len(qt) == 0 || len(tt) == 0 {
		return 0
	}

	sorted := partialRatio(sortedJoin(qt), sortedJoin(tt))
	return max(sorted, tokenSetRatio(qt, tt))
}

// tokenSetRatio compares the shared tokens against each side's full token
// set, so "buy milk" scores 100 against "buy almond milk".
func tokenSetRatio(a, b []string) int {
	setA, setB := dedupe(a), dedupe(b)

	var common, onlyA, onlyB []string
	for _, tok := range setA {
		if slices.Contains(setB, tok) {
			common = append(common, tok)
		} else {
			onlyA = append(onlyA, tok)
		}
	}
	for _, tok := range setB {
		if !slices.Contains(setA, tok) {
			onlyB = append(onlyB, tok)
		}
	}

	base := strings.Join(common, " ")
	withA := strings.TrimSpace(base + " " + strings.Join(onlyA, " "))
	withB := strings.TrimSpace(base + " " + strings.Join(onlyB, " "))

	best := partialRatio(withA, withB)
	if base != "" {
		best = max(best, partialRatio(base, withA), partialRatio(base, withB))
	}
	return best
}

// partialRatio slides the shorter string across the longer and returns the
// best window similarity.
func partialRatio(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}
	if len(ra) == 0 {
		return 0
	}

	short := string(ra)
	best := 0
	for i := 0; i+len(ra) <= len(rb); i++ {
		window := string(rb[i : i+len(ra)])
		if s := ratio(short, window); s > best {
			best = s
			if best == 100 {
				break
			}
		}
	}
	return best
}

func ratio(a, b string) int {
	n := max(len([]rune(a)), len([]rune(b)))
	if n == 0 {
		return 100
	}
	dist := levenshtein.ComputeDistance(a, b)
	return int(float64(n-dist) * 100 / float64(n))
}

func tokens(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

func sortedJoin(toks []string) string {
	sorted := slices.Clone(toks)
	slices.Sort(sorted)
	return strings.Join(sorted, " ")
}

func dedupe(toks []string) []string {
	out := slices.Clone(toks)
	slices.Sort(out)
	return slices.Compact(out)
}
