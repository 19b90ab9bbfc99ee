package vocab

import "strings"

// DefaultMaxDistance is the edit-distance cutoff beyond which a query is
// considered to have no vocabulary match.
const DefaultMaxDistance = 3

// Match is the result of a fuzzy vocabulary lookup.
type Match struct {
	Name       string
	Distance   int
	Confidence int // 0-100, derived from the edit distance
}

// FindClosestMatch returns the vocabulary entry with the smallest
// case-insensitive Levenshtein distance to query. When several entries
// share the minimum distance the first one in declaration order wins, so
// results are deterministic. Returns ok=false when the best distance
// exceeds maxDistance (pass DefaultMaxDistance for the usual cutoff).
func FindClosestMatch(query string, maxDistance int) (Match, bool) {
	normalized := strings.ToLower(strings.TrimSpace(query))

	best := ""
	bestDistance := -1
	for _, name := range dishes {
		d := levenshtein(normalized, strings.ToLower(name))
		if bestDistance < 0 || d < bestDistance {
			bestDistance = d
			best = name
		}
	}

	if best == "" || bestDistance > maxDistance {
		return Match{}, false
	}
	confidence := 100 - bestDistance*20
	if confidence < 0 {
		confidence = 0
	}
	return Match{Name: best, Distance: bestDistance, Confidence: confidence}, true
}

// levenshtein computes the classic edit distance (unit cost insertions,
// deletions and substitutions) between two strings using a two-row DP
// table over runes.
func levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min3(prev[j-1]+cost, cur[j-1]+1, prev[j]+1)
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
