package textutil

import (
	"regexp"
	"strings"

	"github.com/antzucaro/matchr"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// NormalizeName lowercases a name and strips all whitespace so that titles
// that only differ in spacing or case compare equal.
func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.Trim(name, " \n\t")
	name = whitespaceRegex.ReplaceAllString(name, "")
	return name
}

// BestMatch returns the index of the candidate most similar to query by
// Jaro-Winkler similarity of the normalized names, along with the
// similarity. A candidate containing the query outright always wins.
// It returns -1 when there are no candidates.
func BestMatch(query string, candidates []string) (int, float64) {
	query = NormalizeName(query)

	best := -1
	bestSimilarity := -1.0
	for i, c := range candidates {
		normalized := NormalizeName(c)

		similarity := matchr.JaroWinkler(query, normalized, false)
		if query != "" && strings.Contains(normalized, query) {
			similarity = 1
		}
		if similarity > bestSimilarity {
			best = i
			bestSimilarity = similarity
		}
	}
	return best, bestSimilarity
}
