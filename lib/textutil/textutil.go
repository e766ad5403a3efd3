package textutil

import (
	"regexp"
	"sort"
	"strings"

	"github.com/antzucaro/matchr"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.Trim(name, " \n\t")
	name = whitespaceRegex.ReplaceAllString(name, "")
	return name
}

// MatchName reports whether two display names refer to the same
// entity, ignoring case and whitespace differences.
func MatchName(a, b string) bool {
	return NormalizeName(a) == NormalizeName(b)
}

// RankSimilar returns up to limit candidates ordered by their
// similarity to name, most similar first. ties keep the order
// candidates were given in.
func RankSimilar(name string, candidates []string, limit int) []string {
	type scored struct {
		value      string
		similarity float64
	}

	normalized := NormalizeName(name)
	ranked := make([]scored, len(candidates))
	for i, c := range candidates {
		ranked[i] = scored{
			value:      c,
			similarity: matchr.JaroWinkler(normalized, NormalizeName(c), false),
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].similarity > ranked[j].similarity
	})

	if limit > len(ranked) {
		limit = len(ranked)
	}
	out := make([]string, limit)
	for i := 0; i < limit; i++ {
		out[i] = ranked[i].value
	}
	return out
}
