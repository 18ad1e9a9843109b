package match

import (
	"sort"
)

// DefaultMinScore is the similarity below which a name is not suggested.
const DefaultMinScore = 0.5

// Suggestion is a known name with its similarity to the query.
type Suggestion struct {
	Name  string
	Score float64
}

// Rank scores every candidate against name and returns them best first.
// Ties keep candidate order.
func Rank(name string, candidates []string) []Suggestion {
	query := NormalizeIdent(name)

	out := make([]Suggestion, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, Suggestion{Name: c, Score: Similarity(query, NormalizeIdent(c))})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})

	return out
}

// Suggest returns up to limit candidates scoring at least DefaultMinScore.
func Suggest(name string, candidates []string, limit int) []string {
	var out []string

	for _, s := range Rank(name, candidates) {
		if len(out) == limit || s.Score < DefaultMinScore {
			break
		}

		if s.Name == name {
			continue
		}

		out = append(out, s.Name)
	}

	return out
}
