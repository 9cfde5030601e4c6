package commands

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/pixil98/go-peril/internal/game"
	"github.com/pixil98/go-peril/internal/lexicon"
)

// DefaultFuzzyThreshold is the largest normalized distance a fuzzy match may
// have and still be accepted.
const DefaultFuzzyThreshold = 0.3

// Similarity returns the normalized distance between a query and a candidate
// field: 0 for identical, 1 for nothing in common.
type Similarity func(query, candidate string) float64

// Resolver finds the item a noun phrase refers to. It searches every item in
// the world regardless of location; reachability is the caller's concern.
type Resolver struct {
	similarity Similarity
	threshold  float64
}

// NewResolver creates a Resolver. A nil similarity selects LevenshteinSimilarity.
func NewResolver(similarity Similarity, threshold float64) *Resolver {
	if similarity == nil {
		similarity = LevenshteinSimilarity
	}
	return &Resolver{similarity: similarity, threshold: threshold}
}

// FindItem returns the best match for phrase, or nil. Exact matches on
// handle, alt handle or name win. Otherwise the closest fuzzy match under the
// threshold is returned, ties going to the lowest item id.
func (r *Resolver) FindItem(phrase string, w *game.WorldState) *game.Item {
	query := stripArticle(lexicon.Fold(phrase))
	if query == "" {
		return nil
	}

	ids := w.ItemIds()

	queries := []string{query}
	if singular := strings.TrimSuffix(query, "s"); singular != query && singular != "" {
		queries = append(queries, singular)
	}
	for _, q := range queries {
		for _, id := range ids {
			for _, field := range matchFields(w.Items[id]) {
				if field == q {
					return w.Items[id]
				}
			}
		}
	}

	var best *game.Item
	bestScore := r.threshold
	for _, id := range ids {
		it := w.Items[id]
		for _, field := range matchFields(it) {
			for _, q := range queries {
				score := r.similarity(q, field)
				if score < bestScore || (best == nil && score == bestScore) {
					best, bestScore = it, score
				}
			}
		}
	}
	return best
}

func matchFields(it *game.Item) []string {
	fields := []string{lexicon.Fold(it.Handle)}
	if it.AltHandle != "" {
		fields = append(fields, lexicon.Fold(it.AltHandle))
	}
	if it.Name != "" {
		fields = append(fields, lexicon.Fold(it.Name))
	}
	if strings.Contains(it.Handle, "_") {
		fields = append(fields, strings.ReplaceAll(lexicon.Fold(it.Handle), "_", " "))
	}
	return fields
}

// LevenshteinSimilarity scores a query against a candidate by edit distance,
// against the whole candidate and each of its words, and also credits queries
// whose letters appear in order inside the candidate.
func LevenshteinSimilarity(query, candidate string) float64 {
	best := normalizedDistance(query, candidate)
	for _, word := range strings.Fields(candidate) {
		best = min(best, normalizedDistance(query, word))
	}
	if rank := fuzzy.RankMatchFold(query, candidate); rank >= 0 && len(candidate) > 0 {
		best = min(best, float64(rank)/float64(len(candidate))*0.5)
	}
	return best
}

func normalizedDistance(a, b string) float64 {
	longest := max(len(a), len(b))
	if longest == 0 {
		return 0
	}
	return float64(fuzzy.LevenshteinDistance(a, b)) / float64(longest)
}
