// Package ranking holds the brute-force similarity helpers shared by the
// local vector stores.
package ranking

import (
	"math"
	"sort"

	"github.com/custodia-labs/retrieval-engine/internal/core/domain"
)

// Cosine returns the cosine similarity of a and b.
// Vectors of different length or zero magnitude score 0.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// TopK orders results by score, highest first, and keeps the first k.
// Equal scores keep their input order.
func TopK(results []domain.SearchResult, k int) []domain.SearchResult {
	if k <= 0 {
		return nil
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > k {
		results = results[:k]
	}
	return results
}
