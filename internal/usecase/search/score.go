package search

import (
	"math"
	"strings"

	"github.com/shirwani/chloe-nomura-home/internal/domain/item"
	"github.com/shirwani/chloe-nomura-home/internal/textmatch"
)

// CosineSimilarity returns dot(a,b) / (|a|*|b|). Empty input, a length
// mismatch, or a zero-magnitude vector scores 0.0 rather than erroring,
// so one malformed vector only zeroes the item it belongs to.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// compositeText is the text embedded and tokenized for an item: the
// non-empty of id, name, description, category joined by single spaces.
func compositeText(it item.Item) string {
	parts := make([]string, 0, 4)
	for _, p := range []string{it.ID(), it.Name(), it.Description(), it.Category()} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// overlapScore is the fraction of query tokens present verbatim in the
// item token set.
func overlapScore(queryTokens, itemTokens map[string]struct{}) float64 {
	if len(queryTokens) == 0 {
		return 0
	}
	var hits int
	for q := range queryTokens {
		if _, ok := itemTokens[q]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(queryTokens))
}

// keywordScore blends exact token overlap with the fuzzy cover score,
// taking whichever is stronger.
func keywordScore(queryTokens, itemTokens map[string]struct{}) float64 {
	exact := overlapScore(queryTokens, itemTokens)
	fuzzy := textmatch.FuzzyScore(queryTokens, itemTokens)
	return math.Max(exact, fuzzy)
}
