package textmatch

import "github.com/xrash/smetrics"

// DefaultMatchThreshold is the ratio (0-100) at or above which two tokens
// are considered a fuzzy hit by AnyMatch.
const DefaultMatchThreshold = 80

// Ratio returns a similarity ratio between two strings on a 0-100 scale,
// computed from the edit distance with substitutions counted twice
// (the classic Levenshtein ratio). Two empty strings are identical (100).
func Ratio(a, b string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 100
	}
	dist := smetrics.WagnerFischer(a, b, 1, 1, 2)
	return 100 * (1 - float64(dist)/float64(len(a)+len(b)))
}

// FuzzyScore scores how well queryTokens are covered by itemTokens,
// averaging the best per-query-token ratio: for each query token the
// maximum Ratio against every item token is taken, the maxima are summed
// and divided by 100*len(queryTokens). The result is in [0,1]; either set
// being empty scores 0. A single near-miss token contributes up to
// 1/len(queryTokens) even with zero exact overlap.
func FuzzyScore(queryTokens, itemTokens map[string]struct{}) float64 {
	if len(queryTokens) == 0 || len(itemTokens) == 0 {
		return 0
	}

	var sum float64
	for q := range queryTokens {
		best := 0.0
		for it := range itemTokens {
			if r := Ratio(q, it); r > best {
				best = r
			}
		}
		sum += best
	}

	return sum / (100 * float64(len(queryTokens)))
}

// AnyMatch reports whether any query token is a fuzzy hit against any item
// token, short-circuiting on the first pairwise Ratio >= threshold. This is
// the boolean filter used by the inventory listing; the scored ranking path
// uses FuzzyScore instead.
func AnyMatch(queryTokens, itemTokens map[string]struct{}, threshold float64) bool {
	for q := range queryTokens {
		for it := range itemTokens {
			if Ratio(q, it) >= threshold {
				return true
			}
		}
	}
	return false
}
