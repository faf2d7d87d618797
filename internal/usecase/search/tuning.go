package search

// Default ranking weights and cutoff. Keyword evidence carries the most
// weight; the cutoff keeps only items backed by at least one strong
// signal.
const (
	DefaultSemanticWeight = 0.3
	DefaultKeywordWeight  = 0.4
	DefaultCategoryWeight = 0.3
	DefaultMinScore       = 0.3
)

// Tuning bundles the score blend weights and the inclusion cutoff.
// Combined = SemanticWeight*semantic + KeywordWeight*keyword +
// CategoryWeight*category; only items with combined strictly above
// MinScore are returned.
type Tuning struct {
	SemanticWeight float64
	KeywordWeight  float64
	CategoryWeight float64
	MinScore       float64
}

// DefaultTuning returns the standard 0.3/0.4/0.3 blend with the 0.3 cutoff.
func DefaultTuning() Tuning {
	return Tuning{
		SemanticWeight: DefaultSemanticWeight,
		KeywordWeight:  DefaultKeywordWeight,
		CategoryWeight: DefaultCategoryWeight,
		MinScore:       DefaultMinScore,
	}
}
