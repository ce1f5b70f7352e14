package screening

// Category is the post-approval fitness bucket derived from the match
// score.
type Category string

const (
	CategoryUncategorized Category = "Uncategorized"
	CategoryHighlyFit     Category = "Highly Fit"
	CategoryModerateFit   Category = "Moderate Fit"
	CategoryLowFit        Category = "Low Fit"
	CategoryRejected      Category = "Rejected"
)

// Categorize maps a match score to its bucket. Total and deterministic;
// re-scoring recomputes from scratch with no hysteresis.
func Categorize(score float64) Category {
	switch {
	case score >= 80:
		return CategoryHighlyFit
	case score >= 70:
		return CategoryModerateFit
	case score >= 50:
		return CategoryLowFit
	default:
		return CategoryRejected
	}
}
