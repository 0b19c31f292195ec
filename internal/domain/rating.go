package domain

// RatingMap maps content IDs to explicit user ratings in [1, 5].
// Absent entries mean "unrated".
type RatingMap map[int64]float64

const (
	MinRating = 1.0
	MaxRating = 5.0
)

// ValidRating reports whether r is inside the accepted rating range.
func ValidRating(r float64) bool {
	return r >= MinRating && r <= MaxRating
}
