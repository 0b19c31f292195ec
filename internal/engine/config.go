package engine

// Weights defines the relative contribution of every scoring signal.
// The struct is passed into New and never mutated afterwards, so tests
// and deployments can tune the ranking without touching engine code.
type Weights struct {
	// Pairwise similarity contributions.
	Genre       float64 `koanf:"genre" json:"genre"`
	Category    float64 `koanf:"category" json:"category"`
	ContentType float64 `koanf:"content_type" json:"content_type"`
	Tag         float64 `koanf:"tag" json:"tag"`
	Duration    float64 `koanf:"duration" json:"duration"`

	// Candidate base score contributions.
	Popularity   float64 `koanf:"popularity" json:"popularity"`
	PremiumMatch float64 `koanf:"premium_match" json:"premium_match"`
	DurationPref float64 `koanf:"duration_pref" json:"duration_pref"`

	// Collaborative contribution multipliers.
	CompletionBonus    float64 `koanf:"completion_bonus" json:"completion_bonus"`
	PartialWatchFactor float64 `koanf:"partial_watch_factor" json:"partial_watch_factor"`
	Recency            float64 `koanf:"recency" json:"recency"`
	RecencyDecay       float64 `koanf:"recency_decay" json:"recency_decay"`
}

// DefaultWeights returns the production weight set.
func DefaultWeights() Weights {
	return Weights{
		Genre:              3.0,
		Category:           2.5,
		ContentType:        1.5,
		Tag:                2.0,
		Duration:           0.5,
		Popularity:         1.0,
		PremiumMatch:       0.8,
		DurationPref:       0.5,
		CompletionBonus:    2.0,
		PartialWatchFactor: 0.8,
		Recency:            1.5,
		RecencyDecay:       0.1,
	}
}

const (
	// Duration proximity bands for pairwise similarity, in seconds.
	durationNearSec = 600
	durationFarSec  = 1200

	// Duration preference bucket boundaries, in seconds.
	shortMaxSec  = 900
	mediumMaxSec = 3600

	// Profiles keep only the strongest tags.
	topTagCount = 10

	// Ratings below this threshold contribute nothing to scoring.
	ratingFloor = 4.0
)
