package engine

import (
	"math"
	"sort"
	"time"

	"github.com/streamcast/recommendation-service/internal/domain"
)

// scoreCandidate combines the candidate's base attractiveness with
// collaborative contributions from each watched item and from highly
// rated items. All contributions are additive; the result is a relative
// ranking signal with no upper bound.
func (e *Engine) scoreCandidate(candidate domain.ContentItem, profile PreferenceProfile, history []domain.WatchHistoryEntry, index map[int64]domain.ContentItem, now time.Time) float64 {
	var score float64

	if candidate.Popularity != nil {
		score += *candidate.Popularity / 100 * e.weights.Popularity
	}
	if profile.PremiumAffinity != nil && candidate.Premium == *profile.PremiumAffinity {
		score += e.weights.PremiumMatch
	}
	if candidate.DurationSec != nil && profile.DurationBucket != BucketNone &&
		bucketFor(*candidate.DurationSec) == profile.DurationBucket {
		score += e.weights.DurationPref
	}

	if candidate.Genre != nil && containsKey(profile.Genres, *candidate.Genre) {
		score += e.weights.Genre
	}
	if containsKey(profile.Categories, candidate.CategoryID) {
		score += e.weights.Category
	}
	if candidate.Type != domain.ContentTypeUnknown && containsKey(profile.ContentTypes, candidate.Type) {
		score += e.weights.ContentType
	}
	if len(candidate.Tags) > 0 && len(profile.Tags) > 0 {
		matching := 0
		for _, tag := range candidate.Tags {
			if containsKey(profile.Tags, tag) {
				matching++
			}
		}
		score += float64(matching) / float64(len(candidate.Tags)) * e.weights.Tag
	}

	// Collaborative term: every watch contributes its similarity to the
	// candidate, boosted when the watch was completed and decayed by how
	// long ago it happened.
	for _, entry := range history {
		watched, ok := index[entry.ContentID]
		if !ok {
			continue
		}
		sim := e.Similarity(candidate, watched)
		if sim == 0 {
			continue
		}

		factor := e.weights.CompletionBonus
		if !entry.Completed {
			factor = entry.WatchTimePct / 100 * e.weights.PartialWatchFactor
		}

		days := now.Sub(entry.WatchedAt).Hours() / 24
		recency := 1 + math.Exp(-e.weights.RecencyDecay*days)*e.weights.Recency

		score += sim * factor * recency
	}

	// Explicitly loved items pull similar candidates up. Iterate in
	// sorted key order so float accumulation stays deterministic.
	for _, id := range sortedRatingIDs(profile.Ratings) {
		rating := profile.Ratings[id]
		if rating < ratingFloor {
			continue
		}
		rated, ok := index[id]
		if !ok {
			continue
		}
		score += e.Similarity(candidate, rated) * (rating / domain.MaxRating)
	}

	return score
}

func containsKey[K comparable](keys []K, key K) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

func sortedRatingIDs(ratings domain.RatingMap) []int64 {
	if len(ratings) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(ratings))
	for id := range ratings {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
