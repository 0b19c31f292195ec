package engine

import (
	"sort"

	"github.com/streamcast/recommendation-service/internal/domain"
)

// DurationBucket groups content durations into coarse preference
// bands. The zero value means no preference could be derived.
type DurationBucket string

const (
	BucketNone   DurationBucket = ""
	BucketShort  DurationBucket = "short"  // < 15 min
	BucketMedium DurationBucket = "medium" // 15-60 min
	BucketLong   DurationBucket = "long"   // >= 60 min
)

func bucketFor(durationSec int) DurationBucket {
	switch {
	case durationSec < shortMaxSec:
		return BucketShort
	case durationSec < mediumMaxSec:
		return BucketMedium
	default:
		return BucketLong
	}
}

// PreferenceProfile is a user's implicit taste profile derived from
// watch history and explicit ratings. It is recomputed per request and
// never persisted. Empty ranked lists are nil so scoring can cheaply
// skip absent signals.
type PreferenceProfile struct {
	Genres          []string             // descending weight
	Categories      []int64              // descending weight
	ContentTypes    []domain.ContentType // descending weight
	Tags            []string             // descending weight, top 10
	DurationBucket  DurationBucket
	PremiumAffinity *bool
	Ratings         domain.RatingMap
}

// Empty reports whether the profile carries no personalization signal.
func (p PreferenceProfile) Empty() bool {
	return len(p.Genres) == 0 && len(p.Categories) == 0 &&
		len(p.ContentTypes) == 0 && len(p.Tags) == 0 &&
		p.DurationBucket == BucketNone && p.PremiumAffinity == nil
}

// ExtractPreferences derives a PreferenceProfile from the user's watch
// history against the given catalog snapshot. History entries whose
// content ID is not in the catalog are silently skipped; an empty
// history yields the zero profile. The rating map passes through
// unchanged.
func (e *Engine) ExtractPreferences(history []domain.WatchHistoryEntry, catalog []domain.ContentItem, ratings domain.RatingMap) PreferenceProfile {
	var profile PreferenceProfile
	if len(ratings) > 0 {
		profile.Ratings = ratings
	}
	if len(history) == 0 {
		return profile
	}

	index := catalogIndex(catalog)

	genreW := make(map[string]float64)
	categoryW := make(map[int64]float64)
	typeW := make(map[domain.ContentType]float64)
	tagW := make(map[string]float64)
	var bucketW [3]float64 // short, medium, long
	var premiumW, freeW float64

	matched := false
	for _, entry := range history {
		item, ok := index[entry.ContentID]
		if !ok {
			continue
		}
		matched = true

		// Completed watches count double; partial watches count in
		// proportion to how much was seen. Re-watches accumulate.
		weight := 2.0
		if !entry.Completed {
			weight = entry.WatchTimePct / 100
		}

		if item.Genre != nil {
			genreW[*item.Genre] += weight
		}
		categoryW[item.CategoryID] += weight
		if item.Type != domain.ContentTypeUnknown {
			typeW[item.Type] += weight
		}
		// Split the tag weight so multi-tag items don't dominate
		// single-tag items.
		if n := len(item.Tags); n > 0 {
			per := weight / float64(n)
			for _, tag := range item.Tags {
				tagW[tag] += per
			}
		}
		if item.DurationSec != nil {
			switch bucketFor(*item.DurationSec) {
			case BucketShort:
				bucketW[0] += weight
			case BucketMedium:
				bucketW[1] += weight
			case BucketLong:
				bucketW[2] += weight
			}
		}
		if item.Premium {
			premiumW += weight
		} else {
			freeW += weight
		}
	}
	if !matched {
		return profile
	}

	profile.Genres = rankKeys(catalog, genreW, func(c domain.ContentItem) []string {
		if c.Genre == nil {
			return nil
		}
		return []string{*c.Genre}
	})
	profile.Categories = rankKeys(catalog, categoryW, func(c domain.ContentItem) []int64 {
		return []int64{c.CategoryID}
	})
	profile.ContentTypes = rankKeys(catalog, typeW, func(c domain.ContentItem) []domain.ContentType {
		if c.Type == domain.ContentTypeUnknown {
			return nil
		}
		return []domain.ContentType{c.Type}
	})
	profile.Tags = rankKeys(catalog, tagW, func(c domain.ContentItem) []string {
		return c.Tags
	})
	if len(profile.Tags) > topTagCount {
		profile.Tags = profile.Tags[:topTagCount]
	}

	// Highest-weight bucket wins; ties resolve short, medium, long.
	buckets := []DurationBucket{BucketShort, BucketMedium, BucketLong}
	best := -1
	var bestW float64
	for i, w := range bucketW {
		if w > 0 && (best < 0 || w > bestW) {
			best, bestW = i, w
		}
	}
	if best >= 0 {
		profile.DurationBucket = buckets[best]
	}

	if premiumW > 0 || freeW > 0 {
		affinity := premiumW > freeW
		profile.PremiumAffinity = &affinity
	}

	return profile
}

// rankKeys orders the accumulated keys by descending weight. Keys are
// collected in catalog iteration order first, so the stable sort breaks
// weight ties by catalog order.
func rankKeys[K comparable](catalog []domain.ContentItem, weights map[K]float64, keysOf func(domain.ContentItem) []K) []K {
	if len(weights) == 0 {
		return nil
	}

	ordered := make([]K, 0, len(weights))
	seen := make(map[K]struct{}, len(weights))
	for _, item := range catalog {
		for _, key := range keysOf(item) {
			if _, ok := weights[key]; !ok {
				continue
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			ordered = append(ordered, key)
		}
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		return weights[ordered[i]] > weights[ordered[j]]
	})
	return ordered
}

func catalogIndex(catalog []domain.ContentItem) map[int64]domain.ContentItem {
	index := make(map[int64]domain.ContentItem, len(catalog))
	for _, item := range catalog {
		index[item.ID] = item
	}
	return index
}
