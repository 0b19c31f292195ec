package engine

import "github.com/streamcast/recommendation-service/internal/domain"

// Similarity computes a non-negative pairwise similarity between two
// catalog items as an additive weighted combination of attribute
// overlaps. Attributes absent on either side contribute zero, so two
// items with nothing comparable score 0.
func (e *Engine) Similarity(a, b domain.ContentItem) float64 {
	var score float64

	if a.Genre != nil && b.Genre != nil && *a.Genre == *b.Genre {
		score += e.weights.Genre
	}
	if a.CategoryID == b.CategoryID {
		score += e.weights.Category
	}
	if a.Type != domain.ContentTypeUnknown && a.Type == b.Type {
		score += e.weights.ContentType
	}

	score += jaccard(a.Tags, b.Tags) * e.weights.Tag

	if a.DurationSec != nil && b.DurationSec != nil {
		diff := *a.DurationSec - *b.DurationSec
		if diff < 0 {
			diff = -diff
		}
		switch {
		case diff < durationNearSec:
			score += e.weights.Duration
		case diff < durationFarSec:
			score += e.weights.Duration / 2
		}
	}

	return score
}

// jaccard returns |intersection| / |union| of two tag lists, 0 when the
// union is empty. Duplicate tags within one list count once.
func jaccard(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}

	union := make(map[string]struct{}, len(a)+len(b))
	for _, t := range a {
		union[t] = struct{}{}
	}

	inBoth := 0
	seen := make(map[string]struct{}, len(b))
	for _, t := range b {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		if _, ok := union[t]; ok {
			inBoth++
		}
		union[t] = struct{}{}
	}

	if len(union) == 0 {
		return 0
	}
	return float64(inBoth) / float64(len(union))
}
