// Package engine implements the content recommendation engine: a
// deterministic, re-computed-per-request scoring pipeline that ranks
// unseen catalog items for a viewer using content-attribute similarity,
// weighted collaborative signals from watch history, and explicit
// ratings.
//
// The engine is pure and synchronous. It holds no mutable state between
// calls and is safe for concurrent use as long as each call receives
// its own input snapshots. The clock and the random source used by the
// no-history fallback are injected so tests can pin them.
package engine

import (
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/streamcast/recommendation-service/internal/domain"
)

// ScoredCandidate pairs a catalog item with its computed score. It only
// exists inside the ranking pipeline and in API responses derived from
// it.
type ScoredCandidate struct {
	Item  domain.ContentItem
	Score float64
}

type Engine struct {
	weights Weights
	now     func() time.Time

	// rng backs the shuffled no-history fallback only. Guarded because
	// rand.Rand is not safe for concurrent use.
	mu  sync.Mutex
	rng *rand.Rand
}

type Option func(*Engine)

// WithClock overrides the time source used for recency decay.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithRand overrides the random source used by the no-history fallback.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

func New(weights Weights, opts ...Option) *Engine {
	e := &Engine{
		weights: weights,
		now:     time.Now,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Recommend ranks unwatched catalog items for a user. Items present in
// the watch history or in the exclude set never appear in the output.
// With no usable history there is no personalization signal, so a
// shuffled slice of the eligible catalog is returned instead; that path
// is only deterministic when the engine was built with a seeded source.
func (e *Engine) Recommend(catalog []domain.ContentItem, history []domain.WatchHistoryEntry, ratings domain.RatingMap, exclude map[int64]struct{}, limit int) ([]ScoredCandidate, error) {
	if limit < 0 {
		return nil, domain.ErrInvalidLimit
	}
	if limit == 0 || len(catalog) == 0 {
		return []ScoredCandidate{}, nil
	}

	if len(history) == 0 {
		return e.shuffledFallback(catalog, exclude, limit), nil
	}

	watched := make(map[int64]struct{}, len(history))
	for _, entry := range history {
		watched[entry.ContentID] = struct{}{}
	}

	index := catalogIndex(catalog)
	profile := e.ExtractPreferences(history, catalog, ratings)
	now := e.now()

	scored := make([]ScoredCandidate, 0, len(catalog))
	for _, item := range catalog {
		if _, ok := watched[item.ID]; ok {
			continue
		}
		if _, ok := exclude[item.ID]; ok {
			continue
		}
		scored = append(scored, ScoredCandidate{
			Item:  item,
			Score: e.scoreCandidate(item, profile, history, index, now),
		})
	}

	sortByScore(scored)
	return scored[:min(limit, len(scored))], nil
}

// SimilarTo ranks catalog items by pairwise similarity to the target,
// excluding the target itself. No personalization terms apply.
func (e *Engine) SimilarTo(target domain.ContentItem, catalog []domain.ContentItem, limit int) ([]ScoredCandidate, error) {
	if limit < 0 {
		return nil, domain.ErrInvalidLimit
	}
	if limit == 0 {
		return []ScoredCandidate{}, nil
	}

	scored := make([]ScoredCandidate, 0, len(catalog))
	for _, item := range catalog {
		if item.ID == target.ID {
			continue
		}
		scored = append(scored, ScoredCandidate{
			Item:  item,
			Score: e.Similarity(target, item),
		})
	}

	sortByScore(scored)
	return scored[:min(limit, len(scored))], nil
}

// Trending ranks catalog items by how often they appear in a watch
// history pool, which may span many users. Watched items are not
// excluded here.
func (e *Engine) Trending(catalog []domain.ContentItem, pool []domain.WatchHistoryEntry, limit int) ([]ScoredCandidate, error) {
	if limit < 0 {
		return nil, domain.ErrInvalidLimit
	}
	if limit == 0 {
		return []ScoredCandidate{}, nil
	}

	counts := make(map[int64]int, len(pool))
	for _, entry := range pool {
		counts[entry.ContentID]++
	}

	scored := make([]ScoredCandidate, 0, len(catalog))
	for _, item := range catalog {
		scored = append(scored, ScoredCandidate{
			Item:  item,
			Score: float64(counts[item.ID]),
		})
	}

	sortByScore(scored)
	return scored[:min(limit, len(scored))], nil
}

func (e *Engine) shuffledFallback(catalog []domain.ContentItem, exclude map[int64]struct{}, limit int) []ScoredCandidate {
	eligible := make([]ScoredCandidate, 0, len(catalog))
	for _, item := range catalog {
		if _, ok := exclude[item.ID]; ok {
			continue
		}
		eligible = append(eligible, ScoredCandidate{Item: item})
	}

	e.mu.Lock()
	e.rng.Shuffle(len(eligible), func(i, j int) {
		eligible[i], eligible[j] = eligible[j], eligible[i]
	})
	e.mu.Unlock()

	return eligible[:min(limit, len(eligible))]
}

// sortByScore orders candidates by descending score. The sort is
// stable so equal scores keep catalog input order, which keeps the
// ranking deterministic.
func sortByScore(scored []ScoredCandidate) {
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
}
