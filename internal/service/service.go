package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/streamcast/recommendation-service/internal/cache"
	"github.com/streamcast/recommendation-service/internal/domain"
	"github.com/streamcast/recommendation-service/internal/engine"
	"github.com/streamcast/recommendation-service/internal/metrics"
	"github.com/streamcast/recommendation-service/internal/repository"
)

const (
	defaultLimit = 10
	maxLimit     = 50
)

// Limits caps the input snapshots fetched per request so engine
// invocations stay bounded on large catalogs.
type Limits struct {
	CatalogLimit      int
	WatchHistoryLimit int
	TrendingDays      int
	TrendingPoolSize  int
}

func DefaultLimits() Limits {
	return Limits{
		CatalogLimit:      500,
		WatchHistoryLimit: 50,
		TrendingDays:      7,
		TrendingPoolSize:  5000,
	}
}

type Service struct {
	repo   *repository.Repository
	cache  *cache.Cache
	engine *engine.Engine
	limits Limits
	log    zerolog.Logger
}

func New(repo *repository.Repository, cache *cache.Cache, eng *engine.Engine, limits Limits, log zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		engine: eng,
		limits: limits,
		log:    log.With().Str("component", "service").Logger(),
	}
}

// GetRecommendations returns personalized recommendations for a user,
// serving from cache when possible.
func (s *Service) GetRecommendations(ctx context.Context, userID int64, limit int) (*domain.RecommendationResult, error) {
	limit = clampLimit(limit)

	cached, found, err := s.cache.GetRecommendations(ctx, userID, limit)
	if err != nil {
		s.log.Warn().Err(err).Int64("user_id", userID).Msg("cache get failed")
	}
	if found {
		metrics.CacheHits.WithLabelValues("personalized").Inc()
		return &domain.RecommendationResult{Recommendations: cached, CacheHit: true}, nil
	}
	metrics.CacheMisses.WithLabelValues("personalized").Inc()

	recs, err := s.generateRecommendations(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	if cacheErr := s.cache.SetRecommendations(ctx, userID, limit, recs); cacheErr != nil {
		s.log.Warn().Err(cacheErr).Int64("user_id", userID).Msg("cache set failed")
	}

	return &domain.RecommendationResult{Recommendations: recs, CacheHit: false}, nil
}

func (s *Service) generateRecommendations(ctx context.Context, userID int64, limit int) ([]domain.ScoredRecommendation, error) {
	start := time.Now()

	if _, err := s.repo.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("fetch user: %w", err)
	}

	history, err := s.repo.GetUserWatchHistory(ctx, userID, s.limits.WatchHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("fetch watch history: %w", err)
	}

	catalog, err := s.repo.GetCatalog(ctx, s.limits.CatalogLimit)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}

	ratings, err := s.repo.GetUserRatings(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch ratings: %w", err)
	}

	scored, err := s.engine.Recommend(catalog, history, ratings, nil, limit)
	if err != nil {
		return nil, err
	}

	metrics.RecommendationDuration.Observe(time.Since(start).Seconds())
	return toResponse(scored), nil
}

// GetSimilarContent returns catalog items ranked by similarity to the
// given item, with no personalization.
func (s *Service) GetSimilarContent(ctx context.Context, contentID int64, limit int) ([]domain.ScoredRecommendation, error) {
	limit = clampLimit(limit)

	cached, found, err := s.cache.GetSimilar(ctx, contentID, limit)
	if err != nil {
		s.log.Warn().Err(err).Int64("content_id", contentID).Msg("cache get failed")
	}
	if found {
		metrics.CacheHits.WithLabelValues("similar").Inc()
		return cached, nil
	}
	metrics.CacheMisses.WithLabelValues("similar").Inc()

	target, err := s.repo.GetContentByID(ctx, contentID)
	if err != nil {
		if errors.Is(err, domain.ErrContentNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("fetch content: %w", err)
	}

	catalog, err := s.repo.GetCatalog(ctx, s.limits.CatalogLimit)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}

	scored, err := s.engine.SimilarTo(*target, catalog, limit)
	if err != nil {
		return nil, err
	}

	recs := toResponse(scored)
	if cacheErr := s.cache.SetSimilar(ctx, contentID, limit, recs); cacheErr != nil {
		s.log.Warn().Err(cacheErr).Int64("content_id", contentID).Msg("cache set failed")
	}
	return recs, nil
}

// GetTrending ranks the catalog by watch counts across all users inside
// the configured window.
// The returned int is the effective window in days after applying the
// configured default.
func (s *Service) GetTrending(ctx context.Context, limit, days int) ([]domain.ScoredRecommendation, int, error) {
	limit = clampLimit(limit)
	if days <= 0 {
		days = s.limits.TrendingDays
	}

	catalog, err := s.repo.GetCatalog(ctx, s.limits.CatalogLimit)
	if err != nil {
		return nil, days, fmt.Errorf("fetch catalog: %w", err)
	}

	since := time.Now().AddDate(0, 0, -days)
	pool, err := s.repo.GetRecentWatchHistory(ctx, since, s.limits.TrendingPoolSize)
	if err != nil {
		return nil, days, fmt.Errorf("fetch history pool: %w", err)
	}

	scored, err := s.engine.Trending(catalog, pool, limit)
	if err != nil {
		return nil, days, err
	}
	return toResponse(scored), days, nil
}

// AddWatchHistory records a viewing and invalidates the user's cached
// recommendations.
func (s *Service) AddWatchHistory(ctx context.Context, userID, contentID int64, watchTimePct float64, completed bool) error {
	if _, err := s.repo.GetContentByID(ctx, contentID); err != nil {
		return err
	}
	if err := s.repo.AddWatchHistory(ctx, userID, contentID, watchTimePct, completed); err != nil {
		return err
	}
	if err := s.cache.ClearUserCache(ctx, userID); err != nil {
		s.log.Warn().Err(err).Int64("user_id", userID).Msg("cache invalidation failed")
	}
	return nil
}

// RateContent stores an explicit rating and invalidates the user's
// cached recommendations.
func (s *Service) RateContent(ctx context.Context, userID, contentID int64, rating float64) error {
	if !domain.ValidRating(rating) {
		return domain.ErrInvalidRating
	}
	if _, err := s.repo.GetContentByID(ctx, contentID); err != nil {
		return err
	}
	if err := s.repo.UpsertRating(ctx, userID, contentID, rating); err != nil {
		return err
	}
	if err := s.cache.ClearUserCache(ctx, userID); err != nil {
		s.log.Warn().Err(err).Int64("user_id", userID).Msg("cache invalidation failed")
	}
	return nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

// toResponse converts engine output to the API shape, rounding scores
// to 3 decimal places.
func toResponse(scored []engine.ScoredCandidate) []domain.ScoredRecommendation {
	recs := make([]domain.ScoredRecommendation, 0, len(scored))
	for _, sc := range scored {
		recs = append(recs, domain.ScoredRecommendation{
			ContentID: sc.Item.ID,
			Title:     sc.Item.Title,
			Genre:     sc.Item.Genre,
			Type:      sc.Item.Type,
			Premium:   sc.Item.Premium,
			Score:     math.Round(sc.Score*1000) / 1000,
		})
	}
	return recs
}

// categorizeError maps an internal error to a response (code, message).
func categorizeError(err error) (string, string) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return "user_not_found", "user not found"
	case errors.Is(err, domain.ErrContentNotFound):
		return "content_not_found", "content not found"
	case errors.Is(err, domain.ErrInvalidLimit):
		return "invalid_limit", "limit must not be negative"
	default:
		return "internal_error", "an unexpected error occurred"
	}
}
