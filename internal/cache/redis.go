package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/streamcast/recommendation-service/internal/domain"
)

type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func userKey(userID int64, limit int) string {
	return fmt.Sprintf("rec:user:%d:limit:%d", userID, limit)
}

func similarKey(contentID int64, limit int) string {
	return fmt.Sprintf("rec:similar:%d:limit:%d", contentID, limit)
}

// GetRecommendations returns cached personalized recommendations, with
// found=false on a miss.
func (c *Cache) GetRecommendations(ctx context.Context, userID int64, limit int) ([]domain.ScoredRecommendation, bool, error) {
	return c.get(ctx, userKey(userID, limit))
}

// SetRecommendations stores personalized recommendations with the
// configured TTL.
func (c *Cache) SetRecommendations(ctx context.Context, userID int64, limit int, recs []domain.ScoredRecommendation) error {
	return c.set(ctx, userKey(userID, limit), recs)
}

// GetSimilar returns cached similar-content results.
func (c *Cache) GetSimilar(ctx context.Context, contentID int64, limit int) ([]domain.ScoredRecommendation, bool, error) {
	return c.get(ctx, similarKey(contentID, limit))
}

// SetSimilar stores similar-content results.
func (c *Cache) SetSimilar(ctx context.Context, contentID int64, limit int, recs []domain.ScoredRecommendation) error {
	return c.set(ctx, similarKey(contentID, limit), recs)
}

func (c *Cache) get(ctx context.Context, key string) ([]domain.ScoredRecommendation, bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get %s: %w", key, err)
	}

	var recs []domain.ScoredRecommendation
	if err := json.Unmarshal([]byte(val), &recs); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached recommendations %s: %w", key, err)
	}
	return recs, true, nil
}

func (c *Cache) set(ctx context.Context, key string, recs []domain.ScoredRecommendation) error {
	val, err := json.Marshal(recs)
	if err != nil {
		return fmt.Errorf("marshal recommendations: %w", err)
	}
	if err := c.client.Set(ctx, key, val, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

// ClearUserCache drops all cached recommendation lists for a user.
// Called when watch history or ratings change.
func (c *Cache) ClearUserCache(ctx context.Context, userID int64) error {
	pattern := fmt.Sprintf("rec:user:%d:limit:*", userID)
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("cache delete %s: %w", iter.Val(), err)
		}
	}
	return iter.Err()
}

// Ping checks connectivity.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
