package repository

import (
	"context"
	"fmt"

	"github.com/streamcast/recommendation-service/internal/domain"
)

// GetUserRatings returns all of a user's explicit ratings.
func (r *Repository) GetUserRatings(ctx context.Context, userID int64) (domain.RatingMap, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT content_id, rating FROM user_ratings WHERE user_id = $1`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query ratings for user %d: %w", userID, err)
	}
	defer rows.Close()

	ratings := make(domain.RatingMap)
	for rows.Next() {
		var contentID int64
		var rating float64
		if err := rows.Scan(&contentID, &rating); err != nil {
			return nil, fmt.Errorf("scan rating: %w", err)
		}
		ratings[contentID] = rating
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ratings: %w", err)
	}
	return ratings, nil
}

// UpsertRating stores or replaces a user's rating for a content item.
func (r *Repository) UpsertRating(ctx context.Context, userID, contentID int64, rating float64) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO user_ratings (user_id, content_id, rating, rated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, content_id)
		DO UPDATE SET rating = EXCLUDED.rating, rated_at = EXCLUDED.rated_at`,
		userID, contentID, rating,
	)
	if err != nil {
		return fmt.Errorf("upsert rating user=%d content=%d: %w", userID, contentID, err)
	}
	return nil
}
