package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/streamcast/recommendation-service/internal/domain"
)

// GetUserWatchHistory returns the user's most recent watch history
// entries, newest first.
func (r *Repository) GetUserWatchHistory(ctx context.Context, userID int64, limit int) ([]domain.WatchHistoryEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT content_id, watched_at, watch_time_pct, completed
		FROM user_watch_history
		WHERE user_id = $1
		ORDER BY watched_at DESC
		LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query watch history for user %d: %w", userID, err)
	}
	defer rows.Close()

	var entries []domain.WatchHistoryEntry
	for rows.Next() {
		var e domain.WatchHistoryEntry
		if err := rows.Scan(&e.ContentID, &e.WatchedAt, &e.WatchTimePct, &e.Completed); err != nil {
			return nil, fmt.Errorf("scan watch history entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate watch history: %w", err)
	}
	return entries, nil
}

// GetRecentWatchHistory returns the platform-wide watch history pool
// since the given time, used for trending ranking.
func (r *Repository) GetRecentWatchHistory(ctx context.Context, since time.Time, limit int) ([]domain.WatchHistoryEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT content_id, watched_at, watch_time_pct, completed
		FROM user_watch_history
		WHERE watched_at >= $1
		ORDER BY watched_at DESC
		LIMIT $2`,
		since, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query recent watch history: %w", err)
	}
	defer rows.Close()

	var entries []domain.WatchHistoryEntry
	for rows.Next() {
		var e domain.WatchHistoryEntry
		if err := rows.Scan(&e.ContentID, &e.WatchedAt, &e.WatchTimePct, &e.Completed); err != nil {
			return nil, fmt.Errorf("scan watch history entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recent watch history: %w", err)
	}
	return entries, nil
}

// AddWatchHistory records one viewing of one content item.
func (r *Repository) AddWatchHistory(ctx context.Context, userID, contentID int64, watchTimePct float64, completed bool) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO user_watch_history (user_id, content_id, watched_at, watch_time_pct, completed)
		VALUES ($1, $2, NOW(), $3, $4)`,
		userID, contentID, watchTimePct, completed,
	)
	if err != nil {
		return fmt.Errorf("insert watch history user=%d content=%d: %w", userID, contentID, err)
	}
	return nil
}
