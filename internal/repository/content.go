package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/streamcast/recommendation-service/internal/domain"
)

const contentColumns = `id, title, description, category_id, genre, tags, content_type,
	release_year, duration_sec, premium, popularity, content_rating, created_at`

// GetCatalog returns a catalog snapshot in stable insertion order. The
// limit caps the candidate pool the engine has to score.
func (r *Repository) GetCatalog(ctx context.Context, limit int) ([]domain.ContentItem, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+contentColumns+`
		FROM content
		ORDER BY id
		LIMIT $1`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query catalog: %w", err)
	}
	defer rows.Close()

	return scanContentItems(rows)
}

// GetContentByID fetches one catalog entry.
func (r *Repository) GetContentByID(ctx context.Context, contentID int64) (*domain.ContentItem, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+contentColumns+` FROM content WHERE id = $1`, contentID,
	)

	item, err := scanContentItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrContentNotFound
		}
		return nil, fmt.Errorf("query content id=%d: %w", contentID, err)
	}
	return item, nil
}

func scanContentItems(rows pgx.Rows) ([]domain.ContentItem, error) {
	var items []domain.ContentItem
	for rows.Next() {
		item, err := scanContentItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan content: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate content: %w", err)
	}
	return items, nil
}

func scanContentItem(row pgx.Row) (*domain.ContentItem, error) {
	var c domain.ContentItem
	var contentType *string

	err := row.Scan(&c.ID, &c.Title, &c.Description, &c.CategoryID, &c.Genre, &c.Tags,
		&contentType, &c.ReleaseYear, &c.DurationSec, &c.Premium, &c.Popularity,
		&c.ContentRating, &c.CreatedAt)
	if err != nil {
		return nil, err
	}

	if contentType != nil {
		c.Type = domain.ContentType(*contentType)
	}
	return &c, nil
}
