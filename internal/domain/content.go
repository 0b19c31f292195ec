package domain

import "time"

// ContentType classifies a catalog entry. The zero value means the type
// is unknown and is treated as absent by the engine.
type ContentType string

const (
	ContentTypeUnknown    ContentType = ""
	ContentTypeMovie      ContentType = "movie"
	ContentTypeSeries     ContentType = "series"
	ContentTypeMusicVideo ContentType = "music_video"
	ContentTypeTrailer    ContentType = "trailer"
	ContentTypeShortFilm  ContentType = "short_film"
)

// ContentItem is an immutable catalog entry. Optional attributes are
// pointers (or nil slices) so "absent" is distinguishable from a real
// zero value; the engine only reads items, never mutates them.
type ContentItem struct {
	ID            int64       `json:"id"`
	Title         string      `json:"title"`
	Description   string      `json:"description,omitempty"`
	CategoryID    int64       `json:"category_id"`
	Genre         *string     `json:"genre,omitempty"`
	Tags          []string    `json:"tags,omitempty"`
	Type          ContentType `json:"content_type,omitempty"`
	ReleaseYear   int         `json:"release_year"`
	DurationSec   *int        `json:"duration_sec,omitempty"`
	Premium       bool        `json:"premium"`
	Popularity    *float64    `json:"popularity,omitempty"` // 0-100
	ContentRating *string     `json:"content_rating,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
}
