package handler

import "github.com/streamcast/recommendation-service/internal/domain"

type RecommendationResponse struct {
	UserID          int64                         `json:"user_id"`
	Recommendations []domain.ScoredRecommendation `json:"recommendations"`
	Metadata        domain.RecommendationMeta     `json:"metadata"`
}

type SimilarContentResponse struct {
	ContentID int64                         `json:"content_id"`
	Results   []domain.ScoredRecommendation `json:"results"`
	Metadata  domain.RecommendationMeta     `json:"metadata"`
}

type TrendingResponse struct {
	Days     int                           `json:"days"`
	Results  []domain.ScoredRecommendation `json:"results"`
	Metadata domain.RecommendationMeta     `json:"metadata"`
}

type WatchHistoryRequest struct {
	ContentID    int64   `json:"content_id"`
	WatchTimePct float64 `json:"watch_time_pct"`
	Completed    bool    `json:"completed"`
}

type RatingRequest struct {
	Rating float64 `json:"rating"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
