package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/streamcast/recommendation-service/internal/domain"
)

// GET /content/{contentID}/similar
func (h *Handler) GetSimilarContent(w http.ResponseWriter, r *http.Request) {
	contentID, ok := parseID(w, r, "contentID", "content_id")
	if !ok {
		return
	}
	limit, ok := parseLimit(w, r)
	if !ok {
		return
	}

	results, err := h.service.GetSimilarContent(r.Context(), contentID, limit)
	if err != nil {
		if errors.Is(err, domain.ErrContentNotFound) {
			writeError(w, http.StatusNotFound, "content_not_found",
				fmt.Sprintf("Content with ID %d does not exist", contentID))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return
	}

	writeJSON(w, http.StatusOK, SimilarContentResponse{
		ContentID: contentID,
		Results:   results,
		Metadata: domain.RecommendationMeta{
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
			TotalCount:  len(results),
		},
	})
}

// GET /trending
func (h *Handler) GetTrending(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(w, r)
	if !ok {
		return
	}

	days := 0
	if daysStr := r.URL.Query().Get("days"); daysStr != "" {
		parsed, err := strconv.Atoi(daysStr)
		if err != nil || parsed < 1 || parsed > 90 {
			writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid days parameter")
			return
		}
		days = parsed
	}

	results, days, err := h.service.GetTrending(r.Context(), limit, days)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return
	}

	writeJSON(w, http.StatusOK, TrendingResponse{
		Days:    days,
		Results: results,
		Metadata: domain.RecommendationMeta{
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
			TotalCount:  len(results),
		},
	})
}
