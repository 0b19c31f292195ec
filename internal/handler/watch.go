package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/streamcast/recommendation-service/internal/domain"
)

// POST /users/{userID}/watch-history
func (h *Handler) AddWatchHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseID(w, r, "userID", "user_id")
	if !ok {
		return
	}

	var req WatchHistoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "Invalid request body")
		return
	}
	if req.ContentID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid content_id")
		return
	}
	if req.WatchTimePct < 0 || req.WatchTimePct > 100 {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "watch_time_pct must be between 0 and 100")
		return
	}

	if err := h.service.AddWatchHistory(r.Context(), userID, req.ContentID, req.WatchTimePct, req.Completed); err != nil {
		if errors.Is(err, domain.ErrContentNotFound) {
			writeError(w, http.StatusNotFound, "content_not_found",
				fmt.Sprintf("Content with ID %d does not exist", req.ContentID))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// PUT /users/{userID}/ratings/{contentID}
func (h *Handler) RateContent(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseID(w, r, "userID", "user_id")
	if !ok {
		return
	}
	contentID, ok := parseID(w, r, "contentID", "content_id")
	if !ok {
		return
	}

	var req RatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "Invalid request body")
		return
	}

	if err := h.service.RateContent(r.Context(), userID, contentID, req.Rating); err != nil {
		if errors.Is(err, domain.ErrInvalidRating) {
			writeError(w, http.StatusBadRequest, "invalid_rating", "rating must be between 1 and 5")
			return
		}
		if errors.Is(err, domain.ErrContentNotFound) {
			writeError(w, http.StatusNotFound, "content_not_found",
				fmt.Sprintf("Content with ID %d does not exist", contentID))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
