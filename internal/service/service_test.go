package service

import (
	"errors"
	"testing"

	"github.com/streamcast/recommendation-service/internal/domain"
	"github.com/streamcast/recommendation-service/internal/engine"
)

func TestClampLimit(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{-5, defaultLimit},
		{0, defaultLimit},
		{1, 1},
		{25, 25},
		{maxLimit, maxLimit},
		{maxLimit + 1, maxLimit},
		{1000, maxLimit},
	}

	for _, tt := range tests {
		if got := clampLimit(tt.in); got != tt.want {
			t.Errorf("clampLimit(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestToResponse_RoundsScores(t *testing.T) {
	genre := "drama"
	scored := []engine.ScoredCandidate{
		{Item: domain.ContentItem{ID: 1, Title: "A", Genre: &genre}, Score: 1.23456},
		{Item: domain.ContentItem{ID: 2, Title: "B"}, Score: 0},
	}

	recs := toResponse(scored)
	if len(recs) != 2 {
		t.Fatalf("got %d recs, want 2", len(recs))
	}
	if recs[0].Score != 1.235 {
		t.Errorf("Score = %f, want 1.235 (3 decimal places)", recs[0].Score)
	}
	if recs[0].ContentID != 1 || *recs[0].Genre != "drama" {
		t.Errorf("item fields not carried over: %+v", recs[0])
	}
}

func TestCategorizeError(t *testing.T) {
	tests := []struct {
		err      error
		wantCode string
	}{
		{domain.ErrUserNotFound, "user_not_found"},
		{domain.ErrContentNotFound, "content_not_found"},
		{domain.ErrInvalidLimit, "invalid_limit"},
		{errors.New("boom"), "internal_error"},
	}

	for _, tt := range tests {
		code, msg := categorizeError(tt.err)
		if code != tt.wantCode {
			t.Errorf("categorizeError(%v) code = %q, want %q", tt.err, code, tt.wantCode)
		}
		if msg == "" {
			t.Errorf("categorizeError(%v) returned empty message", tt.err)
		}
	}
}
