package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/streamcast/recommendation-service/internal/domain"
	"github.com/streamcast/recommendation-service/internal/metrics"
)

const (
	batchConcurrency = 10
	batchRecLimit    = 10
)

// GetBatchRecommendations generates recommendations for one page of
// users with a bounded worker pool. Per-user failures are captured in
// the result rather than failing the batch.
func (s *Service) GetBatchRecommendations(ctx context.Context, page, limit int) (*domain.BatchResponse, error) {
	start := time.Now()

	userIDs, err := s.repo.GetUserIDsPaginated(ctx, page, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch user ids: %w", err)
	}

	totalUsers, err := s.repo.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	results := make([]domain.BatchUserResult, len(userIDs))
	var wg sync.WaitGroup
	sem := make(chan struct{}, batchConcurrency)

	for i, userID := range userIDs {
		wg.Add(1)
		go func(idx int, uid int64) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			results[idx] = s.processUserForBatch(ctx, uid)
		}(i, userID)
	}
	wg.Wait()

	successCount := 0
	failedCount := 0
	for _, r := range results {
		if r.Status == domain.StatusSuccess {
			successCount++
		} else {
			failedCount++
		}
	}
	metrics.BatchUsersTotal.WithLabelValues("success").Add(float64(successCount))
	metrics.BatchUsersTotal.WithLabelValues("failed").Add(float64(failedCount))

	return &domain.BatchResponse{
		Page:       page,
		Limit:      limit,
		TotalUsers: totalUsers,
		Results:    results,
		Summary: domain.BatchSummary{
			SuccessCount:     successCount,
			FailedCount:      failedCount,
			ProcessingTimeMs: time.Since(start).Milliseconds(),
		},
		Metadata: domain.BatchMeta{
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		},
	}, nil
}

func (s *Service) processUserForBatch(ctx context.Context, userID int64) domain.BatchUserResult {
	result, err := s.GetRecommendations(ctx, userID, batchRecLimit)
	if err != nil {
		s.log.Warn().Err(err).Int64("user_id", userID).Msg("batch generation failed")
		code, msg := categorizeError(err)
		return domain.BatchUserResult{
			UserID:  userID,
			Status:  domain.StatusFailed,
			Error:   code,
			Message: msg,
		}
	}

	return domain.BatchUserResult{
		UserID:          userID,
		Recommendations: result.Recommendations,
		Status:          domain.StatusSuccess,
	}
}
