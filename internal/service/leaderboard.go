package service

import (
	"context"

	"treasure-hunt-service/internal/model"
	"treasure-hunt-service/internal/repository"
)

// LeaderboardService ranks players by accrued rewards. The ranking reads the
// progress table's ordered index; no separate structure is maintained.
type LeaderboardService struct {
	progressRepo *repository.ProgressRepository
	defaultLimit int
	maxLimit     int
}

// NewLeaderboardService creates a new LeaderboardService instance.
func NewLeaderboardService(progressRepo *repository.ProgressRepository, defaultLimit, maxLimit int) *LeaderboardService {
	return &LeaderboardService{
		progressRepo: progressRepo,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
	}
}

// GetLeaderboard returns the top players by total rewards, descending.
// A non-positive limit falls back to the default; the configured maximum caps
// oversized requests.
func (s *LeaderboardService) GetLeaderboard(ctx context.Context, limit int) ([]*model.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = s.defaultLimit
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}
	return s.progressRepo.GetLeaderboard(ctx, limit)
}
