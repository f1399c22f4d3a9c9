package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"treasure-hunt-service/internal/digest"
	"treasure-hunt-service/internal/model"
	"treasure-hunt-service/internal/pkg/lock"
	"treasure-hunt-service/internal/pkg/metrics"
	"treasure-hunt-service/internal/repository"
)

// ProgressService owns the per-player progress ledger. For any (player, hunt)
// pair the only transition is unattempted -> completed; wrong answers leave
// no trace and can be retried forever.
type ProgressService struct {
	huntRepo     *repository.HuntRepository
	progressRepo *repository.ProgressRepository
	playerLock   *lock.PlayerLock
	metrics      *metrics.Metrics
}

// NewProgressService creates a new ProgressService instance.
func NewProgressService(
	huntRepo *repository.HuntRepository,
	progressRepo *repository.ProgressRepository,
	playerLock *lock.PlayerLock,
	m *metrics.Metrics,
) *ProgressService {
	return &ProgressService{
		huntRepo:     huntRepo,
		progressRepo: progressRepo,
		playerLock:   playerLock,
		metrics:      m,
	}
}

// SubmitAnswer verifies a player's answer against a hunt. On a correct first
// answer it records the completion and accrues the reward, returning true.
// A wrong answer returns (false, nil) with no state change. Preconditions are
// checked in order: the hunt must exist, be active, and not be completed by
// this player; each failure is a typed error and leaves storage untouched.
func (s *ProgressService) SubmitAnswer(ctx context.Context, player string, huntID uint32, answer string) (bool, error) {
	s.playerLock.Lock(player)
	defer s.playerLock.Unlock(player)

	hunt, err := s.huntRepo.GetByID(ctx, huntID)
	if err != nil {
		s.metrics.IncSubmission(metrics.ResultRejected)
		return false, err
	}
	if !hunt.Active {
		s.metrics.IncSubmission(metrics.ResultRejected)
		return false, ErrHuntInactive
	}

	completed, err := s.progressRepo.HasCompleted(ctx, player, huntID)
	if err != nil {
		return false, err
	}
	if completed {
		s.metrics.IncSubmission(metrics.ResultAlreadyCompleted)
		return false, repository.ErrAlreadyCompleted
	}

	if !digest.Matches(answer, hunt.AnswerDigest) {
		s.metrics.IncSubmission(metrics.ResultWrong)
		return false, nil
	}

	if err := s.progressRepo.Complete(ctx, player, huntID, hunt.RewardAmount); err != nil {
		// The storage-level uniqueness check can still fire if another
		// instance recorded the completion between check and write.
		if errors.Is(err, repository.ErrAlreadyCompleted) {
			s.metrics.IncSubmission(metrics.ResultAlreadyCompleted)
		}
		return false, err
	}

	s.metrics.IncSubmission(metrics.ResultCorrect)
	log.Info().
		Str("player", player).
		Uint32("hunt_id", huntID).
		Str("reward", hunt.RewardAmount.String()).
		Msg("Hunt completed")

	return true, nil
}

// GetProgress retrieves a player's progress. Unknown players get the default
// empty record; this never fails on a missing player.
func (s *ProgressService) GetProgress(ctx context.Context, player string) (*model.PlayerProgress, error) {
	return s.progressRepo.GetProgress(ctx, player)
}
