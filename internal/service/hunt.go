// Package service provides the business logic of the treasure hunt ledger.
package service

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/rs/zerolog/log"

	"treasure-hunt-service/internal/model"
	"treasure-hunt-service/internal/pkg/metrics"
	"treasure-hunt-service/internal/repository"
)

// Common errors for ledger operations.
var (
	ErrUnauthorized = errors.New("principal is not the stored admin")
	ErrHuntInactive = errors.New("hunt is not active")
)

// HuntService owns the hunt catalog and the admin-gated creation protocol.
type HuntService struct {
	adminRepo *repository.AdminRepository
	huntRepo  *repository.HuntRepository
	metrics   *metrics.Metrics
}

// NewHuntService creates a new HuntService instance.
func NewHuntService(adminRepo *repository.AdminRepository, huntRepo *repository.HuntRepository, m *metrics.Metrics) *HuntService {
	return &HuntService{
		adminRepo: adminRepo,
		huntRepo:  huntRepo,
		metrics:   m,
	}
}

// Initialize stores the admin principal. Calling it a second time is an
// error, not a no-op: the stored admin never changes.
func (s *HuntService) Initialize(ctx context.Context, admin string) error {
	if err := s.adminRepo.Initialize(ctx, admin); err != nil {
		return err
	}

	log.Info().Str("admin", admin).Msg("Ledger initialized")
	return nil
}

// requireAdmin checks the claimed principal against the stored admin.
// Fail-closed: an unset admin or a mismatch both reject the operation.
func (s *HuntService) requireAdmin(ctx context.Context, principal string) error {
	stored, err := s.adminRepo.Get(ctx)
	if err != nil {
		return err
	}
	if principal != stored {
		return ErrUnauthorized
	}
	return nil
}

// CreateHunt registers a new hunt. Admin-gated: the caller must be the stored
// admin. The answer digest and reward amount are stored as given; reward sign
// and emptiness are deliberately not validated.
func (s *HuntService) CreateHunt(ctx context.Context, admin string, id uint32, name, answerDigest string, reward *big.Int) (*model.Hunt, error) {
	if err := s.requireAdmin(ctx, admin); err != nil {
		return nil, err
	}

	hunt, err := s.huntRepo.Create(ctx, id, name, answerDigest, reward)
	if err != nil {
		return nil, err
	}

	s.metrics.IncHuntCreated()
	log.Info().
		Uint32("hunt_id", id).
		Str("name", name).
		Str("reward", reward.String()).
		Msg("Hunt created")

	return hunt, nil
}

// GetHunt retrieves a hunt by id.
// Returns repository.ErrHuntNotFound if no hunt exists at that id.
func (s *HuntService) GetHunt(ctx context.Context, id uint32) (*model.Hunt, error) {
	return s.huntRepo.GetByID(ctx, id)
}

// ListHuntIDs returns all hunt ids in creation order.
func (s *HuntService) ListHuntIDs(ctx context.Context) ([]uint32, error) {
	return s.huntRepo.ListIDs(ctx)
}

// ListHunts returns all hunts in creation order.
func (s *HuntService) ListHunts(ctx context.Context) ([]*model.Hunt, error) {
	hunts, err := s.huntRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list hunts: %w", err)
	}
	return hunts, nil
}
