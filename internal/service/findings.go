package service

import (
	"context"
	"fmt"

	"github.com/veskob/botezscan/internal/store"
	"github.com/veskob/botezscan/internal/store/repository"
)

// FindingService handles read-side finding queries
type FindingService struct {
	findingRepo *repository.FindingRepository
}

// NewFindingService creates a new finding service
func NewFindingService(db *store.Database) *FindingService {
	return &FindingService{
		findingRepo: repository.NewFindingRepository(db),
	}
}

// ListFindings returns every recorded finding, newest first
func (s *FindingService) ListFindings(ctx context.Context) ([]*store.Finding, error) {
	findings, err := s.findingRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing findings: %w", err)
	}
	return findings, nil
}

// ListFindingsByPlayer returns findings from games a username took part in
func (s *FindingService) ListFindingsByPlayer(ctx context.Context, username string) ([]*store.Finding, error) {
	findings, err := s.findingRepo.GetByPlayer(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("listing findings by player: %w", err)
	}
	return findings, nil
}
