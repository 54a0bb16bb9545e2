package service

import (
	"context"
	"fmt"

	"github.com/veskob/botezscan/internal/store"
	"github.com/veskob/botezscan/internal/store/repository"
)

// PlayerService handles roster management
type PlayerService struct {
	playerRepo *repository.PlayerRepository
}

// NewPlayerService creates a new player service
func NewPlayerService(db *store.Database) *PlayerService {
	return &PlayerService{
		playerRepo: repository.NewPlayerRepository(db),
	}
}

// ListPlayers returns the whole roster
func (s *PlayerService) ListPlayers(ctx context.Context) ([]*store.Player, error) {
	players, err := s.playerRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing players: %w", err)
	}
	return players, nil
}

// AddPlayer puts a username on the active roster
func (s *PlayerService) AddPlayer(ctx context.Context, username string) (*store.Player, error) {
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	player, err := s.playerRepo.Upsert(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("adding player: %w", err)
	}
	return player, nil
}

// DeactivatePlayer stops collecting a player's games without deleting them
func (s *PlayerService) DeactivatePlayer(ctx context.Context, username string) error {
	if err := s.playerRepo.SetActive(ctx, username, false); err != nil {
		return fmt.Errorf("deactivating player: %w", err)
	}
	return nil
}
