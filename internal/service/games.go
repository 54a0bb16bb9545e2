package service

import (
	"context"
	"fmt"

	"github.com/veskob/botezscan/internal/store"
	"github.com/veskob/botezscan/internal/store/repository"
)

// GameService handles read-side game queries
type GameService struct {
	gameRepo *repository.GameRepository
}

// NewGameService creates a new game service
func NewGameService(db *store.Database) *GameService {
	return &GameService{
		gameRepo: repository.NewGameRepository(db),
	}
}

// GetGame retrieves a game by its database ID
func (s *GameService) GetGame(ctx context.Context, gameID int) (*store.Game, error) {
	game, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("fetching game: %w", err)
	}
	return game, nil
}

// GetGamesByPlayer retrieves a roster member's stored games
func (s *GameService) GetGamesByPlayer(ctx context.Context, username string, limit int) ([]*store.Game, error) {
	if limit <= 0 {
		limit = 100
	}
	games, err := s.gameRepo.GetByPlayer(ctx, username, limit)
	if err != nil {
		return nil, fmt.Errorf("fetching games by player: %w", err)
	}
	return games, nil
}

// GetGamesByArchive retrieves everything collected from one archive month
func (s *GameService) GetGamesByArchive(ctx context.Context, archive string) ([]*store.Game, error) {
	games, err := s.gameRepo.GetByArchive(ctx, archive)
	if err != nil {
		return nil, fmt.Errorf("fetching games by archive: %w", err)
	}
	return games, nil
}

// CountGames reports how many games are stored
func (s *GameService) CountGames(ctx context.Context) (int, error) {
	return s.gameRepo.Count(ctx)
}
