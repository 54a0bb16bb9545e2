package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/veskob/botezscan/internal/store"
)

// PlayerRepository handles roster player data access
type PlayerRepository struct {
	db *store.Database
}

// NewPlayerRepository creates a new player repository
func NewPlayerRepository(db *store.Database) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// GetAll returns every roster player
func (r *PlayerRepository) GetAll(ctx context.Context) ([]*store.Player, error) {
	query := `
		SELECT player_id, username, is_active, created_at, updated_at
		FROM players
		ORDER BY username
	`

	rows, err := r.db.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying players: %w", err)
	}
	defer rows.Close()

	return scanPlayers(rows)
}

// GetActive returns the roster players currently enabled for collection
func (r *PlayerRepository) GetActive(ctx context.Context) ([]*store.Player, error) {
	query := `
		SELECT player_id, username, is_active, created_at, updated_at
		FROM players
		WHERE is_active = TRUE
		ORDER BY username
	`

	rows, err := r.db.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying active players: %w", err)
	}
	defer rows.Close()

	return scanPlayers(rows)
}

// GetByUsername finds a player by username
func (r *PlayerRepository) GetByUsername(ctx context.Context, username string) (*store.Player, error) {
	query := `
		SELECT player_id, username, is_active, created_at, updated_at
		FROM players
		WHERE username = $1
	`

	player := &store.Player{}
	err := r.db.DB().QueryRowContext(ctx, query, username).Scan(
		&player.PlayerID, &player.Username, &player.IsActive,
		&player.CreatedAt, &player.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("player not found: %s", username)
	}
	if err != nil {
		return nil, fmt.Errorf("querying player: %w", err)
	}

	return player, nil
}

// Upsert inserts a player or reactivates an existing one
func (r *PlayerRepository) Upsert(ctx context.Context, username string) (*store.Player, error) {
	query := `
		INSERT INTO players (username, is_active)
		VALUES ($1, TRUE)
		ON CONFLICT (username) DO UPDATE SET
			is_active = TRUE,
			updated_at = NOW()
		RETURNING player_id, username, is_active, created_at, updated_at
	`

	player := &store.Player{}
	err := r.db.DB().QueryRowContext(ctx, query, username).Scan(
		&player.PlayerID, &player.Username, &player.IsActive,
		&player.CreatedAt, &player.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("upserting player: %w", err)
	}

	return player, nil
}

// SetActive toggles whether a player's games are collected
func (r *PlayerRepository) SetActive(ctx context.Context, username string, active bool) error {
	query := `UPDATE players SET is_active = $2, updated_at = NOW() WHERE username = $1`

	result, err := r.db.DB().ExecContext(ctx, query, username, active)
	if err != nil {
		return fmt.Errorf("updating player: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("player not found: %s", username)
	}

	return nil
}

func scanPlayers(rows *sql.Rows) ([]*store.Player, error) {
	var players []*store.Player
	for rows.Next() {
		player := &store.Player{}
		if err := rows.Scan(
			&player.PlayerID, &player.Username, &player.IsActive,
			&player.CreatedAt, &player.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning player: %w", err)
		}
		players = append(players, player)
	}

	return players, rows.Err()
}
