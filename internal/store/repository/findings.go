package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/veskob/botezscan/internal/store"
)

// FindingRepository handles blunder finding data access
type FindingRepository struct {
	db *store.Database
}

// NewFindingRepository creates a new finding repository
func NewFindingRepository(db *store.Database) *FindingRepository {
	return &FindingRepository{db: db}
}

// Insert stores a finding for a game. A game carries at most one finding;
// repeat analysis of the same game is a no-op.
func (r *FindingRepository) Insert(ctx context.Context, finding *store.Finding) (*store.Finding, error) {
	query := `
		INSERT INTO findings (game_id, move_number, move_token)
		VALUES ($1, $2, $3)
		ON CONFLICT (game_id) DO NOTHING
		RETURNING finding_id, game_id, move_number, move_token, created_at
	`

	stored := &store.Finding{
		GameURL: finding.GameURL,
		White:   finding.White,
		Black:   finding.Black,
	}
	err := r.db.DB().QueryRowContext(ctx, query,
		finding.GameID, finding.MoveNumber, finding.MoveToken,
	).Scan(
		&stored.FindingID, &stored.GameID,
		&stored.MoveNumber, &stored.MoveToken, &stored.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return r.GetByGameID(ctx, finding.GameID)
	}
	if err != nil {
		return nil, fmt.Errorf("inserting finding: %w", err)
	}

	return stored, nil
}

// GetByGameID finds the finding recorded for a game, if any
func (r *FindingRepository) GetByGameID(ctx context.Context, gameID int) (*store.Finding, error) {
	query := `
		SELECT f.finding_id, f.game_id, g.url, g.white, g.black,
			f.move_number, f.move_token, f.created_at
		FROM findings f
		JOIN games g ON g.game_id = f.game_id
		WHERE f.game_id = $1
	`

	finding := &store.Finding{}
	err := r.db.DB().QueryRowContext(ctx, query, gameID).Scan(
		&finding.FindingID, &finding.GameID, &finding.GameURL,
		&finding.White, &finding.Black,
		&finding.MoveNumber, &finding.MoveToken, &finding.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("finding not found for game: %d", gameID)
	}
	if err != nil {
		return nil, fmt.Errorf("querying finding: %w", err)
	}

	return finding, nil
}

// GetAll returns all findings with their game context, newest first
func (r *FindingRepository) GetAll(ctx context.Context) ([]*store.Finding, error) {
	query := `
		SELECT f.finding_id, f.game_id, g.url, g.white, g.black,
			f.move_number, f.move_token, f.created_at
		FROM findings f
		JOIN games g ON g.game_id = f.game_id
		ORDER BY f.created_at DESC
	`

	rows, err := r.db.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying findings: %w", err)
	}
	defer rows.Close()

	return scanFindings(rows)
}

// GetByPlayer returns findings from games a username took part in
func (r *FindingRepository) GetByPlayer(ctx context.Context, username string) ([]*store.Finding, error) {
	query := `
		SELECT f.finding_id, f.game_id, g.url, g.white, g.black,
			f.move_number, f.move_token, f.created_at
		FROM findings f
		JOIN games g ON g.game_id = f.game_id
		WHERE g.white = $1 OR g.black = $1
		ORDER BY f.created_at DESC
	`

	rows, err := r.db.DB().QueryContext(ctx, query, username)
	if err != nil {
		return nil, fmt.Errorf("querying findings by player: %w", err)
	}
	defer rows.Close()

	return scanFindings(rows)
}

func scanFindings(rows *sql.Rows) ([]*store.Finding, error) {
	var findings []*store.Finding
	for rows.Next() {
		finding := &store.Finding{}
		if err := rows.Scan(
			&finding.FindingID, &finding.GameID, &finding.GameURL,
			&finding.White, &finding.Black,
			&finding.MoveNumber, &finding.MoveToken, &finding.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning finding: %w", err)
		}
		findings = append(findings, finding)
	}

	return findings, rows.Err()
}
