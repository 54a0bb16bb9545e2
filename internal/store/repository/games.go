package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/veskob/botezscan/internal/store"
)

// GameRepository handles game data access
type GameRepository struct {
	db *store.Database
}

// NewGameRepository creates a new game repository
func NewGameRepository(db *store.Database) *GameRepository {
	return &GameRepository{db: db}
}

const gameColumns = `game_id, url, white, black, pgn, time_class, rated,
	end_time, archive, analyzed, created_at, updated_at`

// Upsert stores a game, deduplicating on URL. A game already present is
// left untouched and returned as stored; inserted=false in that case.
func (r *GameRepository) Upsert(ctx context.Context, game *store.Game) (*store.Game, bool, error) {
	query := `
		INSERT INTO games (url, white, black, pgn, time_class, rated, end_time, archive)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (url) DO NOTHING
		RETURNING ` + gameColumns

	stored := &store.Game{}
	err := r.db.DB().QueryRowContext(ctx, query,
		game.URL, game.White, game.Black, game.PGN,
		game.TimeClass, game.Rated, game.EndTime, game.Archive,
	).Scan(
		&stored.GameID, &stored.URL, &stored.White, &stored.Black, &stored.PGN,
		&stored.TimeClass, &stored.Rated, &stored.EndTime, &stored.Archive,
		&stored.Analyzed, &stored.CreatedAt, &stored.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		// Conflict path: the game was fetched before
		existing, err := r.GetByURL(ctx, game.URL)
		if err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("upserting game: %w", err)
	}

	return stored, true, nil
}

// GetByID finds a game by its database ID
func (r *GameRepository) GetByID(ctx context.Context, gameID int) (*store.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE game_id = $1`
	return r.queryOne(ctx, query, gameID)
}

// GetByURL finds a game by its chess.com URL
func (r *GameRepository) GetByURL(ctx context.Context, url string) (*store.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE url = $1`
	return r.queryOne(ctx, query, url)
}

// GetByArchive returns all games collected from one "YYYY/MM" month
func (r *GameRepository) GetByArchive(ctx context.Context, archive string) ([]*store.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE archive = $1 ORDER BY end_time`

	rows, err := r.db.DB().QueryContext(ctx, query, archive)
	if err != nil {
		return nil, fmt.Errorf("querying games: %w", err)
	}
	defer rows.Close()

	return r.scanGames(rows)
}

// GetByPlayer returns all games a username took part in, most recent first
func (r *GameRepository) GetByPlayer(ctx context.Context, username string, limit int) ([]*store.Game, error) {
	query := `
		SELECT ` + gameColumns + `
		FROM games
		WHERE white = $1 OR black = $1
		ORDER BY end_time DESC
		LIMIT $2
	`

	rows, err := r.db.DB().QueryContext(ctx, query, username, limit)
	if err != nil {
		return nil, fmt.Errorf("querying games by player: %w", err)
	}
	defer rows.Close()

	return r.scanGames(rows)
}

// GetUnanalyzed returns games not yet run through the detector
func (r *GameRepository) GetUnanalyzed(ctx context.Context, limit int) ([]*store.Game, error) {
	query := `
		SELECT ` + gameColumns + `
		FROM games
		WHERE analyzed = FALSE
		ORDER BY game_id
		LIMIT $1
	`

	rows, err := r.db.DB().QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("querying unanalyzed games: %w", err)
	}
	defer rows.Close()

	return r.scanGames(rows)
}

// MarkAnalyzed flags a game as processed by the detector
func (r *GameRepository) MarkAnalyzed(ctx context.Context, gameID int) error {
	query := `UPDATE games SET analyzed = TRUE, updated_at = NOW() WHERE game_id = $1`

	if _, err := r.db.DB().ExecContext(ctx, query, gameID); err != nil {
		return fmt.Errorf("marking game analyzed: %w", err)
	}
	return nil
}

// GetAll returns every stored game ordered by end time
func (r *GameRepository) GetAll(ctx context.Context) ([]*store.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games ORDER BY end_time`

	rows, err := r.db.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying games: %w", err)
	}
	defer rows.Close()

	return r.scanGames(rows)
}

// Count returns the number of stored games
func (r *GameRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.DB().QueryRowContext(ctx, `SELECT COUNT(*) FROM games`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting games: %w", err)
	}
	return count, nil
}

func (r *GameRepository) queryOne(ctx context.Context, query string, arg interface{}) (*store.Game, error) {
	game := &store.Game{}
	err := r.db.DB().QueryRowContext(ctx, query, arg).Scan(
		&game.GameID, &game.URL, &game.White, &game.Black, &game.PGN,
		&game.TimeClass, &game.Rated, &game.EndTime, &game.Archive,
		&game.Analyzed, &game.CreatedAt, &game.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("game not found: %v", arg)
	}
	if err != nil {
		return nil, fmt.Errorf("querying game: %w", err)
	}

	return game, nil
}

func (r *GameRepository) scanGames(rows *sql.Rows) ([]*store.Game, error) {
	var games []*store.Game
	for rows.Next() {
		game := &store.Game{}
		if err := rows.Scan(
			&game.GameID, &game.URL, &game.White, &game.Black, &game.PGN,
			&game.TimeClass, &game.Rated, &game.EndTime, &game.Archive,
			&game.Analyzed, &game.CreatedAt, &game.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning game: %w", err)
		}
		games = append(games, game)
	}

	return games, rows.Err()
}
