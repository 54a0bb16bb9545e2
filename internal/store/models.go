package store

import (
	"database/sql"
	"time"
)

// Player represents one roster member whose games are collected
type Player struct {
	PlayerID  int       `json:"player_id" db:"player_id"`
	Username  string    `json:"username" db:"username"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Game represents one fetched game record. The URL is the game's unique
// identifier on chess.com and is what deduplication keys on.
type Game struct {
	GameID    int            `json:"game_id" db:"game_id"`
	URL       string         `json:"url" db:"url"`
	White     string         `json:"white" db:"white"`
	Black     string         `json:"black" db:"black"`
	PGN       string         `json:"pgn" db:"pgn"`
	TimeClass sql.NullString `json:"time_class,omitempty" db:"time_class"`
	Rated     bool           `json:"rated" db:"rated"`
	EndTime   sql.NullTime   `json:"end_time,omitempty" db:"end_time"`
	Archive   string         `json:"archive" db:"archive"` // "YYYY/MM" month the game came from
	Analyzed  bool           `json:"analyzed" db:"analyzed"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt time.Time      `json:"updated_at" db:"updated_at"`
}

// Finding represents a detected uncompensated queen loss in one game.
// MoveNumber and MoveToken mirror the analysis result; the participant
// usernames and game URL are denormalized for reporting.
type Finding struct {
	FindingID  int       `json:"finding_id" db:"finding_id"`
	GameID     int       `json:"game_id" db:"game_id"`
	GameURL    string    `json:"game_url" db:"game_url"`
	White      string    `json:"white" db:"white"`
	Black      string    `json:"black" db:"black"`
	MoveNumber int       `json:"move_number" db:"move_number"`
	MoveToken  string    `json:"move_token" db:"move_token"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
