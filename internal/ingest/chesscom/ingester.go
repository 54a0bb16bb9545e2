package chesscom

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/veskob/botezscan/internal/cache"
	"github.com/veskob/botezscan/internal/store"
	"github.com/veskob/botezscan/internal/store/repository"
)

// Ingester collects roster games and persists them into the database.
type Ingester struct {
	collector  *Collector
	gameRepo   *repository.GameRepository
	playerRepo *repository.PlayerRepository
}

// NewIngester creates an ingester using the default API base URL
func NewIngester(db *store.Database, redisCache *cache.RedisCache) *Ingester {
	return NewIngesterWithBaseURL(db, redisCache, "")
}

// NewIngesterWithBaseURL creates an ingester overriding the API base URL
// (useful for tests)
func NewIngesterWithBaseURL(db *store.Database, redisCache *cache.RedisCache, baseURL string) *Ingester {
	var client *Client
	if strings.TrimSpace(baseURL) != "" {
		log.Printf("[ingest] Creating chess.com client with baseURL: %s", baseURL)
		client = New(baseURL)
	} else {
		client = NewClient()
	}

	return &Ingester{
		collector:  NewCollector(client, redisCache),
		gameRepo:   repository.NewGameRepository(db),
		playerRepo: repository.NewPlayerRepository(db),
	}
}

// Collector exposes the storage-free collection layer
func (i *Ingester) Collector() *Collector {
	return i.collector
}

// Result summarizes one ingest run
type Result struct {
	Players    int `json:"players"`
	Matched    int `json:"matched"`
	Inserted   int `json:"inserted"`
	Duplicates int `json:"duplicates"`
}

// activeRoster loads the usernames currently being collected
func (i *Ingester) activeRoster(ctx context.Context) ([]string, error) {
	players, err := i.playerRepo.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading roster: %w", err)
	}
	if len(players) == 0 {
		return nil, fmt.Errorf("no active roster players")
	}

	roster := make([]string, 0, len(players))
	for _, player := range players {
		roster = append(roster, player.Username)
	}
	return roster, nil
}

// CollectWindow gathers a window's games without persisting anything. An
// empty username list means the active roster.
func (i *Ingester) CollectWindow(ctx context.Context, usernames []string, window MonthWindow) ([]Game, error) {
	if err := window.Validate(); err != nil {
		return nil, err
	}

	roster := usernames
	if len(roster) == 0 {
		var err error
		if roster, err = i.activeRoster(ctx); err != nil {
			return nil, err
		}
	}

	games, err := i.collector.Collect(ctx, roster, window)
	if err != nil {
		return nil, fmt.Errorf("collecting games: %w", err)
	}
	return games, nil
}

// IngestWindow collects the active roster's games for a month window and
// upserts them, deduplicating on URL.
func (i *Ingester) IngestWindow(ctx context.Context, window MonthWindow) (*Result, error) {
	roster, err := i.activeRoster(ctx)
	if err != nil {
		return nil, err
	}
	if err := window.Validate(); err != nil {
		return nil, err
	}

	games, err := i.collector.Collect(ctx, roster, window)
	if err != nil {
		return nil, fmt.Errorf("collecting games: %w", err)
	}

	result, err := i.IngestGames(ctx, games)
	if err != nil {
		return nil, err
	}
	result.Players = len(roster)
	return result, nil
}

// IngestGames upserts an already-collected batch, deduplicating on URL.
// Everything that made it into storage joins the seen-URL set so later
// collections skip it at the source.
func (i *Ingester) IngestGames(ctx context.Context, games []Game) (*Result, error) {
	result := &Result{Matched: len(games)}
	stored := make([]string, 0, len(games))
	for _, game := range games {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		_, inserted, err := i.gameRepo.Upsert(ctx, ToStoreGame(game))
		if err != nil {
			log.Printf("[ingest] Error upserting %s: %v", game.URL, err)
			continue
		}
		stored = append(stored, game.URL)
		if inserted {
			result.Inserted++
		} else {
			result.Duplicates++
		}
	}

	if err := i.collector.MarkSeen(ctx, stored...); err != nil {
		log.Printf("[ingest] Failed to mark %d URLs seen: %v", len(stored), err)
	}

	log.Printf("[ingest] ✓ %d matched, %d new, %d already stored",
		result.Matched, result.Inserted, result.Duplicates)
	return result, nil
}

// IngestCurrentMonth re-collects the month still being written to
func (i *Ingester) IngestCurrentMonth(ctx context.Context) (*Result, error) {
	month := CurrentMonth(time.Now())
	return i.IngestWindow(ctx, MonthWindow{From: month, To: month})
}

// ToStoreGame converts an API game record into its storage model. The
// archive month is the one the game was fetched from; end_time is only a
// fallback for corpus entries saved before stamping existed.
func ToStoreGame(game Game) *store.Game {
	archive := game.ArchiveMonth
	if archive == "" {
		archive = CurrentMonth(game.EndedAt())
	}
	stored := &store.Game{
		URL:     game.URL,
		White:   game.White.Username,
		Black:   game.Black.Username,
		PGN:     game.PGN,
		Rated:   game.Rated,
		Archive: archive,
	}
	if game.TimeClass != "" {
		stored.TimeClass = sql.NullString{String: game.TimeClass, Valid: true}
	}
	if game.EndTime > 0 {
		stored.EndTime = sql.NullTime{Time: game.EndedAt(), Valid: true}
	}
	return stored
}
