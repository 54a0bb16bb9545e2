package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/veskob/botezscan/internal/analysis"
	"github.com/veskob/botezscan/internal/cache"
	"github.com/veskob/botezscan/internal/corpus"
	"github.com/veskob/botezscan/internal/ingest/chesscom"
	"github.com/veskob/botezscan/internal/service"
	"github.com/veskob/botezscan/internal/store"
)

// defaultRoster is the fixed player group scanned when -players is not given
var defaultRoster = []string{
	"GKunchev", "whiteknightuwu", "georgi4c", "StefSportsmann",
	"funvengeance", "vbechev", "Drdevil1234", "vaseka", "DK97",
	"Baskarov25", "nikolaiberchev", "psakutov",
}

func main() {
	var (
		fromMonth  = flag.String("from", "2021/03", "start month (YYYY/MM, inclusive)")
		toMonth    = flag.String("to", "2021/07", "end month (YYYY/MM, inclusive)")
		players    = flag.String("players", "", "comma-separated roster (default: built-in roster)")
		corpusPath = flag.String("corpus", corpus.DefaultPath, "local game corpus file")
		refresh    = flag.Bool("refresh", false, "refetch from chess.com even when the corpus file exists")
		apiBase    = flag.String("api-url", "", "chess.com API base URL override")
		dsn        = flag.String("dsn", "", "Postgres DSN; when set, games and findings are persisted")
		timeout    = flag.Duration("timeout", 10*time.Minute, "overall timeout")
	)
	flag.Parse()

	log.SetPrefix("[scan] ")
	log.SetFlags(log.LstdFlags)

	roster := defaultRoster
	if *players != "" {
		roster = nil
		for _, part := range strings.Split(*players, ",") {
			if name := strings.TrimSpace(part); name != "" {
				roster = append(roster, name)
			}
		}
	}
	if len(roster) == 0 {
		log.Fatal("Empty roster")
	}

	window := chesscom.MonthWindow{From: *fromMonth, To: *toMonth}
	if err := window.Validate(); err != nil {
		log.Fatalf("Invalid month window: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	games, err := loadOrCollect(ctx, roster, window, *corpusPath, *refresh, *apiBase)
	if err != nil {
		log.Fatalf("Failed to gather games: %v", err)
	}
	log.Printf("✓ %d games in scope", len(games))

	findings := 0
	for _, game := range games {
		finding := analysis.DetectQueenBlunder(analysis.MoveList(game.PGN))
		if finding == nil {
			continue
		}
		findings++
		fmt.Printf("=== %s vs %s ===\n", game.White.Username, game.Black.Username)
		fmt.Printf("%s\n", game.URL)
		fmt.Printf("move %d: %s\n\n", finding.Move, finding.Token)
	}
	log.Printf("✓ Scan complete: %d games, %d findings", len(games), findings)

	if *dsn != "" {
		if err := persist(ctx, *dsn, roster, games, *apiBase); err != nil {
			log.Fatalf("Failed to persist results: %v", err)
		}
	}
}

// loadOrCollect prefers the local corpus file and falls back to the live
// API, saving what it fetched for the next run.
func loadOrCollect(ctx context.Context, roster []string, window chesscom.MonthWindow, corpusPath string, refresh bool, apiBase string) ([]chesscom.Game, error) {
	if !refresh && corpus.Exists(corpusPath) {
		games, err := corpus.Load(corpusPath)
		if err != nil {
			return nil, fmt.Errorf("loading corpus %s: %w", corpusPath, err)
		}
		log.Printf("✓ Loaded %d games from %s", len(games), corpusPath)
		return games, nil
	}

	client := chesscom.NewClient()
	if apiBase != "" {
		client = chesscom.New(apiBase)
	}

	var redisCache *cache.RedisCache
	if url := os.Getenv("REDIS_URL"); url != "" {
		var err error
		redisCache, err = cache.NewRedisCache(url)
		if err != nil {
			log.Printf("⚠️  Redis unavailable, fetching without archive cache: %v", err)
			redisCache = nil
		} else {
			defer redisCache.Close()
		}
	}

	collector := chesscom.NewCollector(client, redisCache)
	games, err := collector.Collect(ctx, roster, window)
	if err != nil {
		return nil, err
	}

	if err := corpus.Save(corpusPath, games); err != nil {
		log.Printf("⚠️  Failed to save corpus %s: %v", corpusPath, err)
	} else {
		log.Printf("✓ Saved %d games to %s", len(games), corpusPath)
	}
	return games, nil
}

// persist stores the collected games and re-runs the detector through the
// scan service so findings land in Postgres as well.
func persist(ctx context.Context, dsn string, roster []string, games []chesscom.Game, apiBase string) error {
	db, err := store.NewDatabase(dsn)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	if err := db.SeedRoster(roster); err != nil {
		return fmt.Errorf("seeding roster: %w", err)
	}

	ingester := chesscom.NewIngesterWithBaseURL(db, nil, apiBase)
	result, err := ingester.IngestGames(ctx, games)
	if err != nil {
		return fmt.Errorf("ingesting games: %w", err)
	}
	log.Printf("✓ Persisted games: %d inserted, %d duplicates", result.Inserted, result.Duplicates)

	scanner := service.NewScanService(db, nil, nil)
	summary, err := scanner.AnalyzeAll(ctx)
	if err != nil {
		return fmt.Errorf("analyzing games: %w", err)
	}
	log.Printf("✓ Persisted findings: %d games analyzed, %d findings", summary.Analyzed, summary.Findings)
	return nil
}
