package chesscom

import (
	"context"
	"encoding/json"
	"log"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/veskob/botezscan/internal/cache"
)

// fetchConcurrency bounds how many players are collected at once; the
// published-data API rate-limits aggressive parallel clients.
const fetchConcurrency = 4

// Finished months never change, so their payloads can live in Redis a while.
const archiveCacheTTL = 30 * 24 * time.Hour

// Cache is what the collector needs from Redis: monthly payload caching
// plus the cross-run seen-URL set.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	SeenURL(ctx context.Context, url string) (bool, error)
	MarkSeen(ctx context.Context, urls ...string) error
}

// Collector fetches, filters and deduplicates roster games without touching
// persistent storage.
type Collector struct {
	client *Client
	cache  Cache // optional; nil disables archive caching and seen-URL skips
}

// NewCollector creates a collector over an API client
func NewCollector(client *Client, redisCache *cache.RedisCache) *Collector {
	c := &Collector{client: client}
	if redisCache != nil {
		c.cache = redisCache
	}
	return c
}

// MarkSeen records game URLs in the cross-run seen set. A no-op without
// a cache.
func (c *Collector) MarkSeen(ctx context.Context, urls ...string) error {
	if c.cache == nil || len(urls) == 0 {
		return nil
	}
	return c.cache.MarkSeen(ctx, urls...)
}

// Collect gathers every game inside the window where both participants are
// on the roster, deduplicated by URL and ordered by end time. Per-player
// failures are logged and skipped so one broken account cannot sink the run.
func (c *Collector) Collect(ctx context.Context, roster []string, window MonthWindow) ([]Game, error) {
	rosterSet := make(map[string]struct{}, len(roster))
	for _, username := range roster {
		rosterSet[username] = struct{}{}
	}

	var (
		mu    sync.Mutex
		games []Game
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)

	for _, username := range roster {
		username := username
		g.Go(func() error {
			collected, err := c.collectPlayer(gctx, username, window, rosterSet)
			if err != nil {
				log.Printf("[collect] Skipping %s: %v", username, err)
				return nil
			}
			mu.Lock()
			games = append(games, collected...)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	games = dedupeByURL(games)
	sort.Slice(games, func(i, j int) bool { return games[i].EndTime < games[j].EndTime })

	log.Printf("[collect] ✓ %d roster games in %s..%s", len(games), window.From, window.To)
	return games, nil
}

// collectPlayer walks one player's archive list and keeps the roster-only
// pairings inside the window.
func (c *Collector) collectPlayer(ctx context.Context, username string, window MonthWindow, rosterSet map[string]struct{}) ([]Game, error) {
	archives, err := c.client.ListArchives(ctx, username)
	if err != nil {
		return nil, err
	}

	var kept []Game
	for _, archiveURL := range archives {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		month := ArchiveMonth(archiveURL)
		if !window.Contains(month) {
			continue
		}

		batch, err := c.fetchMonth(ctx, archiveURL, month)
		if err != nil {
			log.Printf("[collect] Error fetching %s: %v", archiveURL, err)
			continue
		}

		for _, game := range batch {
			if _, ok := rosterSet[game.White.Username]; !ok {
				continue
			}
			if _, ok := rosterSet[game.Black.Username]; !ok {
				continue
			}
			if c.seen(ctx, game.URL) {
				continue
			}
			kept = append(kept, game)
		}
	}

	return kept, nil
}

// seen consults the cross-run URL set; a cache error counts as unseen so
// a Redis hiccup never drops a game.
func (c *Collector) seen(ctx context.Context, url string) bool {
	if c.cache == nil {
		return false
	}
	member, err := c.cache.SeenURL(ctx, url)
	if err != nil {
		return false
	}
	return member
}

// fetchMonth returns one monthly batch, serving finished months from Redis
// when possible. The current month is still being written to and is always
// refetched.
func (c *Collector) fetchMonth(ctx context.Context, archiveURL, month string) ([]Game, error) {
	cacheable := c.cache != nil && month < CurrentMonth(time.Now())
	cacheKey := "chesscom:archive:" + archiveURL

	if cacheable {
		if raw, err := c.cache.Get(ctx, cacheKey); err == nil {
			var games []Game
			if err := json.Unmarshal([]byte(raw), &games); err == nil {
				return stampArchive(games, month), nil
			}
			// Fall through and refetch on a corrupt cache entry
		}
	}

	games, err := c.client.FetchArchive(ctx, archiveURL)
	if err != nil {
		return nil, err
	}

	if cacheable {
		if raw, err := json.Marshal(games); err == nil {
			if err := c.cache.Set(ctx, cacheKey, raw, archiveCacheTTL); err != nil {
				log.Printf("[collect] Cache write failed for %s: %v", month, err)
			}
		}
	}

	return stampArchive(games, month), nil
}

// stampArchive records which archive a batch came from. Deriving the month
// from end_time alone files a game ending near a UTC month boundary under
// the neighboring month.
func stampArchive(games []Game, month string) []Game {
	for i := range games {
		games[i].ArchiveMonth = month
	}
	return games
}

// dedupeByURL drops repeat fetches of the same game. Roster-vs-roster games
// show up once in each participant's archive.
func dedupeByURL(games []Game) []Game {
	seen := make(map[string]struct{}, len(games))
	unique := games[:0:0]
	for _, game := range games {
		if _, ok := seen[game.URL]; ok {
			continue
		}
		seen[game.URL] = struct{}{}
		unique = append(unique, game)
	}
	return unique
}
