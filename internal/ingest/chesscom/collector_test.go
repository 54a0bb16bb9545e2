package chesscom

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newArchiveServer serves a two-player fixture: vbechev and vaseka share one
// game (it appears in both archives), vbechev also played an outsider, and
// vbechev has a second archive month outside any reasonable window.
func newArchiveServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	var server *httptest.Server

	gameJSON := func(id int, endTime int64, white, black string) string {
		return fmt.Sprintf(`{"url":"https://www.chess.com/game/live/%d","pgn":"","end_time":%d,
			"time_class":"blitz","rated":true,
			"white":{"username":%q},"black":{"username":%q}}`, id, endTime, white, black)
	}

	mux.HandleFunc("/player/vbechev/games/archives", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"archives":["%s/player/vbechev/games/2021/03","%s/player/vbechev/games/2020/01"]}`,
			server.URL, server.URL)
	})
	mux.HandleFunc("/player/vaseka/games/archives", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"archives":["%s/player/vaseka/games/2021/03"]}`, server.URL)
	})
	mux.HandleFunc("/player/ghost/games/archives", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	mux.HandleFunc("/player/vbechev/games/2021/03", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"games":[%s,%s]}`,
			gameJSON(1, 2000, "vbechev", "vaseka"),
			gameJSON(2, 1000, "vbechev", "outsider"))
	})
	mux.HandleFunc("/player/vbechev/games/2020/01", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"games":[%s]}`, gameJSON(3, 500, "vbechev", "vaseka"))
	})
	mux.HandleFunc("/player/vaseka/games/2021/03", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"games":[%s,%s]}`,
			gameJSON(1, 2000, "vbechev", "vaseka"),
			gameJSON(4, 1500, "vaseka", "vbechev"))
	})

	server = httptest.NewServer(mux)
	return server
}

func TestCollectRosterWindow(t *testing.T) {
	server := newArchiveServer(t)
	defer server.Close()

	collector := NewCollector(New(server.URL), nil)
	window := MonthWindow{From: "2021/03", To: "2021/07"}

	games, err := collector.Collect(context.Background(), []string{"vbechev", "vaseka"}, window)
	require.NoError(t, err)

	// Game 2 has an off-roster opponent, game 3 is outside the window,
	// game 1 shows up in both archives but once in the result.
	require.Len(t, games, 2)
	assert.Equal(t, "https://www.chess.com/game/live/4", games[0].URL)
	assert.Equal(t, "https://www.chess.com/game/live/1", games[1].URL)
}

func TestCollectOrdersByEndTime(t *testing.T) {
	server := newArchiveServer(t)
	defer server.Close()

	collector := NewCollector(New(server.URL), nil)
	games, err := collector.Collect(context.Background(), []string{"vbechev", "vaseka"}, MonthWindow{})
	require.NoError(t, err)

	require.NotEmpty(t, games)
	for i := 1; i < len(games); i++ {
		assert.LessOrEqual(t, games[i-1].EndTime, games[i].EndTime)
	}
}

func TestCollectSkipsUnknownPlayer(t *testing.T) {
	server := newArchiveServer(t)
	defer server.Close()

	collector := NewCollector(New(server.URL), nil)
	window := MonthWindow{From: "2021/03", To: "2021/07"}

	// The 404 on ghost's archives must not sink the other players.
	games, err := collector.Collect(context.Background(), []string{"vbechev", "vaseka", "ghost"}, window)
	require.NoError(t, err)
	assert.Len(t, games, 2)
}

func TestDedupeByURL(t *testing.T) {
	games := []Game{
		{URL: "a", EndTime: 1},
		{URL: "b", EndTime: 2},
		{URL: "a", EndTime: 1},
	}

	unique := dedupeByURL(games)
	require.Len(t, unique, 2)
	assert.Equal(t, "a", unique[0].URL)
	assert.Equal(t, "b", unique[1].URL)
}

// fakeCache is an in-memory stand-in for the Redis-backed cache.
type fakeCache struct {
	mu      sync.Mutex
	entries map[string]string
	seen    map[string]bool
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]string), seen: make(map[string]bool)}
}

func (f *fakeCache) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	value, ok := f.entries[key]
	if !ok {
		return "", errors.New("cache miss")
	}
	return value, nil
}

func (f *fakeCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch v := value.(type) {
	case string:
		f.entries[key] = v
	case []byte:
		f.entries[key] = string(v)
	}
	return nil
}

func (f *fakeCache) SeenURL(_ context.Context, url string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen[url], nil
}

func (f *fakeCache) MarkSeen(_ context.Context, urls ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, url := range urls {
		f.seen[url] = true
	}
	return nil
}

func TestCollectSkipsSeenURLs(t *testing.T) {
	server := newArchiveServer(t)
	defer server.Close()

	fc := newFakeCache()
	require.NoError(t, fc.MarkSeen(context.Background(), "https://www.chess.com/game/live/1"))

	collector := &Collector{client: New(server.URL), cache: fc}
	window := MonthWindow{From: "2021/03", To: "2021/07"}

	games, err := collector.Collect(context.Background(), []string{"vbechev", "vaseka"}, window)
	require.NoError(t, err)

	// Game 1 was ingested on a previous run; only game 4 is new.
	require.Len(t, games, 1)
	assert.Equal(t, "https://www.chess.com/game/live/4", games[0].URL)
}

func TestCollectorMarkSeen(t *testing.T) {
	fc := newFakeCache()
	collector := &Collector{cache: fc}

	require.NoError(t, collector.MarkSeen(context.Background(), "a", "b"))

	seen, err := fc.SeenURL(context.Background(), "a")
	require.NoError(t, err)
	assert.True(t, seen)

	// Without a cache the seen set is simply disabled.
	bare := &Collector{}
	require.NoError(t, bare.MarkSeen(context.Background(), "a"))
}

func TestCollectStampsArchiveMonth(t *testing.T) {
	server := newArchiveServer(t)
	defer server.Close()

	collector := NewCollector(New(server.URL), nil)
	games, err := collector.Collect(context.Background(), []string{"vbechev", "vaseka"}, MonthWindow{})
	require.NoError(t, err)

	require.NotEmpty(t, games)
	for _, game := range games {
		assert.Regexp(t, `^\d{4}/\d{2}$`, game.ArchiveMonth)
	}
}

func TestFetchMonthServedFromCache(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		fmt.Fprint(w, `{"games":[{"url":"https://www.chess.com/game/live/9","end_time":100,
			"white":{"username":"vbechev"},"black":{"username":"vaseka"}}]}`)
	}))
	defer server.Close()

	collector := &Collector{client: New(server.URL), cache: newFakeCache()}
	archiveURL := server.URL + "/player/vbechev/games/2021/03"

	first, err := collector.fetchMonth(context.Background(), archiveURL, "2021/03")
	require.NoError(t, err)
	second, err := collector.fetchMonth(context.Background(), archiveURL, "2021/03")
	require.NoError(t, err)

	// 2021/03 is long finished, so the second read never hits the API.
	assert.Equal(t, 1, hits)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].URL, second[0].URL)
	assert.Equal(t, "2021/03", second[0].ArchiveMonth)
}
