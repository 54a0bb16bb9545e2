package chesscom

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListArchives(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/player/vbechev/games/archives", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Write([]byte(`{"archives":[
			"https://api.chess.com/pub/player/vbechev/games/2021/03",
			"https://api.chess.com/pub/player/vbechev/games/2021/04"
		]}`))
	}))
	defer server.Close()

	client := New(server.URL)
	archives, err := client.ListArchives(context.Background(), "vbechev")
	require.NoError(t, err)
	require.Len(t, archives, 2)
	assert.Equal(t, "https://api.chess.com/pub/player/vbechev/games/2021/03", archives[0])
}

func TestListArchivesUnknownPlayer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := New(server.URL)
	archives, err := client.ListArchives(context.Background(), "no-such-player")
	require.NoError(t, err)
	assert.Empty(t, archives)
}

func TestListArchivesServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := New(server.URL)
	_, err := client.ListArchives(context.Background(), "vbechev")
	assert.Error(t, err)
}

func TestFetchArchive(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"games":[
			{"url":"https://www.chess.com/game/live/1","pgn":"...","end_time":1617000000,
			 "time_class":"blitz","rated":true,
			 "white":{"username":"vbechev","rating":1500,"result":"win"},
			 "black":{"username":"vaseka","rating":1480,"result":"resigned"}}
		]}`))
	}))
	defer server.Close()

	client := New(server.URL)
	games, err := client.FetchArchive(context.Background(), server.URL+"/player/vbechev/games/2021/03")
	require.NoError(t, err)
	require.Len(t, games, 1)

	game := games[0]
	assert.Equal(t, "https://www.chess.com/game/live/1", game.URL)
	assert.Equal(t, "vbechev", game.White.Username)
	assert.Equal(t, "vaseka", game.Black.Username)
	assert.Equal(t, "blitz", game.TimeClass)
	assert.True(t, game.Rated)
	assert.Equal(t, 2021, game.EndedAt().Year())
}
