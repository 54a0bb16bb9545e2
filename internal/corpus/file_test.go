package corpus

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/veskob/botezscan/internal/ingest/chesscom"
)

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "games.json")
	require.False(t, Exists(path))

	games := []chesscom.Game{
		{
			URL:       "https://www.chess.com/game/live/1111",
			PGN:       "[Event \"Live Chess\"]\n\n1. e4 {[%clk 0:09:58]} 1... e5 {[%clk 0:09:55]} 1-0\n",
			EndTime:   1617224400,
			TimeClass: "blitz",
			Rated:     true,
			White:     chesscom.PlayerSlot{Username: "vaseka", Rating: 1450, Result: "win"},
			Black:     chesscom.PlayerSlot{Username: "DK97", Rating: 1390, Result: "resigned"},
		},
	}

	require.NoError(t, Save(path, games))
	require.True(t, Exists(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, games, loaded)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}

func TestSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "games.json")

	require.NoError(t, Save(path, []chesscom.Game{{URL: "a"}}))
	require.NoError(t, Save(path, []chesscom.Game{{URL: "b"}, {URL: "c"}}))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	require.Equal(t, "b", loaded[0].URL)
}
