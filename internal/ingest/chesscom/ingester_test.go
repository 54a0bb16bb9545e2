package chesscom

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToStoreGameUsesStampedArchive(t *testing.T) {
	// Ended seconds into April but fetched from the March archive: the
	// game files under March.
	endTime := time.Date(2021, time.April, 1, 0, 0, 30, 0, time.UTC)
	game := Game{
		URL:          "https://www.chess.com/game/live/1",
		EndTime:      endTime.Unix(),
		TimeClass:    "blitz",
		Rated:        true,
		White:        PlayerSlot{Username: "vbechev"},
		Black:        PlayerSlot{Username: "vaseka"},
		ArchiveMonth: "2021/03",
	}

	stored := ToStoreGame(game)
	assert.Equal(t, "2021/03", stored.Archive)
	assert.Equal(t, "vbechev", stored.White)
	assert.Equal(t, "vaseka", stored.Black)
	require.True(t, stored.TimeClass.Valid)
	assert.Equal(t, "blitz", stored.TimeClass.String)
	require.True(t, stored.EndTime.Valid)
	assert.Equal(t, endTime, stored.EndTime.Time)
}

func TestToStoreGameArchiveFallback(t *testing.T) {
	// Old corpus entries predate archive stamping; end_time fills in.
	game := Game{
		URL:     "https://www.chess.com/game/live/2",
		EndTime: time.Date(2021, time.May, 20, 12, 0, 0, 0, time.UTC).Unix(),
	}

	stored := ToStoreGame(game)
	assert.Equal(t, "2021/05", stored.Archive)
}
