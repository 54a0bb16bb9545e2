package scanjob

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/veskob/botezscan/internal/ingest/chesscom"
)

const blunderPGN = `[Event "Live Chess"]
[Site "Chess.com"]

1. e4 {[%clk 0:02:58]} 1... e5 {[%clk 0:02:57]} 2. Qh5 {[%clk 0:02:55]} 2... Qf6 {[%clk 0:02:52]} 3. Qxf6 {[%clk 0:02:50]} 3... Nc6 {[%clk 0:02:44]} 1-0`

const quietPGN = `[Event "Live Chess"]
[Site "Chess.com"]

1. e4 {[%clk 0:02:58]} 1... e5 {[%clk 0:02:57]} 2. Nf3 {[%clk 0:02:55]} 2... Nc6 {[%clk 0:02:52]} 1/2-1/2`

func TestCountFindings(t *testing.T) {
	games := []chesscom.Game{
		{URL: "https://www.chess.com/game/live/1", PGN: blunderPGN},
		{URL: "https://www.chess.com/game/live/2", PGN: quietPGN},
	}

	assert.Equal(t, 1, countFindings(games))
	assert.Equal(t, 0, countFindings(nil))
}
