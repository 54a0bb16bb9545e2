package analysis

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const samplePGN = `[Event "Live Chess"]
[Site "Chess.com"]
[Date "2021.04.12"]
[White "vaseka"]
[Black "DK97"]
[Result "1-0"]

1. e4 {[%clk 0:09:58.1]} 1... e5 {[%clk 0:09:55.3]} 2. Qh5 {[%clk 0:09:51]} 2... Nc6 {[%clk 0:09:47.8]} 3. Qxf7+ {[%clk 0:09:50.2]} 3... Kxf7 {[%clk 0:09:40]} 1-0
`

func TestMoveList(t *testing.T) {
	tokens := MoveList(samplePGN)
	require.Equal(t, []string{"e4", "e5", "Qh5", "Nc6", "Qxf7+", "Kxf7"}, tokens)
}

func TestMoveListDraw(t *testing.T) {
	pgn := "[Event \"Live Chess\"]\n\n1. d4 {[%clk 0:02:59]} 1... d5 {[%clk 0:02:58]} 2. Qd3 {[%clk 0:02:55]} 2... Qd6 {[%clk 0:02:51]} 1/2-1/2\n"
	tokens := MoveList(pgn)
	require.Equal(t, []string{"d4", "d5", "Qd3", "Qd6"}, tokens)
}

func TestMoveListOddFinalToken(t *testing.T) {
	// Black resigned after white's third move; the last pair is short.
	pgn := "[Event \"Live Chess\"]\n\n1. e4 {[%clk 0:09:58]} 1... e5 {[%clk 0:09:55]} 2. Nf3 {[%clk 0:09:52]} 0-1\n"
	tokens := MoveList(pgn)
	require.Equal(t, []string{"e4", "e5", "Nf3"}, tokens)
}

func TestMoveListEmptyMoveSection(t *testing.T) {
	require.Empty(t, MoveList("[Event \"Live Chess\"]\n\n"))
}

func TestMoveListNoBlankLine(t *testing.T) {
	require.Empty(t, MoveList("[Event \"Live Chess\"]"))
}

func TestMoveListNoMoveNumbers(t *testing.T) {
	// Text with no move markers at all degrades to an empty sequence.
	require.Empty(t, MoveList("[Event \"Live Chess\"]\n\nabandoned before start\n"))
}

func TestMoveListTokensAreClean(t *testing.T) {
	for _, token := range MoveList(samplePGN) {
		require.NotEmpty(t, token)
		require.NotContains(t, token, "{")
		require.NotContains(t, token, "}")
		require.NotContains(t, token, ".")
		for _, marker := range resultMarkers {
			require.NotContains(t, token, marker)
		}
	}
}
