package analysis

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetectQueenBlunder(t *testing.T) {
	tests := []struct {
		name  string
		moves []string
		want  *Finding
	}{
		{
			name:  "empty game",
			moves: nil,
			want:  nil,
		},
		{
			name:  "queen hung and never contested",
			moves: []string{"e4", "e5", "Qh5", "Qf6", "Qxf6", "a6"},
			want:  &Finding{Move: 3, Token: "Qxf6"},
		},
		{
			name:  "queen hung by white, black collects",
			moves: []string{"d4", "d5", "Qd3", "Qd6", "Nc3", "Qxd3", "a3"},
			want:  &Finding{Move: 3, Token: "Qxd3"},
		},
		{
			name:  "reciprocal trade is not a blunder",
			moves: []string{"d4", "d5", "Qd3", "Qd6", "Qxd6", "cxd6"},
			want:  nil,
		},
		{
			name:  "capture of something else on the queen file",
			moves: []string{"e4", "e5", "Qh5", "Nc6", "Qxf7"},
			want:  nil,
		},
		{
			name:  "counter-capture elsewhere leaves the loss unresolved",
			moves: []string{"d4", "d5", "Qd3", "Qd6", "Qxd5", "Qxd1"},
			want:  nil,
		},
		{
			name:  "unresolved capture at game end",
			moves: []string{"e4", "e5", "Qh5", "Qf6", "Qxf6"},
			want:  nil,
		},
		{
			name:  "pawn recapture of a non-queen square",
			moves: []string{"e4", "d5", "exd5", "Qxd5", "Nc3"},
			want:  nil,
		},
		{
			name:  "checks postpone the verdict until a quiet move",
			moves: []string{"e4", "e5", "Qh5", "Qf6", "Qxf6", "Bb4+", "c3", "a6"},
			want:  &Finding{Move: 3, Token: "Qxf6"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectQueenBlunder(tt.moves)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestDetectQueenBlunderTracksQueenMoves(t *testing.T) {
	// The white queen wanders before being captured; the tracked square
	// must follow it for the capture to register.
	moves := []string{"e4", "e5", "Qg4", "Nc6", "Qg5", "Nf6", "a3", "Nxg5", "b3", "a6"}
	got := DetectQueenBlunder(moves)
	require.Equal(t, &Finding{Move: 4, Token: "Nxg5"}, got)
}

func TestDetectQueenBlunderFreshStatePerGame(t *testing.T) {
	// Two scans of the same hung-queen game must agree; the replay model
	// is rebuilt per call.
	moves := []string{"e4", "e5", "Qh5", "Qf6", "Qxf6", "a6"}
	first := DetectQueenBlunder(moves)
	second := DetectQueenBlunder(moves)
	require.Equal(t, first, second)
	require.NotNil(t, first)
}

func TestFullMove(t *testing.T) {
	tests := []struct {
		index int
		want  int
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{3, 2},
		{4, 3},
		{9, 5},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, fullMove(tt.index))
	}
}
