package analysis

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseHalfMove(t *testing.T) {
	tests := []struct {
		token string
		want  halfMove
	}{
		{"e4", halfMove{dest: "e4"}},
		{"exd5", halfMove{dest: "d5", isCapture: true}},
		{"Nf3+", halfMove{piece: "N", dest: "f3", isCheck: true}},
		{"Qxd8", halfMove{piece: "Q", dest: "d8", isCapture: true}},
		{"Qxd5+", halfMove{piece: "Q", dest: "d5", isCapture: true, isCheck: true}},
		{"Qh4e1", halfMove{piece: "Q", dest: "e1"}},
		{"Ndxf3", halfMove{piece: "N", dest: "f3", isCapture: true}},
		{"Qxf7#", halfMove{piece: "Q", dest: "f7", isCapture: true, isCheck: true}},
		{"O-O", halfMove{}},
		{"O-O-O", halfMove{}},
		// Promotion is outside the model; no destination square parses.
		{"e8=Q", halfMove{piece: "", dest: ""}},
		{"", halfMove{}},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			require.Equal(t, tt.want, parseHalfMove(tt.token))
		})
	}
}
