package analysis

import "strings"

// halfMove is the structured view of one algebraic-notation token. The
// detector works off these fields instead of raw substring checks.
type halfMove struct {
	piece     string // leading piece letter; empty for pawn moves and castling
	dest      string // destination square, e.g. "d5"; empty when none parses
	isCapture bool
	isCheck   bool // check or mate suffix
}

// parseHalfMove splits a token like "Qxd8+" into its piece, destination,
// capture and check parts. Tokens that do not look like a piece move (for
// example castling) come back with empty piece and destination, which is
// all the detector needs to know about them.
func parseHalfMove(token string) halfMove {
	hm := halfMove{
		isCapture: strings.Contains(token, "x"),
		isCheck:   strings.ContainsAny(token, "+#"),
	}

	if token != "" && token[0] >= 'A' && token[0] <= 'Z' && token[0] != 'O' {
		hm.piece = string(token[0])
	}

	// Strip the check suffix and everything up to the capture marker;
	// the destination square is the trailing file-rank pair.
	rest := strings.TrimRight(token, "+#")
	if i := strings.Index(rest, "x"); i >= 0 {
		rest = rest[i+1:]
	}
	if len(rest) >= 2 {
		square := rest[len(rest)-2:]
		if square[0] >= 'a' && square[0] <= 'h' && square[1] >= '1' && square[1] <= '8' {
			hm.dest = square
		}
	}

	return hm
}
