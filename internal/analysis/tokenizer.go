// Package analysis turns raw PGN move text into half-move tokens and scans
// them for uncompensated queen losses ("Botez gambits").
package analysis

import (
	"regexp"
	"strings"
)

var (
	// Braced annotation spans ({[%clk 0:09:58.2]} and friends).
	annotationPattern = regexp.MustCompile(`\{.*?\}`)
	// Runs of two or more whitespace characters.
	whitespaceRun = regexp.MustCompile(`\s{2,}`)
	// "optional space, move number, dot, optional space" marks each move start.
	moveNumberPattern = regexp.MustCompile(`\s?\d+\.\s?`)
)

// Literal result markers appended to exported move text.
var resultMarkers = []string{"1-0", "0-1", "1/2-1/2"}

// MoveList extracts the ordered half-move tokens from a PGN export blob.
// The blob is expected to follow the chess.com export convention: a tag
// header block, a blank line, then the numbered moves with optional braced
// annotations and a trailing result marker. Malformed input degrades to an
// empty list rather than an error.
func MoveList(pgn string) []string {
	// Header and move text are separated by the first blank line.
	sections := strings.Split(pgn, "\n\n")
	if len(sections) < 2 {
		return nil
	}
	moves := sections[1]

	moves = annotationPattern.ReplaceAllString(moves, "")

	// Black's moves are numbered "1... e5"; collapse the continuation
	// marker so both colors use the same number-dot convention.
	moves = strings.ReplaceAll(moves, "...", ".")

	for _, marker := range resultMarkers {
		moves = strings.ReplaceAll(moves, marker, "")
	}

	moves = strings.TrimSpace(moves)
	moves = whitespaceRun.ReplaceAllString(moves, " ")

	tokens := moveNumberPattern.Split(moves, -1)
	if len(tokens) == 0 {
		return nil
	}

	// The text before the first move number always splits off as an
	// empty lead element.
	return tokens[1:]
}
