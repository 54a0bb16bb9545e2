package analysis

// Finding reports an uncompensated queen loss in a single game.
type Finding struct {
	Move  int    `json:"move"`  // 1-based full-move number of the capture
	Token string `json:"token"` // the capturing move as written
}

type color string

const (
	white color = "white"
	black color = "black"
)

func (c color) other() color {
	if c == white {
		return black
	}
	return white
}

const (
	whiteQueenHome = "d1"
	blackQueenHome = "d8"
)

// captureStatus distinguishes "no queen has fallen yet" from "a queen fell
// and the exchange is still unresolved". The zero value is the former.
type captureStatus struct {
	pending bool
	move    int
	token   string
}

// replayState is the minimal positional model the detector maintains while
// walking a game: one tracked square per queen plus the side to move. A
// second queen appearing through promotion is not modeled; its moves simply
// overwrite the tracked square.
type replayState struct {
	queens map[color]string
	toMove color
	status captureStatus
}

func newReplayState() *replayState {
	return &replayState{
		queens: map[color]string{white: whiteQueenHome, black: blackQueenHome},
		toMove: white,
	}
}

// DetectQueenBlunder replays the token sequence against a fresh queen-square
// model and returns the first uncompensated queen loss, or nil. A queen
// trade taken right back is not a loss, and a capture left unresolved when
// the game ends is not reported.
func DetectQueenBlunder(moves []string) *Finding {
	state := newReplayState()
	for i, token := range moves {
		if finding, done := state.step(i, token); done {
			return finding
		}
	}
	return nil
}

// step advances the model by one ply. It returns done=true when the scan
// can stop early: either a finding is confirmed or a reciprocal queen trade
// rules one out.
func (s *replayState) step(index int, token string) (*Finding, bool) {
	hm := parseHalfMove(token)

	// A quiet move after a queen fell proves the losing side never
	// contested the exchange.
	if s.status.pending && !hm.isCapture && !hm.isCheck {
		return &Finding{Move: s.status.move, Token: s.status.token}, true
	}

	opponent := s.toMove.other()
	if hm.isCapture && hm.dest != "" && hm.dest == s.queens[opponent] {
		if s.status.pending {
			// The second queen fell right back: an even trade.
			return nil, true
		}
		s.status = captureStatus{pending: true, move: fullMove(index), token: token}
	}

	if hm.piece == "Q" && hm.dest != "" {
		s.queens[s.toMove] = hm.dest
	}

	s.toMove = opponent
	return nil, false
}

// fullMove converts a 0-based ply index into its 1-based full-move number:
// plies 0 and 1 are move 1, plies 2 and 3 are move 2, and so on.
func fullMove(index int) int {
	return (index + 2) / 2
}
