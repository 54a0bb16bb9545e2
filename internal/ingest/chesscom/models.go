package chesscom

import "time"

// Archives is the payload of /player/{username}/games/archives: a list of
// monthly archive URLs, oldest first.
type Archives struct {
	Archives []string `json:"archives"`
}

// MonthlyGames is one monthly export batch.
type MonthlyGames struct {
	Games []Game `json:"games"`
}

// PlayerSlot identifies one side of an exported game.
type PlayerSlot struct {
	Username string `json:"username"`
	Rating   int    `json:"rating"`
	Result   string `json:"result"`
}

// Game is one exported game record. URL is the stable unique identifier.
type Game struct {
	URL       string     `json:"url"`
	PGN       string     `json:"pgn"`
	EndTime   int64      `json:"end_time"`
	TimeClass string     `json:"time_class"`
	Rated     bool       `json:"rated"`
	White     PlayerSlot `json:"white"`
	Black     PlayerSlot `json:"black"`

	// ArchiveMonth is the "YYYY/MM" archive the game was fetched from.
	// Not part of the API payload; the collector stamps it, and it
	// round-trips through the corpus file.
	ArchiveMonth string `json:"archive_month,omitempty"`
}

// EndedAt converts the epoch end_time into a time.Time.
func (g Game) EndedAt() time.Time {
	return time.Unix(g.EndTime, 0).UTC()
}
