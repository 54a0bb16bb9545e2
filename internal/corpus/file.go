// Package corpus persists the raw collected game list as a JSON export
// file, so repeat scans can run without touching the network.
package corpus

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/veskob/botezscan/internal/ingest/chesscom"
)

// DefaultPath is the export file the batch scanner reads and writes
const DefaultPath = "games.json"

// Exists reports whether an export file is present at path
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Load reads a previously saved game corpus
func Load(path string) ([]chesscom.Game, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading corpus %s: %w", path, err)
	}

	var games []chesscom.Game
	if err := json.Unmarshal(data, &games); err != nil {
		return nil, fmt.Errorf("decoding corpus %s: %w", path, err)
	}

	return games, nil
}

// Save writes the game corpus atomically: a temp file in the same
// directory is renamed over the target.
func Save(path string, games []chesscom.Game) error {
	data, err := json.Marshal(games)
	if err != nil {
		return fmt.Errorf("encoding corpus: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".corpus-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing corpus: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing corpus %s: %w", path, err)
	}

	return nil
}
