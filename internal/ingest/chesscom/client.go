package chesscom

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

const (
	// BaseURL is the root of the chess.com published-data API
	BaseURL = "https://api.chess.com/pub"

	// chess.com rejects requests without an identifying User-Agent
	userAgent = "botezscan/1.0 (github.com/veskob/botezscan)"
)

// Client handles chess.com published-data API requests
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a new chess.com API client with a custom base URL
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = BaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// NewClient creates a new chess.com API client with default settings
func NewClient() *Client {
	return New(BaseURL)
}

// ListArchives fetches the monthly archive URLs for a player.
// An unknown player (404) yields an empty list rather than an error.
func (c *Client) ListArchives(ctx context.Context, username string) ([]string, error) {
	url := fmt.Sprintf("%s/player/%s/games/archives", c.baseURL, username)

	body, status, err := c.fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		log.Printf("[chesscom] No archives for %s (404)", username)
		return nil, nil
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("archives for %s: unexpected status %d", username, status)
	}

	var archives Archives
	if err := json.Unmarshal(body, &archives); err != nil {
		return nil, fmt.Errorf("decoding archives for %s: %w", username, err)
	}

	return archives.Archives, nil
}

// FetchArchive fetches one monthly game batch by its full archive URL
func (c *Client) FetchArchive(ctx context.Context, archiveURL string) ([]Game, error) {
	body, status, err := c.fetch(ctx, archiveURL)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("archive %s: unexpected status %d", archiveURL, status)
	}

	var monthly MonthlyGames
	if err := json.Unmarshal(body, &monthly); err != nil {
		return nil, fmt.Errorf("decoding archive %s: %w", archiveURL, err)
	}

	return monthly.Games, nil
}

// fetch makes an HTTP GET request and returns the raw body and status
func (c *Client) fetch(ctx context.Context, url string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("requesting %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("reading response from %s: %w", url, err)
	}

	return body, resp.StatusCode, nil
}
