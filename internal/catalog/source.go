package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
)

// ErrLoadFailure is the single failure kind for fetching the game list.
// Transport errors, non-success statuses and malformed bodies all wrap it.
var ErrLoadFailure = errors.New("load failure")

// Source fetches the full game list
type Source interface {
	Fetch(ctx context.Context) ([]Game, error)
}

// HTTPSource fetches the game list with a GET request
type HTTPSource struct {
	URL    string
	Client *http.Client // http.DefaultClient when nil
}

// Fetch implements Source
func (s HTTPSource) Fetch(ctx context.Context) ([]Game, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %w", ErrLoadFailure, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching %s: %w", ErrLoadFailure, s.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: fetching %s: unexpected status %d", ErrLoadFailure, s.URL, resp.StatusCode)
	}
	return DecodeGames(resp.Body)
}

// FileSource reads the game list from a local JSON file
type FileSource struct {
	Path string
}

// Fetch implements Source
func (s FileSource) Fetch(ctx context.Context) ([]Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailure, err)
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrLoadFailure, s.Path, err)
	}
	defer f.Close()
	return DecodeGames(f)
}

// DecodeGames parses a JSON array of game records. A body that is not an
// array fails as a whole. Individual records that are unusable (missing id,
// missing or unknown category, repeated id) are dropped and logged.
func DecodeGames(r io.Reader) ([]Game, error) {
	var raw []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: parsing games: %w", ErrLoadFailure, err)
	}

	games := make([]Game, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for i, rec := range raw {
		var g Game
		if err := json.Unmarshal(rec, &g); err != nil {
			log.Printf("DecodeGames: skipping record %d: %v", i, err)
			continue
		}
		if g.ID == "" {
			log.Printf("DecodeGames: skipping record %d: missing id", i)
			continue
		}
		if g.Category == CategoryAll {
			log.Printf("DecodeGames: skipping record %d: missing category id=%s", i, g.ID)
			continue
		}
		if seen[g.ID] {
			log.Printf("DecodeGames: skipping record %d: duplicate id=%s", i, g.ID)
			continue
		}
		seen[g.ID] = true
		games = append(games, g)
	}
	return games, nil
}
