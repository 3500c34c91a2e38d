// Package matchlog persists analyzed matches as one JSON file per UTC day.
// Entries are deduplicated by match id so re-pulling a player's history
// never double-counts a match.
package matchlog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	json "github.com/goccy/go-json"

	"github.com/valbot/valstats/internal/model"
)

const filePrefix = "matches_"

// Entry is one logged match: when it was logged, the raw record for
// re-analysis, and the per-player computed stats at log time.
type Entry struct {
	LoggedAt string                    `json:"logged_at"`
	MatchID  string                    `json:"match_id"`
	Match    *model.MatchRecord        `json:"match"`
	Players  []*model.PlayerMatchStats `json:"players"`
}

// Store reads and writes daily match log files under a single directory.
type Store struct {
	dir string
	mu  sync.Mutex

	now func() time.Time // stubbed in tests
}

// Open ensures the log directory exists and returns a store over it.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("matchlog: create %s: %w", dir, err)
	}
	return &Store{dir: dir, now: time.Now}, nil
}

func (s *Store) fileFor(t time.Time) string {
	return filepath.Join(s.dir, filePrefix+t.UTC().Format("2006-01-02")+".json")
}

// Append logs one match under today's file. If any day's file already holds
// the match id, the call is a no-op and reports false.
func (s *Store) Append(e Entry) (added bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	known, err := s.knownIDs()
	if err != nil {
		return false, err
	}
	if known[e.MatchID] {
		return false, nil
	}

	now := s.now()
	if e.LoggedAt == "" {
		e.LoggedAt = now.UTC().Format(time.RFC3339)
	}
	path := s.fileFor(now)
	entries, err := readFile(path)
	if err != nil {
		return false, err
	}
	entries = append(entries, e)

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return false, fmt.Errorf("matchlog: encode: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return false, fmt.Errorf("matchlog: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return false, fmt.Errorf("matchlog: rename: %w", err)
	}
	return true, nil
}

// Has reports whether a match id is already logged, in any day's file.
func (s *Store) Has(matchID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	known, err := s.knownIDs()
	if err != nil {
		return false, err
	}
	return known[matchID], nil
}

// LoadDays loads the entries of the most recent n day files, oldest file
// first. n <= 0 loads everything.
func (s *Store) LoadDays(n int) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	files, err := s.logFiles()
	if err != nil {
		return nil, err
	}
	if n > 0 && len(files) > n {
		files = files[len(files)-n:]
	}
	var out []Entry
	for _, f := range files {
		entries, err := readFile(f)
		if err != nil {
			return nil, err
		}
		out = append(out, entries...)
	}
	return out, nil
}

// LoadMatches is LoadDays with only the raw match records extracted, for
// handing straight to the analytics layer.
func (s *Store) LoadMatches(days int) ([]*model.MatchRecord, error) {
	entries, err := s.LoadDays(days)
	if err != nil {
		return nil, err
	}
	out := make([]*model.MatchRecord, 0, len(entries))
	for _, e := range entries {
		if e.Match != nil {
			out = append(out, e.Match)
		}
	}
	return out, nil
}

// logFiles lists the store's day files sorted by name, which for the fixed
// date format is chronological.
func (s *Store) logFiles() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, filePrefix+"*.json"))
	if err != nil {
		return nil, fmt.Errorf("matchlog: list %s: %w", s.dir, err)
	}
	sort.Strings(matches)
	return matches, nil
}

func (s *Store) knownIDs() (map[string]bool, error) {
	files, err := s.logFiles()
	if err != nil {
		return nil, err
	}
	known := make(map[string]bool)
	for _, f := range files {
		entries, err := readFile(f)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			known[e.MatchID] = true
		}
	}
	return known, nil
}

func readFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("matchlog: read %s: %w", path, err)
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("matchlog: parse %s: %w", path, err)
	}
	return entries, nil
}
