// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history persists a small record of past runs so `winauto history`
// can show what ran and how it ended. The execution engine itself retains
// nothing; the CLI layer appends records after each run.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Record is one finished execution as stored on disk.
type Record struct {
	ID        string    `json:"id"`
	Script    string    `json:"script"`
	Args      []string  `json:"args,omitempty"`
	Status    string    `json:"status"`
	Code      int       `json:"code"`
	ElapsedMS int64     `json:"elapsed_ms"`
	Backend   string    `json:"backend"`
	StartedAt time.Time `json:"started_at"`
}

// Store reads and writes run records under a base directory. Each run is its
// own file named by timestamp and ID so lexicographic order is time order.
type Store struct {
	baseDir string
}

// NewStore creates a store rooted at baseDir. The directory is created on
// first append, not here.
func NewStore(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// Append assigns the record an ID if it has none and writes it out.
func (s *Store) Append(rec Record) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.StartedAt.IsZero() {
		rec.StartedAt = time.Now()
	}
	dir := filepath.Join(s.baseDir, "runs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating history dir: %w", err)
	}
	name := fmt.Sprintf("%s-%s.json", rec.StartedAt.UTC().Format("20060102T150405.000000000"), rec.ID)
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding run record: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return fmt.Errorf("writing run record: %w", err)
	}
	return nil
}

// Recent returns up to n records, newest first. A missing history directory
// is an empty history.
func (s *Store) Recent(n int) ([]Record, error) {
	dir := filepath.Join(s.baseDir, "runs")
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading history dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".json" {
			names = append(names, e.Name())
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	if n > 0 && len(names) > n {
		names = names[:n]
	}

	records := make([]Record, 0, len(names))
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("reading run record %s: %w", name, err)
		}
		var rec Record
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("decoding run record %s: %w", name, err)
		}
		records = append(records, rec)
	}
	return records, nil
}
