// Package snapshot persists the last observed star count of every project.
// The trending computation reads it as its baseline and then overwrites it.
package snapshot

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/sqmw/repofolio/internal/project"
	"github.com/sqmw/repofolio/internal/storage"
)

// DefaultKey is the storage key holding the snapshot map.
const DefaultKey = "stars_snapshot"

// Store reads and writes the name -> stars mapping.
type Store struct {
	store  storage.Store
	key    string
	logger *zap.Logger
}

// New returns a Store persisting under DefaultKey.
func New(store storage.Store, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{store: store, key: DefaultKey, logger: logger}
}

// Load returns the persisted mapping. Missing, unreadable or malformed data
// yields an empty, non-nil map.
func (s *Store) Load() map[string]int {
	raw, ok, err := s.store.Get(s.key)
	if err != nil {
		s.logger.Debug("snapshot read failed", zap.Error(err))
		return map[string]int{}
	}
	if !ok {
		return map[string]int{}
	}
	counts, err := decode([]byte(raw))
	if err != nil {
		s.logger.Debug("snapshot ignored", zap.Error(err))
		return map[string]int{}
	}
	return counts
}

// Save overwrites the mapping.
func (s *Store) Save(counts map[string]int) error {
	if counts == nil {
		counts = map[string]int{}
	}
	payload, err := json.Marshal(counts)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := s.store.Set(s.key, string(payload)); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// FromProjects builds the mapping for a project batch.
func FromProjects(projects []project.Project) map[string]int {
	counts := make(map[string]int, len(projects))
	for _, p := range projects {
		counts[p.Name] = p.Stars
	}
	return counts
}

func decode(raw []byte) (map[string]int, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	var counts map[string]int
	if err := dec.Decode(&counts); err != nil {
		return nil, err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, errors.New("trailing data after snapshot")
	}
	if counts == nil {
		return nil, errors.New("snapshot is null")
	}
	for name, stars := range counts {
		if stars < 0 {
			return nil, fmt.Errorf("negative star count for %q", name)
		}
	}
	return counts, nil
}
