// Package memory implements the word repository in process memory. It backs
// the local profile and tests; nothing survives a restart. Batches apply
// under one lock, so it shares the relational adapter's batch-atomic
// behavior rather than the blob adapter's read-modify-write race.
package memory

import (
	"context"
	"sync"
)

// Store is an in-memory word repository. Safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	words []string // newest first
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{words: []string{}}
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string {
	return "memory"
}

// Check implements ports.HealthChecker. Always healthy.
func (s *Store) Check(context.Context) error {
	return nil
}

// ListWords returns every stored word, most recently inserted first.
func (s *Store) ListWords(context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, len(s.words))
	copy(out, s.words)

	return out, nil
}

// AddWords inserts the words not already present and returns them in input
// order. Later batch entries count as more recent.
func (s *Store) AddWords(_ context.Context, words []string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	present := make(map[string]struct{}, len(s.words))
	for _, w := range s.words {
		present[w] = struct{}{}
	}

	added := make([]string, 0, len(words))
	for _, w := range words {
		if _, dup := present[w]; dup {
			continue
		}

		present[w] = struct{}{}
		added = append(added, w)
	}

	if len(added) > 0 {
		updated := make([]string, 0, len(added)+len(s.words))
		for i := len(added) - 1; i >= 0; i-- {
			updated = append(updated, added[i])
		}

		s.words = append(updated, s.words...)
	}

	return added, nil
}

// RemoveWords deletes each listed word if present and returns how many
// existed. Absent words are no-ops.
func (s *Store) RemoveWords(_ context.Context, words []string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	targets := make(map[string]struct{}, len(words))
	for _, w := range words {
		targets[w] = struct{}{}
	}

	kept := make([]string, 0, len(s.words))
	removed := 0

	for _, w := range s.words {
		if _, hit := targets[w]; hit {
			removed++
			continue
		}

		kept = append(kept, w)
	}

	s.words = kept

	return removed, nil
}
