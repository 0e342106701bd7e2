package profile

import (
	"context"
	"sync"

	"github.com/jonathan/job-autofill/internal/types"
)

// MemoryStore keeps values in memory. It backs tests and single-run sessions
// that start from an imported document.
type MemoryStore struct {
	mu     sync.RWMutex
	values Values
}

// NewMemoryStore creates a store seeded with values.
func NewMemoryStore(values Values) *MemoryStore {
	s := &MemoryStore{values: make(Values, len(values))}
	for k, raw := range values {
		s.values[k] = raw
	}
	return s
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, keys ...string) (Values, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(Values, len(keys))
	for _, k := range keys {
		if raw, ok := s.values[k]; ok && types.IsProfileKey(k) {
			out[k] = raw
		}
	}
	return out, nil
}

// Set implements Store.
func (s *MemoryStore) Set(_ context.Context, values Values) error {
	if err := values.CheckKeys(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, raw := range values {
		s.values[k] = raw
	}
	return nil
}
