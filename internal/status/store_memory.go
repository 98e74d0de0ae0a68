package status

import (
	"context"
	"sync"

	"github.com/narteyr/flashcards/internal/model"
)

// MemoryStore keeps job records in a process-local map.
// Suitable for development/testing; not shared across processes.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]*Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]*Record)}
}

func (s *MemoryStore) Get(ctx context.Context, jobID string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.data[jobID]
	if !ok {
		return nil, nil
	}
	// Return a copy to prevent external modification
	cp := *rec
	cp.Payload = make(model.JSONMap, len(rec.Payload))
	for k, v := range rec.Payload {
		cp.Payload[k] = v
	}
	return &cp, nil
}

func (s *MemoryStore) Put(ctx context.Context, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *rec
	s.data[rec.JobID] = &cp
	return nil
}
