package persistence

import (
	"context"
	"sync"

	"asset-selector-be/internal/entity"
)

// MemoryStore keeps the snapshot in memory. Tests set LoadErr/SaveErr to
// simulate an unavailable tier.
type MemoryStore struct {
	mu      sync.Mutex
	name    string
	snap    *entity.RecencySnapshot
	loads   int
	saves   int
	LoadErr error
	SaveErr error
}

func NewMemoryStore(name string) *MemoryStore {
	return &MemoryStore{name: name}
}

func (s *MemoryStore) Name() string { return s.name }

func (s *MemoryStore) Load(ctx context.Context) (*entity.RecencySnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loads++
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	return clone(s.snap), nil
}

func (s *MemoryStore) Save(ctx context.Context, snap *entity.RecencySnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.snap = clone(snap)
	return nil
}

// Stored returns a copy of the last saved snapshot.
func (s *MemoryStore) Stored() *entity.RecencySnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.snap)
}

func (s *MemoryStore) Loads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loads
}

func (s *MemoryStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}
