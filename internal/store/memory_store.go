package store

import (
	"context"
	"sync"

	"github.com/quantum-forge/internal/types"
)

// MemoryStore keeps saves in process memory. Records are copied on the way
// in and out so callers never share a payload buffer with the store.
type MemoryStore struct {
	mu    sync.RWMutex
	saves map[string]types.SaveRecord
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{saves: make(map[string]types.SaveRecord)}
}

// SaveGame inserts or replaces a save
func (s *MemoryStore) SaveGame(ctx context.Context, record *types.SaveRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.saves[record.ID] = copyRecord(*record)
	return nil
}

// LoadGame retrieves a save by ID
func (s *MemoryStore) LoadGame(ctx context.Context, id string) (*types.SaveRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, exists := s.saves[id]
	if !exists {
		return nil, ErrSaveNotFound
	}
	out := copyRecord(record)
	return &out, nil
}

// DeleteGame removes a save
func (s *MemoryStore) DeleteGame(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.saves, id)
	return nil
}

func copyRecord(r types.SaveRecord) types.SaveRecord {
	r.Data = append([]byte(nil), r.Data...)
	return r
}
