package localstore

import (
	"context"
	"sync"

	"github.com/jdonszelmann/dfs/catalog"
)

// MemStore is an in-memory Store, used by tests. Grounded on the same
// in_memory pattern as globalstore.MemStore.
type MemStore struct {
	mu         sync.RWMutex
	direntries map[catalog.ID]catalog.DirEntry
}

func NewMemStore() *MemStore {
	return &MemStore{direntries: make(map[catalog.ID]catalog.DirEntry)}
}

func (s *MemStore) PutDirEntry(_ context.Context, id catalog.ID, entry catalog.DirEntry, overwrite bool) (PutStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !overwrite {
		if _, ok := s.direntries[id]; ok {
			return Exists, nil
		}
	}
	s.direntries[id] = entry
	return Ok, nil
}

func (s *MemStore) GetDirEntry(_ context.Context, id catalog.ID) (catalog.DirEntry, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.direntries[id]
	return e, ok, nil
}

func (s *MemStore) Close() error { return nil }

// Len reports how many DirEntries are currently stored, for test assertions
// that need to verify exact entry counts after an index run.
func (s *MemStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.direntries)
}

// All returns every stored DirEntry, for tests that verify parent chaining
// across a whole indexed tree.
func (s *MemStore) All() []catalog.DirEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]catalog.DirEntry, 0, len(s.direntries))
	for _, e := range s.direntries {
		out = append(out, e)
	}
	return out
}
