package globalstore

import (
	"context"
	"sync"

	"github.com/jdonszelmann/dfs/catalog"
)

// MemStore is an in-memory Store, used by tests and by front-ends that want
// an ephemeral global catalog. Grounded on the teacher's in_memory package
// (see _examples/SharedCode-sop/in_memory), which provides the same
// map-plus-mutex stand-in for the on-disk backends.
type MemStore struct {
	mu        sync.RWMutex
	peers     map[catalog.ID]catalog.Peer
	roots     map[catalog.ID]catalog.Root
	rootNames map[string]catalog.ID
}

// NewMemStore returns an empty in-memory Store.
func NewMemStore() *MemStore {
	return &MemStore{
		peers:     make(map[catalog.ID]catalog.Peer),
		roots:     make(map[catalog.ID]catalog.Root),
		rootNames: make(map[string]catalog.ID),
	}
}

func (s *MemStore) PutPeer(_ context.Context, id catalog.ID, peer catalog.Peer, overwrite bool) (PutStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !overwrite {
		if _, ok := s.peers[id]; ok {
			return Exists, nil
		}
	}
	s.peers[id] = peer
	return Ok, nil
}

func (s *MemStore) GetPeer(_ context.Context, id catalog.ID) (catalog.Peer, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.peers[id]
	return p, ok, nil
}

func (s *MemStore) GetAllPeers(_ context.Context) ([]catalog.Peer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]catalog.Peer, 0, len(s.peers))
	for _, p := range s.peers {
		out = append(out, p)
	}
	return out, nil
}

func (s *MemStore) PutRoot(_ context.Context, id catalog.ID, root catalog.Root, overwrite bool) (PutStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !overwrite {
		_, hasID := s.roots[id]
		_, hasName := s.rootNames[root.Name]
		if hasID || hasName {
			return Exists, nil
		}
	}
	s.roots[id] = root
	s.rootNames[root.Name] = id
	return Ok, nil
}

func (s *MemStore) GetRoot(_ context.Context, id catalog.ID) (catalog.Root, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.roots[id]
	return r, ok, nil
}

func (s *MemStore) GetRootByName(_ context.Context, name string) (catalog.Root, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.rootNames[name]
	if !ok {
		return catalog.Root{}, false, nil
	}
	r, ok := s.roots[id]
	return r, ok, nil
}

func (s *MemStore) GetAllRoots(_ context.Context) ([]catalog.Root, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]catalog.Root, 0, len(s.roots))
	for _, r := range s.roots {
		out = append(out, r)
	}
	return out, nil
}

func (s *MemStore) Close() error { return nil }
