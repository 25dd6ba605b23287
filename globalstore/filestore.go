package globalstore

import (
	"context"

	"github.com/jdonszelmann/dfs/catalog"
	"github.com/jdonszelmann/dfs/internal/kvfile"
)

// FileStore is the default Store backend: three kvfile.Tables (peers, roots,
// root_names) inside one kvfile.Database, grounded on the teacher's
// fs.hashmap/fs.registry hash-partitioned record files (see
// internal/kvfile). Database.Update/View stand in for the single
// transaction spec.md §4.A requires per operation.
type FileStore struct {
	db        *kvfile.Database
	peers     *kvfile.Table
	roots     *kvfile.Table
	rootNames *kvfile.Table
}

// OpenFileStore opens or creates an on-disk global store rooted at dir.
func OpenFileStore(dir string) (*FileStore, error) {
	db, err := kvfile.Open(dir)
	if err != nil {
		return nil, err
	}
	return &FileStore{
		db:        db,
		peers:     db.Table("peers"),
		roots:     db.Table("roots"),
		rootNames: db.Table("root_names"),
	}, nil
}

func (s *FileStore) PutPeer(_ context.Context, id catalog.ID, peer catalog.Peer, overwrite bool) (PutStatus, error) {
	status := Ok
	err := s.db.Update(func() error {
		if !overwrite {
			has, err := s.peers.Has(id[:])
			if err != nil {
				return err
			}
			if has {
				status = Exists
				return nil
			}
		}
		return s.peers.Put(id[:], catalog.EncodePeer(peer))
	})
	return status, err
}

func (s *FileStore) GetPeer(_ context.Context, id catalog.ID) (catalog.Peer, bool, error) {
	var peer catalog.Peer
	found := false
	err := s.db.View(func() error {
		data, err := s.peers.Get(id[:])
		if err == kvfile.ErrNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		peer, err = catalog.DecodePeer(data)
		if err != nil {
			return err
		}
		found = true
		return nil
	})
	return peer, found, err
}

func (s *FileStore) GetAllPeers(_ context.Context) ([]catalog.Peer, error) {
	var out []catalog.Peer
	err := s.db.View(func() error {
		return s.peers.ForEach(func(value []byte) error {
			p, err := catalog.DecodePeer(value)
			if err != nil {
				return err
			}
			out = append(out, p)
			return nil
		})
	})
	return out, err
}

func (s *FileStore) PutRoot(_ context.Context, id catalog.ID, root catalog.Root, overwrite bool) (PutStatus, error) {
	status := Ok
	err := s.db.Update(func() error {
		if !overwrite {
			hasID, err := s.roots.Has(id[:])
			if err != nil {
				return err
			}
			hasName, err := s.rootNames.Has([]byte(root.Name))
			if err != nil {
				return err
			}
			if hasID || hasName {
				status = Exists
				return nil
			}
		}
		encoded, err := catalog.EncodeRoot(root)
		if err != nil {
			return err
		}
		if err := s.roots.Put(id[:], encoded); err != nil {
			return err
		}
		return s.rootNames.Put([]byte(root.Name), id[:])
	})
	return status, err
}

func (s *FileStore) GetRoot(_ context.Context, id catalog.ID) (catalog.Root, bool, error) {
	var root catalog.Root
	found := false
	err := s.db.View(func() error {
		data, err := s.roots.Get(id[:])
		if err == kvfile.ErrNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		root, err = catalog.DecodeRoot(data)
		if err != nil {
			return err
		}
		found = true
		return nil
	})
	return root, found, err
}

func (s *FileStore) GetRootByName(ctx context.Context, name string) (catalog.Root, bool, error) {
	var root catalog.Root
	found := false
	err := s.db.View(func() error {
		idBytes, err := s.rootNames.Get([]byte(name))
		if err == kvfile.ErrNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		var id catalog.ID
		copy(id[:], idBytes)
		data, err := s.roots.Get(id[:])
		if err == kvfile.ErrNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		root, err = catalog.DecodeRoot(data)
		if err != nil {
			return err
		}
		found = true
		return nil
	})
	return root, found, err
}

func (s *FileStore) GetAllRoots(_ context.Context) ([]catalog.Root, error) {
	var out []catalog.Root
	err := s.db.View(func() error {
		return s.roots.ForEach(func(value []byte) error {
			r, err := catalog.DecodeRoot(value)
			if err != nil {
				return err
			}
			out = append(out, r)
			return nil
		})
	})
	return out, err
}

func (s *FileStore) Close() error { return nil }
