package localstore

import (
	"context"

	"github.com/jdonszelmann/dfs/catalog"
	"github.com/jdonszelmann/dfs/internal/kvfile"
)

// FileStore is the default Store backend, one kvfile.Table inside the
// hidden per-root metadata folder. See internal/kvfile for the underlying
// hash-partitioned record format, grounded on the teacher's fs.hashmap.
type FileStore struct {
	db         *kvfile.Database
	direntries *kvfile.Table
}

// OpenFileStore opens or creates the per-root store rooted at dir (the
// hidden metadata folder created by ConnectedRoot).
func OpenFileStore(dir string) (*FileStore, error) {
	db, err := kvfile.Open(dir)
	if err != nil {
		return nil, err
	}
	return &FileStore{db: db, direntries: db.Table("direntries")}, nil
}

func (s *FileStore) PutDirEntry(_ context.Context, id catalog.ID, entry catalog.DirEntry, overwrite bool) (PutStatus, error) {
	status := Ok
	err := s.db.Update(func() error {
		if !overwrite {
			has, err := s.direntries.Has(id[:])
			if err != nil {
				return err
			}
			if has {
				status = Exists
				return nil
			}
		}
		encoded, err := catalog.EncodeDirEntry(entry)
		if err != nil {
			return err
		}
		return s.direntries.Put(id[:], encoded)
	})
	return status, err
}

func (s *FileStore) GetDirEntry(_ context.Context, id catalog.ID) (catalog.DirEntry, bool, error) {
	var entry catalog.DirEntry
	found := false
	err := s.db.View(func() error {
		data, err := s.direntries.Get(id[:])
		if err == kvfile.ErrNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		entry, err = catalog.DecodeDirEntry(data)
		if err != nil {
			return err
		}
		found = true
		return nil
	})
	return entry, found, err
}

func (s *FileStore) Close() error { return nil }
