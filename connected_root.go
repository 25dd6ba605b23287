package dfs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/jdonszelmann/dfs/catalog"
	"github.com/jdonszelmann/dfs/errs"
	"github.com/jdonszelmann/dfs/localstore"
)

// ConnectedRoot binds a Root to its opened per-root LocalStore. Construction
// follows spec.md §4.E: validate the root path still exists and is a
// directory, create the hidden metadata folder if absent, open the store.
type ConnectedRoot struct {
	dfs   *Dfs
	root  catalog.Root
	store localstore.Store
}

// Connect opens (creating if necessary) the hidden metadata folder inside
// root.Path and the LocalStore backend rooted there.
//
// newStore receives the metadata folder path and returns an opened
// localstore.Store; pass localstore.OpenFileStore for the on-disk default or
// a factory wrapping localstore.NewMemStore for tests.
func (d *Dfs) Connect(root catalog.Root, newStore func(dir string) (localstore.Store, error)) (*ConnectedRoot, error) {
	info, err := os.Stat(root.Path)
	if os.IsNotExist(err) {
		return nil, errs.E("Connect", errs.PathMissing, err)
	}
	if err != nil {
		return nil, errs.E("Connect", errs.Backend, err)
	}
	if !info.IsDir() {
		return nil, errs.E("Connect", errs.PathIsFile, nil)
	}

	metaDir := filepath.Join(root.Path, d.config.LocalDB)
	if _, err := os.Stat(metaDir); os.IsNotExist(err) {
		if err := os.MkdirAll(metaDir, 0o755); err != nil {
			return nil, errs.E("Connect", errs.Backend, err)
		}
	} else if err != nil {
		return nil, errs.E("Connect", errs.Backend, err)
	}

	store, err := newStore(metaDir)
	if err != nil {
		return nil, errs.E("Connect", errs.Backend, err)
	}

	return &ConnectedRoot{dfs: d, root: root, store: store}, nil
}

// Root returns the Root this ConnectedRoot wraps.
func (c *ConnectedRoot) Root() catalog.Root { return c.root }

// Close releases the underlying LocalStore.
func (c *ConnectedRoot) Close() error { return c.store.Close() }

// RootDir returns the unique DirEntry with no parent, allocating and
// persisting it on first call (and updating the owning Root's
// RootDirEntryID), or returning the previously resolved one thereafter.
func (c *ConnectedRoot) RootDir(ctx context.Context) (catalog.DirEntry, error) {
	if c.root.HasRootDirEntry() {
		entry, found, err := c.store.GetDirEntry(ctx, c.root.RootDirEntryID)
		if err != nil {
			return catalog.DirEntry{}, errs.E("RootDir", errs.Backend, err)
		}
		if found {
			return entry, nil
		}
		// The persisted id no longer resolves (e.g. metadata folder was
		// recreated from scratch); fall through and allocate a new one.
	}

	entry := catalog.NewDirEntry("/", catalog.NilID, false, catalog.EntryDir)
	if _, err := c.store.PutDirEntry(ctx, entry.ID, entry, true); err != nil {
		return catalog.DirEntry{}, errs.E("RootDir", errs.Backend, err)
	}

	c.root = c.root.WithRootDirEntryID(entry.ID)
	if err := c.dfs.putRoot(ctx, c.root); err != nil {
		return catalog.DirEntry{}, err
	}
	return entry, nil
}

// GetByID is a pass-through lookup into the per-root catalog.
func (c *ConnectedRoot) GetByID(ctx context.Context, id catalog.ID) (catalog.DirEntry, bool, error) {
	entry, found, err := c.store.GetDirEntry(ctx, id)
	if err != nil {
		return catalog.DirEntry{}, false, errs.E("GetByID", errs.Backend, err)
	}
	return entry, found, nil
}
