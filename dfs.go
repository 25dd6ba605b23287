// Package dfs is the core of a peer-to-peer distributed filesystem daemon:
// a Dfs facade over a GlobalStore of peers and roots, ConnectedRoot binding
// a root to its per-root catalog, and an indexer that walks a root's
// filesystem subtree into that catalog. See SPEC_FULL.md for the full
// design and DESIGN.md for how each piece is grounded.
package dfs

import (
	"context"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/jdonszelmann/dfs/catalog"
	"github.com/jdonszelmann/dfs/errs"
	"github.com/jdonszelmann/dfs/globalstore"
)

// Dfs holds an opened GlobalStore and the Config governing where per-root
// metadata folders live.
type Dfs struct {
	store  globalstore.Store
	config Config
}

// Open constructs a Dfs over an already-opened GlobalStore. Front-ends pick
// the backend (FileStore, MemStore, RedisStore) and pass it in here; Dfs
// itself is backend-agnostic.
func Open(store globalstore.Store, config Config) *Dfs {
	return &Dfs{store: store, config: config}
}

// Config returns the configuration this Dfs was opened with.
func (d *Dfs) Config() Config { return d.config }

// Close releases the underlying GlobalStore.
func (d *Dfs) Close() error { return d.store.Close() }

// NewPeer constructs a fresh Peer and persists it. Because the id is freshly
// allocated, a conflicting Exists can only mean a broken id generator; that
// case is reported as errs.Backend, not a recoverable condition. A name that
// is not valid UTF-8 is rejected with errs.UTF8 before a Peer is built.
func (d *Dfs) NewPeer(ctx context.Context, name string) (catalog.Peer, error) {
	if !utf8.ValidString(name) {
		return catalog.Peer{}, errs.E("NewPeer", errs.UTF8, nil)
	}
	peer := catalog.NewPeer(name)
	status, err := d.store.PutPeer(ctx, peer.ID, peer, false)
	if err != nil {
		return catalog.Peer{}, errs.E("NewPeer", errs.Backend, err)
	}
	if status == globalstore.Exists {
		return catalog.Peer{}, errs.E("NewPeer", errs.Backend, errDuplicateFreshID)
	}
	return peer, nil
}

// NewRoot validates path, canonicalizes it, and persists a fresh Root named
// name. Returns errs.PathMissing, errs.PathNotDir or errs.NameConflict on
// the failure conditions named in spec.md §4.C.
func (d *Dfs) NewRoot(ctx context.Context, path, name string) (catalog.Root, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return catalog.Root{}, errs.E("NewRoot", errs.PathMissing, err)
	}
	if err != nil {
		return catalog.Root{}, errs.E("NewRoot", errs.Backend, err)
	}
	if !info.IsDir() {
		return catalog.Root{}, errs.E("NewRoot", errs.PathNotDir, nil)
	}

	canonical, err := filepath.Abs(path)
	if err != nil {
		return catalog.Root{}, errs.E("NewRoot", errs.Backend, err)
	}
	canonical, err = filepath.EvalSymlinks(canonical)
	if err != nil {
		return catalog.Root{}, errs.E("NewRoot", errs.Backend, err)
	}

	root := catalog.NewRoot(name, canonical)
	status, err := d.store.PutRoot(ctx, root.ID, root, false)
	if err != nil {
		return catalog.Root{}, errs.E("NewRoot", errs.Backend, err)
	}
	if status == globalstore.Exists {
		return catalog.Root{}, errs.E("NewRoot", errs.NameConflict, nil)
	}
	return root, nil
}

// GetRootByName looks up a Root by its unique name.
func (d *Dfs) GetRootByName(ctx context.Context, name string) (catalog.Root, bool, error) {
	root, found, err := d.store.GetRootByName(ctx, name)
	if err != nil {
		return catalog.Root{}, false, errs.E("GetRootByName", errs.Backend, err)
	}
	return root, found, nil
}

// GetRoot looks up a Root by id.
func (d *Dfs) GetRoot(ctx context.Context, id catalog.ID) (catalog.Root, bool, error) {
	root, found, err := d.store.GetRoot(ctx, id)
	if err != nil {
		return catalog.Root{}, false, errs.E("GetRoot", errs.Backend, err)
	}
	return root, found, nil
}

// GetRoots returns every Root known to this Dfs.
func (d *Dfs) GetRoots(ctx context.Context) ([]catalog.Root, error) {
	roots, err := d.store.GetAllRoots(ctx)
	if err != nil {
		return nil, errs.E("GetRoots", errs.Backend, err)
	}
	return roots, nil
}

// GetPeers returns every Peer known to this Dfs.
func (d *Dfs) GetPeers(ctx context.Context) ([]catalog.Peer, error) {
	peers, err := d.store.GetAllPeers(ctx)
	if err != nil {
		return nil, errs.E("GetPeers", errs.Backend, err)
	}
	return peers, nil
}

// putRoot persists an updated Root (used internally by ConnectedRoot to
// resolve RootDirEntryID), overwriting whatever was stored under the same id.
func (d *Dfs) putRoot(ctx context.Context, root catalog.Root) error {
	_, err := d.store.PutRoot(ctx, root.ID, root, true)
	if err != nil {
		return errs.E("putRoot", errs.Backend, err)
	}
	return nil
}

var errDuplicateFreshID = errBackendInvariant("fresh id already present in global store")

type errBackendInvariant string

func (e errBackendInvariant) Error() string { return string(e) }
