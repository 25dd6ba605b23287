// Package localstore implements the per-root catalog of directory entries
// (spec.md §4.B): a single id-keyed map, opened once per ConnectedRoot.
package localstore

import (
	"context"

	"github.com/jdonszelmann/dfs/catalog"
	"github.com/jdonszelmann/dfs/globalstore"
)

// PutStatus is reused from globalstore: both contracts share the same
// Ok/Exists vocabulary (spec.md §4.A/4.B).
type PutStatus = globalstore.PutStatus

const (
	Ok     = globalstore.Ok
	Exists = globalstore.Exists
)

// Store is the LocalStore contract: a single direntries: id -> DirEntry map.
type Store interface {
	PutDirEntry(ctx context.Context, id catalog.ID, entry catalog.DirEntry, overwrite bool) (PutStatus, error)
	GetDirEntry(ctx context.Context, id catalog.ID) (catalog.DirEntry, bool, error)
	Close() error
}
