// Package globalstore implements the process-wide catalog of peers and
// roots (spec.md §4.A): two id-keyed maps plus a root-name secondary index,
// behind a narrow transactional contract so alternative backends can be
// plugged in without touching Dfs.
package globalstore

import (
	"context"

	"github.com/jdonszelmann/dfs/catalog"
)

// PutStatus is the outcome of a Put* call: Ok on a fresh write, Exists when
// overwrite=false and a conflicting key was already present.
type PutStatus int

const (
	Ok PutStatus = iota
	Exists
)

// Store is the GlobalStore contract: peers, roots and the name->id index,
// each mutation transactional per call. Implementations must let concurrent
// readers see a consistent snapshot (invariant 2 of spec.md §3).
type Store interface {
	// PutPeer writes peers[id]=peer. With overwrite=false, returns Exists
	// without mutation if peers[id] is already present.
	PutPeer(ctx context.Context, id catalog.ID, peer catalog.Peer, overwrite bool) (PutStatus, error)
	GetPeer(ctx context.Context, id catalog.ID) (catalog.Peer, bool, error)
	GetAllPeers(ctx context.Context) ([]catalog.Peer, error)

	// PutRoot writes roots[id]=root and root_names[root.Name]=id atomically.
	// With overwrite=false, returns Exists without mutation if either
	// roots[id] or root_names[root.Name] is already present.
	PutRoot(ctx context.Context, id catalog.ID, root catalog.Root, overwrite bool) (PutStatus, error)
	GetRoot(ctx context.Context, id catalog.ID) (catalog.Root, bool, error)
	GetRootByName(ctx context.Context, name string) (catalog.Root, bool, error)
	GetAllRoots(ctx context.Context) ([]catalog.Root, error)

	Close() error
}
