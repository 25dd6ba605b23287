package dfs

import (
	"context"

	"github.com/jdonszelmann/dfs/internal/index"
)

// IndexOption re-exports internal/index's functional options so callers
// configure indexing without reaching into an internal package.
type IndexOption = index.Option

// WithMaxWorkers bounds how many directories Index enumerates concurrently.
func WithMaxWorkers(n int) IndexOption { return index.WithMaxWorkers(n) }

// WithStatusServer starts an embedded diagnostics HTTP server for the
// duration of Index, exposing GET /healthz and GET /status.
func WithStatusServer(addr string) IndexOption { return index.WithStatusServer(addr) }

// NonFatalIndexError is a per-path enumeration failure aggregated during Index.
type NonFatalIndexError = index.NonFatalError

// Index walks c's filesystem subtree, seeded at its (possibly
// freshly-allocated) root DirEntry, persisting a fresh DirEntry for every
// discovered filesystem entry. It returns once every discovered directory
// has been fully enumerated, along with any non-fatal per-path errors
// encountered along the way.
func (c *ConnectedRoot) Index(ctx context.Context, opts ...IndexOption) ([]NonFatalIndexError, error) {
	rootEntry, err := c.RootDir(ctx)
	if err != nil {
		return nil, err
	}
	idx := index.New(c.store, c.root.Path, rootEntry.ID, opts...)
	return idx.Run(ctx)
}
