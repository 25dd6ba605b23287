package localstore_test

import (
	"context"
	"testing"

	"github.com/jdonszelmann/dfs/catalog"
	"github.com/jdonszelmann/dfs/localstore"
)

func stores(t *testing.T) map[string]localstore.Store {
	t.Helper()
	fileStore, err := localstore.OpenFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("OpenFileStore: %v", err)
	}
	return map[string]localstore.Store{
		"MemStore":  localstore.NewMemStore(),
		"FileStore": fileStore,
	}
}

func TestPutDirEntryOverwriteSemantics(t *testing.T) {
	ctx := context.Background()
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			entry := catalog.NewDirEntry("/", catalog.NilID, false, catalog.EntryDir)

			status, err := store.PutDirEntry(ctx, entry.ID, entry, false)
			if err != nil {
				t.Fatalf("PutDirEntry: %v", err)
			}
			if status != localstore.Ok {
				t.Fatalf("expected Ok, got %v", status)
			}

			status, err = store.PutDirEntry(ctx, entry.ID, entry, false)
			if err != nil {
				t.Fatalf("PutDirEntry: %v", err)
			}
			if status != localstore.Exists {
				t.Fatalf("expected Exists without overwrite, got %v", status)
			}

			renamed := entry
			renamed.Path = "/renamed"
			status, err = store.PutDirEntry(ctx, entry.ID, renamed, true)
			if err != nil {
				t.Fatalf("PutDirEntry overwrite: %v", err)
			}
			if status != localstore.Ok {
				t.Fatalf("expected Ok with overwrite, got %v", status)
			}

			got, found, err := store.GetDirEntry(ctx, entry.ID)
			if err != nil {
				t.Fatalf("GetDirEntry: %v", err)
			}
			if !found {
				t.Fatal("expected to find the entry")
			}
			if got.Path != "/renamed" {
				t.Fatalf("expected overwrite to stick, got path %q", got.Path)
			}
		})
	}
}

func TestGetDirEntryMissing(t *testing.T) {
	ctx := context.Background()
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, found, err := store.GetDirEntry(ctx, catalog.NewID())
			if err != nil {
				t.Fatalf("GetDirEntry: %v", err)
			}
			if found {
				t.Fatal("expected not to find an unwritten id")
			}
		})
	}
}
