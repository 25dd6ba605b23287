package dfs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jdonszelmann/dfs"
	"github.com/jdonszelmann/dfs/errs"
	"github.com/jdonszelmann/dfs/globalstore"
)

func newDfs() *dfs.Dfs {
	return dfs.Open(globalstore.NewMemStore(), dfs.Config{LocalDB: ".dfs"})
}

func TestNewRootNameCollision(t *testing.T) {
	ctx := context.Background()
	d := newDfs()
	a := t.TempDir()

	if _, err := d.NewRoot(ctx, a, "x"); err != nil {
		t.Fatalf("first NewRoot: %v", err)
	}

	_, err := d.NewRoot(ctx, a, "x")
	if err == nil {
		t.Fatal("expected a NameConflict error on a duplicate name")
	}
	if !errs.Is(err, errs.NameConflict) {
		t.Fatalf("expected NameConflict, got %v", err)
	}
}

func TestNewRootDistinctNamesSucceed(t *testing.T) {
	ctx := context.Background()
	d := newDfs()
	a := t.TempDir()
	b := t.TempDir()

	if _, err := d.NewRoot(ctx, a, "x"); err != nil {
		t.Fatalf("NewRoot a: %v", err)
	}
	if _, err := d.NewRoot(ctx, b, "y"); err != nil {
		t.Fatalf("NewRoot b: %v", err)
	}
}

func TestNewRootPathValidation(t *testing.T) {
	ctx := context.Background()
	d := newDfs()

	_, err := d.NewRoot(ctx, filepath.Join(t.TempDir(), "missing"), "x")
	if !errs.Is(err, errs.PathMissing) {
		t.Fatalf("expected PathMissing, got %v", err)
	}

	file := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(file, []byte("hi"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err = d.NewRoot(ctx, file, "y")
	if !errs.Is(err, errs.PathNotDir) {
		t.Fatalf("expected PathNotDir, got %v", err)
	}
}

func TestPeerCountSurvivesNameCollisions(t *testing.T) {
	ctx := context.Background()
	d := newDfs()

	for i := 0; i < 5; i++ {
		if _, err := d.NewPeer(ctx, "same-name"); err != nil {
			t.Fatalf("NewPeer: %v", err)
		}
	}
	peers, err := d.GetPeers(ctx)
	if err != nil {
		t.Fatalf("GetPeers: %v", err)
	}
	if len(peers) != 5 {
		t.Fatalf("expected 5 peers, got %d", len(peers))
	}
}

func TestGetRootByNameAndGetRoot(t *testing.T) {
	ctx := context.Background()
	d := newDfs()
	a := t.TempDir()

	root, err := d.NewRoot(ctx, a, "x")
	if err != nil {
		t.Fatalf("NewRoot: %v", err)
	}

	byName, found, err := d.GetRootByName(ctx, "x")
	if err != nil || !found {
		t.Fatalf("GetRootByName: found=%v err=%v", found, err)
	}
	if byName.ID != root.ID {
		t.Fatalf("id mismatch: got %v, want %v", byName.ID, root.ID)
	}

	byID, found, err := d.GetRoot(ctx, root.ID)
	if err != nil || !found {
		t.Fatalf("GetRoot: found=%v err=%v", found, err)
	}
	if byID.Name != "x" {
		t.Fatalf("expected name x, got %q", byID.Name)
	}
}
