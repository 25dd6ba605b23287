package catalog

import "testing"

func TestPeerRoundTrip(t *testing.T) {
	p := NewPeer("alice")
	decoded, err := DecodePeer(EncodePeer(p))
	if err != nil {
		t.Fatalf("DecodePeer: %v", err)
	}
	if decoded != p {
		t.Fatalf("round trip mismatch: got %+v, want %+v", decoded, p)
	}
}

func TestRootRoundTrip(t *testing.T) {
	root := NewRoot("project", "/srv/project")

	encoded, err := EncodeRoot(root)
	if err != nil {
		t.Fatalf("EncodeRoot: %v", err)
	}
	decoded, err := DecodeRoot(encoded)
	if err != nil {
		t.Fatalf("DecodeRoot: %v", err)
	}
	if decoded != root {
		t.Fatalf("round trip mismatch: got %+v, want %+v", decoded, root)
	}

	withEntry := root.WithRootDirEntryID(NewID())
	encoded, err = EncodeRoot(withEntry)
	if err != nil {
		t.Fatalf("EncodeRoot with entry: %v", err)
	}
	decoded, err = DecodeRoot(encoded)
	if err != nil {
		t.Fatalf("DecodeRoot with entry: %v", err)
	}
	if decoded != withEntry {
		t.Fatalf("round trip mismatch: got %+v, want %+v", decoded, withEntry)
	}
	if !decoded.HasRootDirEntry() {
		t.Fatal("expected HasRootDirEntry to be true after decode")
	}
}

func TestDirEntryRoundTrip(t *testing.T) {
	root := NewDirEntry("/", NilID, false, EntryDir)
	encoded, err := EncodeDirEntry(root)
	if err != nil {
		t.Fatalf("EncodeDirEntry: %v", err)
	}
	decoded, err := DecodeDirEntry(encoded)
	if err != nil {
		t.Fatalf("DecodeDirEntry: %v", err)
	}
	if decoded != root {
		t.Fatalf("round trip mismatch: got %+v, want %+v", decoded, root)
	}
	if !decoded.IsRoot() {
		t.Fatal("expected IsRoot to be true for a parent-less entry")
	}

	child := NewDirEntry("a.txt", root.ID, true, EntryFile)
	encoded, err = EncodeDirEntry(child)
	if err != nil {
		t.Fatalf("EncodeDirEntry child: %v", err)
	}
	decoded, err = DecodeDirEntry(encoded)
	if err != nil {
		t.Fatalf("DecodeDirEntry child: %v", err)
	}
	if decoded != child {
		t.Fatalf("round trip mismatch: got %+v, want %+v", decoded, child)
	}
	if decoded.IsRoot() {
		t.Fatal("expected IsRoot to be false for an entry with a parent")
	}
	if decoded.IsDir() {
		t.Fatal("expected IsDir to be false for a file entry")
	}
}

func TestIDNilAndString(t *testing.T) {
	var id ID
	if !id.IsNil() {
		t.Fatal("zero-value ID should be nil")
	}
	fresh := NewID()
	if fresh.IsNil() {
		t.Fatal("freshly generated ID should not be nil")
	}
	parsed, err := ParseID(fresh.String())
	if err != nil {
		t.Fatalf("ParseID: %v", err)
	}
	if parsed != fresh {
		t.Fatalf("ParseID(String()) mismatch: got %v, want %v", parsed, fresh)
	}
}

func TestEncodeStringRejectsInvalidUTF8(t *testing.T) {
	bad := string([]byte{0xff, 0xfe, 0xfd})
	if _, err := EncodeRoot(Root{ID: NewID(), Name: bad, Path: "/tmp"}); err == nil {
		t.Fatal("expected an error encoding a non-UTF-8 name")
	}
}
