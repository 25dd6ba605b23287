package catalog

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"unicode/utf8"
)

// This file implements the compact length-prefixed binary encoding required
// by spec.md §6: fields in declared order, 128-bit ids big-endian, strings
// UTF-8 length-prefixed. Grounded on the teacher's encoding.HandleEncoder
// (bytes.Buffer + encoding/binary field-by-field codec), generalized here to
// variable-length string/path fields and an explicit "presence" byte for
// optional ids, since handles carry only fixed-size fields.

func writeID(w *bytes.Buffer, id ID) {
	w.Write(id[:])
}

func readID(r *bytes.Buffer) (ID, error) {
	var id ID
	if r.Len() < 16 {
		return id, io.ErrUnexpectedEOF
	}
	copy(id[:], r.Next(16))
	return id, nil
}

func writeOptionalID(w *bytes.Buffer, id ID, present bool) {
	if present {
		w.WriteByte(1)
		writeID(w, id)
	} else {
		w.WriteByte(0)
	}
}

func readOptionalID(r *bytes.Buffer) (id ID, present bool, err error) {
	b, err := r.ReadByte()
	if err != nil {
		return id, false, err
	}
	if b == 0 {
		return id, false, nil
	}
	id, err = readID(r)
	return id, true, err
}

func writeString(w *bytes.Buffer, s string) error {
	if !utf8.ValidString(s) {
		return errUTF8
	}
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(s)))
	w.Write(lenBuf[:])
	w.WriteString(s)
	return nil
}

func readString(r *bytes.Buffer) (string, error) {
	if r.Len() < 4 {
		return "", io.ErrUnexpectedEOF
	}
	n := binary.BigEndian.Uint32(r.Next(4))
	if r.Len() < int(n) {
		return "", io.ErrUnexpectedEOF
	}
	b := r.Next(int(n))
	if !utf8.Valid(b) {
		return "", errUTF8
	}
	return string(b), nil
}

var errUTF8 = fmt.Errorf("path or string is not valid UTF-8")

// EncodePeer serializes a Peer in declared field order: id, name.
func EncodePeer(p Peer) []byte {
	w := new(bytes.Buffer)
	writeID(w, p.ID)
	// Dfs.NewPeer rejects non-UTF-8 names, so the UTF8 error is ignored here;
	// a Peer with such a name built by other means encodes as its id alone.
	_ = writeString(w, p.Name)
	return w.Bytes()
}

// DecodePeer deserializes bytes produced by EncodePeer.
func DecodePeer(data []byte) (Peer, error) {
	r := bytes.NewBuffer(data)
	var p Peer
	var err error
	if p.ID, err = readID(r); err != nil {
		return p, err
	}
	if p.Name, err = readString(r); err != nil {
		return p, err
	}
	return p, nil
}

// EncodeRoot serializes a Root in declared field order:
// id, name, path, has_root_direntry, [root_direntry_id].
func EncodeRoot(root Root) ([]byte, error) {
	w := new(bytes.Buffer)
	writeID(w, root.ID)
	if err := writeString(w, root.Name); err != nil {
		return nil, err
	}
	if err := writeString(w, root.Path); err != nil {
		return nil, err
	}
	writeOptionalID(w, root.RootDirEntryID, root.hasRootEntry)
	return w.Bytes(), nil
}

// DecodeRoot deserializes bytes produced by EncodeRoot.
func DecodeRoot(data []byte) (Root, error) {
	r := bytes.NewBuffer(data)
	var root Root
	var err error
	if root.ID, err = readID(r); err != nil {
		return root, err
	}
	if root.Name, err = readString(r); err != nil {
		return root, err
	}
	if root.Path, err = readString(r); err != nil {
		return root, err
	}
	root.RootDirEntryID, root.hasRootEntry, err = readOptionalID(r)
	if err != nil {
		return root, err
	}
	return root, nil
}

// EncodeDirEntry serializes a DirEntry in declared field order:
// id, path, entry_type, has_parent, [parent_id].
func EncodeDirEntry(e DirEntry) ([]byte, error) {
	w := new(bytes.Buffer)
	writeID(w, e.ID)
	if err := writeString(w, e.Path); err != nil {
		return nil, err
	}
	w.WriteByte(byte(e.Type))
	writeOptionalID(w, e.Parent, e.HasParent)
	return w.Bytes(), nil
}

// DecodeDirEntry deserializes bytes produced by EncodeDirEntry.
func DecodeDirEntry(data []byte) (DirEntry, error) {
	r := bytes.NewBuffer(data)
	var e DirEntry
	var err error
	if e.ID, err = readID(r); err != nil {
		return e, err
	}
	if e.Path, err = readString(r); err != nil {
		return e, err
	}
	typeByte, err := r.ReadByte()
	if err != nil {
		return e, err
	}
	e.Type = EntryType(typeByte)
	e.Parent, e.HasParent, err = readOptionalID(r)
	if err != nil {
		return e, err
	}
	return e, nil
}
