package catalog

import (
	"bytes"

	"github.com/google/uuid"
)

// ID is a thin wrapper over github.com/google/uuid.UUID, keeping the public
// API decoupled from the uuid package's own method set.
type ID uuid.UUID

// NilID is the zero-value ID, used to mean "absent" (e.g. a root DirEntry's parent).
var NilID ID

// NewID returns a fresh, randomly generated 128-bit identifier.
func NewID() ID {
	return ID(uuid.New())
}

// ParseID parses the canonical string form of an ID.
func ParseID(s string) (ID, error) {
	u, err := uuid.Parse(s)
	return ID(u), err
}

// IsNil reports whether this is the zero-value ID.
func (id ID) IsNil() bool {
	return bytes.Equal(id[:], NilID[:])
}

// String returns the canonical hyphenated representation of the ID.
func (id ID) String() string {
	return uuid.UUID(id).String()
}
