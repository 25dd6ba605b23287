package catalog

// Root is a shared folder on the host: a unit of sharing with some set of
// peers (peer-association is out of scope here; see spec.md §1).
//
// A Root's RootDirEntryID is absent until the first ConnectedRoot.RootDir
// call, which resolves (and persists) it.
type Root struct {
	ID             ID
	Name           string
	Path           string
	RootDirEntryID ID
	hasRootEntry   bool
}

// HasRootDirEntry reports whether RootDirEntryID has been resolved yet.
func (r Root) HasRootDirEntry() bool {
	return r.hasRootEntry
}

// WithRootDirEntryID returns a copy of r with RootDirEntryID set to id.
func (r Root) WithRootDirEntryID(id ID) Root {
	r.RootDirEntryID = id
	r.hasRootEntry = true
	return r
}

// NewRoot constructs a fresh Root with a freshly allocated ID and an absent
// RootDirEntryID.
func NewRoot(name, path string) Root {
	return Root{
		ID:   NewID(),
		Name: name,
		Path: path,
	}
}
