package catalog

// Peer identifies one remote participant that roots may be shared with.
// Peers are global to the Dfs instance: not every root is shared with every
// peer (that association is out of scope for this core — see spec.md §1).
type Peer struct {
	ID   ID
	Name string
}

// NewPeer constructs a fresh Peer with a freshly allocated ID. Use
// Dfs.NewPeer to also persist it.
func NewPeer(name string) Peer {
	return Peer{
		ID:   NewID(),
		Name: name,
	}
}
