package dfs

import (
	"os"
	"path/filepath"
)

// Config holds the paths that govern where dfs stores its catalogs.
//
// LocalDB is the name of the hidden metadata folder created inside every
// root (default ".dfs"). GlobalDB is the absolute path of the directory
// holding the global store (peers, roots, name index).
type Config struct {
	LocalDB  string
	GlobalDB string
}

// DefaultConfig returns the default configuration: a ".dfs" local metadata
// folder, and a global store under $XDG_DATA_HOME/dfs (falling back to
// ~/.local/share/dfs when XDG_DATA_HOME is unset, per the XDG base
// directory convention).
func DefaultConfig() Config {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "~"
		}
		dataDir = filepath.Join(home, ".local", "share")
	}

	return Config{
		LocalDB:  ".dfs",
		GlobalDB: filepath.Join(dataDir, "dfs"),
	}
}
