package config

import (
	"os"
	"path/filepath"
)

const (
	RepoDir      = ".qop"
	StoreDir     = "store"
	IndexFile    = "index.toml"
	SettingsFile = "config.toml"

	// ManifestFile is the per-directory ignore manifest.
	ManifestFile = ".qopfile"

	// StdinSource selects standard input as the patch source.
	StdinSource = "-"
)

// RepoConfig resolves the on-disk layout for one working tree.
type RepoConfig struct {
	WorkingTreeDir string // tree being tracked
	RepoDir        string // e.g. <tree>/.qop
}

// NewRepoConfig returns the layout for the working tree at root.
func NewRepoConfig(root string) *RepoConfig {
	return &RepoConfig{
		WorkingTreeDir: root,
		RepoDir:        filepath.Join(root, RepoDir),
	}
}

func (c *RepoConfig) StoreDir() string     { return filepath.Join(c.RepoDir, StoreDir) }
func (c *RepoConfig) IndexFile() string    { return filepath.Join(c.RepoDir, IndexFile) }
func (c *RepoConfig) SettingsFile() string { return filepath.Join(c.RepoDir, SettingsFile) }

// ResolveWorkingTreeRoot walks up from dir until it finds a directory holding
// a .qop directory. When none is found, dir itself is the root.
func ResolveWorkingTreeRoot(dir string) string {
	cur, err := filepath.Abs(dir)
	if err != nil {
		return dir
	}
	for {
		if fi, err := os.Stat(filepath.Join(cur, RepoDir)); err == nil && fi.IsDir() {
			return cur
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			break // reached filesystem root
		}
		cur = parent
	}
	return dir
}
