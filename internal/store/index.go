package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/keshon/qop/internal/hashing"
	"github.com/keshon/qop/internal/util"
)

// ErrNoSnapshot is returned when the index file does not exist yet.
var ErrNoSnapshot = errors.New("no snapshot taken yet")

// Index is the persisted record of the last snapshot.
type Index struct {
	// Hash names the algorithm behind Files. Empty means sha256.
	Hash string `toml:"hash,omitempty"`
	// Latest and Entries are reserved for checkpoint history and stay empty.
	Latest  *string               `toml:"latest,omitempty"`
	Entries map[string]IndexEntry `toml:"entries"`
	// Files maps tree-relative paths to the hex hash of their content.
	Files map[string]string `toml:"files"`
}

type IndexEntry struct {
	Instant time.Time `toml:"instant"`
}

func NewIndex() *Index {
	return &Index{
		Entries: map[string]IndexEntry{},
		Files:   map[string]string{},
	}
}

// Paths returns the tracked paths in sorted order.
func (idx *Index) Paths() []string {
	return util.SortedKeys(idx.Files)
}

// Hasher returns the hasher that produced idx.Files, which may differ from
// the store's current algorithm.
func (s *Store) Hasher(idx *Index) (hashing.Hasher, error) {
	if idx.Hash == s.HashAlgo {
		return s.Hash, nil
	}
	h, err := hashing.New(idx.Hash)
	if err != nil {
		return nil, fmt.Errorf("index: %w", err)
	}
	return h, nil
}

// SaveIndex replaces the index file.
func (s *Store) SaveIndex(idx *Index) error {
	data, err := toml.Marshal(idx)
	if err != nil {
		return fmt.Errorf("marshal index: %w", err)
	}
	if err := util.WriteFileAtomic(s.FS, s.Config.IndexFile(), data, 0o644); err != nil {
		return fmt.Errorf("write index: %w", err)
	}
	return nil
}

// LoadIndex reads the index file.
func (s *Store) LoadIndex() (*Index, error) {
	path := s.Config.IndexFile()
	data, err := s.FS.ReadFile(path)
	if err != nil {
		if s.FS.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s missing", ErrNoSnapshot, path)
		}
		return nil, fmt.Errorf("read index: %w", err)
	}

	idx := NewIndex()
	if err := toml.Unmarshal(data, idx); err != nil {
		return nil, fmt.Errorf("unmarshal index %q: %w", path, err)
	}
	if idx.Files == nil {
		idx.Files = map[string]string{}
	}
	if idx.Entries == nil {
		idx.Entries = map[string]IndexEntry{}
	}
	return idx, nil
}
