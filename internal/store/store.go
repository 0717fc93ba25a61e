package store

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/keshon/qop/internal/config"
	"github.com/keshon/qop/internal/fs"
	"github.com/keshon/qop/internal/hashing"
)

// ErrPathEscapesRoot is returned for tracked paths that are absolute or climb
// out of the working tree.
var ErrPathEscapesRoot = errors.New("path escapes working tree")

// Store owns the .qop directory of one working tree: the mirrored file copies
// and the index. All store mutation goes through it.
type Store struct {
	Config   *config.RepoConfig
	FS       fs.FS
	HashAlgo string         // algorithm recorded in new indexes
	Hash     hashing.Hasher // HashAlgo's hasher
	Log      zerolog.Logger
	Progress io.Writer // snapshot progress output; nil disables it
}

// Options allows optional dependency injection.
type Options struct {
	FS       fs.FS
	HashAlgo string // "sha256" when empty
	Log      *zerolog.Logger
	Progress io.Writer
}

// NewStore creates a store for cfg with default dependencies where opts
// leaves them unset.
func NewStore(cfg *config.RepoConfig, opts *Options) (*Store, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil RepoConfig provided")
	}

	s := &Store{
		Config:   cfg,
		FS:       fs.NewOSFS(),
		HashAlgo: hashing.AlgoSHA256,
		Log:      zerolog.Nop(),
	}
	if opts != nil {
		if opts.FS != nil {
			s.FS = opts.FS
		}
		if opts.HashAlgo != "" {
			s.HashAlgo = opts.HashAlgo
		}
		if opts.Log != nil {
			s.Log = *opts.Log
		}
		s.Progress = opts.Progress
	}

	hash, err := hashing.New(s.HashAlgo)
	if err != nil {
		return nil, err
	}
	s.Hash = hash
	return s, nil
}

// WorkingPath maps a tree-relative slash path to its location in the
// working tree.
func (s *Store) WorkingPath(rel string) (string, error) {
	return resolve(s.Config.WorkingTreeDir, rel)
}

// StoredPath maps a tree-relative slash path to its copy in the store.
func (s *Store) StoredPath(rel string) (string, error) {
	return resolve(s.Config.StoreDir(), rel)
}

// ReadStored returns the snapshot copy of rel.
func (s *Store) ReadStored(rel string) ([]byte, error) {
	p, err := s.StoredPath(rel)
	if err != nil {
		return nil, err
	}
	data, err := s.FS.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("read stored %q: %w", rel, err)
	}
	return data, nil
}

// WriteStored places data in the store at rel, creating parent directories.
func (s *Store) WriteStored(rel string, data []byte) error {
	p, err := s.StoredPath(rel)
	if err != nil {
		return err
	}
	if err := s.FS.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("create store dir for %q: %w", rel, err)
	}
	if err := s.FS.WriteFile(p, data, 0o644); err != nil {
		return fmt.Errorf("write stored %q: %w", rel, err)
	}
	return nil
}

// reset discards the previous index and store and creates an empty store.
// The index goes first, so an aborted snapshot leaves no index behind.
func (s *Store) reset() error {
	if err := s.FS.RemoveAll(s.Config.IndexFile()); err != nil {
		return fmt.Errorf("remove index: %w", err)
	}
	dir := s.Config.StoreDir()
	if err := s.FS.RemoveAll(dir); err != nil {
		return fmt.Errorf("remove store %q: %w", dir, err)
	}
	if err := s.FS.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create store %q: %w", dir, err)
	}
	return nil
}

func resolve(base, rel string) (string, error) {
	native := filepath.FromSlash(rel)
	if !filepath.IsLocal(native) {
		return "", fmt.Errorf("%q: %w", rel, ErrPathEscapesRoot)
	}
	return filepath.Join(base, native), nil
}
