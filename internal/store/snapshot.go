package store

import (
	"fmt"
	"path"
	"path/filepath"

	"github.com/keshon/qop/internal/config"
	"github.com/keshon/qop/internal/progress"
	"github.com/keshon/qop/internal/store/ignore"
)

// Snapshot discards the previous store, copies every non-ignored file of the
// working tree into it and writes a fresh index. Any error aborts the whole
// snapshot; the store is left cleared.
func (s *Store) Snapshot() (*Index, error) {
	if err := s.reset(); err != nil {
		return nil, err
	}

	bar := progress.NewProgress(s.Progress, 0, "Snapshotting files")
	idx := NewIndex()
	idx.Hash = s.HashAlgo
	scope := ignore.NewScope(config.RepoDir)
	if err := s.walk(".", scope, idx, bar); err != nil {
		return nil, err
	}
	bar.Finish()

	if err := s.SaveIndex(idx); err != nil {
		return nil, err
	}
	s.Log.Info().Int("files", len(idx.Files)).Str("store", s.Config.StoreDir()).Msg("snapshot written")
	return idx, nil
}

// walk visits rel (a tree-relative directory). scope is passed by value, so
// the patterns pushed here are dropped when the call returns.
func (s *Store) walk(rel string, scope ignore.Scope, idx *Index, bar *progress.Tracker) error {
	dir := filepath.Join(s.Config.WorkingTreeDir, filepath.FromSlash(rel))

	patterns, err := ignore.ReadManifest(s.FS, dir)
	if err != nil {
		return err
	}
	scope = scope.Push(rel, patterns)

	entries, err := s.FS.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read dir %q: %w", dir, err)
	}

	for _, e := range entries {
		child := path.Join(rel, e.Name())
		if scope.Match(child) {
			s.Log.Debug().Str("path", child).Msg("ignored")
			continue
		}

		if e.IsDir() {
			stored, err := s.StoredPath(child)
			if err != nil {
				return err
			}
			if err := s.FS.MkdirAll(stored, 0o755); err != nil {
				return fmt.Errorf("create store dir %q: %w", stored, err)
			}
			if err := s.walk(child, scope, idx, bar); err != nil {
				return err
			}
			continue
		}

		data, err := s.FS.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return fmt.Errorf("read %q: %w", child, err)
		}
		if err := s.WriteStored(child, data); err != nil {
			return err
		}
		idx.Files[child] = s.Hash(data)
		bar.Increment()
		s.Log.Debug().Str("path", child).Str("hash", idx.Files[child]).Msg("stored")
	}
	return nil
}
