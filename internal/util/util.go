package util

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/keshon/qop/internal/fs"
)

// WriteFileAtomic writes data next to path in a temp file and renames it into
// place, so readers never observe a half-written file.
func WriteFileAtomic(fsys fs.FS, path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir %q: %w", dir, err)
	}

	tmp, tmpPath, err := fsys.CreateTempFile(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file in %q: %w", dir, err)
	}
	defer fsys.Remove(tmpPath) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	// os.CreateTemp opens with 0600
	if f, ok := tmp.(interface{ Chmod(os.FileMode) error }); ok {
		if err := f.Chmod(perm); err != nil {
			tmp.Close()
			return fmt.Errorf("chmod temp file: %w", err)
		}
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := fsys.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename %q to %q: %w", tmpPath, path, err)
	}
	return nil
}

// SortedKeys returns the keys of a map sorted alphabetically.
func SortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
