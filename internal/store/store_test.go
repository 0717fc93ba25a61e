package store

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshon/qop/internal/config"
	"github.com/keshon/qop/internal/fs"
	"github.com/keshon/qop/internal/hashing"
)

// newMemStore returns a store over an in-memory tree rooted at "tree".
func newMemStore(t *testing.T, files map[string]string) (*Store, *fs.MemoryFS) {
	t.Helper()
	mem := fs.NewMemoryFS()
	require.NoError(t, mem.MkdirAll("tree", 0o755))
	for p, body := range files {
		full := filepath.Join("tree", filepath.FromSlash(p))
		require.NoError(t, mem.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, mem.WriteFile(full, []byte(body), 0o644))
	}
	s, err := NewStore(config.NewRepoConfig("tree"), &Options{FS: mem})
	require.NoError(t, err)
	return s, mem
}

func TestSnapshotCopiesAndHashes(t *testing.T) {
	s, mem := newMemStore(t, map[string]string{
		"a.txt":         "one\ntwo\n",
		"sub/b.txt":     "bee",
		"sub/deep/c.md": "",
	})

	idx, err := s.Snapshot()
	require.NoError(t, err)

	assert.Equal(t, []string{"a.txt", "sub/b.txt", "sub/deep/c.md"}, idx.Paths())
	assert.Nil(t, idx.Latest)
	assert.Empty(t, idx.Entries)

	for _, p := range idx.Paths() {
		working, err := mem.ReadFile(filepath.Join("tree", filepath.FromSlash(p)))
		require.NoError(t, err)
		stored, err := s.ReadStored(p)
		require.NoError(t, err)
		assert.Equal(t, working, stored, p)
		assert.Equal(t, hashing.SHA256(working), idx.Files[p], p)
	}
}

func TestSnapshotSkipsRepoDir(t *testing.T) {
	s, _ := newMemStore(t, map[string]string{
		"a.txt":          "x",
		".qop/junk.toml": "junk",
	})

	idx, err := s.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt"}, idx.Paths())
}

func TestSnapshotReplacesPreviousStore(t *testing.T) {
	s, mem := newMemStore(t, map[string]string{"a.txt": "x", "b.txt": "y"})
	_, err := s.Snapshot()
	require.NoError(t, err)

	require.NoError(t, mem.Remove("tree/b.txt"))
	idx, err := s.Snapshot()
	require.NoError(t, err)

	assert.Equal(t, []string{"a.txt"}, idx.Paths())
	_, err = s.ReadStored("b.txt")
	assert.True(t, mem.IsNotExist(err), "stale copy must be gone")
}

func TestSnapshotIdempotent(t *testing.T) {
	s, _ := newMemStore(t, map[string]string{"a.txt": "x", "d/e.txt": "y"})

	first, err := s.Snapshot()
	require.NoError(t, err)
	second, err := s.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, first.Files, second.Files)
}

func TestSnapshotIgnoreComposition(t *testing.T) {
	s, _ := newMemStore(t, map[string]string{
		".qopfile":           `ignore = ["a/b/secret", "build"]`,
		"a/.qopfile":         `ignore = ["local.txt"]`,
		"a/local.txt":        "ignored by a",
		"a/keep.txt":         "kept",
		"a/b/.qopfile":       `ignore = []`,
		"a/b/secret/key.pem": "ignored by root at depth",
		"a/b/public.txt":     "kept",
		"build/out.bin":      "ignored",
		"buildnotes.txt":     "kept, prefix match is per component",
		"z/local.txt":        "kept, a's manifest does not leak to siblings",
	})

	idx, err := s.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, []string{
		".qopfile",
		"a/.qopfile",
		"a/b/.qopfile",
		"a/b/public.txt",
		"a/keep.txt",
		"buildnotes.txt",
		"z/local.txt",
	}, idx.Paths())

	_, err = s.ReadStored("a/b/secret/key.pem")
	assert.Error(t, err)
}

func TestSnapshotMalformedManifestAborts(t *testing.T) {
	s, _ := newMemStore(t, map[string]string{
		"a.txt":        "x",
		"sub/.qopfile": `ignore = "not a list"`,
	})

	_, err := s.Snapshot()
	assert.Error(t, err)

	_, err = s.LoadIndex()
	assert.ErrorIs(t, err, ErrNoSnapshot)
}

func TestFailedSnapshotDropsPreviousIndex(t *testing.T) {
	s, mem := newMemStore(t, map[string]string{"a.txt": "x"})
	_, err := s.Snapshot()
	require.NoError(t, err)
	_, err = s.LoadIndex()
	require.NoError(t, err)

	require.NoError(t, mem.WriteFile("tree/.qopfile", []byte("ignore = ["), 0o644))
	_, err = s.Snapshot()
	require.Error(t, err)

	_, err = s.LoadIndex()
	assert.ErrorIs(t, err, ErrNoSnapshot)
}

func TestSnapshotRecordsHashAlgorithm(t *testing.T) {
	s, _ := newMemStore(t, map[string]string{"a.txt": "x"})
	_, err := s.Snapshot()
	require.NoError(t, err)
	loaded, err := s.LoadIndex()
	require.NoError(t, err)
	assert.Equal(t, hashing.AlgoSHA256, loaded.Hash)

	xs, err := NewStore(s.Config, &Options{FS: s.FS, HashAlgo: hashing.AlgoXXH3})
	require.NoError(t, err)
	idx, err := xs.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, hashing.AlgoXXH3, idx.Hash)
	assert.Equal(t, hashing.XXH3([]byte("x")), idx.Files["a.txt"])
}

func TestIndexHasher(t *testing.T) {
	s, _ := newMemStore(t, nil)
	data := []byte("content")

	for algo, want := range map[string]string{
		"":                 hashing.SHA256(data),
		hashing.AlgoSHA256: hashing.SHA256(data),
		hashing.AlgoXXH3:   hashing.XXH3(data),
	} {
		h, err := s.Hasher(&Index{Hash: algo})
		require.NoError(t, err, algo)
		assert.Equal(t, want, h(data), algo)
	}

	_, err := s.Hasher(&Index{Hash: "md5"})
	assert.Error(t, err)

	_, err = NewStore(s.Config, &Options{HashAlgo: "md5"})
	assert.Error(t, err)
}

func TestSnapshotUnreadableFileAborts(t *testing.T) {
	s, _ := newMemStore(t, map[string]string{"a.txt": "x"})
	s.FS = &failingReadFS{FS: s.FS, fail: filepath.Join("tree", "a.txt")}

	_, err := s.Snapshot()
	assert.Error(t, err)
}

func TestSnapshotProgress(t *testing.T) {
	s, _ := newMemStore(t, map[string]string{"a.txt": "x", "b.txt": "y"})
	var buf bytes.Buffer
	s.Progress = &buf

	_, err := s.Snapshot()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "(2 files")
}

func TestIndexRoundTrip(t *testing.T) {
	s, _ := newMemStore(t, map[string]string{"a.txt": "x", "sub/b.txt": "y"})
	idx, err := s.Snapshot()
	require.NoError(t, err)

	loaded, err := s.LoadIndex()
	require.NoError(t, err)
	assert.Equal(t, idx.Files, loaded.Files)
	assert.Nil(t, loaded.Latest)
}

func TestLoadIndexInvalid(t *testing.T) {
	s, mem := newMemStore(t, nil)
	require.NoError(t, mem.MkdirAll(s.Config.RepoDir, 0o755))
	require.NoError(t, mem.WriteFile(s.Config.IndexFile(), []byte("files = ["), 0o644))

	_, err := s.LoadIndex()
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrNoSnapshot))
}

func TestStoredPathRejectsEscapes(t *testing.T) {
	s, _ := newMemStore(t, nil)
	for _, p := range []string{"../outside.txt", "/etc/passwd", "a/../../b", ""} {
		_, err := s.StoredPath(p)
		assert.ErrorIs(t, err, ErrPathEscapesRoot, p)
		_, err = s.WorkingPath(p)
		assert.ErrorIs(t, err, ErrPathEscapesRoot, p)
	}
}

func TestSnapshotOnDisk(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("one\n"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "b.txt"), []byte("two\n"), 0o644))

	s, err := NewStore(config.NewRepoConfig(root), nil)
	require.NoError(t, err)
	idx, err := s.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "sub/b.txt"}, idx.Paths())

	data, err := os.ReadFile(filepath.Join(root, ".qop", "store", "sub", "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "two\n", string(data))

	raw, err := os.ReadFile(filepath.Join(root, ".qop", "index.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[files]")
	assert.NotContains(t, string(raw), "latest")
}

type failingReadFS struct {
	fs.FS
	fail string
}

func (f *failingReadFS) ReadFile(p string) ([]byte, error) {
	if filepath.Clean(p) == filepath.Clean(f.fail) {
		return nil, os.ErrPermission
	}
	return f.FS.ReadFile(p)
}
