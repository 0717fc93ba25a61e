package ignore

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/keshon/qop/internal/config"
	"github.com/keshon/qop/internal/fs"
)

// Manifest is the decoded form of a .qopfile.
type Manifest struct {
	Ignore []string `toml:"ignore"`
}

// ReadManifest loads the manifest in dir. A missing manifest yields an empty
// pattern list; a malformed one is an error.
func ReadManifest(fsys fs.FS, dir string) ([]string, error) {
	p := filepath.Join(dir, config.ManifestFile)
	data, err := fsys.ReadFile(p)
	if err != nil {
		if fsys.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read manifest %q: %w", p, err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %q: %w", p, err)
	}
	return m.Ignore, nil
}

// Scope is the set of exclusions in force for one directory: its own manifest
// plus those of all its ancestors. Scopes are values; Push never changes the
// receiver, so sibling subtrees cannot see each other's patterns.
type Scope struct {
	patterns []string // tree-relative, slash separated, cleaned
}

// NewScope returns a scope excluding the given tree-relative paths.
func NewScope(static ...string) Scope {
	return Scope{}.Push(".", static)
}

// Push returns a scope extended with patterns declared in relDir.
func (s Scope) Push(relDir string, patterns []string) Scope {
	if len(patterns) == 0 {
		return s
	}
	next := make([]string, len(s.patterns), len(s.patterns)+len(patterns))
	copy(next, s.patterns)
	base := filepath.ToSlash(relDir)
	for _, p := range patterns {
		next = append(next, path.Clean(path.Join(base, filepath.ToSlash(p))))
	}
	return Scope{patterns: next}
}

// Match reports whether rel (tree-relative) is excluded: some pattern is a
// whole-component prefix of it.
func (s Scope) Match(rel string) bool {
	rel = path.Clean(filepath.ToSlash(rel))
	for _, p := range s.patterns {
		if p == "." || rel == p || strings.HasPrefix(rel, p+"/") {
			return true
		}
	}
	return false
}

// Patterns returns a copy of the patterns in force.
func (s Scope) Patterns() []string {
	return append([]string(nil), s.patterns...)
}
