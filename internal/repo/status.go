package repo

import (
	"fmt"
)

// State of a tracked file relative to the snapshot.
type State string

const (
	Modified State = "modified"
	Missing  State = "missing"
)

// Change is one tracked file that no longer matches the snapshot.
type Change struct {
	Path  string
	State State
}

// Status compares every indexed file with the working tree by hash and
// returns the ones that changed, sorted by path.
func (r *Repository) Status() ([]Change, error) {
	idx, err := r.Store.LoadIndex()
	if err != nil {
		return nil, err
	}

	hash, err := r.Store.Hasher(idx)
	if err != nil {
		return nil, err
	}

	var changes []Change
	for _, rel := range idx.Paths() {
		target, err := r.Store.WorkingPath(rel)
		if err != nil {
			return nil, err
		}
		data, err := r.Store.FS.ReadFile(target)
		switch {
		case err != nil && r.Store.FS.IsNotExist(err):
			changes = append(changes, Change{Path: rel, State: Missing})
		case err != nil:
			return nil, fmt.Errorf("read %q: %w", rel, err)
		case hash(data) != idx.Files[rel]:
			changes = append(changes, Change{Path: rel, State: Modified})
		}
	}
	return changes, nil
}
