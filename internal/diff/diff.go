package diff

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/rs/zerolog"

	"github.com/keshon/qop/internal/patch"
	"github.com/keshon/qop/internal/store"
)

// ErrNotText is returned for content that is not valid UTF-8.
var ErrNotText = errors.New("content is not valid UTF-8 text")

// Engine compares the working tree with the snapshot held by Store.
type Engine struct {
	Store *store.Store
	Log   zerolog.Logger
}

func NewEngine(s *store.Store, log zerolog.Logger) *Engine {
	return &Engine{Store: s, Log: log}
}

// Diff builds a patch turning the snapshot into the working tree, or the
// working tree back into the snapshot when reverse is set. Files whose hash
// still matches the index are skipped; any read error aborts the whole diff.
func (e *Engine) Diff(idx *store.Index, reverse bool) (*patch.Patch, error) {
	hash, err := e.Store.Hasher(idx)
	if err != nil {
		return nil, err
	}

	p := patch.New()
	for _, path := range idx.Paths() {
		workingPath, err := e.Store.WorkingPath(path)
		if err != nil {
			return nil, err
		}
		working, err := e.Store.FS.ReadFile(workingPath)
		if err != nil {
			return nil, fmt.Errorf("read %q: %w", path, err)
		}
		if hash(working) == idx.Files[path] {
			continue
		}

		stored, err := e.Store.ReadStored(path)
		if err != nil {
			return nil, err
		}

		before, after := stored, working
		if reverse {
			before, after = working, stored
		}
		sections, err := Text(before, after)
		if err != nil {
			return nil, fmt.Errorf("diff %q: %w", path, err)
		}
		e.Log.Debug().Str("path", path).Int("sections", len(sections)).Msg("modified")
		p.Add(path, sections...)
	}
	return p, nil
}

// Text diffs two UTF-8 documents line by line.
func Text(before, after []byte) ([]patch.Section, error) {
	if !utf8.Valid(before) || !utf8.Valid(after) {
		return nil, ErrNotText
	}
	a, _ := patch.SplitLines(string(before))
	b, _ := patch.SplitLines(string(after))
	return Lines(a, b), nil
}

// Lines turns every non-equal opcode between a and b into one section
// anchored at the opcode's start in b.
func Lines(a, b []string) []patch.Section {
	var out []patch.Section
	m := difflib.NewMatcher(a, b)
	for _, op := range m.GetOpCodes() {
		if op.Tag == 'e' {
			continue
		}
		out = append(out, patch.Action{
			Anchor: op.J1,
			Remove: a[op.I1:op.I2],
			Insert: b[op.J1:op.J2],
		}.Encode())
	}
	return out
}
