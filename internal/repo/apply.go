package repo

import (
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/keshon/qop/internal/config"
	"github.com/keshon/qop/internal/diff"
	"github.com/keshon/qop/internal/patch"
	"github.com/keshon/qop/internal/util"
)

// ApplyReport lists what Apply changed.
type ApplyReport struct {
	Files   []string                  // files rewritten, in patch order
	Dropped map[string][]patch.Action // actions skipped under the truncate policy
}

// ReadPatch decodes a patch from a file path, or from standard input when
// source is "-".
func (r *Repository) ReadPatch(source string) (*patch.Patch, error) {
	var in io.Reader
	if source == config.StdinSource {
		in = r.Stdin
	} else {
		data, err := r.Store.FS.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("read patch %q: %w", source, err)
		}
		in = bytes.NewReader(data)
	}

	p, err := patch.Decode(in)
	if err != nil {
		return nil, fmt.Errorf("read patch %q: %w", source, err)
	}
	return p, nil
}

// Apply reads the patch at source and rewrites every file it names. Files
// are written one at a time; a failure leaves earlier files already patched.
func (r *Repository) Apply(source string) (*ApplyReport, error) {
	p, err := r.ReadPatch(source)
	if err != nil {
		return nil, err
	}

	report := &ApplyReport{Dropped: map[string][]patch.Action{}}
	policy := r.Policy()
	for _, rel := range p.Paths() {
		dropped, err := r.applyFile(rel, p.Files[rel], policy)
		if err != nil {
			return report, err
		}
		report.Files = append(report.Files, rel)
		if len(dropped) > 0 {
			report.Dropped[rel] = dropped
			r.Log.Warn().
				Str("path", rel).
				Int("dropped", len(dropped)).
				Int("anchor", dropped[0].Anchor).
				Msg("anchor past end of file, remaining sections dropped")
		}
	}
	r.Log.Info().Int("files", len(report.Files)).Msg("patch applied")
	return report, nil
}

func (r *Repository) applyFile(rel string, sections []patch.Section, policy patch.Policy) ([]patch.Action, error) {
	target, err := r.Store.WorkingPath(rel)
	if err != nil {
		return nil, err
	}

	fsys := r.Store.FS
	info, err := fsys.Stat(target)
	if err != nil {
		return nil, fmt.Errorf("apply %q: %w", rel, err)
	}
	data, err := fsys.ReadFile(target)
	if err != nil {
		return nil, fmt.Errorf("apply %q: %w", rel, err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("apply %q: %w", rel, diff.ErrNotText)
	}

	text, dropped, err := patch.ApplyText(string(data), sections, policy)
	if err != nil {
		return nil, fmt.Errorf("apply %q: %w", rel, err)
	}
	if err := util.WriteFileAtomic(fsys, target, []byte(text), info.Mode().Perm()); err != nil {
		return nil, fmt.Errorf("apply %q: %w", rel, err)
	}
	r.Log.Debug().Str("path", rel).Int("sections", len(sections)).Msg("patched")
	return dropped, nil
}
