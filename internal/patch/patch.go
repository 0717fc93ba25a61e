package patch

import (
	"sort"
	"strings"

	"github.com/keshon/qop/internal/util"
)

// Section is one contiguous edit. Anchor is the 0-based line index, in the
// post-edit file, where the edit begins. Payload holds the touched lines,
// each prefixed with '-' (removed) or '+' (inserted) and ended by '\n'.
type Section struct {
	Anchor  int
	Payload string
}

// Action is the decoded form of a Section.
type Action struct {
	Anchor int
	Remove []string
	Insert []string
}

// Patch maps tree-relative file paths to their sections, sorted by anchor.
type Patch struct {
	Files map[string][]Section
}

func New() *Patch {
	return &Patch{Files: map[string][]Section{}}
}

// Add appends sections for path and keeps them in anchor order. Adding no
// sections leaves the patch unchanged.
func (p *Patch) Add(path string, sections ...Section) {
	if len(sections) == 0 {
		return
	}
	if p.Files == nil {
		p.Files = map[string][]Section{}
	}
	all := append(p.Files[path], sections...)
	sortSections(all)
	p.Files[path] = all
}

// Paths returns the patched files in sorted order.
func (p *Patch) Paths() []string {
	return util.SortedKeys(p.Files)
}

// Empty reports whether the patch changes nothing.
func (p *Patch) Empty() bool {
	return len(p.Files) == 0
}

func sortSections(s []Section) {
	sort.SliceStable(s, func(i, j int) bool { return s[i].Anchor < s[j].Anchor })
}

// Decode splits the payload by prefix. Lines with any other prefix carry no
// edit and are skipped.
func (s Section) Decode() Action {
	a := Action{Anchor: s.Anchor}
	for _, line := range payloadLines(s.Payload) {
		switch {
		case strings.HasPrefix(line, "-"):
			a.Remove = append(a.Remove, line[1:])
		case strings.HasPrefix(line, "+"):
			a.Insert = append(a.Insert, line[1:])
		}
	}
	return a
}

// Encode renders the action as a section: removals first, then insertions.
func (a Action) Encode() Section {
	var b strings.Builder
	for _, l := range a.Remove {
		b.WriteString("-" + l + "\n")
	}
	for _, l := range a.Insert {
		b.WriteString("+" + l + "\n")
	}
	return Section{Anchor: a.Anchor, Payload: b.String()}
}

// Actions decodes every section of one file, sorted by anchor.
func Actions(sections []Section) []Action {
	sorted := append([]Section(nil), sections...)
	sortSections(sorted)
	out := make([]Action, 0, len(sorted))
	for _, s := range sorted {
		out = append(out, s.Decode())
	}
	return out
}

func payloadLines(payload string) []string {
	if payload == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(payload, "\n"), "\n")
}
