package patch

import (
	"errors"
	"fmt"
	"sort"
)

// Policy decides what happens when a section points past the content that
// is left in the file.
type Policy string

const (
	// Strict rejects out-of-range anchors, removals past the end of the file
	// and removed lines that differ from the file.
	Strict Policy = "strict"
	// Truncate stops at the first out-of-range anchor and drops the
	// remaining actions for that file.
	Truncate Policy = "truncate"
)

var (
	ErrAnchorOutOfRange = errors.New("anchor beyond end of file")
	ErrRemoveMismatch   = errors.New("removed line does not match file content")
	ErrAnchorOverlap    = errors.New("section overlaps the previous one")
)

// Result is the outcome of applying actions to one file.
type Result struct {
	Lines   []string
	Dropped []Action // actions skipped under Truncate
}

// ApplyLines rebuilds new content from old lines and actions. Actions are
// sorted by anchor first, so their order in the input does not matter.
func ApplyLines(old []string, actions []Action, policy Policy) (Result, error) {
	sorted := append([]Action(nil), actions...)
	sortActions(sorted)

	out := make([]string, 0, len(old))
	cur := 0
	for i, a := range sorted {
		if a.Anchor < len(out) && policy != Truncate {
			return Result{}, fmt.Errorf("anchor %d: %w", a.Anchor, ErrAnchorOverlap)
		}

		for len(out) < a.Anchor {
			if cur >= len(old) {
				if policy == Truncate {
					return Result{Lines: out, Dropped: sorted[i:]}, nil
				}
				return Result{}, fmt.Errorf("anchor %d past line %d: %w", a.Anchor, len(out), ErrAnchorOutOfRange)
			}
			out = append(out, old[cur])
			cur++
		}

		for _, want := range a.Remove {
			if cur >= len(old) {
				if policy == Truncate {
					break
				}
				return Result{}, fmt.Errorf("anchor %d removes past end of file: %w", a.Anchor, ErrAnchorOutOfRange)
			}
			if policy != Truncate && old[cur] != want {
				return Result{}, fmt.Errorf("line %d: want %q, found %q: %w", cur+1, want, old[cur], ErrRemoveMismatch)
			}
			cur++
		}

		out = append(out, a.Insert...)
	}
	out = append(out, old[cur:]...)
	return Result{Lines: out}, nil
}

// ApplyText applies the sections of one file to its full text. The result
// ends with a newline if and only if text did.
func ApplyText(text string, sections []Section, policy Policy) (string, []Action, error) {
	lines, trailing := SplitLines(text)
	res, err := ApplyLines(lines, Actions(sections), policy)
	if err != nil {
		return "", nil, err
	}
	return JoinLines(res.Lines, trailing), res.Dropped, nil
}

func sortActions(a []Action) {
	sort.SliceStable(a, func(i, j int) bool { return a[i].Anchor < a[j].Anchor })
}
