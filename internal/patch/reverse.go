package patch

import "strings"

// Reverse returns the patch that undoes p: applied to the post-edit tree it
// restores the pre-edit tree.
//
// Anchors live in post-edit coordinates, which become pre-edit coordinates
// once the patch is inverted. Each reversed section is therefore re-anchored
// at anchor + sum(removed) - sum(inserted) over the sections before it.
func Reverse(p *Patch) *Patch {
	out := New()
	for path, sections := range p.Files {
		sorted := append([]Section(nil), sections...)
		sortSections(sorted)

		reversed := make([]Section, 0, len(sorted))
		delta := 0
		for _, s := range sorted {
			a := s.Decode()
			reversed = append(reversed, Section{
				Anchor:  s.Anchor + delta,
				Payload: flipPayload(s.Payload),
			})
			delta += len(a.Remove) - len(a.Insert)
		}
		out.Add(path, reversed...)
	}
	return out
}

// flipPayload swaps '+' and '-' prefixes, keeping line order.
func flipPayload(payload string) string {
	if payload == "" {
		return ""
	}
	lines := strings.SplitAfter(payload, "\n")
	for i, l := range lines {
		switch {
		case strings.HasPrefix(l, "+"):
			lines[i] = "-" + l[1:]
		case strings.HasPrefix(l, "-"):
			lines[i] = "+" + l[1:]
		}
	}
	return strings.Join(lines, "")
}
