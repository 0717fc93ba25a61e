package patch

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// ErrBadAnchor is returned for section keys that are not non-negative
// integers.
var ErrBadAnchor = errors.New("invalid section anchor")

// document is the TOML shape of a patch: files.<path>.<anchor> = <payload>.
type document struct {
	Files map[string]map[string]string `toml:"files"`
}

// Decode parses a patch. Empty input is an empty patch.
func Decode(r io.Reader) (*Patch, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read patch: %w", err)
	}

	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse patch: %w", err)
	}

	p := New()
	for path, sections := range doc.Files {
		decoded := make([]Section, 0, len(sections))
		for key, payload := range sections {
			anchor, err := strconv.Atoi(key)
			if err != nil || anchor < 0 || strconv.Itoa(anchor) != key {
				return nil, fmt.Errorf("%s: %q: %w", path, key, ErrBadAnchor)
			}
			decoded = append(decoded, Section{Anchor: anchor, Payload: payload})
		}
		p.Add(path, decoded...)
	}
	return p, nil
}

// Encode writes p as TOML. Files are sorted by path and sections by numeric
// anchor, which a generic TOML encoder cannot do for string-keyed maps
// ("10" sorts before "2").
func Encode(w io.Writer, p *Patch) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("[files]\n")
	for _, path := range p.Paths() {
		sections := append([]Section(nil), p.Files[path]...)
		sortSections(sections)

		fmt.Fprintf(bw, "\n[files.%s]\n", quoteKey(path))
		for _, s := range sections {
			fmt.Fprintf(bw, "%d = \"\"\"\n%s\"\"\"\n", s.Anchor, escapeMultiline(s.Payload))
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write patch: %w", err)
	}
	return nil
}

// quoteKey renders key as a TOML literal key ('a.txt'), or as a basic-string
// key when a literal one cannot hold it.
func quoteKey(key string) string {
	if literalSafe(key) {
		return "'" + key + "'"
	}
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range key {
		switch {
		case r == '"':
			b.WriteString(`\"`)
		case r == '\\':
			b.WriteString(`\\`)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\t':
			b.WriteString(`\t`)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&b, `\u%04X`, r)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// literalSafe reports whether key fits in a TOML literal string: no single
// quote and no control characters other than tab.
func literalSafe(key string) bool {
	for _, r := range key {
		if r == '\'' || r == 0x7f || (r < 0x20 && r != '\t') {
			return false
		}
	}
	return true
}

// escapeMultiline escapes s for a TOML multi-line basic string. Newlines
// and tabs stay literal; every quote is escaped so no run of three quotes
// can close the string early.
func escapeMultiline(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '\n', r == '\t':
			b.WriteRune(r)
		case r == '"':
			b.WriteString(`\"`)
		case r == '\\':
			b.WriteString(`\\`)
		case r == '\r':
			b.WriteString(`\r`)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&b, `\u%04X`, r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
