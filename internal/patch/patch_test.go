package patch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSectionDecodeEncode(t *testing.T) {
	s := Section{Anchor: 4, Payload: "-two\n+TWO\n+four\n"}
	a := s.Decode()

	assert.Equal(t, 4, a.Anchor)
	assert.Equal(t, []string{"two"}, a.Remove)
	assert.Equal(t, []string{"TWO", "four"}, a.Insert)
	assert.Equal(t, s, a.Encode())
}

func TestSectionDecodeSkipsContextAndKeepsEmptyLines(t *testing.T) {
	a := Section{Payload: " context\n-\n+\n+x"}.Decode()
	assert.Equal(t, []string{""}, a.Remove)
	assert.Equal(t, []string{"", "x"}, a.Insert)
}

func TestPatchAddKeepsAnchorOrder(t *testing.T) {
	p := New()
	p.Add("a.txt", Section{Anchor: 10, Payload: "+c\n"}, Section{Anchor: 2, Payload: "+a\n"})
	p.Add("a.txt", Section{Anchor: 5, Payload: "+b\n"})
	p.Add("b.txt")

	var anchors []int
	for _, s := range p.Files["a.txt"] {
		anchors = append(anchors, s.Anchor)
	}
	assert.Equal(t, []int{2, 5, 10}, anchors)
	assert.Equal(t, []string{"a.txt"}, p.Paths(), "adding no sections must not create an entry")
}

func TestSplitJoinLines(t *testing.T) {
	cases := []struct {
		text     string
		lines    []string
		trailing bool
	}{
		{"", nil, false},
		{"\n", []string{""}, true},
		{"a", []string{"a"}, false},
		{"a\n", []string{"a"}, true},
		{"a\n\nb", []string{"a", "", "b"}, false},
		{"a\r\nb\r\n", []string{"a\r", "b\r"}, true},
	}
	for _, tt := range cases {
		lines, trailing := SplitLines(tt.text)
		assert.Equal(t, tt.lines, lines, "%q", tt.text)
		assert.Equal(t, tt.trailing, trailing, "%q", tt.text)
		assert.Equal(t, tt.text, JoinLines(lines, trailing), "%q", tt.text)
	}
}
