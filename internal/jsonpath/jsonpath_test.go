package jsonpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		expr     string
		expected Path
	}{
		{name: "root", expr: "$", expected: Path{}},
		{name: "member", expr: "$.id", expected: Path{{Kind: KeySegment, Key: "id"}}},
		{
			name: "nested members and index",
			expr: "$.a.b[2]",
			expected: Path{
				{Kind: KeySegment, Key: "a"},
				{Kind: KeySegment, Key: "b"},
				{Kind: IndexSegment, Index: 2},
			},
		},
		{
			name: "star and empty wildcards",
			expr: "$.a[*].b[]",
			expected: Path{
				{Kind: KeySegment, Key: "a"},
				{Kind: WildcardSegment},
				{Kind: KeySegment, Key: "b"},
				{Kind: WildcardSegment},
			},
		},
		{
			name:     "quoted member",
			expr:     "$['a.b']",
			expected: Path{{Kind: KeySegment, Key: "a.b"}},
		},
		{name: "no root marker", expr: ".id", expected: Path{{Kind: KeySegment, Key: "id"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, p)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	for _, expr := range []string{"$.", "$[abc]", "$[-1]", "$[1", "$x", "$['a"} {
		t.Run(expr, func(t *testing.T) {
			_, err := Parse(expr)
			assert.Error(t, err)
		})
	}
}

func TestPath_String(t *testing.T) {
	p := Root.Key("words").Index(3).Key("a b").Wildcard()
	assert.Equal(t, "$.words[3]['a b'][*]", p.String())

	reparsed, err := Parse(p.String())
	require.NoError(t, err)
	assert.Equal(t, p, reparsed)
}

func TestPath_ExtendDoesNotAlias(t *testing.T) {
	base := make(Path, 0, 8).Key("a")
	left := base.Index(0)
	right := base.Index(1)

	assert.Equal(t, "$.a[0]", left.String())
	assert.Equal(t, "$.a[1]", right.String())
}

func TestPath_Matches(t *testing.T) {
	tests := []struct {
		pattern  string
		concrete Path
		expected bool
	}{
		{pattern: "$.words", concrete: Root.Key("words"), expected: true},
		{pattern: "$.words", concrete: Root.Key("other"), expected: false},
		{pattern: "$.groups[*].members", concrete: Root.Key("groups").Index(4).Key("members"), expected: true},
		{pattern: "$.groups[1].members", concrete: Root.Key("groups").Index(4).Key("members"), expected: false},
		{pattern: "$[*]", concrete: Root.Key("x"), expected: false},
		{pattern: "$.a", concrete: Root.Key("a").Index(0), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			assert.Equal(t, tt.expected, MustParse(tt.pattern).Matches(tt.concrete))
		})
	}
}

func TestMustParse_Panics(t *testing.T) {
	assert.Panics(t, func() { MustParse("$[") })
}
