package rules

import (
	"testing"

	"github.com/mcncl/jsoncompare/internal/jsonpath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArrayPath(t *testing.T) {
	tests := []struct {
		pattern  string
		expected string
		ok       bool
	}{
		{pattern: "$.words[*]", expected: "$.words", ok: true},
		{pattern: "$.words[]", expected: "$.words", ok: true},
		{pattern: "$.a[*].b[*]", expected: "$.a[*].b", ok: true},
		{pattern: "$.a[*].b", expected: "$.a", ok: true},
		{pattern: "$.a[].b[*].c", expected: "$.a[].b", ok: true},
		{pattern: "$.a[*].b[].c", expected: "$.a[*].b", ok: true},
		{pattern: "$[*]", expected: "$", ok: true},
		{pattern: "$.words", ok: false},
		{pattern: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got, ok := ArrayPath(tt.pattern)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNormalize(t *testing.T) {
	idx := Normalize(map[string]string{
		"$.words[*]":           "$.id",
		"$.users[]":            "$.name",
		"$.groups[*].items[*]": "$.rank",
		"$.plain":              "$.id",
		"$.broken[x][*]":       "$.id",
	})

	require.Equal(t, 3, idx.Len())

	r, ok := idx.Lookup(jsonpath.MustParse("$.words"))
	require.True(t, ok)
	assert.Equal(t, "$.id", r.KeyExpr)
	assert.Equal(t, "$.id", r.Key.Source)
	assert.True(t, r.Key.Valid())
	assert.Equal(t, "$.words[*]", r.Pattern)

	r, ok = idx.Lookup(jsonpath.MustParse("$.users"))
	require.True(t, ok)
	assert.Equal(t, "$.name", r.KeyExpr)

	r, ok = idx.Lookup(jsonpath.Root.Key("groups").Index(3).Key("items"))
	require.True(t, ok)
	assert.Equal(t, "$.rank", r.KeyExpr)

	_, ok = idx.Lookup(jsonpath.MustParse("$.plain"))
	assert.False(t, ok)
}

func TestNormalize_UnparsableKeyKeepsRule(t *testing.T) {
	idx := Normalize(map[string]string{
		"$.badkey[*]": "$[",
		"$.blank[*]":  "",
	})

	require.Equal(t, 2, idx.Len())
	for _, path := range []string{"$.badkey", "$.blank"} {
		r, ok := idx.Lookup(jsonpath.MustParse(path))
		require.True(t, ok, path)
		assert.False(t, r.Key.Valid(), path)
		assert.Error(t, r.Key.Err, path)
	}
}

func TestNormalize_BothWildcardSpellingsAgree(t *testing.T) {
	star := Normalize(map[string]string{"$.words[*]": "$.id"})
	empty := Normalize(map[string]string{"$.words[]": "$.id"})

	require.Len(t, star.Rules(), 1)
	require.Len(t, empty.Rules(), 1)
	assert.Equal(t, "$.words", star.Rules()[0].Array.String())
	assert.Equal(t, star.Rules()[0].Array, empty.Rules()[0].Array)
}

func TestNormalize_ExactRuleWinsOverWildcard(t *testing.T) {
	idx := Normalize(map[string]string{
		"$.groups[*].items[*]": "$.generic",
		"$.groups[0].items[*]": "$.specific",
	})

	r, ok := idx.Lookup(jsonpath.Root.Key("groups").Index(0).Key("items"))
	require.True(t, ok)
	assert.Equal(t, "$.specific", r.KeyExpr)

	r, ok = idx.Lookup(jsonpath.Root.Key("groups").Index(1).Key("items"))
	require.True(t, ok)
	assert.Equal(t, "$.generic", r.KeyExpr)
}

func TestNormalize_Empty(t *testing.T) {
	for _, raw := range []map[string]string{nil, {}} {
		idx := Normalize(raw)
		assert.Equal(t, 0, idx.Len())
		_, ok := idx.Lookup(jsonpath.MustParse("$.anything"))
		assert.False(t, ok)
	}

	var nilIndex *Index
	assert.Equal(t, 0, nilIndex.Len())
	assert.Nil(t, nilIndex.Rules())
	_, ok := nilIndex.Lookup(jsonpath.Root)
	assert.False(t, ok)
}
