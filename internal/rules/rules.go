// Package rules turns the user's arraySortKey configuration into an index
// keyed by the path of the array each rule sorts.
package rules

import (
	"sort"
	"strings"

	"github.com/mcncl/jsoncompare/internal/jsonpath"
)

// Rule sorts the elements of the arrays selected by Array using the value
// Key extracts from each element.
type Rule struct {
	Pattern string
	Array   jsonpath.Path
	Key     KeyQuery
	KeyExpr string
}

// Index maps canonical array paths to the key expression that orders them.
type Index struct {
	exact    map[string]Rule
	patterns []Rule
}

// Len returns the number of rules in the index.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.exact) + len(idx.patterns)
}

// Rules returns every rule in the index ordered by array path.
func (idx *Index) Rules() []Rule {
	if idx == nil {
		return nil
	}
	out := make([]Rule, 0, idx.Len())
	for _, r := range idx.exact {
		out = append(out, r)
	}
	out = append(out, idx.patterns...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Array.String() < out[j].Array.String()
	})
	return out
}

// Lookup returns the rule governing the array at path. Rules written for
// that exact path win over rules whose array path contains wildcards.
func (idx *Index) Lookup(path jsonpath.Path) (Rule, bool) {
	if idx == nil {
		return Rule{}, false
	}
	if r, ok := idx.exact[path.String()]; ok {
		return r, true
	}
	for _, r := range idx.patterns {
		if r.Array.Matches(path) {
			return r, true
		}
	}
	return Rule{}, false
}

// Normalize builds an Index from raw pattern -> key-expression pairs.
//
// A trailing "[*]" or "[]" is stripped to get the array path. Patterns that
// do not end in a wildcard are split at their last wildcard instead, and
// patterns without any wildcard are dropped, as are patterns whose array
// path fails to parse. A key expression that fails to parse keeps its rule;
// every element of that array then sorts as missing.
func Normalize(raw map[string]string) *Index {
	idx := &Index{exact: make(map[string]Rule)}

	// Iterate in a fixed order so that colliding patterns resolve the same
	// way on every run.
	patterns := make([]string, 0, len(raw))
	for p := range raw {
		patterns = append(patterns, p)
	}
	sort.Strings(patterns)

	for _, pattern := range patterns {
		keyExpr := raw[pattern]
		base, ok := ArrayPath(pattern)
		if !ok {
			continue
		}
		arrayPath, err := jsonpath.Parse(base)
		if err != nil {
			continue
		}

		rule := Rule{
			Pattern: pattern,
			Array:   arrayPath,
			Key:     ParseKeyQuery(keyExpr),
			KeyExpr: keyExpr,
		}
		if arrayPath.HasWildcard() {
			idx.patterns = append(idx.patterns, rule)
			continue
		}
		idx.exact[arrayPath.String()] = rule
	}
	return idx
}

// ArrayPath strips the element wildcard from pattern and returns the path
// of the array itself. It reports false when pattern has no "[*]" or "[]".
func ArrayPath(pattern string) (string, bool) {
	for _, suffix := range []string{"[*]", "[]"} {
		if strings.HasSuffix(pattern, suffix) {
			return strings.TrimSuffix(pattern, suffix), true
		}
	}

	last := strings.LastIndex(pattern, "[*]")
	if i := strings.LastIndex(pattern, "[]"); i > last {
		last = i
	}
	if last < 0 {
		return "", false
	}
	return pattern[:last], true
}
