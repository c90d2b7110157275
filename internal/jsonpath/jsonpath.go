// Package jsonpath implements the small path dialect used to address the
// arrays a sort rule applies to: a root "$" followed by ".key", "['key']",
// "[n]", "[*]" and "[]" segments.
package jsonpath

import (
	"fmt"
	"strconv"
	"strings"
)

// SegmentKind identifies what a path segment selects.
type SegmentKind int

const (
	// KeySegment selects an object member.
	KeySegment SegmentKind = iota
	// IndexSegment selects one array element.
	IndexSegment
	// WildcardSegment selects every array element.
	WildcardSegment
)

// Segment is one step of a Path.
type Segment struct {
	Kind  SegmentKind
	Key   string
	Index int
}

// Path is an ordered sequence of segments below the root "$".
type Path []Segment

// Root is the empty path "$".
var Root = Path{}

// Key returns a copy of p extended by an object member segment.
func (p Path) Key(key string) Path {
	return p.with(Segment{Kind: KeySegment, Key: key})
}

// Index returns a copy of p extended by an array index segment.
func (p Path) Index(i int) Path {
	return p.with(Segment{Kind: IndexSegment, Index: i})
}

// Wildcard returns a copy of p extended by a wildcard segment.
func (p Path) Wildcard() Path {
	return p.with(Segment{Kind: WildcardSegment})
}

func (p Path) with(s Segment) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, s)
}

// HasWildcard reports whether any segment of p is a wildcard.
func (p Path) HasWildcard() bool {
	for _, s := range p {
		if s.Kind == WildcardSegment {
			return true
		}
	}
	return false
}

// Matches reports whether the concrete path c is selected by pattern p.
// A wildcard segment in p matches any index segment in c.
func (p Path) Matches(c Path) bool {
	if len(p) != len(c) {
		return false
	}
	for i, s := range p {
		other := c[i]
		switch s.Kind {
		case KeySegment:
			if other.Kind != KeySegment || other.Key != s.Key {
				return false
			}
		case IndexSegment:
			if other.Kind != IndexSegment || other.Index != s.Index {
				return false
			}
		case WildcardSegment:
			if other.Kind == KeySegment {
				return false
			}
		}
	}
	return true
}

// String renders p in the dialect accepted by Parse.
func (p Path) String() string {
	var b strings.Builder
	b.WriteString("$")
	for _, s := range p {
		switch s.Kind {
		case KeySegment:
			if isPlainKey(s.Key) {
				b.WriteString(".")
				b.WriteString(s.Key)
			} else {
				b.WriteString("['")
				b.WriteString(strings.ReplaceAll(s.Key, "'", `\'`))
				b.WriteString("']")
			}
		case IndexSegment:
			b.WriteString("[")
			b.WriteString(strconv.Itoa(s.Index))
			b.WriteString("]")
		case WildcardSegment:
			b.WriteString("[*]")
		}
	}
	return b.String()
}

func isPlainKey(key string) bool {
	if key == "" {
		return false
	}
	return !strings.ContainsAny(key, ".[]'\"* ")
}

// Parse parses expr into a Path. The leading "$" is optional.
func Parse(expr string) (Path, error) {
	s := strings.TrimSpace(expr)
	s = strings.TrimPrefix(s, "$")

	path := Path{}
	for i := 0; i < len(s); {
		switch s[i] {
		case '.':
			i++
			start := i
			for i < len(s) && s[i] != '.' && s[i] != '[' {
				i++
			}
			if start == i {
				return nil, fmt.Errorf("empty member name at offset %d in %q", start, expr)
			}
			path = append(path, Segment{Kind: KeySegment, Key: s[start:i]})
		case '[':
			seg, next, err := parseBracket(s, i)
			if err != nil {
				return nil, fmt.Errorf("%w in %q", err, expr)
			}
			path = append(path, seg)
			i = next
		default:
			return nil, fmt.Errorf("unexpected %q at offset %d in %q", s[i], i, expr)
		}
	}
	return path, nil
}

// parseBracket parses the bracket segment starting at s[i] == '['.
func parseBracket(s string, i int) (Segment, int, error) {
	i++
	if i < len(s) && (s[i] == '\'' || s[i] == '"') {
		quote := s[i]
		i++
		var key strings.Builder
		for i < len(s) && s[i] != quote {
			if s[i] == '\\' && i+1 < len(s) {
				i++
			}
			key.WriteByte(s[i])
			i++
		}
		if i+1 >= len(s) || s[i+1] != ']' {
			return Segment{}, 0, fmt.Errorf("unterminated quoted member")
		}
		return Segment{Kind: KeySegment, Key: key.String()}, i + 2, nil
	}

	end := strings.IndexByte(s[i:], ']')
	if end < 0 {
		return Segment{}, 0, fmt.Errorf("missing ']'")
	}
	body := strings.TrimSpace(s[i : i+end])
	next := i + end + 1
	if body == "" || body == "*" {
		return Segment{Kind: WildcardSegment}, next, nil
	}
	n, err := strconv.Atoi(body)
	if err != nil || n < 0 {
		return Segment{}, 0, fmt.Errorf("invalid array index %q", body)
	}
	return Segment{Kind: IndexSegment, Index: n}, next, nil
}

// MustParse is like Parse but panics on error.
func MustParse(expr string) Path {
	p, err := Parse(expr)
	if err != nil {
		panic(err)
	}
	return p
}
