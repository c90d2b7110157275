package rules

import (
	"fmt"
	"strings"

	"github.com/mcncl/jsoncompare/internal/models"
	"github.com/ohler55/ojg/jp"
)

// KeyQuery extracts the sort key of one array element. The element is both
// "$" and "@" of the query, and a bare member name such as "id" reads the
// element's own member. A query that does not parse extracts nothing, so
// every element it is applied to sorts as missing.
type KeyQuery struct {
	Source string
	Err    error

	expr jp.Expr
	self bool
}

// ParseKeyQuery parses source. A parse failure is kept in Err rather than
// returned so that the owning rule still governs its array.
func ParseKeyQuery(source string) KeyQuery {
	switch strings.TrimSpace(source) {
	case "":
		return KeyQuery{Source: source, Err: fmt.Errorf("empty key expression")}
	case "$", "@":
		return KeyQuery{Source: source, self: true}
	}
	expr, err := jp.ParseString(source)
	if err != nil {
		return KeyQuery{Source: source, Err: err}
	}
	return KeyQuery{Source: source, expr: expr}
}

// Valid reports whether the query parsed
func (q KeyQuery) Valid() bool {
	return q.Err == nil && (q.self || len(q.expr) > 0)
}

// Extract returns the first value the query selects from elem. No match
// and a null result both count as missing.
func (q KeyQuery) Extract(elem models.JSONValue) (models.JSONValue, bool) {
	if !q.Valid() {
		return nil, false
	}
	v := elem
	if !q.self {
		v = q.expr.First(plain(elem))
	}
	if v == nil {
		return nil, false
	}
	return v, true
}

// plain converts JSONObject and JSONArray into the unnamed map and slice
// types the query engine walks.
func plain(v models.JSONValue) interface{} {
	switch val := v.(type) {
	case models.JSONObject:
		m := make(map[string]interface{}, len(val))
		for k, child := range val {
			m[k] = plain(child)
		}
		return m
	case map[string]interface{}:
		m := make(map[string]interface{}, len(val))
		for k, child := range val {
			m[k] = plain(child)
		}
		return m
	case models.JSONArray:
		s := make([]interface{}, len(val))
		for i, child := range val {
			s[i] = plain(child)
		}
		return s
	case []interface{}:
		s := make([]interface{}, len(val))
		for i, child := range val {
			s[i] = plain(child)
		}
		return s
	}
	return v
}
