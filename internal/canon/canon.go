// Package canon rewrites JSON values into a deterministic form: object keys
// in ascending order and arrays ordered by a configured sort key or, for
// arrays of scalars, by value.
package canon

import (
	"sort"

	"github.com/mcncl/jsoncompare/internal/jsonpath"
	"github.com/mcncl/jsoncompare/internal/models"
	"github.com/mcncl/jsoncompare/internal/rules"
)

// Canonicalize returns a canonical copy of value. The input is never
// modified. A nil index applies only key ordering and default array sorting.
func Canonicalize(value models.JSONValue, idx *rules.Index) models.JSONValue {
	return canonicalize(models.DeepCopy(value), jsonpath.Root, idx)
}

func canonicalize(value models.JSONValue, path jsonpath.Path, idx *rules.Index) models.JSONValue {
	switch val := value.(type) {
	case models.JSONArray:
		for i, item := range val {
			val[i] = canonicalize(item, path.Index(i), idx)
		}
		if rule, ok := idx.Lookup(path); ok {
			sortByKey(val, rule.Key)
		} else if allScalars(val) {
			sortScalars(val)
		}
		return val
	case models.JSONObject:
		for k, child := range val {
			val[k] = canonicalize(child, path.Key(k), idx)
		}
		// Key order is produced at serialization time; JSONObject keeps no
		// insertion order of its own.
		return val
	default:
		return value
	}
}

func allScalars(arr models.JSONArray) bool {
	for _, item := range arr {
		switch item.(type) {
		case models.JSONObject, models.JSONArray:
			return false
		}
	}
	return true
}

// sortScalars orders scalars ascending with nulls last.
func sortScalars(arr models.JSONArray) {
	sort.SliceStable(arr, func(i, j int) bool {
		a, b := arr[i], arr[j]
		if a == nil || b == nil {
			return a != nil && b == nil
		}
		return Compare(a, b) < 0
	})
}

// sortByKey orders elements by the value key extracts from each of them.
// Elements without a key go last, in their original relative order.
func sortByKey(arr models.JSONArray, key rules.KeyQuery) {
	type keyed struct {
		value   models.JSONValue
		key     models.JSONValue
		present bool
	}
	items := make([]keyed, len(arr))
	for i, item := range arr {
		k, ok := key.Extract(item)
		items[i] = keyed{value: item, key: k, present: ok}
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if !a.present || !b.present {
			return a.present && !b.present
		}
		return Compare(a.key, b.key) < 0
	})

	for i := range items {
		arr[i] = items[i].value
	}
}
