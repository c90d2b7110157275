// Package nulls drops null values from JSON objects and arrays.
package nulls

import "github.com/mcncl/jsoncompare/internal/models"

// Elide removes null object members and null array elements from value,
// recursively. When enabled is false value is returned as is.
func Elide(value models.JSONValue, enabled bool) models.JSONValue {
	if !enabled {
		return value
	}
	return elide(value)
}

func elide(value models.JSONValue) models.JSONValue {
	switch val := value.(type) {
	case models.JSONObject:
		out := make(models.JSONObject, len(val))
		for k, child := range val {
			if v := elide(child); v != nil {
				out[k] = v
			}
		}
		return out
	case models.JSONArray:
		out := make(models.JSONArray, 0, len(val))
		for _, child := range val {
			if v := elide(child); v != nil {
				out = append(out, v)
			}
		}
		return out
	default:
		return value
	}
}
