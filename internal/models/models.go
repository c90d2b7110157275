package models

import "sort"

// JSONValue is a generic type to represent any JSON value.
// This can be a string, json.Number, boolean, nil, JSONObject or JSONArray.
type JSONValue = interface{}

// JSONObject represents a JSON object, which is a map of strings to JSONValues.
type JSONObject map[string]JSONValue

// JSONArray represents a JSON array, which is a slice of JSONValues.
type JSONArray []JSONValue

// Document is a parsed JSON document together with the identifier it was read from.
type Document struct {
	Source string
	Root   JSONValue
}

// DeepCopy returns a copy of v that shares no containers with it.
// Raw decoder output (map[string]interface{}, []interface{}) is converted
// into JSONObject and JSONArray on the way.
func DeepCopy(v JSONValue) JSONValue {
	switch val := v.(type) {
	case JSONObject:
		return copyObject(val)
	case map[string]interface{}:
		return copyObject(val)
	case JSONArray:
		return copyArray(val)
	case []interface{}:
		return copyArray(val)
	default:
		return v // Primitives (string, json.Number, bool, nil) are returned as is
	}
}

func copyObject(m map[string]JSONValue) JSONObject {
	obj := make(JSONObject, len(m))
	for k, child := range m {
		obj[k] = DeepCopy(child)
	}
	return obj
}

func copyArray(s []JSONValue) JSONArray {
	arr := make(JSONArray, len(s))
	for i, child := range s {
		arr[i] = DeepCopy(child)
	}
	return arr
}

// SortedKeys returns the keys of obj in ascending byte order.
func SortedKeys(obj JSONObject) []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
