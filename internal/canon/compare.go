package canon

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/mcncl/jsoncompare/internal/models"
)

type kind int

const (
	kindNumber kind = iota
	kindString
	kindBool
	kindNull
	kindOther
)

func kindOf(v models.JSONValue) kind {
	switch v.(type) {
	case nil:
		return kindNull
	case json.Number, float64, float32, int, int64, int32, uint, uint64, uint32:
		return kindNumber
	case string:
		return kindString
	case bool:
		return kindBool
	default:
		return kindOther
	}
}

// Compare orders two scalar JSON values. Numbers compare numerically,
// strings by code point and booleans false before true. Values of different
// kinds are ordered number < string < boolean < null < anything else, which
// keeps the ordering total across mixed arrays. Objects and arrays compare
// equal to each other. Ranking mismatched kinds departs on purpose from the
// convention of treating them as equal, which is not a strict weak order
// and would let repeated canonicalization reorder mixed-kind keys.
func Compare(a, b models.JSONValue) int {
	ka, kb := kindOf(a), kindOf(b)
	if ka != kb {
		return compareInts(int(ka), int(kb))
	}

	switch ka {
	case kindNumber:
		return compareFloats(toFloat(a), toFloat(b))
	case kindString:
		return strings.Compare(a.(string), b.(string))
	case kindBool:
		ab, bb := a.(bool), b.(bool)
		switch {
		case ab == bb:
			return 0
		case !ab:
			return -1
		default:
			return 1
		}
	}
	return 0
}

func toFloat(v models.JSONValue) float64 {
	switch n := v.(type) {
	case json.Number:
		// Out of range literals come back as ±Inf, which still orders.
		f, _ := strconv.ParseFloat(string(n), 64)
		return f
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case int32:
		return float64(n)
	case uint:
		return float64(n)
	case uint64:
		return float64(n)
	case uint32:
		return float64(n)
	}
	return math.NaN()
}

func compareFloats(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
