package nulls

import (
	"encoding/json"
	"testing"

	"github.com/mcncl/jsoncompare/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestElide(t *testing.T) {
	input := models.JSONObject{
		"a": nil,
		"b": models.JSONArray{json.Number("1"), nil, json.Number("2")},
		"c": models.JSONObject{
			"d": nil,
			"e": models.JSONArray{nil, models.JSONObject{"f": nil}},
		},
		"g": false,
		"h": "",
	}

	got := Elide(input, true)

	assert.Equal(t, models.JSONObject{
		"b": models.JSONArray{json.Number("1"), json.Number("2")},
		"c": models.JSONObject{
			"e": models.JSONArray{models.JSONObject{}},
		},
		"g": false,
		"h": "",
	}, got)
}

func TestElide_Disabled(t *testing.T) {
	input := models.JSONObject{"a": nil, "b": models.JSONArray{nil}}
	assert.Equal(t, input, Elide(input, false))
}

func TestElide_DoesNotMutateInput(t *testing.T) {
	input := models.JSONObject{"a": nil, "b": models.JSONArray{nil, "x"}}
	_ = Elide(input, true)

	assert.Contains(t, input, "a")
	assert.Len(t, input["b"], 2)
}

func TestElide_Scalars(t *testing.T) {
	assert.Nil(t, Elide(nil, true))
	assert.Equal(t, "x", Elide("x", true))
	assert.Equal(t, models.JSONArray{}, Elide(models.JSONArray{nil, nil}, true))
}
