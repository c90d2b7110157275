package parser

import (
	"encoding/json"
	stderrors "errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/mcncl/jsoncompare/internal/errors"
	"github.com/mcncl/jsoncompare/internal/models"
)

func TestParse_SimpleObject(t *testing.T) {
	jsonStr := `{"name": "John Doe", "age": 30, "isStudent": false, "city": null}`
	root, err := Parse(strings.NewReader(jsonStr))
	if err != nil {
		t.Fatalf("Parse() error = %v, wantErr nil", err)
	}

	expectedRoot := models.JSONObject{
		"name":      "John Doe",
		"age":       json.Number("30"),
		"isStudent": false,
		"city":      nil,
	}

	actualRoot, ok := root.(models.JSONObject)
	if !ok {
		t.Fatalf("Parse() root is not a models.JSONObject, got %T", root)
	}
	if !reflect.DeepEqual(actualRoot, expectedRoot) {
		t.Errorf("Parse() root = %v, want %v", actualRoot, expectedRoot)
	}
}

func TestParse_SimpleArray(t *testing.T) {
	root, err := Parse(strings.NewReader(`[1, "test", true, null, 3.14]`))
	if err != nil {
		t.Fatalf("Parse() error = %v, wantErr nil", err)
	}

	expectedRoot := models.JSONArray{
		json.Number("1"),
		"test",
		true,
		nil,
		json.Number("3.14"),
	}
	actualRoot, ok := root.(models.JSONArray)
	if !ok {
		t.Fatalf("Parse() root is not a models.JSONArray, got %T", root)
	}
	if !reflect.DeepEqual(actualRoot, expectedRoot) {
		t.Errorf("Parse() root = %v, want %v", actualRoot, expectedRoot)
	}
}

func TestParse_NestedObject(t *testing.T) {
	jsonStr := `{"user": {"name": "Jane Doe", "id": 123}, "active": true, "tags": ["go", "json"]}`
	root, err := Parse(strings.NewReader(jsonStr))
	if err != nil {
		t.Fatalf("Parse() error = %v, wantErr nil", err)
	}

	expectedRoot := models.JSONObject{
		"user": models.JSONObject{
			"name": "Jane Doe",
			"id":   json.Number("123"),
		},
		"active": true,
		"tags":   models.JSONArray{"go", "json"},
	}
	if !reflect.DeepEqual(root, expectedRoot) {
		t.Errorf("Parse() root = %v, want %v", root, expectedRoot)
	}
}

func TestParse_KeepsNumberLiterals(t *testing.T) {
	root, err := ParseString(`{"big": 12345678901234567890, "exp": 1e3}`)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	obj := root.(models.JSONObject)
	if obj["big"] != json.Number("12345678901234567890") {
		t.Errorf("big = %v, want literal preserved", obj["big"])
	}
	if obj["exp"] != json.Number("1e3") {
		t.Errorf("exp = %v, want literal preserved", obj["exp"])
	}
}

func TestParse_EmptyInput(t *testing.T) {
	_, err := Parse(strings.NewReader("  \n"))
	if err == nil {
		t.Fatalf("Parse() with blank reader, err = nil, want error")
	}
	if !stderrors.Is(err, errors.ErrEmptyInput) {
		t.Errorf("Parse() err = %v, want ErrEmptyInput", err)
	}
}

func TestParseString_EmptyInput(t *testing.T) {
	_, err := ParseString("")
	if err == nil {
		t.Fatalf("ParseString() with empty string, err = nil, want error")
	}
	if !strings.Contains(err.Error(), "input string is empty") {
		t.Errorf("ParseString() err = %v, want error containing 'input string is empty'", err)
	}
}

func TestParse_InvalidJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "unterminated object", input: `{"name": "John"`},
		{name: "trailing comma", input: `{"a": 1,}`},
		{name: "bare word", input: `hello`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.input)
			if err == nil {
				t.Fatalf("ParseString(%q) err = nil, want error", tt.input)
			}
			if !stderrors.Is(err, errors.ErrInvalidJSON) && !stderrors.Is(err, errors.ErrMultipleJSON) {
				t.Errorf("ParseString(%q) err = %v, want invalid JSON error", tt.input, err)
			}
		})
	}
}

func TestParse_MultipleValues(t *testing.T) {
	_, err := ParseString(`{"a": 1} {"b": 2}`)
	if err == nil {
		t.Fatalf("ParseString() err = nil, want error")
	}
	if !stderrors.Is(err, errors.ErrMultipleJSON) {
		t.Errorf("ParseString() err = %v, want ErrMultipleJSON", err)
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.json")
	if err := os.WriteFile(good, []byte(`{"id": 1}`), 0644); err != nil {
		t.Fatal(err)
	}
	empty := filepath.Join(dir, "empty.json")
	if err := os.WriteFile(empty, nil, 0644); err != nil {
		t.Fatal(err)
	}

	doc, err := ParseFile(good)
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if doc.Source != good {
		t.Errorf("doc.Source = %q, want %q", doc.Source, good)
	}
	if !reflect.DeepEqual(doc.Root, models.JSONObject{"id": json.Number("1")}) {
		t.Errorf("doc.Root = %v", doc.Root)
	}

	_, err = ParseFile(empty)
	if !stderrors.Is(err, errors.ErrFileEmpty) {
		t.Errorf("ParseFile(empty) err = %v, want ErrFileEmpty", err)
	}

	_, err = ParseFile(filepath.Join(dir, "missing.json"))
	if !stderrors.Is(err, errors.ErrFileNotFound) {
		t.Errorf("ParseFile(missing) err = %v, want ErrFileNotFound", err)
	}

	_, err = ParseFile("  ")
	if !stderrors.Is(err, errors.ErrInvalidFilePath) {
		t.Errorf("ParseFile(blank) err = %v, want ErrInvalidFilePath", err)
	}
}
