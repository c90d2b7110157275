package parser

import (
	"fmt"
	"io"
	"os"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/mcncl/jsoncompare/internal/errors"
	"github.com/mcncl/jsoncompare/internal/models"
)

// api decodes numbers as json.Number so that their literal text survives
// canonicalization untouched.
var api = jsoniter.Config{
	EscapeHTML:  false,
	SortMapKeys: true,
	UseNumber:   true,
}.Froze()

// Parse converts JSON data from an io.Reader into a JSON value
func Parse(reader io.Reader) (models.JSONValue, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.NewInputError("failed to read input", err)
	}
	return ParseBytes(data)
}

// ParseBytes parses a single JSON value from data
func ParseBytes(data []byte) (models.JSONValue, error) {
	if strings.TrimSpace(string(data)) == "" {
		return nil, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
	}

	var rootValue interface{}
	if err := api.Unmarshal(data, &rootValue); err != nil {
		// jsoniter reports trailing content after a complete value this way
		if strings.Contains(err.Error(), "there are bytes left after unmarshal") {
			return nil, errors.NewParsingError("multiple JSON values found at the root", errors.ErrMultipleJSON)
		}
		return nil, errors.NewParsingError(fmt.Sprintf("JSON syntax error: %v", err), errors.ErrInvalidJSON)
	}

	return models.DeepCopy(rootValue), nil
}

// ParseString parses JSON from a string
func ParseString(jsonString string) (models.JSONValue, error) {
	if strings.TrimSpace(jsonString) == "" {
		return nil, errors.NewInputError("input string is empty", errors.ErrEmptyInput)
	}
	return ParseBytes([]byte(jsonString))
}

// ParseFile parses JSON from a file path into a Document
func ParseFile(filePath string) (models.Document, error) {
	doc := models.Document{Source: filePath}
	if strings.TrimSpace(filePath) == "" {
		return doc, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return doc, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return doc, errors.NewInputError(
			fmt.Sprintf("failed to read file '%s'", filePath),
			err,
		)
	}
	if len(data) == 0 {
		return doc, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}

	root, err := ParseBytes(data)
	if err != nil {
		return doc, err
	}
	doc.Root = root
	return doc, nil
}
