package formatter

import (
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/mcncl/jsoncompare/internal/models"
)

// DefaultIndent is the indentation used for rendered documents
const DefaultIndent = "  "

// maxIndentWidth mirrors the cap JSON.stringify puts on numeric indents
const maxIndentWidth = 10

var scalarAPI = jsoniter.Config{
	EscapeHTML: false,
	UseNumber:  true,
}.Froze()

// Formatter serializes JSON values into indented text, optionally adding a
// trailing comma after the last entry of every non-empty container
type Formatter struct {
	indent         string
	trailingCommas bool
}

// Option configures a Formatter
type Option func(*Formatter)

// WithIndent sets the indentation string used per nesting level
func WithIndent(indent string) Option {
	return func(f *Formatter) {
		if len(indent) > maxIndentWidth {
			indent = indent[:maxIndentWidth]
		}
		f.indent = indent
	}
}

// WithIndentWidth indents with n spaces per nesting level
func WithIndentWidth(n int) Option {
	if n < 0 {
		n = 0
	}
	if n > maxIndentWidth {
		n = maxIndentWidth
	}
	return WithIndent(strings.Repeat(" ", n))
}

// WithTrailingCommas toggles the trailing comma pass
func WithTrailingCommas(enabled bool) Option {
	return func(f *Formatter) {
		f.trailingCommas = enabled
	}
}

// NewFormatter creates a new Formatter instance. By default it indents
// with two spaces and adds trailing commas.
func NewFormatter(opts ...Option) *Formatter {
	f := &Formatter{
		indent:         DefaultIndent,
		trailingCommas: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format renders value as indented JSON with object keys in ascending order
func (f *Formatter) Format(value models.JSONValue) (string, error) {
	var b strings.Builder
	if err := f.write(&b, value, 0); err != nil {
		return "", err
	}

	if !f.trailingCommas {
		return b.String(), nil
	}
	return AddTrailingCommas(b.String()), nil
}

func (f *Formatter) write(b *strings.Builder, value models.JSONValue, depth int) error {
	switch val := value.(type) {
	case models.JSONObject:
		return f.writeObject(b, val, depth)
	case map[string]interface{}:
		return f.writeObject(b, val, depth)
	case models.JSONArray:
		return f.writeArray(b, val, depth)
	case []interface{}:
		return f.writeArray(b, val, depth)
	default:
		return writeScalar(b, value)
	}
}

func (f *Formatter) writeObject(b *strings.Builder, obj models.JSONObject, depth int) error {
	if len(obj) == 0 {
		b.WriteString("{}")
		return nil
	}

	b.WriteString("{")
	for i, key := range models.SortedKeys(obj) {
		if i > 0 {
			b.WriteString(",")
		}
		f.newline(b, depth+1)
		if err := writeScalar(b, key); err != nil {
			return err
		}
		b.WriteString(":")
		if f.indent != "" {
			b.WriteString(" ")
		}
		if err := f.write(b, obj[key], depth+1); err != nil {
			return err
		}
	}
	f.newline(b, depth)
	b.WriteString("}")
	return nil
}

func (f *Formatter) writeArray(b *strings.Builder, arr models.JSONArray, depth int) error {
	if len(arr) == 0 {
		b.WriteString("[]")
		return nil
	}

	b.WriteString("[")
	for i, item := range arr {
		if i > 0 {
			b.WriteString(",")
		}
		f.newline(b, depth+1)
		if err := f.write(b, item, depth+1); err != nil {
			return err
		}
	}
	f.newline(b, depth)
	b.WriteString("]")
	return nil
}

func (f *Formatter) newline(b *strings.Builder, depth int) {
	if f.indent == "" {
		return
	}
	b.WriteString("\n")
	for i := 0; i < depth; i++ {
		b.WriteString(f.indent)
	}
}

func writeScalar(b *strings.Builder, value models.JSONValue) error {
	data, err := scalarAPI.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %T: %w", value, err)
	}
	b.Write(data)
	return nil
}

// AddTrailingCommas inserts a comma before every line break that is
// followed, after optional whitespace, by a closing '}' or ']', unless the
// line already ends in ',', '{', '[' or whitespace.
func AddTrailingCommas(text string) string {
	var b strings.Builder
	b.Grow(len(text) + len(text)/16)

	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == '\n' && i > 0 && !terminated(text[i-1]) && closesNext(text[i+1:]) {
			b.WriteByte(',')
		}
		b.WriteByte(c)
	}
	return b.String()
}

func terminated(c byte) bool {
	switch c {
	case ',', '{', '[':
		return true
	}
	return isSpace(c)
}

func closesNext(rest string) bool {
	for i := 0; i < len(rest); i++ {
		switch {
		case isSpace(rest[i]):
			continue
		case rest[i] == '}' || rest[i] == ']':
			return true
		default:
			return false
		}
	}
	return false
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}
