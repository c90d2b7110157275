// Package compare renders both sides of a comparison and produces the
// line diff between them.
package compare

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mcncl/jsoncompare/internal/config"
	"github.com/mcncl/jsoncompare/internal/errors"
	"github.com/mcncl/jsoncompare/internal/parser"
	"github.com/mcncl/jsoncompare/internal/pipeline"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/sirupsen/logrus"
)

// DefaultContext is the number of unchanged lines shown around each change
const DefaultContext = 3

// Request carries the two document identifiers together with the
// configuration both of them are rendered with
type Request struct {
	Left   string
	Right  string
	Config config.DiffConfig
}

// NewRequest validates that paths names exactly two JSON files
func NewRequest(paths []string, cfg config.DiffConfig) (Request, error) {
	if len(paths) != 2 {
		return Request{}, errors.NewInputError(
			fmt.Sprintf("got %d files", len(paths)),
			errors.ErrWrongFileCount,
		)
	}
	for _, p := range paths {
		if !strings.EqualFold(filepath.Ext(p), ".json") {
			return Request{}, errors.NewInputError(fmt.Sprintf("'%s' is not a .json file", p), errors.ErrNotJSONFile)
		}
	}
	return Request{Left: paths[0], Right: paths[1], Config: cfg}, nil
}

// Side is the rendered text of one document. When the document could not
// be read or parsed, Text holds the error message and Err the error.
type Side struct {
	Source string
	Title  string
	Text   string
	Err    error
}

// Result is the outcome of one comparison
type Result struct {
	Title string
	Left  Side
	Right Side
	Diff  string
}

// Equal reports whether both sides rendered to the same text
func (r *Result) Equal() bool {
	return r.Left.Err == nil && r.Right.Err == nil && r.Left.Text == r.Right.Text
}

// Comparer renders requests and diffs the results
type Comparer struct {
	log      logrus.FieldLogger
	renderer *pipeline.Renderer
	context  int
}

// Option configures a Comparer
type Option func(*Comparer)

// WithContext sets the number of context lines in the unified diff
func WithContext(n int) Option {
	return func(c *Comparer) {
		if n >= 0 {
			c.context = n
		}
	}
}

// NewComparer creates a Comparer logging to log
func NewComparer(log logrus.FieldLogger, opts ...Option) *Comparer {
	c := &Comparer{
		log:      log,
		renderer: pipeline.New(pipeline.WithLogger(log)),
		context:  DefaultContext,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compare renders both documents of req and computes their unified diff.
// A document that fails to load does not abort the comparison; its side
// shows the error text instead.
func (c *Comparer) Compare(req Request) (*Result, error) {
	left := c.renderSide(req.Left, "Left", req.Config)
	right := c.renderSide(req.Right, "Right", req.Config)

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(left.Text),
		B:        difflib.SplitLines(right.Text),
		FromFile: left.Title,
		ToFile:   right.Title,
		Context:  c.context,
	})
	if err != nil {
		return nil, errors.NewOutputError("failed to compute diff", err)
	}

	return &Result{
		Title: fmt.Sprintf("JSON Compare: %s ↔ %s", filepath.Base(req.Left), filepath.Base(req.Right)),
		Left:  left,
		Right: right,
		Diff:  diff,
	}, nil
}

func (c *Comparer) renderSide(path, label string, cfg config.DiffConfig) Side {
	side := Side{
		Source: path,
		Title:  fmt.Sprintf("%s (%s)", filepath.Base(path), label),
	}

	doc, err := parser.ParseFile(path)
	if err == nil {
		side.Text, err = c.renderer.Render(doc.Root, cfg)
		if err != nil {
			err = errors.NewFormatError(fmt.Sprintf("failed to render '%s'", path), err)
		}
	}
	if err != nil {
		c.log.WithError(err).WithField("file", path).Warn("rendering failed")
		side.Err = err
		side.Text = fmt.Sprintf("Error reading or parsing file: %s", err.Error())
	}
	return side
}
