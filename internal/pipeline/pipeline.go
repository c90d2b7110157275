// Package pipeline composes canonicalization, null elision and formatting
// into the single rendering step applied to each side of a comparison.
package pipeline

import (
	"github.com/mcncl/jsoncompare/internal/canon"
	"github.com/mcncl/jsoncompare/internal/config"
	"github.com/mcncl/jsoncompare/internal/formatter"
	"github.com/mcncl/jsoncompare/internal/models"
	"github.com/mcncl/jsoncompare/internal/nulls"
	"github.com/mcncl/jsoncompare/internal/rules"
	"github.com/sirupsen/logrus"
)

// IndentWidth is the fixed indentation of rendered documents
const IndentWidth = 2

// Renderer renders JSON values into canonical text
type Renderer struct {
	log logrus.FieldLogger
}

// Option configures a Renderer
type Option func(*Renderer)

// WithLogger sets the logger used for debug output
func WithLogger(log logrus.FieldLogger) Option {
	return func(r *Renderer) {
		r.log = log
	}
}

// New creates a Renderer. Without WithLogger it logs nothing.
func New(opts ...Option) *Renderer {
	discard := logrus.New()
	discard.SetLevel(logrus.PanicLevel)
	r := &Renderer{log: discard}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render canonicalizes value, drops nulls when cfg asks for it, and formats
// the result. Elision runs after sorting so ordering decisions see the
// original structure.
func (r *Renderer) Render(value models.JSONValue, cfg config.DiffConfig) (string, error) {
	idx := rules.Normalize(cfg.ArraySortKey)
	r.log.WithFields(logrus.Fields{
		"rules":     idx.Len(),
		"elideNull": cfg.Elide(),
	}).Debug("rendering document")
	for _, rule := range idx.Rules() {
		if !rule.Key.Valid() {
			r.log.WithError(rule.Key.Err).WithField("pattern", rule.Pattern).
				Warn("sort key expression is not evaluable; array keeps its order")
		}
	}

	canonical := canon.Canonicalize(value, idx)
	canonical = nulls.Elide(canonical, cfg.Elide())

	f := formatter.NewFormatter(
		formatter.WithIndentWidth(IndentWidth),
		formatter.WithTrailingCommas(cfg.UseTrailingCommas()),
	)
	return f.Format(canonical)
}

// Render renders value with a Renderer that does not log
func Render(value models.JSONValue, cfg config.DiffConfig) (string, error) {
	return New().Render(value, cfg)
}
