// Package pairing matches left-hand documents under a directory against a
// regular expression and derives each right-hand path from the captures.
package pairing

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/mcncl/jsoncompare/internal/config"
	"github.com/mcncl/jsoncompare/internal/errors"
	"github.com/sirupsen/logrus"
)

// Pair is one left/right document pair
type Pair struct {
	Left     string
	Right    string
	LeftRel  string
	RightRel string
}

// Result lists the pairs found and the right-hand paths that did not exist
type Result struct {
	Pairs        []Pair
	MissingRight []string
}

// Finder discovers document pairs for a compare config
type Finder struct {
	log logrus.FieldLogger
}

// NewFinder creates a Finder logging to log
func NewFinder(log logrus.FieldLogger) *Finder {
	return &Finder{log: log}
}

// Find walks cfg.Dir for .json files whose slash-separated relative path
// matches cfg.LeftFilesPattern and pairs each with the file named by
// cfg.RightFilesPattern after "$n" substitution. Pairs whose right file
// does not exist are reported in MissingRight.
func (f *Finder) Find(cfg *config.CompareConfig) (*Result, error) {
	if cfg.LeftFilesPattern == "" || cfg.RightFilesPattern == "" {
		return nil, errors.NewPairingError("both file patterns must be set", errors.ErrMissingPattern)
	}
	leftRe, err := regexp.Compile(cfg.LeftFilesPattern)
	if err != nil {
		return nil, errors.NewPairingError(fmt.Sprintf("invalid leftFilesPattern '%s'", cfg.LeftFilesPattern), err)
	}

	files, err := listJSONFiles(cfg.Dir)
	if err != nil {
		return nil, errors.NewPairingError(fmt.Sprintf("failed to list files under '%s'", cfg.Dir), err)
	}
	f.log.WithField("count", len(files)).Debug("found JSON files")

	result := &Result{}
	for _, rel := range files {
		match := leftRe.FindStringSubmatch(rel)
		if match == nil {
			continue
		}

		rightRel := Substitute(cfg.RightFilesPattern, match)
		rightPath := rightRel
		if !filepath.IsAbs(rightPath) {
			rightPath = filepath.Join(cfg.Dir, filepath.FromSlash(rightRel))
		}

		entry := f.log.WithFields(logrus.Fields{"left": rel, "right": rightRel})
		if _, err := os.Stat(rightPath); err != nil {
			entry.Warn("right file does not exist")
			result.MissingRight = append(result.MissingRight, rightPath)
			continue
		}
		entry.Debug("paired")

		result.Pairs = append(result.Pairs, Pair{
			Left:     filepath.Join(cfg.Dir, filepath.FromSlash(rel)),
			Right:    rightPath,
			LeftRel:  rel,
			RightRel: rightRel,
		})
	}

	if len(result.Pairs) == 0 && len(result.MissingRight) == 0 {
		f.log.WithField("pattern", cfg.LeftFilesPattern).Warn("no files matched leftFilesPattern")
	}
	return result, nil
}

// Substitute replaces "$1".."$n" in pattern with the capture groups of
// match. Higher group numbers are replaced first so "$1" never eats the
// prefix of "$10".
func Substitute(pattern string, match []string) string {
	out := pattern
	for i := len(match) - 1; i >= 1; i-- {
		out = strings.ReplaceAll(out, "$"+strconv.Itoa(i), match[i])
	}
	return out
}

// listJSONFiles returns slash-separated paths of every .json file under dir
func listJSONFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".json") {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
