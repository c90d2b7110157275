package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/mcncl/jsoncompare/internal/compare"
	"github.com/mcncl/jsoncompare/internal/config"
	"github.com/mcncl/jsoncompare/internal/errors"
	"github.com/mcncl/jsoncompare/internal/models"
	"github.com/mcncl/jsoncompare/internal/pairing"
	"github.com/mcncl/jsoncompare/internal/parser"
	"github.com/mcncl/jsoncompare/internal/pipeline"
	"github.com/sirupsen/logrus"
)

// CLI defines the command-line interface
var CLI struct {
	Config     string           `help:"Path to a diff configuration file (JSON or YAML)." short:"c" type:"path"`
	ConfigJSON string           `help:"Inline diff configuration, e.g. '{\"arraySortKey\": {\"$.users[*]\": \"$.name\"}}'." name:"config-json"`
	Strict     bool             `help:"Emit strict JSON without trailing commas." short:"s"`
	Debug      bool             `help:"Enable debug logging." short:"d"`
	Version    kong.VersionFlag `help:"Show version information." short:"v"`

	Render RenderCmd `cmd:"" help:"Print one JSON document in canonical form."`
	Diff   DiffCmd   `cmd:"" help:"Show a unified diff of two canonicalized JSON documents."`
	Pairs  PairsCmd  `cmd:"" help:"Diff every left/right pair described by a compare config file."`
}

// Context holds the runtime context shared by all commands
type Context struct {
	Debug bool
	Log   *logrus.Logger
	In    io.Reader
	Out   io.Writer
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	app := kong.Must(&CLI,
		kong.Name("jsoncompare"),
		kong.Description("Canonicalize JSON documents so that a line diff shows only meaningful changes"),
		kong.UsageOnError(),
		kong.Vars{"version": Version},
	)

	ctx, err := app.Parse(os.Args[1:])
	// Usage has already been shown by kong.UsageOnError()
	app.FatalIfErrorf(err)

	err = ctx.Run(&Context{
		Debug: CLI.Debug,
		Log:   newLogger(CLI.Debug, os.Stderr),
		In:    os.Stdin,
		Out:   os.Stdout,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: jsoncompare --help\n")
		os.Exit(1)
	}
}

func newLogger(debug bool, w io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if debug {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}
	return log
}

// resolveDiffConfig picks the diff configuration in order of precedence:
// --config-json, --config, then a config file found from the working
// directory upwards. A configuration that fails to parse aborts the command.
func resolveDiffConfig(ctx *Context) (config.DiffConfig, error) {
	var (
		cfg config.DiffConfig
		err error
	)

	switch {
	case strings.TrimSpace(CLI.ConfigJSON) != "":
		cfg, err = config.ParseDiffConfig(CLI.ConfigJSON)
	case CLI.Config != "":
		cfg, err = config.LoadDiffConfig(CLI.Config)
	default:
		cfg = config.NewDiffConfig()
		if wd, wdErr := os.Getwd(); wdErr == nil {
			if found := config.FindConfigFile(wd); found != "" {
				ctx.Log.WithField("file", found).Debug("using discovered config file")
				cfg, err = config.LoadDiffConfig(found)
			}
		}
	}
	if err != nil {
		return config.DiffConfig{}, err
	}

	applyStrict(&cfg)
	return cfg, nil
}

func applyStrict(cfg *config.DiffConfig) {
	if CLI.Strict {
		off := false
		cfg.TrailingCommas = &off
	}
}

// RenderCmd prints the canonical text of one document
type RenderCmd struct {
	File   string `arg:"" optional:"" default:"-" help:"JSON file to render, or - for stdin." type:"path"`
	Output string `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
}

// Run executes the render command
func (r *RenderCmd) Run(ctx *Context) error {
	cfg, err := resolveDiffConfig(ctx)
	if err != nil {
		return err
	}

	var root models.JSONValue
	if r.File == "-" {
		ctx.Log.Debug("reading JSON from stdin")
		root, err = parser.Parse(ctx.In)
	} else {
		var doc models.Document
		doc, err = parser.ParseFile(r.File)
		root = doc.Root
	}
	if err != nil {
		return err
	}

	text, err := pipeline.New(pipeline.WithLogger(ctx.Log)).Render(root, cfg)
	if err != nil {
		return errors.NewFormatError(fmt.Sprintf("failed to render '%s'", r.File), err)
	}

	return writeOutput(ctx, r.Output, text)
}

// DiffCmd diffs exactly two documents
type DiffCmd struct {
	Files   []string `arg:"" help:"The left and right JSON files." type:"path"`
	Context int      `help:"Lines of context around each change." default:"3"`
}

// Run executes the diff command
func (d *DiffCmd) Run(ctx *Context) error {
	cfg, err := resolveDiffConfig(ctx)
	if err != nil {
		return err
	}

	req, err := compare.NewRequest(d.Files, cfg)
	if err != nil {
		return err
	}

	result, err := compare.NewComparer(ctx.Log, compare.WithContext(d.Context)).Compare(req)
	if err != nil {
		return err
	}
	return printResult(ctx, result, cfg)
}

// PairsCmd diffs every pair described by a compare config file
type PairsCmd struct {
	ConfigFile string `arg:"" name:"config-file" help:"Compare config with leftFilesPattern, rightFilesPattern and diffConfig." type:"path"`
	Context    int    `help:"Lines of context around each change." default:"3"`
}

// Run executes the pairs command
func (p *PairsCmd) Run(ctx *Context) error {
	cmpCfg, err := config.LoadCompareConfig(p.ConfigFile)
	if err != nil {
		return err
	}
	applyStrict(&cmpCfg.DiffConfig)

	ctx.Log.WithFields(logrus.Fields{
		"left":  cmpCfg.LeftFilesPattern,
		"right": cmpCfg.RightFilesPattern,
		"dir":   cmpCfg.Dir,
	}).Debug("loaded compare config")

	found, err := pairing.NewFinder(ctx.Log).Find(cmpCfg)
	if err != nil {
		return err
	}

	comparer := compare.NewComparer(ctx.Log, compare.WithContext(p.Context))
	for _, pair := range found.Pairs {
		result, err := comparer.Compare(compare.Request{
			Left:   pair.Left,
			Right:  pair.Right,
			Config: cmpCfg.DiffConfig,
		})
		if err != nil {
			return err
		}
		if err := printResult(ctx, result, cmpCfg.DiffConfig); err != nil {
			return err
		}
	}

	ctx.Log.WithFields(logrus.Fields{
		"pairs":        len(found.Pairs),
		"missingRight": len(found.MissingRight),
	}).Info("comparison finished")
	return nil
}

func printResult(ctx *Context, result *compare.Result, cfg config.DiffConfig) error {
	configInfo := " (default config)"
	if !cfg.IsDefault() {
		configInfo = " (custom config)"
	}

	var out string
	if result.Equal() {
		out = fmt.Sprintf("%s%s: no differences\n", result.Title, configInfo)
	} else {
		out = fmt.Sprintf("%s%s\n%s", result.Title, configInfo, result.Diff)
	}

	if _, err := io.WriteString(ctx.Out, out); err != nil {
		return errors.NewOutputError("failed to write diff", err)
	}
	return nil
}

// writeOutput writes text to a file or to ctx.Out
func writeOutput(ctx *Context, path, text string) error {
	if path != "" {
		err := os.WriteFile(path, []byte(text+"\n"), 0644)
		if err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", path), err)
		}
		ctx.Log.WithField("file", path).Debug("canonical output written")
		return nil
	}

	if _, err := fmt.Fprintln(ctx.Out, text); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}
