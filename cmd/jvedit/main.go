// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Program jvedit reads, queries, and edits JSON documents from the command
// line. Edits preserve member order and the original text of numbers.
//
// Usage:
//
//	jvedit [flags] <command> [args...]
//
// Documents are read from a named file, or from stdin if the file is omitted
// or "-". Results are written to stdout. Paths are slash-separated member
// names and array indexes, with "" addressing the whole document.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/creachadair/jvedit"
	"github.com/creachadair/jvedit/edit"
	"github.com/creachadair/jvedit/editor"
	"github.com/creachadair/jvedit/internal/config"
	"github.com/creachadair/jvedit/jspath"
	"github.com/creachadair/jvedit/value"
)

type cli struct {
	Config  string `help:"Path of a YAML configuration file." type:"path"`
	Debug   bool   `help:"Enable debug logging to stderr." short:"d"`
	Lenient bool   `help:"Accept comments and trailing commas in JSON input." short:"l"`
	Indent  string `help:"Indentation for JSON output (overrides the configuration)."`
	Compact bool   `help:"Write compact JSON output." short:"c"`
	From    string `help:"Input format (json or yaml)."`
	To      string `help:"Output format (json or yaml)."`

	Fmt    fmtCmd    `cmd:"" help:"Reformat a document."`
	Get    getCmd    `cmd:"" help:"Print the value at a path."`
	Set    setCmd    `cmd:"" help:"Replace the value at a path."`
	Delete deleteCmd `cmd:"" help:"Delete the value at a path."`
	Move   moveCmd   `cmd:"" help:"Move a member or element up or down within its parent."`
	Merge  mergeCmd  `cmd:"" help:"Add the members of one object to another, keeping existing members."`
	Paths  pathsCmd  `cmd:"" help:"List the paths and kinds of all values in a document."`
	Tokens tokensCmd `cmd:"" help:"List the lexical tokens of a JSON document."`
}

// env carries the settings and I/O streams shared by all commands.
type env struct {
	cfg    *config.Config
	log    *slog.Logger
	stdin  io.Reader
	stdout io.Writer
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "jvedit: %v\n", err)
		os.Exit(1)
	}
}

// errExit is reported by run when the parser asked to exit early, as it does
// after printing help.
var errExit = errors.New("exit")

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) (err error) {
	var c cli
	parser, err := kong.New(&c,
		kong.Name("jvedit"),
		kong.Description("Read, query, and edit JSON documents."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) { panic(errExit) }),
		kong.UsageOnError(),
	)
	if err != nil {
		return err
	}
	defer func() {
		if x := recover(); x != nil {
			if x != errExit {
				panic(x)
			}
			err = nil
		}
	}()

	ctx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	logger := slog.New(slog.DiscardHandler)
	if cfg.Debug {
		logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	logger.Debug("starting", "command", ctx.Command(), "input", cfg.Input.Format, "output", cfg.Output.Format)
	return ctx.Run(&env{cfg: cfg, log: logger, stdin: stdin, stdout: stdout})
}

// loadConfig loads the configuration file, if any, and applies the flags.
func (c *cli) loadConfig() (*config.Config, error) {
	path := c.Config
	if path == "" {
		path = config.FindConfigFile(".")
	}
	cfg := config.NewConfig()
	if path != "" {
		var err error
		cfg, err = config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
	}
	cfg.Debug = cfg.Debug || c.Debug
	cfg.Input.Lenient = cfg.Input.Lenient || c.Lenient
	if c.Indent != "" {
		cfg.Output.Indent = c.Indent
	}
	if c.Compact {
		cfg.Output.Indent = ""
	}
	if c.From != "" {
		cfg.Input.Format = c.From
	}
	if c.To != "" {
		cfg.Output.Format = c.To
	}
	return cfg, cfg.Validate()
}

// readData returns the contents of the named file, or of stdin if name is
// empty or "-".
func (e *env) readData(name string) ([]byte, error) {
	if name == "" || name == "-" {
		return io.ReadAll(e.stdin)
	}
	return os.ReadFile(name)
}

// read reads and parses a document in the configured input format.
func (e *env) read(name string) (value.Value, error) {
	data, err := e.readData(name)
	if err != nil {
		return nil, err
	}
	var v value.Value
	switch {
	case e.cfg.Input.Format == config.FormatYAML:
		v, err = value.FromYAML(data)
	case e.cfg.Input.Lenient:
		v, err = value.ParseLenient(data)
	default:
		v, err = value.Parse(data)
	}
	if err != nil {
		if name == "" {
			name = "stdin"
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	e.log.Debug("read document", "source", name, "bytes", len(data), "kind", v.Kind())
	return v, nil
}

// write writes v to stdout in the configured output format.
func (e *env) write(v value.Value) error {
	if e.cfg.Output.Format == config.FormatYAML {
		data, err := value.ToYAML(v)
		if err != nil {
			return err
		}
		_, err = e.stdout.Write(data)
		return err
	}
	if err := value.Format(e.stdout, v, e.cfg.Output.Indent); err != nil {
		return err
	}
	_, err := io.WriteString(e.stdout, "\n")
	return err
}

// edit applies f to a document session over the named file and writes the
// resulting root.
func (e *env) edit(name string, f func(*editor.Document)) error {
	root, err := e.read(name)
	if err != nil {
		return err
	}
	doc := editor.New(root, &editor.Options{Logger: e.log})
	defer doc.Close()
	f(doc)
	return e.write(doc.Root())
}

type fmtCmd struct {
	File string `arg:"" optional:"" help:"Input file (default stdin)."`
}

func (c *fmtCmd) Run(e *env) error {
	v, err := e.read(c.File)
	if err != nil {
		return err
	}
	return e.write(v)
}

type getCmd struct {
	Path string `arg:"" help:"Path of the value to print."`
	File string `arg:"" optional:"" help:"Input file (default stdin)."`
}

func (c *getCmd) Run(e *env) error {
	root, err := e.read(c.File)
	if err != nil {
		return err
	}
	v, ok := edit.Get(root, jspath.Parse(c.Path))
	if !ok {
		return fmt.Errorf("path %q not found", c.Path)
	}
	return e.write(v)
}

type setCmd struct {
	Path  string `arg:"" help:"Path of the value to replace."`
	Value string `arg:"" help:"New value, as JSON text."`
	File  string `arg:"" optional:"" help:"Input file (default stdin)."`
}

func (c *setCmd) Run(e *env) error {
	nv, err := value.ParseString(c.Value)
	if err != nil {
		return fmt.Errorf("invalid value: %w", err)
	}
	return e.edit(c.File, func(doc *editor.Document) { doc.Update(jspath.Parse(c.Path), nv) })
}

type deleteCmd struct {
	Path string `arg:"" help:"Path of the value to delete."`
	File string `arg:"" optional:"" help:"Input file (default stdin)."`
}

func (c *deleteCmd) Run(e *env) error {
	return e.edit(c.File, func(doc *editor.Document) { doc.Delete(jspath.Parse(c.Path)) })
}

type moveCmd struct {
	Path      string `arg:"" help:"Path of the value to move."`
	Direction string `arg:"" enum:"up,down" help:"Direction to move (up or down)."`
	File      string `arg:"" optional:"" help:"Input file (default stdin)."`
}

func (c *moveCmd) Run(e *env) error {
	dir := edit.Down
	if c.Direction == "up" {
		dir = edit.Up
	}
	return e.edit(c.File, func(doc *editor.Document) { doc.Move(jspath.Parse(c.Path), dir) })
}

type mergeCmd struct {
	From string `arg:"" help:"File of the object whose members are added."`
	Into string `arg:"" optional:"" help:"File of the object to add to (default stdin)."`
}

func (c *mergeCmd) Run(e *env) error {
	from, err := e.readObject(c.From)
	if err != nil {
		return err
	}
	into, err := e.readObject(c.Into)
	if err != nil {
		return err
	}
	return e.write(edit.MergeProperties(from, into))
}

func (e *env) readObject(name string) (value.Object, error) {
	v, err := e.read(name)
	if err != nil {
		return nil, err
	}
	obj, ok := v.(value.Object)
	if !ok {
		return nil, fmt.Errorf("%s: got %v, want object", name, v.Kind())
	}
	return obj, nil
}

type pathsCmd struct {
	File string `arg:"" optional:"" help:"Input file (default stdin)."`
}

func (c *pathsCmd) Run(e *env) error {
	root, err := e.read(c.File)
	if err != nil {
		return err
	}
	return edit.Walk(root, func(p jspath.Path, v value.Value) error {
		_, err := fmt.Fprintf(e.stdout, "%s\t%s\n", p, v.Kind())
		return err
	})
}

type tokensCmd struct {
	File string `arg:"" optional:"" help:"Input file (default stdin)."`
}

func (c *tokensCmd) Run(e *env) error {
	data, err := e.readData(c.File)
	if err != nil {
		return err
	}
	lex := jvedit.NewLexer(data)
	for {
		tok, err := lex.Next()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(e.stdout, "%s\t%s\t%s\n", lex.Location(tok), tok.Type, tok.Text); err != nil {
			return err
		}
	}
}
