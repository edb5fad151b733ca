// Command retopo rebuilds mesh topology from 3D strokes. It reads a stroke
// file (JSON or YAML) or a stroke script, finds where the strokes cross,
// links the crossings along each stroke and fills the loops with
// triangles and quads.
//
// Usage:
//
//	retopo -in strokes.json -out mesh.obj
//	retopo -in design.lisp -format stl -out design.stl
//	retopo -in design.lisp -out mesh.obj -watch
//	retopo -in design.lisp -strokes-out design.yaml -out mesh.obj
//	retopo -config retopo.toml -print-config
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/chazu/retopo/pkg/config"
	"github.com/chazu/retopo/pkg/export"
	"github.com/chazu/retopo/pkg/retopo"
	"github.com/chazu/retopo/pkg/strokes"
)

type options struct {
	in, out     string
	strokesOut  string
	format      string
	configPath  string
	precision   float64
	noJoin      bool
	verbose     bool
	watch       bool
	printConfig bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "retopo:", err)
		}
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("retopo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.in, "in", "-", "stroke file (.json, .yaml), script (.lisp, .zy), or - for JSON on stdin")
	fs.StringVar(&o.out, "out", "-", "output file, or - for stdout")
	fs.StringVar(&o.strokesOut, "strokes-out", "", "also save the usable input strokes to this .json or .yaml file")
	fs.StringVar(&o.format, "format", "", "output format: "+strings.Join(export.Formats(), ", ")+" (default from config)")
	fs.StringVar(&o.configPath, "config", "", "TOML settings file")
	fs.Float64Var(&o.precision, "precision", 0, "tolerance divisor; overrides the file and config (default from config)")
	fs.BoolVar(&o.noJoin, "no-join", false, "do not join broken strokes")
	fs.BoolVar(&o.verbose, "v", false, "log pipeline phases")
	fs.BoolVar(&o.watch, "watch", false, "rebuild whenever the input file changes")
	fs.BoolVar(&o.printConfig, "print-config", false, "print the effective settings as TOML and exit")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if fs.NArg() > 0 {
		return o, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	if o.watch && o.in == "-" {
		return o, errors.New("-watch needs an input file")
	}
	if o.precision < 0 {
		return o, fmt.Errorf("-precision must be positive, got %g", o.precision)
	}
	return o, nil
}

func loadConfig(o options) (config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return cfg, err
		}
	}
	if o.format != "" {
		cfg.Output.Format = o.format
	}
	if o.noJoin {
		cfg.Retopo.Join = false
	}
	return cfg, cfg.Validate()
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	retopo.SetLogger(log)
	defer retopo.SetLogger(nil)

	cfg, err := loadConfig(o)
	if err != nil {
		return err
	}
	if o.printConfig {
		return cfg.Encode(stdout)
	}

	app := NewApp(cfg, log)
	app.precision = o.precision

	build := func() error {
		var res EvalResult
		if o.in == "-" {
			set, err := strokes.Decode(stdin, strokes.FormatJSON)
			if err != nil {
				return err
			}
			res = app.Reconstruct(set)
		} else {
			res = app.Load(o.in)
		}
		if o.strokesOut != "" && res.Strokes != nil {
			if err := saveStrokes(o.strokesOut, res.Strokes, log); err != nil {
				return err
			}
		}
		return emit(res, cfg, o.out, stdout, log)
	}

	if o.watch {
		return watch(ctx, o.in, build, log)
	}
	return build()
}

// emit logs the result's warnings and writes its mesh. A result carrying
// errors is reported and nothing is written.
func emit(res EvalResult, cfg config.Config, out string, stdout io.Writer, log *slog.Logger) error {
	for _, w := range res.Warnings {
		log.Warn(w.Message)
	}
	if !res.OK() {
		for _, e := range res.Errors {
			if e.Line > 0 {
				log.Error(e.Message, "line", e.Line)
			} else {
				log.Error(e.Message)
			}
		}
		return fmt.Errorf("%d errors", len(res.Errors))
	}

	sink, err := cfg.Sink()
	if err != nil {
		return err
	}
	if out == "-" {
		return sink.Write(stdout, res.Mesh)
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := sink.Write(f, res.Mesh); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Info("wrote mesh", "path", out, "format", cfg.Output.Format)
	return nil
}

// saveStrokes writes the strokes of set that have at least two points to
// path, in the format its extension selects.
func saveStrokes(path string, set *strokes.Set, log *slog.Logger) error {
	usable, discarded := set.Usable()
	out := &strokes.Set{Precision: set.Precision, Strokes: usable}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := strokes.Encode(f, out, strokes.FormatFor(path)); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Info("wrote strokes", "path", path, "strokes", len(usable), "discarded", discarded)
	return nil
}

// readSource reads a script from path.
func readSource(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
