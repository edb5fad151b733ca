package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/chazu/retopo/pkg/config"
	"github.com/chazu/retopo/pkg/engine"
	"github.com/chazu/retopo/pkg/graph"
	"github.com/chazu/retopo/pkg/mesh"
	"github.com/chazu/retopo/pkg/retopo"
	"github.com/chazu/retopo/pkg/strokes"
)

// App turns stroke scripts and stroke files into meshes.
type App struct {
	engine *engine.Engine
	cfg    config.Config
	log    *slog.Logger

	// precision overrides the file and config precision when positive.
	precision float64
}

// EvalErrorData is one problem reported back to the user.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// EvalResult is the outcome of one run. Mesh is nil when Errors is not
// empty.
type EvalResult struct {
	Mesh     *mesh.Mesh      `json:"mesh"`
	Stats    retopo.Stats    `json:"stats"`
	Errors   []EvalErrorData `json:"errors"`
	Warnings []EvalErrorData `json:"warnings"`

	// Strokes is the input the mesh was built from, set once the strokes
	// were read or drawn.
	Strokes *strokes.Set `json:"-"`
}

// OK reports whether the run produced a mesh.
func (r EvalResult) OK() bool {
	return len(r.Errors) == 0 && r.Mesh != nil
}

// NewApp creates an App using cfg. A nil logger discards everything.
func NewApp(cfg config.Config, log *slog.Logger) *App {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &App{
		engine: engine.NewEngine(),
		cfg:    cfg,
		log:    log,
	}
}

func newResult() EvalResult {
	return EvalResult{
		Errors:   []EvalErrorData{},
		Warnings: []EvalErrorData{},
	}
}

func (r *EvalResult) fail(format string, args ...any) EvalResult {
	r.Errors = append(r.Errors, EvalErrorData{Message: fmt.Sprintf(format, args...)})
	return *r
}

// isScript reports whether path names a stroke script rather than a
// stroke file.
func isScript(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".lisp", ".zy":
		return true
	}
	return false
}

// Load reads path, either a script or a stroke file, and reconstructs it.
func (a *App) Load(path string) EvalResult {
	if isScript(path) {
		src, err := readSource(path)
		if err != nil {
			res := newResult()
			return res.fail("%v", err)
		}
		return a.Evaluate(src)
	}
	set, err := strokes.Load(path)
	if err != nil {
		res := newResult()
		return res.fail("%v", err)
	}
	return a.Reconstruct(set)
}

// Evaluate runs a stroke script and reconstructs what it draws.
func (a *App) Evaluate(source string) EvalResult {
	res := newResult()

	set, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		a.log.Error("evaluate fatal error", "err", err)
		return res.fail("%v", err)
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			a.log.Debug("script error", "line", e.Line, "msg", e.Message)
			res.Errors = append(res.Errors, EvalErrorData{Line: e.Line, Col: e.Col, Message: e.Message})
		}
		return res
	}
	return a.Reconstruct(set)
}

// options returns the pipeline options for set. The command line
// precision wins over the one stored in the file, which wins over config.
func (a *App) options(set *strokes.Set) retopo.Options {
	opts := a.cfg.Retopo
	switch {
	case a.precision > 0:
		opts.Precision = a.precision
	case set.Precision > 0:
		opts.Precision = set.Precision
	}
	return opts
}

// checkGraph validates g and splits the findings by severity.
func (a *App) checkGraph(g *graph.Graph) (warnings, errs []EvalErrorData) {
	findings := graph.Validate(g)
	for _, f := range findings {
		a.log.Debug("graph check", "finding", f.Error())
		if f.Severity == graph.SeverityWarning {
			warnings = append(warnings, EvalErrorData{Message: f.Error()})
		}
	}
	if graph.HasErrors(findings) {
		for _, f := range findings {
			if f.Severity == graph.SeverityError {
				errs = append(errs, EvalErrorData{Message: f.Error()})
			}
		}
	}
	return warnings, errs
}

// Reconstruct runs the pipeline over set.
func (a *App) Reconstruct(set *strokes.Set) EvalResult {
	res := newResult()
	res.Strokes = set
	opts := a.options(set)

	out, err := retopo.Calculate(set.Points(), opts)
	if err != nil {
		a.log.Error("reconstruction failed", "err", err)
		return res.fail("%v", err)
	}
	res.Stats = out.Stats

	if out.Graph != nil {
		warnings, errs := a.checkGraph(out.Graph)
		res.Warnings = append(res.Warnings, warnings...)
		if len(errs) > 0 {
			res.Errors = append(res.Errors, errs...)
			return res
		}
	}

	m := mesh.FromResult(out, a.cfg.Output.Name)
	if err := m.Check(); err != nil {
		return res.fail("%v", err)
	}
	res.Mesh = m

	if n := out.Stats.Discarded; n > 0 {
		res.Warnings = append(res.Warnings, EvalErrorData{Message: fmt.Sprintf("%d strokes with fewer than 2 points skipped", n)})
	}
	if n := out.Stats.Orphans; n > 0 {
		res.Warnings = append(res.Warnings, EvalErrorData{Message: fmt.Sprintf("%d crossings had no neighbours and were dropped", n)})
	}
	if out.IsEmpty() {
		msg := "no crossings found; the mesh is empty"
		if out.Stats.Junctions > 0 {
			msg = "no linked junctions; the mesh is empty"
		}
		res.Warnings = append(res.Warnings, EvalErrorData{Message: msg})
	}

	a.log.Info("reconstructed",
		"precision", opts.Precision,
		"strokes", out.Stats.Strokes,
		"joins", out.Stats.Joins,
		"vertices", res.Mesh.VertexCount(),
		"edges", res.Mesh.EdgeCount(),
		"faces", res.Mesh.FaceCount(),
	)
	return res
}
