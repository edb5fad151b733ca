package retopo

import (
	"fmt"

	"github.com/chazu/retopo/pkg/geom"
	"github.com/chazu/retopo/pkg/graph"
)

// Stats summarizes one run.
type Stats struct {
	Strokes   int `json:"strokes"`   // strokes supplied
	Discarded int `json:"discarded"` // strokes with fewer than 2 points
	Splines   int `json:"splines"`   // splines left after joining
	Joins     int `json:"joins"`     // stroke joins performed
	Crossings int `json:"crossings"` // segment crossings accepted
	Junctions int `json:"junctions"` // junctions found, orphans included
	Orphans   int `json:"orphans"`   // junctions dropped for having no links
}

// Result is the reconstructed topology. Edges are (low, high) vertex
// index pairs; faces hold 3 or 4 vertex indices.
type Result struct {
	Vertices []geom.Point `json:"vertices"`
	Edges    [][2]int     `json:"edges"`
	Faces    [][]int      `json:"faces"`
	Stats    Stats        `json:"stats"`

	// Graph is the compacted junction graph the triple was read from.
	Graph *graph.Graph `json:"-"`
}

// IsEmpty reports whether no vertices were produced.
func (r *Result) IsEmpty() bool {
	return len(r.Vertices) == 0
}

// Calculate runs the whole reconstruction over strokes. Strokes with fewer
// than two points are skipped. A nil strokes slice is a missing-input
// precondition failure (ErrNoHostContext); an empty one yields an empty
// result.
func Calculate(strokes [][]geom.Point, opts Options) (*Result, error) {
	if strokes == nil {
		return nil, ErrNoHostContext
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	log := Logger()

	res := &Result{
		Vertices: []geom.Point{},
		Edges:    [][2]int{},
		Faces:    [][]int{},
		Stats:    Stats{Strokes: len(strokes)},
	}

	splines := make([]*Spline, 0, len(strokes))
	for _, pts := range strokes {
		if len(pts) < 2 {
			res.Stats.Discarded++
			continue
		}
		s, err := NewSpline(pts, opts.Precision)
		if err != nil {
			return nil, fmt.Errorf("retopo: building spline: %w", err)
		}
		splines = append(splines, s)
	}
	if res.Stats.Discarded > 0 {
		log.Info("skipped strokes with fewer than 2 points", "count", res.Stats.Discarded)
	}

	if opts.Join {
		splines, res.Stats.Joins = JoinSplines(splines, opts)
	}
	res.Stats.Splines = len(splines)
	log.Debug("splines ready", "splines", len(splines), "joins", res.Stats.Joins)

	g := graph.New()
	tab := graph.NewTable(g, cellSize(splines, opts.Precision))
	res.Stats.Crossings = FindIntersections(splines, tab, opts.Precision, opts.BoxMargin)
	res.Stats.Junctions = g.Len()
	log.Debug("intersections found", "crossings", res.Stats.Crossings, "junctions", g.Len())

	LinkSplines(splines, g)
	res.Stats.Orphans = g.Compact()
	log.Debug("junctions linked", "edges", g.EdgeCount(), "orphans", res.Stats.Orphans)

	res.Vertices = g.Positions()
	res.Edges = g.Edges()
	res.Faces = BuildFaces(g)
	res.Graph = g
	log.Debug("faces built", "vertices", len(res.Vertices), "faces", len(res.Faces))

	return res, nil
}
