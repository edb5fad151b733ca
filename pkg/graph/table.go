package graph

import (
	"math"

	"github.com/chazu/retopo/pkg/geom"
)

type cellKey [3]int64

// Table deduplicates junctions during intersection finding. Junctions are
// bucketed on a uniform grid so a lookup only visits the cells that can
// hold a match; equality is still decided purely by distance.
//
// A Table belongs to a single run and is dropped once linking is done.
type Table struct {
	g     *Graph
	cell  float64
	cells map[cellKey][]*Junction
}

// NewTable returns a Table that registers new junctions in g. cell is the
// grid spacing; a non-positive or non-finite cell disables the grid and
// every lookup scans all junctions.
func NewTable(g *Graph, cell float64) *Table {
	t := &Table{g: g}
	if cell > 0 && !math.IsInf(cell, 0) && !math.IsNaN(cell) {
		t.cell = cell
		t.cells = make(map[cellKey][]*Junction)
	}
	return t
}

// Lookup returns the junction with the lowest index that lies strictly
// within eps of p, or nil.
func (t *Table) Lookup(p geom.Point, eps float64) *Junction {
	if t.cells == nil || t.sweepTooLarge(eps) {
		return t.scan(t.g.junctions, p, eps)
	}

	r := int64(math.Ceil(eps / t.cell))
	c := t.keyOf(p)
	var best *Junction
	for dx := -r; dx <= r; dx++ {
		for dy := -r; dy <= r; dy++ {
			for dz := -r; dz <= r; dz++ {
				bucket := t.cells[cellKey{c[0] + dx, c[1] + dy, c[2] + dz}]
				if j := t.scan(bucket, p, eps); j != nil && (best == nil || j.Index < best.Index) {
					best = j
				}
			}
		}
	}
	return best
}

// LookupOrCreate returns the junction within eps of p, creating one at p
// when there is none. created reports whether a new junction was made.
func (t *Table) LookupOrCreate(p geom.Point, eps float64) (j *Junction, created bool) {
	if j := t.Lookup(p, eps); j != nil {
		return j, false
	}
	j = t.g.Add(p)
	if t.cells != nil {
		k := t.keyOf(p)
		t.cells[k] = append(t.cells[k], j)
	}
	return j, true
}

// sweepTooLarge reports whether visiting the neighbor cells for eps would
// cost more than scanning every junction.
func (t *Table) sweepTooLarge(eps float64) bool {
	side := 2*math.Ceil(eps/t.cell) + 1
	return side*side*side > float64(len(t.g.junctions))
}

func (t *Table) keyOf(p geom.Point) cellKey {
	return cellKey{
		int64(math.Floor(p.X / t.cell)),
		int64(math.Floor(p.Y / t.cell)),
		int64(math.Floor(p.Z / t.cell)),
	}
}

func (t *Table) scan(js []*Junction, p geom.Point, eps float64) *Junction {
	var best *Junction
	for _, j := range js {
		if geom.Distance(j.Position, p) < eps && (best == nil || j.Index < best.Index) {
			best = j
		}
	}
	return best
}
