package retopo

import (
	"math"

	"github.com/chazu/retopo/pkg/geom"
	"github.com/chazu/retopo/pkg/graph"
)

// FindIntersections tests every pair of splines whose bounding boxes
// overlap (widened by margin) and records a junction for each crossing on
// both splines. Crossings within tolerance of an existing junction reuse
// it. It returns the number of crossings found.
func FindIntersections(splines []*Spline, tab *graph.Table, precision, margin float64) int {
	crossings := 0
	for i, a := range splines {
		for _, b := range splines[i+1:] {
			if !a.Box.Intersects(b.Box, margin) {
				continue
			}
			crossings += intersectPair(a, b, tab, precision)
		}
	}
	return crossings
}

// intersectPair checks every segment of a against every segment of b.
// Two segments cross when their closest points are within
// min(a.Length, b.Length)/precision and both lie on the segments proper.
func intersectPair(a, b *Spline, tab *graph.Table, precision float64) int {
	eps := math.Min(a.Length, b.Length) / precision
	n := 0
	for i := 0; i < a.Segments(); i++ {
		for k := 0; k < b.Segments(); k++ {
			ap, ok := geom.ClosestApproach(a.Points[i], a.Points[i+1], b.Points[k], b.Points[k+1])
			if !ok || ap.Gap() > eps || !ap.OnSegments() {
				continue
			}
			j, _ := tab.LookupOrCreate(ap.Mid(), eps)
			a.attach(i, j)
			b.attach(k, j)
			n++
		}
	}
	return n
}

// cellSize picks the junction grid spacing: the smallest tolerance any
// spline pair can produce.
func cellSize(splines []*Spline, precision float64) float64 {
	cell := math.Inf(1)
	for _, s := range splines {
		if s.Length > 0 {
			cell = math.Min(cell, s.Length/precision)
		}
	}
	return cell
}
