package retopo

import (
	"cmp"
	"slices"

	"github.com/chazu/retopo/pkg/geom"
	"github.com/chazu/retopo/pkg/graph"
)

// LinkSplines links the junctions found along each spline.
func LinkSplines(splines []*Spline, g *graph.Graph) {
	for _, s := range splines {
		s.link(g)
	}
}

// link orders the spline's junctions along its points and links each to
// the next, closing the loop for a closed spline. Junctions on the same
// segment are ordered by distance from the segment start.
func (s *Spline) link(g *graph.Graph) {
	if len(s.Attachments) < 2 {
		return
	}
	ordered := s.OrderedJunctions()
	for i := 1; i < len(ordered); i++ {
		g.Link(ordered[i-1], ordered[i])
	}
	if s.Closed {
		g.Link(ordered[len(ordered)-1], ordered[0])
	}
}

// OrderedJunctions returns the attached junctions in the order they occur
// along the spline.
func (s *Spline) OrderedJunctions() []*graph.Junction {
	atts := append([]Attachment(nil), s.Attachments...)
	slices.SortStableFunc(atts, func(a, b Attachment) int {
		if c := cmp.Compare(a.Segment, b.Segment); c != 0 {
			return c
		}
		start := s.Points[a.Segment]
		return cmp.Compare(geom.Distance(a.Junction.Position, start), geom.Distance(b.Junction.Position, start))
	})
	js := make([]*graph.Junction, len(atts))
	for i, a := range atts {
		js[i] = a.Junction
	}
	return js
}
