package retopo

import (
	"fmt"

	"github.com/chazu/retopo/pkg/geom"
	"github.com/chazu/retopo/pkg/graph"
)

// Attachment records that a junction was found on segment Segment of a
// spline, i.e. between Points[Segment] and Points[Segment+1].
type Attachment struct {
	Segment  int
	Junction *graph.Junction
}

// Spline is one polyline, built from a stroke or from several joined
// strokes. Length, Closed and Box are caches kept in sync with Points.
type Spline struct {
	Points      []geom.Point
	Length      float64
	Closed      bool
	Box         geom.BoundingBox
	Attachments []Attachment
}

// NewSpline builds a spline from at least two points. The points are
// copied. precision controls the closure tolerance: the spline is closed
// when its end points are less than Length/precision apart.
func NewSpline(points []geom.Point, precision float64) (*Spline, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("retopo: spline needs at least 2 points, got %d", len(points))
	}
	s := &Spline{Points: append([]geom.Point(nil), points...)}
	s.recalc(precision)
	return s, nil
}

// recalc refreshes the cached length, closure and bounding box.
func (s *Spline) recalc(precision float64) {
	s.Length = geom.PathLength(s.Points)
	s.Closed = geom.Distance(s.Start(), s.End()) < s.Length/precision
	s.Box.Calc(s.Points)
}

// Start returns the first point.
func (s *Spline) Start() geom.Point { return s.Points[0] }

// End returns the last point.
func (s *Spline) End() geom.Point { return s.Points[len(s.Points)-1] }

// Segments returns the number of segments.
func (s *Spline) Segments() int { return len(s.Points) - 1 }

func (s *Spline) attach(segment int, j *graph.Junction) {
	s.Attachments = append(s.Attachments, Attachment{Segment: segment, Junction: j})
}
