package retopo

import (
	"math"
	"testing"

	"github.com/chazu/retopo/pkg/geom"
	"github.com/chazu/retopo/pkg/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findAll(splines []*Spline, precision float64) (*graph.Graph, int) {
	g := graph.New()
	tab := graph.NewTable(g, cellSize(splines, precision))
	n := FindIntersections(splines, tab, precision, DefaultBoxMargin)
	return g, n
}

func TestIntersectCrossing(t *testing.T) {
	a := mustSpline([]geom.Point{pt(-1, 0, 0), pt(1, 0, 0)}, 40)
	b := mustSpline([]geom.Point{pt(0, -1, 0), pt(0, 1, 0)}, 40)

	g, n := findAll([]*Spline{a, b}, 40)
	require.Equal(t, 1, n)
	require.Equal(t, 1, g.Len())
	assert.InDelta(t, 0, geom.Distance(g.Get(0).Position, pt(0, 0, 0)), 1e-12)

	require.Len(t, a.Attachments, 1)
	require.Len(t, b.Attachments, 1)
	assert.Same(t, a.Attachments[0].Junction, b.Attachments[0].Junction)
	assert.Equal(t, 0, a.Attachments[0].Segment)
}

func TestIntersectNearMiss(t *testing.T) {
	// b climbs in z as it crosses above a, passing it at a distance of
	// offset/sqrt(2). Tolerance is min(2, 2.83)/40 = 0.05.
	tests := []struct {
		name   string
		offset float64
		want   int
	}{
		{"within tolerance", 0.05, 1},
		{"beyond tolerance", 0.1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := mustSpline([]geom.Point{pt(-1, 0, 0), pt(1, 0, 0)}, 40)
			b := mustSpline([]geom.Point{pt(0, -1, tt.offset-1), pt(0, 1, tt.offset+1)}, 40)
			g, n := findAll([]*Spline{a, b}, 40)
			assert.Equal(t, tt.want, n)
			if tt.want == 1 {
				// The junction sits midway between the closest points.
				j := g.Get(0).Position
				assert.InDelta(t, -tt.offset/4, j.Y, 1e-9)
				assert.InDelta(t, tt.offset/4, j.Z, 1e-9)
			}
		})
	}
}

func TestIntersectOffSegment(t *testing.T) {
	// b stops short of a; their lines cross, but not within b.
	a := mustSpline([]geom.Point{pt(-1, 0, 0), pt(1, 0, 0)}, 40)
	b := mustSpline([]geom.Point{pt(0, 0.2, 0), pt(0, 1, 0)}, 40)
	_, n := findAll([]*Spline{a, b}, 40)
	assert.Equal(t, 0, n)
}

func TestIntersectParallel(t *testing.T) {
	a := mustSpline([]geom.Point{pt(0, 0, 0), pt(1, 0, 0)}, 40)
	b := mustSpline([]geom.Point{pt(0, 0.01, 0), pt(1, 0.01, 0)}, 40)
	_, n := findAll([]*Spline{a, b}, 40)
	assert.Equal(t, 0, n)
}

func TestIntersectDeduplicatesJunctions(t *testing.T) {
	// Three strokes pass within tolerance of the origin.
	a := mustSpline([]geom.Point{pt(-1, 0, 0), pt(1, 0, 0)}, 40)
	b := mustSpline([]geom.Point{pt(0, -1, 0), pt(0, 1, 0)}, 40)
	c := mustSpline([]geom.Point{pt(-1, -1.001, 0), pt(1, 0.999, 0)}, 40)

	g, n := findAll([]*Spline{a, b, c}, 40)
	assert.Equal(t, 3, n)
	assert.Equal(t, 1, g.Len())
}

func TestIntersectThroughVertex(t *testing.T) {
	// b crosses a exactly at a's middle vertex, which both of a's segments
	// report. They must share one junction.
	a := mustSpline([]geom.Point{pt(-1, 0, 0), pt(0, 0, 0), pt(1, 0, 0)}, 40)
	b := mustSpline([]geom.Point{pt(0, -1, 0), pt(0, 1, 0)}, 40)

	g, _ := findAll([]*Spline{a, b}, 40)
	assert.Equal(t, 1, g.Len())
	require.Len(t, a.Attachments, 2)
	assert.Same(t, a.Attachments[0].Junction, a.Attachments[1].Junction)
}

func TestIntersectBoxPrefilter(t *testing.T) {
	a := mustSpline([]geom.Point{pt(0, 0, 0), pt(1, 0, 0)}, 40)
	far := mustSpline([]geom.Point{pt(10, -1, 0), pt(10, 1, 0)}, 40)
	_, n := findAll([]*Spline{a, far}, 40)
	assert.Equal(t, 0, n)
}

func TestCellSize(t *testing.T) {
	a := mustSpline([]geom.Point{pt(0, 0, 0), pt(4, 0, 0)}, 40)
	b := mustSpline([]geom.Point{pt(0, 0, 0), pt(2, 0, 0)}, 40)
	assert.InDelta(t, 0.05, cellSize([]*Spline{a, b}, 40), 1e-12)
	assert.True(t, math.IsInf(cellSize(nil, 40), 1))
}
