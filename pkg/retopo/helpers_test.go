package retopo

import (
	"math"

	"github.com/chazu/retopo/pkg/geom"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

func pt(x, y, z float64) geom.Point { return v3.Vec{X: x, Y: y, Z: z} }

// edge returns the 2-point stroke from a to b extended past both ends by
// f times its length, so neighbouring edges cross instead of touching.
func edge(a, b geom.Point, f float64) []geom.Point {
	d := b.Sub(a).MulScalar(f)
	return []geom.Point{a.Sub(d), b.Add(d)}
}

// outline returns one extended edge stroke per side of the polygon.
func outline(corners ...geom.Point) [][]geom.Point {
	var strokes [][]geom.Point
	for i := range corners {
		strokes = append(strokes, edge(corners[i], corners[(i+1)%len(corners)], 0.2))
	}
	return strokes
}

// arc samples n+1 points of the unit circle in the XY plane from angle
// from to angle to, in degrees.
func arc(from, to float64, n int) []geom.Point {
	pts := make([]geom.Point, n+1)
	for i := 0; i <= n; i++ {
		a := (from + (to-from)*float64(i)/float64(n)) * math.Pi / 180
		pts[i] = pt(math.Cos(a), math.Sin(a), 0)
	}
	return pts
}

func mustSpline(pts []geom.Point, precision float64) *Spline {
	s, err := NewSpline(pts, precision)
	if err != nil {
		panic(err)
	}
	return s
}
