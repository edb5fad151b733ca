package geom

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Point is a 3D coordinate. Points are only ever compared through
// distance thresholds, never with ==.
type Point = v3.Vec

// Key is a point quantized to a fixed number of decimal places.
type Key [3]float64

// Distance returns the euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return a.Sub(b).Length()
}

// Lerp interpolates between a and b; f=0 yields a, f=1 yields b.
func Lerp(a, b Point, f float64) Point {
	return a.Add(b.Sub(a).MulScalar(f))
}

// Quantize rounds each coordinate of p to the given number of decimal places.
func Quantize(p Point, places int) Key {
	scale := math.Pow(10, float64(places))
	round := func(f float64) float64 {
		return math.Round(f*scale) / scale
	}
	return Key{round(p.X), round(p.Y), round(p.Z)}
}

// Angle returns the unsigned angle between u and v in radians.
// ok is false when either vector has zero length.
func Angle(u, v Point) (rad float64, ok bool) {
	lu, lv := u.Length(), v.Length()
	if lu == 0 || lv == 0 {
		return 0, false
	}
	c := u.Dot(v) / (lu * lv)
	// Rounding can push |c| slightly past 1.
	c = math.Max(-1, math.Min(1, c))
	return math.Acos(c), true
}

// PathLength sums the distances between consecutive points.
func PathLength(points []Point) float64 {
	var f float64
	for i := 1; i < len(points); i++ {
		f += Distance(points[i], points[i-1])
	}
	return f
}
