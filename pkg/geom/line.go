package geom

// parallelTolerance is the relative threshold below which two segment
// directions are treated as parallel.
const parallelTolerance = 1e-12

// Approach describes where two lines pass closest to each other.
// A lies on the first line and B on the second. S and T are the positions
// of A and B along their segments: 0 at the segment start, 1 at its end.
type Approach struct {
	A, B Point
	S, T float64
}

// ClosestApproach returns the closest points between the infinite lines
// through segments a0-a1 and b0-b1. ok is false for parallel lines and for
// zero-length segments.
func ClosestApproach(a0, a1, b0, b1 Point) (ap Approach, ok bool) {
	d1 := a1.Sub(a0)
	d2 := b1.Sub(b0)
	r := a0.Sub(b0)

	a := d1.Dot(d1)
	e := d2.Dot(d2)
	if a == 0 || e == 0 {
		return Approach{}, false
	}
	b := d1.Dot(d2)
	c := d1.Dot(r)
	f := d2.Dot(r)

	denom := a*e - b*b
	if denom <= parallelTolerance*a*e {
		return Approach{}, false
	}

	s := (b*f - c*e) / denom
	t := (a*f - b*c) / denom
	return Approach{
		A: a0.Add(d1.MulScalar(s)),
		B: b0.Add(d2.MulScalar(t)),
		S: s,
		T: t,
	}, true
}

// Gap is the distance between the two closest points.
func (ap Approach) Gap() float64 {
	return Distance(ap.A, ap.B)
}

// Mid is the point halfway between the two closest points.
func (ap Approach) Mid() Point {
	return Lerp(ap.A, ap.B, 0.5)
}

// OnSegments reports whether both closest points fall within their
// segments rather than on the extensions.
func (ap Approach) OnSegments() bool {
	return ap.S >= 0 && ap.S <= 1 && ap.T >= 0 && ap.T <= 1
}
