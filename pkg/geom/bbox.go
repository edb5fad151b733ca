package geom

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// BoundingBox is an axis-aligned 3D bound. The zero value is NOT empty;
// use EmptyBox or BoxOf to get a box ready for accumulation.
type BoundingBox struct {
	sdf.Box3
}

// EmptyBox returns a box with inverted infinite bounds. Any point or box
// unioned into it replaces the sentinels.
func EmptyBox() BoundingBox {
	inf := math.Inf(1)
	return BoundingBox{sdf.Box3{
		Min: v3.Vec{X: inf, Y: inf, Z: inf},
		Max: v3.Vec{X: -inf, Y: -inf, Z: -inf},
	}}
}

// BoxOf returns the bounding box of points.
func BoxOf(points []Point) BoundingBox {
	b := EmptyBox()
	b.Calc(points)
	return b
}

// Calc resets the box to the bounds of points.
func (b *BoundingBox) Calc(points []Point) {
	*b = EmptyBox()
	for _, p := range points {
		b.Min = b.Min.Min(p)
		b.Max = b.Max.Max(p)
	}
}

// IsEmpty reports whether the box still holds its sentinel bounds.
func (b BoundingBox) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// Dims returns the extent of the box along each axis. An empty box has
// zero extent.
func (b BoundingBox) Dims() v3.Vec {
	if b.IsEmpty() {
		return v3.Vec{}
	}
	return b.Max.Sub(b.Min)
}

// Intersects reports whether b and other overlap. A positive margin widens
// the test on each axis by margin times the average extent of the two boxes
// along that axis. Touching boxes intersect.
func (b BoundingBox) Intersects(other BoundingBox, margin float64) bool {
	if b.IsEmpty() || other.IsEmpty() {
		return false
	}
	var m v3.Vec
	if margin != 0 {
		m = b.Dims().Add(other.Dims()).MulScalar(margin / 2)
	}
	switch {
	case b.Max.X < other.Min.X-m.X, b.Max.Y < other.Min.Y-m.Y, b.Max.Z < other.Min.Z-m.Z:
		return false
	case b.Min.X > other.Max.X+m.X, b.Min.Y > other.Max.Y+m.Y, b.Min.Z > other.Max.Z+m.Z:
		return false
	}
	return true
}

// Union grows b in place to also cover other.
func (b *BoundingBox) Union(other BoundingBox) {
	if other.IsEmpty() {
		return
	}
	if b.IsEmpty() {
		*b = other
		return
	}
	b.Box3 = b.Box3.Extend(other.Box3)
}
