// Package kernel defines the solid geometry interface used to thicken a
// wire mesh into a printable cage. Backends live in sub-packages.
package kernel

import "github.com/chazu/retopo/pkg/geom"

// Solid is an opaque handle to a kernel solid.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel builds solids and meshes them.
type Kernel interface {
	// Primitives
	Sphere(center geom.Point, radius float64) (Solid, error)
	Strut(a, b geom.Point, radius float64) (Solid, error) // rod from a to b

	// Boolean operations
	Union(solids ...Solid) Solid

	// Mesh output
	ToMesh(s Solid) (*Mesh, error)
}
