// Package sdfx implements kernel.Kernel with the github.com/deadsy/sdfx
// SDF library. Solids are meshed with marching cubes.
package sdfx

import (
	"errors"
	"fmt"
	"math"

	"github.com/chazu/retopo/pkg/geom"
	"github.com/chazu/retopo/pkg/kernel"
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
)

// Compile-time interface check.
var _ kernel.Kernel = (*SdfxKernel)(nil)

// DefaultMeshCells is the marching cubes resolution along the longest
// side of the solid's bounding box.
const DefaultMeshCells = 200

// sdfxSolid wraps an sdf.SDF3 to implement kernel.Solid.
type sdfxSolid struct {
	s sdf.SDF3
}

func (s *sdfxSolid) BoundingBox() (min, max [3]float64) {
	bb := s.s.BoundingBox()
	min = [3]float64{bb.Min.X, bb.Min.Y, bb.Min.Z}
	max = [3]float64{bb.Max.X, bb.Max.Y, bb.Max.Z}
	return min, max
}

// SdfxKernel implements kernel.Kernel using sdfx.
type SdfxKernel struct {
	cells int
}

// New returns a kernel meshing at DefaultMeshCells.
func New() *SdfxKernel {
	return &SdfxKernel{cells: DefaultMeshCells}
}

// NewWithCells returns a kernel meshing at the given resolution.
func NewWithCells(cells int) *SdfxKernel {
	if cells <= 0 {
		cells = DefaultMeshCells
	}
	return &SdfxKernel{cells: cells}
}

func unwrap(s kernel.Solid) sdf.SDF3 {
	return s.(*sdfxSolid).s
}

func wrap(s sdf.SDF3) kernel.Solid {
	return &sdfxSolid{s: s}
}

// Sphere creates a ball of the given radius at center.
func (k *SdfxKernel) Sphere(center geom.Point, radius float64) (kernel.Solid, error) {
	s, err := sdf.Sphere3D(radius)
	if err != nil {
		return nil, fmt.Errorf("sdfx: sphere: %w", err)
	}
	return wrap(sdf.Transform3D(s, sdf.Translate3d(center))), nil
}

// Strut creates a cylinder of the given radius whose axis runs from a
// to b.
func (k *SdfxKernel) Strut(a, b geom.Point, radius float64) (kernel.Solid, error) {
	d := b.Sub(a)
	h := d.Length()
	if h == 0 {
		return nil, errors.New("sdfx: strut: zero length")
	}
	s, err := sdf.Cylinder3D(h, radius, 0)
	if err != nil {
		return nil, fmt.Errorf("sdfx: strut: %w", err)
	}
	// Cylinder3D stands on the z axis, centered on the origin. Tilt it off
	// z by the polar angle, swing it round by the azimuth, then move it to
	// the midpoint.
	polar := math.Acos(math.Max(-1, math.Min(1, d.Z/h)))
	azimuth := math.Atan2(d.Y, d.X)
	mid := geom.Lerp(a, b, 0.5)
	m := sdf.Translate3d(mid).Mul(sdf.RotateZ(azimuth)).Mul(sdf.RotateY(polar))
	return wrap(sdf.Transform3D(s, m)), nil
}

// Union returns the union of the solids.
func (k *SdfxKernel) Union(solids ...kernel.Solid) kernel.Solid {
	ss := make([]sdf.SDF3, len(solids))
	for i, s := range solids {
		ss[i] = unwrap(s)
	}
	return wrap(sdf.Union3D(ss...))
}

// ToMesh converts a solid to a triangle mesh using marching cubes. Every
// triangle gets its own three vertices carrying the face normal.
func (k *SdfxKernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	sdf3 := unwrap(s)

	renderer := render.NewMarchingCubesUniform(k.cells)
	triangles := render.ToTriangles(sdf3, renderer)
	if len(triangles) == 0 {
		return nil, errors.New("sdfx: marching cubes produced no triangles")
	}

	numVerts := len(triangles) * 3
	vertices := make([]float32, 0, numVerts*3)
	normals := make([]float32, 0, numVerts*3)
	indices := make([]uint32, 0, numVerts)

	for i, tri := range triangles {
		n := tri.Normal()
		nx, ny, nz := float32(n.X), float32(n.Y), float32(n.Z)
		for j := 0; j < 3; j++ {
			v := tri[j]
			vertices = append(vertices, float32(v.X), float32(v.Y), float32(v.Z))
			normals = append(normals, nx, ny, nz)
			indices = append(indices, uint32(i*3+j))
		}
	}

	return &kernel.Mesh{
		Vertices: vertices,
		Normals:  normals,
		Indices:  indices,
	}, nil
}
