// Package tessellate turns a reconstructed polygon mesh into triangle
// meshes: a flat-shaded surface over its faces, or a solid cage of rods
// along its edges built with a geometry kernel.
package tessellate

import (
	"errors"
	"fmt"

	"github.com/chazu/retopo/pkg/kernel"
	"github.com/chazu/retopo/pkg/mesh"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// ErrEmptyMesh is returned when there is no geometry to build from.
var ErrEmptyMesh = errors.New("tessellate: mesh has no vertices")

// Triangulate fan-splits every face of m into triangles. Each triangle
// gets its own three vertices carrying its face normal, so the result
// shades flat. The input is never modified.
func Triangulate(m *mesh.Mesh) *kernel.Mesh {
	out := &kernel.Mesh{
		Vertices: []float32{},
		Normals:  []float32{},
		Indices:  []uint32{},
		Name:     m.Name,
	}
	for _, f := range m.Faces {
		for i := 1; i+1 < len(f); i++ {
			addTriangle(out, corner(m, f[0]), corner(m, f[i]), corner(m, f[i+1]))
		}
	}
	return out
}

func corner(m *mesh.Mesh, i uint32) [3]float32 {
	return [3]float32{m.Vertices[3*i], m.Vertices[3*i+1], m.Vertices[3*i+2]}
}

func addTriangle(out *kernel.Mesh, a, b, c [3]float32) {
	n := kernel.FaceNormal(a, b, c)
	base := uint32(out.VertexCount())
	for j, v := range [3][3]float32{a, b, c} {
		out.Vertices = append(out.Vertices, v[:]...)
		out.Normals = append(out.Normals, n[:]...)
		out.Indices = append(out.Indices, base+uint32(j))
	}
}

// CageOptions size the rods and joints of a cage.
type CageOptions struct {
	Radius      float64 // rod radius
	JointRadius float64 // ball radius at each vertex; 0 means Radius
}

// Cage builds a printable wireframe of m: a rod along every edge and a
// ball at every vertex, unioned by k and meshed.
func Cage(m *mesh.Mesh, k kernel.Kernel, opts CageOptions) (*kernel.Mesh, error) {
	if m.IsEmpty() {
		return nil, ErrEmptyMesh
	}
	if !(opts.Radius > 0) {
		return nil, fmt.Errorf("tessellate: cage radius must be positive, got %g", opts.Radius)
	}
	joint := opts.JointRadius
	if joint <= 0 {
		joint = opts.Radius
	}

	point := func(i uint32) v3.Vec {
		c := m.Vertex(i)
		return v3.Vec{X: c[0], Y: c[1], Z: c[2]}
	}

	solids := make([]kernel.Solid, 0, m.VertexCount()+m.EdgeCount())
	for i := 0; i < m.VertexCount(); i++ {
		s, err := k.Sphere(point(uint32(i)), joint)
		if err != nil {
			return nil, fmt.Errorf("tessellate: joint %d: %w", i, err)
		}
		solids = append(solids, s)
	}
	for i := 0; i < m.EdgeCount(); i++ {
		a, b := m.Edge(i)
		s, err := k.Strut(point(a), point(b), opts.Radius)
		if err != nil {
			return nil, fmt.Errorf("tessellate: edge %d: %w", i, err)
		}
		solids = append(solids, s)
	}

	out, err := k.ToMesh(k.Union(solids...))
	if err != nil {
		return nil, fmt.Errorf("tessellate: meshing cage: %w", err)
	}
	out.Name = m.Name
	return out, nil
}
