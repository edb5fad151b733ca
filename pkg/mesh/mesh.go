// Package mesh holds the polygon mesh handed to the host once the
// topology has been reconstructed, and the Sink interface hosts implement
// to receive it.
package mesh

import (
	"fmt"
	"io"

	"github.com/chazu/retopo/pkg/retopo"
)

// DefaultName is used when a mesh is built without a name.
const DefaultName = "Retopology"

// Mesh is a polygon mesh with flat arrays: Vertices has 3 floats per
// vertex and Edges 2 indices per edge. Each face lists 3 or 4 vertex
// indices.
type Mesh struct {
	Name     string     `json:"name"`
	Vertices []float32  `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Edges    []uint32   `json:"edges"`    // [a0,b0, a1,b1, ...]
	Faces    [][]uint32 `json:"faces"`
}

// Sink receives a finished mesh. Implementations write it in a host file
// format.
type Sink interface {
	Write(w io.Writer, m *Mesh) error
}

// FromResult converts a reconstruction result into a host mesh named name.
// An empty name becomes DefaultName.
func FromResult(res *retopo.Result, name string) *Mesh {
	if name == "" {
		name = DefaultName
	}
	m := &Mesh{
		Name:     name,
		Vertices: make([]float32, 0, 3*len(res.Vertices)),
		Edges:    make([]uint32, 0, 2*len(res.Edges)),
		Faces:    make([][]uint32, 0, len(res.Faces)),
	}
	for _, v := range res.Vertices {
		m.Vertices = append(m.Vertices, float32(v.X), float32(v.Y), float32(v.Z))
	}
	for _, e := range res.Edges {
		m.Edges = append(m.Edges, uint32(e[0]), uint32(e[1]))
	}
	for _, f := range res.Faces {
		face := make([]uint32, len(f))
		for i, idx := range f {
			face[i] = uint32(idx)
		}
		m.Faces = append(m.Faces, face)
	}
	return m
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// EdgeCount returns the number of edges.
func (m *Mesh) EdgeCount() int {
	return len(m.Edges) / 2
}

// FaceCount returns the number of faces.
func (m *Mesh) FaceCount() int {
	return len(m.Faces)
}

// IsEmpty returns true if the mesh has no vertices.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// Vertex returns vertex i as float64 coordinates.
func (m *Mesh) Vertex(i uint32) [3]float64 {
	v := m.Vertices[3*i : 3*i+3]
	return [3]float64{float64(v[0]), float64(v[1]), float64(v[2])}
}

// Edge returns the endpoints of edge i.
func (m *Mesh) Edge(i int) (a, b uint32) {
	return m.Edges[2*i], m.Edges[2*i+1]
}

// Check reports the first structural problem in m: a ragged vertex or edge
// array, or an index out of range.
func (m *Mesh) Check() error {
	if len(m.Vertices)%3 != 0 {
		return fmt.Errorf("mesh: %d vertex floats is not a multiple of 3", len(m.Vertices))
	}
	if len(m.Edges)%2 != 0 {
		return fmt.Errorf("mesh: %d edge indices is not a multiple of 2", len(m.Edges))
	}
	n := uint32(m.VertexCount())
	for i, idx := range m.Edges {
		if idx >= n {
			return fmt.Errorf("mesh: edge %d references vertex %d of %d", i/2, idx, n)
		}
	}
	for i, f := range m.Faces {
		if len(f) < 3 {
			return fmt.Errorf("mesh: face %d has %d corners", i, len(f))
		}
		for _, idx := range f {
			if idx >= n {
				return fmt.Errorf("mesh: face %d references vertex %d of %d", i, idx, n)
			}
		}
	}
	return nil
}
