package export

import (
	"bufio"
	"fmt"
	"io"

	"github.com/chazu/retopo/pkg/mesh"
)

// OBJ writes Wavefront OBJ: one v line per vertex, one f line per face
// and an l line for every edge that borders no face.
type OBJ struct{}

func (OBJ) Write(w io.Writer, m *mesh.Mesh) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# %d vertices, %d edges, %d faces\n", m.VertexCount(), m.EdgeCount(), m.FaceCount())
	fmt.Fprintf(bw, "o %s\n", m.Name)

	for i := 0; i < m.VertexCount(); i++ {
		v := m.Vertices[3*i : 3*i+3]
		fmt.Fprintf(bw, "v %g %g %g\n", v[0], v[1], v[2])
	}

	onFace := make(map[[2]uint32]bool)
	for _, f := range m.Faces {
		bw.WriteString("f")
		for i, idx := range f {
			fmt.Fprintf(bw, " %d", idx+1)
			onFace[edgeKey(idx, f[(i+1)%len(f)])] = true
		}
		bw.WriteString("\n")
	}

	for i := 0; i < m.EdgeCount(); i++ {
		a, b := m.Edge(i)
		if !onFace[edgeKey(a, b)] {
			fmt.Fprintf(bw, "l %d %d\n", a+1, b+1)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("export: obj: %w", err)
	}
	return nil
}

func edgeKey(a, b uint32) [2]uint32 {
	if a > b {
		a, b = b, a
	}
	return [2]uint32{a, b}
}
