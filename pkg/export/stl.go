package export

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/chazu/retopo/pkg/kernel"
	"github.com/chazu/retopo/pkg/mesh"
	"github.com/chazu/retopo/pkg/tessellate"
)

// STL writes binary STL. With a nil Kernel the faces are triangulated;
// otherwise the edges are thickened into a cage with Cage options. An
// empty mesh is written as an STL with no triangles either way.
type STL struct {
	Kernel kernel.Kernel
	Cage   tessellate.CageOptions
}

func (s STL) Write(w io.Writer, m *mesh.Mesh) error {
	var tri *kernel.Mesh
	switch {
	case m.IsEmpty():
		tri = &kernel.Mesh{Name: m.Name}
	case s.Kernel == nil:
		tri = tessellate.Triangulate(m)
	default:
		var err error
		if tri, err = tessellate.Cage(m, s.Kernel, s.Cage); err != nil {
			return fmt.Errorf("export: stl: %w", err)
		}
	}
	return WriteSTL(w, tri)
}

var le = binary.LittleEndian

// stlTriangleSize is the byte size of one STL triangle record: normal,
// three corners and the attribute count.
const stlTriangleSize = 4*3*4 + 2

// WriteSTL writes tri as binary STL. The 80-byte header carries the mesh
// name.
func WriteSTL(w io.Writer, tri *kernel.Mesh) error {
	bw := bufio.NewWriter(w)

	var header [80]byte
	copy(header[:], "retopo "+tri.Name)
	bw.Write(header[:])

	var count [4]byte
	le.PutUint32(count[:], uint32(tri.TriangleCount()))
	bw.Write(count[:])

	buf := make([]byte, stlTriangleSize)
	for i := 0; i < tri.TriangleCount(); i++ {
		t := tri.Triangle(i)
		n := kernel.FaceNormal(t[0], t[1], t[2])
		putVec(buf[0:], n)
		for c := 0; c < 3; c++ {
			putVec(buf[12+12*c:], t[c])
		}
		le.PutUint16(buf[48:], 0)
		if _, err := bw.Write(buf); err != nil {
			return fmt.Errorf("export: stl: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("export: stl: %w", err)
	}
	return nil
}

func putVec(b []byte, v [3]float32) {
	for i, f := range v {
		le.PutUint32(b[4*i:], math.Float32bits(f))
	}
}

// ReadSTL reads a binary STL back into a triangle mesh. Shared corners
// are merged into one vertex; the stored normals are not kept.
func ReadSTL(r io.Reader) (*kernel.Mesh, error) {
	var header struct {
		H    [80]byte
		NTri uint32
	}
	if err := binary.Read(r, le, &header); err != nil {
		return nil, fmt.Errorf("export: stl header: %w", err)
	}

	m := &kernel.Mesh{}
	verts := make(map[[3]float32]uint32)
	buf := make([]byte, stlTriangleSize)
	for i := 0; i < int(header.NTri); i++ {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, fmt.Errorf("export: stl triangle %d: %w", i, err)
		}
		for c := 0; c < 3; c++ {
			var v [3]float32
			for k := range v {
				v[k] = math.Float32frombits(le.Uint32(buf[12+12*c+4*k:]))
			}
			idx, ok := verts[v]
			if !ok {
				idx = uint32(len(verts))
				verts[v] = idx
				m.Vertices = append(m.Vertices, v[:]...)
			}
			m.Indices = append(m.Indices, idx)
		}
	}
	return m, nil
}
