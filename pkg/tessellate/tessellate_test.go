package tessellate_test

import (
	"errors"
	"testing"

	"github.com/chazu/retopo/pkg/geom"
	"github.com/chazu/retopo/pkg/kernel"
	"github.com/chazu/retopo/pkg/kernel/sdfx"
	"github.com/chazu/retopo/pkg/mesh"
	"github.com/chazu/retopo/pkg/tessellate"
)

// unitSquare is the quad (0,0,0) (1,0,0) (1,1,0) (0,1,0).
func unitSquare() *mesh.Mesh {
	return &mesh.Mesh{
		Name:     "square",
		Vertices: []float32{0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0},
		Edges:    []uint32{0, 1, 1, 2, 2, 3, 0, 3},
		Faces:    [][]uint32{{0, 1, 2, 3}},
	}
}

// --- stub kernel ---

type stubSolid struct{ min, max [3]float64 }

func (s *stubSolid) BoundingBox() (min, max [3]float64) { return s.min, s.max }

// stubKernel records what it was asked to build.
type stubKernel struct {
	spheres, struts, unions int
	failStrut               bool
}

var _ kernel.Kernel = (*stubKernel)(nil)

func (k *stubKernel) Sphere(c geom.Point, r float64) (kernel.Solid, error) {
	k.spheres++
	return &stubSolid{}, nil
}

func (k *stubKernel) Strut(a, b geom.Point, r float64) (kernel.Solid, error) {
	k.struts++
	if k.failStrut {
		return nil, errors.New("boom")
	}
	return &stubSolid{}, nil
}

func (k *stubKernel) Union(solids ...kernel.Solid) kernel.Solid {
	k.unions++
	return &stubSolid{}
}

func (k *stubKernel) ToMesh(kernel.Solid) (*kernel.Mesh, error) {
	return &kernel.Mesh{Vertices: make([]float32, 9), Indices: []uint32{0, 1, 2}}, nil
}

// --- Triangulate ---

func TestTriangulateQuad(t *testing.T) {
	m := unitSquare()
	tri := tessellate.Triangulate(m)
	if tri.TriangleCount() != 2 {
		t.Fatalf("expected 2 triangles, got %d", tri.TriangleCount())
	}
	if tri.VertexCount() != 6 {
		t.Errorf("expected 6 vertices (3 per triangle), got %d", tri.VertexCount())
	}
	if len(tri.Normals) != len(tri.Vertices) {
		t.Fatalf("normals length %d != vertices length %d", len(tri.Normals), len(tri.Vertices))
	}
	if tri.Name != "square" {
		t.Errorf("Name = %q", tri.Name)
	}

	// Fan split from the first corner: (0,1,2) and (0,2,3).
	want := [2][3][3]float32{
		{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}},
		{{0, 0, 0}, {1, 1, 0}, {0, 1, 0}},
	}
	for i, w := range want {
		if got := tri.Triangle(i); got != w {
			t.Errorf("triangle %d = %v, want %v", i, got, w)
		}
	}
	for i := 0; i < tri.VertexCount(); i++ {
		n := tri.Normals[3*i : 3*i+3]
		if n[0] != 0 || n[1] != 0 || n[2] != 1 {
			t.Errorf("normal %d = %v, want [0 0 1]", i, n)
		}
	}
	if len(m.Faces[0]) != 4 {
		t.Error("input mesh was modified")
	}
}

func TestTriangulateMixed(t *testing.T) {
	m := unitSquare()
	m.Faces = append(m.Faces, []uint32{0, 1, 2})
	tri := tessellate.Triangulate(m)
	if tri.TriangleCount() != 3 {
		t.Fatalf("expected 3 triangles, got %d", tri.TriangleCount())
	}
}

func TestTriangulateNoFaces(t *testing.T) {
	m := unitSquare()
	m.Faces = nil
	tri := tessellate.Triangulate(m)
	if !tri.IsEmpty() {
		t.Fatal("expected empty mesh")
	}
	if tri.Vertices == nil || tri.Indices == nil {
		t.Error("empty mesh arrays should be non-nil")
	}
}

// --- Cage ---

func TestCageBuildsEveryPart(t *testing.T) {
	k := &stubKernel{}
	out, err := tessellate.Cage(unitSquare(), k, tessellate.CageOptions{Radius: 0.05})
	if err != nil {
		t.Fatalf("Cage failed: %v", err)
	}
	if k.spheres != 4 || k.struts != 4 || k.unions != 1 {
		t.Errorf("built %d spheres, %d struts, %d unions; want 4, 4, 1", k.spheres, k.struts, k.unions)
	}
	if out.Name != "square" {
		t.Errorf("Name = %q", out.Name)
	}
}

func TestCageErrors(t *testing.T) {
	if _, err := tessellate.Cage(&mesh.Mesh{}, &stubKernel{}, tessellate.CageOptions{Radius: 1}); !errors.Is(err, tessellate.ErrEmptyMesh) {
		t.Errorf("expected ErrEmptyMesh, got %v", err)
	}
	if _, err := tessellate.Cage(unitSquare(), &stubKernel{}, tessellate.CageOptions{}); err == nil {
		t.Error("expected error for zero radius")
	}
	if _, err := tessellate.Cage(unitSquare(), &stubKernel{failStrut: true}, tessellate.CageOptions{Radius: 1}); err == nil {
		t.Error("expected kernel error to propagate")
	}
}

func TestCageWithSdfx(t *testing.T) {
	k := sdfx.NewWithCells(60)
	out, err := tessellate.Cage(unitSquare(), k, tessellate.CageOptions{Radius: 0.05, JointRadius: 0.08})
	if err != nil {
		t.Fatalf("Cage failed: %v", err)
	}
	if out.IsEmpty() || out.TriangleCount() == 0 {
		t.Fatal("cage mesh is empty")
	}

	// Every vertex stays within a joint radius of the square.
	for i := 0; i < out.VertexCount(); i++ {
		x, y, z := out.Vertices[3*i], out.Vertices[3*i+1], out.Vertices[3*i+2]
		if x < -0.1 || x > 1.1 || y < -0.1 || y > 1.1 || z < -0.1 || z > 0.1 {
			t.Fatalf("vertex %d (%v, %v, %v) outside the cage bounds", i, x, y, z)
		}
	}
	t.Logf("cage triangle count: %d", out.TriangleCount())
}
