package kernel

import "testing"

// --- Mesh helper method tests ---

func TestMeshCounts(t *testing.T) {
	tests := []struct {
		name      string
		vertices  []float32
		indices   []uint32
		wantVerts int
		wantTris  int
	}{
		{"empty", nil, nil, 0, 0},
		{"one vertex", []float32{1, 2, 3}, nil, 1, 0},
		{"one triangle", make([]float32, 9), []uint32{0, 1, 2}, 3, 1},
		{"quad as two triangles", make([]float32, 12), []uint32{0, 1, 2, 2, 3, 0}, 4, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Mesh{Vertices: tt.vertices, Indices: tt.indices}
			if got := m.VertexCount(); got != tt.wantVerts {
				t.Errorf("VertexCount() = %d, want %d", got, tt.wantVerts)
			}
			if got := m.TriangleCount(); got != tt.wantTris {
				t.Errorf("TriangleCount() = %d, want %d", got, tt.wantTris)
			}
			if got := m.IsEmpty(); got != (tt.wantVerts == 0) {
				t.Errorf("IsEmpty() = %v", got)
			}
		})
	}
}

func TestMeshTriangle(t *testing.T) {
	m := &Mesh{
		Vertices: []float32{0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0},
		Indices:  []uint32{0, 1, 2, 0, 2, 3},
	}
	got := m.Triangle(1)
	want := [3][3]float32{{0, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	if got != want {
		t.Errorf("Triangle(1) = %v, want %v", got, want)
	}
}

func TestFaceNormal(t *testing.T) {
	tests := []struct {
		name    string
		a, b, c [3]float32
		want    [3]float32
	}{
		{"counter-clockwise in xy", [3]float32{0, 0, 0}, [3]float32{1, 0, 0}, [3]float32{0, 1, 0}, [3]float32{0, 0, 1}},
		{"clockwise in xy", [3]float32{0, 0, 0}, [3]float32{0, 1, 0}, [3]float32{1, 0, 0}, [3]float32{0, 0, -1}},
		{"scaled", [3]float32{0, 0, 0}, [3]float32{0, 5, 0}, [3]float32{0, 0, 5}, [3]float32{1, 0, 0}},
		{"degenerate", [3]float32{0, 0, 0}, [3]float32{1, 1, 1}, [3]float32{2, 2, 2}, [3]float32{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FaceNormal(tt.a, tt.b, tt.c); got != tt.want {
				t.Errorf("FaceNormal() = %v, want %v", got, tt.want)
			}
		})
	}
}
