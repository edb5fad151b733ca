package retopo

import (
	"cmp"
	"slices"

	"github.com/chazu/retopo/pkg/graph"
)

// BuildFaces infers triangles and quads from the junction graph and
// returns each face once, in the order first found. Faces are index
// tuples into g's junctions.
func BuildFaces(g *graph.Graph) [][]int {
	fs := newFaceSet()
	for _, h := range g.Junctions() {
		for _, f := range junctionFaces(g, h) {
			fs.add(f)
		}
	}
	return fs.faces
}

// junctionFaces proposes the faces around h. Every triangle is proposed
// from each of its corners, so the output holds duplicates.
func junctionFaces(g *graph.Graph, h *graph.Junction) [][]int {
	var faces [][]int
	ns := h.Neighbors()

	for _, a := range ns {
		for _, b := range a.Neighbors() {
			if b != h && g.Linked(h, b) {
				faces = append(faces, []int{h.Index, a.Index, b.Index})
			}
		}
	}

	// Quads: two neighbors of h that share exactly two neighbors of their
	// own (h and the opposite corner) close a 4-cycle.
	for i, a := range ns {
		for _, b := range ns[:i] {
			shared := sharedNeighbors(a, b)
			if len(shared) != 2 {
				continue
			}
			face := []int{shared[0].Index, a.Index, shared[1].Index, b.Index}
			if validQuad(g, face) {
				faces = append(faces, face)
			}
		}
	}
	return faces
}

// sharedNeighbors returns the junctions linked to both a and b, sorted by
// index.
func sharedNeighbors(a, b *graph.Junction) []*graph.Junction {
	var shared []*graph.Junction
	for _, n := range a.Neighbors() {
		if b.LinkedTo(n) {
			shared = append(shared, n)
		}
	}
	slices.SortFunc(shared, func(a, b *graph.Junction) int { return cmp.Compare(a.Index, b.Index) })
	return shared
}

// validQuad rejects a quad with repeated corners or with either diagonal
// present as an edge; a diagonal edge means the cycle is two triangles.
func validQuad(g *graph.Graph, face []int) bool {
	js := make([]*graph.Junction, len(face))
	for i, idx := range face {
		js[i] = g.Get(idx)
		for _, prev := range face[:i] {
			if prev == idx {
				return false
			}
		}
	}
	return !g.Linked(js[0], js[2]) && !g.Linked(js[1], js[3])
}

// faceSet deduplicates faces by their sorted vertex indices.
type faceSet struct {
	seen  map[[4]int]struct{}
	faces [][]int
}

func newFaceSet() *faceSet {
	return &faceSet{seen: make(map[[4]int]struct{}), faces: [][]int{}}
}

func (fs *faceSet) add(f []int) bool {
	k := faceKey(f)
	if _, ok := fs.seen[k]; ok {
		return false
	}
	fs.seen[k] = struct{}{}
	fs.faces = append(fs.faces, f)
	return true
}

// faceKey is the sorted index tuple, padded with -1 for triangles.
func faceKey(f []int) [4]int {
	k := [4]int{-1, -1, -1, -1}
	sorted := slices.Clone(f)
	slices.Sort(sorted)
	copy(k[4-len(sorted):], sorted)
	return k
}
