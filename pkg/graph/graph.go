package graph

import (
	"cmp"
	"slices"

	"github.com/chazu/retopo/pkg/geom"
)

// Graph owns the junctions of one reconstruction run and the undirected
// links between them.
type Graph struct {
	junctions []*Junction
	edges     int
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{}
}

// Add creates a junction at p. Its Index is its creation order.
func (g *Graph) Add(p geom.Point) *Junction {
	j := &Junction{
		Position: p,
		Key:      geom.Quantize(p, KeyPlaces),
		Index:    len(g.junctions),
	}
	g.junctions = append(g.junctions, j)
	return j
}

// Junctions returns all junctions in index order. The slice must not be
// modified.
func (g *Graph) Junctions() []*Junction {
	return g.junctions
}

// Get returns the junction with index i, or nil.
func (g *Graph) Get(i int) *Junction {
	if i < 0 || i >= len(g.junctions) {
		return nil
	}
	return g.junctions[i]
}

// Len returns the number of junctions.
func (g *Graph) Len() int {
	return len(g.junctions)
}

// EdgeCount returns the number of distinct links.
func (g *Graph) EdgeCount() int {
	return g.edges
}

// Link connects a and b in both directions. Linking a junction to itself
// or linking an already linked pair does nothing.
func (g *Graph) Link(a, b *Junction) {
	if a == b || a.LinkedTo(b) {
		return
	}
	a.links = append(a.links, b)
	b.links = append(b.links, a)
	g.edges++
}

// Unlink makes sure a and b are not linked. It is a no-op when they are not.
func (g *Graph) Unlink(a, b *Junction) {
	if !a.LinkedTo(b) {
		return
	}
	a.links = remove(a.links, b)
	b.links = remove(b.links, a)
	g.edges--
}

// Linked reports whether a and b are linked.
func (g *Graph) Linked(a, b *Junction) bool {
	return a.LinkedTo(b)
}

// Compact drops orphan junctions and renumbers the rest densely in their
// previous order. It returns the number of junctions dropped.
func (g *Graph) Compact() int {
	kept := g.junctions[:0]
	for _, j := range g.junctions {
		if !j.IsOrphan() {
			kept = append(kept, j)
		}
	}
	dropped := len(g.junctions) - len(kept)
	for i := len(kept); i < len(g.junctions); i++ {
		g.junctions[i] = nil
	}
	g.junctions = kept
	for i, j := range g.junctions {
		j.Index = i
	}
	return dropped
}

// Edges returns every link once as an (low, high) index pair, sorted.
func (g *Graph) Edges() [][2]int {
	seen := make(map[[2]int]struct{}, g.edges)
	edges := make([][2]int, 0, g.edges)
	for _, j := range g.junctions {
		for _, n := range j.links {
			e := orderedPair(j.Index, n.Index)
			if _, ok := seen[e]; ok {
				continue
			}
			seen[e] = struct{}{}
			edges = append(edges, e)
		}
	}
	slices.SortFunc(edges, func(a, b [2]int) int {
		return cmp.Or(cmp.Compare(a[0], b[0]), cmp.Compare(a[1], b[1]))
	})
	return edges
}

// Positions returns the junction positions in index order.
func (g *Graph) Positions() []geom.Point {
	ps := make([]geom.Point, len(g.junctions))
	for i, j := range g.junctions {
		ps[i] = j.Position
	}
	return ps
}

func orderedPair(a, b int) [2]int {
	if a > b {
		return [2]int{b, a}
	}
	return [2]int{a, b}
}
