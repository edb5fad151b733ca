package graph

import (
	"fmt"

	"github.com/chazu/retopo/pkg/geom"
)

// KeyPlaces is the number of decimal places used for a junction's Key.
const KeyPlaces = 3

// Junction is a point where two or more splines were judged to cross.
// Links are only changed through Graph so that they stay mutual.
type Junction struct {
	Position geom.Point `json:"position"`
	Key      geom.Key   `json:"key"`   // coarse bucket hint, not an identity
	Index    int        `json:"index"` // dense after Graph.Compact
	links    []*Junction
}

// Neighbors returns the junctions linked to j in the order the links were
// made. The slice must not be modified.
func (j *Junction) Neighbors() []*Junction {
	return j.links
}

// Degree returns the number of junctions linked to j.
func (j *Junction) Degree() int {
	return len(j.links)
}

// IsOrphan reports whether j has no links.
func (j *Junction) IsOrphan() bool {
	return len(j.links) == 0
}

// LinkedTo reports whether other is a neighbor of j.
func (j *Junction) LinkedTo(other *Junction) bool {
	return indexOf(j.links, other) >= 0
}

// Dist returns the distance between the two junction positions.
func (j *Junction) Dist(other *Junction) float64 {
	return geom.Distance(j.Position, other.Position)
}

func (j *Junction) String() string {
	return fmt.Sprintf("junction %d (%.3f, %.3f, %.3f)", j.Index, j.Position.X, j.Position.Y, j.Position.Z)
}

func indexOf(ls []*Junction, j *Junction) int {
	for i, l := range ls {
		if l == j {
			return i
		}
	}
	return -1
}

func remove(ls []*Junction, j *Junction) []*Junction {
	i := indexOf(ls, j)
	if i < 0 {
		return ls
	}
	return append(ls[:i], ls[i+1:]...)
}
