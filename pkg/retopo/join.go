package retopo

import (
	"math"
	"slices"

	"github.com/chazu/retopo/pkg/geom"
)

type end int

const (
	atStart end = iota
	atEnd
)

// pairings lists the endpoint combinations in the order they are tried.
var pairings = [4][2]end{
	{atStart, atStart},
	{atStart, atEnd},
	{atEnd, atEnd},
	{atEnd, atStart},
}

// point returns the k-th point counted inward from the given end.
func (s *Spline) point(e end, k int) geom.Point {
	if e == atStart {
		return s.Points[k]
	}
	return s.Points[len(s.Points)-1-k]
}

type keyPair [2]geom.Key

func makeKeyPair(a, b geom.Key) keyPair {
	if slices.Compare(a[:], b[:]) > 0 {
		return keyPair{b, a}
	}
	return keyPair{a, b}
}

// joiner merges splines whose end points continue each other.
type joiner struct {
	precision  float64
	angleLimit float64 // radians
	places     int
	tested     map[keyPair]struct{}
}

// JoinSplines repeatedly merges pairs of splines that form one continuous
// line broken into separate strokes, and returns the surviving splines and
// the number of joins made. Splines are merged in place; consumed splines
// are removed from the returned slice.
//
// Two ends join when the direction at each end bends by less than the join
// angle, and the tips, after skipping any overlap of the second spline past
// the first, are within min(length)/precision of each other.
func JoinSplines(splines []*Spline, opts Options) ([]*Spline, int) {
	jn := &joiner{
		precision:  opts.Precision,
		angleLimit: opts.JoinAngle * math.Pi / 180,
		places:     opts.HashPlaces,
		tested:     make(map[keyPair]struct{}),
	}
	joins := 0
	for {
		var joined bool
		splines, joined = jn.pass(splines)
		if !joined {
			return splines, joins
		}
		joins++
	}
}

// pass scans all pairs and performs at most one join.
func (jn *joiner) pass(splines []*Spline) ([]*Spline, bool) {
	for _, s1 := range splines {
		k1 := [2]geom.Key{geom.Quantize(s1.Start(), jn.places), geom.Quantize(s1.End(), jn.places)}
		for j, s2 := range splines {
			if s1 == s2 {
				continue
			}
			k2 := [2]geom.Key{geom.Quantize(s2.Start(), jn.places), geom.Quantize(s2.End(), jn.places)}
			minLength := math.Min(s1.Length, s2.Length)

			for _, pr := range pairings {
				kp := makeKeyPair(k1[pr[0]], k2[pr[1]])
				if _, seen := jn.tested[kp]; seen {
					continue
				}
				jn.tested[kp] = struct{}{}

				trimmed, ok := jn.test(s1, s2, pr[0], pr[1], minLength)
				if !ok {
					continue
				}
				jn.merge(s1, s2, pr[0], pr[1], trimmed)
				Logger().Debug("joined splines",
					"points", len(s1.Points), "trimmed", trimmed, "length", s1.Length)
				return slices.Delete(splines, j, j+1), true
			}
		}
	}
	return splines, false
}

// bendOK reports whether u and v point within the angle limit of each
// other. Zero-length directions never pass.
func (jn *joiner) bendOK(u, v geom.Point) bool {
	a, ok := geom.Angle(u, v)
	return ok && a < jn.angleLimit
}

// test decides whether end e2 of s2 continues end e1 of s1. On success it
// returns how many of s2's leading points overlap s1 and must be dropped.
func (jn *joiner) test(s1, s2 *Spline, e1, e2 end, minLength float64) (int, bool) {
	p1a, p1b := s1.point(e1, 0), s1.point(e1, 1)
	p2a, p2b := s2.point(e2, 0), s2.point(e2, 1)

	lead := p2b.Sub(p2a)
	if !jn.bendOK(p1a.Sub(p1b), lead) {
		return 0, false
	}

	// Walk s2 inward while its next point is closer to s1's tip than its
	// current tip; that stretch overlaps s1.
	trimmed := 0
	for k := 2; k < len(s2.Points) && geom.Distance(p2b, p1a) < geom.Distance(p2a, p1a); k++ {
		p2a, p2b = p2b, s2.point(e2, k)
		trimmed++
	}

	// Trimming must not have walked around a corner.
	if !jn.bendOK(lead, p2b.Sub(p2a)) {
		return 0, false
	}

	if geom.Distance(p1a, p2a) > minLength/jn.precision {
		return 0, false
	}
	return trimmed, true
}

// merge appends s2 onto s1 at the matched ends, dropping s2's trimmed
// overlap, and refreshes s1's caches.
func (jn *joiner) merge(s1, s2 *Spline, e1, e2 end, trimmed int) {
	var tail []geom.Point
	if e2 == atStart {
		tail = append(tail, s2.Points[trimmed:]...)
	} else {
		tail = append(tail, s2.Points[:len(s2.Points)-trimmed]...)
	}

	// Orient tail so that its first point is the matched tip when it goes
	// after s1, and its last point is the tip when it goes before.
	switch {
	case e1 == atStart && e2 == atStart:
		slices.Reverse(tail)
		s1.Points = append(tail, s1.Points...)
	case e1 == atStart && e2 == atEnd:
		s1.Points = append(tail, s1.Points...)
	case e1 == atEnd && e2 == atEnd:
		slices.Reverse(tail)
		s1.Points = append(s1.Points, tail...)
	default:
		s1.Points = append(s1.Points, tail...)
	}
	s1.recalc(jn.precision)
}
