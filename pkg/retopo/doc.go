// Package retopo reconstructs polygon topology from a network of hand-drawn
// 3D strokes.
//
// Strokes become splines, near-collinear stroke breaks are joined, every
// pair of splines is scanned for crossings, crossings are fused into shared
// junctions, consecutive junctions along each spline are linked, and
// triangle and quad faces are inferred from the resulting graph.
//
// The result is a best-effort topology. It is not guaranteed to be
// manifold, watertight or free of overlapping faces.
package retopo
