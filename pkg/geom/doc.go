// Package geom holds the small amount of 3D geometry the retopology
// pipeline needs: points, axis-aligned bounds and closest-approach math
// between line segments. Vectors and boxes are the sdfx types so that
// results can be handed to an sdfx-based kernel without conversion.
package geom
