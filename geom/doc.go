// Package geom provides the geometric value types used by the flow
// compositing core: points, rectangles, rounded rectangles, rounded
// superellipses, 4x4 matrices, paths and integer regions.
//
// All types are plain values. Rectangles use edge coordinates
// (Left, Top, Right, Bottom) rather than origin and extent, which keeps
// intersection and union arithmetic free of repeated additions.
package geom
