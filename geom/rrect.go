package geom

import "math"

// Radii holds the elliptical corner radii of a rounded shape.
type Radii struct {
	TopLeft, TopRight, BottomRight, BottomLeft Size
}

// UniformRadii returns radii with the same rx, ry at every corner.
func UniformRadii(rx, ry float64) Radii {
	s := Size{Width: rx, Height: ry}
	return Radii{TopLeft: s, TopRight: s, BottomRight: s, BottomLeft: s}
}

// AreAllCornersEmpty returns true if no corner is rounded.
func (r Radii) AreAllCornersEmpty() bool {
	return r.TopLeft.IsEmpty() && r.TopRight.IsEmpty() &&
		r.BottomRight.IsEmpty() && r.BottomLeft.IsEmpty()
}

// scaled returns radii shrunk so that adjacent corners never overlap
// within a w x h box.
func (r Radii) scaled(w, h float64) Radii {
	scale := 1.0
	limit := func(sum, extent float64) {
		if sum > extent && sum > 0 {
			scale = math.Min(scale, extent/sum)
		}
	}
	limit(r.TopLeft.Width+r.TopRight.Width, w)
	limit(r.BottomLeft.Width+r.BottomRight.Width, w)
	limit(r.TopLeft.Height+r.BottomLeft.Height, h)
	limit(r.TopRight.Height+r.BottomRight.Height, h)
	if scale == 1 {
		return r
	}
	mul := func(s Size) Size { return Size{Width: s.Width * scale, Height: s.Height * scale} }
	return Radii{
		TopLeft:     mul(r.TopLeft),
		TopRight:    mul(r.TopRight),
		BottomRight: mul(r.BottomRight),
		BottomLeft:  mul(r.BottomLeft),
	}
}

// RRect is a rectangle with elliptical corners.
type RRect struct {
	Rect  Rect
	Radii Radii
}

// MakeRRectXY creates a rounded rectangle with uniform corner radii.
// Radii are scaled down if they would overlap.
func MakeRRectXY(rect Rect, rx, ry float64) RRect {
	return MakeRRectRadii(rect, UniformRadii(rx, ry))
}

// MakeRRectRadii creates a rounded rectangle with per-corner radii.
func MakeRRectRadii(rect Rect, radii Radii) RRect {
	return RRect{Rect: rect, Radii: radii.scaled(rect.Width(), rect.Height())}
}

// Bounds returns the bounding rectangle.
func (r RRect) Bounds() Rect {
	return r.Rect
}

// IsRect returns true if the shape has no rounded corners.
func (r RRect) IsRect() bool {
	return r.Radii.AreAllCornersEmpty()
}

// IsEmpty returns true if the bounding rectangle is empty.
func (r RRect) IsEmpty() bool {
	return r.Rect.IsEmpty()
}

// Equal reports whether both shapes have identical bounds and radii.
func (r RRect) Equal(other RRect) bool {
	return r == other
}

// RSuperellipse is a rectangle whose corners follow a superellipse curve
// rather than an elliptical arc, giving a smoother shoulder.
type RSuperellipse struct {
	Bounds Rect
	Radii  Radii
}

// MakeRSuperellipseXY creates a rounded superellipse with uniform radii.
func MakeRSuperellipseXY(bounds Rect, rx, ry float64) RSuperellipse {
	return RSuperellipse{Bounds: bounds, Radii: UniformRadii(rx, ry).scaled(bounds.Width(), bounds.Height())}
}

// ToApproximateRoundRect returns a rounded rectangle with the same bounds
// and radii. The superellipse corner lies inside the elliptical corner of
// equal radii, so the result contains the superellipse.
func (r RSuperellipse) ToApproximateRoundRect() RRect {
	return RRect{Rect: r.Bounds, Radii: r.Radii}
}

// IsEmpty returns true if the bounding rectangle is empty.
func (r RSuperellipse) IsEmpty() bool {
	return r.Bounds.IsEmpty()
}

// Equal reports whether both shapes have identical bounds and radii.
func (r RSuperellipse) Equal(other RSuperellipse) bool {
	return r == other
}
