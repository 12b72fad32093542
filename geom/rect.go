package geom

import (
	"image"
	"math"
)

// Rect represents an axis-aligned rectangle with float64 edges.
// A rectangle whose Right <= Left or Bottom <= Top is empty.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// MakeLTRB creates a Rect from its four edges.
func MakeLTRB(left, top, right, bottom float64) Rect {
	return Rect{Left: left, Top: top, Right: right, Bottom: bottom}
}

// MakeXYWH creates a Rect from an origin and an extent.
func MakeXYWH(x, y, w, h float64) Rect {
	return Rect{Left: x, Top: y, Right: x + w, Bottom: y + h}
}

// MakeSize creates a Rect at the origin with the given size.
func MakeSize(s Size) Rect {
	return Rect{Right: s.Width, Bottom: s.Height}
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 {
	return r.Right - r.Left
}

// Height returns the vertical extent.
func (r Rect) Height() float64 {
	return r.Bottom - r.Top
}

// IsEmpty returns true if the rectangle has no area.
// NaN edges also produce an empty rectangle.
func (r Rect) IsEmpty() bool {
	return !(r.Right > r.Left && r.Bottom > r.Top)
}

// IsFinite reports whether all four edges are finite.
func (r Rect) IsFinite() bool {
	for _, v := range [4]float64{r.Left, r.Top, r.Right, r.Bottom} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Contains returns true if the point lies inside the rectangle.
// The left and top edges are inclusive, the right and bottom exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X < r.Right && p.Y >= r.Top && p.Y < r.Bottom
}

// Intersects returns true if the two rectangles share any area.
func (r Rect) Intersects(other Rect) bool {
	return !r.Intersect(other).IsEmpty()
}

// Intersect returns the intersection of two rectangles.
// Returns the zero Rect if they don't intersect.
func (r Rect) Intersect(other Rect) Rect {
	out := Rect{
		Left:   math.Max(r.Left, other.Left),
		Top:    math.Max(r.Top, other.Top),
		Right:  math.Min(r.Right, other.Right),
		Bottom: math.Min(r.Bottom, other.Bottom),
	}
	if out.IsEmpty() {
		return Rect{}
	}
	return out
}

// Union returns the smallest rectangle containing both rectangles.
// Empty rectangles do not contribute.
func (r Rect) Union(other Rect) Rect {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}
	return Rect{
		Left:   math.Min(r.Left, other.Left),
		Top:    math.Min(r.Top, other.Top),
		Right:  math.Max(r.Right, other.Right),
		Bottom: math.Max(r.Bottom, other.Bottom),
	}
}

// Outset grows the rectangle by dx horizontally and dy vertically on each side.
func (r Rect) Outset(dx, dy float64) Rect {
	return Rect{Left: r.Left - dx, Top: r.Top - dy, Right: r.Right + dx, Bottom: r.Bottom + dy}
}

// Offset translates the rectangle.
func (r Rect) Offset(dx, dy float64) Rect {
	return Rect{Left: r.Left + dx, Top: r.Top + dy, Right: r.Right + dx, Bottom: r.Bottom + dy}
}

// Corners returns the four corners in clockwise order starting at top-left.
func (r Rect) Corners() [4]Point {
	return [4]Point{
		{X: r.Left, Y: r.Top},
		{X: r.Right, Y: r.Top},
		{X: r.Right, Y: r.Bottom},
		{X: r.Left, Y: r.Bottom},
	}
}

// RoundOut returns the smallest integer rectangle enclosing r.
func (r Rect) RoundOut() IRect {
	if r.IsEmpty() {
		return IRect{}
	}
	return IRect{
		Left:   saturate(math.Floor(r.Left)),
		Top:    saturate(math.Floor(r.Top)),
		Right:  saturate(math.Ceil(r.Right)),
		Bottom: saturate(math.Ceil(r.Bottom)),
	}
}

// Equal reports whether the rectangles have identical edges.
func (r Rect) Equal(other Rect) bool {
	return r == other
}

// TransformAndClipBounds returns the bounds of r after transformation by m.
//
// Corners are mapped homogeneously. When m has perspective, the quad is
// clipped against the w = epsilon plane before projection so geometry
// behind the viewer does not flip or blow up. A NaN result yields an empty
// rectangle and infinite extents are clamped to the float32 range.
func (r Rect) TransformAndClipBounds(m Matrix) Rect {
	if r.IsEmpty() {
		return Rect{}
	}
	corners := r.Corners()

	var pts []Point
	if !m.HasPerspective() {
		pts = make([]Point, 0, 4)
		for _, c := range corners {
			x, y, _ := m.transformHomogeneous(c.X, c.Y)
			pts = append(pts, Point{X: x, Y: y})
		}
	} else {
		pts = clipQuadToPositiveW(m, corners)
	}
	if len(pts) == 0 {
		return Rect{}
	}

	out := Rect{
		Left:   math.Inf(1),
		Top:    math.Inf(1),
		Right:  math.Inf(-1),
		Bottom: math.Inf(-1),
	}
	for _, p := range pts {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) {
			return Rect{}
		}
		out.Left = math.Min(out.Left, p.X)
		out.Top = math.Min(out.Top, p.Y)
		out.Right = math.Max(out.Right, p.X)
		out.Bottom = math.Max(out.Bottom, p.Y)
	}
	return out.clampToFloat32()
}

// minW is the homogeneous w below which points are considered behind the viewer.
const minW = 1.0 / (1 << 14)

type hpoint struct{ x, y, w float64 }

// clipQuadToPositiveW clips the transformed quad against w >= minW and
// returns the projected surviving vertices.
func clipQuadToPositiveW(m Matrix, corners [4]Point) []Point {
	var in [4]hpoint
	for i, c := range corners {
		x, y, w := m.transformHomogeneous(c.X, c.Y)
		in[i] = hpoint{x, y, w}
	}

	out := make([]Point, 0, 8)
	for i := range in {
		cur := in[i]
		next := in[(i+1)%len(in)]
		if cur.w >= minW {
			out = append(out, Point{X: cur.x / cur.w, Y: cur.y / cur.w})
		}
		if (cur.w >= minW) != (next.w >= minW) {
			t := (minW - cur.w) / (next.w - cur.w)
			x := cur.x + (next.x-cur.x)*t
			y := cur.y + (next.y-cur.y)*t
			out = append(out, Point{X: x / minW, Y: y / minW})
		}
	}
	return out
}

func (r Rect) clampToFloat32() Rect {
	clamp := func(v float64) float64 {
		return math.Max(-math.MaxFloat32, math.Min(math.MaxFloat32, v))
	}
	return Rect{Left: clamp(r.Left), Top: clamp(r.Top), Right: clamp(r.Right), Bottom: clamp(r.Bottom)}
}

func saturate(v float64) int {
	switch {
	case v >= math.MaxInt32:
		return math.MaxInt32
	case v <= math.MinInt32:
		return math.MinInt32
	default:
		return int(v)
	}
}

// IRect represents an axis-aligned rectangle with integer edges.
type IRect struct {
	Left, Top, Right, Bottom int
}

// MakeILTRB creates an IRect from its four edges.
func MakeILTRB(left, top, right, bottom int) IRect {
	return IRect{Left: left, Top: top, Right: right, Bottom: bottom}
}

// MakeIXYWH creates an IRect from an origin and an extent.
func MakeIXYWH(x, y, w, h int) IRect {
	return IRect{Left: x, Top: y, Right: x + w, Bottom: y + h}
}

// IRectFromImage converts an image.Rectangle.
func IRectFromImage(r image.Rectangle) IRect {
	return IRect{Left: r.Min.X, Top: r.Min.Y, Right: r.Max.X, Bottom: r.Max.Y}
}

// Image converts to an image.Rectangle.
func (r IRect) Image() image.Rectangle {
	return image.Rect(r.Left, r.Top, r.Right, r.Bottom)
}

// Width returns the horizontal extent.
func (r IRect) Width() int { return r.Right - r.Left }

// Height returns the vertical extent.
func (r IRect) Height() int { return r.Bottom - r.Top }

// IsEmpty returns true if the rectangle has no area.
func (r IRect) IsEmpty() bool {
	return r.Right <= r.Left || r.Bottom <= r.Top
}

// Intersect returns the intersection, or the zero IRect.
func (r IRect) Intersect(other IRect) IRect {
	out := IRect{
		Left:   max(r.Left, other.Left),
		Top:    max(r.Top, other.Top),
		Right:  min(r.Right, other.Right),
		Bottom: min(r.Bottom, other.Bottom),
	}
	if out.IsEmpty() {
		return IRect{}
	}
	return out
}

// Intersects returns true if the two rectangles share any area.
func (r IRect) Intersects(other IRect) bool {
	return !r.Intersect(other).IsEmpty()
}

// Union returns the smallest rectangle containing both.
func (r IRect) Union(other IRect) IRect {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}
	return IRect{
		Left:   min(r.Left, other.Left),
		Top:    min(r.Top, other.Top),
		Right:  max(r.Right, other.Right),
		Bottom: max(r.Bottom, other.Bottom),
	}
}

// ContainsRect returns true if other lies entirely within r.
func (r IRect) ContainsRect(other IRect) bool {
	if other.IsEmpty() {
		return true
	}
	return other.Left >= r.Left && other.Top >= r.Top &&
		other.Right <= r.Right && other.Bottom <= r.Bottom
}

// Rect converts to a float rectangle.
func (r IRect) Rect() Rect {
	return Rect{
		Left:   float64(r.Left),
		Top:    float64(r.Top),
		Right:  float64(r.Right),
		Bottom: float64(r.Bottom),
	}
}

// Size represents a width and height in logical units.
type Size struct {
	Width, Height float64
}

// IsEmpty returns true if either dimension is not positive.
func (s Size) IsEmpty() bool {
	return !(s.Width > 0 && s.Height > 0)
}

// ISize represents a width and height in pixels.
type ISize struct {
	Width, Height int
}

// IsEmpty returns true if either dimension is not positive.
func (s ISize) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Rect returns the float rectangle at the origin with this size.
func (s ISize) Rect() Rect {
	return Rect{Right: float64(s.Width), Bottom: float64(s.Height)}
}
