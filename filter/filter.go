// Package filter provides image filter descriptions used as payloads by
// backdrop-filter mutations and save layers.
//
// Filters here are descriptions only: they know how far they spread their
// input (MapBounds) and how to compare themselves structurally, but they do
// not touch pixels. Rasterization belongs to whichever backend consumes them.
package filter

import (
	"math"

	"github.com/gogpu/flow/geom"
)

// ImageFilter describes an image filter.
//
// Implementations must be immutable and comparable by value through Equal,
// so that two independently built mutators holding equivalent filters
// compare equal.
type ImageFilter interface {
	// Type identifies the filter kind.
	Type() Type

	// Equal reports whether other describes the same filter.
	Equal(other ImageFilter) bool

	// MapBounds returns the bounds of the output produced from input bounds.
	// Blur and dilate expand, erode shrinks, color matrices are unchanged.
	MapBounds(input geom.Rect) geom.Rect
}

// Type identifies the type of filter for serialization and debugging.
type Type uint8

// Filter type constants.
const (
	TypeBlur Type = iota
	TypeDilate
	TypeErode
	TypeColorMatrix
	TypeCompose
)

// String returns a human-readable name for the filter type.
func (t Type) String() string {
	switch t {
	case TypeBlur:
		return "Blur"
	case TypeDilate:
		return "Dilate"
	case TypeErode:
		return "Erode"
	case TypeColorMatrix:
		return "ColorMatrix"
	case TypeCompose:
		return "Compose"
	default:
		return "Unknown"
	}
}

// Equal compares two possibly-nil filters.
func Equal(a, b ImageFilter) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b)
}

// TileMode controls how a blur samples beyond the edge of its input.
type TileMode uint8

// Tile modes.
const (
	TileClamp TileMode = iota
	TileRepeat
	TileMirror
	TileDecal
)

// Blur is a Gaussian blur with independent horizontal and vertical sigma.
type Blur struct {
	SigmaX, SigmaY float64
	Tile           TileMode
}

// NewBlur returns a blur filter with clamp tiling.
func NewBlur(sigmaX, sigmaY float64) *Blur {
	return &Blur{SigmaX: sigmaX, SigmaY: sigmaY, Tile: TileClamp}
}

// Type implements ImageFilter.
func (*Blur) Type() Type { return TypeBlur }

// Equal implements ImageFilter.
func (b *Blur) Equal(other ImageFilter) bool {
	o, ok := other.(*Blur)
	return ok && *b == *o
}

// MapBounds expands by three sigma, which covers the visible kernel.
func (b *Blur) MapBounds(input geom.Rect) geom.Rect {
	return input.Outset(math.Ceil(3*b.SigmaX), math.Ceil(3*b.SigmaY))
}

// Dilate grows bright regions by a rectangular radius.
type Dilate struct {
	RadiusX, RadiusY float64
}

// Type implements ImageFilter.
func (*Dilate) Type() Type { return TypeDilate }

// Equal implements ImageFilter.
func (d *Dilate) Equal(other ImageFilter) bool {
	o, ok := other.(*Dilate)
	return ok && *d == *o
}

// MapBounds implements ImageFilter.
func (d *Dilate) MapBounds(input geom.Rect) geom.Rect {
	return input.Outset(d.RadiusX, d.RadiusY)
}

// Erode shrinks bright regions by a rectangular radius.
type Erode struct {
	RadiusX, RadiusY float64
}

// Type implements ImageFilter.
func (*Erode) Type() Type { return TypeErode }

// Equal implements ImageFilter.
func (e *Erode) Equal(other ImageFilter) bool {
	o, ok := other.(*Erode)
	return ok && *e == *o
}

// MapBounds implements ImageFilter.
func (e *Erode) MapBounds(input geom.Rect) geom.Rect {
	out := input.Outset(-e.RadiusX, -e.RadiusY)
	if out.IsEmpty() {
		return geom.Rect{}
	}
	return out
}

// ColorMatrix applies a 4x5 row-major color matrix to RGBA.
type ColorMatrix struct {
	Matrix [20]float64
}

// Type implements ImageFilter.
func (*ColorMatrix) Type() Type { return TypeColorMatrix }

// Equal implements ImageFilter.
func (c *ColorMatrix) Equal(other ImageFilter) bool {
	o, ok := other.(*ColorMatrix)
	return ok && c.Matrix == o.Matrix
}

// MapBounds implements ImageFilter.
func (*ColorMatrix) MapBounds(input geom.Rect) geom.Rect {
	return input
}

// Compose applies Inner first and Outer to its result.
type Compose struct {
	Outer, Inner ImageFilter
}

// Type implements ImageFilter.
func (*Compose) Type() Type { return TypeCompose }

// Equal implements ImageFilter.
func (c *Compose) Equal(other ImageFilter) bool {
	o, ok := other.(*Compose)
	return ok && Equal(c.Outer, o.Outer) && Equal(c.Inner, o.Inner)
}

// MapBounds implements ImageFilter.
func (c *Compose) MapBounds(input geom.Rect) geom.Rect {
	if c.Inner != nil {
		input = c.Inner.MapBounds(input)
	}
	if c.Outer != nil {
		input = c.Outer.MapBounds(input)
	}
	return input
}
