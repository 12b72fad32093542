package geom

import (
	"cmp"
	"slices"
)

// Region is a set of pixels described by non-overlapping integer rectangles.
//
// Region is a value type: every operation returns a new Region and never
// modifies its receiver, so a Region obtained from a display list may be
// shared freely. Two regions covering the same pixels are Equal even when
// their rectangle decompositions differ.
type Region struct {
	rects []IRect
}

// NewRegion creates a region covering the union of the given rectangles.
// Empty rectangles are ignored.
func NewRegion(rects ...IRect) Region {
	var r Region
	for _, rect := range rects {
		r.rects = appendDisjoint(r.rects, rect)
	}
	return r
}

// appendDisjoint adds the parts of rect not already covered by rects.
func appendDisjoint(rects []IRect, rect IRect) []IRect {
	if rect.IsEmpty() {
		return rects
	}
	pieces := []IRect{rect}
	for _, existing := range rects {
		pieces = subtractFromAll(pieces, existing)
		if len(pieces) == 0 {
			return rects
		}
	}
	return append(rects, pieces...)
}

// subtractFromAll removes b from every rectangle in pieces.
func subtractFromAll(pieces []IRect, b IRect) []IRect {
	out := make([]IRect, 0, len(pieces))
	for _, a := range pieces {
		out = appendDifference(out, a, b)
	}
	return out
}

// appendDifference appends the up to four bands of a that lie outside b.
func appendDifference(out []IRect, a, b IRect) []IRect {
	i := a.Intersect(b)
	if i.IsEmpty() {
		return append(out, a)
	}
	bands := [4]IRect{
		{Left: a.Left, Top: a.Top, Right: a.Right, Bottom: i.Top},
		{Left: a.Left, Top: i.Bottom, Right: a.Right, Bottom: a.Bottom},
		{Left: a.Left, Top: i.Top, Right: i.Left, Bottom: i.Bottom},
		{Left: i.Right, Top: i.Top, Right: a.Right, Bottom: i.Bottom},
	}
	for _, band := range bands {
		if !band.IsEmpty() {
			out = append(out, band)
		}
	}
	return out
}

// AddRect returns a region that also covers rect.
func (r Region) AddRect(rect IRect) Region {
	return Region{rects: appendDisjoint(slices.Clone(r.rects), rect)}
}

// Union returns the region covered by either a or b.
func Union(a, b Region) Region {
	out := slices.Clone(a.rects)
	for _, rect := range b.rects {
		out = appendDisjoint(out, rect)
	}
	return Region{rects: out}
}

// Intersection returns the region covered by both a and b.
func Intersection(a, b Region) Region {
	var out []IRect
	for _, ra := range a.rects {
		for _, rb := range b.rects {
			if i := ra.Intersect(rb); !i.IsEmpty() {
				out = append(out, i)
			}
		}
	}
	return Region{rects: out}
}

// Subtract returns the part of r not covered by other.
func (r Region) Subtract(other Region) Region {
	var out []IRect
	for _, ra := range r.rects {
		pieces := []IRect{ra}
		for _, rb := range other.rects {
			pieces = subtractFromAll(pieces, rb)
			if len(pieces) == 0 {
				break
			}
		}
		out = append(out, pieces...)
	}
	return Region{rects: out}
}

// IntersectRect returns the part of r inside rect.
func (r Region) IntersectRect(rect IRect) Region {
	return Intersection(r, NewRegion(rect))
}

// IsEmpty returns true if the region covers no pixels.
func (r Region) IsEmpty() bool {
	return len(r.rects) == 0
}

// Bounds returns the smallest rectangle enclosing the region.
func (r Region) Bounds() IRect {
	var b IRect
	for _, rect := range r.rects {
		b = b.Union(rect)
	}
	return b
}

// Area returns the number of pixels covered.
func (r Region) Area() int64 {
	var area int64
	for _, rect := range r.rects {
		area += int64(rect.Width()) * int64(rect.Height())
	}
	return area
}

// Rects returns the rectangles of the region sorted top-to-bottom, then
// left-to-right. The returned slice is a copy.
func (r Region) Rects() []IRect {
	out := slices.Clone(r.rects)
	slices.SortFunc(out, func(a, b IRect) int {
		if c := cmp.Compare(a.Top, b.Top); c != 0 {
			return c
		}
		return cmp.Compare(a.Left, b.Left)
	})
	return out
}

// Intersects returns true if any pixel of rect is in the region.
func (r Region) Intersects(rect IRect) bool {
	for _, own := range r.rects {
		if own.Intersects(rect) {
			return true
		}
	}
	return false
}

// Contains returns true if every pixel of rect is in the region.
func (r Region) Contains(rect IRect) bool {
	return NewRegion(rect).Subtract(r).IsEmpty()
}

// Equal reports whether both regions cover exactly the same pixels.
func (r Region) Equal(other Region) bool {
	if r.Area() != other.Area() {
		return false
	}
	return r.Subtract(other).IsEmpty()
}
