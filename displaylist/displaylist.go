package displaylist

import (
	"slices"

	"github.com/gogpu/flow/geom"
)

// DisplayList is an immutable sequence of recorded ops together with a
// spatial index of the device pixels each drawing op may touch.
//
// A DisplayList is safe for concurrent reads and may be drawn into any
// number of canvases, including other builders.
type DisplayList struct {
	cullRect geom.Rect
	ops      []Op
	index    []indexEntry
	bounds   geom.Rect
	region   geom.Region
}

func newDisplayList(cullRect geom.Rect, ops []Op, index []indexEntry, bounds geom.Rect) *DisplayList {
	rects := make([]geom.IRect, len(index))
	for i, e := range index {
		rects[i] = e.bounds
	}
	return &DisplayList{
		cullRect: cullRect,
		ops:      ops,
		index:    index,
		bounds:   bounds,
		region:   geom.NewRegion(rects...),
	}
}

// CullRect returns the cull rectangle of the builder that produced the list.
func (dl *DisplayList) CullRect() geom.Rect {
	return dl.cullRect
}

// Ops returns the recorded ops. The returned slice must not be modified.
func (dl *DisplayList) Ops() []Op {
	return dl.ops
}

// OpCount returns the number of recorded ops.
func (dl *DisplayList) OpCount() int {
	return len(dl.ops)
}

// Bounds returns the union of the device bounds of all visible ops.
func (dl *DisplayList) Bounds() geom.Rect {
	return dl.bounds
}

// IsEmpty returns true if the list draws no visible pixels.
func (dl *DisplayList) IsEmpty() bool {
	return dl == nil || dl.region.IsEmpty()
}

// Region returns the pixels touched by the list's drawing ops.
// The result is tighter than Bounds when drawing is disjoint.
func (dl *DisplayList) Region() geom.Region {
	return dl.region
}

// Search returns the indices of drawing ops whose device bounds intersect
// query, in recording order.
func (dl *DisplayList) Search(query geom.Rect) []int {
	q := query.RoundOut()
	if q.IsEmpty() {
		return nil
	}
	var out []int
	for _, e := range dl.index {
		if e.bounds.Intersects(q) {
			out = append(out, e.op)
		}
	}
	return slices.Compact(out)
}

// Dispatch replays every op to r in recording order.
func (dl *DisplayList) Dispatch(r Receiver) {
	for _, op := range dl.ops {
		switch o := op.(type) {
		case SaveOp:
			r.Save()
		case SaveLayerOp:
			if o.HasBounds {
				b := o.Bounds
				r.SaveLayer(&b, o.Alpha, o.Backdrop)
			} else {
				r.SaveLayer(nil, o.Alpha, o.Backdrop)
			}
		case RestoreOp:
			r.Restore()
		case SetTransformOp:
			r.SetTransform(o.Matrix)
		case ClipRectOp:
			r.ClipRect(o.Rect, o.Op)
		case ClipRRectOp:
			r.ClipRRect(o.RRect, o.Op)
		case ClipPathOp:
			r.ClipPath(o.Path, o.Op)
		case DrawPaintOp:
			r.DrawPaint(o.Paint)
		case DrawRectOp:
			r.DrawRect(o.Rect, o.Paint)
		case DrawRRectOp:
			r.DrawRRect(o.RRect, o.Paint)
		case DrawPathOp:
			r.DrawPath(o.Path, o.Paint)
		case DrawDisplayListOp:
			r.DrawDisplayList(o.List, o.Opacity)
		}
	}
}

// RenderTo draws the list into c relative to c's current matrix.
// The canvas state is restored afterwards, even if the list left saves open.
func (dl *DisplayList) RenderTo(c Canvas) {
	count := c.SaveCount()
	c.Save()
	dl.Dispatch(&canvasReceiver{canvas: c, base: c.TransformMatrix()})
	c.RestoreToCount(count)
}
