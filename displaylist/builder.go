package displaylist

import (
	"github.com/gogpu/flow/filter"
	"github.com/gogpu/flow/geom"
)

// Builder is a Canvas that records ops into a DisplayList.
//
// Example:
//
//	b := displaylist.NewBuilder(geom.MakeLTRB(0, 0, 100, 100))
//	b.ClipRect(geom.MakeLTRB(0, 0, 50, 50), displaylist.ClipIntersect)
//	b.DrawPaint(displaylist.FillPaint(blue))
//	dl := b.Build()
//
// The Builder is not safe for concurrent use.
type Builder struct {
	cullRect geom.Rect
	ops      []Op
	index    []indexEntry
	bounds   geom.Rect

	// Current state
	matrix geom.Matrix
	clip   geom.Rect

	// State stack
	stateStack []builderState
}

// builderState stores the matrix and clip for Save/Restore.
type builderState struct {
	matrix geom.Matrix
	clip   geom.Rect
}

// indexEntry maps an op to the device pixels it may touch.
type indexEntry struct {
	bounds geom.IRect
	op     int
}

// MaxCullRect is the cull rectangle used when a builder is created with an
// empty one. It stays well inside the int32 range so rounded bounds never
// saturate.
var MaxCullRect = geom.MakeLTRB(-(1 << 30), -(1 << 30), 1<<30, 1<<30)

// NewBuilder creates a Builder whose content is culled to cullRect.
// Drawing outside cullRect is recorded but does not contribute to the
// bounds or region of the built list. An empty cullRect means MaxCullRect.
func NewBuilder(cullRect geom.Rect) *Builder {
	if cullRect.IsEmpty() {
		cullRect = MaxCullRect
	}
	b := &Builder{cullRect: cullRect}
	b.reset()
	return b
}

func (b *Builder) reset() {
	b.ops = make([]Op, 0, 64)
	b.index = nil
	b.bounds = geom.Rect{}
	b.matrix = geom.Identity()
	b.clip = b.cullRect
	b.stateStack = make([]builderState, 0, 8)
}

// CullRect returns the rectangle the builder was created with.
func (b *Builder) CullRect() geom.Rect {
	return b.cullRect
}

// IsEmpty returns true if nothing visible has been drawn so far.
func (b *Builder) IsEmpty() bool {
	return b.bounds.IsEmpty()
}

// Build returns an immutable DisplayList of the recorded ops and resets the
// builder to its initial state. Unbalanced saves are closed.
func (b *Builder) Build() *DisplayList {
	for len(b.stateStack) > 0 {
		b.Restore()
	}
	dl := newDisplayList(b.cullRect, b.ops, b.index, b.bounds)
	b.reset()
	return dl
}

// --------------------------------------------------------------------------
// State Management
// --------------------------------------------------------------------------

// Save implements Canvas.
func (b *Builder) Save() {
	b.pushState()
	b.ops = append(b.ops, SaveOp{})
}

// SaveLayer implements Canvas.
//
// A backdrop filter reads everything beneath the layer, so the layer
// bounds (or the clip, when bounds is nil) are indexed as touched.
func (b *Builder) SaveLayer(bounds *geom.Rect, alpha uint8, backdrop filter.ImageFilter) {
	op := SaveLayerOp{Alpha: alpha, Backdrop: backdrop}
	if bounds != nil {
		op.Bounds = *bounds
		op.HasBounds = true
	}
	b.ops = append(b.ops, op)
	if backdrop != nil {
		if bounds != nil {
			b.accumulate(*bounds)
		} else {
			b.accumulateDevice(b.clip)
		}
	}
	b.pushState()
	if bounds != nil {
		b.clip = b.clip.Intersect(bounds.TransformAndClipBounds(b.matrix))
	}
}

func (b *Builder) pushState() {
	b.stateStack = append(b.stateStack, builderState{matrix: b.matrix, clip: b.clip})
}

// Restore implements Canvas. If the state stack is empty, this is a no-op.
func (b *Builder) Restore() {
	if len(b.stateStack) == 0 {
		return
	}
	state := b.stateStack[len(b.stateStack)-1]
	b.stateStack = b.stateStack[:len(b.stateStack)-1]
	b.matrix = state.matrix
	b.clip = state.clip
	b.ops = append(b.ops, RestoreOp{})
}

// SaveCount implements Canvas.
func (b *Builder) SaveCount() int {
	return len(b.stateStack) + 1
}

// RestoreToCount implements Canvas.
func (b *Builder) RestoreToCount(count int) {
	count = max(count, 1)
	for b.SaveCount() > count {
		b.Restore()
	}
}

// --------------------------------------------------------------------------
// Transform
// --------------------------------------------------------------------------

// Translate implements Canvas.
func (b *Builder) Translate(dx, dy float64) {
	b.Transform(geom.Translate(dx, dy))
}

// Scale implements Canvas.
func (b *Builder) Scale(sx, sy float64) {
	b.Transform(geom.Scale(sx, sy))
}

// RotateZ implements Canvas.
func (b *Builder) RotateZ(radians float64) {
	b.Transform(geom.RotateZ(radians))
}

// Transform implements Canvas.
func (b *Builder) Transform(m geom.Matrix) {
	b.SetTransform(b.matrix.Multiply(m))
}

// SetTransform implements Canvas.
func (b *Builder) SetTransform(m geom.Matrix) {
	b.matrix = m
	b.ops = append(b.ops, SetTransformOp{Matrix: m})
}

// TransformMatrix implements Canvas.
func (b *Builder) TransformMatrix() geom.Matrix {
	return b.matrix
}

// --------------------------------------------------------------------------
// Clipping
// --------------------------------------------------------------------------

// ClipRect implements Canvas.
func (b *Builder) ClipRect(r geom.Rect, op ClipOp) {
	b.ops = append(b.ops, ClipRectOp{Rect: r, Op: op})
	b.clipBounds(r, op)
}

// ClipRRect implements Canvas.
func (b *Builder) ClipRRect(rr geom.RRect, op ClipOp) {
	b.ops = append(b.ops, ClipRRectOp{RRect: rr, Op: op})
	b.clipBounds(rr.Bounds(), op)
}

// ClipPath implements Canvas.
func (b *Builder) ClipPath(path *geom.Path, op ClipOp) {
	path = path.Clone()
	b.ops = append(b.ops, ClipPathOp{Path: path, Op: op})
	b.clipBounds(path.Bounds(), op)
}

// clipBounds narrows the device clip. Difference clips keep the bounds,
// which stays conservative.
func (b *Builder) clipBounds(local geom.Rect, op ClipOp) {
	if op != ClipIntersect {
		return
	}
	b.clip = b.clip.Intersect(local.TransformAndClipBounds(b.matrix))
}

// DeviceClipBounds implements Canvas.
func (b *Builder) DeviceClipBounds() geom.Rect {
	return b.clip
}

// --------------------------------------------------------------------------
// Drawing
// --------------------------------------------------------------------------

// DrawPaint implements Canvas.
func (b *Builder) DrawPaint(p Paint) {
	b.ops = append(b.ops, DrawPaintOp{Paint: p})
	if !p.IsTransparent() {
		b.accumulateDevice(b.clip)
	}
}

// DrawRect implements Canvas.
func (b *Builder) DrawRect(r geom.Rect, p Paint) {
	b.ops = append(b.ops, DrawRectOp{Rect: r, Paint: p})
	b.accumulatePaint(r, p)
}

// DrawRRect implements Canvas.
func (b *Builder) DrawRRect(rr geom.RRect, p Paint) {
	b.ops = append(b.ops, DrawRRectOp{RRect: rr, Paint: p})
	b.accumulatePaint(rr.Bounds(), p)
}

// DrawPath implements Canvas.
func (b *Builder) DrawPath(path *geom.Path, p Paint) {
	path = path.Clone()
	b.ops = append(b.ops, DrawPathOp{Path: path, Paint: p})
	b.accumulatePaint(path.Bounds(), p)
}

// DrawDisplayList implements Canvas.
//
// The nested list contributes its own region, rectangle by rectangle,
// so a translated list keeps its holes.
func (b *Builder) DrawDisplayList(dl *DisplayList, opacity float64) {
	if dl == nil {
		return
	}
	b.ops = append(b.ops, DrawDisplayListOp{List: dl, Opacity: opacity})
	if opacity <= 0 {
		return
	}
	for _, r := range dl.Region().Rects() {
		b.accumulate(r.Rect())
	}
}

// accumulatePaint indexes local geometry bounds grown by the stroke.
func (b *Builder) accumulatePaint(local geom.Rect, p Paint) {
	if p.IsTransparent() {
		return
	}
	if o := p.outset(); o > 0 {
		local = local.Outset(o, o)
	}
	b.accumulate(local)
}

// accumulate indexes local bounds for the op just appended.
func (b *Builder) accumulate(local geom.Rect) {
	b.accumulateDevice(local.TransformAndClipBounds(b.matrix))
}

// accumulateDevice indexes device bounds for the op just appended.
func (b *Builder) accumulateDevice(device geom.Rect) {
	device = device.Intersect(b.clip).Intersect(b.cullRect)
	if device.IsEmpty() {
		return
	}
	b.bounds = b.bounds.Union(device)
	b.index = append(b.index, indexEntry{bounds: device.RoundOut(), op: len(b.ops) - 1})
}
