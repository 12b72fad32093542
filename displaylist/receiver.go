package displaylist

import (
	"github.com/gogpu/flow/filter"
	"github.com/gogpu/flow/geom"
)

// Receiver consumes ops dispatched from a DisplayList, one call per op.
//
// Unlike Canvas, a Receiver sees the absolute matrix of every SetTransform
// (relative to the list's origin) and keeps whatever state it needs for
// Save/Restore itself.
type Receiver interface {
	Save()
	SaveLayer(bounds *geom.Rect, alpha uint8, backdrop filter.ImageFilter)
	Restore()
	SetTransform(m geom.Matrix)
	ClipRect(r geom.Rect, op ClipOp)
	ClipRRect(rr geom.RRect, op ClipOp)
	ClipPath(path *geom.Path, op ClipOp)
	DrawPaint(p Paint)
	DrawRect(r geom.Rect, p Paint)
	DrawRRect(rr geom.RRect, p Paint)
	DrawPath(path *geom.Path, p Paint)
	DrawDisplayList(dl *DisplayList, opacity float64)
}

// canvasReceiver replays ops onto a Canvas, composing every recorded
// matrix with the canvas matrix captured when replay started.
type canvasReceiver struct {
	canvas Canvas
	base   geom.Matrix
}

func (r *canvasReceiver) Save() { r.canvas.Save() }

func (r *canvasReceiver) SaveLayer(bounds *geom.Rect, alpha uint8, backdrop filter.ImageFilter) {
	r.canvas.SaveLayer(bounds, alpha, backdrop)
}

func (r *canvasReceiver) Restore() { r.canvas.Restore() }

func (r *canvasReceiver) SetTransform(m geom.Matrix) {
	r.canvas.SetTransform(r.base.Multiply(m))
}

func (r *canvasReceiver) ClipRect(rect geom.Rect, op ClipOp)  { r.canvas.ClipRect(rect, op) }
func (r *canvasReceiver) ClipRRect(rr geom.RRect, op ClipOp)  { r.canvas.ClipRRect(rr, op) }
func (r *canvasReceiver) ClipPath(path *geom.Path, op ClipOp) { r.canvas.ClipPath(path, op) }
func (r *canvasReceiver) DrawPaint(p Paint)                   { r.canvas.DrawPaint(p) }
func (r *canvasReceiver) DrawRect(rect geom.Rect, p Paint)    { r.canvas.DrawRect(rect, p) }
func (r *canvasReceiver) DrawRRect(rr geom.RRect, p Paint)    { r.canvas.DrawRRect(rr, p) }
func (r *canvasReceiver) DrawPath(path *geom.Path, p Paint)   { r.canvas.DrawPath(path, p) }
func (r *canvasReceiver) DrawDisplayList(dl *DisplayList, o float64) {
	r.canvas.DrawDisplayList(dl, o)
}
