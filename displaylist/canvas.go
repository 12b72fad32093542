package displaylist

import (
	"image/color"

	"github.com/gogpu/flow/filter"
	"github.com/gogpu/flow/geom"
)

// Canvas is the drawing surface that layer painting code targets.
//
// The matrix and clip state follow the usual save/restore discipline:
// Save and SaveLayer push the state, Restore pops it. SaveCount starts at 1.
type Canvas interface {
	// Save pushes the current matrix and clip.
	Save()

	// SaveLayer pushes the state and opens an offscreen layer composited
	// with alpha on Restore. A non-nil backdrop filter is applied to the
	// content already drawn beneath the layer bounds. A nil bounds means
	// the layer covers the current clip.
	SaveLayer(bounds *geom.Rect, alpha uint8, backdrop filter.ImageFilter)

	// Restore pops the most recent Save or SaveLayer. It is a no-op when
	// nothing has been saved.
	Restore()

	// SaveCount returns the current save depth, starting at 1.
	SaveCount() int

	// RestoreToCount restores until SaveCount equals count.
	RestoreToCount(count int)

	Translate(dx, dy float64)
	Scale(sx, sy float64)
	RotateZ(radians float64)

	// Transform concatenates m with the current matrix (m applies first).
	Transform(m geom.Matrix)

	// SetTransform replaces the current matrix.
	SetTransform(m geom.Matrix)

	// TransformMatrix returns the current matrix.
	TransformMatrix() geom.Matrix

	ClipRect(r geom.Rect, op ClipOp)
	ClipRRect(rr geom.RRect, op ClipOp)
	ClipPath(path *geom.Path, op ClipOp)

	// DeviceClipBounds returns a conservative bound of the current clip in
	// device space.
	DeviceClipBounds() geom.Rect

	DrawPaint(p Paint)
	DrawRect(r geom.Rect, p Paint)
	DrawRRect(rr geom.RRect, p Paint)
	DrawPath(path *geom.Path, p Paint)

	// DrawDisplayList draws a recorded list under the current matrix and
	// clip, modulated by opacity in [0, 1].
	DrawDisplayList(dl *DisplayList, opacity float64)
}

// ClipOp specifies how a clip shape combines with the current clip.
type ClipOp uint8

const (
	// ClipIntersect keeps only the area inside the shape.
	ClipIntersect ClipOp = iota
	// ClipDifference removes the area inside the shape.
	ClipDifference
)

// PaintStyle selects whether shapes are filled or stroked.
type PaintStyle uint8

const (
	// StyleFill fills the interior.
	StyleFill PaintStyle = iota
	// StyleStroke strokes the outline.
	StyleStroke
)

// Paint describes how a shape is drawn.
type Paint struct {
	Color       color.NRGBA
	Style       PaintStyle
	StrokeWidth float64
}

// FillPaint returns a fill paint with the given color.
func FillPaint(c color.NRGBA) Paint {
	return Paint{Color: c, Style: StyleFill}
}

// StrokePaint returns a stroke paint with the given color and width.
// A width of zero draws a hairline.
func StrokePaint(c color.NRGBA, width float64) Paint {
	return Paint{Color: c, Style: StyleStroke, StrokeWidth: width}
}

// IsTransparent returns true if drawing with p has no visible effect.
func (p Paint) IsTransparent() bool {
	return p.Color.A == 0
}

// outset returns how far a stroke extends beyond the geometry.
func (p Paint) outset() float64 {
	if p.Style != StyleStroke {
		return 0
	}
	if p.StrokeWidth <= 0 {
		return 0.5
	}
	return p.StrokeWidth / 2
}
