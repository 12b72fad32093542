package displaylist

import (
	"github.com/gogpu/flow/filter"
	"github.com/gogpu/flow/geom"
)

// OpType identifies the type of a recorded op.
type OpType uint8

const (
	// State ops
	OpSave         OpType = iota // Save current state
	OpSaveLayer                  // Save state and open a layer
	OpRestore                    // Restore previous state
	OpSetTransform               // Set transformation matrix
	OpClipRect                   // Clip to a rectangle
	OpClipRRect                  // Clip to a rounded rectangle
	OpClipPath                   // Clip to a path

	// Drawing ops
	OpDrawPaint       // Fill the clip
	OpDrawRect        // Draw a rectangle
	OpDrawRRect       // Draw a rounded rectangle
	OpDrawPath        // Draw a path
	OpDrawDisplayList // Draw a nested display list
)

// opTypeNames maps OpType values to their string representation.
var opTypeNames = [...]string{
	OpSave:            "Save",
	OpSaveLayer:       "SaveLayer",
	OpRestore:         "Restore",
	OpSetTransform:    "SetTransform",
	OpClipRect:        "ClipRect",
	OpClipRRect:       "ClipRRect",
	OpClipPath:        "ClipPath",
	OpDrawPaint:       "DrawPaint",
	OpDrawRect:        "DrawRect",
	OpDrawRRect:       "DrawRRect",
	OpDrawPath:        "DrawPath",
	OpDrawDisplayList: "DrawDisplayList",
}

// String returns the string representation of an OpType.
func (t OpType) String() string {
	if int(t) < len(opTypeNames) {
		return opTypeNames[t]
	}
	return "Unknown"
}

// IsDrawing returns true for ops that produce pixels.
func (t OpType) IsDrawing() bool {
	return t >= OpDrawPaint && t <= OpDrawDisplayList
}

// Op is the interface implemented by all recorded ops.
type Op interface {
	// Type returns the OpType for this op.
	Type() OpType
}

// SaveOp saves the current matrix and clip.
type SaveOp struct{}

// Type implements Op.
func (SaveOp) Type() OpType { return OpSave }

// SaveLayerOp saves the state and opens an offscreen layer.
type SaveLayerOp struct {
	// Bounds is the layer bounds in local coordinates; meaningful only
	// when HasBounds is set.
	Bounds    geom.Rect
	HasBounds bool
	// Alpha is the layer opacity applied on restore.
	Alpha uint8
	// Backdrop filters the content beneath the layer, or nil.
	Backdrop filter.ImageFilter
}

// Type implements Op.
func (SaveLayerOp) Type() OpType { return OpSaveLayer }

// RestoreOp restores the previously saved state.
type RestoreOp struct{}

// Type implements Op.
func (RestoreOp) Type() OpType { return OpRestore }

// SetTransformOp sets the current matrix, relative to the list's origin.
type SetTransformOp struct {
	Matrix geom.Matrix
}

// Type implements Op.
func (SetTransformOp) Type() OpType { return OpSetTransform }

// ClipRectOp clips to a rectangle in local coordinates.
type ClipRectOp struct {
	Rect geom.Rect
	Op   ClipOp
}

// Type implements Op.
func (ClipRectOp) Type() OpType { return OpClipRect }

// ClipRRectOp clips to a rounded rectangle in local coordinates.
type ClipRRectOp struct {
	RRect geom.RRect
	Op    ClipOp
}

// Type implements Op.
func (ClipRRectOp) Type() OpType { return OpClipRRect }

// ClipPathOp clips to a path in local coordinates.
type ClipPathOp struct {
	Path *geom.Path
	Op   ClipOp
}

// Type implements Op.
func (ClipPathOp) Type() OpType { return OpClipPath }

// DrawPaintOp fills the current clip.
type DrawPaintOp struct {
	Paint Paint
}

// Type implements Op.
func (DrawPaintOp) Type() OpType { return OpDrawPaint }

// DrawRectOp draws a rectangle.
type DrawRectOp struct {
	Rect  geom.Rect
	Paint Paint
}

// Type implements Op.
func (DrawRectOp) Type() OpType { return OpDrawRect }

// DrawRRectOp draws a rounded rectangle.
type DrawRRectOp struct {
	RRect geom.RRect
	Paint Paint
}

// Type implements Op.
func (DrawRRectOp) Type() OpType { return OpDrawRRect }

// DrawPathOp draws a path.
type DrawPathOp struct {
	Path  *geom.Path
	Paint Paint
}

// Type implements Op.
func (DrawPathOp) Type() OpType { return OpDrawPath }

// DrawDisplayListOp draws a nested display list.
type DrawDisplayListOp struct {
	List    *DisplayList
	Opacity float64
}

// Type implements Op.
func (DrawDisplayListOp) Type() OpType { return OpDrawDisplayList }
