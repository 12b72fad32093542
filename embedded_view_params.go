package flow

import (
	"github.com/gogpu/flow/filter"
	"github.com/gogpu/flow/geom"
)

// EmbeddedViewParams describes where and how a platform view is placed in
// the current frame.
type EmbeddedViewParams struct {
	matrix            geom.Matrix
	size              geom.Size
	mutators          *MutatorsStack
	finalBoundingRect geom.Rect
}

// NewEmbeddedViewParams creates params for a view of the given size (in
// points, before transformation) under the cumulative matrix m.
//
// The stack is copied, so the caller may keep pushing and popping while it
// walks the rest of the tree. The final bounding rect is computed here
// once and never recomputed.
func NewEmbeddedViewParams(m geom.Matrix, size geom.Size, mutators *MutatorsStack) *EmbeddedViewParams {
	return &EmbeddedViewParams{
		matrix:            m,
		size:              size,
		mutators:          mutators.Clone(),
		finalBoundingRect: geom.MakeSize(size).TransformAndClipBounds(m),
	}
}

// TransformMatrix returns the cumulative matrix of the view.
func (p *EmbeddedViewParams) TransformMatrix() geom.Matrix {
	return p.matrix
}

// SizePoints returns the untransformed size of the view.
func (p *EmbeddedViewParams) SizePoints() geom.Size {
	return p.size
}

// MutatorsStack returns the mutators applied to the view.
// The returned stack must not be modified; use PushImageFilter.
func (p *EmbeddedViewParams) MutatorsStack() *MutatorsStack {
	return p.mutators
}

// FinalBoundingRect returns the view's bounds after transformation, as
// computed at construction.
func (p *EmbeddedViewParams) FinalBoundingRect() geom.Rect {
	return p.finalBoundingRect
}

// PushImageFilter appends a backdrop filter discovered after the view was
// prerolled. rect is in global coordinates.
//
// FinalBoundingRect is not updated.
func (p *EmbeddedViewParams) PushImageFilter(f filter.ImageFilter, rect geom.Rect) {
	p.mutators.PushBackdropFilter(f, rect)
}

// Equal reports whether both params have the same matrix, size, bounding
// rect and mutators.
func (p *EmbeddedViewParams) Equal(other *EmbeddedViewParams) bool {
	if p == other {
		return true
	}
	if p == nil || other == nil {
		return false
	}
	return p.matrix == other.matrix &&
		p.size == other.size &&
		p.finalBoundingRect == other.finalBoundingRect &&
		p.mutators.Equal(other.mutators)
}
