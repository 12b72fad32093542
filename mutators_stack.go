package flow

import (
	"iter"
	"slices"

	"github.com/gogpu/flow/filter"
	"github.com/gogpu/flow/geom"
)

// MutatorsStack is the ordered list of mutators applied to an embedded view
// by its ancestor layers. Index 0 is the outermost mutator; the last entry
// is the one closest to the view.
//
// Mutators are immutable and held by pointer, so Clone copies only the
// pointer slice and sibling views share their common ancestors. The zero
// value is an empty stack ready for use. A MutatorsStack is not safe for
// concurrent mutation.
type MutatorsStack struct {
	mutators []*Mutator
}

// NewMutatorsStack returns a stack holding the given mutators in order.
func NewMutatorsStack(mutators ...*Mutator) *MutatorsStack {
	return &MutatorsStack{mutators: slices.Clone(mutators)}
}

// PushClipRect appends a rectangle clip.
func (s *MutatorsStack) PushClipRect(r geom.Rect) {
	s.push(NewClipRectMutator(r))
}

// PushClipRRect appends a rounded rectangle clip.
func (s *MutatorsStack) PushClipRRect(rr geom.RRect) {
	s.push(NewClipRRectMutator(rr))
}

// PushClipRSE appends a rounded superellipse clip.
func (s *MutatorsStack) PushClipRSE(rse geom.RSuperellipse) {
	s.push(NewClipRSEMutator(rse))
}

// PushClipPath appends a path clip.
func (s *MutatorsStack) PushClipPath(p *geom.Path) {
	s.push(NewClipPathMutator(p))
}

// PushTransform appends a transform.
func (s *MutatorsStack) PushTransform(m geom.Matrix) {
	s.push(NewTransformMutator(m))
}

// PushOpacity appends an opacity.
func (s *MutatorsStack) PushOpacity(alpha uint8) {
	s.push(NewOpacityMutator(alpha))
}

// PushBackdropFilter appends a backdrop filter. rect is in global
// coordinates.
func (s *MutatorsStack) PushBackdropFilter(f filter.ImageFilter, rect geom.Rect) {
	s.push(NewBackdropFilterMutator(f, rect))
}

func (s *MutatorsStack) push(m *Mutator) {
	s.mutators = append(s.mutators, m)
}

// Pop removes the most recently pushed mutator.
// It returns ErrEmptyStack and leaves the stack unchanged if it is empty.
func (s *MutatorsStack) Pop() error {
	n := len(s.mutators)
	if n == 0 {
		return ErrEmptyStack
	}
	s.mutators[n-1] = nil
	s.mutators = s.mutators[:n-1]
	return nil
}

// PopTo removes mutators until exactly count remain.
// It returns ErrInvalidPopCount and leaves the stack unchanged if count is
// negative or greater than Count.
func (s *MutatorsStack) PopTo(count int) error {
	if count < 0 || count > len(s.mutators) {
		return ErrInvalidPopCount
	}
	clear(s.mutators[count:])
	s.mutators = s.mutators[:count]
	return nil
}

// list returns the mutators. A nil stack is empty.
func (s *MutatorsStack) list() []*Mutator {
	if s == nil {
		return nil
	}
	return s.mutators
}

// Count returns the number of mutators.
func (s *MutatorsStack) Count() int {
	return len(s.list())
}

// IsEmpty returns true if the stack holds no mutators.
func (s *MutatorsStack) IsEmpty() bool {
	return len(s.list()) == 0
}

// At returns the mutator at index i, counted from the outermost.
func (s *MutatorsStack) At(i int) *Mutator {
	return s.mutators[i]
}

// All iterates from the outermost mutator to the one closest to the view.
func (s *MutatorsStack) All() iter.Seq2[int, *Mutator] {
	return slices.All(s.list())
}

// Backward iterates from the mutator closest to the view to the outermost.
func (s *MutatorsStack) Backward() iter.Seq2[int, *Mutator] {
	return slices.Backward(s.list())
}

// Clone returns a stack with the same mutators. Pushing to or popping from
// either stack does not affect the other.
func (s *MutatorsStack) Clone() *MutatorsStack {
	if s == nil {
		return &MutatorsStack{}
	}
	return &MutatorsStack{mutators: slices.Clone(s.mutators)}
}

// Equal reports whether both stacks hold equal mutators in the same order.
// Mutators are compared by value, not identity.
func (s *MutatorsStack) Equal(other *MutatorsStack) bool {
	if other == nil {
		return s.IsEmpty()
	}
	return s.EqualMutators(other.mutators)
}

// EqualMutators reports whether the stack holds exactly the given mutators,
// compared by value, in order.
func (s *MutatorsStack) EqualMutators(mutators []*Mutator) bool {
	return slices.EqualFunc(s.list(), mutators, (*Mutator).Equal)
}

// FlattenedMutations is the combined effect of a MutatorsStack.
type FlattenedMutations struct {
	// Matrix is the product of all transforms, outermost first.
	Matrix geom.Matrix
	// ClipBounds bounds the intersection of all clips in global
	// coordinates. It is meaningful only when HasClip is set.
	ClipBounds geom.Rect
	HasClip    bool
	// Opacity is the product of all opacities in [0, 1].
	Opacity float64
	// Filters lists the backdrop filters, outermost first.
	Filters []ImageFilterMutation
}

// Flatten evaluates the stack outside-in. Each clip is mapped to global
// coordinates by the transforms that precede it.
func (s *MutatorsStack) Flatten() FlattenedMutations {
	out := FlattenedMutations{Matrix: geom.Identity(), Opacity: 1}
	clip := func(local geom.Rect) {
		global := local.TransformAndClipBounds(out.Matrix)
		if out.HasClip {
			out.ClipBounds = out.ClipBounds.Intersect(global)
		} else {
			out.ClipBounds = global
			out.HasClip = true
		}
	}
	for _, m := range s.All() {
		switch m.Type() {
		case MutatorClipRect:
			clip(m.Rect())
		case MutatorClipRRect:
			clip(m.RRect().Bounds())
		case MutatorClipRSE:
			clip(m.RSE().Bounds)
		case MutatorClipPath:
			clip(m.Path().Bounds())
		case MutatorTransform:
			out.Matrix = out.Matrix.Multiply(m.Matrix())
		case MutatorOpacity:
			out.Opacity *= m.AlphaFloat()
		case MutatorBackdropFilter:
			out.Filters = append(out.Filters, m.FilterMutation())
		}
	}
	return out
}
