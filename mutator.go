package flow

import (
	"fmt"

	"github.com/gogpu/flow/filter"
	"github.com/gogpu/flow/geom"
)

// MutatorType identifies which payload a Mutator carries.
type MutatorType uint8

const (
	MutatorClipRect       MutatorType = iota // Clip to a rectangle
	MutatorClipRRect                         // Clip to a rounded rectangle
	MutatorClipRSE                           // Clip to a rounded superellipse
	MutatorClipPath                          // Clip to a path
	MutatorTransform                         // Concatenate a matrix
	MutatorOpacity                           // Modulate alpha
	MutatorBackdropFilter                    // Filter the backdrop inside a rectangle
)

var mutatorTypeNames = [...]string{
	MutatorClipRect:       "ClipRect",
	MutatorClipRRect:      "ClipRRect",
	MutatorClipRSE:        "ClipRSE",
	MutatorClipPath:       "ClipPath",
	MutatorTransform:      "Transform",
	MutatorOpacity:        "Opacity",
	MutatorBackdropFilter: "BackdropFilter",
}

// String returns the name of the mutator type.
func (t MutatorType) String() string {
	if int(t) < len(mutatorTypeNames) {
		return mutatorTypeNames[t]
	}
	return "Unknown"
}

// ImageFilterMutation pairs a backdrop filter with the rectangle, in global
// coordinates, that it applies to.
type ImageFilterMutation struct {
	Filter     filter.ImageFilter
	FilterRect geom.Rect
}

// Equal reports whether both mutations have equal filters and rectangles.
func (m ImageFilterMutation) Equal(other ImageFilterMutation) bool {
	return m.FilterRect == other.FilterRect && filter.Equal(m.Filter, other.Filter)
}

// Mutator is one visual operation applied to an embedded view: a clip, a
// transform, an opacity or a backdrop filter.
//
// A Mutator is immutable once constructed. Only the accessor matching
// Type may be called; any other accessor panics with a *TypeMismatchError.
type Mutator struct {
	typ    MutatorType
	rect   geom.Rect
	rrect  geom.RRect
	rse    geom.RSuperellipse
	path   *geom.Path
	matrix geom.Matrix
	alpha  uint8
	filter ImageFilterMutation
}

// NewClipRectMutator creates a rectangle clip.
func NewClipRectMutator(r geom.Rect) *Mutator {
	return &Mutator{typ: MutatorClipRect, rect: r}
}

// NewClipRRectMutator creates a rounded rectangle clip.
func NewClipRRectMutator(rr geom.RRect) *Mutator {
	return &Mutator{typ: MutatorClipRRect, rrect: rr}
}

// NewClipRSEMutator creates a rounded superellipse clip.
func NewClipRSEMutator(rse geom.RSuperellipse) *Mutator {
	return &Mutator{typ: MutatorClipRSE, rse: rse}
}

// NewClipPathMutator creates a path clip. The path is copied.
func NewClipPathMutator(p *geom.Path) *Mutator {
	return &Mutator{typ: MutatorClipPath, path: p.Clone()}
}

// NewTransformMutator creates a transform.
func NewTransformMutator(m geom.Matrix) *Mutator {
	return &Mutator{typ: MutatorTransform, matrix: m}
}

// NewOpacityMutator creates an opacity with alpha in [0, 255].
func NewOpacityMutator(alpha uint8) *Mutator {
	return &Mutator{typ: MutatorOpacity, alpha: alpha}
}

// NewBackdropFilterMutator creates a backdrop filter applying to rect,
// which is in global coordinates.
func NewBackdropFilterMutator(f filter.ImageFilter, rect geom.Rect) *Mutator {
	return &Mutator{typ: MutatorBackdropFilter, filter: ImageFilterMutation{Filter: f, FilterRect: rect}}
}

// Type returns the mutator type.
func (m *Mutator) Type() MutatorType {
	return m.typ
}

func (m *Mutator) mustBe(want MutatorType, method string) {
	if m.typ != want {
		panic(&TypeMismatchError{Method: method, Want: want, Got: m.typ})
	}
}

// Rect returns the clip rectangle of a MutatorClipRect.
func (m *Mutator) Rect() geom.Rect {
	m.mustBe(MutatorClipRect, "Rect")
	return m.rect
}

// RRect returns the clip shape of a MutatorClipRRect.
func (m *Mutator) RRect() geom.RRect {
	m.mustBe(MutatorClipRRect, "RRect")
	return m.rrect
}

// RSE returns the clip shape of a MutatorClipRSE.
func (m *Mutator) RSE() geom.RSuperellipse {
	m.mustBe(MutatorClipRSE, "RSE")
	return m.rse
}

// RSEApproximation returns a rounded rectangle that contains the clip shape
// of a MutatorClipRSE, for callers that cannot clip to a superellipse.
func (m *Mutator) RSEApproximation() geom.RRect {
	m.mustBe(MutatorClipRSE, "RSEApproximation")
	return m.rse.ToApproximateRoundRect()
}

// Path returns the clip path of a MutatorClipPath.
// The returned path must not be modified.
func (m *Mutator) Path() *geom.Path {
	m.mustBe(MutatorClipPath, "Path")
	return m.path
}

// Matrix returns the matrix of a MutatorTransform.
func (m *Mutator) Matrix() geom.Matrix {
	m.mustBe(MutatorTransform, "Matrix")
	return m.matrix
}

// FilterMutation returns the filter and rectangle of a MutatorBackdropFilter.
func (m *Mutator) FilterMutation() ImageFilterMutation {
	m.mustBe(MutatorBackdropFilter, "FilterMutation")
	return m.filter
}

// Alpha returns the raw alpha of a MutatorOpacity.
func (m *Mutator) Alpha() uint8 {
	m.mustBe(MutatorOpacity, "Alpha")
	return m.alpha
}

// AlphaFloat returns the alpha of a MutatorOpacity normalized to [0, 1].
func (m *Mutator) AlphaFloat() float64 {
	m.mustBe(MutatorOpacity, "AlphaFloat")
	return float64(m.alpha) / 255
}

// IsClipType returns true for the four clip types.
func (m *Mutator) IsClipType() bool {
	switch m.typ {
	case MutatorClipRect, MutatorClipRRect, MutatorClipRSE, MutatorClipPath:
		return true
	default:
		return false
	}
}

// Equal reports whether both mutators have the same type and payload.
func (m *Mutator) Equal(other *Mutator) bool {
	if m == other {
		return true
	}
	if m == nil || other == nil || m.typ != other.typ {
		return false
	}
	switch m.typ {
	case MutatorClipRect:
		return m.rect == other.rect
	case MutatorClipRRect:
		return m.rrect == other.rrect
	case MutatorClipRSE:
		return m.rse == other.rse
	case MutatorClipPath:
		return m.path.Equal(other.path)
	case MutatorTransform:
		return m.matrix == other.matrix
	case MutatorOpacity:
		return m.alpha == other.alpha
	case MutatorBackdropFilter:
		return m.filter.Equal(other.filter)
	}
	return false
}

// String returns a short description such as "Opacity(128)".
func (m *Mutator) String() string {
	switch m.typ {
	case MutatorClipRect:
		return fmt.Sprintf("ClipRect(%v)", m.rect)
	case MutatorClipRRect:
		return fmt.Sprintf("ClipRRect(%v)", m.rrect.Rect)
	case MutatorClipRSE:
		return fmt.Sprintf("ClipRSE(%v)", m.rse.Bounds)
	case MutatorClipPath:
		return fmt.Sprintf("ClipPath(%v)", m.path.Bounds())
	case MutatorTransform:
		return fmt.Sprintf("Transform(%v)", m.matrix.M)
	case MutatorOpacity:
		return fmt.Sprintf("Opacity(%d)", m.alpha)
	case MutatorBackdropFilter:
		return fmt.Sprintf("BackdropFilter(%v, %v)", filterTypeName(m.filter.Filter), m.filter.FilterRect)
	}
	return m.typ.String()
}

func filterTypeName(f filter.ImageFilter) string {
	if f == nil {
		return "nil"
	}
	return f.Type().String()
}
