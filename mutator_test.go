package flow

import (
	"errors"
	"math"
	"testing"

	"github.com/gogpu/flow/filter"
	"github.com/gogpu/flow/geom"
)

func testPath() *geom.Path {
	p := geom.NewPath()
	p.Circle(50, 50, 25)
	return p
}

// allMutators returns one mutator of every type, indexed by MutatorType.
func allMutators() []*Mutator {
	return []*Mutator{
		MutatorClipRect:       NewClipRectMutator(geom.MakeLTRB(0, 0, 10, 10)),
		MutatorClipRRect:      NewClipRRectMutator(geom.MakeRRectXY(geom.MakeLTRB(0, 0, 10, 10), 2, 2)),
		MutatorClipRSE:        NewClipRSEMutator(geom.MakeRSuperellipseXY(geom.MakeLTRB(0, 0, 10, 10), 3, 3)),
		MutatorClipPath:       NewClipPathMutator(testPath()),
		MutatorTransform:      NewTransformMutator(geom.Translate(1, 2)),
		MutatorOpacity:        NewOpacityMutator(128),
		MutatorBackdropFilter: NewBackdropFilterMutator(filter.NewBlur(4, 4), geom.MakeLTRB(0, 0, 20, 20)),
	}
}

// accessors calls each typed accessor, indexed by the type it belongs to.
var accessors = []func(m *Mutator){
	MutatorClipRect:       func(m *Mutator) { m.Rect() },
	MutatorClipRRect:      func(m *Mutator) { m.RRect() },
	MutatorClipRSE:        func(m *Mutator) { m.RSE() },
	MutatorClipPath:       func(m *Mutator) { m.Path() },
	MutatorTransform:      func(m *Mutator) { m.Matrix() },
	MutatorOpacity:        func(m *Mutator) { m.Alpha() },
	MutatorBackdropFilter: func(m *Mutator) { m.FilterMutation() },
}

func callAccessor(access func(*Mutator), m *Mutator) (err error) {
	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(error)
			if !ok {
				panic(r)
			}
			err = e
		}
	}()
	access(m)
	return nil
}

func TestMutatorAccessorTypeCheck(t *testing.T) {
	for _, m := range allMutators() {
		for typ, access := range accessors {
			t.Run(m.Type().String()+"/"+MutatorType(typ).String(), func(t *testing.T) {
				err := callAccessor(access, m)
				if MutatorType(typ) == m.Type() {
					if err != nil {
						t.Fatalf("matching accessor failed: %v", err)
					}
					return
				}
				if !errors.Is(err, ErrTypeMismatch) {
					t.Fatalf("err = %v, want ErrTypeMismatch", err)
				}
				var mismatch *TypeMismatchError
				if !errors.As(err, &mismatch) {
					t.Fatalf("err = %T, want *TypeMismatchError", err)
				}
				if mismatch.Got != m.Type() || mismatch.Want != MutatorType(typ) {
					t.Errorf("mismatch = %+v", mismatch)
				}
			})
		}
	}
}

func TestMutatorSecondaryAccessors(t *testing.T) {
	rse := allMutators()[MutatorClipRSE]
	if err := callAccessor(func(m *Mutator) { m.RSEApproximation() }, rse); err != nil {
		t.Errorf("RSEApproximation() on RSE: %v", err)
	}
	if err := callAccessor(func(m *Mutator) { m.RSEApproximation() }, allMutators()[MutatorClipRect]); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("RSEApproximation() on rect: err = %v, want ErrTypeMismatch", err)
	}
	if err := callAccessor(func(m *Mutator) { m.AlphaFloat() }, allMutators()[MutatorTransform]); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("AlphaFloat() on transform: err = %v, want ErrTypeMismatch", err)
	}

	approx := rse.RSEApproximation()
	if approx.Rect != rse.RSE().Bounds || approx.Radii != rse.RSE().Radii {
		t.Errorf("RSEApproximation() = %+v, want bounds and radii of %+v", approx, rse.RSE())
	}
}

func TestMutatorAlpha(t *testing.T) {
	tests := []struct {
		alpha uint8
		want  float64
	}{
		{0, 0},
		{255, 1},
		{128, 128.0 / 255},
	}
	for _, tt := range tests {
		m := NewOpacityMutator(tt.alpha)
		if m.Alpha() != tt.alpha {
			t.Errorf("Alpha() = %d, want %d", m.Alpha(), tt.alpha)
		}
		if got := m.AlphaFloat(); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("AlphaFloat() = %v, want %v", got, tt.want)
		}
	}
}

func TestMutatorIsClipType(t *testing.T) {
	want := map[MutatorType]bool{
		MutatorClipRect:       true,
		MutatorClipRRect:      true,
		MutatorClipRSE:        true,
		MutatorClipPath:       true,
		MutatorTransform:      false,
		MutatorOpacity:        false,
		MutatorBackdropFilter: false,
	}
	for _, m := range allMutators() {
		if got := m.IsClipType(); got != want[m.Type()] {
			t.Errorf("%v.IsClipType() = %v, want %v", m.Type(), got, want[m.Type()])
		}
	}
}

func TestMutatorEqual(t *testing.T) {
	a := allMutators()
	b := allMutators()
	for i := range a {
		if a[i] == b[i] {
			t.Fatal("allMutators must return distinct instances")
		}
		if !a[i].Equal(b[i]) {
			t.Errorf("%v: independently built mutators should be equal", a[i].Type())
		}
		for j := range b {
			if i != j && a[i].Equal(b[j]) {
				t.Errorf("%v equals %v", a[i].Type(), b[j].Type())
			}
		}
	}

	tests := []struct {
		name string
		a, b *Mutator
	}{
		{"rect", NewClipRectMutator(geom.MakeLTRB(0, 0, 1, 1)), NewClipRectMutator(geom.MakeLTRB(0, 0, 1, 2))},
		{"opacity", NewOpacityMutator(1), NewOpacityMutator(2)},
		{"transform", NewTransformMutator(geom.Translate(1, 0)), NewTransformMutator(geom.Translate(0, 1))},
		{"filter", NewBackdropFilterMutator(filter.NewBlur(1, 1), geom.MakeLTRB(0, 0, 1, 1)), NewBackdropFilterMutator(filter.NewBlur(2, 2), geom.MakeLTRB(0, 0, 1, 1))},
		{"filter rect", NewBackdropFilterMutator(filter.NewBlur(1, 1), geom.MakeLTRB(0, 0, 1, 1)), NewBackdropFilterMutator(filter.NewBlur(1, 1), geom.MakeLTRB(0, 0, 2, 2))},
		{"nil", NewOpacityMutator(1), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.a.Equal(tt.b) {
				t.Errorf("%v should not equal %v", tt.a, tt.b)
			}
		})
	}
}

func TestClipPathMutatorCopiesPath(t *testing.T) {
	p := testPath()
	m := NewClipPathMutator(p)
	p.LineTo(500, 500)
	if m.Path().Equal(p) {
		t.Error("mutator path changed after the caller modified its path")
	}
}

func TestMutatorTypeString(t *testing.T) {
	tests := []struct {
		typ  MutatorType
		want string
	}{
		{MutatorClipRect, "ClipRect"},
		{MutatorClipRSE, "ClipRSE"},
		{MutatorBackdropFilter, "BackdropFilter"},
		{MutatorType(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("MutatorType(%d).String() = %q, want %q", tt.typ, got, tt.want)
		}
	}
	if got := NewOpacityMutator(128).String(); got != "Opacity(128)" {
		t.Errorf("String() = %q, want Opacity(128)", got)
	}
}
