package flow

import (
	"errors"
	"math"
	"testing"

	"github.com/gogpu/flow/filter"
	"github.com/gogpu/flow/geom"
)

// pushes is a sequence of stack operations covering every mutator type.
var pushes = []func(s *MutatorsStack){
	func(s *MutatorsStack) { s.PushClipRect(geom.MakeLTRB(0, 0, 100, 100)) },
	func(s *MutatorsStack) { s.PushTransform(geom.Translate(10, 10)) },
	func(s *MutatorsStack) { s.PushOpacity(200) },
	func(s *MutatorsStack) { s.PushClipRRect(geom.MakeRRectXY(geom.MakeLTRB(0, 0, 50, 50), 5, 5)) },
	func(s *MutatorsStack) { s.PushBackdropFilter(filter.NewBlur(3, 3), geom.MakeLTRB(0, 0, 40, 40)) },
	func(s *MutatorsStack) { s.PushClipRSE(geom.MakeRSuperellipseXY(geom.MakeLTRB(0, 0, 30, 30), 4, 4)) },
	func(s *MutatorsStack) { s.PushClipPath(testPath()) },
}

func TestMutatorsStackPopTo(t *testing.T) {
	for k := 0; k <= len(pushes); k++ {
		var full MutatorsStack
		for _, push := range pushes {
			push(&full)
		}
		if err := full.PopTo(k); err != nil {
			t.Fatalf("PopTo(%d) = %v", k, err)
		}

		var prefix MutatorsStack
		for _, push := range pushes[:k] {
			push(&prefix)
		}
		if !full.Equal(&prefix) {
			t.Errorf("PopTo(%d): stack differs from pushing the first %d mutators", k, k)
		}
		if full.Count() != k {
			t.Errorf("PopTo(%d): Count() = %d", k, full.Count())
		}
	}
}

func TestMutatorsStackPopToInvalid(t *testing.T) {
	var s MutatorsStack
	s.PushOpacity(1)
	s.PushOpacity(2)
	for _, n := range []int{3, -1} {
		if err := s.PopTo(n); !errors.Is(err, ErrInvalidPopCount) {
			t.Errorf("PopTo(%d) = %v, want ErrInvalidPopCount", n, err)
		}
	}
	if s.Count() != 2 {
		t.Errorf("Count() = %d after failed PopTo, want 2", s.Count())
	}
	if err := s.PopTo(2); err != nil {
		t.Errorf("PopTo(Count()) = %v, want nil", err)
	}
}

func TestMutatorsStackPop(t *testing.T) {
	var s MutatorsStack
	s.PushClipRect(geom.MakeLTRB(0, 0, 10, 10))
	s.PushOpacity(128)

	if err := s.Pop(); err != nil {
		t.Fatalf("Pop() = %v", err)
	}
	if s.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", s.Count())
	}
	if s.At(0).Type() != MutatorClipRect {
		t.Errorf("remaining mutator = %v, want ClipRect", s.At(0).Type())
	}

	if err := s.Pop(); err != nil {
		t.Fatalf("Pop() on single entry = %v", err)
	}
	if !s.IsEmpty() {
		t.Fatal("stack should be empty")
	}
	if err := s.Pop(); !errors.Is(err, ErrEmptyStack) {
		t.Errorf("Pop() on empty stack = %v, want ErrEmptyStack", err)
	}
}

func TestMutatorsStackIteration(t *testing.T) {
	var s MutatorsStack
	s.PushClipRect(geom.MakeLTRB(0, 0, 10, 10))
	s.PushTransform(geom.Identity())
	s.PushOpacity(1)

	var forward []MutatorType
	for i, m := range s.All() {
		if m != s.At(i) {
			t.Errorf("All() index %d does not match At", i)
		}
		forward = append(forward, m.Type())
	}
	var backward []MutatorType
	for _, m := range s.Backward() {
		backward = append(backward, m.Type())
	}

	wantForward := []MutatorType{MutatorClipRect, MutatorTransform, MutatorOpacity}
	for i := range wantForward {
		if forward[i] != wantForward[i] {
			t.Errorf("All()[%d] = %v, want %v", i, forward[i], wantForward[i])
		}
		if backward[len(backward)-1-i] != wantForward[i] {
			t.Errorf("Backward() is not the reverse of All(): %v vs %v", backward, forward)
		}
	}
}

func TestMutatorsStackEqual(t *testing.T) {
	var a, b MutatorsStack
	for _, push := range pushes {
		push(&a)
		push(&b)
	}
	if !a.Equal(&b) {
		t.Error("stacks with identical push sequences should be equal")
	}

	seq := []*Mutator{
		NewClipRectMutator(geom.MakeLTRB(0, 0, 100, 100)),
		NewTransformMutator(geom.Translate(10, 10)),
	}
	var c MutatorsStack
	c.PushClipRect(geom.MakeLTRB(0, 0, 100, 100))
	c.PushTransform(geom.Translate(10, 10))
	if !c.EqualMutators(seq) {
		t.Error("stack should equal the explicit mutator sequence")
	}
	if c.EqualMutators(seq[:1]) {
		t.Error("stack should not equal a shorter sequence")
	}
	if !NewMutatorsStack(seq...).Equal(&c) {
		t.Error("NewMutatorsStack(seq) should equal the pushed stack")
	}

	c.PushOpacity(3)
	if a.Equal(&c) || c.Equal(&a) {
		t.Error("different stacks compare equal")
	}

	var empty MutatorsStack
	if !empty.Equal(nil) {
		t.Error("empty stack should equal nil")
	}
}

func TestMutatorsStackNil(t *testing.T) {
	var s *MutatorsStack
	if s.Count() != 0 || !s.IsEmpty() {
		t.Errorf("nil stack: Count() = %d, IsEmpty() = %v", s.Count(), s.IsEmpty())
	}
	if !s.Equal(nil) || !s.Equal(&MutatorsStack{}) {
		t.Error("nil stack should equal an empty stack")
	}
	full := NewMutatorsStack()
	full.PushOpacity(128)
	if s.Equal(full) || full.Equal(s) {
		t.Error("nil stack should not equal a non-empty stack")
	}
	for range s.All() {
		t.Fatal("All() yielded from a nil stack")
	}
	for range s.Backward() {
		t.Fatal("Backward() yielded from a nil stack")
	}
	if f := s.Flatten(); f.HasClip || f.Opacity != 1 || !f.Matrix.IsIdentity() {
		t.Errorf("Flatten() of nil stack = %+v", f)
	}
}

func TestMutatorsStackCloneIsIndependent(t *testing.T) {
	var s MutatorsStack
	s.PushClipRect(geom.MakeLTRB(0, 0, 10, 10))
	s.PushOpacity(10)

	clone := s.Clone()
	if clone.At(0) != s.At(0) {
		t.Error("Clone should share mutator instances")
	}

	_ = s.Pop()
	s.PushTransform(geom.Scale(2, 2))
	if clone.Count() != 2 || clone.At(1).Type() != MutatorOpacity {
		t.Errorf("clone changed after modifying the original: %v", clone.At(1))
	}

	clone.PushOpacity(20)
	if s.Count() != 2 {
		t.Errorf("original Count() = %d after pushing to the clone, want 2", s.Count())
	}
}

func TestMutatorsStackFlatten(t *testing.T) {
	var s MutatorsStack
	s.PushTransform(geom.Translate(10, 0))
	s.PushClipRect(geom.MakeLTRB(0, 0, 50, 50))
	s.PushOpacity(51)
	s.PushTransform(geom.Scale(2, 2))
	s.PushClipRect(geom.MakeLTRB(0, 0, 100, 10))
	s.PushOpacity(128)
	s.PushBackdropFilter(filter.NewBlur(2, 2), geom.MakeLTRB(1, 2, 3, 4))

	f := s.Flatten()

	if want := geom.Translate(10, 0).Multiply(geom.Scale(2, 2)); !f.Matrix.Equal(want) {
		t.Errorf("Matrix = %v, want %v", f.Matrix, want)
	}
	// (10,0,60,50) intersected with (10,0,210,20).
	if want := geom.MakeLTRB(10, 0, 60, 20); !f.HasClip || f.ClipBounds != want {
		t.Errorf("ClipBounds = %v (has %v), want %v", f.ClipBounds, f.HasClip, want)
	}
	if want := (51.0 / 255) * (128.0 / 255); math.Abs(f.Opacity-want) > 1e-12 {
		t.Errorf("Opacity = %v, want %v", f.Opacity, want)
	}
	if len(f.Filters) != 1 || f.Filters[0].FilterRect != geom.MakeLTRB(1, 2, 3, 4) {
		t.Errorf("Filters = %+v", f.Filters)
	}

	var empty MutatorsStack
	if f := empty.Flatten(); f.HasClip || f.Opacity != 1 || !f.Matrix.IsIdentity() {
		t.Errorf("empty Flatten() = %+v", f)
	}
}
