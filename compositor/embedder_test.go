// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compositor

import (
	"encoding/json"
	"errors"
	"image/color"
	"strings"
	"testing"

	"github.com/gogpu/flow"
	"github.com/gogpu/flow/displaylist"
	"github.com/gogpu/flow/filter"
	"github.com/gogpu/flow/geom"
	"github.com/gogpu/flow/internal/merger"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// mockDevice implements gpucontext.Device for testing.
type mockDevice struct{}

func (m *mockDevice) Poll(wait bool) {}
func (m *mockDevice) Destroy()       {}

// mockQueue implements gpucontext.Queue for testing.
type mockQueue struct{}

// mockAdapter implements gpucontext.Adapter for testing.
type mockAdapter struct{}

// mockProvider implements gpucontext.DeviceProvider for testing.
type mockProvider struct {
	format gputypes.TextureFormat
}

func (m *mockProvider) Device() gpucontext.Device             { return &mockDevice{} }
func (m *mockProvider) Queue() gpucontext.Queue               { return &mockQueue{} }
func (m *mockProvider) Adapter() gpucontext.Adapter           { return &mockAdapter{} }
func (m *mockProvider) SurfaceFormat() gputypes.TextureFormat { return m.format }
func (m *mockProvider) AdapterInfo() gpucontext.AdapterInfo   { return gpucontext.AdapterInfo{} }

// recordingPresenter keeps every presented layer stack.
type recordingPresenter struct {
	presented [][]Layer
	collected []int64
}

func (p *recordingPresenter) PresentLayers(_ int64, layers []Layer) error {
	p.presented = append(p.presented, layers)
	return nil
}

func (p *recordingPresenter) CollectView(viewID int64) {
	p.collected = append(p.collected, viewID)
}

func (p *recordingPresenter) last() []Layer {
	if len(p.presented) == 0 {
		return nil
	}
	return p.presented[len(p.presented)-1]
}

// recordingAllocator hands out memory frames and remembers them.
type recordingAllocator struct {
	frames  []*flow.SurfaceFrame
	formats []gputypes.TextureFormat
	err     error
}

func (a *recordingAllocator) AllocateOverlay(_ gpucontext.DeviceProvider, size geom.ISize, format gputypes.TextureFormat) (flow.Frame, error) {
	if a.err != nil {
		return nil, a.err
	}
	f := flow.NewSurfaceFrame(size, format, nil)
	a.frames = append(a.frames, f)
	a.formats = append(a.formats, format)
	return f, nil
}

var opaque = displaylist.FillPaint(color.NRGBA{R: 255, A: 255})

func viewAt(left, top, size float64) *flow.EmbeddedViewParams {
	return flow.NewEmbeddedViewParams(geom.Translate(left, top), geom.Size{Width: size, Height: size}, nil)
}

var frameSize = geom.ISize{Width: 200, Height: 200}

func newFrame() *flow.SurfaceFrame {
	return flow.NewSurfaceFrame(frameSize, gputypes.TextureFormatRGBA8Unorm, nil)
}

func TestEmbedderPrerollLastWins(t *testing.T) {
	e := New(nil)
	e.BeginFrame(nil, nil)

	first := viewAt(0, 0, 10)
	second := viewAt(50, 50, 20)
	e.PrerollCompositeEmbeddedView(7, first)
	e.PrerollCompositeEmbeddedView(7, second)
	e.PrepareFlutterView(frameSize, 1)

	if _, err := e.CompositeEmbeddedView(7); err != nil {
		t.Fatalf("CompositeEmbeddedView(7) = %v", err)
	}
	got, ok := e.ViewParams(7)
	if !ok || got != second {
		t.Errorf("ViewParams(7) = %v, want the second registration", got)
	}
	if order := e.CompositionOrder(); len(order) != 1 || order[0] != 7 {
		t.Errorf("CompositionOrder() = %v, want [7]", order)
	}

	_, err := e.CompositeEmbeddedView(8)
	if !errors.Is(err, flow.ErrUnknownView) {
		t.Fatalf("CompositeEmbeddedView(8) = %v, want ErrUnknownView", err)
	}
	var unknown *flow.UnknownViewError
	if !errors.As(err, &unknown) || unknown.ViewID != 8 {
		t.Errorf("err = %#v, want *UnknownViewError for 8", err)
	}
}

func TestEmbedderCompositionOrder(t *testing.T) {
	e := New(nil)
	e.BeginFrame(nil, nil)
	for _, id := range []int64{3, 1, 3, 2, 1} {
		e.PrerollCompositeEmbeddedView(id, viewAt(0, 0, 10))
	}
	want := []int64{3, 1, 2}
	got := e.CompositionOrder()
	if len(got) != len(want) {
		t.Fatalf("CompositionOrder() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("CompositionOrder() = %v, want %v", got, want)
		}
	}

	e.CancelFrame()
	if len(e.CompositionOrder()) != 0 {
		t.Error("CancelFrame should clear the composition order")
	}
	if _, err := e.CompositeEmbeddedView(3); !errors.Is(err, flow.ErrUnknownView) {
		t.Errorf("CompositeEmbeddedView after CancelFrame = %v, want ErrUnknownView", err)
	}
}

func TestEmbedderUsedThisFrame(t *testing.T) {
	e := New(nil)
	if e.UsedThisFrame() {
		t.Fatal("new embedder reports used")
	}
	for range 3 {
		e.BeginFrame(nil, nil)
		if !e.UsedThisFrame() {
			t.Fatal("UsedThisFrame() = false after BeginFrame")
		}
		e.PrepareFlutterView(frameSize, 1)
		if err := e.SubmitFlutterView(0, nil, nil, newFrame()); err != nil {
			t.Fatalf("SubmitFlutterView() = %v", err)
		}
		e.EndFrame(false, nil)
		if e.UsedThisFrame() {
			t.Fatal("UsedThisFrame() = true after EndFrame")
		}
	}
}

func TestEmbedderSubmitWithoutViews(t *testing.T) {
	p := &recordingPresenter{}
	e := New(p)
	e.BeginFrame(nil, nil)
	e.PrepareFlutterView(frameSize, 2)

	frame := newFrame()
	frame.Canvas().DrawRect(geom.MakeLTRB(0, 0, 10, 10), opaque)
	if err := e.SubmitFlutterView(0, nil, nil, frame); err != nil {
		t.Fatalf("SubmitFlutterView() = %v", err)
	}
	if !frame.Submitted() {
		t.Error("root frame not submitted")
	}
	layers := p.last()
	if len(layers) != 1 || layers[0].Kind != LayerBackingStore || layers[0].Frame != frame {
		t.Errorf("layers = %+v, want the root backing store only", layers)
	}
}

func TestEmbedderSubmitSplitsOverlay(t *testing.T) {
	p := &recordingPresenter{}
	alloc := &recordingAllocator{}
	e := New(p, WithSurfaceAllocator(alloc))

	e.BeginFrame(nil, nil)
	e.PrerollCompositeEmbeddedView(1, viewAt(10, 10, 50)) // (10,10,60,60)
	e.PrepareFlutterView(frameSize, 1)

	frame := newFrame()
	c, err := e.CompositeEmbeddedView(1)
	if err != nil {
		t.Fatal(err)
	}
	c.DrawRect(geom.MakeLTRB(0, 0, 30, 30), opaque)      // partly over the view
	c.DrawRect(geom.MakeLTRB(100, 100, 120, 120), opaque) // clear of the view

	if err := e.SubmitFlutterView(0, nil, nil, frame); err != nil {
		t.Fatalf("SubmitFlutterView() = %v", err)
	}
	if len(alloc.frames) != 1 {
		t.Fatalf("allocated %d overlays, want 1", len(alloc.frames))
	}
	ov := alloc.frames[0]
	if !ov.Submitted() || !frame.Submitted() {
		t.Fatal("root and overlay must both be submitted")
	}
	if want := geom.NewRegion(geom.MakeILTRB(10, 10, 30, 30)); !ov.DisplayList().Region().Equal(want) {
		t.Errorf("overlay region = %v, want %v", ov.DisplayList().Region().Rects(), want.Rects())
	}
	if !frame.DisplayList().Region().Contains(geom.MakeILTRB(100, 100, 120, 120)) {
		t.Error("root frame is missing the content clear of the view")
	}

	layers := p.last()
	kinds := make([]LayerKind, len(layers))
	for i, l := range layers {
		kinds[i] = l.Kind
	}
	want := []LayerKind{LayerBackingStore, LayerPlatformView, LayerBackingStore}
	if len(kinds) != len(want) {
		t.Fatalf("layer kinds = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("layer kinds = %v, want %v", kinds, want)
		}
	}
	if layers[1].ViewID != 1 || layers[2].Frame != ov {
		t.Errorf("layers = %+v", layers)
	}
	if layers[2].Bounds != geom.MakeLTRB(10, 10, 30, 30) {
		t.Errorf("overlay bounds = %v", layers[2].Bounds)
	}
}

func TestEmbedderOverlapWithLowerViews(t *testing.T) {
	alloc := &recordingAllocator{}
	e := New(nil, WithSurfaceAllocator(alloc))

	e.BeginFrame(nil, nil)
	e.PrerollCompositeEmbeddedView(1, viewAt(0, 0, 50))
	e.PrerollCompositeEmbeddedView(2, viewAt(100, 100, 50))
	e.PrepareFlutterView(frameSize, 1)

	// Content after view 1 misses every view.
	c1, _ := e.CompositeEmbeddedView(1)
	c1.DrawRect(geom.MakeLTRB(60, 60, 90, 90), opaque)
	// Content after view 2 covers view 1 only.
	c2, _ := e.CompositeEmbeddedView(2)
	c2.DrawRect(geom.MakeLTRB(10, 10, 20, 20), opaque)

	if err := e.SubmitFlutterView(0, nil, nil, newFrame()); err != nil {
		t.Fatal(err)
	}
	if len(alloc.frames) != 1 {
		t.Fatalf("allocated %d overlays, want 1", len(alloc.frames))
	}
	if want := geom.NewRegion(geom.MakeILTRB(10, 10, 20, 20)); !alloc.frames[0].DisplayList().Region().Equal(want) {
		t.Errorf("overlay region = %v", alloc.frames[0].DisplayList().Region().Rects())
	}

	snap := e.LastSnapshot()
	if snap == nil || len(snap.Views) != 2 {
		t.Fatalf("snapshot = %+v", snap)
	}
	if snap.Views[0].Overlay || !snap.Views[1].Overlay {
		t.Errorf("overlay flags = %v, %v; want false, true", snap.Views[0].Overlay, snap.Views[1].Overlay)
	}
}

func TestEmbedderOverlayFormat(t *testing.T) {
	tests := []struct {
		name string
		ctx  gpucontext.DeviceProvider
		want gputypes.TextureFormat
	}{
		{"frame format", nil, gputypes.TextureFormatRGBA8Unorm},
		{"surface format", &mockProvider{format: gputypes.TextureFormatBGRA8Unorm}, gputypes.TextureFormatBGRA8Unorm},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alloc := &recordingAllocator{}
			e := New(nil, WithSurfaceAllocator(alloc))
			e.BeginFrame(tt.ctx, nil)
			e.PrerollCompositeEmbeddedView(1, viewAt(0, 0, 50))
			e.PrepareFlutterView(frameSize, 1)
			c, _ := e.CompositeEmbeddedView(1)
			c.DrawRect(geom.MakeLTRB(0, 0, 10, 10), opaque)
			if err := e.SubmitFlutterView(0, tt.ctx, nil, newFrame()); err != nil {
				t.Fatal(err)
			}
			if len(alloc.formats) != 1 || alloc.formats[0] != tt.want {
				t.Errorf("formats = %v, want [%v]", alloc.formats, tt.want)
			}
		})
	}
}

func TestEmbedderAllocationFailureFallsBackToRoot(t *testing.T) {
	errNoSurface := errors.New("no surface")
	p := &recordingPresenter{}
	e := New(p, WithSurfaceAllocator(&recordingAllocator{err: errNoSurface}))

	e.BeginFrame(nil, nil)
	e.PrerollCompositeEmbeddedView(1, viewAt(0, 0, 50))
	e.PrepareFlutterView(frameSize, 1)
	c, _ := e.CompositeEmbeddedView(1)
	c.DrawRect(geom.MakeLTRB(0, 0, 10, 10), opaque)

	frame := newFrame()
	err := e.SubmitFlutterView(0, nil, nil, frame)
	if !errors.Is(err, errNoSurface) {
		t.Fatalf("SubmitFlutterView() = %v, want the allocation error", err)
	}
	if !frame.Submitted() {
		t.Fatal("root frame must be submitted even when overlays fail")
	}
	if !frame.DisplayList().Region().Contains(geom.MakeILTRB(0, 0, 10, 10)) {
		t.Error("overlay content should fall back to the root frame")
	}
	if n := len(p.last()); n != 2 {
		t.Errorf("presented %d layers, want root and platform view", n)
	}
}

// failingSlice records like a display list slice but fails to report its
// region or to render.
type failingSlice struct {
	*flow.DisplayListEmbedderViewSlice
	regionErr error
	renderErr error
}

func (s *failingSlice) Region() (geom.Region, error) {
	if s.regionErr != nil {
		return geom.Region{}, s.regionErr
	}
	return s.DisplayListEmbedderViewSlice.Region()
}

func (s *failingSlice) RenderInto(c displaylist.Canvas) error {
	if s.renderErr != nil {
		return s.renderErr
	}
	return s.DisplayListEmbedderViewSlice.RenderInto(c)
}

func TestEmbedderSubmitsFramesWhenSliceFails(t *testing.T) {
	errBoom := errors.New("boom")
	tests := []struct {
		name     string
		slice    failingSlice
		overlays int
	}{
		{"region", failingSlice{regionErr: errBoom}, 0},
		{"render", failingSlice{renderErr: errBoom}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alloc := &recordingAllocator{}
			e := New(nil, WithSurfaceAllocator(alloc), WithSliceFactory(func(bounds geom.Rect) flow.EmbedderViewSlice {
				s := tt.slice
				s.DisplayListEmbedderViewSlice = flow.NewDisplayListEmbedderViewSlice(bounds)
				return &s
			}))

			e.BeginFrame(nil, nil)
			e.PrerollCompositeEmbeddedView(1, viewAt(0, 0, 50))
			e.PrepareFlutterView(frameSize, 1)
			c, err := e.CompositeEmbeddedView(1)
			if err != nil {
				t.Fatalf("CompositeEmbeddedView(1) = %v", err)
			}
			c.DrawRect(geom.MakeLTRB(0, 0, 10, 10), opaque)

			frame := newFrame()
			err = e.SubmitFlutterView(0, nil, nil, frame)
			if !errors.Is(err, errBoom) {
				t.Fatalf("SubmitFlutterView() = %v, want boom", err)
			}
			if !frame.Submitted() {
				t.Error("root frame not submitted")
			}
			if len(alloc.frames) != tt.overlays {
				t.Fatalf("allocated %d overlays, want %d", len(alloc.frames), tt.overlays)
			}
			for i, f := range alloc.frames {
				if !f.Submitted() {
					t.Errorf("overlay %d not submitted", i)
				}
			}
		})
	}
}

func TestEmbedderRootCanvas(t *testing.T) {
	root := displaylist.NewBuilder(frameSize.Rect())
	e := New(nil, WithRootCanvas(root))
	if e.RootCanvas() != root {
		t.Fatal("RootCanvas() should return the configured canvas")
	}

	e.BeginFrame(nil, nil)
	e.PrerollCompositeEmbeddedView(1, viewAt(0, 0, 10))
	e.PrepareFlutterView(frameSize, 1)
	c, _ := e.CompositeEmbeddedView(1)
	c.DrawRect(geom.MakeLTRB(150, 150, 160, 160), opaque)

	frame := newFrame()
	if err := e.SubmitFlutterView(0, nil, nil, frame); err != nil {
		t.Fatal(err)
	}
	if frame.DisplayList().OpCount() != 0 {
		t.Error("content went to the frame instead of the root canvas")
	}
	if !root.Build().Region().Contains(geom.MakeILTRB(150, 150, 160, 160)) {
		t.Error("root canvas is missing the slice content")
	}
}

func TestEmbedderCollectView(t *testing.T) {
	p := &recordingPresenter{}
	e := New(p)
	e.BeginFrame(nil, nil)
	e.PrerollCompositeEmbeddedView(4, viewAt(0, 0, 10))

	e.CollectView(99)
	if len(p.collected) != 0 {
		t.Errorf("unknown view reached the presenter: %v", p.collected)
	}

	e.CollectView(4)
	if len(p.collected) != 1 || p.collected[0] != 4 {
		t.Errorf("collected = %v, want [4]", p.collected)
	}
	if _, err := e.CompositeEmbeddedView(4); !errors.Is(err, flow.ErrUnknownView) {
		t.Errorf("CompositeEmbeddedView of collected view = %v, want ErrUnknownView", err)
	}

	e.CollectView(4)
	if len(p.collected) != 1 {
		t.Error("a view must be collected only once")
	}
}

func TestEmbedderPushFilterToVisitedViews(t *testing.T) {
	e := New(nil)
	e.BeginFrame(nil, nil)
	a := viewAt(0, 0, 10)
	b := viewAt(20, 20, 10)
	e.PrerollCompositeEmbeddedView(1, a)
	e.PrerollCompositeEmbeddedView(2, b)
	bounds := a.FinalBoundingRect()

	e.PushVisitedPlatformView(1)
	e.PushVisitedPlatformView(3) // never prerolled
	e.PushFilterToVisitedPlatformViews(filter.NewBlur(5, 5), geom.MakeLTRB(0, 0, 100, 100))

	if a.MutatorsStack().Count() != 1 {
		t.Fatalf("visited view has %d mutators, want 1", a.MutatorsStack().Count())
	}
	if m := a.MutatorsStack().At(0); m.Type() != flow.MutatorBackdropFilter {
		t.Errorf("pushed mutator = %v", m)
	}
	if a.FinalBoundingRect() != bounds {
		t.Error("pushing a filter must not change the bounding rect")
	}
	if b.MutatorsStack().Count() != 0 {
		t.Error("unvisited view received the filter")
	}

	e.BeginFrame(nil, nil)
	e.PushFilterToVisitedPlatformViews(filter.NewBlur(1, 1), geom.MakeLTRB(0, 0, 1, 1))
	if a.MutatorsStack().Count() != 1 {
		t.Error("visited views must reset with the frame")
	}
}

// frameStep drives one frame with a single platform view and returns the
// post-preroll result.
func frameStep(t *testing.T, e *Embedder, m flow.RasterThreadMerger, views int) flow.PostPrerollResult {
	t.Helper()
	e.BeginFrame(nil, m)
	for i := range views {
		e.PrerollCompositeEmbeddedView(int64(i), viewAt(0, 0, 10))
	}
	result := e.PostPrerollAction(m)
	if result != flow.PostPrerollSkipAndRetryFrame {
		e.PrepareFlutterView(frameSize, 1)
		if err := e.SubmitFlutterView(0, nil, nil, newFrame()); err != nil {
			t.Fatalf("SubmitFlutterView() = %v", err)
		}
	}
	e.EndFrame(result == flow.PostPrerollResubmitFrame, m)
	return result
}

func TestEmbedderThreadMergingSequence(t *testing.T) {
	m := merger.New()
	e := New(nil, WithThreadMerging(true), WithMergedLeaseDuration(3))
	if !e.SupportsDynamicThreadMerging() {
		t.Fatal("SupportsDynamicThreadMerging() = false")
	}

	if got := frameStep(t, e, m, 0); got != flow.PostPrerollSuccess {
		t.Fatalf("frame without views = %v, want Success", got)
	}
	if m.IsMerged() {
		t.Fatal("threads merged without platform views")
	}

	want := []flow.PostPrerollResult{
		flow.PostPrerollSkipAndRetryFrame,
		flow.PostPrerollResubmitFrame,
		flow.PostPrerollSuccess,
		flow.PostPrerollSuccess,
	}
	for i, w := range want {
		if got := frameStep(t, e, m, 1); got != w {
			t.Fatalf("frame %d = %v, want %v", i, got, w)
		}
		if !m.IsMerged() {
			t.Fatalf("frame %d: threads not merged", i)
		}
	}
	if m.Lease() != 3 {
		t.Errorf("Lease() = %d, want 3", m.Lease())
	}
}

func TestEmbedderThreadMergingDisabled(t *testing.T) {
	m := merger.New()
	e := New(nil)
	if got := frameStep(t, e, m, 2); got != flow.PostPrerollSuccess {
		t.Errorf("PostPrerollAction() = %v, want Success", got)
	}
	if m.IsMerged() {
		t.Error("merger touched with merging disabled")
	}
}

func TestEmbedderSnapshotJSON(t *testing.T) {
	e := New(nil)
	if e.LastSnapshot() != nil {
		t.Fatal("snapshot before any submit")
	}
	e.BeginFrame(nil, nil)
	var stack flow.MutatorsStack
	stack.PushClipRect(geom.MakeLTRB(0, 0, 30, 30))
	stack.PushOpacity(0)
	e.PrerollCompositeEmbeddedView(7, flow.NewEmbeddedViewParams(geom.Translate(5, 5), geom.Size{Width: 40, Height: 40}, &stack))
	e.PrepareFlutterView(frameSize, 2)
	if err := e.SubmitFlutterView(3, nil, nil, newFrame()); err != nil {
		t.Fatal(err)
	}
	first := e.LastSnapshot()

	data, err := json.Marshal(first)
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	for _, want := range []string{`"viewId":7`, `"flutterViewId":3`, `"devicePixelRatio":2`, `"hasClip":true`, `"clipRight":30`, `"visible":false`} {
		if !strings.Contains(s, want) {
			t.Errorf("snapshot JSON %s is missing %s", s, want)
		}
	}

	e.BeginFrame(nil, nil)
	e.PrepareFlutterView(frameSize, 2)
	if err := e.SubmitFlutterView(3, nil, nil, newFrame()); err != nil {
		t.Fatal(err)
	}
	if second := e.LastSnapshot(); second.FrameID <= first.FrameID {
		t.Errorf("FrameID %d not after %d", second.FrameID, first.FrameID)
	}
}

func TestEmbedderTeardown(t *testing.T) {
	p := &recordingPresenter{}
	e := New(p)
	e.BeginFrame(nil, nil)
	e.PrerollCompositeEmbeddedView(1, viewAt(0, 0, 10))
	e.Teardown()

	if e.UsedThisFrame() {
		t.Error("UsedThisFrame() after Teardown")
	}
	e.CollectView(1)
	if len(p.collected) != 0 {
		t.Error("Teardown should forget all views")
	}
}

func TestLayerKindString(t *testing.T) {
	tests := []struct {
		kind LayerKind
		want string
	}{
		{LayerBackingStore, "BackingStore"},
		{LayerPlatformView, "PlatformView"},
		{LayerKind(9), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("LayerKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestEmbedderParallelMatchesSequential(t *testing.T) {
	draw := func(e *Embedder, alloc *recordingAllocator) []geom.Region {
		e.BeginFrame(nil, nil)
		for i := range 6 {
			e.PrerollCompositeEmbeddedView(int64(i), viewAt(float64(i*25), float64(i*25), 40))
		}
		e.PrepareFlutterView(frameSize, 1)
		for i := range 6 {
			c, err := e.CompositeEmbeddedView(int64(i))
			if err != nil {
				t.Fatal(err)
			}
			c.DrawRect(geom.MakeLTRB(0, 0, float64(i*25+30), float64(i*25+30)), opaque)
		}
		if err := e.SubmitFlutterView(0, nil, nil, newFrame()); err != nil {
			t.Fatal(err)
		}
		regions := make([]geom.Region, len(alloc.frames))
		for i, f := range alloc.frames {
			regions[i] = f.DisplayList().Region()
		}
		return regions
	}

	seqAlloc := &recordingAllocator{}
	want := draw(New(nil, WithSurfaceAllocator(seqAlloc)), seqAlloc)

	parAlloc := &recordingAllocator{}
	par := New(nil, WithSurfaceAllocator(parAlloc), WithParallelism(4))
	defer par.Teardown()
	got := draw(par, parAlloc)

	if len(got) != len(want) || len(want) == 0 {
		t.Fatalf("parallel produced %d overlays, sequential %d", len(got), len(want))
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("overlay %d: parallel %v, sequential %v", i, got[i].Rects(), want[i].Rects())
		}
	}
}
