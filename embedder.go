package flow

import (
	"github.com/gogpu/flow/displaylist"
	"github.com/gogpu/flow/filter"
	"github.com/gogpu/flow/geom"
	"github.com/gogpu/gpucontext"
)

// ExternalViewEmbedder composites platform views into the frames produced
// from a layer tree.
//
// Calls within one frame follow a fixed order:
//
//	BeginFrame
//	PrerollCompositeEmbeddedView  (per platform view)
//	PostPrerollAction
//	PrepareFlutterView, SubmitFlutterView  (per Flutter view)
//	EndFrame  (only if UsedThisFrame)
//
// CompositeEmbeddedView is called while painting, between prepare and
// submit. Frames must not overlap on one embedder; UsedThisFrame is not a
// lock.
//
// Implementations embed EmbedderBase for the optional methods.
type ExternalViewEmbedder interface {
	// CollectView releases the resources of a platform view that has been
	// permanently removed. It is called exactly once per view.
	CollectView(viewID int64)

	// RootCanvas returns a canvas that replaces the frame's canvas for
	// the root content, or nil to draw into the frame.
	RootCanvas() displaylist.Canvas

	// CancelFrame discards preroll state without submitting.
	CancelFrame()

	// BeginFrame starts a frame. The merger is nil unless
	// SupportsDynamicThreadMerging returns true.
	BeginFrame(ctx gpucontext.DeviceProvider, merger RasterThreadMerger)

	// PrerollCompositeEmbeddedView registers the placement of a platform
	// view for this frame. The last call for a view id wins.
	PrerollCompositeEmbeddedView(viewID int64, params *EmbeddedViewParams)

	// PostPrerollAction is called once after all views are prerolled.
	PostPrerollAction(merger RasterThreadMerger) PostPrerollResult

	// CompositeEmbeddedView returns the canvas for content painted above
	// the view. It fails with ErrUnknownView if the view was not
	// prerolled this frame.
	CompositeEmbeddedView(viewID int64) (displaylist.Canvas, error)

	// PrepareFlutterView opens submission for one Flutter view.
	PrepareFlutterView(frameSize geom.ISize, devicePixelRatio float64)

	// SubmitFlutterView presents one Flutter view. It calls frame.Submit
	// exactly once.
	SubmitFlutterView(flutterViewID int64, ctx gpucontext.DeviceProvider, rendererCtx any, frame Frame) error

	// EndFrame finishes a frame started by BeginFrame.
	EndFrame(shouldResubmitFrame bool, merger RasterThreadMerger)

	// SupportsDynamicThreadMerging reports whether BeginFrame and EndFrame
	// need a RasterThreadMerger.
	SupportsDynamicThreadMerging() bool

	// Teardown releases all embedder resources. It may be the last call.
	Teardown()

	// SetUsedThisFrame is called by the frame driver with true before
	// BeginFrame and with false before EndFrame.
	SetUsedThisFrame(used bool)
	UsedThisFrame() bool

	// PushVisitedPlatformView records that the painter has passed a
	// platform view, so filters found later can be applied to it.
	PushVisitedPlatformView(viewID int64)

	// PushFilterToVisitedPlatformViews applies a backdrop filter to every
	// view recorded by PushVisitedPlatformView. rect is in global
	// coordinates.
	PushFilterToVisitedPlatformViews(f filter.ImageFilter, rect geom.Rect)
}

// EmbedderBase provides the default behavior of the optional
// ExternalViewEmbedder methods and the used-this-frame flag.
type EmbedderBase struct {
	usedThisFrame bool
}

// CollectView does nothing.
func (*EmbedderBase) CollectView(int64) {}

// PostPrerollAction returns PostPrerollSuccess.
func (*EmbedderBase) PostPrerollAction(RasterThreadMerger) PostPrerollResult {
	return PostPrerollSuccess
}

// SubmitFlutterView submits the frame unchanged.
func (*EmbedderBase) SubmitFlutterView(_ int64, _ gpucontext.DeviceProvider, _ any, frame Frame) error {
	return frame.Submit()
}

// EndFrame does nothing.
func (*EmbedderBase) EndFrame(bool, RasterThreadMerger) {}

// SupportsDynamicThreadMerging returns false.
func (*EmbedderBase) SupportsDynamicThreadMerging() bool { return false }

// Teardown does nothing.
func (*EmbedderBase) Teardown() {}

// SetUsedThisFrame sets the flag reported by UsedThisFrame.
func (b *EmbedderBase) SetUsedThisFrame(used bool) { b.usedThisFrame = used }

// UsedThisFrame reports whether EndFrame is owed for the current frame.
func (b *EmbedderBase) UsedThisFrame() bool { return b.usedThisFrame }

// PushVisitedPlatformView does nothing.
func (*EmbedderBase) PushVisitedPlatformView(int64) {}

// PushFilterToVisitedPlatformViews does nothing.
func (*EmbedderBase) PushFilterToVisitedPlatformViews(filter.ImageFilter, geom.Rect) {}
