// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compositor

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync/atomic"

	"github.com/gogpu/flow"
	"github.com/gogpu/flow/displaylist"
	"github.com/gogpu/flow/filter"
	"github.com/gogpu/flow/geom"
	"github.com/gogpu/flow/internal/parallel"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// Embedder is a flow.ExternalViewEmbedder that splits each frame into a
// root surface, platform views and the overlays stacked above them.
type Embedder struct {
	flow.EmbedderBase

	opts      options
	log       *slog.Logger
	presenter Presenter
	pool      *parallel.Pool

	frameSize geom.ISize
	dpr       float64

	// Per-frame state, reset by BeginFrame and CancelFrame.
	viewParams       map[int64]*flow.EmbeddedViewParams
	slices           map[int64]flow.EmbedderViewSlice
	compositionOrder []int64
	visited          []int64

	// views holds every view prerolled and not yet collected.
	views             map[int64]struct{}
	previousViewCount int

	snapshot atomic.Pointer[FrameSnapshot]
}

var _ flow.ExternalViewEmbedder = (*Embedder)(nil)

// New creates an Embedder that hands every submitted frame to presenter.
// presenter may be nil, in which case frames are submitted and dropped.
func New(presenter Presenter, opts ...Option) *Embedder {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = flow.Logger()
	}
	if ls, ok := presenter.(loggerSetter); ok {
		ls.SetLogger(o.logger)
	}
	e := &Embedder{
		opts:      o,
		log:       o.logger,
		presenter: presenter,
		views:     make(map[int64]struct{}),
	}
	if o.workers > 1 {
		e.pool = parallel.NewPool(o.workers)
	}
	e.reset()
	return e
}

// run executes tasks on the pool, or in order when there is none.
func (e *Embedder) run(tasks []func()) {
	if e.pool != nil {
		e.pool.Run(tasks)
		return
	}
	for _, task := range tasks {
		task()
	}
}

func (e *Embedder) reset() {
	e.viewParams = make(map[int64]*flow.EmbeddedViewParams)
	e.slices = make(map[int64]flow.EmbedderViewSlice)
	e.compositionOrder = e.compositionOrder[:0]
	e.visited = e.visited[:0]
}

// RootCanvas implements flow.ExternalViewEmbedder. It returns the canvas
// set with WithRootCanvas, or nil.
func (e *Embedder) RootCanvas() displaylist.Canvas {
	return e.opts.rootCanvas
}

// SupportsDynamicThreadMerging implements flow.ExternalViewEmbedder.
func (e *Embedder) SupportsDynamicThreadMerging() bool {
	return e.opts.threadMerging
}

// BeginFrame implements flow.ExternalViewEmbedder.
func (e *Embedder) BeginFrame(_ gpucontext.DeviceProvider, merger flow.RasterThreadMerger) {
	if e.opts.threadMerging && merger == nil {
		e.log.Warn("compositor: thread merging enabled but no merger supplied")
	}
	e.reset()
	e.SetUsedThisFrame(true)
}

// CancelFrame implements flow.ExternalViewEmbedder.
func (e *Embedder) CancelFrame() {
	e.log.Debug("compositor: frame cancelled", "views", len(e.compositionOrder))
	e.reset()
}

// PrerollCompositeEmbeddedView implements flow.ExternalViewEmbedder.
// A view keeps the position in the composition order of its first
// registration in the frame.
func (e *Embedder) PrerollCompositeEmbeddedView(viewID int64, params *flow.EmbeddedViewParams) {
	if _, ok := e.viewParams[viewID]; !ok {
		e.compositionOrder = append(e.compositionOrder, viewID)
	}
	e.viewParams[viewID] = params
	e.views[viewID] = struct{}{}
	e.log.Debug("compositor: preroll view", "id", viewID, "bounds", params.FinalBoundingRect())
}

// PostPrerollAction implements flow.ExternalViewEmbedder.
//
// While platform views are on screen the threads must be merged. The
// first frame with views requests the merge and is skipped; the first
// merged frame is resubmitted so it is presented on the merged thread.
func (e *Embedder) PostPrerollAction(merger flow.RasterThreadMerger) flow.PostPrerollResult {
	if !e.opts.threadMerging || merger == nil || len(e.compositionOrder) == 0 {
		return flow.PostPrerollSuccess
	}
	if !merger.IsMerged() {
		merger.MergeWithLease(e.opts.leaseDuration)
		e.CancelFrame()
		return flow.PostPrerollSkipAndRetryFrame
	}
	merger.ExtendLeaseTo(e.opts.leaseDuration)
	if e.previousViewCount == 0 {
		return flow.PostPrerollResubmitFrame
	}
	return flow.PostPrerollSuccess
}

// PrepareFlutterView implements flow.ExternalViewEmbedder.
func (e *Embedder) PrepareFlutterView(frameSize geom.ISize, devicePixelRatio float64) {
	e.frameSize = frameSize
	e.dpr = devicePixelRatio
	e.slices = make(map[int64]flow.EmbedderViewSlice)
}

// CompositeEmbeddedView implements flow.ExternalViewEmbedder.
func (e *Embedder) CompositeEmbeddedView(viewID int64) (displaylist.Canvas, error) {
	if _, ok := e.viewParams[viewID]; !ok {
		return nil, &flow.UnknownViewError{ViewID: viewID}
	}
	slice, ok := e.slices[viewID]
	if !ok {
		bounds := displaylist.MaxCullRect
		if !e.frameSize.IsEmpty() {
			bounds = e.frameSize.Rect()
		}
		slice = e.opts.newSlice(bounds)
		e.slices[viewID] = slice
	}
	c := slice.Canvas()
	if c == nil {
		return nil, fmt.Errorf("compositor: view %d: %w", viewID, flow.ErrRecordingEnded)
	}
	return c, nil
}

// CollectView implements flow.ExternalViewEmbedder.
func (e *Embedder) CollectView(viewID int64) {
	if _, ok := e.views[viewID]; !ok {
		e.log.Warn("compositor: collect of unknown view", "id", viewID)
		return
	}
	delete(e.views, viewID)
	delete(e.viewParams, viewID)
	delete(e.slices, viewID)
	e.compositionOrder = slices.DeleteFunc(e.compositionOrder, func(id int64) bool { return id == viewID })
	if vc, ok := e.presenter.(ViewCollector); ok {
		vc.CollectView(viewID)
	}
	e.log.Debug("compositor: view collected", "id", viewID)
}

// PushVisitedPlatformView implements flow.ExternalViewEmbedder.
func (e *Embedder) PushVisitedPlatformView(viewID int64) {
	e.visited = append(e.visited, viewID)
}

// PushFilterToVisitedPlatformViews implements flow.ExternalViewEmbedder.
func (e *Embedder) PushFilterToVisitedPlatformViews(f filter.ImageFilter, rect geom.Rect) {
	for _, id := range e.visited {
		params, ok := e.viewParams[id]
		if !ok {
			continue
		}
		params.PushImageFilter(f, rect)
	}
}

// overlay is the content of one view's slice that lies over platform views.
type overlay struct {
	viewID int64
	region geom.Region
	frame  flow.Frame
}

// SubmitFlutterView implements flow.ExternalViewEmbedder.
//
// Slice content that overlaps the view it follows, or any view beneath it,
// goes to an overlay above that view. Everything else is drawn into the
// root. The root frame is submitted first, then each overlay once, also
// when rendering fails.
func (e *Embedder) SubmitFlutterView(flutterViewID int64, ctx gpucontext.DeviceProvider, _ any, frame flow.Frame) error {
	root := e.opts.rootCanvas
	if root == nil {
		root = frame.Canvas()
	}

	overlays, err := e.computeOverlays()
	if err != nil {
		if submitErr := frame.Submit(); submitErr != nil {
			err = errors.Join(err, fmt.Errorf("compositor: submit root frame: %w", submitErr))
		}
		return err
	}

	size := e.frameSize
	if size.IsEmpty() {
		size = frame.Size()
	}
	format := overlayFormat(ctx, frame)

	var allocErr error
	for i := range overlays {
		ov := &overlays[i]
		if ov.region.IsEmpty() {
			continue
		}
		f, err := e.opts.allocator.AllocateOverlay(ctx, size, format)
		if err != nil {
			allocErr = errors.Join(allocErr, fmt.Errorf("compositor: allocate overlay for view %d: %w", ov.viewID, err))
			e.log.Warn("compositor: overlay allocation failed, drawing into root", "id", ov.viewID, "err", err)
			ov.region = geom.Region{}
			continue
		}
		ov.frame = f
	}

	// Root content, with the overlapping parts cut out.
	var renderErr error
	if root != nil {
		for _, ov := range overlays {
			if err := renderExcluding(e.slices[ov.viewID], root, ov.region); err != nil {
				renderErr = errors.Join(renderErr, err)
			}
		}
	}
	var tasks []func()
	renderErrs := make([]error, len(overlays))
	for i, ov := range overlays {
		if ov.frame == nil {
			continue
		}
		tasks = append(tasks, func() {
			renderErrs[i] = renderWithin(e.slices[ov.viewID], ov.frame.Canvas(), ov.region)
		})
	}
	e.run(tasks)
	renderErr = errors.Join(renderErr, errors.Join(renderErrs...))

	submitErr := frame.Submit()
	if submitErr != nil {
		submitErr = fmt.Errorf("compositor: submit root frame: %w", submitErr)
	}
	layers := []Layer{{Kind: LayerBackingStore, Frame: frame, Bounds: size.Rect()}}
	byView := make(map[int64]*overlay, len(overlays))
	for i := range overlays {
		byView[overlays[i].viewID] = &overlays[i]
	}
	for _, id := range e.compositionOrder {
		params := e.viewParams[id]
		layers = append(layers, Layer{Kind: LayerPlatformView, ViewID: id, Params: params, Bounds: params.FinalBoundingRect()})
		ov := byView[id]
		if ov == nil || ov.frame == nil {
			continue
		}
		if err := ov.frame.Submit(); err != nil {
			submitErr = errors.Join(submitErr, fmt.Errorf("compositor: submit overlay for view %d: %w", id, err))
		}
		layers = append(layers, Layer{Kind: LayerBackingStore, ViewID: id, Frame: ov.frame, Bounds: ov.region.Bounds().Rect()})
	}

	var presentErr error
	if e.presenter != nil {
		presentErr = e.presenter.PresentLayers(flutterViewID, layers)
	}
	e.recordSnapshot(flutterViewID, size, byView)
	e.log.Debug("compositor: submitted",
		"flutter_view", flutterViewID,
		"views", len(e.compositionOrder),
		"layers", len(layers))
	return errors.Join(allocErr, renderErr, submitErr, presentErr)
}

// computeOverlays ends every slice and computes, for each view with a
// slice, the part of the slice that overlaps the view or any view beneath
// it in the composition order.
func (e *Embedder) computeOverlays() ([]overlay, error) {
	var out []overlay
	var below [][]int64
	for i, id := range e.compositionOrder {
		slice, ok := e.slices[id]
		if !ok {
			continue
		}
		if slice.Canvas() != nil {
			if err := slice.EndRecording(); err != nil {
				return nil, fmt.Errorf("compositor: end recording of view %d: %w", id, err)
			}
		}
		out = append(out, overlay{viewID: id})
		below = append(below, e.compositionOrder[:i+1])
	}

	errs := make([]error, len(out))
	tasks := make([]func(), len(out))
	for i := range out {
		tasks[i] = func() {
			slice := e.slices[out[i].viewID]
			var joined geom.Region
			for _, id := range below[i] {
				part, err := flow.QueryRegion(slice, e.viewParams[id].FinalBoundingRect())
				if err != nil {
					errs[i] = err
					return
				}
				joined = geom.Union(joined, part)
			}
			out[i].region = joined
		}
	}
	e.run(tasks)
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return out, nil
}

// renderExcluding draws the slice into c outside region.
func renderExcluding(slice flow.EmbedderViewSlice, c displaylist.Canvas, region geom.Region) error {
	c.Save()
	defer c.Restore()
	for _, r := range region.Rects() {
		c.ClipRect(r.Rect(), displaylist.ClipDifference)
	}
	return slice.RenderInto(c)
}

// renderWithin draws the slice into c inside region.
func renderWithin(slice flow.EmbedderViewSlice, c displaylist.Canvas, region geom.Region) error {
	for _, r := range region.Rects() {
		c.Save()
		c.ClipRect(r.Rect(), displaylist.ClipIntersect)
		err := slice.RenderInto(c)
		c.Restore()
		if err != nil {
			return err
		}
	}
	return nil
}

func (e *Embedder) recordSnapshot(flutterViewID int64, size geom.ISize, overlays map[int64]*overlay) {
	snap := &FrameSnapshot{
		FrameID:          frameCounter.Add(1),
		FlutterViewID:    flutterViewID,
		Width:            size.Width,
		Height:           size.Height,
		DevicePixelRatio: e.dpr,
		Views:            make([]ViewSnapshot, 0, len(e.compositionOrder)),
	}
	for _, id := range e.compositionOrder {
		vs := viewSnapshot(id, e.viewParams[id], size.Rect())
		if ov := overlays[id]; ov != nil && ov.frame != nil {
			vs.Overlay = true
		}
		snap.Views = append(snap.Views, vs)
	}
	e.snapshot.Store(snap)
}

// EndFrame implements flow.ExternalViewEmbedder.
func (e *Embedder) EndFrame(shouldResubmitFrame bool, merger flow.RasterThreadMerger) {
	if shouldResubmitFrame && merger != nil {
		merger.MergeWithLease(e.opts.leaseDuration)
	}
	e.previousViewCount = len(e.compositionOrder)
	e.SetUsedThisFrame(false)
}

// Teardown implements flow.ExternalViewEmbedder.
func (e *Embedder) Teardown() {
	if e.pool != nil {
		e.pool.Close()
	}
	e.reset()
	clear(e.views)
	e.previousViewCount = 0
	e.SetUsedThisFrame(false)
	e.log.Info("compositor: teardown")
}

// ViewParams returns the params registered for viewID in the current frame.
func (e *Embedder) ViewParams(viewID int64) (*flow.EmbeddedViewParams, bool) {
	p, ok := e.viewParams[viewID]
	return p, ok
}

// CompositionOrder returns the view ids of the current frame in
// bottom-to-top order.
func (e *Embedder) CompositionOrder() []int64 {
	return slices.Clone(e.compositionOrder)
}

// LastSnapshot returns the snapshot of the most recent submit, or nil.
func (e *Embedder) LastSnapshot() *FrameSnapshot {
	return e.snapshot.Load()
}

// overlayFormat returns the surface format of ctx, or the frame's format
// when there is no GPU context.
func overlayFormat(ctx gpucontext.DeviceProvider, frame flow.Frame) gputypes.TextureFormat {
	if ctx != nil {
		return ctx.SurfaceFormat()
	}
	return frame.Format()
}
