// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rasterizer

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gogpu/flow"
	"github.com/gogpu/flow/displaylist"
	"github.com/gogpu/flow/geom"
	"github.com/gogpu/flow/internal/merger"
)

// ErrRetryLimit is returned by DrawUntilDone when a tree still asks to be
// redrawn after the configured number of retries.
var ErrRetryLimit = errors.New("rasterizer: retry limit reached")

// LayerTree is the content of one Flutter view for one frame.
type LayerTree interface {
	// FrameSize returns the size of the frame in pixels.
	FrameSize() geom.ISize

	// DevicePixelRatio returns the ratio of pixels to logical points.
	DevicePixelRatio() float64

	// Preroll registers every platform view of the tree with the embedder.
	Preroll(embedder flow.ExternalViewEmbedder) error

	// Paint draws the tree into root, switching to the canvases returned by
	// CompositeEmbeddedView after each platform view.
	Paint(root displaylist.Canvas, embedder flow.ExternalViewEmbedder) error
}

// SurfaceProvider acquires the frames that trees are drawn into.
type SurfaceProvider interface {
	AcquireFrame(size geom.ISize) (flow.Frame, error)
}

// SurfaceProviderFunc adapts a function to the SurfaceProvider interface.
type SurfaceProviderFunc func(size geom.ISize) (flow.Frame, error)

// AcquireFrame implements SurfaceProvider.
func (f SurfaceProviderFunc) AcquireFrame(size geom.ISize) (flow.Frame, error) {
	return f(size)
}

// leaseDecrementer is implemented by mergers that expire their lease once
// per frame.
type leaseDecrementer interface {
	DecrementLease() bool
}

// Rasterizer draws layer trees through an ExternalViewEmbedder.
type Rasterizer struct {
	mu       sync.Mutex
	embedder flow.ExternalViewEmbedder
	surfaces SurfaceProvider
	opts     options
	log      *slog.Logger
	merger   flow.RasterThreadMerger
	metrics  *metrics
}

// New creates a Rasterizer. A merger is only handed to the embedder when
// it supports dynamic thread merging.
func New(embedder flow.ExternalViewEmbedder, surfaces SurfaceProvider, opts ...Option) *Rasterizer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = flow.Logger()
	}
	r := &Rasterizer{
		embedder: embedder,
		surfaces: surfaces,
		opts:     o,
		log:      o.logger,
		metrics:  newMetrics(o.registerer),
	}
	if embedder.SupportsDynamicThreadMerging() {
		r.merger = o.merger
		if r.merger == nil {
			r.merger = merger.New()
		}
	}
	return r
}

// Merger returns the thread merger handed to the embedder, or nil.
func (r *Rasterizer) Merger() flow.RasterThreadMerger {
	return r.merger
}

// Draw runs one frame of tree for the given Flutter view.
//
// The embedder is marked as used before BeginFrame. EndFrame is called
// whenever the flag is still set afterwards, also when the frame fails or
// is skipped, and the flag is cleared first.
func (r *Rasterizer) Draw(flutterViewID int64, tree LayerTree) (Status, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	start := time.Now()
	status, err := r.draw(flutterViewID, tree)
	if r.embedder.UsedThisFrame() {
		r.embedder.SetUsedThisFrame(false)
		r.embedder.EndFrame(status == StatusResubmit, r.merger)
	}
	if d, ok := r.merger.(leaseDecrementer); ok && status != StatusSkipAndRetry {
		if d.DecrementLease() {
			r.log.Debug("rasterizer: thread merge lease expired")
		}
	}

	merged := r.merger != nil && r.merger.IsMerged()
	r.metrics.observe(status, start, merged)
	r.log.Debug("rasterizer: frame drawn",
		"flutter_view", flutterViewID,
		"status", status.String(),
		"merged", merged)
	return status, err
}

func (r *Rasterizer) draw(flutterViewID int64, tree LayerTree) (Status, error) {
	emb := r.embedder
	emb.SetUsedThisFrame(true)
	emb.BeginFrame(r.opts.ctx, r.merger)

	if err := tree.Preroll(emb); err != nil {
		emb.CancelFrame()
		return StatusFailed, fmt.Errorf("rasterizer: preroll: %w", err)
	}
	status := statusFromResult(emb.PostPrerollAction(r.merger))
	if status == StatusSkipAndRetry {
		return status, nil
	}

	size := tree.FrameSize()
	emb.PrepareFlutterView(size, tree.DevicePixelRatio())
	frame, err := r.surfaces.AcquireFrame(size)
	if err != nil {
		emb.CancelFrame()
		return StatusFailed, fmt.Errorf("rasterizer: acquire frame: %w", err)
	}

	root := emb.RootCanvas()
	if root == nil {
		root = frame.Canvas()
	}
	if root == nil {
		emb.CancelFrame()
		return StatusFailed, errors.New("rasterizer: frame has no canvas")
	}
	if err := tree.Paint(root, emb); err != nil {
		emb.CancelFrame()
		return StatusFailed, fmt.Errorf("rasterizer: paint: %w", err)
	}
	if err := emb.SubmitFlutterView(flutterViewID, r.opts.ctx, r.opts.rendererCtx, frame); err != nil {
		return StatusFailed, fmt.Errorf("rasterizer: submit: %w", err)
	}
	return status, nil
}

// DrawUntilDone draws tree until the frame is neither skipped nor marked
// for resubmission, up to the configured number of retries.
func (r *Rasterizer) DrawUntilDone(flutterViewID int64, tree LayerTree) (Status, error) {
	for attempt := 0; ; attempt++ {
		status, err := r.Draw(flutterViewID, tree)
		if err != nil || !status.Retry() {
			return status, err
		}
		if attempt >= r.opts.maxRetries {
			return status, ErrRetryLimit
		}
		r.log.Debug("rasterizer: redrawing frame", "status", status.String(), "attempt", attempt+1)
	}
}

// Teardown releases the embedder.
func (r *Rasterizer) Teardown() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.embedder.Teardown()
}
