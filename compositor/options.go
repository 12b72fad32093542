// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compositor

import (
	"log/slog"

	"github.com/gogpu/flow"
	"github.com/gogpu/flow/displaylist"
	"github.com/gogpu/flow/geom"
)

// Option configures an Embedder during creation.
//
// Example:
//
//	emb := compositor.New(presenter,
//	    compositor.WithThreadMerging(true),
//	    compositor.WithMergedLeaseDuration(20),
//	)
type Option func(*options)

// options holds optional configuration for an Embedder.
type options struct {
	logger        *slog.Logger
	threadMerging bool
	leaseDuration int
	rootCanvas    displaylist.Canvas
	allocator     SurfaceAllocator
	workers       int
	newSlice      func(bounds geom.Rect) flow.EmbedderViewSlice
}

// defaultOptions returns the default embedder options.
func defaultOptions() options {
	return options{
		logger:        nil, // Will be set to flow.Logger() if nil
		leaseDuration: flow.DefaultMergedLeaseDuration,
		allocator:     MemoryAllocator{},
		newSlice:      newDisplayListSlice,
	}
}

// WithLogger sets the logger for the Embedder. The logger is also passed to
// the presenter if it has a SetLogger(*slog.Logger) method.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithThreadMerging makes the Embedder require a RasterThreadMerger and
// ask for the threads to be merged while platform views are on screen.
func WithThreadMerging(enabled bool) Option {
	return func(o *options) {
		o.threadMerging = enabled
	}
}

// WithMergedLeaseDuration sets how many frames the threads stay merged
// after the last frame with platform views. Values below 1 are ignored.
func WithMergedLeaseDuration(frames int) Option {
	return func(o *options) {
		if frames >= 1 {
			o.leaseDuration = frames
		}
	}
}

// WithRootCanvas sets a canvas that the root content is drawn into instead
// of the canvas of the submitted frame.
func WithRootCanvas(c displaylist.Canvas) Option {
	return func(o *options) {
		o.rootCanvas = c
	}
}

// WithSurfaceAllocator sets the allocator for overlay surfaces.
// The default is MemoryAllocator.
func WithSurfaceAllocator(a SurfaceAllocator) Option {
	return func(o *options) {
		if a != nil {
			o.allocator = a
		}
	}
}

// WithParallelism computes overlap regions and renders overlays on the
// given number of workers. Values below 2 keep all work on the calling
// goroutine, which is the default.
func WithParallelism(workers int) Option {
	return func(o *options) {
		o.workers = workers
	}
}

// WithSliceFactory sets how the slice recording the content above a
// platform view is created. The default records a display list culled to
// bounds.
func WithSliceFactory(newSlice func(bounds geom.Rect) flow.EmbedderViewSlice) Option {
	return func(o *options) {
		if newSlice != nil {
			o.newSlice = newSlice
		}
	}
}

func newDisplayListSlice(bounds geom.Rect) flow.EmbedderViewSlice {
	return flow.NewDisplayListEmbedderViewSlice(bounds)
}
