// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rasterizer

import (
	"log/slog"

	"github.com/gogpu/flow"
	"github.com/gogpu/gpucontext"
	"github.com/prometheus/client_golang/prometheus"
)

// Option configures a Rasterizer during creation.
type Option func(*options)

type options struct {
	logger      *slog.Logger
	ctx         gpucontext.DeviceProvider
	rendererCtx any
	merger      flow.RasterThreadMerger
	registerer  prometheus.Registerer
	maxRetries  int
}

func defaultOptions() options {
	return options{
		maxRetries: 2,
	}
}

// WithLogger sets the logger for the Rasterizer.
// The default is flow.Logger().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithDeviceProvider sets the GPU context passed to the embedder.
func WithDeviceProvider(ctx gpucontext.DeviceProvider) Option {
	return func(o *options) {
		o.ctx = ctx
	}
}

// WithRendererContext sets the opaque renderer context passed to
// SubmitFlutterView.
func WithRendererContext(rc any) Option {
	return func(o *options) {
		o.rendererCtx = rc
	}
}

// WithMerger sets the thread merger used when the embedder supports
// dynamic thread merging. The default is a lease merger owned by the
// Rasterizer.
func WithMerger(m flow.RasterThreadMerger) Option {
	return func(o *options) {
		o.merger = m
	}
}

// WithRegisterer registers the frame metrics with r.
func WithRegisterer(r prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = r
	}
}

// WithMaxRetries sets how often DrawUntilDone redraws a tree.
// Negative values are ignored.
func WithMaxRetries(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.maxRetries = n
		}
	}
}
