// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package compositor implements flow.ExternalViewEmbedder for hosts that
// place platform views as separate layers between rendered surfaces.
//
// # Overview
//
// During a frame the Embedder collects the placement of every platform view
// and records the content painted above each view into its own slice. On
// submit it decides, per view, which of that content actually overlaps a
// platform view:
//
//   - content that overlaps no view beneath it is drawn into the root frame
//   - overlapping content is drawn into an overlay surface stacked above
//     the view, clipped to the overlap
//
// The host receives the resulting stack of layers through Presenter.
//
// # Usage
//
//	emb := compositor.New(presenter,
//	    compositor.WithThreadMerging(true),
//	    compositor.WithLogger(logger),
//	)
//	r := rasterizer.New(emb, surfaces)
//
// Each submitted frame is also summarized as a FrameSnapshot, available from
// LastSnapshot, which serializes to JSON.
//
// # Thread Safety
//
// An Embedder is driven by one rasterizer and is NOT safe for concurrent
// use. LastSnapshot may be called from any goroutine.
package compositor
