// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package rasterizer drives the per-frame lifecycle of a
// flow.ExternalViewEmbedder for a layer tree.
//
// A Rasterizer calls the embedder in the required order, acquires the
// frame from a SurfaceProvider, owns the thread merger when the embedder
// asks for one, and reports a Status for every frame:
//
//	r := rasterizer.New(embedder, surfaces,
//	    rasterizer.WithRegisterer(prometheus.DefaultRegisterer),
//	)
//	status, err := r.DrawUntilDone(0, tree)
//
// Draw may be called from several goroutines; frames are serialized.
package rasterizer
