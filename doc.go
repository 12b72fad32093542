// Package flow composites externally hosted platform views into frames
// rendered from a layer tree.
//
// # Overview
//
// A layer tree may contain platform views: native content such as a map or
// a video player that the host platform draws, not the renderer. To place
// such a view correctly the renderer must tell the platform every clip,
// transform, opacity and backdrop filter that the view's ancestor layers
// apply, and it must split its own drawing into slices that go beneath and
// above each view.
//
// The package provides the pieces for that:
//
//   - Mutator and MutatorsStack: the ordered clips, transforms, opacities
//     and filters of a view's ancestors
//   - EmbeddedViewParams: a view's matrix, size, mutators and final bounds
//   - EmbedderViewSlice: recorded drawing between views, queryable by region
//   - ExternalViewEmbedder: the per-frame state machine that platform
//     embedders implement (see package compositor for a complete one)
//
// # Building Mutators
//
// Mutators are pushed while walking down the tree and popped on the way up:
//
//	var stack flow.MutatorsStack
//	stack.PushClipRect(geom.MakeLTRB(0, 0, 100, 100))
//	stack.PushTransform(geom.Translate(10, 10))
//	params := flow.NewEmbeddedViewParams(geom.Translate(10, 10), geom.Size{Width: 50, Height: 50}, &stack)
//	params.FinalBoundingRect() // (10, 10, 60, 60)
//	_ = stack.PopTo(0)
//
// NewEmbeddedViewParams copies the stack, so popping afterwards does not
// affect the params. Mutators themselves are immutable and shared.
//
// # Frame Lifecycle
//
//	embedder.BeginFrame(ctx, merger)
//	embedder.PrerollCompositeEmbeddedView(id, params)   // per view
//	result := embedder.PostPrerollAction(merger)
//	embedder.PrepareFlutterView(size, dpr)
//	canvas, err := embedder.CompositeEmbeddedView(id)  // while painting
//	err = embedder.SubmitFlutterView(0, ctx, nil, frame)
//	embedder.EndFrame(result == flow.PostPrerollResubmitFrame, merger)
//
// Package rasterizer drives this sequence for a layer tree.
//
// # Logging
//
// By default flow produces no log output. Use SetLogger to enable it.
package flow
