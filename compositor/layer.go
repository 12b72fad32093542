// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compositor

import (
	"log/slog"

	"github.com/gogpu/flow"
	"github.com/gogpu/flow/geom"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// LayerKind distinguishes rendered surfaces from platform views.
type LayerKind uint8

const (
	// LayerBackingStore is a surface rendered by the embedder.
	LayerBackingStore LayerKind = iota
	// LayerPlatformView is a view drawn by the host platform.
	LayerPlatformView
)

// String returns the name of the layer kind.
func (k LayerKind) String() string {
	switch k {
	case LayerBackingStore:
		return "BackingStore"
	case LayerPlatformView:
		return "PlatformView"
	default:
		return "Unknown"
	}
}

// Layer is one entry of the bottom-to-top stack handed to a Presenter.
type Layer struct {
	Kind LayerKind

	// Frame is the submitted surface of a LayerBackingStore.
	Frame flow.Frame

	// ViewID and Params describe a LayerPlatformView.
	ViewID int64
	Params *flow.EmbeddedViewParams

	// Bounds is the device-space area the layer covers.
	Bounds geom.Rect
}

// Presenter places the layers of a Flutter view on screen.
type Presenter interface {
	PresentLayers(flutterViewID int64, layers []Layer) error
}

// PresenterFunc adapts a function to the Presenter interface.
type PresenterFunc func(flutterViewID int64, layers []Layer) error

// PresentLayers implements Presenter.
func (f PresenterFunc) PresentLayers(flutterViewID int64, layers []Layer) error {
	return f(flutterViewID, layers)
}

// ViewCollector is implemented by presenters that hold per-view platform
// resources. CollectView is called once when a view is removed for good.
type ViewCollector interface {
	CollectView(viewID int64)
}

// loggerSetter is implemented by presenters that accept a logger.
type loggerSetter interface {
	SetLogger(*slog.Logger)
}

// SurfaceAllocator provides overlay surfaces stacked above platform views.
type SurfaceAllocator interface {
	// AllocateOverlay returns a frame of the given size and format. ctx is
	// the GPU context of the frame being submitted and may be nil.
	AllocateOverlay(ctx gpucontext.DeviceProvider, size geom.ISize, format gputypes.TextureFormat) (flow.Frame, error)
}

// MemoryAllocator allocates overlays that record into display lists.
type MemoryAllocator struct{}

// AllocateOverlay implements SurfaceAllocator.
func (MemoryAllocator) AllocateOverlay(_ gpucontext.DeviceProvider, size geom.ISize, format gputypes.TextureFormat) (flow.Frame, error) {
	return flow.NewSurfaceFrame(size, format, nil), nil
}
