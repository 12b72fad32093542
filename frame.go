package flow

import (
	"github.com/gogpu/flow/displaylist"
	"github.com/gogpu/flow/geom"
	"github.com/gogpu/gputypes"
)

// Frame is one render target acquired for a frame. Submit must be called at
// most once; a frame that is never submitted is dropped.
type Frame interface {
	// Canvas returns the surface to draw into, or nil if the frame has none.
	Canvas() displaylist.Canvas

	// Size returns the frame size in pixels.
	Size() geom.ISize

	// Format returns the pixel format of the render target.
	Format() gputypes.TextureFormat

	// Submit hands the drawn content to the presentation pipeline.
	Submit() error
}

// SubmitFunc receives the content of a SurfaceFrame when it is submitted.
type SubmitFunc func(f *SurfaceFrame) error

// SurfaceFrame is a Frame that records into a display list and hands the
// result to a SubmitFunc.
type SurfaceFrame struct {
	size      geom.ISize
	format    gputypes.TextureFormat
	builder   *displaylist.Builder
	list      *displaylist.DisplayList
	onSubmit  SubmitFunc
	submitted bool
}

var _ Frame = (*SurfaceFrame)(nil)

// NewSurfaceFrame creates a frame of the given size and format. onSubmit
// may be nil.
func NewSurfaceFrame(size geom.ISize, format gputypes.TextureFormat, onSubmit SubmitFunc) *SurfaceFrame {
	return &SurfaceFrame{
		size:     size,
		format:   format,
		builder:  displaylist.NewBuilder(size.Rect()),
		onSubmit: onSubmit,
	}
}

// Canvas implements Frame. It returns nil after Submit.
func (f *SurfaceFrame) Canvas() displaylist.Canvas {
	if f.submitted {
		return nil
	}
	return f.builder
}

// Size implements Frame.
func (f *SurfaceFrame) Size() geom.ISize {
	return f.size
}

// Format implements Frame.
func (f *SurfaceFrame) Format() gputypes.TextureFormat {
	return f.format
}

// Submit implements Frame. Calls after the first return
// ErrFrameAlreadySubmitted.
func (f *SurfaceFrame) Submit() error {
	if f.submitted {
		return ErrFrameAlreadySubmitted
	}
	f.submitted = true
	f.list = f.builder.Build()
	f.builder = nil
	if f.onSubmit == nil {
		return nil
	}
	return f.onSubmit(f)
}

// Submitted returns true once Submit has been called.
func (f *SurfaceFrame) Submitted() bool {
	return f.submitted
}

// DisplayList returns the submitted content, or nil before Submit.
func (f *SurfaceFrame) DisplayList() *displaylist.DisplayList {
	return f.list
}
