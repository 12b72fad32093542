package flow

import (
	"github.com/gogpu/flow/displaylist"
	"github.com/gogpu/flow/geom"
)

// EmbedderViewSlice records the drawing that lies between two platform
// views so it can be placed, queried and replayed after all views are known.
//
// A slice has two phases. While recording, Canvas returns the surface to
// draw into. After EndRecording the content is frozen: Region and
// RenderInto become valid and Canvas returns nil.
type EmbedderViewSlice interface {
	// Canvas returns the recording surface, or nil once recording has ended.
	Canvas() displaylist.Canvas

	// EndRecording freezes the recorded content. It must be called once.
	EndRecording() error

	// Region returns the device pixels the recorded content touches.
	Region() (geom.Region, error)

	// RenderInto draws the recorded content into c. It may be called any
	// number of times.
	RenderInto(c displaylist.Canvas) error
}

// QueryRegion returns the part of the slice's region inside query. The
// query is rounded out to integer bounds first.
func QueryRegion(s EmbedderViewSlice, query geom.Rect) (geom.Region, error) {
	region, err := s.Region()
	if err != nil {
		return geom.Region{}, err
	}
	return region.IntersectRect(query.RoundOut()), nil
}

// DisplayListEmbedderViewSlice is an EmbedderViewSlice backed by a
// displaylist.Builder while recording and by the built DisplayList after.
type DisplayListEmbedderViewSlice struct {
	builder *displaylist.Builder
	list    *displaylist.DisplayList
}

var _ EmbedderViewSlice = (*DisplayListEmbedderViewSlice)(nil)

// NewDisplayListEmbedderViewSlice creates a slice whose content is culled
// to viewBounds.
func NewDisplayListEmbedderViewSlice(viewBounds geom.Rect) *DisplayListEmbedderViewSlice {
	return &DisplayListEmbedderViewSlice{builder: displaylist.NewBuilder(viewBounds)}
}

// Canvas implements EmbedderViewSlice.
func (s *DisplayListEmbedderViewSlice) Canvas() displaylist.Canvas {
	if s.builder == nil {
		return nil
	}
	return s.builder
}

// EndRecording implements EmbedderViewSlice.
// A second call returns ErrRecordingEnded.
func (s *DisplayListEmbedderViewSlice) EndRecording() error {
	if s.builder == nil {
		return ErrRecordingEnded
	}
	s.list = s.builder.Build()
	s.builder = nil
	return nil
}

// RecordingEnded returns true once EndRecording has been called.
func (s *DisplayListEmbedderViewSlice) RecordingEnded() bool {
	return s.builder == nil
}

// IsEmpty returns true if nothing visible has been drawn.
func (s *DisplayListEmbedderViewSlice) IsEmpty() bool {
	if s.builder != nil {
		return s.builder.IsEmpty()
	}
	return s.list.IsEmpty()
}

// Region implements EmbedderViewSlice.
func (s *DisplayListEmbedderViewSlice) Region() (geom.Region, error) {
	if s.list == nil {
		return geom.Region{}, ErrRecordingNotEnded
	}
	return s.list.Region(), nil
}

// RegionIn returns the part of the region inside query.
func (s *DisplayListEmbedderViewSlice) RegionIn(query geom.Rect) (geom.Region, error) {
	return QueryRegion(s, query)
}

// RenderInto implements EmbedderViewSlice.
func (s *DisplayListEmbedderViewSlice) RenderInto(c displaylist.Canvas) error {
	if s.list == nil {
		return ErrRecordingNotEnded
	}
	c.DrawDisplayList(s.list, 1)
	return nil
}

// Dispatch replays the recorded ops to r.
func (s *DisplayListEmbedderViewSlice) Dispatch(r displaylist.Receiver) error {
	if s.list == nil {
		return ErrRecordingNotEnded
	}
	s.list.Dispatch(r)
	return nil
}

// DisplayList returns the recorded list, or nil while still recording.
func (s *DisplayListEmbedderViewSlice) DisplayList() *displaylist.DisplayList {
	return s.list
}
