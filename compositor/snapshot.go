// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compositor

import (
	"sync/atomic"

	"github.com/gogpu/flow"
	"github.com/gogpu/flow/geom"
)

// frameCounter provides monotonic frame IDs for snapshots.
var frameCounter atomic.Uint64

// FrameSnapshot captures the platform view geometry of one submitted
// Flutter view. It serializes to JSON for hosts that position native views
// outside the process.
type FrameSnapshot struct {
	FrameID          uint64         `json:"frameId"`
	FlutterViewID    int64          `json:"flutterViewId"`
	Width            int            `json:"width"`
	Height           int            `json:"height"`
	DevicePixelRatio float64        `json:"devicePixelRatio"`
	Views            []ViewSnapshot `json:"views"`
}

// ViewSnapshot holds the resolved geometry of one platform view.
type ViewSnapshot struct {
	ViewID     int64   `json:"viewId"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	ClipLeft   float64 `json:"clipLeft"`
	ClipTop    float64 `json:"clipTop"`
	ClipRight  float64 `json:"clipRight"`
	ClipBottom float64 `json:"clipBottom"`
	HasClip    bool    `json:"hasClip,omitempty"`
	Opacity    float64 `json:"opacity"`
	Filters    int     `json:"filters,omitempty"`
	Overlay    bool    `json:"overlay,omitempty"`
	Visible    bool    `json:"visible"`
}

// viewSnapshot resolves params into a ViewSnapshot. A view is hidden when
// its bounds miss the frame or its clip is empty.
func viewSnapshot(viewID int64, params *flow.EmbeddedViewParams, frame geom.Rect) ViewSnapshot {
	bounds := params.FinalBoundingRect()
	flat := params.MutatorsStack().Flatten()
	vs := ViewSnapshot{
		ViewID:  viewID,
		X:       bounds.Left,
		Y:       bounds.Top,
		Width:   bounds.Width(),
		Height:  bounds.Height(),
		Opacity: flat.Opacity,
		Filters: len(flat.Filters),
		Visible: bounds.Intersects(frame),
	}
	if flat.HasClip {
		vs.HasClip = true
		vs.ClipLeft = flat.ClipBounds.Left
		vs.ClipTop = flat.ClipBounds.Top
		vs.ClipRight = flat.ClipBounds.Right
		vs.ClipBottom = flat.ClipBounds.Bottom
		if !flat.ClipBounds.Intersects(bounds) {
			vs.Visible = false
		}
	}
	if flat.Opacity == 0 {
		vs.Visible = false
	}
	return vs
}
