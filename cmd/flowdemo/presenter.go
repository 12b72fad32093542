package main

import (
	"log/slog"

	"github.com/gogpu/flow"
	"github.com/gogpu/flow/compositor"
)

// layerReport summarizes one presented layer.
type layerReport struct {
	Kind   string     `json:"kind"`
	ViewID int64      `json:"viewId,omitempty"`
	Bounds [4]float64 `json:"bounds"`
	Ops    int        `json:"ops,omitempty"`
}

// reportPresenter keeps the layers of the last presented frame and logs
// collected views.
type reportPresenter struct {
	log       *slog.Logger
	last      []layerReport
	collected []int64
}

func (p *reportPresenter) SetLogger(l *slog.Logger) {
	p.log = l
}

func (p *reportPresenter) PresentLayers(flutterViewID int64, layers []compositor.Layer) error {
	p.last = p.last[:0]
	for _, l := range layers {
		r := layerReport{
			Kind:   l.Kind.String(),
			Bounds: [4]float64{l.Bounds.Left, l.Bounds.Top, l.Bounds.Right, l.Bounds.Bottom},
		}
		if l.Kind == compositor.LayerPlatformView {
			r.ViewID = l.ViewID
		}
		if f, ok := l.Frame.(*flow.SurfaceFrame); ok && f.DisplayList() != nil {
			r.Ops = f.DisplayList().OpCount()
		}
		p.last = append(p.last, r)
	}
	p.log.Debug("flowdemo: presented", "flutter_view", flutterViewID, "layers", len(layers))
	return nil
}

func (p *reportPresenter) CollectView(viewID int64) {
	p.collected = append(p.collected, viewID)
	p.log.Info("flowdemo: platform view collected", "id", viewID)
}
