package scenario

import (
	"github.com/gogpu/flow"
	"github.com/gogpu/flow/displaylist"
	"github.com/gogpu/flow/geom"
)

// Tree is a scenario's layer tree, drawable by a rasterizer.
type Tree struct {
	size   geom.ISize
	dpr    float64
	layers []Node
}

// Tree returns the layer tree of the scenario.
func (s *Scenario) Tree() *Tree {
	return &Tree{
		size:   geom.ISize{Width: s.Width, Height: s.Height},
		dpr:    s.DevicePixelRatio,
		layers: s.Layers,
	}
}

// FrameSize returns the frame size in pixels.
func (t *Tree) FrameSize() geom.ISize {
	return t.size
}

// DevicePixelRatio returns the device pixel ratio.
func (t *Tree) DevicePixelRatio() float64 {
	return t.dpr
}

// Preroll walks the tree, registering each platform view with the mutators
// of its ancestors. Backdrop layers filter the views visited before them.
func (t *Tree) Preroll(emb flow.ExternalViewEmbedder) error {
	var stack flow.MutatorsStack
	return prerollNodes(t.layers, &stack, geom.Identity(), emb)
}

func prerollNodes(nodes []Node, stack *flow.MutatorsStack, m geom.Matrix, emb flow.ExternalViewEmbedder) error {
	for i := range nodes {
		if err := prerollNode(&nodes[i], stack, m, emb); err != nil {
			return err
		}
	}
	return nil
}

func prerollNode(n *Node, stack *flow.MutatorsStack, m geom.Matrix, emb flow.ExternalViewEmbedder) error {
	mark := stack.Count()
	switch n.Kind() {
	case KindClipRect:
		stack.PushClipRect(n.ClipRect.Geom())
	case KindClipRRect:
		stack.PushClipRRect(geom.MakeRRectXY(n.ClipRRect.Rect.Geom(), n.ClipRRect.Radius, n.ClipRRect.Radius))
	case KindClipRSE:
		stack.PushClipRSE(n.ClipRSE.superellipse())
	case KindClipPath:
		stack.PushClipPath(n.ClipPath.Path())
	case KindTransform:
		tm := n.Transform.Matrix()
		stack.PushTransform(tm)
		m = m.Multiply(tm)
	case KindOpacity:
		stack.PushOpacity(uint8(*n.Opacity))
	case KindBackdrop:
		emb.PushFilterToVisitedPlatformViews(n.Backdrop.Filter(), n.Backdrop.Rect.Geom().TransformAndClipBounds(m))
	case KindPlatformView:
		v := n.PlatformView
		params := flow.NewEmbeddedViewParams(m, geom.Size{Width: v.Width, Height: v.Height}, stack)
		emb.PrerollCompositeEmbeddedView(v.ID, params)
		emb.PushVisitedPlatformView(v.ID)
	}
	if err := prerollNodes(n.Children, stack, m, emb); err != nil {
		return err
	}
	return stack.PopTo(mark)
}

func (r *RRect) superellipse() geom.RSuperellipse {
	return geom.MakeRSuperellipseXY(r.Rect.Geom(), r.Radius, r.Radius)
}

// painter tracks the canvas content currently goes to. After a platform
// view the target switches to that view's slice and the state of every
// open ancestor is applied to it again.
type painter struct {
	emb    flow.ExternalViewEmbedder
	canvas displaylist.Canvas
	base   int
	open   []*Node
}

// Paint draws the tree into root and the slices of its platform views.
func (t *Tree) Paint(root displaylist.Canvas, emb flow.ExternalViewEmbedder) error {
	p := &painter{emb: emb, canvas: root, base: root.SaveCount()}
	err := p.paintNodes(t.layers)
	p.canvas.RestoreToCount(p.base)
	return err
}

func (p *painter) paintNodes(nodes []Node) error {
	for i := range nodes {
		if err := p.paintNode(&nodes[i]); err != nil {
			return err
		}
	}
	return nil
}

func (p *painter) paintNode(n *Node) error {
	switch n.Kind() {
	case KindPlatformView:
		return p.switchTo(n.PlatformView.ID)
	case KindDraw:
		p.canvas.DrawRect(n.Draw.Rect.Geom(), n.Draw.Paint())
		return nil
	}

	p.apply(n, false)
	p.open = append(p.open, n)
	err := p.paintNodes(n.Children)
	p.open = p.open[:len(p.open)-1]
	p.canvas.Restore()
	return err
}

// apply saves the canvas and applies the state of n. Replayed backdrops
// only save, the filter already ran on the content beneath.
func (p *painter) apply(n *Node, replay bool) {
	c := p.canvas
	switch n.Kind() {
	case KindClipRect:
		c.Save()
		c.ClipRect(n.ClipRect.Geom(), displaylist.ClipIntersect)
	case KindClipRRect:
		c.Save()
		c.ClipRRect(geom.MakeRRectXY(n.ClipRRect.Rect.Geom(), n.ClipRRect.Radius, n.ClipRRect.Radius), displaylist.ClipIntersect)
	case KindClipRSE:
		c.Save()
		c.ClipRRect(n.ClipRSE.superellipse().ToApproximateRoundRect(), displaylist.ClipIntersect)
	case KindClipPath:
		c.Save()
		c.ClipPath(n.ClipPath.Path(), displaylist.ClipIntersect)
	case KindTransform:
		c.Save()
		c.Transform(n.Transform.Matrix())
	case KindOpacity:
		c.SaveLayer(nil, uint8(*n.Opacity), nil)
	case KindBackdrop:
		if replay {
			c.Save()
			return
		}
		bounds := n.Backdrop.Rect.Geom()
		c.SaveLayer(&bounds, 255, n.Backdrop.Filter())
	default:
		c.Save()
	}
}

func (p *painter) switchTo(viewID int64) error {
	c, err := p.emb.CompositeEmbeddedView(viewID)
	if err != nil {
		return err
	}
	p.canvas.RestoreToCount(p.base)
	p.canvas = c
	p.base = c.SaveCount()
	for _, n := range p.open {
		p.apply(n, true)
	}
	return nil
}
