// Package scenario loads layer trees with platform views from YAML files.
//
// A scenario describes one Flutter view: its size, how many frames to draw,
// and a tree of layers. Each layer is exactly one of a clip (rect, rounded
// rect, rounded superellipse or path), transform, opacity, backdrop filter,
// platform view or rectangle draw, or a plain group when none is set:
//
//	name: overlap
//	width: 400
//	height: 300
//	frames: 3
//	layers:
//	  - draw: {rect: [0, 0, 400, 300], color: "#202020"}
//	  - transform: {translate: [20, 20]}
//	    children:
//	      - platform_view: {id: 1, width: 200, height: 120}
//	      - draw: {rect: [150, 80, 260, 160], color: "#ff0000cc"}
package scenario

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/gogpu/flow/displaylist"
	"github.com/gogpu/flow/filter"
	"github.com/gogpu/flow/geom"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("scenario: invalid")

// Scenario is a parsed scenario file.
type Scenario struct {
	Name             string  `yaml:"name"`
	Description      string  `yaml:"description"`
	Width            int     `yaml:"width"`
	Height           int     `yaml:"height"`
	DevicePixelRatio float64 `yaml:"device_pixel_ratio"`
	// Frames is the number of frames to draw. Defaults to 1.
	Frames int    `yaml:"frames"`
	Layers []Node `yaml:"layers"`
	// Collect lists views removed for good after the last frame.
	Collect []int64 `yaml:"collect,omitempty"`
}

// Node is one layer of the tree.
type Node struct {
	ClipRect     *Rect         `yaml:"clip_rect,omitempty"`
	ClipRRect    *RRect        `yaml:"clip_rrect,omitempty"`
	ClipRSE      *RRect        `yaml:"clip_rse,omitempty"`
	ClipPath     ClipPath      `yaml:"clip_path,omitempty"`
	Transform    *Transform    `yaml:"transform,omitempty"`
	Opacity      *int          `yaml:"opacity,omitempty"`
	Backdrop     *Backdrop     `yaml:"backdrop,omitempty"`
	PlatformView *PlatformView `yaml:"platform_view,omitempty"`
	Draw         *Draw         `yaml:"draw,omitempty"`
	Children     []Node        `yaml:"children,omitempty"`
}

// Rect is a rectangle written as [left, top, right, bottom].
type Rect geom.Rect

// UnmarshalYAML implements yaml.Unmarshaler for Rect.
func (r *Rect) UnmarshalYAML(value *yaml.Node) error {
	var v []float64
	if err := value.Decode(&v); err != nil {
		return err
	}
	if len(v) != 4 {
		return fmt.Errorf("line %d: rect needs 4 values, got %d", value.Line, len(v))
	}
	*r = Rect(geom.MakeLTRB(v[0], v[1], v[2], v[3]))
	return nil
}

// Geom returns the rectangle as a geom.Rect.
func (r Rect) Geom() geom.Rect {
	return geom.Rect(r)
}

// RRect is a rounded rectangle clip.
type RRect struct {
	Rect   Rect    `yaml:"rect"`
	Radius float64 `yaml:"radius"`
}

// ClipPath is a path clip, built from commands in order:
//
//	clip_path:
//	  - circle: [100, 100, 40]
//	  - move: [0, 0]
//	  - line: [50, 0]
//	  - line: [0, 50]
//	  - close: true
type ClipPath []PathCommand

// PathCommand is one path command. Exactly one field is set.
type PathCommand struct {
	Move        []float64 `yaml:"move,omitempty"`
	Line        []float64 `yaml:"line,omitempty"`
	Quad        []float64 `yaml:"quad,omitempty"`
	Cubic       []float64 `yaml:"cubic,omitempty"`
	Close       bool      `yaml:"close,omitempty"`
	Rect        []float64 `yaml:"rect,omitempty"`
	Circle      []float64 `yaml:"circle,omitempty"`
	Ellipse     []float64 `yaml:"ellipse,omitempty"`
	RoundedRect []float64 `yaml:"rounded_rect,omitempty"`
}

// args pairs each set field with its name and required arity.
func (c *PathCommand) args() []pathArgs {
	all := []pathArgs{
		{"move", c.Move, 2},
		{"line", c.Line, 2},
		{"quad", c.Quad, 4},
		{"cubic", c.Cubic, 6},
		{"rect", c.Rect, 4},
		{"circle", c.Circle, 3},
		{"ellipse", c.Ellipse, 4},
		{"rounded_rect", c.RoundedRect, 5},
	}
	var set []pathArgs
	for _, a := range all {
		if a.v != nil {
			set = append(set, a)
		}
	}
	return set
}

type pathArgs struct {
	name string
	v    []float64
	n    int
}

func (c *PathCommand) validate() error {
	set := c.args()
	switch {
	case len(set) == 0 && !c.Close:
		return errors.New("empty path command")
	case len(set)+btoi(c.Close) > 1:
		return errors.New("more than one path command")
	case len(set) == 1 && len(set[0].v) != set[0].n:
		return fmt.Errorf("%s needs %d values, got %d", set[0].name, set[0].n, len(set[0].v))
	}
	return nil
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Path builds the clip path.
func (cp ClipPath) Path() *geom.Path {
	p := geom.NewPath()
	for _, c := range cp {
		switch {
		case c.Move != nil:
			p.MoveTo(c.Move[0], c.Move[1])
		case c.Line != nil:
			p.LineTo(c.Line[0], c.Line[1])
		case c.Quad != nil:
			p.QuadraticTo(c.Quad[0], c.Quad[1], c.Quad[2], c.Quad[3])
		case c.Cubic != nil:
			p.CubicTo(c.Cubic[0], c.Cubic[1], c.Cubic[2], c.Cubic[3], c.Cubic[4], c.Cubic[5])
		case c.Close:
			p.Close()
		case c.Rect != nil:
			p.Rectangle(c.Rect[0], c.Rect[1], c.Rect[2], c.Rect[3])
		case c.Circle != nil:
			p.Circle(c.Circle[0], c.Circle[1], c.Circle[2])
		case c.Ellipse != nil:
			p.Ellipse(c.Ellipse[0], c.Ellipse[1], c.Ellipse[2], c.Ellipse[3])
		case c.RoundedRect != nil:
			p.RoundedRectangle(c.RoundedRect[0], c.RoundedRect[1], c.RoundedRect[2], c.RoundedRect[3], c.RoundedRect[4])
		}
	}
	return p
}

// Transform is a transform layer. The parts apply in the order scale,
// rotate, translate.
type Transform struct {
	Translate []float64 `yaml:"translate,omitempty"`
	Scale     []float64 `yaml:"scale,omitempty"`
	// Rotate is in degrees.
	Rotate float64 `yaml:"rotate,omitempty"`
}

// Matrix returns the transform as a matrix.
func (t *Transform) Matrix() geom.Matrix {
	m := geom.Identity()
	if len(t.Translate) == 2 {
		m = m.Multiply(geom.Translate(t.Translate[0], t.Translate[1]))
	}
	if t.Rotate != 0 {
		m = m.Multiply(geom.RotateZ(t.Rotate * math.Pi / 180))
	}
	if len(t.Scale) == 2 {
		m = m.Multiply(geom.Scale(t.Scale[0], t.Scale[1]))
	}
	return m
}

// Backdrop is a backdrop filter layer. It blurs the platform views
// already placed beneath it within Rect.
type Backdrop struct {
	Sigma float64 `yaml:"sigma"`
	Rect  Rect    `yaml:"rect"`
}

// Filter returns the blur described by b.
func (b *Backdrop) Filter() filter.ImageFilter {
	return filter.NewBlur(b.Sigma, b.Sigma)
}

// PlatformView places a platform view at the origin of the current
// transform.
type PlatformView struct {
	ID     int64   `yaml:"id"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Draw fills or strokes a rectangle.
type Draw struct {
	Rect   Rect    `yaml:"rect"`
	Color  Color   `yaml:"color"`
	Stroke float64 `yaml:"stroke,omitempty"`
}

// Paint returns the paint of the draw.
func (d *Draw) Paint() displaylist.Paint {
	if d.Stroke > 0 {
		return displaylist.StrokePaint(color.NRGBA(d.Color), d.Stroke)
	}
	return displaylist.FillPaint(color.NRGBA(d.Color))
}

// Color is written as "#rrggbb" or "#rrggbbaa".
type Color color.NRGBA

// UnmarshalYAML implements yaml.Unmarshaler for Color.
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*c = Color(parsed)
	return nil
}

// ParseColor parses "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (color.NRGBA, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || (len(hex) != 6 && len(hex) != 8) {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// Kind names the operation a node performs.
type Kind string

// Node kinds.
const (
	KindGroup        Kind = "group"
	KindClipRect     Kind = "clip_rect"
	KindClipRRect    Kind = "clip_rrect"
	KindClipRSE      Kind = "clip_rse"
	KindClipPath     Kind = "clip_path"
	KindTransform    Kind = "transform"
	KindOpacity      Kind = "opacity"
	KindBackdrop     Kind = "backdrop"
	KindPlatformView Kind = "platform_view"
	KindDraw         Kind = "draw"
)

// kinds returns every operation set on n.
func (n *Node) kinds() []Kind {
	var out []Kind
	if n.ClipRect != nil {
		out = append(out, KindClipRect)
	}
	if n.ClipRRect != nil {
		out = append(out, KindClipRRect)
	}
	if n.ClipRSE != nil {
		out = append(out, KindClipRSE)
	}
	if n.ClipPath != nil {
		out = append(out, KindClipPath)
	}
	if n.Transform != nil {
		out = append(out, KindTransform)
	}
	if n.Opacity != nil {
		out = append(out, KindOpacity)
	}
	if n.Backdrop != nil {
		out = append(out, KindBackdrop)
	}
	if n.PlatformView != nil {
		out = append(out, KindPlatformView)
	}
	if n.Draw != nil {
		out = append(out, KindDraw)
	}
	return out
}

// Kind returns the operation of a validated node.
func (n *Node) Kind() Kind {
	if k := n.kinds(); len(k) > 0 {
		return k[0]
	}
	return KindGroup
}

// Parse decodes and validates a scenario.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("scenario: %w", err)
	}
	if s.Frames == 0 {
		s.Frames = 1
	}
	if s.DevicePixelRatio == 0 {
		s.DevicePixelRatio = 1
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load reads and parses a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: %w", err)
	}
	return Parse(data)
}

// Validate checks the frame size and that every node performs at most one
// operation, leaf kinds have no children and view ids are unique.
func (s *Scenario) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: frame size %dx%d", ErrInvalid, s.Width, s.Height)
	}
	if s.Frames < 0 {
		return fmt.Errorf("%w: frames %d", ErrInvalid, s.Frames)
	}
	if s.DevicePixelRatio <= 0 {
		return fmt.Errorf("%w: device pixel ratio %v", ErrInvalid, s.DevicePixelRatio)
	}
	seen := make(map[int64]bool)
	for i := range s.Layers {
		if err := s.Layers[i].validate(fmt.Sprintf("layers[%d]", i), seen); err != nil {
			return err
		}
	}
	return nil
}

func (n *Node) validate(path string, seen map[int64]bool) error {
	kinds := n.kinds()
	if len(kinds) > 1 {
		return fmt.Errorf("%w: %s: more than one operation %v", ErrInvalid, path, kinds)
	}
	switch n.Kind() {
	case KindClipPath:
		for i := range n.ClipPath {
			if err := n.ClipPath[i].validate(); err != nil {
				return fmt.Errorf("%w: %s.clip_path[%d]: %v", ErrInvalid, path, i, err)
			}
		}
		if n.ClipPath.Path().IsEmpty() {
			return fmt.Errorf("%w: %s: clip_path draws nothing", ErrInvalid, path)
		}
	case KindOpacity:
		if *n.Opacity < 0 || *n.Opacity > 255 {
			return fmt.Errorf("%w: %s: opacity %d out of range", ErrInvalid, path, *n.Opacity)
		}
	case KindTransform:
		t := n.Transform
		if (t.Translate != nil && len(t.Translate) != 2) || (t.Scale != nil && len(t.Scale) != 2) {
			return fmt.Errorf("%w: %s: translate and scale need 2 values", ErrInvalid, path)
		}
	case KindPlatformView:
		v := n.PlatformView
		if seen[v.ID] {
			return fmt.Errorf("%w: %s: duplicate platform view %d", ErrInvalid, path, v.ID)
		}
		seen[v.ID] = true
		if v.Width <= 0 || v.Height <= 0 {
			return fmt.Errorf("%w: %s: platform view %d has no size", ErrInvalid, path, v.ID)
		}
		fallthrough
	case KindDraw:
		if len(n.Children) > 0 {
			return fmt.Errorf("%w: %s: %s cannot have children", ErrInvalid, path, n.Kind())
		}
	}
	for i := range n.Children {
		if err := n.Children[i].validate(fmt.Sprintf("%s.children[%d]", path, i), seen); err != nil {
			return err
		}
	}
	return nil
}

// ViewIDs returns the platform view ids in tree order.
func (s *Scenario) ViewIDs() []int64 {
	var ids []int64
	var walk func(nodes []Node)
	walk = func(nodes []Node) {
		for i := range nodes {
			if v := nodes[i].PlatformView; v != nil {
				ids = append(ids, v.ID)
			}
			walk(nodes[i].Children)
		}
	}
	walk(s.Layers)
	return ids
}
