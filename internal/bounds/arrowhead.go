package bounds

import (
	"math"

	"github.com/storiny/web-sub003/internal/geom"
	"github.com/storiny/web-sub003/internal/scene"
)

type End int

const (
	Start End = iota
	Finish
)

// ArrowheadShape is the geometry of one arrowhead in element-local
// coordinates. Dots use Tip and Diameter; the other kinds draw from Tip to
// Left and Right.
type ArrowheadShape struct {
	Kind     scene.Arrowhead `json:"kind"`
	Tip      geom.Point      `json:"tip"`
	Left     geom.Point      `json:"left"`
	Right    geom.Point      `json:"right"`
	Diameter float64         `json:"diameter,omitempty"`
}

func arrowheadSize(a scene.Arrowhead) float64 {
	if a == scene.ArrowheadArrow {
		return 25
	}
	return 15
}

func arrowheadAngle(a scene.Arrowhead) float64 {
	switch a {
	case scene.ArrowheadBar:
		return 90
	case scene.ArrowheadTriangle:
		return 25
	default:
		return 20
	}
}

// Arrowhead returns the arrowhead drawn at one end of a linear element. It
// reports false when that end has no arrowhead or the stroke is degenerate.
func (e *Engine) Arrowhead(el *scene.Element, end End) (ArrowheadShape, bool) {
	l, ok := el.Linear()
	if !ok {
		return ArrowheadShape{}, false
	}
	kind := l.EndArrowhead
	if end == Start {
		kind = l.StartArrowhead
	}
	path := e.Path(el)
	if kind == scene.ArrowheadNone || len(path) == 0 {
		return ArrowheadShape{}, false
	}

	var tip, tail, neighbor geom.Point
	n := len(l.Points)
	if end == Start {
		seg := path[0]
		tip, tail = seg.P0, seg.Eval(0.3)
		neighbor = l.Points[1]
	} else {
		seg := path[len(path)-1]
		tip, tail = seg.P3, seg.Eval(0.7)
		neighbor = l.Points[n-2]
	}

	dist := tip.Distance(tail)
	if dist == 0 {
		return ArrowheadShape{}, false
	}
	dir := tip.Sub(tail).Scale(1 / dist)

	size := min(arrowheadSize(kind), tip.Distance(neighbor)/2)
	base := tip.Sub(dir.Scale(size))

	if kind == scene.ArrowheadDot {
		return ArrowheadShape{Kind: kind, Tip: tip, Diameter: base.Distance(tip)}, true
	}
	angle := arrowheadAngle(kind) * math.Pi / 180
	return ArrowheadShape{
		Kind:  kind,
		Tip:   tip,
		Left:  base.Rotate(tip, -angle),
		Right: base.Rotate(tip, angle),
	}, true
}
