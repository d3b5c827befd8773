package bounds

import (
	"github.com/storiny/web-sub003/internal/geom"
	"github.com/storiny/web-sub003/internal/scene"
)

// SegmentMidpoint returns the visual center of segment i (between points i
// and i+1) in scene space. Curved segments are measured along the rendered
// curve, so the result sits halfway by arc length.
func (e *Engine) SegmentMidpoint(el *scene.Element, i int) (geom.Point, bool) {
	l, ok := el.Linear()
	if !ok || i < 0 || i+1 >= len(l.Points) {
		return geom.Point{}, false
	}
	center := e.AbsoluteCoords(el, false).Center()

	if l.Curved && len(l.Points) > 2 {
		path := e.Path(el)
		if i < len(path) {
			seg := path[i]
			return toGlobal(el, center, seg.Eval(seg.ParamAtLength(0.5))), true
		}
	}
	a := toGlobal(el, center, l.Points[i])
	b := toGlobal(el, center, l.Points[i+1])
	return a.Midpoint(b), true
}

// SegmentLength returns the rendered length of segment i. Rotation does not
// change lengths, so it is measured in local space.
func (e *Engine) SegmentLength(el *scene.Element, i int) float64 {
	l, ok := el.Linear()
	if !ok || i < 0 || i+1 >= len(l.Points) {
		return 0
	}
	if l.Curved && len(l.Points) > 2 {
		if path := e.Path(el); i < len(path) {
			return path[i].Length()
		}
	}
	return l.Points[i].Distance(l.Points[i+1])
}
