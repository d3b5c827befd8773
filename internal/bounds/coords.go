package bounds

import (
	"github.com/storiny/web-sub003/internal/geom"
	"github.com/storiny/web-sub003/internal/scene"
)

// Coords is the unrotated scene-space box of an element and its center.
type Coords struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
	CX float64 `json:"cx"`
	CY float64 `json:"cy"`
}

func coordsOf(b geom.Box) Coords {
	c := b.Center()
	return Coords{X1: b.X1, Y1: b.Y1, X2: b.X2, Y2: b.Y2, CX: c.X, CY: c.Y}
}

func (c Coords) Box() geom.Box     { return geom.Box{X1: c.X1, Y1: c.Y1, X2: c.X2, Y2: c.Y2} }
func (c Coords) Center() geom.Point { return geom.Pt(c.CX, c.CY) }

// AbsoluteCoords returns the element's box in scene space before rotation,
// along with the center rotation happens around. With includeCaption a
// linear element's caption is folded in.
func (e *Engine) AbsoluteCoords(el *scene.Element, includeCaption bool) Coords {
	switch s := el.Shape.(type) {
	case *scene.Freedraw:
		return coordsOf(pointsBox(s.Points, el))

	case *scene.Linear:
		box := e.localLinearBox(el, s)
		if includeCaption {
			if t, ok := e.caption(el); ok {
				box = foldCaption(box, el.Angle, e.AbsoluteCoords(t, false).Box())
			}
		}
		return coordsOf(box)

	case *scene.Text:
		if c, ok := e.container(el); ok {
			if _, linear := c.Linear(); linear {
				pos := e.CaptionPosition(c, el)
				return coordsOf(geom.Box{X1: pos.X, Y1: pos.Y, X2: pos.X + el.Width, Y2: pos.Y + el.Height})
			}
		}
	}
	return coordsOf(geom.Box{X1: el.X, Y1: el.Y, X2: el.X + el.Width, Y2: el.Y + el.Height})
}

// localLinearBox is the unrotated extent of a linear element. Below two
// points there is no stroke to measure, so the raw point extent is used.
func (e *Engine) localLinearBox(el *scene.Element, l *scene.Linear) geom.Box {
	path := e.Path(el)
	if len(l.Points) < 2 || len(path) == 0 {
		return pointsBox(l.Points, el)
	}
	return path.Bounds().Translate(geom.Pt(el.X, el.Y))
}

// LocalBox is the unrotated extent of a linear stroke through pts in its
// own frame: AbsoluteCoords of an element with these points, minus its
// origin.
func LocalBox(pts []geom.Point, curved bool) geom.Box {
	if len(pts) == 0 {
		return geom.Box{}
	}
	if len(pts) < 2 {
		return geom.BoxOf(pts...)
	}
	return strokePath(&scene.Linear{Points: pts, Curved: curved}).Bounds()
}

// pointsBox is the extent of local points moved to the element origin. An
// element without points collapses to its origin.
func pointsBox(pts []geom.Point, el *scene.Element) geom.Box {
	if len(pts) == 0 {
		return geom.Box{X1: el.X, Y1: el.Y, X2: el.X, Y2: el.Y}
	}
	return geom.BoxOf(pts...).Translate(geom.Pt(el.X, el.Y))
}

// PointsGlobal returns every point of a linear element in scene space.
func (e *Engine) PointsGlobal(el *scene.Element) []geom.Point {
	l, ok := el.Linear()
	if !ok {
		return nil
	}
	center := e.AbsoluteCoords(el, false).Center()
	out := make([]geom.Point, len(l.Points))
	for i, p := range l.Points {
		out[i] = toGlobal(el, center, p)
	}
	return out
}

// PointGlobal returns point i of a linear element in scene space.
func (e *Engine) PointGlobal(el *scene.Element, i int) (geom.Point, bool) {
	l, ok := el.Linear()
	if !ok || i < 0 || i >= len(l.Points) {
		return geom.Point{}, false
	}
	center := e.AbsoluteCoords(el, false).Center()
	return toGlobal(el, center, l.Points[i]), true
}

// PointFromGlobal is the inverse of PointGlobal: it maps a scene-space
// position into the element's local frame.
func (e *Engine) PointFromGlobal(el *scene.Element, p geom.Point) geom.Point {
	center := e.AbsoluteCoords(el, false).Center()
	return p.Rotate(center, -el.Angle).Sub(geom.Pt(el.X, el.Y))
}

func toGlobal(el *scene.Element, center, local geom.Point) geom.Point {
	return geom.Pt(el.X+local.X, el.Y+local.Y).Rotate(center, el.Angle)
}

// CaptionPosition returns the top-left corner of a caption anchored to a
// linear element: centered on the middle point for an odd point count, or
// on the middle segment's midpoint otherwise.
func (e *Engine) CaptionPosition(container, caption *scene.Element) geom.Point {
	l, ok := container.Linear()
	if !ok || len(l.Points) == 0 {
		return geom.Pt(caption.X, caption.Y)
	}
	half := geom.Pt(caption.Width/2, caption.Height/2)

	n := len(l.Points)
	if n%2 == 1 {
		p, _ := e.PointGlobal(container, n/2)
		return p.Sub(half)
	}
	mid, ok := e.SegmentMidpoint(container, n/2-1)
	if !ok {
		return geom.Pt(caption.X, caption.Y)
	}
	return mid.Sub(half)
}

// foldCaption unions a linear element's box with its caption box. The
// caption corners are brought into the element's unrotated frame first;
// which corners bound the result depends on the quadrant the rotated top
// edge points into.
func foldCaption(box geom.Box, angle float64, caption geom.Box) geom.Box {
	center := box.Center()
	tl := geom.Pt(box.X1, box.Y1).Rotate(center, angle)
	tr := geom.Pt(box.X2, box.Y1).Rotate(center, angle)

	ctl := geom.Pt(caption.X1, caption.Y1).Rotate(center, -angle)
	ctr := geom.Pt(caption.X2, caption.Y1).Rotate(center, -angle)
	cbl := geom.Pt(caption.X1, caption.Y2).Rotate(center, -angle)
	cbr := geom.Pt(caption.X2, caption.Y2).Rotate(center, -angle)

	x1, y1, x2, y2 := box.X1, box.Y1, box.X2, box.Y2
	switch {
	case tl.X < tr.X && tl.Y >= tr.Y:
		x1 = min(x1, cbl.X)
		x2 = max(x2, ctr.X, cbr.X)
		y1 = min(y1, ctl.Y)
		y2 = max(y2, cbr.Y)
	case tl.X >= tr.X && tl.Y > tr.Y:
		x1 = min(x1, cbr.X)
		x2 = max(x2, ctl.X, ctr.X)
		y1 = min(y1, cbl.Y)
		y2 = max(y2, ctr.Y)
	case tl.X >= tr.X:
		x1 = min(x1, ctr.X)
		x2 = max(x2, cbl.X)
		y1 = min(y1, cbr.Y)
		y2 = max(y2, ctl.Y)
	default:
		x1 = min(x1, ctr.X, ctl.X)
		x2 = max(x2, cbr.X)
		y1 = min(y1, ctr.Y)
		y2 = max(y2, cbl.Y)
	}
	return geom.Box{X1: x1, Y1: y1, X2: x2, Y2: y2}
}
