package bounds

import (
	"math"

	"github.com/storiny/web-sub003/internal/geom"
	"github.com/storiny/web-sub003/internal/scene"
)

// Bounds returns the axis-aligned scene-space box of the rotated element.
// Results are cached by (id, version); a deleted element is never served
// from or stored in the cache.
func (e *Engine) Bounds(el *scene.Element) geom.Box {
	if el.IsDeleted {
		e.Forget(el.ID)
		return e.computeBounds(el)
	}

	captionVersion := 0
	if t, ok := e.caption(el); ok {
		captionVersion = t.Version
	}
	if c, ok := e.boxes[el.ID]; ok && c.version == el.Version && c.captionVersion == captionVersion {
		return c.box
	}

	b := e.computeBounds(el)
	e.boxes[el.ID] = boxEntry{version: el.Version, captionVersion: captionVersion, box: b}
	return b
}

func (e *Engine) computeBounds(el *scene.Element) geom.Box {
	coords := e.AbsoluteCoords(el, false)
	center := coords.Center()

	switch s := el.Shape.(type) {
	case *scene.Freedraw:
		// The raw point cloud is rotated, not the rendered outline.
		local := center.Sub(geom.Pt(el.X, el.Y))
		b := geom.EmptyBox()
		for _, p := range s.Points {
			b = b.Extend(p.Rotate(local, el.Angle))
		}
		if len(s.Points) == 0 {
			b = geom.Box{}
		}
		return b.Translate(geom.Pt(el.X, el.Y))

	case *scene.Linear:
		return e.linearBounds(el, s, coords)

	case *scene.Generic:
		switch s.Kind() {
		case scene.KindEllipse:
			return ellipseBounds(coords, el.Angle)
		case scene.KindDiamond:
			return rotatedBox(diamondExtremes(coords), center, el.Angle)
		}
	}
	return rotatedBox(coords.Box().Corners(), center, el.Angle)
}

func (e *Engine) linearBounds(el *scene.Element, l *scene.Linear, coords Coords) geom.Box {
	center := coords.Center()
	var b geom.Box
	path := e.Path(el)
	if len(l.Points) < 2 || len(path) == 0 {
		if len(l.Points) == 0 {
			b = geom.Box{X1: el.X, Y1: el.Y, X2: el.X, Y2: el.Y}
		} else {
			p := toGlobal(el, center, l.Points[0])
			b = geom.Box{X1: p.X, Y1: p.Y, X2: p.X, Y2: p.Y}
		}
	} else {
		b = path.Transform(globalTransform(el, center)).Bounds()
	}

	if t, ok := e.caption(el); ok {
		b = foldCaption(b, el.Angle, e.AbsoluteCoords(t, false).Box())
	}
	return b
}

// ellipseBounds is the exact envelope of a rotated ellipse.
func ellipseBounds(c Coords, angle float64) geom.Box {
	w := (c.X2 - c.X1) / 2
	h := (c.Y2 - c.Y1) / 2
	sin, cos := math.Sincos(angle)
	ww := math.Hypot(w*cos, h*sin)
	hh := math.Hypot(h*cos, w*sin)
	return geom.Box{X1: c.CX - ww, Y1: c.CY - hh, X2: c.CX + ww, Y2: c.CY + hh}
}

// diamondExtremes returns the edge midpoints of the box, which are the
// vertices of the diamond inscribed in it.
func diamondExtremes(c Coords) [4]geom.Point {
	return [4]geom.Point{
		{X: c.CX, Y: c.Y1},
		{X: c.X2, Y: c.CY},
		{X: c.CX, Y: c.Y2},
		{X: c.X1, Y: c.CY},
	}
}

func rotatedBox(pts [4]geom.Point, center geom.Point, angle float64) geom.Box {
	b := geom.EmptyBox()
	for _, p := range pts {
		b = b.Extend(p.Rotate(center, angle))
	}
	return b
}

// Union returns the combined bounds of the given elements, or an empty box
// when none are given.
func (e *Engine) Union(els ...*scene.Element) geom.Box {
	b := geom.EmptyBox()
	for _, el := range els {
		b = b.Union(e.Bounds(el))
	}
	return b
}
