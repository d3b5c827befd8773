package linear

import (
	"github.com/storiny/web-sub003/internal/geom"
	"github.com/storiny/web-sub003/internal/scene"
)

// PointIndexUnderCursor returns the index of the point handle under p, or
// -1. Later points are checked first so they win where handles overlap.
func (ed *Editor) PointIndexUnderCursor(el *scene.Element, p geom.Point, zoom float64) int {
	pts := ed.geo.PointsGlobal(el)
	for i := len(pts) - 1; i >= 0; i-- {
		if pts[i].Distance(p)*zoom < ed.opts.PointHandleSize+1 {
			return i
		}
	}
	return -1
}

// Midpoints returns the midpoint handle of every segment in scene space,
// with nil for segments too short on screen to grab. The result is cached
// in the session until the element version or the zoom changes.
func (ed *Editor) Midpoints(s *Session, el *scene.Element, zoom float64) []*geom.Point {
	c := &s.midpoints
	if c.valid && c.version == el.Version && c.zoom == zoom {
		return c.points
	}
	l, ok := el.Linear()
	if !ok {
		return nil
	}

	var pts []*geom.Point
	for i := 0; i+1 < len(l.Points); i++ {
		if ed.geo.SegmentLength(el, i)*zoom < 4*ed.opts.PointHandleSize {
			pts = append(pts, nil)
			continue
		}
		m, _ := ed.geo.SegmentMidpoint(el, i)
		pts = append(pts, &m)
	}
	*c = midpointCache{valid: true, version: el.Version, zoom: zoom, points: pts}
	return pts
}

// MidpointAt returns the midpoint handle under p. Point handles take
// precedence, so nothing is returned while p is over one.
func (ed *Editor) MidpointAt(s *Session, el *scene.Element, p geom.Point, zoom float64) (Midpoint, bool) {
	if ed.PointIndexUnderCursor(el, p, zoom) >= 0 {
		return Midpoint{}, false
	}
	threshold := ed.opts.PointHandleSize / zoom

	if h := s.HoveredMidpoint; h != nil && h.Version == el.Version && h.Point.Distance(p) <= threshold {
		return *h, true
	}
	for i, m := range ed.Midpoints(s, el, zoom) {
		if m != nil && m.Distance(p) <= threshold {
			return Midpoint{Segment: i, Point: *m, Version: el.Version}, true
		}
	}
	return Midpoint{}, false
}

// SelectPointsInBox selects every point inside the scene-space box. With
// additive the previous selection is kept.
func (ed *Editor) SelectPointsInBox(s *Session, box geom.Box, additive bool) []int {
	el, ok := ed.element(s)
	if !ok {
		return nil
	}
	pts := ed.geo.PointsGlobal(el)
	var next []int
	if additive {
		next = append(next, s.Selected...)
	}
	for i, g := range pts {
		if box.Contains(g) {
			next = append(next, i)
		}
	}
	s.Selected = NormalizeSelected(next, len(pts))
	return s.Selected
}
