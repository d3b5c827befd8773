package linear

import (
	"slices"

	"github.com/storiny/web-sub003/internal/binding"
	"github.com/storiny/web-sub003/internal/bounds"
	"github.com/storiny/web-sub003/internal/geom"
	"github.com/storiny/web-sub003/internal/scene"
)

// PointerDown handles a press. It reports whether the press landed on the
// element's editing handles (or appended a point) and was consumed.
func (ed *Editor) PointerDown(s *Session, p Pointer, vp Viewport) bool {
	el, ok := ed.element(s)
	if !ok {
		return false
	}
	l, _ := el.Linear()
	s.down = &pointerDown{origin: p.Point, prevSelected: slices.Clone(s.Selected), hit: -1}
	s.Dragging = false
	s.PointerOffset = geom.Point{}
	s.Suggested = nil

	if p.Alt {
		pt := ed.createPointAt(el, p.Point, vp.grid(p))
		if s.Pending != nil {
			pt = *s.Pending
		}
		next := append(slices.Clone(l.Points), pt)
		el = ed.updatePoints(el, next, geom.Point{})
		ed.placeCaption(el)

		last := len(next) - 1
		s.Pending = nil
		s.Selected = []int{last}
		s.LastClicked = last
		s.down.hit = last
		s.Dragging = true
		return true
	}

	if hit := ed.PointIndexUnderCursor(el, p.Point, vp.zoom()); hit >= 0 {
		if p.Shift || slices.Contains(s.Selected, hit) {
			s.Selected = NormalizeSelected(append(slices.Clone(s.Selected), hit), len(l.Points))
		} else {
			s.Selected = []int{hit}
		}
		s.LastClicked = hit
		s.down.hit = hit
		g, _ := ed.geo.PointGlobal(el, hit)
		s.PointerOffset = p.Point.Sub(g)
		return true
	}

	if mid, ok := ed.MidpointAt(s, el, p.Point, vp.zoom()); ok {
		el, idx := ed.addMidpoint(el, mid.Segment, mid.Point, vp.grid(p))
		ed.placeCaption(el)

		s.Selected = []int{idx}
		s.LastClicked = idx
		s.down.hit = idx
		s.Dragging = true
		s.HoveredMidpoint = nil
		g, _ := ed.geo.PointGlobal(el, idx)
		s.PointerOffset = p.Point.Sub(g)
		return true
	}

	if !p.Shift {
		s.Selected = nil
	}
	s.LastClicked = -1
	s.down = nil
	return false
}

// Drag handles pointer movement with the button held. It reports whether
// the element changed.
func (ed *Editor) Drag(s *Session, p Pointer, vp Viewport) bool {
	if s == nil || s.down == nil {
		return false
	}
	el, ok := ed.element(s)
	if !ok {
		return false
	}
	if !s.Dragging {
		if p.Point.Distance(s.down.origin)*vp.zoom() < ed.opts.DragThreshold {
			return false
		}
		s.Dragging = true
	}

	l, _ := el.Linear()
	s.Selected = NormalizeSelected(s.Selected, len(l.Points))
	if len(s.Selected) == 0 {
		return false
	}
	grid := vp.grid(p)

	targets := make(map[int]geom.Point, len(s.Selected))
	if len(s.Selected) == 1 && p.Shift && len(l.Points) >= 2 {
		i := s.Selected[0]
		ref := i - 1
		if i == 0 {
			ref = 1
		}
		targets[i] = l.Points[ref].Add(ed.lockedDelta(el, ref, p.Point, grid))
	} else {
		anchor := s.LastClicked
		if !slices.Contains(s.Selected, anchor) {
			anchor = s.Selected[0]
		}
		pos := ed.createPointAt(el, p.Point.Sub(s.PointerOffset), grid)
		delta := pos.Sub(l.Points[anchor])
		for _, i := range s.Selected {
			if i == anchor {
				targets[i] = pos
			} else {
				targets[i] = l.Points[i].Add(delta)
			}
		}
	}

	el = ed.movePoints(el, targets)
	ed.placeCaption(el)
	s.Suggested = ed.suggest(el, s.Selected, p)
	return true
}

// suggest lists the elements the selected endpoints would bind to now.
func (ed *Editor) suggest(el *scene.Element, sel []int, p Pointer) []string {
	l, _ := el.Linear()
	if !l.Arrow || p.Ctrl || len(sel) == 0 {
		return nil
	}
	var ends []bounds.End
	if sel[0] == 0 {
		ends = append(ends, bounds.Start)
	}
	if sel[len(sel)-1] == len(l.Points)-1 {
		ends = append(ends, bounds.Finish)
	}
	var ids []string
	for _, t := range ed.binder.Suggest(el, ends...) {
		ids = append(ids, t.ID)
	}
	return ids
}

// PointerUp finishes a press. After a drag, a path whose ends meet is
// closed and the dragged endpoints of an arrow are bound to whatever they
// now touch; this is the only place bindings are written during editing.
// A press without a drag settles the selection on the clicked point, or
// toggles it under Shift.
func (ed *Editor) PointerUp(s *Session, p Pointer, vp Viewport) *scene.Element {
	if s == nil {
		return nil
	}
	down := s.down
	defer func() {
		s.down = nil
		s.Dragging = false
		s.PointerOffset = geom.Point{}
		s.Suggested = nil
	}()

	el, ok := ed.element(s)
	if !ok || down == nil {
		return el
	}
	l, _ := el.Linear()
	n := len(l.Points)

	if s.Dragging {
		start, end := binding.Unchanged, binding.Unchanged
		for _, i := range NormalizeSelected(s.Selected, n) {
			if n < 2 || (i != 0 && i != n-1) {
				continue
			}
			if ed.isLoop(l.Points, vp.zoom()) {
				other := l.Points[0]
				if i == 0 {
					other = l.Points[n-1]
				}
				el = ed.movePoints(el, map[int]geom.Point{i: other})
				l, _ = el.Linear()
			}
			if !l.Arrow {
				continue
			}
			t := binding.Target{}
			if !p.Ctrl {
				g, _ := ed.geo.PointGlobal(el, i)
				t = ed.binder.Resolve(el, endOf(i), g)
			}
			if i == 0 {
				start = t
			} else {
				end = t
			}
		}
		if !start.Keep || !end.Keep {
			ed.binder.Commit(el.ID, start, end)
			if cur, ok := ed.store.Get(el.ID); ok {
				el = cur
			}
		}
		ed.placeCaption(el)
		return el
	}

	if hit := down.hit; hit >= 0 {
		next := []int{hit}
		if p.Shift {
			if slices.Contains(down.prevSelected, hit) {
				next = slices.DeleteFunc(slices.Clone(down.prevSelected), func(i int) bool { return i == hit })
			} else {
				next = append(slices.Clone(down.prevSelected), hit)
			}
		}
		s.Selected = NormalizeSelected(next, n)
	}
	return el
}

func endOf(i int) bounds.End {
	if i == 0 {
		return bounds.Start
	}
	return bounds.Finish
}

// Hover handles pointer movement with no button held. With Alt it proposes
// a pending last point, angle-locked to the last point under Shift; the
// element itself is not changed. Hover feedback for handles and midpoints
// is refreshed either way.
func (ed *Editor) Hover(s *Session, p Pointer, vp Viewport) {
	el, ok := ed.element(s)
	if !ok {
		return
	}
	l, _ := el.Linear()

	s.Pending = nil
	if p.Alt && len(l.Points) > 0 {
		grid := vp.grid(p)
		last := len(l.Points) - 1
		var pt geom.Point
		if p.Shift && len(l.Points) >= 2 {
			pt = l.Points[last].Add(ed.lockedDelta(el, last, p.Point, grid))
		} else {
			pt = ed.createPointAt(el, p.Point, grid)
		}
		s.Pending = &pt
	}

	s.HoverPoint = ed.PointIndexUnderCursor(el, p.Point, vp.zoom())
	s.HoveredMidpoint = nil
	if s.HoverPoint < 0 {
		if mid, ok := ed.MidpointAt(s, el, p.Point, vp.zoom()); ok {
			s.HoveredMidpoint = &mid
		}
	}
}
