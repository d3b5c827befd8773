package linear

import (
	"math"
	"slices"

	"github.com/storiny/web-sub003/internal/binding"
	"github.com/storiny/web-sub003/internal/bounds"
	"github.com/storiny/web-sub003/internal/geom"
	"github.com/storiny/web-sub003/internal/scene"
)

// repoint returns a mutation replacing the element's points with next.
// offset is how far the first point moved in local space; every other
// point in next is already expressed relative to the new first point. The
// origin is shifted so that the rendered element stays put under rotation.
func (ed *Editor) repoint(el *scene.Element, next []geom.Point, offset geom.Point) func(*scene.Element) {
	l, _ := el.Linear()
	prev := bounds.LocalBox(l.Points, l.Curved).Center()
	cur := bounds.LocalBox(next, l.Curved).Center()
	shift := offset.Rotate(prev.Sub(cur), el.Angle)
	size := geom.BoxOf(next...)

	return func(m *scene.Element) {
		ml, _ := m.Linear()
		ml.Points = next
		m.X += shift.X
		m.Y += shift.Y
		if !size.IsEmpty() {
			m.Width, m.Height = size.Width(), size.Height()
		}
	}
}

func (ed *Editor) updatePoints(el *scene.Element, next []geom.Point, offset geom.Point) *scene.Element {
	updated, err := ed.store.Mutate(el.ID, ed.repoint(el, next, offset))
	if err != nil {
		return el
	}
	return updated
}

// movePoints places the given points at new local positions. When point 0
// is among them the origin moves instead and every other point shifts back,
// which keeps point 0 at [0,0].
func (ed *Editor) movePoints(el *scene.Element, targets map[int]geom.Point) *scene.Element {
	l, _ := el.Linear()
	var offset geom.Point
	origin, originMoved := targets[0]
	if originMoved {
		offset = origin.Sub(l.Points[0])
	}

	next := make([]geom.Point, len(l.Points))
	for i, p := range l.Points {
		t, ok := targets[i]
		switch {
		case ok && originMoved:
			next[i] = p
		case ok:
			next[i] = t
		default:
			next[i] = p.Sub(offset)
		}
	}
	return ed.updatePoints(el, next, offset)
}

// createPointAt converts a scene position to a local point, snapping it to
// the grid first.
func (ed *Editor) createPointAt(el *scene.Element, p geom.Point, grid float64) geom.Point {
	return ed.geo.PointFromGlobal(el, p.Snap(grid))
}

// lockedDelta returns the local offset from point ref to the pointer,
// constrained to multiples of the shift-locking angle.
func (ed *Editor) lockedDelta(el *scene.Element, ref int, pointer geom.Point, grid float64) geom.Point {
	origin, ok := ed.geo.PointGlobal(el, ref)
	if !ok {
		return geom.Point{}
	}
	g := pointer.Snap(grid)
	w, h := lockAngle(g.X-origin.X, g.Y-origin.Y, ed.opts.ShiftLockingAngle)
	return geom.Pt(w, h).Rotate(geom.Point{}, -el.Angle)
}

func lockAngle(w, h, step float64) (float64, float64) {
	if (w == 0 && h == 0) || step <= 0 {
		return w, h
	}
	locked := math.Round(math.Atan(h/w)/step) * step
	switch {
	case locked == 0:
		h = 0
	case math.Abs(math.Abs(locked)-math.Pi/2) < 1e-9:
		w = 0
	default:
		h = w * math.Tan(locked)
	}
	return w, h
}

// isLoop reports whether a path of three or more points ends where it
// starts, within the on-screen confirm threshold.
func (ed *Editor) isLoop(points []geom.Point, zoom float64) bool {
	if len(points) < 3 {
		return false
	}
	return points[0].Distance(points[len(points)-1]) <= ed.opts.LineConfirmThreshold/zoom
}

// addMidpoint inserts a point at the scene position p as the new end of
// segment seg and returns its index.
func (ed *Editor) addMidpoint(el *scene.Element, seg int, p geom.Point, grid float64) (*scene.Element, int) {
	l, _ := el.Linear()
	idx := seg + 1
	next := slices.Insert(slices.Clone(l.Points), idx, ed.createPointAt(el, p, grid))
	return ed.updatePoints(el, next, geom.Point{}), idx
}

// DeletePoints removes the selected points. Removing point 0 rebases the
// remaining points onto the new first one. Deleting down to fewer than two
// points removes the element and ends the session; the returned element is
// nil in that case.
func (ed *Editor) DeletePoints(s *Session) (*scene.Element, bool) {
	el, ok := ed.element(s)
	if !ok {
		return nil, false
	}
	l, _ := el.Linear()
	n := len(l.Points)
	sel := NormalizeSelected(s.Selected, n)
	if len(sel) == 0 {
		return el, false
	}
	if n-len(sel) < 2 {
		ed.remove(el)
		return nil, true
	}

	var offset geom.Point
	if sel[0] == 0 {
		for i, p := range l.Points {
			if !slices.Contains(sel, i) {
				offset = p
				break
			}
		}
	}
	next := make([]geom.Point, 0, n-len(sel))
	for i, p := range l.Points {
		if slices.Contains(sel, i) {
			continue
		}
		if len(next) == 0 {
			next = append(next, geom.Point{})
			continue
		}
		next = append(next, p.Sub(offset))
	}
	el = ed.updatePoints(el, next, offset)

	start, end := bindingsToDrop(l, sel, n)
	if !start.Keep || !end.Keep {
		ed.binder.Commit(el.ID, start, end)
		if cur, ok := ed.store.Get(el.ID); ok {
			el = cur
		}
	}
	ed.placeCaption(el)

	s.Selected = NormalizeSelected([]int{max(0, sel[0]-1)}, len(next))
	s.LastClicked = -1
	s.HoveredMidpoint = nil
	return el, true
}

// DuplicateSelected inserts a copy after every selected point, halfway to
// the next point, and moves the selection onto the copies. A copy of the
// final point is nudged away so the trailing segment keeps a length.
func (ed *Editor) DuplicateSelected(s *Session) (*scene.Element, bool) {
	el, ok := ed.element(s)
	if !ok {
		return nil, false
	}
	l, _ := el.Linear()
	n := len(l.Points)
	sel := NormalizeSelected(s.Selected, n)
	if len(sel) == 0 {
		return el, false
	}

	next := make([]geom.Point, 0, n+len(sel))
	var nextSel []int
	appendedLast := false
	for i, p := range l.Points {
		next = append(next, p)
		if !slices.Contains(sel, i) {
			continue
		}
		if i+1 < n {
			next = append(next, p.Midpoint(l.Points[i+1]))
		} else {
			next = append(next, p)
			appendedLast = true
		}
		nextSel = append(nextSel, len(next)-1)
	}
	el = ed.updatePoints(el, next, geom.Point{})

	if appendedLast {
		last := len(next) - 1
		nudge := geom.Pt(ed.opts.DuplicateNudge, ed.opts.DuplicateNudge)
		el = ed.movePoints(el, map[int]geom.Point{last: next[last].Add(nudge)})
	}
	ed.placeCaption(el)

	s.Selected = nextSel
	s.HoveredMidpoint = nil
	return el, true
}

// bindingsToDrop unbinds the ends whose points are being deleted.
func bindingsToDrop(l *scene.Linear, sel []int, n int) (start, end binding.Target) {
	start, end = binding.Unchanged, binding.Unchanged
	if sel[0] == 0 && l.StartBinding != nil {
		start = binding.Target{}
	}
	if sel[len(sel)-1] == n-1 && l.EndBinding != nil {
		end = binding.Target{}
	}
	return start, end
}
