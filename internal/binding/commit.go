package binding

import (
	"log/slog"
	"math"
	"slices"

	"github.com/storiny/web-sub003/internal/bounds"
	"github.com/storiny/web-sub003/internal/geom"
	"github.com/storiny/web-sub003/internal/scene"
)

// Commit applies resolved targets to both endpoints of a linear element and
// reconciles reverse references. Shapes that lose their last reference from
// the linear element are pruned; shapes that gain one get exactly one entry.
func (r *Resolver) Commit(linearID string, start, end Target) {
	linear, ok := r.store.Get(linearID)
	if !ok {
		return
	}
	if _, ok := linear.Linear(); !ok {
		return
	}

	var touched []string
	touched = r.commitEdge(linear.ID, start, end, bounds.Start, touched)
	touched = r.commitEdge(linear.ID, end, start, bounds.Finish, touched)
	r.prune(linear.ID, touched)
}

func (r *Resolver) commitEdge(linearID string, t, other Target, end bounds.End, touched []string) []string {
	if t.Keep {
		return touched
	}
	linear, ok := r.store.Get(linearID)
	if !ok {
		return touched
	}
	l, _ := linear.Linear()

	if old := binding(l, end); old != nil {
		touched = append(touched, old.ElementID)
	}
	if t.Element == nil {
		r.Unbind(linearID, end)
		return touched
	}

	bind := false
	switch {
	case other.Keep:
		bind = !simpleAndBoundOpposite(linear, l, end, t.Element)
	case other.Element == nil:
		bind = true
	default:
		bind = end == bounds.Start || other.Element.ID != t.Element.ID
	}
	if bind {
		r.Bind(linearID, end, t.Element.ID)
	} else {
		r.Unbind(linearID, end)
	}
	return touched
}

// Bind attaches one endpoint to target and adds the reverse reference.
func (r *Resolver) Bind(linearID string, end bounds.End, targetID string) {
	linear, ok := r.store.Get(linearID)
	if !ok {
		return
	}
	target, ok := r.store.Get(targetID)
	if !ok {
		return
	}
	focus, gap := r.focusAndGap(linear, target, end)

	_, err := r.store.Mutate(linearID, func(el *scene.Element) {
		l, _ := el.Linear()
		setBinding(l, end, &scene.Binding{ElementID: targetID, Focus: focus, Gap: gap})
	})
	if err != nil {
		return
	}

	ref := scene.BoundElement{ID: linearID, Type: linear.Kind()}
	if !slices.ContainsFunc(target.BoundElements, func(b scene.BoundElement) bool { return b.ID == linearID }) {
		_, _ = r.store.Mutate(targetID, func(el *scene.Element) {
			el.BoundElements = append(el.BoundElements, ref)
		})
	}
	slog.Debug("binding committed", "linear", linearID, "target", targetID, "focus", focus, "gap", gap)
}

// Unbind clears one endpoint's binding. The target keeps its reverse
// reference until prune decides nothing points at it any more.
func (r *Resolver) Unbind(linearID string, end bounds.End) {
	linear, ok := r.store.Get(linearID)
	if !ok {
		return
	}
	l, _ := linear.Linear()
	if l == nil || binding(l, end) == nil {
		return
	}
	_, _ = r.store.Mutate(linearID, func(el *scene.Element) {
		l, _ := el.Linear()
		setBinding(l, end, nil)
	})
}

// Release unbinds both endpoints of a linear element and removes it from
// every target's reverse references.
func (r *Resolver) Release(linearID string) {
	r.Commit(linearID, Target{}, Target{})
}

// prune removes the reverse reference to linearID from every touched
// element that neither endpoint still binds to.
func (r *Resolver) prune(linearID string, touched []string) {
	linear, ok := r.store.Get(linearID)
	var l *scene.Linear
	if ok {
		l, _ = linear.Linear()
	}
	stillBound := func(id string) bool {
		if l == nil {
			return false
		}
		return (l.StartBinding != nil && l.StartBinding.ElementID == id) ||
			(l.EndBinding != nil && l.EndBinding.ElementID == id)
	}

	slices.Sort(touched)
	for _, id := range slices.Compact(touched) {
		if stillBound(id) {
			continue
		}
		target, ok := r.store.Get(id)
		if !ok || !slices.ContainsFunc(target.BoundElements, func(b scene.BoundElement) bool { return b.ID == linearID }) {
			continue
		}
		_, _ = r.store.Mutate(id, func(el *scene.Element) {
			el.BoundElements = slices.DeleteFunc(el.BoundElements, func(b scene.BoundElement) bool {
				return b.ID == linearID && (b.Type == scene.KindArrow || b.Type == scene.KindLine)
			})
		})
	}
}

// focusAndGap measures where an endpoint meets target: focus locates the
// approach line relative to the target center, gap is the distance from
// the endpoint to the outline.
func (r *Resolver) focusAndGap(linear, target *scene.Element, end bounds.End) (float64, float64) {
	l, _ := linear.Linear()
	n := len(l.Points)
	if n == 0 {
		return 0, 1
	}
	edge, adjacent := 0, 1
	if end == bounds.Finish {
		edge, adjacent = n-1, n-2
	}
	edgePoint, _ := r.geo.PointGlobal(linear, edge)
	adjacentPoint, ok := r.geo.PointGlobal(linear, adjacent)
	if !ok {
		adjacentPoint = edgePoint
	}
	gap := max(1, r.geo.OutlineDistance(target, edgePoint))
	return r.focus(target, adjacentPoint, edgePoint), gap
}

// focus is the signed distance of target's center from the line a→b,
// measured in the target's unrotated frame and divided by the target's
// extent along the line normal.
func (r *Resolver) focus(target *scene.Element, a, b geom.Point) float64 {
	c := r.geo.AbsoluteCoords(target, false)
	center := c.Center()
	ar := a.Rotate(center, -target.Angle).Sub(center)
	br := b.Rotate(center, -target.Angle).Sub(center)

	d := br.Sub(ar)
	length := d.Hypot()
	if length == 0 {
		return 0
	}
	nx, ny := -d.Y/length, d.X/length
	offset := ar.Cross(d) / length

	hw, hh := (c.X2-c.X1)/2, (c.Y2-c.Y1)/2
	var support float64
	switch target.Kind() {
	case scene.KindEllipse:
		support = math.Hypot(hw*nx, hh*ny)
	case scene.KindDiamond:
		support = max(hw*math.Abs(nx), hh*math.Abs(ny))
	default:
		support = hw*math.Abs(nx) + hh*math.Abs(ny)
	}
	f := offset / support
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
