// Package binding attaches the endpoints of linear elements to nearby
// shapes and keeps the reverse references on those shapes in sync.
package binding

import (
	"math"
	"slices"

	"github.com/storiny/web-sub003/internal/bounds"
	"github.com/storiny/web-sub003/internal/geom"
	"github.com/storiny/web-sub003/internal/scene"
)

// Store is the part of the scene the resolver reads and writes.
type Store interface {
	Get(id string) (*scene.Element, bool)
	Mutate(id string, fn func(*scene.Element)) (*scene.Element, error)
	NonDeleted(kinds ...scene.Kind) []*scene.Element
}

type Options struct {
	Enabled bool
	// MinGap and MaxGap clamp the distance from an outline within which a
	// probe still binds.
	MinGap float64
	MaxGap float64
}

// DefaultOptions returns binding enabled with the standard gap range.
func DefaultOptions() Options {
	return Options{Enabled: true, MinGap: 16, MaxGap: 32}
}

// Target is a resolved binding for one endpoint. Keep leaves the endpoint's
// current binding alone; otherwise a nil Element unbinds it.
type Target struct {
	Keep    bool
	Element *scene.Element
}

// Unchanged is the target that leaves an endpoint as it is.
var Unchanged = Target{Keep: true}

// To is shorthand for a target binding to el.
func To(el *scene.Element) Target { return Target{Element: el} }

type Resolver struct {
	store Store
	geo   *bounds.Engine
	opts  Options
}

// NewResolver creates a resolver over store, measuring shapes with geo.
func NewResolver(store Store, geo *bounds.Engine, opts Options) *Resolver {
	return &Resolver{store: store, geo: geo, opts: opts}
}

// Options returns the resolver options in effect.
func (r *Resolver) Options() Options { return r.opts }

// SetEnabled turns binding on or off for later resolves.
func (r *Resolver) SetEnabled(enabled bool) { r.opts.Enabled = enabled }

// MaxBindingGap is how far outside (or inside) its outline el still
// captures an endpoint. Diamonds use a smaller share of their short side.
func (r *Resolver) MaxBindingGap(el *scene.Element) float64 {
	ratio := 1.0
	if el.Kind() == scene.KindDiamond {
		ratio = 1 / math.Sqrt2
	}
	smaller := ratio * min(math.Abs(el.Width), math.Abs(el.Height))
	return max(r.opts.MinGap, min(0.25*smaller, r.opts.MaxGap))
}

// HoveredElement returns the bindable element whose outline lies nearest
// to p, among those within their binding gap. Later elements in z-order win
// ties. Elements whose ids are in exclude are skipped.
func (r *Resolver) HoveredElement(p geom.Point, exclude ...string) (*scene.Element, bool) {
	if !r.opts.Enabled {
		return nil, false
	}
	var best *scene.Element
	bestDist := math.Inf(1)
	for _, el := range r.store.NonDeleted() {
		if !el.Bindable() || slices.Contains(exclude, el.ID) {
			continue
		}
		d := math.Abs(r.geo.OutlineDistance(el, p))
		if d > r.MaxBindingGap(el) {
			continue
		}
		if d <= bestDist {
			best, bestDist = el, d
		}
	}
	return best, best != nil
}

// Resolve finds the target for one endpoint of a linear element placed at
// p. A two-point line is never bound at both ends to the same element.
func (r *Resolver) Resolve(linear *scene.Element, end bounds.End, p geom.Point) Target {
	l, ok := linear.Linear()
	if !ok {
		return Unchanged
	}
	exclude := []string{linear.ID}
	if c := linear.BoundTextID(); c != "" {
		exclude = append(exclude, c)
	}
	hovered, ok := r.HoveredElement(p, exclude...)
	if !ok {
		return Target{}
	}
	if simpleAndBoundOpposite(linear, l, end, hovered) {
		return Target{}
	}
	return To(hovered)
}

// Suggest returns the elements the given endpoints would bind to if the
// drag ended now. Suggestions are advisory and never mutate the scene.
func (r *Resolver) Suggest(linear *scene.Element, ends ...bounds.End) []*scene.Element {
	l, ok := linear.Linear()
	if !ok || len(l.Points) == 0 {
		return nil
	}
	var out []*scene.Element
	for _, end := range ends {
		idx := 0
		if end == bounds.Finish {
			idx = len(l.Points) - 1
		}
		p, ok := r.geo.PointGlobal(linear, idx)
		if !ok {
			continue
		}
		t := r.Resolve(linear, end, p)
		if t.Element == nil {
			continue
		}
		if !slices.ContainsFunc(out, func(e *scene.Element) bool { return e.ID == t.Element.ID }) {
			out = append(out, t.Element)
		}
	}
	return out
}

func simpleAndBoundOpposite(linear *scene.Element, l *scene.Linear, end bounds.End, target *scene.Element) bool {
	other := l.EndBinding
	if end == bounds.Finish {
		other = l.StartBinding
	}
	return other != nil && other.ElementID == target.ID && len(l.Points) < 3
}

func binding(l *scene.Linear, end bounds.End) *scene.Binding {
	if end == bounds.Start {
		return l.StartBinding
	}
	return l.EndBinding
}

func setBinding(l *scene.Linear, end bounds.End, b *scene.Binding) {
	if end == bounds.Start {
		l.StartBinding = b
	} else {
		l.EndBinding = b
	}
}
