// Package bounds computes scene-space geometry for elements: axis-aligned
// bounds, absolute coordinates, stroke paths of linear shapes, caption
// placement, segment midpoints, arrowheads and outline distances.
//
// Results are cached per element id and invalidated by version: a mutated
// element is a new value with a higher Version, so a stale entry is simply
// never matched again.
package bounds

import (
	"github.com/storiny/web-sub003/internal/geom"
	"github.com/storiny/web-sub003/internal/scene"
)

// Lookup resolves live elements by id. *scene.Scene satisfies it.
type Lookup interface {
	Get(id string) (*scene.Element, bool)
}

type pathEntry struct {
	version int
	path    geom.Path
}

type boxEntry struct {
	version        int
	captionVersion int
	box            geom.Box
}

// Engine computes and caches element geometry. It is not safe for
// concurrent use.
type Engine struct {
	lookup Lookup
	paths  map[string]pathEntry
	boxes  map[string]boxEntry
}

// New creates a bounds engine resolving related elements through lookup.
func New(lookup Lookup) *Engine {
	return &Engine{
		lookup: lookup,
		paths:  make(map[string]pathEntry),
		boxes:  make(map[string]boxEntry),
	}
}

// Forget drops every cache entry for id. Called when an element is deleted.
func (e *Engine) Forget(id string) {
	delete(e.paths, id)
	delete(e.boxes, id)
}

// Reset drops every cache entry.
func (e *Engine) Reset() {
	clear(e.paths)
	clear(e.boxes)
}

// caption returns the live caption bound to el, if any.
func (e *Engine) caption(el *scene.Element) (*scene.Element, bool) {
	id := el.BoundTextID()
	if id == "" || e.lookup == nil {
		return nil, false
	}
	t, ok := e.lookup.Get(id)
	if !ok || t.Kind() != scene.KindText {
		return nil, false
	}
	return t, true
}

// container returns the live element a caption is bound to.
func (e *Engine) container(el *scene.Element) (*scene.Element, bool) {
	t, ok := el.Text()
	if !ok || t.ContainerID == "" || e.lookup == nil {
		return nil, false
	}
	return e.lookup.Get(t.ContainerID)
}
