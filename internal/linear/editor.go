// Package linear implements point editing for lines and arrows: selecting,
// dragging, inserting and deleting points, angle snapping and the binding
// of dragged endpoints.
//
// All pointer events are expected on a single goroutine. A Session holds
// the per-element state; the Editor holds the collaborators and the set of
// open sessions.
package linear

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/storiny/web-sub003/internal/binding"
	"github.com/storiny/web-sub003/internal/bounds"
	"github.com/storiny/web-sub003/internal/geom"
	"github.com/storiny/web-sub003/internal/scene"
)

type Editor struct {
	store    Store
	geo      *bounds.Engine
	binder   *binding.Resolver
	opts     Options
	sessions map[string]*Session
}

// NewEditor creates an editor over store with no open sessions.
func NewEditor(store Store, geo *bounds.Engine, binder *binding.Resolver, opts Options) *Editor {
	return &Editor{
		store:    store,
		geo:      geo,
		binder:   binder,
		opts:     opts,
		sessions: make(map[string]*Session),
	}
}

// Options returns the editor options in effect.
func (ed *Editor) Options() Options { return ed.opts }

// Session returns the open session for an element.
func (ed *Editor) Session(elementID string) (*Session, bool) {
	s, ok := ed.sessions[elementID]
	return s, ok
}

// Enter opens an editing session for a linear element. If the first point
// is not at the origin, the element is rebased so it is, without moving
// anything on screen. An element already under edit returns its session.
func (ed *Editor) Enter(elementID string) (*Session, bool) {
	if s, ok := ed.sessions[elementID]; ok {
		return s, true
	}
	el, ok := ed.store.Get(elementID)
	if !ok {
		return nil, false
	}
	l, ok := el.Linear()
	if !ok {
		return nil, false
	}

	s := &Session{
		ID:          uuid.NewString(),
		ElementID:   elementID,
		LastClicked: -1,
		HoverPoint:  -1,
	}
	if len(l.Points) > 0 && l.Points[0] != (geom.Point{}) {
		shift := l.Points[0]
		next := make([]geom.Point, len(l.Points))
		for i, p := range l.Points {
			next[i] = p.Sub(shift)
		}
		next[0] = geom.Point{}
		ed.updatePoints(el, next, shift)
		s.OriginShift = shift
	}

	ed.sessions[elementID] = s
	slog.Debug("linear editing started", "session", s.ID, "element", elementID)
	return s, true
}

// Exit closes the session and returns the element as it now stands, for
// the caller to record. An element left with fewer than two points is
// deleted together with its bindings and caption, and nil is returned.
func (ed *Editor) Exit(s *Session) *scene.Element {
	if s == nil {
		return nil
	}
	delete(ed.sessions, s.ElementID)

	el, ok := ed.store.Get(s.ElementID)
	if !ok {
		return nil
	}
	if l, ok := el.Linear(); ok && len(l.Points) < 2 {
		ed.remove(el)
		slog.Debug("linear editing finished, element removed", "session", s.ID, "element", el.ID)
		return nil
	}
	slog.Debug("linear editing finished", "session", s.ID, "element", el.ID, "version", el.Version)
	return el
}

// Preview returns the element with the pending point appended. The scene
// is not touched; without a pending point the stored element is returned.
func (ed *Editor) Preview(s *Session) (*scene.Element, bool) {
	el, ok := ed.element(s)
	if !ok {
		return nil, false
	}
	if s.Pending == nil {
		return el, true
	}
	l, _ := el.Linear()
	next := append(append([]geom.Point(nil), l.Points...), *s.Pending)
	preview := el.Clone()
	ed.repoint(el, next, geom.Point{})(preview)
	return preview, true
}

func (ed *Editor) element(s *Session) (*scene.Element, bool) {
	if s == nil {
		return nil, false
	}
	el, ok := ed.store.Get(s.ElementID)
	if !ok {
		return nil, false
	}
	if _, ok := el.Linear(); !ok {
		return nil, false
	}
	return el, true
}

func (ed *Editor) remove(el *scene.Element) {
	ed.binder.Release(el.ID)
	if id := el.BoundTextID(); id != "" {
		_ = ed.store.Delete(id)
	}
	_ = ed.store.Delete(el.ID)
	delete(ed.sessions, el.ID)
	ed.geo.Forget(el.ID)
}

// placeCaption moves a bound caption to its anchor on the element.
func (ed *Editor) placeCaption(el *scene.Element) {
	id := el.BoundTextID()
	if id == "" {
		return
	}
	t, ok := ed.store.Get(id)
	if !ok {
		return
	}
	pos := ed.geo.CaptionPosition(el, t)
	if pos.X == t.X && pos.Y == t.Y {
		return
	}
	_, _ = ed.store.Mutate(id, func(c *scene.Element) {
		c.X, c.Y = pos.X, pos.Y
	})
}
