// Package engine owns a scene together with its geometry caches, binding
// resolver and linear editor, and exposes them as commands and JSON queries
// for a UI layer.
package engine

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/storiny/web-sub003/internal/binding"
	"github.com/storiny/web-sub003/internal/bounds"
	"github.com/storiny/web-sub003/internal/geom"
	"github.com/storiny/web-sub003/internal/linear"
	"github.com/storiny/web-sub003/internal/scene"
)

// Engine is the single-threaded core behind one open scene. It processes
// commands from the frontend and answers queries.
type Engine struct {
	opts Options

	scene       *scene.Scene
	geo         *bounds.Engine
	binder      *binding.Resolver
	editor      *linear.Editor
	unsubscribe func()

	viewport  linear.Viewport
	selection []string

	// Active linear editing session, if any.
	session *linear.Session
	pressed bool
}

// NewEngine creates a new engine instance with an empty scene.
func NewEngine(opts Options) *Engine {
	e := &Engine{
		opts:     opts,
		viewport: linear.Viewport{Zoom: 1, GridSize: opts.GridSize},
	}
	e.attach(scene.NewScene())
	return e
}

// attach wires every collaborator to s and drops state tied to the
// previous scene.
func (e *Engine) attach(s *scene.Scene) {
	if e.unsubscribe != nil {
		e.unsubscribe()
	}
	e.scene = s
	e.geo = bounds.New(s)
	e.binder = binding.NewResolver(s, e.geo, e.opts.Binding)
	e.editor = linear.NewEditor(s, e.geo, e.binder, e.opts.Linear)
	e.unsubscribe = s.Subscribe(func(el *scene.Element) {
		if el.IsDeleted {
			e.geo.Forget(el.ID)
		}
	})
	e.selection = nil
	e.session = nil
	e.pressed = false
}

// --- Commands (frontend → backend) ---

// LoadScene replaces the scene with a serialized document.
func (e *Engine) LoadScene(jsonData string) error {
	s, err := scene.Decode([]byte(jsonData))
	if err != nil {
		return fmt.Errorf("load scene: %w", err)
	}
	e.attach(s)
	slog.Debug("scene loaded", "elements", s.Len())
	return nil
}

// LoadSampleScene loads the built-in sample scene.
func (e *Engine) LoadSampleScene() {
	e.attach(scene.NewSampleScene())
}

// Scene exposes the underlying store for callers that add elements directly.
func (e *Engine) Scene() *scene.Scene { return e.scene }

// SetViewport updates the zoom and grid size used for pointer handling.
func (e *Engine) SetViewport(zoom, gridSize float64) {
	e.viewport = linear.Viewport{Zoom: zoom, GridSize: gridSize}
}

// Viewport returns the current viewport.
func (e *Engine) Viewport() linear.Viewport { return e.viewport }

// SetBindingEnabled toggles arrow binding.
func (e *Engine) SetBindingEnabled(enabled bool) {
	e.binder.SetEnabled(enabled)
}

// SetSelection replaces the selected element ids.
func (e *Engine) SetSelection(ids []string) {
	e.selection = ids
}

// EnterEditor starts editing a linear element, closing any other session.
func (e *Engine) EnterEditor(id string) (*linear.Session, bool) {
	if e.session != nil && e.session.ElementID != id {
		e.ExitEditor()
	}
	s, ok := e.editor.Enter(id)
	if !ok {
		return nil, false
	}
	e.session = s
	e.selection = []string{id}
	return s, true
}

// ExitEditor ends the active session and returns the edited element, or
// nil when there was none or the element was removed.
func (e *Engine) ExitEditor() *scene.Element {
	if e.session == nil {
		return nil
	}
	el := e.editor.Exit(e.session)
	e.session = nil
	e.pressed = false
	if el == nil {
		e.selection = nil
	}
	return el
}

// PointerDown forwards a press to the active session.
func (e *Engine) PointerDown(p linear.Pointer) bool {
	e.pressed = true
	if e.session == nil {
		return false
	}
	return e.editor.PointerDown(e.session, p, e.viewport)
}

// PointerMove drags while a button is held and updates hover state
// otherwise.
func (e *Engine) PointerMove(p linear.Pointer) bool {
	if e.session == nil {
		return false
	}
	if e.pressed {
		return e.editor.Drag(e.session, p, e.viewport)
	}
	e.editor.Hover(e.session, p, e.viewport)
	return false
}

// PointerUp finishes a press and returns the edited element.
func (e *Engine) PointerUp(p linear.Pointer) *scene.Element {
	e.pressed = false
	if e.session == nil {
		return nil
	}
	return e.editor.PointerUp(e.session, p, e.viewport)
}

// DeletePoints removes the selected points of the edited element. The
// session ends if the element is removed as a result.
func (e *Engine) DeletePoints() bool {
	if e.session == nil {
		return false
	}
	el, ok := e.editor.DeletePoints(e.session)
	if ok && el == nil {
		e.session = nil
		e.selection = nil
	}
	return ok
}

// DuplicatePoints duplicates the selected points of the edited element.
func (e *Engine) DuplicatePoints() bool {
	if e.session == nil {
		return false
	}
	_, ok := e.editor.DuplicateSelected(e.session)
	return ok
}

// SelectPointsInBox selects the points of the edited element inside box.
func (e *Engine) SelectPointsInBox(box geom.Box, additive bool) []int {
	if e.session == nil {
		return nil
	}
	return e.editor.SelectPointsInBox(e.session, box, additive)
}

// --- Queries ---

// Session returns the active editing session.
func (e *Engine) Session() (*linear.Session, bool) {
	return e.session, e.session != nil
}

// Element returns a live element or an error wrapping scene.ErrNotFound.
func (e *Engine) Element(id string) (*scene.Element, error) {
	el, ok := e.scene.Get(id)
	if !ok {
		return nil, fmt.Errorf("element %s: %w", id, scene.ErrNotFound)
	}
	return el, nil
}

// Bounds returns the scene-space bounds of a live element.
func (e *Engine) Bounds(id string) (geom.Box, bool) {
	el, ok := e.scene.Get(id)
	if !ok {
		return geom.Box{}, false
	}
	return e.geo.Bounds(el), true
}

// AbsoluteCoords returns the unrotated box and center of a live element.
func (e *Engine) AbsoluteCoords(id string, includeCaption bool) (bounds.Coords, bool) {
	el, ok := e.scene.Get(id)
	if !ok {
		return bounds.Coords{}, false
	}
	return e.geo.AbsoluteCoords(el, includeCaption), true
}

// HitTest returns the id of the topmost element at (x, y), or "".
func (e *Engine) HitTest(x, y float64) string {
	p := geom.Pt(x, y)
	threshold := e.opts.Linear.PointHandleSize / e.zoom()
	els := e.scene.NonDeleted()
	for i := len(els) - 1; i >= 0; i-- {
		if e.geo.HitTest(els[i], p, threshold) {
			return els[i].ID
		}
	}
	return ""
}

// PointIndexAt returns the point handle of the edited element at (x, y),
// or -1.
func (e *Engine) PointIndexAt(x, y float64) int {
	el, ok := e.editedElement()
	if !ok {
		return -1
	}
	return e.editor.PointIndexUnderCursor(el, geom.Pt(x, y), e.zoom())
}

// MidpointAt returns the midpoint handle of the edited element at (x, y).
func (e *Engine) MidpointAt(x, y float64) (linear.Midpoint, bool) {
	el, ok := e.editedElement()
	if !ok {
		return linear.Midpoint{}, false
	}
	return e.editor.MidpointAt(e.session, el, geom.Pt(x, y), e.zoom())
}

// SelectionBounds returns the union of the bounds of the selected elements.
func (e *Engine) SelectionBounds() geom.Box {
	var els []*scene.Element
	for _, id := range e.selection {
		if el, ok := e.scene.Get(id); ok {
			els = append(els, el)
		}
	}
	if len(els) == 0 {
		return geom.Box{}
	}
	return e.geo.Union(els...)
}

// Arrowheads returns the arrowheads of a linear element, start first.
func (e *Engine) Arrowheads(id string) []bounds.ArrowheadShape {
	el, ok := e.scene.Get(id)
	if !ok {
		return nil
	}
	var out []bounds.ArrowheadShape
	for _, end := range []bounds.End{bounds.Start, bounds.Finish} {
		if a, ok := e.geo.Arrowhead(el, end); ok {
			out = append(out, a)
		}
	}
	return out
}

// Preview returns the edited element as it should be drawn, with any
// pending point appended.
func (e *Engine) Preview() (*scene.Element, bool) {
	if e.session == nil {
		return nil, false
	}
	return e.editor.Preview(e.session)
}

func (e *Engine) editedElement() (*scene.Element, bool) {
	if e.session == nil {
		return nil, false
	}
	return e.scene.Get(e.session.ElementID)
}

func (e *Engine) zoom() float64 {
	if e.viewport.Zoom <= 0 {
		return 1
	}
	return e.viewport.Zoom
}

// --- JSON queries (frontend ← backend) ---

func toJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(data)
}

// GetScene returns the whole scene as JSON.
func (e *Engine) GetScene() string {
	data, err := scene.Encode(e.scene)
	if err != nil {
		return "{}"
	}
	return string(data)
}

// GetBounds returns the bounds of an element as JSON, or "null".
func (e *Engine) GetBounds(id string) string {
	b, ok := e.Bounds(id)
	if !ok {
		return "null"
	}
	return toJSON(b)
}

// GetAbsoluteCoords returns the absolute coordinates of an element as JSON, or "null".
func (e *Engine) GetAbsoluteCoords(id string, includeCaption bool) string {
	c, ok := e.AbsoluteCoords(id, includeCaption)
	if !ok {
		return "null"
	}
	return toJSON(c)
}

// GetSelectionBounds returns the union bounds of the selection as JSON.
func (e *Engine) GetSelectionBounds() string {
	return toJSON(e.SelectionBounds())
}

// GetSelection returns the selected ids as JSON.
func (e *Engine) GetSelection() string {
	return toJSON(e.selection)
}

// GetSession returns the active session as JSON, or "null".
func (e *Engine) GetSession() string {
	if e.session == nil {
		return "null"
	}
	return toJSON(e.session)
}

// GetMidpointAt returns the midpoint handle at (x, y) as JSON, or "null".
func (e *Engine) GetMidpointAt(x, y float64) string {
	m, ok := e.MidpointAt(x, y)
	if !ok {
		return "null"
	}
	return toJSON(m)
}

// GetPreview returns the edited element with any pending point applied.
func (e *Engine) GetPreview() string {
	el, ok := e.Preview()
	if !ok {
		return "null"
	}
	return toJSON(el)
}

// GetArrowheads returns the arrowheads of an element as JSON.
func (e *Engine) GetArrowheads(id string) string {
	return toJSON(e.Arrowheads(id))
}
