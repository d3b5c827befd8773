package linear

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storiny/web-sub003/internal/binding"
	"github.com/storiny/web-sub003/internal/bounds"
	"github.com/storiny/web-sub003/internal/geom"
	"github.com/storiny/web-sub003/internal/scene"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

type harness struct {
	scene  *scene.Scene
	geo    *bounds.Engine
	editor *Editor
}

func newHarness(els ...*scene.Element) *harness {
	s := scene.NewScene()
	for _, el := range els {
		s.Add(el)
	}
	geo := bounds.New(s)
	binder := binding.NewResolver(s, geo, binding.DefaultOptions())
	return &harness{scene: s, geo: geo, editor: NewEditor(s, geo, binder, DefaultOptions())}
}

func (h *harness) get(t *testing.T, id string) *scene.Element {
	t.Helper()
	el, ok := h.scene.Get(id)
	require.True(t, ok)
	return el
}

func (h *harness) points(t *testing.T, id string) []geom.Point {
	t.Helper()
	l, ok := h.get(t, id).Linear()
	require.True(t, ok)
	return l.Points
}

func (h *harness) enter(t *testing.T, id string) *Session {
	t.Helper()
	s, ok := h.editor.Enter(id)
	require.True(t, ok)
	return s
}

func at(x, y float64) Pointer { return Pointer{Point: geom.Pt(x, y)} }

var view = Viewport{Zoom: 1}

func assertOrigin(t *testing.T, pts []geom.Point) {
	t.Helper()
	require.NotEmpty(t, pts)
	assert.Equal(t, geom.Point{}, pts[0])
}

func TestNormalizeSelected(t *testing.T) {
	tests := []struct {
		name string
		in   []int
		n    int
		want []int
	}{
		{"sorted unique", []int{0, 2}, 3, []int{0, 2}},
		{"duplicates and order", []int{2, 0, 2, 1, 0}, 3, []int{0, 1, 2}},
		{"out of range", []int{-1, 5, 1}, 3, []int{1}},
		{"empty", []int{}, 3, nil},
		{"all invalid", []int{-1, 3}, 3, nil},
		{"nil", nil, 3, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeSelected(tt.in, tt.n))
		})
	}
}

func TestEnterNormalizesOrigin(t *testing.T) {
	el := scene.NewLinear(100, 100, false, geom.Pt(5, 5), geom.Pt(15, 5), geom.Pt(15, 25))
	el.Angle = 0.9
	h := newHarness(el)
	before := h.geo.PointsGlobal(el)

	s := h.enter(t, el.ID)

	diff(t, geom.Pt(5, 5), s.OriginShift)
	got := h.get(t, el.ID)
	assertOrigin(t, h.points(t, el.ID))
	diff(t, []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 20}}, h.points(t, el.ID), approx)
	diff(t, before, h.geo.PointsGlobal(got), cmpopts.EquateApprox(0, 1e-9))

	again, ok := h.editor.Enter(el.ID)
	require.True(t, ok)
	assert.Same(t, s, again)
}

func TestEnterRejectsNonLinear(t *testing.T) {
	rect := scene.New(&scene.Generic{Form: scene.KindRectangle}, 0, 0, 10, 10)
	h := newHarness(rect)
	_, ok := h.editor.Enter(rect.ID)
	assert.False(t, ok)
	_, ok = h.editor.Enter("el_missing")
	assert.False(t, ok)
}

func TestDragOriginPointKeepsOtherPointsInPlace(t *testing.T) {
	el := scene.NewLinear(20, 30, false, geom.Pt(0, 0), geom.Pt(100, 0))
	h := newHarness(el)
	s := h.enter(t, el.ID)

	require.True(t, h.editor.PointerDown(s, at(20, 30), view))
	assert.Equal(t, []int{0}, s.Selected)
	require.True(t, h.editor.Drag(s, at(30, 40), view))
	h.editor.PointerUp(s, at(30, 40), view)

	got := h.get(t, el.ID)
	assert.InDelta(t, 30, got.X, 1e-9)
	assert.InDelta(t, 40, got.Y, 1e-9)
	assertOrigin(t, h.points(t, el.ID))
	diff(t, []geom.Point{{X: 0, Y: 0}, {X: 90, Y: -10}}, h.points(t, el.ID), approx)

	p1, ok := h.geo.PointGlobal(got, 1)
	require.True(t, ok)
	diff(t, geom.Pt(120, 30), p1, approx)
}

func TestDragRotatedKeepsUnmovedPoints(t *testing.T) {
	el := scene.NewLinear(20, 30, false, geom.Pt(0, 0), geom.Pt(100, 0), geom.Pt(100, 60))
	el.Angle = 0.7
	h := newHarness(el)
	s := h.enter(t, el.ID)

	before := h.geo.PointsGlobal(el)
	require.True(t, h.editor.PointerDown(s, Pointer{Point: before[1]}, view))
	target := before[1].Add(geom.Pt(-40, 25))
	require.True(t, h.editor.Drag(s, Pointer{Point: target}, view))
	h.editor.PointerUp(s, Pointer{Point: target}, view)

	after := h.geo.PointsGlobal(h.get(t, el.ID))
	opt := cmpopts.EquateApprox(0, 1e-6)
	diff(t, before[0], after[0], opt)
	diff(t, target, after[1], opt)
	diff(t, before[2], after[2], opt)
	assertOrigin(t, h.points(t, el.ID))
}

func TestDragBelowThresholdIsAClick(t *testing.T) {
	el := scene.NewLinear(0, 0, false, geom.Pt(0, 0), geom.Pt(100, 0), geom.Pt(200, 0))
	h := newHarness(el)
	s := h.enter(t, el.ID)
	version := h.get(t, el.ID).Version

	require.True(t, h.editor.PointerDown(s, at(100, 0), view))
	assert.False(t, h.editor.Drag(s, at(103, 2), view))
	h.editor.PointerUp(s, at(103, 2), view)

	assert.Equal(t, version, h.get(t, el.ID).Version)
	assert.Equal(t, []int{1}, s.Selected)
	assert.False(t, s.Dragging)
}

func TestMultiPointRigidDrag(t *testing.T) {
	el := scene.NewLinear(0, 0, false, geom.Pt(0, 0), geom.Pt(100, 0), geom.Pt(200, 0))
	h := newHarness(el)
	s := h.enter(t, el.ID)
	s.Selected = []int{1, 2}

	require.True(t, h.editor.PointerDown(s, at(100, 0), view))
	assert.Equal(t, []int{1, 2}, s.Selected)
	require.True(t, h.editor.Drag(s, at(100, 50), view))
	h.editor.PointerUp(s, at(100, 50), view)

	diff(t, []geom.Point{{X: 0, Y: 0}, {X: 100, Y: 50}, {X: 200, Y: 50}}, h.points(t, el.ID), approx)
	assert.Equal(t, []int{1, 2}, s.Selected)
}

func TestDragSnapsToGrid(t *testing.T) {
	el := scene.NewLinear(0, 0, false, geom.Pt(0, 0), geom.Pt(100, 0))
	h := newHarness(el)
	s := h.enter(t, el.ID)
	vp := Viewport{Zoom: 1, GridSize: 20}

	require.True(t, h.editor.PointerDown(s, at(100, 0), vp))
	require.True(t, h.editor.Drag(s, at(147, 33), vp))
	diff(t, geom.Pt(140, 40), h.points(t, el.ID)[1], approx)

	require.True(t, h.editor.Drag(s, Pointer{Point: geom.Pt(147, 33), Ctrl: true}, vp))
	diff(t, geom.Pt(147, 33), h.points(t, el.ID)[1], approx)
}

func TestShiftLocksAngle(t *testing.T) {
	tests := []struct {
		name    string
		pointer geom.Point
		want    geom.Point
	}{
		{"near horizontal", geom.Pt(200, 10), geom.Pt(200, 0)},
		{"near diagonal", geom.Pt(100, 95), geom.Pt(100, 100)},
		{"near vertical", geom.Pt(3, 150), geom.Pt(0, 150)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := scene.NewLinear(0, 0, false, geom.Pt(0, 0), geom.Pt(100, 0))
			h := newHarness(el)
			s := h.enter(t, el.ID)

			require.True(t, h.editor.PointerDown(s, at(100, 0), view))
			require.True(t, h.editor.Drag(s, Pointer{Point: tt.pointer, Shift: true}, view))
			diff(t, tt.want, h.points(t, el.ID)[1], cmpopts.EquateApprox(0, 1e-9))
		})
	}
}

func TestLockAngle(t *testing.T) {
	w, h := lockAngle(0, 0, math.Pi/12)
	assert.Zero(t, w)
	assert.Zero(t, h)

	w, h = lockAngle(10, 3, 0)
	assert.Equal(t, 10.0, w)
	assert.Equal(t, 3.0, h)

	w, h = lockAngle(0, -40, math.Pi/12)
	assert.Zero(t, w)
	assert.Equal(t, -40.0, h)
}

func TestLoopClosesOnPointerUp(t *testing.T) {
	el := scene.NewLinear(0, 0, false, geom.Pt(0, 0), geom.Pt(100, 0), geom.Pt(50, 80))
	h := newHarness(el)
	s := h.enter(t, el.ID)

	require.True(t, h.editor.PointerDown(s, at(50, 80), view))
	require.True(t, h.editor.Drag(s, at(3, 4), view))
	h.editor.PointerUp(s, at(3, 4), view)

	pts := h.points(t, el.ID)
	diff(t, pts[0], pts[len(pts)-1], approx)
	assertOrigin(t, pts)
}

func TestAltClickAppendsPoint(t *testing.T) {
	el := scene.NewLinear(0, 0, false, geom.Pt(0, 0), geom.Pt(100, 0))
	h := newHarness(el)
	s := h.enter(t, el.ID)
	version := h.get(t, el.ID).Version

	h.editor.Hover(s, Pointer{Point: geom.Pt(150, 50), Alt: true}, view)
	require.NotNil(t, s.Pending)
	diff(t, geom.Pt(150, 50), *s.Pending, approx)
	assert.Equal(t, version, h.get(t, el.ID).Version)

	preview, ok := h.editor.Preview(s)
	require.True(t, ok)
	pl, _ := preview.Linear()
	assert.Len(t, pl.Points, 3)
	assert.Len(t, h.points(t, el.ID), 2)

	require.True(t, h.editor.PointerDown(s, Pointer{Point: geom.Pt(150, 50), Alt: true}, view))
	assert.Nil(t, s.Pending)
	assert.Equal(t, []int{2}, s.Selected)
	assert.True(t, s.Dragging)
	diff(t, []geom.Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 150, Y: 50}}, h.points(t, el.ID), approx)
	h.editor.PointerUp(s, Pointer{Point: geom.Pt(150, 50)}, view)

	h.editor.Hover(s, Pointer{Point: geom.Pt(300, 300), Alt: true}, view)
	require.NotNil(t, s.Pending)
	h.editor.Hover(s, at(300, 300), view)
	assert.Nil(t, s.Pending)
}

func TestAltHoverShiftLocksPending(t *testing.T) {
	el := scene.NewLinear(0, 0, false, geom.Pt(0, 0), geom.Pt(100, 0))
	h := newHarness(el)
	s := h.enter(t, el.ID)

	h.editor.Hover(s, Pointer{Point: geom.Pt(200, 8), Alt: true, Shift: true}, view)
	require.NotNil(t, s.Pending)
	diff(t, geom.Pt(200, 0), *s.Pending, approx)
}

func TestMidpointInsertion(t *testing.T) {
	el := scene.NewLinear(0, 0, false, geom.Pt(0, 0), geom.Pt(100, 0))
	h := newHarness(el)
	s := h.enter(t, el.ID)

	h.editor.Hover(s, at(51, 1), view)
	require.NotNil(t, s.HoveredMidpoint)
	assert.Equal(t, 0, s.HoveredMidpoint.Segment)

	require.True(t, h.editor.PointerDown(s, at(51, 1), view))
	assert.Equal(t, []int{1}, s.Selected)
	assert.Equal(t, 1, s.LastClicked)
	assert.True(t, s.Dragging)
	diff(t, []geom.Point{{X: 0, Y: 0}, {X: 50, Y: 0}, {X: 100, Y: 0}}, h.points(t, el.ID), approx)

	require.True(t, h.editor.Drag(s, at(51, 41), view))
	diff(t, geom.Pt(50, 40), h.points(t, el.ID)[1], approx)
}

func TestMidpointsSkipShortSegmentsAndTrackZoom(t *testing.T) {
	el := scene.NewLinear(0, 0, false, geom.Pt(0, 0), geom.Pt(30, 0), geom.Pt(130, 0))
	h := newHarness(el)
	s := h.enter(t, el.ID)
	cur := h.get(t, el.ID)

	mids := h.editor.Midpoints(s, cur, 1)
	require.Len(t, mids, 2)
	assert.Nil(t, mids[0])
	require.NotNil(t, mids[1])
	diff(t, geom.Pt(80, 0), *mids[1], approx)

	mids = h.editor.Midpoints(s, cur, 2)
	require.NotNil(t, mids[0])
	diff(t, geom.Pt(15, 0), *mids[0], approx)

	_, ok := h.editor.MidpointAt(s, cur, geom.Pt(15, 0), 1)
	assert.False(t, ok)
	mid, ok := h.editor.MidpointAt(s, cur, geom.Pt(15, 2), 2)
	require.True(t, ok)
	assert.Equal(t, 0, mid.Segment)
}

func TestMidpointHiddenOverHandle(t *testing.T) {
	el := scene.NewLinear(0, 0, false, geom.Pt(0, 0), geom.Pt(100, 0))
	h := newHarness(el)
	s := h.enter(t, el.ID)
	cur := h.get(t, el.ID)

	_, ok := h.editor.MidpointAt(s, cur, geom.Pt(2, 0), 1)
	assert.False(t, ok)
	assert.Equal(t, 0, h.editor.PointIndexUnderCursor(cur, geom.Pt(2, 0), 1))
}

func TestPointIndexUnderCursorPrefersLaterPoints(t *testing.T) {
	el := scene.NewLinear(0, 0, false, geom.Pt(0, 0), geom.Pt(6, 0), geom.Pt(100, 0))
	h := newHarness(el)

	assert.Equal(t, 1, h.editor.PointIndexUnderCursor(el, geom.Pt(3, 0), 1))
	assert.Equal(t, -1, h.editor.PointIndexUnderCursor(el, geom.Pt(50, 0), 1))
	// Handles shrink in scene units as the view zooms in.
	assert.Equal(t, -1, h.editor.PointIndexUnderCursor(el, geom.Pt(100, 8), 2))
	assert.Equal(t, 2, h.editor.PointIndexUnderCursor(el, geom.Pt(100, 8), 1))
}

func TestSelectionClickAndShiftToggle(t *testing.T) {
	el := scene.NewLinear(0, 0, false, geom.Pt(0, 0), geom.Pt(100, 0), geom.Pt(200, 0))
	h := newHarness(el)
	s := h.enter(t, el.ID)

	click := func(p Pointer) {
		h.editor.PointerDown(s, p, view)
		h.editor.PointerUp(s, p, view)
	}

	click(at(0, 0))
	assert.Equal(t, []int{0}, s.Selected)

	click(Pointer{Point: geom.Pt(200, 0), Shift: true})
	assert.Equal(t, []int{0, 2}, s.Selected)

	click(Pointer{Point: geom.Pt(0, 0), Shift: true})
	assert.Equal(t, []int{2}, s.Selected)

	click(at(100, 0))
	assert.Equal(t, []int{1}, s.Selected)

	assert.False(t, h.editor.PointerDown(s, at(500, 500), view))
	assert.Nil(t, s.Selected)
}

func TestSelectPointsInBox(t *testing.T) {
	el := scene.NewLinear(0, 0, false, geom.Pt(0, 0), geom.Pt(100, 0), geom.Pt(200, 0))
	h := newHarness(el)
	s := h.enter(t, el.ID)

	got := h.editor.SelectPointsInBox(s, geom.Box{X1: 50, Y1: -10, X2: 250, Y2: 10}, false)
	assert.Equal(t, []int{1, 2}, got)

	s.Selected = []int{0}
	got = h.editor.SelectPointsInBox(s, geom.Box{X1: 150, Y1: -10, X2: 250, Y2: 10}, true)
	assert.Equal(t, []int{0, 2}, got)
}

func TestDeleteOriginPointRebases(t *testing.T) {
	el := scene.NewLinear(5, 7, false, geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(20, 0))
	h := newHarness(el)
	s := h.enter(t, el.ID)
	s.Selected = []int{0}

	got, ok := h.editor.DeletePoints(s)
	require.True(t, ok)
	require.NotNil(t, got)

	diff(t, []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}, h.points(t, el.ID), approx)
	assert.InDelta(t, 15, got.X, 1e-9)
	assert.InDelta(t, 7, got.Y, 1e-9)
	assert.Equal(t, []int{0}, s.Selected)
}

func TestDeleteMiddlePoint(t *testing.T) {
	el := scene.NewLinear(0, 0, false, geom.Pt(0, 0), geom.Pt(10, 10), geom.Pt(20, 0))
	h := newHarness(el)
	s := h.enter(t, el.ID)
	s.Selected = []int{1}

	_, ok := h.editor.DeletePoints(s)
	require.True(t, ok)
	diff(t, []geom.Point{{X: 0, Y: 0}, {X: 20, Y: 0}}, h.points(t, el.ID), approx)
	assert.Equal(t, []int{0}, s.Selected)
}

func TestDeleteToSinglePointRemovesElement(t *testing.T) {
	el := scene.NewLinear(0, 0, false, geom.Pt(0, 0), geom.Pt(10, 0))
	h := newHarness(el)
	s := h.enter(t, el.ID)
	s.Selected = []int{1}

	got, ok := h.editor.DeletePoints(s)
	assert.True(t, ok)
	assert.Nil(t, got)
	_, ok = h.scene.Get(el.ID)
	assert.False(t, ok)
	_, ok = h.editor.Session(el.ID)
	assert.False(t, ok)
}

func TestDeleteBoundEndpointUnbinds(t *testing.T) {
	rect := scene.New(&scene.Generic{Form: scene.KindRectangle}, 0, 0, 100, 100)
	arrow := scene.NewLinear(105, 50, true, geom.Pt(0, 0), geom.Pt(50, 0), geom.Pt(100, 0))
	h := newHarness(rect, arrow)
	h.editor.binder.Commit(arrow.ID, binding.To(rect), binding.Unchanged)
	require.Len(t, h.get(t, rect.ID).BoundElements, 1)

	s := h.enter(t, arrow.ID)
	s.Selected = []int{0}
	_, ok := h.editor.DeletePoints(s)
	require.True(t, ok)

	l, _ := h.get(t, arrow.ID).Linear()
	assert.Nil(t, l.StartBinding)
	assert.Empty(t, h.get(t, rect.ID).BoundElements)
}

func TestDuplicateSelected(t *testing.T) {
	el := scene.NewLinear(0, 0, false, geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(20, 0))
	h := newHarness(el)
	s := h.enter(t, el.ID)
	s.Selected = []int{0}

	_, ok := h.editor.DuplicateSelected(s)
	require.True(t, ok)
	diff(t, []geom.Point{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 10, Y: 0}, {X: 20, Y: 0}}, h.points(t, el.ID), approx)
	assert.Equal(t, []int{1}, s.Selected)
}

func TestDuplicateLastPointIsNudged(t *testing.T) {
	el := scene.NewLinear(0, 0, false, geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(20, 0))
	h := newHarness(el)
	s := h.enter(t, el.ID)
	s.Selected = []int{2}

	_, ok := h.editor.DuplicateSelected(s)
	require.True(t, ok)
	diff(t, []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 20, Y: 0}, {X: 50, Y: 30}}, h.points(t, el.ID), approx)
	assert.Equal(t, []int{3}, s.Selected)
}

func TestDraggedEndpointBindsOnPointerUpOnly(t *testing.T) {
	rect := scene.New(&scene.Generic{Form: scene.KindRectangle}, 0, 0, 100, 100)
	arrow := scene.NewLinear(200, 50, true, geom.Pt(0, 0), geom.Pt(100, 0))
	h := newHarness(rect, arrow)
	s := h.enter(t, arrow.ID)
	rectVersion := h.get(t, rect.ID).Version

	require.True(t, h.editor.PointerDown(s, at(200, 50), view))
	require.True(t, h.editor.Drag(s, at(105, 50), view))
	assert.Equal(t, []string{rect.ID}, s.Suggested)
	assert.Equal(t, rectVersion, h.get(t, rect.ID).Version)
	l, _ := h.get(t, arrow.ID).Linear()
	assert.Nil(t, l.StartBinding)

	h.editor.PointerUp(s, at(105, 50), view)
	l, _ = h.get(t, arrow.ID).Linear()
	require.NotNil(t, l.StartBinding)
	assert.Equal(t, rect.ID, l.StartBinding.ElementID)
	assert.Len(t, h.get(t, rect.ID).BoundElements, 1)
	assert.Nil(t, s.Suggested)
}

func TestLinesDoNotBind(t *testing.T) {
	rect := scene.New(&scene.Generic{Form: scene.KindRectangle}, 0, 0, 100, 100)
	line := scene.NewLinear(200, 50, false, geom.Pt(0, 0), geom.Pt(100, 0))
	h := newHarness(rect, line)
	s := h.enter(t, line.ID)

	h.editor.PointerDown(s, at(200, 50), view)
	h.editor.Drag(s, at(105, 50), view)
	assert.Empty(t, s.Suggested)
	h.editor.PointerUp(s, at(105, 50), view)

	l, _ := h.get(t, line.ID).Linear()
	assert.Nil(t, l.StartBinding)
	assert.Empty(t, h.get(t, rect.ID).BoundElements)
}

func TestCaptionFollowsPoints(t *testing.T) {
	arrow := scene.NewLinear(0, 0, true, geom.Pt(0, 0), geom.Pt(100, 0))
	caption := scene.New(&scene.Text{Text: "a", ContainerID: arrow.ID}, 40, -5, 20, 10)
	l, _ := arrow.Linear()
	l.CaptionID = caption.ID
	h := newHarness(arrow, caption)
	s := h.enter(t, arrow.ID)

	require.True(t, h.editor.PointerDown(s, at(100, 0), view))
	require.True(t, h.editor.Drag(s, at(200, 0), view))

	got := h.get(t, caption.ID)
	assert.InDelta(t, 90, got.X, 1e-9)
	assert.InDelta(t, -5, got.Y, 1e-9)
}

func TestExitRemovesDegenerateElement(t *testing.T) {
	el := scene.NewLinear(0, 0, false, geom.Pt(0, 0))
	h := newHarness(el)
	s := h.enter(t, el.ID)

	assert.Nil(t, h.editor.Exit(s))
	_, ok := h.scene.Get(el.ID)
	assert.False(t, ok)
}

func TestExitReturnsElement(t *testing.T) {
	el := scene.NewLinear(0, 0, false, geom.Pt(0, 0), geom.Pt(10, 0))
	h := newHarness(el)
	s := h.enter(t, el.ID)

	got := h.editor.Exit(s)
	require.NotNil(t, got)
	assert.Equal(t, el.ID, got.ID)
	_, ok := h.editor.Session(el.ID)
	assert.False(t, ok)
}

func TestDeletedElementIsNoop(t *testing.T) {
	el := scene.NewLinear(0, 0, false, geom.Pt(0, 0), geom.Pt(10, 0))
	h := newHarness(el)
	s := h.enter(t, el.ID)
	require.NoError(t, h.scene.Delete(el.ID))

	assert.False(t, h.editor.PointerDown(s, at(0, 0), view))
	assert.False(t, h.editor.Drag(s, at(50, 50), view))
	assert.Nil(t, h.editor.PointerUp(s, at(50, 50), view))
	_, ok := h.editor.DeletePoints(s)
	assert.False(t, ok)
	assert.NotPanics(t, func() { h.editor.Hover(s, at(1, 1), view) })
}
