package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storiny/web-sub003/internal/geom"
)

func TestMutateBumpsVersionAndCopies(t *testing.T) {
	s := NewScene()
	el := NewLinear(10, 20, false, geom.Pt(0, 0), geom.Pt(100, 0))
	s.Add(el)

	var seen []int
	unsubscribe := s.Subscribe(func(e *Element) { seen = append(seen, e.Version) })

	next, err := s.Mutate(el.ID, func(e *Element) {
		l, _ := e.Linear()
		l.Points[1] = geom.Pt(50, 50)
	})
	require.NoError(t, err)

	assert.Equal(t, 2, next.Version)
	assert.Equal(t, 1, el.Version)
	old, _ := el.Linear()
	assert.Equal(t, geom.Pt(100, 0), old.Points[1])
	cur, _ := next.Linear()
	assert.Equal(t, geom.Pt(50, 50), cur.Points[1])

	unsubscribe()
	_, err = s.Mutate(el.ID, func(e *Element) { e.X = 0 })
	require.NoError(t, err)
	assert.Equal(t, []int{2}, seen)
}

func TestAddReplacementBumpsVersion(t *testing.T) {
	s := NewScene()
	el := New(&Generic{Form: KindRectangle}, 0, 0, 10, 10)
	s.Add(el)

	replacement := el.Clone()
	replacement.Width = 40
	s.Add(replacement)

	got, ok := s.Get(el.ID)
	require.True(t, ok)
	assert.Equal(t, 2, got.Version)
	assert.Equal(t, 40.0, got.Width)
	assert.Equal(t, 1, s.Len())

	ahead := el.Clone()
	ahead.Version = 9
	s.Add(ahead)
	got, _ = s.Get(el.ID)
	assert.Equal(t, 9, got.Version)
}

func TestMutateUnknown(t *testing.T) {
	s := NewScene()
	_, err := s.Mutate("el_missing", func(*Element) {})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteHidesElement(t *testing.T) {
	s := NewScene()
	a := New(&Generic{Form: KindRectangle}, 0, 0, 10, 10)
	b := New(&Generic{Form: KindEllipse}, 0, 0, 10, 10)
	s.Add(a)
	s.Add(b)

	require.NoError(t, s.Delete(a.ID))

	_, ok := s.Get(a.ID)
	assert.False(t, ok)
	got, ok := s.Lookup(a.ID)
	require.True(t, ok)
	assert.True(t, got.IsDeleted)
	assert.Len(t, s.NonDeleted(), 1)
	assert.Len(t, s.Elements(), 2)
	assert.Empty(t, s.NonDeleted(KindRectangle))
}

func TestNonDeletedKeepsZOrder(t *testing.T) {
	s := NewSampleScene()
	els := s.NonDeleted()
	require.Len(t, els, 7)
	assert.Equal(t, KindRectangle, els[0].Kind())
	assert.Equal(t, KindFreedraw, els[6].Kind())
	assert.Len(t, s.NonDeleted(KindArrow, KindLine), 2)
}

func TestBindable(t *testing.T) {
	tests := []struct {
		name  string
		shape Shape
		want  bool
	}{
		{"rectangle", &Generic{Form: KindRectangle}, true},
		{"image", &Image{}, true},
		{"frame", &Frame{}, true},
		{"free text", &Text{}, true},
		{"caption", &Text{ContainerID: "el_x"}, false},
		{"line", &Linear{}, false},
		{"freedraw", &Freedraw{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.shape, 0, 0, 1, 1).Bindable())
		})
	}
}

func TestCloneIsDeep(t *testing.T) {
	el := NewLinear(0, 0, true, geom.Pt(0, 0), geom.Pt(10, 0))
	l, _ := el.Linear()
	l.StartBinding = &Binding{ElementID: "el_a", Gap: 4}
	el.BoundElements = []BoundElement{{ID: "el_t", Type: KindText}}

	c := el.Clone()
	cl, _ := c.Linear()
	cl.Points[1].X = 99
	cl.StartBinding.Gap = 1
	c.BoundElements[0].ID = "el_u"

	assert.Equal(t, 10.0, l.Points[1].X)
	assert.Equal(t, 4.0, l.StartBinding.Gap)
	assert.Equal(t, "el_t", el.BoundElements[0].ID)
}

func TestSampleSceneBindings(t *testing.T) {
	s := NewSampleScene()
	arrows := s.NonDeleted(KindArrow)
	require.Len(t, arrows, 1)
	l, _ := arrows[0].Linear()
	require.NotNil(t, l.StartBinding)
	require.NotNil(t, l.EndBinding)

	start, ok := s.Get(l.StartBinding.ElementID)
	require.True(t, ok)
	assert.Contains(t, start.BoundElements, BoundElement{ID: arrows[0].ID, Type: KindArrow})
	assert.NotEmpty(t, arrows[0].BoundTextID())
}
