// Package scene holds the element model of a whiteboard document and the
// store that owns the canonical element list.
package scene

import (
	"slices"

	"github.com/storiny/web-sub003/internal/geom"
	"github.com/storiny/web-sub003/internal/typeid"
)

type Kind string

const (
	KindRectangle Kind = "rectangle"
	KindEllipse   Kind = "ellipse"
	KindDiamond   Kind = "diamond"
	KindLine      Kind = "line"
	KindArrow     Kind = "arrow"
	KindFreedraw  Kind = "freedraw"
	KindText      Kind = "text"
	KindImage     Kind = "image"
	KindFrame     Kind = "frame"
)

type Arrowhead string

const (
	ArrowheadNone     Arrowhead = ""
	ArrowheadArrow    Arrowhead = "arrow"
	ArrowheadBar      Arrowhead = "bar"
	ArrowheadDot      Arrowhead = "dot"
	ArrowheadTriangle Arrowhead = "triangle"
)

// BoundElement is a reverse reference from a shape to something attached to
// it: an arrow bound to its outline or a caption bound inside it.
type BoundElement struct {
	ID   string `json:"id"`
	Type Kind   `json:"type"`
}

// Binding attaches one endpoint of a linear element to another shape.
// Focus in [-1, 1] locates the approach line relative to the target center;
// Gap is the distance kept from the target outline.
type Binding struct {
	ElementID string  `json:"elementId"`
	Focus     float64 `json:"focus"`
	Gap       float64 `json:"gap"`
}

// Element is a single shape in the scene. The fields common to every kind
// live here; kind-specific data lives in Shape.
//
// Elements handed out by a Scene must be treated as immutable. Changes go
// through Scene.Mutate, which stores a modified copy under a new Version.
type Element struct {
	ID            string
	X             float64
	Y             float64
	Width         float64
	Height        float64
	Angle         float64 // radians, around the element center
	Version       int
	IsDeleted     bool
	BoundElements []BoundElement
	Shape         Shape
}

// Shape is the kind-specific payload of an element. The set of
// implementations is closed: Generic, Linear, Freedraw, Text, Image, Frame.
type Shape interface {
	Kind() Kind
	clone() Shape
}

// Generic is a closed box-like shape.
type Generic struct {
	Form Kind `json:"-"` // KindRectangle, KindEllipse or KindDiamond
}

// Linear is a multi-point shape (line or arrow). Points are local to the
// element origin and Points[0] is always the origin itself.
type Linear struct {
	Arrow          bool         `json:"-"`
	Points         []geom.Point `json:"points"`
	StartBinding   *Binding     `json:"startBinding"`
	EndBinding     *Binding     `json:"endBinding"`
	Curved         bool         `json:"curved"`
	StartArrowhead Arrowhead    `json:"startArrowhead,omitempty"`
	EndArrowhead   Arrowhead    `json:"endArrowhead,omitempty"`
	CaptionID      string       `json:"captionId,omitempty"`
}

// Freedraw is a freehand stroke recorded as a point cloud.
type Freedraw struct {
	Points    []geom.Point `json:"points"`
	Pressures []float64    `json:"pressures,omitempty"`
}

type Text struct {
	Text        string  `json:"text"`
	FontSize    float64 `json:"fontSize"`
	ContainerID string  `json:"containerId,omitempty"`
}

type Image struct {
	FileID string `json:"fileId"`
}

type Frame struct {
	Name string `json:"name"`
}

func (g *Generic) Kind() Kind {
	if g.Form == "" {
		return KindRectangle
	}
	return g.Form
}

func (l *Linear) Kind() Kind {
	if l.Arrow {
		return KindArrow
	}
	return KindLine
}

func (*Freedraw) Kind() Kind { return KindFreedraw }
func (*Text) Kind() Kind     { return KindText }
func (*Image) Kind() Kind    { return KindImage }
func (*Frame) Kind() Kind    { return KindFrame }

func (g *Generic) clone() Shape { c := *g; return &c }
func (t *Text) clone() Shape    { c := *t; return &c }
func (i *Image) clone() Shape   { c := *i; return &c }
func (f *Frame) clone() Shape   { c := *f; return &c }

func (f *Freedraw) clone() Shape {
	return &Freedraw{
		Points:    slices.Clone(f.Points),
		Pressures: slices.Clone(f.Pressures),
	}
}

func (l *Linear) clone() Shape {
	c := *l
	c.Points = slices.Clone(l.Points)
	if l.StartBinding != nil {
		b := *l.StartBinding
		c.StartBinding = &b
	}
	if l.EndBinding != nil {
		b := *l.EndBinding
		c.EndBinding = &b
	}
	return &c
}

// Kind returns the element's kind, derived from its shape.
func (e *Element) Kind() Kind {
	if e.Shape == nil {
		return ""
	}
	return e.Shape.Kind()
}

// Clone returns a deep copy of the element.
func (e *Element) Clone() *Element {
	c := *e
	c.BoundElements = slices.Clone(e.BoundElements)
	if e.Shape != nil {
		c.Shape = e.Shape.clone()
	}
	return &c
}

// Linear returns the linear payload if the element is a line or an arrow.
func (e *Element) Linear() (*Linear, bool) {
	l, ok := e.Shape.(*Linear)
	return l, ok
}

// Text returns the text payload if the element is a text element.
func (e *Element) Text() (*Text, bool) {
	t, ok := e.Shape.(*Text)
	return t, ok
}

// Freedraw returns the freedraw payload if the element is a freehand stroke.
func (e *Element) Freedraw() (*Freedraw, bool) {
	f, ok := e.Shape.(*Freedraw)
	return f, ok
}

// Bindable reports whether linear endpoints may attach to the element.
// Captions living inside a container are not bindable on their own.
func (e *Element) Bindable() bool {
	switch s := e.Shape.(type) {
	case *Generic, *Image, *Frame:
		return true
	case *Text:
		return s.ContainerID == ""
	default:
		return false
	}
}

// BoundTextID returns the id of the caption bound to the element, if any.
func (e *Element) BoundTextID() string {
	if l, ok := e.Linear(); ok && l.CaptionID != "" {
		return l.CaptionID
	}
	for _, b := range e.BoundElements {
		if b.Type == KindText {
			return b.ID
		}
	}
	return ""
}

// New creates an element with a fresh id at version 1.
func New(shape Shape, x, y, width, height float64) *Element {
	return &Element{
		ID:      typeid.NewElementID(),
		X:       x,
		Y:       y,
		Width:   width,
		Height:  height,
		Version: 1,
		Shape:   shape,
	}
}

// NewLinear creates a line (or arrow) whose first point sits at (x, y).
// pts are relative to (x, y); width and height follow the point extent.
func NewLinear(x, y float64, arrow bool, pts ...geom.Point) *Element {
	b := geom.BoxOf(pts...)
	if b.IsEmpty() {
		b = geom.Box{}
	}
	l := &Linear{Arrow: arrow, Points: slices.Clone(pts)}
	if arrow {
		l.EndArrowhead = ArrowheadArrow
	}
	return New(l, x, y, b.Width(), b.Height())
}
