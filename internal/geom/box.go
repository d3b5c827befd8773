package geom

import "math"

// Box is an axis-aligned bounding box (x1, y1, x2, y2).
type Box struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// EmptyBox returns the identity element for Extend and Union.
func EmptyBox() Box {
	return Box{
		X1: math.Inf(1),
		Y1: math.Inf(1),
		X2: math.Inf(-1),
		Y2: math.Inf(-1),
	}
}

// BoxOf returns the bounding box of pts, or EmptyBox when pts is empty.
func BoxOf(pts ...Point) Box {
	b := EmptyBox()
	for _, p := range pts {
		b = b.Extend(p)
	}
	return b
}

// Extend returns the smallest box containing b and p.
func (b Box) Extend(p Point) Box {
	return Box{
		X1: min(b.X1, p.X),
		Y1: min(b.Y1, p.Y),
		X2: max(b.X2, p.X),
		Y2: max(b.Y2, p.Y),
	}
}

// Union returns the smallest box containing both boxes.
func (b Box) Union(o Box) Box {
	return Box{
		X1: min(b.X1, o.X1),
		Y1: min(b.Y1, o.Y1),
		X2: max(b.X2, o.X2),
		Y2: max(b.Y2, o.Y2),
	}
}

// Translate moves the box by d.
func (b Box) Translate(d Point) Box {
	return Box{b.X1 + d.X, b.Y1 + d.Y, b.X2 + d.X, b.Y2 + d.Y}
}

// IsEmpty reports whether the box has never been extended.
func (b Box) IsEmpty() bool {
	return b.X1 > b.X2 || b.Y1 > b.Y2
}

func (b Box) Width() float64  { return b.X2 - b.X1 }
func (b Box) Height() float64 { return b.Y2 - b.Y1 }

// Center returns the center point of the box.
func (b Box) Center() Point {
	return Point{(b.X1 + b.X2) / 2, (b.Y1 + b.Y2) / 2}
}

// Contains checks if a point is inside the box, edges included.
func (b Box) Contains(p Point) bool {
	return p.X >= b.X1 && p.X <= b.X2 && p.Y >= b.Y1 && p.Y <= b.Y2
}

// Corners returns top-left, top-right, bottom-right, bottom-left.
func (b Box) Corners() [4]Point {
	return [4]Point{
		{b.X1, b.Y1},
		{b.X2, b.Y1},
		{b.X2, b.Y2},
		{b.X1, b.Y2},
	}
}
