// Package geom holds the planar primitives shared by the bounds engine, the
// binding resolver and the linear point editor: points, axis-aligned boxes,
// affine matrices and cubic Bézier segments.
package geom

import "math"

// Point is a position or offset in the plane.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (p Point) Add(o Point) Point { return Point{p.X + o.X, p.Y + o.Y} }
func (p Point) Sub(o Point) Point { return Point{p.X - o.X, p.Y - o.Y} }

// Scale multiplies both coordinates by f.
func (p Point) Scale(f float64) Point { return Point{p.X * f, p.Y * f} }

// Distance returns the Euclidean distance between p and o.
func (p Point) Distance(o Point) float64 {
	return math.Hypot(p.X-o.X, p.Y-o.Y)
}

// Midpoint returns the point halfway between p and o.
func (p Point) Midpoint(o Point) Point {
	return Point{(p.X + o.X) / 2, (p.Y + o.Y) / 2}
}

// Lerp linearly interpolates between p (t=0) and o (t=1).
func (p Point) Lerp(o Point, t float64) Point {
	return Point{p.X + (o.X-p.X)*t, p.Y + (o.Y-p.Y)*t}
}

// Rotate rotates p about center by angle radians. Positive angles turn
// clockwise on a y-down canvas.
func (p Point) Rotate(center Point, angle float64) Point {
	if angle == 0 {
		return p
	}
	sin, cos := math.Sincos(angle)
	dx, dy := p.X-center.X, p.Y-center.Y
	return Point{
		X: dx*cos - dy*sin + center.X,
		Y: dx*sin + dy*cos + center.Y,
	}
}

// Hypot returns the length of p treated as a vector.
func (p Point) Hypot() float64 {
	return math.Hypot(p.X, p.Y)
}

// Cross returns the z component of the cross product of p and o as vectors.
func (p Point) Cross(o Point) float64 {
	return p.X*o.Y - p.Y*o.X
}

// Snap rounds p to the nearest multiple of grid. A non-positive grid leaves p
// untouched.
func (p Point) Snap(grid float64) Point {
	if grid <= 0 {
		return p
	}
	return Point{
		X: math.Round(p.X/grid) * grid,
		Y: math.Round(p.Y/grid) * grid,
	}
}
