package bounds

import (
	"math"

	"github.com/storiny/web-sub003/internal/geom"
	"github.com/storiny/web-sub003/internal/scene"
)

// strokeSamples is the number of chords each cubic is flattened into when
// measuring distance to a stroke.
const strokeSamples = 16

// OutlineDistance returns the signed distance from p to the outline of a
// box-like element: negative inside, positive outside. Linear and freedraw
// elements have no interior and report the distance to their stroke.
func (e *Engine) OutlineDistance(el *scene.Element, p geom.Point) float64 {
	switch s := el.Shape.(type) {
	case *scene.Linear:
		return e.StrokeDistance(el, p)
	case *scene.Freedraw:
		return freedrawDistance(el, s, p)
	}

	c := e.AbsoluteCoords(el, false)
	center := c.Center()
	q := p.Rotate(center, -el.Angle).Sub(center)
	hw, hh := (c.X2-c.X1)/2, (c.Y2-c.Y1)/2

	switch el.Kind() {
	case scene.KindEllipse:
		return ellipseDistance(q, hw, hh)
	case scene.KindDiamond:
		return diamondDistance(q, hw, hh)
	default:
		return max(math.Abs(q.X)-hw, math.Abs(q.Y)-hh)
	}
}

// StrokeDistance returns the distance from p to the rendered stroke of a
// linear element, or +Inf for anything else.
func (e *Engine) StrokeDistance(el *scene.Element, p geom.Point) float64 {
	l, ok := el.Linear()
	if !ok {
		return math.Inf(1)
	}
	center := e.AbsoluteCoords(el, false).Center()
	path := e.Path(el)
	if len(path) == 0 {
		if len(l.Points) == 0 {
			return p.Distance(geom.Pt(el.X, el.Y))
		}
		return p.Distance(toGlobal(el, center, l.Points[0]))
	}

	best := math.Inf(1)
	for _, seg := range path.Transform(globalTransform(el, center)) {
		prev := seg.P0
		for i := 1; i <= strokeSamples; i++ {
			next := seg.Eval(float64(i) / strokeSamples)
			best = min(best, segmentDistance(p, prev, next))
			prev = next
		}
	}
	return best
}

// HitTest reports whether p lies on or inside the element, allowing
// threshold units of slack around the outline.
func (e *Engine) HitTest(el *scene.Element, p geom.Point, threshold float64) bool {
	if !expand(e.Bounds(el), threshold).Contains(p) {
		return false
	}
	return e.OutlineDistance(el, p) <= threshold
}

func expand(b geom.Box, d float64) geom.Box {
	return geom.Box{X1: b.X1 - d, Y1: b.Y1 - d, X2: b.X2 + d, Y2: b.Y2 + d}
}

func freedrawDistance(el *scene.Element, f *scene.Freedraw, p geom.Point) float64 {
	if len(f.Points) == 0 {
		return math.Inf(1)
	}
	c := pointsBox(f.Points, el).Center()
	q := p.Rotate(c, -el.Angle).Sub(geom.Pt(el.X, el.Y))
	if len(f.Points) == 1 {
		return q.Distance(f.Points[0])
	}
	best := math.Inf(1)
	for i := 0; i+1 < len(f.Points); i++ {
		best = min(best, segmentDistance(q, f.Points[i], f.Points[i+1]))
	}
	return best
}

// segmentDistance returns the distance from p to the segment a-b.
func segmentDistance(p, a, b geom.Point) float64 {
	ab := b.Sub(a)
	l2 := ab.X*ab.X + ab.Y*ab.Y
	if l2 == 0 {
		return p.Distance(a)
	}
	ap := p.Sub(a)
	t := (ap.X*ab.X + ap.Y*ab.Y) / l2
	t = max(0, min(1, t))
	return p.Distance(a.Add(ab.Scale(t)))
}

// diamondDistance is the signed distance from q (relative to the center) to
// the edge of the diamond facing q's quadrant.
func diamondDistance(q geom.Point, hw, hh float64) float64 {
	n := math.Hypot(hw, hh)
	if n == 0 {
		return q.Hypot()
	}
	return (math.Abs(q.X)*hh + math.Abs(q.Y)*hw - hw*hh) / n
}

// ellipseDistance is the signed distance from q (relative to the center) to
// an axis-aligned ellipse with half-axes a and b. The closest point is found
// by a few rounds of fixed-point iteration on the first quadrant.
func ellipseDistance(q geom.Point, a, b float64) float64 {
	px, py := math.Abs(q.X), math.Abs(q.Y)
	if a == 0 || b == 0 {
		return max(px-a, py-b)
	}

	tx, ty := math.Sqrt2/2, math.Sqrt2/2
	for range 3 {
		x, y := a*tx, b*ty
		ex := (a*a - b*b) * tx * tx * tx / a
		ey := (b*b - a*a) * ty * ty * ty / b
		rx, ry := x-ex, y-ey
		qx, qy := px-ex, py-ey
		r := math.Hypot(rx, ry)
		qd := math.Hypot(qx, qy)
		if qd == 0 {
			break
		}
		tx = max(0, min(1, (qx*r/qd+ex)/a))
		ty = max(0, min(1, (qy*r/qd+ey)/b))
		t := math.Hypot(tx, ty)
		tx /= t
		ty /= t
	}

	d := math.Hypot(px-a*tx, py-b*ty)
	if (px*px)/(a*a)+(py*py)/(b*b) < 1 {
		return -d
	}
	return d
}
