package geom

import "sort"

// arcLengthSamples is the resolution of the chord table used to map arc
// length fractions back to curve parameters.
const arcLengthSamples = 32

// Cubic is a cubic Bézier segment.
type Cubic struct {
	P0, P1, P2, P3 Point
}

// LineCubic returns the straight segment a→b expressed as a cubic, with the
// control points at one and two thirds.
func LineCubic(a, b Point) Cubic {
	return Cubic{
		P0: a,
		P1: a.Lerp(b, 1.0/3.0),
		P2: a.Lerp(b, 2.0/3.0),
		P3: b,
	}
}

// Eval returns the point at parameter t.
func (c Cubic) Eval(t float64) Point {
	mt := 1 - t
	a := mt * mt * mt
	b := 3 * mt * mt * t
	d := 3 * mt * t * t
	e := t * t * t
	return Point{
		X: a*c.P0.X + b*c.P1.X + d*c.P2.X + e*c.P3.X,
		Y: a*c.P0.Y + b*c.P1.Y + d*c.P2.Y + e*c.P3.Y,
	}
}

// Extrema returns the parameters in the open interval (0, 1) at which either
// coordinate has a local extremum, in ascending order.
//
// Per axis the derivative 3[(1-t)²d0 + 2t(1-t)d1 + t²d2] is a quadratic in t,
// so each axis contributes at most two roots.
func (c Cubic) Extrema() ([4]float64, int) {
	var out [4]float64
	n := 0
	axis := func(d0, d1, d2 float64) {
		roots, k := SolveQuadratic(d0, 2*(d1-d0), d0-2*d1+d2)
		for _, t := range roots[:k] {
			if t > 0 && t < 1 {
				out[n] = t
				n++
			}
		}
	}

	d0 := c.P1.Sub(c.P0)
	d1 := c.P2.Sub(c.P1)
	d2 := c.P3.Sub(c.P2)
	axis(d0.X, d1.X, d2.X)
	axis(d0.Y, d1.Y, d2.Y)
	sort.Float64s(out[:n])
	return out, n
}

// Bounds returns the exact axis-aligned bounding box of the segment: the
// endpoints plus every interior extremum.
func (c Cubic) Bounds() Box {
	b := BoxOf(c.P0, c.P3)
	ts, n := c.Extrema()
	for _, t := range ts[:n] {
		b = b.Extend(c.Eval(t))
	}
	return b
}

// Transform applies m to every control point. Affine maps commute with the
// Bézier construction, so the result is exactly the transformed curve.
func (c Cubic) Transform(m Matrix2D) Cubic {
	return Cubic{
		P0: m.Apply(c.P0),
		P1: m.Apply(c.P1),
		P2: m.Apply(c.P2),
		P3: m.Apply(c.P3),
	}
}

// ArcLengths returns the cumulative chord lengths of the segment sampled at
// n+1 evenly spaced parameters. The first entry is always 0.
func (c Cubic) ArcLengths(n int) []float64 {
	if n < 1 {
		n = 1
	}
	out := make([]float64, n+1)
	prev := c.P0
	for i := 1; i <= n; i++ {
		p := c.Eval(float64(i) / float64(n))
		out[i] = out[i-1] + prev.Distance(p)
		prev = p
	}
	return out
}

// Length approximates the arc length of the segment.
func (c Cubic) Length() float64 {
	lengths := c.ArcLengths(arcLengthSamples)
	return lengths[len(lengths)-1]
}

// ParamAtLength maps a fraction of the arc length (0..1) to the curve
// parameter t, so that Eval(ParamAtLength(0.5)) lies halfway along the
// rendered curve rather than at t=0.5.
func (c Cubic) ParamAtLength(fraction float64) float64 {
	lengths := c.ArcLengths(arcLengthSamples)
	total := lengths[len(lengths)-1]
	if total == 0 || fraction <= 0 {
		return 0
	}
	if fraction >= 1 {
		return 1
	}
	target := fraction * total

	// Largest sample index whose length does not exceed the target.
	i := sort.SearchFloat64s(lengths, target)
	if i < len(lengths) && lengths[i] == target {
		return float64(i) / arcLengthSamples
	}
	i--
	span := lengths[i+1] - lengths[i]
	frac := 0.0
	if span > 0 {
		frac = (target - lengths[i]) / span
	}
	return (float64(i) + frac) / arcLengthSamples
}

// Path is an ordered run of connected cubic segments.
type Path []Cubic

// Bounds returns the union of the exact segment bounds. An empty path yields
// EmptyBox.
func (p Path) Bounds() Box {
	b := EmptyBox()
	for _, c := range p {
		b = b.Union(c.Bounds())
	}
	return b
}

// Transform applies m to every segment.
func (p Path) Transform(m Matrix2D) Path {
	out := make(Path, len(p))
	for i, c := range p {
		out[i] = c.Transform(m)
	}
	return out
}
