package geom

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

func TestSolveQuadratic(t *testing.T) {
	tests := []struct {
		name       string
		c0, c1, c2 float64
		want       []float64
	}{
		{name: "two roots", c0: -6, c1: 1, c2: 1, want: []float64{-3, 2}},
		{name: "double root", c0: 1, c1: -2, c2: 1, want: []float64{1}},
		{name: "no real roots", c0: 1, c1: 0, c2: 1, want: []float64{}},
		{name: "linear", c0: -4, c1: 2, c2: 0, want: []float64{2}},
		{name: "constant", c0: 3, c1: 0, c2: 0, want: []float64{}},
		{name: "all zero", c0: 0, c1: 0, c2: 0, want: []float64{0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roots, n := SolveQuadratic(tt.c0, tt.c1, tt.c2)
			diff(t, tt.want, roots[:n], approx, cmpopts.EquateEmpty())
		})
	}
}

func TestRotate(t *testing.T) {
	p := Pt(10, 0).Rotate(Pt(0, 0), math.Pi/2)
	diff(t, Pt(0, 10), p, approx)

	p = Pt(5, 5).Rotate(Pt(5, 5), 1.234)
	assert.Equal(t, Pt(5, 5), p)
}

func TestSnap(t *testing.T) {
	assert.Equal(t, Pt(20, 40), Pt(14, 31).Snap(20))
	assert.Equal(t, Pt(14, 31), Pt(14, 31).Snap(0))
}

func TestMatrixInvertRoundTrip(t *testing.T) {
	m := ElementTransform(30, -12, 0.7, Pt(80, 40))
	inv := m.Invert()
	for _, p := range []Point{{0, 0}, {13, -4}, {-100, 250}} {
		diff(t, p, inv.Apply(m.Apply(p)), cmpopts.EquateApprox(0, 1e-9))
	}
	assert.True(t, m.Multiply(inv).IsIdentity())
}

func TestRotateAboutMatchesPointRotate(t *testing.T) {
	c := Pt(3, 4)
	m := RotateAbout(c, 2.1)
	p := Pt(-7, 11)
	diff(t, p.Rotate(c, 2.1), m.Apply(p), approx)
	assert.True(t, RotateAbout(c, 0).IsIdentity())
}

func TestApplyBox(t *testing.T) {
	b := Box{0, 0, 10, 20}
	got := RotateAbout(b.Center(), math.Pi/2).ApplyBox(b)
	diff(t, Box{-5, 5, 15, 15}, got, approx)
}

func TestBox(t *testing.T) {
	assert.True(t, EmptyBox().IsEmpty())
	b := BoxOf(Pt(3, 1), Pt(-2, 7))
	assert.Equal(t, Box{-2, 1, 3, 7}, b)
	assert.Equal(t, 5.0, b.Width())
	assert.Equal(t, Pt(0.5, 4), b.Center())
	assert.True(t, b.Contains(Pt(0, 1)))
	assert.False(t, b.Contains(Pt(4, 1)))
	assert.Equal(t, b, EmptyBox().Union(b))
}

func TestCubicExtremaAndBounds(t *testing.T) {
	// Symmetric arch: x is monotonic, y peaks at t=0.5.
	c := Cubic{Pt(0, 0), Pt(0, -40), Pt(100, -40), Pt(100, 0)}
	ts, n := c.Extrema()
	diff(t, []float64{0.5}, ts[:n], approx)

	b := c.Bounds()
	diff(t, Box{0, -30, 100, 0}, b, approx)

	// Every sampled point lies inside the analytic bounds.
	for i := 0; i <= 100; i++ {
		p := c.Eval(float64(i) / 100)
		assert.True(t, p.X >= b.X1-1e-9 && p.X <= b.X2+1e-9 && p.Y >= b.Y1-1e-9 && p.Y <= b.Y2+1e-9, "t=%d", i)
	}
}

func TestCubicBoundsTighterThanHull(t *testing.T) {
	c := Cubic{Pt(0, 0), Pt(50, 100), Pt(100, -100), Pt(150, 0)}
	b := c.Bounds()
	assert.Less(t, b.Y2, 100.0)
	assert.Greater(t, b.Y1, -100.0)
}

func TestLineCubic(t *testing.T) {
	c := LineCubic(Pt(0, 0), Pt(90, 30))
	ts, n := c.Extrema()
	assert.Zero(t, n, "straight segment has no interior extrema: %v", ts)
	diff(t, Pt(45, 15), c.Eval(0.5), approx)
	assert.InDelta(t, math.Hypot(90, 30), c.Length(), 1e-9)
	assert.InDelta(t, 0.5, c.ParamAtLength(0.5), 1e-9)
}

func TestParamAtLength(t *testing.T) {
	// Control points bunched near the start: equal arc length is reached late.
	c := Cubic{Pt(0, 0), Pt(1, 0), Pt(2, 0), Pt(100, 0)}
	tm := c.ParamAtLength(0.5)
	assert.Greater(t, tm, 0.5)
	assert.InDelta(t, 50, c.Eval(tm).X, 1.5)

	assert.Zero(t, c.ParamAtLength(0))
	assert.Equal(t, 1.0, c.ParamAtLength(1))

	degenerate := Cubic{Pt(4, 4), Pt(4, 4), Pt(4, 4), Pt(4, 4)}
	assert.Zero(t, degenerate.ParamAtLength(0.5))
}

func TestPathBoundsAndTransform(t *testing.T) {
	p := Path{LineCubic(Pt(0, 0), Pt(10, 0)), LineCubic(Pt(10, 0), Pt(10, 10))}
	diff(t, Box{0, 0, 10, 10}, p.Bounds(), approx)
	moved := p.Transform(Translate(5, 5))
	diff(t, Box{5, 5, 15, 15}, moved.Bounds(), approx)
	assert.True(t, Path(nil).Bounds().IsEmpty())
}
