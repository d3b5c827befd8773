package geom

import "math"

// SolveQuadratic finds the real roots of c0 + c1·x + c2·x² = 0.
//
// Nearly-linear equations are solved as linear ones. When every coefficient
// is zero a single root 0 is reported. Roots are returned in ascending order.
func SolveQuadratic(c0, c1, c2 float64) ([2]float64, int) {
	sc0 := c0 / c2
	sc1 := c1 / c2
	if c2 == 0 || math.IsInf(sc0, 0) || math.IsInf(sc1, 0) {
		root := -c0 / c1
		switch {
		case !math.IsInf(root, 0) && !math.IsNaN(root):
			return [2]float64{root}, 1
		case c0 == 0 && c1 == 0:
			return [2]float64{0}, 1
		default:
			return [2]float64{}, 0
		}
	}

	disc := sc1*sc1 - 4*sc0
	var r1 float64
	if math.IsInf(disc, 0) {
		// sc1² overflowed; take the dominant root of x² + sc1·x.
		r1 = -sc1
	} else {
		switch {
		case disc < 0:
			return [2]float64{}, 0
		case disc == 0:
			return [2]float64{-0.5 * sc1}, 1
		}
		// Avoids cancellation between sc1 and the square root.
		r1 = -0.5 * (sc1 + math.Copysign(math.Sqrt(disc), sc1))
	}

	r2 := sc0 / r1
	if math.IsInf(r2, 0) || math.IsNaN(r2) {
		return [2]float64{r1}, 1
	}
	if r2 < r1 {
		return [2]float64{r2, r1}, 2
	}
	return [2]float64{r1, r2}, 2
}
