package spotrod

import "math"

// SolveQuadratic finds real roots of a quadratic equation.
//
// Returns values of x for which c0 + c1 x + c2 x² = 0.0, in increasing order.
//
// If the equation is nearly linear, the root of the linear part is returned
// and the other root, which would be out of representable range, is dropped.
// In the degenerate case where all coefficients are zero, so that all values
// of x satisfy the equation, a single 0.0 is returned.
//
// The overlap routines feed it coefficients that are all scaled by the same
// length squared, and the roots do not depend on that scale.
func SolveQuadratic(c0, c1, c2 float64) ([2]float64, int) {
	sc0 := c0 / c2
	sc1 := c1 / c2
	if math.IsInf(sc0, 0) || math.IsInf(sc1, 0) || math.IsNaN(sc0) || math.IsNaN(sc1) {
		// c2 is zero or very small, treat as linear eqn
		root := -c0 / c1
		if !math.IsInf(root, 0) && !math.IsNaN(root) {
			return [2]float64{root}, 1
		} else if c0 == 0.0 && c1 == 0.0 {
			return [2]float64{0}, 1
		} else {
			return [2]float64{}, 0
		}
	}
	arg := sc1*sc1 - 4.0*sc0
	var root1 float64
	if math.IsInf(arg, 0) {
		// sc1 * sc1 overflowed. Find one root using sc1 x + x² = 0, the
		// other as sc0 / root1.
		root1 = -sc1
	} else {
		if arg < 0.0 {
			return [2]float64{}, 0
		} else if arg == 0.0 {
			return [2]float64{-0.5 * sc1}, 1
		}
		// See https://math.stackexchange.com/questions/866331
		root1 = -0.5 * (sc1 + math.Copysign(math.Sqrt(arg), sc1))
	}
	root2 := sc0 / root1
	if math.IsInf(root2, 0) || math.IsNaN(root2) {
		return [2]float64{root1}, 1
	}
	if root2 > root1 {
		return [2]float64{root1, root2}, 2
	}
	return [2]float64{root2, root1}, 2
}

// solveITP returns a root of f in [a, b] to within epsilon, by the ITP
// method of Oliveira and Takahashi. ya = f(a) must be negative and yb = f(b)
// positive.
//
// Each step takes the regula falsi point, truncates it towards the midpoint
// by k1(b − a)², and projects it into a shrinking neighborhood of the
// midpoint, so the solver never needs more than one step beyond the
// bisection count. k1 = 0.2 / (b − a), k2 = 2 and n0 = 1.
func solveITP(f func(float64) float64, a, b, epsilon, ya, yb float64) float64 {
	k1 := 0.2 / (b - a)
	nbisect := max(int(math.Ceil(math.Log2((b-a)/(2*epsilon)))), 0)
	// Radius of the allowed neighborhood is slack·2^-j − (b − a)/2 at step j.
	slack := epsilon * math.Ldexp(1, nbisect+1)
	for b-a > 2*epsilon {
		mid := 0.5 * (a + b)
		falsi := (yb*a - ya*b) / (yb - ya)
		dir := math.Copysign(1, mid-falsi)

		// Truncation.
		x := mid
		if delta := k1 * (b - a) * (b - a); delta <= math.Abs(mid-falsi) {
			x = falsi + dir*delta
		}
		// Projection.
		if r := slack - 0.5*(b-a); math.Abs(x-mid) > r {
			x = mid - dir*r
		}

		switch y := f(x); {
		case y > 0:
			b, yb = x, y
		case y < 0:
			a, ya = x, y
		default:
			return x
		}
		slack *= 0.5
	}
	return 0.5 * (a + b)
}

// clamp limits x to [lo, hi]. Cosines computed from rounded geometry can
// overshoot ±1 by a few ulps near tangency.
func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
