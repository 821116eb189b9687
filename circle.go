package spotrod

import "math"

// CircleHalfAngle returns the half central angle of the arc of the circle of
// radius r, centered at the origin, that lies inside the circle of radius p
// whose center is at distance z from the origin.
//
// The result is in [0, π]. The function is homogeneous of order zero:
// CircleHalfAngle(αr, αp, αz) = CircleHalfAngle(r, p, z) for α > 0.
//
// Tangent and nested configurations use closed conventions. Concentric
// circles (z = 0) give π if r ≤ p and 0 otherwise. External tangency (z = r +
// p) gives 0. A circle of radius r nested inside the other one, touching it or
// not, gives π; the other circle nested inside the circle of radius r gives 0.
func CircleHalfAngle(r, p, z float64) float64 {
	switch {
	case z <= 0:
		if r <= p {
			return math.Pi
		}
		return 0
	case z >= r+p:
		return 0
	case r <= p-z:
		return math.Pi
	case r >= p+z:
		return 0
	}
	// Law of cosines in the triangle of the two centers and an intersection
	// point. Lengths are scaled to at most 1 first so that 2zr can't
	// underflow to zero.
	s := max(r, p, z)
	r, p, z = r/s, p/s, z/s
	c := ((z-p)*(z+p) + r*r) / (2 * z * r)
	return math.Acos(clamp(c, -1, 1))
}

// CircleAngle computes [CircleHalfAngle] for every radius in r.
func CircleAngle(r []float64, p, z float64) []float64 {
	out := make([]float64, len(r))
	CircleAngleTo(out, r, p, z)
	return out
}

// CircleAngleTo is like [CircleAngle] but stores the result in dst, which must
// be at least as long as r.
func CircleAngleTo(dst, r []float64, p, z float64) {
	dst = dst[:len(r)]
	for i, ri := range r {
		dst[i] = CircleHalfAngle(ri, p, z)
	}
}
