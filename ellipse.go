package spotrod

import "math"

// EllipseHalfAngle returns half of the angular measure of the circle of radius
// r, centered at the origin, that lies inside an ellipse. The ellipse has
// semi-axis a perpendicular to the line joining the two centers, semi-axis b
// along that line, and its center is at distance z from the origin.
//
// When the inside part is a single arc, which is the usual case, this is the
// arc's half central angle, and the arc is centered on the direction of the
// ellipse. A circle can also cross the ellipse four times, leaving two arcs
// placed symmetrically about that direction; the result is then half of their
// combined measure.
//
// The function is homogeneous of order zero in (r, a, b, z). Degenerate
// ellipses (a ≤ 0 or b ≤ 0) cover nothing.
//
// With a point on the circle written as (r cos φ, r sin φ), membership in the
// ellipse is a quadratic inequality in cos φ, so the boundary crossings are
// found in closed form:
//
//	r²(1 − q²) c² − 2rz c + z² + q²r² − b² ≤ 0,   c = cos φ, q = b / a
func EllipseHalfAngle(r, a, b, z float64) float64 {
	if a <= 0 || b <= 0 {
		return 0
	}
	if s := max(r, a, b, z); s > 0 {
		r, a, b, z = r/s, a/s, b/s, z/s
	}
	q := b / a
	c2 := r * r * (1 - q*q)
	c1 := -2 * r * z
	c0 := (z-b)*(z+b) + q*q*r*r
	g := func(c float64) float64 { return (c2*c+c1)*c + c0 }

	// Split [-1, 1] at the roots and keep the pieces where g ≤ 0. On [0, π]
	// cos is monotonic, so each piece maps to one arc.
	roots, n := SolveQuadratic(c0, c1, c2)
	var cuts [4]float64
	cuts[0] = -1
	nc := 1
	for _, x := range roots[:n] {
		if x > -1 && x < 1 {
			cuts[nc] = x
			nc++
		}
	}
	cuts[nc] = 1
	nc++

	var angle float64
	for i := 0; i+1 < nc; i++ {
		lo, hi := cuts[i], cuts[i+1]
		if hi <= lo {
			continue
		}
		if g(0.5*(lo+hi)) <= 0 {
			angle += math.Acos(lo) - math.Acos(hi)
		}
	}
	return clamp(angle, 0, math.Pi)
}

// ProjectedSemiMinor returns the semi-minor axis of the ellipse a circular
// spot of radius a appears as, when its center projects to distance z from
// the center of a star of unit radius. The spot is taken to be a flat disk
// tangent to the stellar surface, so it is foreshortened by the cosine of the
// angle between its normal and the line of sight:
//
//	b = a √(1 − z²)
//
// Spots at or beyond the limb have b = 0.
func ProjectedSemiMinor(a, z float64) float64 {
	mu2 := (1 - z) * (1 + z)
	if mu2 <= 0 {
		return 0
	}
	return a * math.Sqrt(mu2)
}

// EllipseAngle computes, for every radius in r, the half central angle of the
// circle of that radius inside a spot of radius a whose center projects to
// distance z from the stellar center. See [EllipseHalfAngle] and
// [ProjectedSemiMinor].
func EllipseAngle(r []float64, a, z float64) []float64 {
	out := make([]float64, len(r))
	EllipseAngleTo(out, r, a, z)
	return out
}

// EllipseAngleTo is like [EllipseAngle] but stores the result in dst, which
// must be at least as long as r.
func EllipseAngleTo(dst, r []float64, a, z float64) {
	dst = dst[:len(r)]
	b := ProjectedSemiMinor(a, z)
	for i, ri := range r {
		dst[i] = EllipseHalfAngle(ri, a, b, z)
	}
}
