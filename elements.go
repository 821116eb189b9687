package spotrod

import "math"

// Elements computes the orbital coordinates η (eta) and ξ (xi) of a planet at
// times deltaT relative to mid-transit.
//
// period is the orbital period, in the same unit as deltaT, and a is the
// semimajor axis. k = e cos ω and h = e sin ω are the components of the
// eccentricity vector, ω being the argument of periastron.
//
// η and ξ are coordinates in the orbital plane: η points from the star
// towards the observer's side of the orbit and equals the star-planet distance
// at mid-transit, ξ lies along the transit chord and is zero at mid-transit.
// ξ decreases through the transit; see [SkyPosition] for the conversion to
// sky-plane coordinates.
//
// Instead of solving Kepler's equation for every sample, Elements uses the
// classical expansions of the true longitude and radius in powers of the
// eccentricity, truncated after the second order:
//
//	θ = λ + 2e sin M + (5/4)e² sin 2M
//	ρ = a(1 − e cos M + (e²/2)(1 − cos 2M))
//
// with the mean longitude λ growing linearly in time. This is accurate for
// the small to moderate eccentricities of transiting planets. For a circular
// orbit it reduces to η = a cos(2πΔT/P), ξ = −a sin(2πΔT/P).
func Elements(deltaT []float64, period, a, k, h float64) (eta, xi []float64) {
	eta = make([]float64, len(deltaT))
	xi = make([]float64, len(deltaT))
	ElementsTo(eta, xi, deltaT, period, a, k, h)
	return eta, xi
}

// ElementsTo is like [Elements] but stores the results in eta and xi, which
// must be at least as long as deltaT.
func ElementsTo(eta, xi, deltaT []float64, period, a, k, h float64) {
	eta = eta[:len(deltaT)]
	xi = xi[:len(deltaT)]
	meanMotion := 2 * math.Pi / period
	lambda0 := transitLongitude(k, h)
	for i, dt := range deltaT {
		theta, rho := trueLongitude(lambda0+meanMotion*dt, k, h)
		s, c := math.Sincos(theta)
		eta[i] = a * rho * s
		xi[i] = a * rho * c
	}
}

// trueLongitude returns the true longitude and the radius in units of the
// semimajor axis at mean longitude lambda.
func trueLongitude(lambda, k, h float64) (theta, rho float64) {
	s, c := math.Sincos(lambda)
	// e sin M and e cos M, M = λ − ω being the mean anomaly.
	esin := k*s - h*c
	ecos := k*c + h*s
	theta = lambda + 2*esin + 2.5*esin*ecos
	// (e²/2)(1 − cos 2M) = (e sin M)².
	rho = 1 - ecos + esin*esin
	return theta, rho
}

// transitLongitude returns the mean longitude at which the true longitude is
// π/2, which is where the planet crosses in front of the star.
func transitLongitude(k, h float64) float64 {
	if k == 0 && h == 0 {
		return math.Pi / 2
	}
	f := func(lambda float64) float64 {
		theta, _ := trueLongitude(lambda, k, h)
		return theta - math.Pi/2
	}
	// |θ − λ| ≤ 2e + (5/4)e², so f is negative at lo and positive at hi.
	// Beyond e ≈ 0.3 the series stops being monotonic in λ and the root
	// found is one of several crossings.
	e2 := k*k + h*h
	w := 2*math.Sqrt(e2) + 1.25*e2 + 1e-3
	lo, hi := math.Pi/2-w, math.Pi/2+w
	return solveITP(f, lo, hi, 1e-15, f(lo), f(hi))
}

// SkyPosition converts orbital coordinates to sky-plane planet coordinates in
// units of the stellar radius, for a planet on an orbit with semimajor axis a
// and impact parameter impact. x is perpendicular to the transit chord and y
// runs along it, increasing through the transit.
//
// With η < 0 the planet is behind the star, around secondary eclipse, and
// can't block any of its light. Y is then ±Inf, with the sign of −ξ, so that
// the planet's distance from the stellar center is infinite and the sample
// is out of transit.
func SkyPosition(eta, xi, a, impact float64) Point {
	pt := Point{
		X: impact * eta / a,
		Y: -xi,
	}
	if eta < 0 {
		pt.Y = math.Copysign(math.Inf(1), pt.Y)
	}
	return pt
}
