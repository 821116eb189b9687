package spotrod

import (
	"math"
	"testing"
)

// keplerElements solves Kepler's equation exactly, for comparison with the
// series in Elements.
func keplerElements(dt, period, a, k, h float64) (eta, xi float64) {
	e := math.Hypot(k, h)
	omega := math.Atan2(h, k)
	// True anomaly at transit puts the true longitude at π/2.
	f0 := math.Pi/2 - omega
	e0 := 2 * math.Atan(math.Sqrt((1-e)/(1+e))*math.Tan(f0/2))
	m := e0 - e*math.Sin(e0) + 2*math.Pi*dt/period

	ecc := m
	for i := 0; i < 50; i++ {
		ecc -= (ecc - e*math.Sin(ecc) - m) / (1 - e*math.Cos(ecc))
	}
	f := 2 * math.Atan2(math.Sqrt(1+e)*math.Sin(ecc/2), math.Sqrt(1-e)*math.Cos(ecc/2))
	rho := a * (1 - e*math.Cos(ecc))
	s, c := math.Sincos(f + omega)
	return rho * s, rho * c
}

func TestElementsCircular(t *testing.T) {
	const period, a = 2.0, 10.0
	dt := []float64{-0.5, -0.1, 0, 0.25, 1}
	eta, xi := Elements(dt, period, a, 0, 0)

	wantEta := make([]float64, len(dt))
	wantXi := make([]float64, len(dt))
	for i, d := range dt {
		wantEta[i] = a * math.Cos(2*math.Pi*d/period)
		wantXi[i] = -a * math.Sin(2*math.Pi*d/period)
	}
	diff(t, wantEta, eta, approx(1e-12))
	diff(t, wantXi, xi, approx(1e-12))
}

func TestElementsMidTransit(t *testing.T) {
	const a = 10.0
	for _, tc := range []struct{ k, h float64 }{
		{0.05, 0},
		{0, 0.05},
		{0.03, -0.04},
		{-0.1, 0.02},
	} {
		eta, xi := Elements([]float64{0}, 3, a, tc.k, tc.h)
		if math.Abs(xi[0]) > 1e-12 {
			t.Errorf("k=%v h=%v: ξ(0) = %v, expected 0", tc.k, tc.h, xi[0])
		}
		// Star-planet distance at conjunction, a(1 − e²) / (1 + e sin ω).
		e2 := tc.k*tc.k + tc.h*tc.h
		want := a * (1 - e2) / (1 + tc.h)
		if d := math.Abs(eta[0] - want); d > 5*a*math.Pow(e2, 1.5) {
			t.Errorf("k=%v h=%v: η(0) = %v, expected %v", tc.k, tc.h, eta[0], want)
		}
	}
}

func TestElementsKepler(t *testing.T) {
	const period, a = 3.5, 12.0
	dt := []float64{-0.2, -0.05, 0, 0.01, 0.1, 0.9, 1.7}
	for _, tc := range []struct{ k, h float64 }{
		{0.02, 0},
		{0, -0.02},
		{0.015, 0.01},
	} {
		eta, xi := Elements(dt, period, a, tc.k, tc.h)
		for i, d := range dt {
			wantEta, wantXi := keplerElements(d, period, a, tc.k, tc.h)
			// The series is exact to second order in e.
			if math.Abs(eta[i]-wantEta) > 1e-3 || math.Abs(xi[i]-wantXi) > 1e-3 {
				t.Errorf("k=%v h=%v Δt=%v: got (%v, %v), expected (%v, %v)",
					tc.k, tc.h, d, eta[i], xi[i], wantEta, wantXi)
			}
		}
	}
}

func TestElementsTo(t *testing.T) {
	dt := []float64{-0.1, 0, 0.1}
	eta := make([]float64, 5)
	xi := make([]float64, 5)
	ElementsTo(eta, xi, dt, 4, 8, 0.01, 0.02)
	wantEta, wantXi := Elements(dt, 4, 8, 0.01, 0.02)
	diff(t, wantEta, eta[:3])
	diff(t, wantXi, xi[:3])
	if eta[3] != 0 || xi[4] != 0 {
		t.Error("ElementsTo wrote past len(deltaT)")
	}
}

func TestSkyPosition(t *testing.T) {
	got := SkyPosition(10, 0, 10, 0.3)
	diff(t, Pt(0.3, 0), got, approx(1e-15))
	got = SkyPosition(8, -2, 10, 0.5)
	diff(t, Pt(0.4, 2), got, approx(1e-15))
}

func TestElementsLargeEccentricity(t *testing.T) {
	// Far outside the accuracy of the series, mid-transit is still where the
	// planet crosses in front of the star.
	for _, tc := range []struct{ k, h float64 }{
		{0.6, 0},
		{0, -0.6},
		{-0.5, 0.4},
	} {
		eta, xi := Elements([]float64{0}, 3, 10, tc.k, tc.h)
		if math.Abs(xi[0]) > 1e-10 || !(eta[0] > 0) {
			t.Errorf("k=%v h=%v: (η, ξ)(0) = (%v, %v), expected ξ = 0 and η > 0", tc.k, tc.h, eta[0], xi[0])
		}
		if theta, _ := trueLongitude(transitLongitude(tc.k, tc.h), tc.k, tc.h); math.Abs(theta-math.Pi/2) > 1e-12 {
			t.Errorf("k=%v h=%v: true longitude %v at mid-transit", tc.k, tc.h, theta)
		}
	}
}

func TestSkyPositionBehindStar(t *testing.T) {
	// Half a period after mid-transit the planet is behind the star, right
	// where it was in front of it in projection.
	eta, xi := Elements([]float64{-1.5, 0, 1.5}, 3, 10, 0, 0)
	front := SkyPosition(eta[1], xi[1], 10, 0.3)
	if front.Hypot() > 0.31 {
		t.Errorf("mid-transit position %v", front)
	}
	for _, i := range []int{0, 2} {
		pt := SkyPosition(eta[i], xi[i], 10, 0.3)
		if !math.IsInf(pt.Hypot(), 1) {
			t.Errorf("Δt=%v: planet behind the star at %v, expected it off the disk", []float64{-1.5, 0, 1.5}[i], pt)
		}
	}

	if pt := SkyPosition(-5, 2, 10, 0.3); pt.X != -0.15 || !math.IsInf(pt.Y, -1) {
		t.Errorf("got %v, expected (-0.15, -Inf)", pt)
	}
}
