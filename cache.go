package spotrod

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Annuli is the integration grid over the stellar disk: the radii of n
// concentric rings and their flux weights.
type Annuli struct {
	R []float64
	F []float64
}

// NewAnnuli returns n annuli of equal width covering the stellar disk, with
// radii at the midpoints of the rings. intensity gives the surface brightness
// at radius r ∈ [0, 1]; it is where a limb darkening law plugs in. n = 1000
// is a reasonable choice for fitting.
func NewAnnuli(n int, intensity func(r float64) float64) Annuli {
	r := make([]float64, n)
	f := make([]float64, n)
	if n == 0 {
		return Annuli{R: r, F: f}
	}
	width := 1 / float64(n)
	if n == 1 {
		r[0] = 0.5
	} else {
		floats.Span(r, 0.5*width, 1-0.5*width)
	}
	for i, ri := range r {
		f[i] = 2 * intensity(ri) * width
	}
	return Annuli{R: r, F: f}
}

// Len returns the number of annuli.
func (an Annuli) Len() int { return len(an.R) }

// OOTFlux returns the flux of the unobstructed, spot-free star, π Σ R[j] F[j].
func (an Annuli) OOTFlux() float64 {
	return math.Pi * floats.Dot(an.R, an.F)
}

// Cache holds the quantities of a [Transit] that are redundant but expensive:
// the planet distances Z and the planet half-angles PlanetAngle, as well as
// OOTFlux0. They depend only on the planet's positions, its radius and the
// annuli, so they can be reused while a fit varies spot parameters. The
// annuli are only replaced through [Cache.SetAnnuli], which keeps the
// derived fields in step.
//
// A Cache is owned by the caller and is not safe for concurrent mutation.
// Transits built from it share its buffers and are invalidated by the next
// call to Update that changes the geometry.
type Cache struct {
	annuli   Annuli
	OOTFlux0 float64

	P           float64
	PlanetX     []float64
	PlanetY     []float64
	Z           []float64
	PlanetAngle *mat.Dense
}

// NewCache returns an empty cache for the given annuli.
func NewCache(an Annuli) *Cache {
	return &Cache{
		annuli:   an,
		OOTFlux0: an.OOTFlux(),
	}
}

// Annuli returns the integration grid the cache was computed for.
func (c *Cache) Annuli() Annuli { return c.annuli }

// SetAnnuli replaces the integration grid. OOTFlux0 is recomputed at once
// and PlanetAngle on the next call to Update.
func (c *Cache) SetAnnuli(an Annuli) {
	c.annuli = an
	c.OOTFlux0 = an.OOTFlux()
	c.PlanetAngle = nil
}

// Update makes the cache consistent with the given planet positions and
// radius, recomputing Z and PlanetAngle only if they changed. It reports
// whether anything was recomputed. planetx and planety must have the same
// length.
func (c *Cache) Update(planetx, planety []float64, p float64) (bool, error) {
	if len(planety) != len(planetx) {
		return false, &ShapeError{Param: "planety", Got: []int{len(planety)}, Want: []int{len(planetx)}}
	}
	if c.PlanetAngle != nil && p == c.P &&
		slices.Equal(planetx, c.PlanetX) && slices.Equal(planety, c.PlanetY) {
		return false, nil
	}

	m, n := len(planetx), c.annuli.Len()
	c.P = p
	c.PlanetX = slices.Clone(planetx)
	c.PlanetY = slices.Clone(planety)
	c.Z = slices.Grow(c.Z[:0], m)[:m]
	for i := 0; i < m; i++ {
		c.Z[i] = Pt(planetx[i], planety[i]).Hypot()
	}
	if m == 0 || n == 0 {
		c.PlanetAngle = &mat.Dense{}
		return true, nil
	}
	if c.PlanetAngle == nil || c.PlanetAngle.IsEmpty() {
		c.PlanetAngle = mat.NewDense(m, n, nil)
	} else if r, cols := c.PlanetAngle.Dims(); r != m || cols != n {
		c.PlanetAngle.Reset()
		c.PlanetAngle.ReuseAs(m, n)
	}
	for i, z := range c.Z {
		CircleAngleTo(c.PlanetAngle.RawRowView(i), c.annuli.R, p, z)
	}
	return true, nil
}

// Transit assembles a [Transit] from the cached buffers and the given spots.
// The cache must have been updated before.
func (c *Cache) Transit(spots Spots) *Transit {
	return &Transit{
		PlanetX:      c.PlanetX,
		PlanetY:      c.PlanetY,
		Z:            c.Z,
		P:            c.P,
		OOTFlux0:     c.OOTFlux0,
		R:            c.annuli.R,
		F:            c.annuli.F,
		SpotX:        spots.X,
		SpotY:        spots.Y,
		SpotRadius:   spots.Radius,
		SpotContrast: spots.Contrast,
		PlanetAngle:  c.PlanetAngle,
	}
}
