// Package model evaluates light curves described by a config.Config, tying
// the orbit, the stellar disk and the spots to the integrator.
package model

import (
	"fmt"
	"math"
	"slices"
	"time"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"

	"github.com/cmcgrud1/spotrod"
	"github.com/cmcgrud1/spotrod/internal/config"
)

// Curve is a sampled light curve together with the planet's track. While the
// planet is behind the star, Y and Z are infinite; see spotrod.SkyPosition.
type Curve struct {
	Time []float64
	Flux []float64
	X    []float64
	Y    []float64
	Z    []float64
}

// Model evaluates the light curve of one configuration. The annuli and the
// planet geometry are cached between calls, so evaluating the same times
// again with different spots only redoes the integration.
type Model struct {
	cfg   *config.Config
	cache *spotrod.Cache
	log   *zap.Logger
}

// SeriesEccentricity is the eccentricity above which the orbit series is
// off by more than about a·e³ ≈ 10⁻³ a at transit.
const SeriesEccentricity = 0.1

// New returns a model for cfg, which must be valid.
func New(cfg *config.Config, log *zap.Logger) *Model {
	if e := cfg.Orbit.Eccentricity(); e > SeriesEccentricity {
		log.Warn("eccentricity beyond the accuracy of the orbit series",
			zap.Float64("e", e),
			zap.Float64("limit", SeriesEccentricity))
	}
	ld := cfg.LimbDarkening
	an := spotrod.NewAnnuli(cfg.Integration.Annuli, QuadraticIntensity(ld.U1, ld.U2))
	return &Model{
		cfg:   cfg,
		cache: spotrod.NewCache(an),
		log:   log,
	}
}

// QuadraticIntensity returns the quadratic limb darkening law
// I = 1 − u1(1 − μ) − u2(1 − μ)² as a function of the radius, with
// μ = √(1 − r²).
func QuadraticIntensity(u1, u2 float64) func(r float64) float64 {
	return func(r float64) float64 {
		w := 1 - math.Sqrt(max(0, (1-r)*(1+r)))
		return 1 - u1*w - u2*w*w
	}
}

// Times returns the sampling grid of the configuration.
func (m *Model) Times() []float64 {
	s := m.cfg.Sampling
	t := make([]float64, s.Count)
	if s.Count == 1 {
		t[0] = s.Start
		return t
	}
	return floats.Span(t, s.Start, s.End)
}

// Positions returns the sky-plane positions of the planet at the given
// times.
func (m *Model) Positions(times []float64) (x, y []float64) {
	o := m.cfg.Orbit
	dt := make([]float64, len(times))
	copy(dt, times)
	floats.AddConst(-o.MidTransit, dt)

	eta, xi := spotrod.Elements(dt, o.Period, o.SemiMajorAxis, o.K, o.H)
	x = make([]float64, len(times))
	y = make([]float64, len(times))
	for i := range times {
		x[i], y[i] = spotrod.SkyPosition(eta[i], xi[i], o.SemiMajorAxis, o.Impact).Splat()
	}
	return x, y
}

// Spots returns the configured spots as integrator buffers.
func (m *Model) Spots() spotrod.Spots {
	var s spotrod.Spots
	for _, sp := range m.cfg.Spots {
		s.X = append(s.X, sp.X)
		s.Y = append(s.Y, sp.Y)
		s.Radius = append(s.Radius, sp.Radius)
		s.Contrast = append(s.Contrast, sp.Contrast)
	}
	return s
}

// LightCurve evaluates the model at the given times.
func (m *Model) LightCurve(times []float64) (*Curve, error) {
	start := time.Now()
	x, y := m.Positions(times)
	changed, err := m.cache.Update(x, y, m.cfg.Planet.RadiusRatio)
	if err != nil {
		return nil, err
	}
	m.log.Debug("planet geometry",
		zap.Int("samples", len(times)),
		zap.Int("annuli", m.cache.Annuli().Len()),
		zap.Bool("recomputed", changed),
		zap.Duration("elapsed", time.Since(start)))

	spots := m.Spots()
	flux, err := m.cache.Transit(spots).IntegrateParallel(m.cfg.Integration.Workers)
	if err != nil {
		return nil, fmt.Errorf("integrating transit: %w", err)
	}
	m.log.Debug("integrated",
		zap.Int("spots", spots.Len()),
		zap.Duration("elapsed", time.Since(start)))

	return &Curve{
		Time: times,
		Flux: flux,
		X:    x,
		Y:    y,
		Z:    slices.Clone(m.cache.Z),
	}, nil
}
