// Package config handles loading of transit model files.
package config

import (
	"errors"
	"fmt"
	"math"
)

// Config describes a star, its spots and a transiting planet, and how the
// light curve is sampled and written.
type Config struct {
	Orbit         OrbitConfig         `yaml:"orbit"`
	Planet        PlanetConfig        `yaml:"planet"`
	LimbDarkening LimbDarkeningConfig `yaml:"limb_darkening"`
	Spots         []SpotConfig        `yaml:"spots"`
	Integration   IntegrationConfig   `yaml:"integration"`
	Sampling      SamplingConfig      `yaml:"sampling"`
	Output        OutputConfig        `yaml:"output"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// OrbitConfig holds the orbital parameters. Lengths are in stellar radii,
// times in any unit as long as it is used consistently.
type OrbitConfig struct {
	Period        float64 `yaml:"period"`
	SemiMajorAxis float64 `yaml:"semimajor_axis"`
	Impact        float64 `yaml:"impact"`
	K             float64 `yaml:"k"` // e cos ω
	H             float64 `yaml:"h"` // e sin ω
	MidTransit    float64 `yaml:"mid_transit"`
}

// Eccentricity returns e = √(k² + h²).
func (o OrbitConfig) Eccentricity() float64 {
	return math.Hypot(o.K, o.H)
}

// PlanetConfig holds the planet's size.
type PlanetConfig struct {
	RadiusRatio float64 `yaml:"radius_ratio"`
}

// LimbDarkeningConfig holds the coefficients of the quadratic law
// I(μ) = 1 − u1(1 − μ) − u2(1 − μ)².
type LimbDarkeningConfig struct {
	U1 float64 `yaml:"u1"`
	U2 float64 `yaml:"u2"`
}

// SpotConfig describes one spot. X and Y are sky-plane coordinates in
// stellar radii; Contrast is relative brightness minus one.
type SpotConfig struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Radius   float64 `yaml:"radius"`
	Contrast float64 `yaml:"contrast"`
}

// IntegrationConfig holds numerical settings.
type IntegrationConfig struct {
	Annuli  int `yaml:"annuli"`
	Workers int `yaml:"workers"` // 0 means GOMAXPROCS
}

// SamplingConfig holds the time grid, Count evenly spaced samples from Start
// to End inclusive.
type SamplingConfig struct {
	Start float64 `yaml:"start"`
	End   float64 `yaml:"end"`
	Count int     `yaml:"count"`
}

// OutputConfig holds output paths. Empty paths disable the output; an empty
// CSV path means standard output.
type OutputConfig struct {
	CSV  string `yaml:"csv"`
	Plot string `yaml:"plot"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config for a hot Jupiter on a circular orbit around a
// Sun-like star without spots.
func Default() *Config {
	return &Config{
		Orbit: OrbitConfig{
			Period:        3.0,
			SemiMajorAxis: 8.8,
			Impact:        0.3,
		},
		Planet: PlanetConfig{
			RadiusRatio: 0.1,
		},
		LimbDarkening: LimbDarkeningConfig{
			U1: 0.4,
			U2: 0.26,
		},
		Integration: IntegrationConfig{
			Annuli: 1000,
		},
		Sampling: SamplingConfig{
			Start: -0.1,
			End:   0.1,
			Count: 500,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports all problems with the configuration at once.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	o := c.Orbit
	check(o.Period > 0, "orbit.period must be positive, got %v", o.Period)
	check(o.SemiMajorAxis > 0, "orbit.semimajor_axis must be positive, got %v", o.SemiMajorAxis)
	check(o.Eccentricity() < 1, "orbit eccentricity sqrt(k² + h²) must be less than 1, got %v", o.Eccentricity())
	check(c.Planet.RadiusRatio > 0, "planet.radius_ratio must be positive, got %v", c.Planet.RadiusRatio)
	ld := c.LimbDarkening
	check(1-ld.U1-ld.U2 >= 0, "limb_darkening: intensity at the limb 1 − u1 − u2 is negative (u1=%v, u2=%v)", ld.U1, ld.U2)
	for i, s := range c.Spots {
		check(s.Radius > 0, "spots[%d].radius must be positive, got %v", i, s.Radius)
		check(s.Contrast >= -1, "spots[%d].contrast must be at least -1, got %v", i, s.Contrast)
	}
	check(c.Integration.Annuli > 0, "integration.annuli must be positive, got %d", c.Integration.Annuli)
	check(c.Integration.Workers >= 0, "integration.workers must not be negative, got %d", c.Integration.Workers)
	s := c.Sampling
	check(s.Count > 0, "sampling.count must be positive, got %d", s.Count)
	check(s.Count == 1 || s.End > s.Start, "sampling.end (%v) must be after sampling.start (%v)", s.End, s.Start)
	return errors.Join(errs...)
}
