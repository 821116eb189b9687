package config

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults don't validate: %v", err)
	}
	if cfg.Integration.Annuli != 1000 {
		t.Errorf("expected 1000 annuli, got %d", cfg.Integration.Annuli)
	}
	if cfg.Planet.RadiusRatio != 0.1 {
		t.Errorf("expected radius ratio 0.1, got %v", cfg.Planet.RadiusRatio)
	}
	if len(cfg.Spots) != 0 {
		t.Errorf("expected no spots, got %v", cfg.Spots)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.yaml")
	yamlContent := `
orbit:
  period: 4.2
  semimajor_axis: 11.5
  impact: 0.1
  k: 0.01
  h: -0.02

planet:
  radius_ratio: 0.12

spots:
  - {x: 0.2, y: 0.1, radius: 0.08, contrast: -0.6}
  - x: -0.4
    y: 0.3
    radius: 0.15
    contrast: 0.2

sampling:
  count: 11
`
	if err := os.WriteFile(path, []byte(yamlContent), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Orbit.Period != 4.2 || cfg.Orbit.SemiMajorAxis != 11.5 || cfg.Orbit.H != -0.02 {
		t.Errorf("unexpected orbit %+v", cfg.Orbit)
	}
	if cfg.Planet.RadiusRatio != 0.12 {
		t.Errorf("expected radius ratio 0.12, got %v", cfg.Planet.RadiusRatio)
	}
	want := []SpotConfig{
		{X: 0.2, Y: 0.1, Radius: 0.08, Contrast: -0.6},
		{X: -0.4, Y: 0.3, Radius: 0.15, Contrast: 0.2},
	}
	if len(cfg.Spots) != len(want) {
		t.Fatalf("expected %d spots, got %d", len(want), len(cfg.Spots))
	}
	for i := range want {
		if cfg.Spots[i] != want[i] {
			t.Errorf("spot %d: got %+v, expected %+v", i, cfg.Spots[i], want[i])
		}
	}

	// Unset values keep their defaults.
	if cfg.LimbDarkening.U1 != 0.4 || cfg.Sampling.Start != -0.1 || cfg.Sampling.Count != 11 {
		t.Errorf("defaults not preserved: %+v %+v", cfg.LimbDarkening, cfg.Sampling)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	for name, content := range map[string]string{
		"unknown key":  "planet:\n  radius: 0.1\n",
		"bad syntax":   "orbit: [\n",
		"invalid":      "planet:\n  radius_ratio: -0.1\n",
		"eccentricity": "orbit:\n  k: 0.8\n  h: 0.8\n",
		"sampling":     "sampling:\n  start: 1\n  end: 0\n",
		"spot":         "spots:\n  - {radius: 0.1, contrast: -2}\n",
	} {
		path := filepath.Join(dir, strings.ReplaceAll(name, " ", "_")+".yaml")
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing file: expected an error")
	}
}

func TestEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Orbit != Default().Orbit {
		t.Errorf("expected default orbit, got %+v", cfg.Orbit)
	}
}

func TestValidateCollectsErrors(t *testing.T) {
	cfg := Default()
	cfg.Orbit.Period = 0
	cfg.Integration.Annuli = 0
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected an error")
	}
	for _, s := range []string{"orbit.period", "integration.annuli"} {
		if !strings.Contains(err.Error(), s) {
			t.Errorf("error %q doesn't mention %s", err, s)
		}
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "model.yaml")
	cfg := Default()
	cfg.Spots = []SpotConfig{{X: 0.1, Y: -0.2, Radius: 0.05, Contrast: -0.3}}
	cfg.Output.CSV = "curve.csv"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Output.CSV != "curve.csv" || len(got.Spots) != 1 || got.Spots[0] != cfg.Spots[0] {
		t.Errorf("round trip lost data: %+v", got)
	}
}

func TestFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.yaml")
	if err := os.WriteFile(path, []byte("integration:\n  workers: 2\noutput:\n  plot: a.png\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	fs := flag.NewFlagSet("lightcurve", flag.ContinueOnError)
	f := RegisterFlags(fs)
	if err := fs.Parse([]string{"-config", path, "-debug", "-o", "out.csv", "-annuli", "200"}); err != nil {
		t.Fatal(err)
	}
	cfg, err := f.Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected debug level, got %s", cfg.Logging.Level)
	}
	if cfg.Output.CSV != "out.csv" || cfg.Output.Plot != "a.png" {
		t.Errorf("unexpected output %+v", cfg.Output)
	}
	if cfg.Integration.Workers != 2 || cfg.Integration.Annuli != 200 {
		t.Errorf("unexpected integration %+v", cfg.Integration)
	}

	fs = flag.NewFlagSet("lightcurve", flag.ContinueOnError)
	f = RegisterFlags(fs)
	if err := fs.Parse([]string{"-config", path, "-workers", "0"}); err != nil {
		t.Fatal(err)
	}
	cfg, err = f.Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Integration.Workers != 0 {
		t.Errorf("expected the flag to override workers, got %d", cfg.Integration.Workers)
	}
}

func TestFlagsOverrideBeforeValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.yaml")
	if err := os.WriteFile(path, []byte("integration:\n  annuli: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected zero annuli to be rejected without an override")
	}

	fs := flag.NewFlagSet("lightcurve", flag.ContinueOnError)
	f := RegisterFlags(fs)
	if err := fs.Parse([]string{"-config", path, "-annuli", "200"}); err != nil {
		t.Fatal(err)
	}
	cfg, err := f.Load()
	if err != nil {
		t.Fatalf("override didn't fix the file: %v", err)
	}
	if cfg.Integration.Annuli != 200 {
		t.Errorf("expected 200 annuli, got %d", cfg.Integration.Annuli)
	}

	// Overrides that leave the file invalid are still reported.
	fs = flag.NewFlagSet("lightcurve", flag.ContinueOnError)
	f = RegisterFlags(fs)
	if err := fs.Parse([]string{"-config", path, "-debug"}); err != nil {
		t.Fatal(err)
	}
	if _, err := f.Load(); err == nil || !strings.Contains(err.Error(), "integration.annuli") {
		t.Errorf("got %v, expected an error about integration.annuli", err)
	}
}
