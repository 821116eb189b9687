// spotrod evaluates transit light curves of spotted stars.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/cmcgrud1/spotrod"
	"github.com/cmcgrud1/spotrod/internal/config"
	"github.com/cmcgrud1/spotrod/internal/logger"
	"github.com/cmcgrud1/spotrod/internal/model"
	"github.com/cmcgrud1/spotrod/internal/report"
)

var errUsage = errors.New("usage")

func main() {
	err := run(os.Args[1:], os.Stdout)
	logger.Sync()
	switch {
	case errors.Is(err, errUsage):
		printUsage(os.Stderr)
		os.Exit(2)
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	if len(args) < 1 {
		return errUsage
	}
	command, args := args[0], args[1:]
	switch command {
	case "lightcurve", "lc":
		return cmdLightCurve(args, stdout)
	case "integrate":
		return cmdIntegrate(args, stdout)
	case "angles":
		return cmdAngles(args, stdout)
	case "init":
		return cmdInit(args)
	case "help", "-h", "--help":
		printUsage(stdout)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		return errUsage
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `spotrod - transit light curves of spotted stars

Usage:
  spotrod <command> [options]

Commands:
  lightcurve -config model.yaml [-o out.csv] [-plot out.png]   Evaluate a model file
  integrate -buffers buffers.yaml [-o out.csv]                Integrate raw buffers
  angles -kind circle|ellipse -p X -z Z [-n N]                Print half-angles on a radius grid
  init [-o model.yaml]                                        Write the default model file

Examples:
  spotrod init -o hotjupiter.yaml
  spotrod lightcurve -config hotjupiter.yaml -plot curve.png -workers 4
  spotrod angles -kind ellipse -p 0.1 -z 0.6 -n 20`)
}

func cmdLightCurve(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("lightcurve", flag.ContinueOnError)
	flags := config.RegisterFlags(fs)
	track := fs.String("track", "", "Render the planet track over the stellar disk to this image file")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	cfg, err := flags.Load()
	if err != nil {
		return err
	}
	logger.Init(cfg.Logging.Level, cfg.Logging.LogFile)
	logger.Log.Info("model loaded",
		zap.String("config", flags.Config),
		zap.Int("annuli", cfg.Integration.Annuli),
		zap.Int("spots", len(cfg.Spots)),
		zap.Int("samples", cfg.Sampling.Count))

	start := time.Now()
	m := model.New(cfg, logger.Log)
	curve, err := m.LightCurve(m.Times())
	if err != nil {
		return err
	}
	logger.Log.Info("light curve computed", zap.Duration("elapsed", time.Since(start)))

	if cfg.Output.CSV == "" {
		if err := report.WriteCSV(stdout, curve); err != nil {
			return err
		}
	} else {
		if err := report.SaveCSV(cfg.Output.CSV, curve); err != nil {
			return err
		}
		logger.Log.Info("wrote light curve", zap.String("path", cfg.Output.CSV))
	}
	if cfg.Output.Plot != "" {
		if err := report.SavePlot(cfg.Output.Plot, "Light curve", curve); err != nil {
			return err
		}
		logger.Log.Info("wrote plot", zap.String("path", cfg.Output.Plot))
	}
	if *track != "" {
		if err := report.SaveTrackPlot(*track, curve, m.Spots()); err != nil {
			return err
		}
		logger.Log.Info("wrote track plot", zap.String("path", *track))
	}
	return nil
}

func cmdIntegrate(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("integrate", flag.ContinueOnError)
	buffers := fs.String("buffers", "", "YAML file with the integrator buffers")
	out := fs.String("o", "", "Write the result as CSV to this file instead of standard output")
	workers := fs.Int("workers", 0, "Number of integration workers (0 means all CPUs)")
	level := fs.String("log-level", "info", "Log level")
	if err := fs.Parse(args); err != nil || *buffers == "" {
		return errUsage
	}
	logger.Init(*level, "")

	t, err := model.LoadBuffers(*buffers)
	if err != nil {
		return err
	}
	logger.Log.Debug("buffers loaded",
		zap.Int("samples", len(t.PlanetX)),
		zap.Int("annuli", len(t.R)),
		zap.Int("spots", len(t.SpotX)))
	flux, err := t.IntegrateParallel(*workers)
	if err != nil {
		return err
	}

	curve := &model.Curve{Time: make([]float64, len(flux)), Flux: flux, X: t.PlanetX, Y: t.PlanetY, Z: t.Z}
	for i := range curve.Time {
		curve.Time[i] = float64(i)
	}
	if *out == "" {
		return report.WriteCSV(stdout, curve)
	}
	if err := report.SaveCSV(*out, curve); err != nil {
		return err
	}
	logger.Log.Info("wrote light curve", zap.String("path", *out))
	return nil
}

func cmdAngles(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("angles", flag.ContinueOnError)
	kind := fs.String("kind", "circle", "Overlap kind: circle or ellipse")
	p := fs.Float64("p", 0.1, "Planet or spot radius in stellar radii")
	z := fs.Float64("z", 0.5, "Distance of its center from the stellar center")
	n := fs.Int("n", 10, "Number of annuli")
	if err := fs.Parse(args); err != nil || *n < 1 {
		return errUsage
	}

	r := spotrod.NewAnnuli(*n, func(float64) float64 { return 1 }).R
	var angles []float64
	switch *kind {
	case "circle":
		angles = spotrod.CircleAngle(r, *p, *z)
	case "ellipse":
		angles = spotrod.EllipseAngle(r, *p, *z)
	default:
		return fmt.Errorf("unknown kind %q", *kind)
	}
	for i, a := range angles {
		fmt.Fprintf(stdout, "%s\t%s\n",
			strconv.FormatFloat(r[i], 'g', -1, 64),
			strconv.FormatFloat(a, 'g', -1, 64))
	}
	return nil
}

func cmdInit(args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	out := fs.String("o", "model.yaml", "Path of the model file to write")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	cfg := config.Default()
	cfg.Spots = []config.SpotConfig{{X: 0.3, Y: 0, Radius: 0.1, Contrast: -0.5}}
	if err := cfg.SaveTo(*out); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Wrote %s\n", *out)
	return nil
}
