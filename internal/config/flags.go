package config

import (
	"flag"
	"fmt"
)

// Flags holds command-line overrides of a Config.
type Flags struct {
	Config  string
	Debug   bool
	CSV     string
	Plot    string
	Workers int
	Annuli  int
}

// RegisterFlags defines the override flags on fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.Config, "config", "", "Path to model file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.CSV, "o", "", "Write the light curve as CSV to this file")
	fs.StringVar(&f.Plot, "plot", "", "Render the light curve to this image file")
	fs.IntVar(&f.Workers, "workers", -1, "Number of integration workers (0 means all CPUs)")
	fs.IntVar(&f.Annuli, "annuli", 0, "Number of integration annuli")
	return f
}

// Load loads the model file named by the flags with priority
// defaults < file < flags, and validates the result.
func (f *Flags) Load() (*Config, error) {
	cfg, err := read(f.Config)
	if err != nil {
		return nil, err
	}
	f.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (f *Flags) apply(cfg *Config) {
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.CSV != "" {
		cfg.Output.CSV = f.CSV
	}
	if f.Plot != "" {
		cfg.Output.Plot = f.Plot
	}
	if f.Workers >= 0 {
		cfg.Integration.Workers = f.Workers
	}
	if f.Annuli > 0 {
		cfg.Integration.Annuli = f.Annuli
	}
}
