// Authors: midasr contributors
// Date: Dec 12th 2025
// Project: Restriction Tests for Mixed-Frequency (MIDAS) Regressions
// Class: 02-613 at Carnegie Mellon University

// Package config loads the midastest YAML configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/strategist922/midasr/hac"
	"github.com/strategist922/midasr/internal/logger"
	"github.com/strategist922/midasr/midas"
	"github.com/strategist922/midasr/restriction"
	"github.com/strategist922/midasr/simulate"
	"github.com/strategist922/midasr/weights"
)

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type TestsConfig struct {
	Alpha         float64 `yaml:"alpha"`
	PinvTolerance float64 `yaml:"pinv_tolerance"`
	HACKernel     string  `yaml:"hac_kernel"`
	// HACLag < 0 selects the automatic bandwidth.
	HACLag int `yaml:"hac_lag"`
}

// ModelConfig is the restricted model fitted to every dataset.
type ModelConfig struct {
	Shape string `yaml:"shape"`
	Lags  int    `yaml:"lags"`
	// Frequency 0 takes the frequency from each dataset's columns.
	Frequency int       `yaml:"frequency"`
	Start     []float64 `yaml:"start"`
	Intercept bool      `yaml:"intercept"`
	// MaxIterations of the nonlinear least squares fit.
	MaxIterations int `yaml:"max_iterations"`
}

type SimulationConfig struct {
	Replications int       `yaml:"replications"`
	Observations int       `yaml:"observations"`
	Frequency    int       `yaml:"frequency"`
	Lags         int       `yaml:"lags"`
	Shape        string    `yaml:"shape"`
	Params       []float64 `yaml:"params"`
	AR           float64   `yaml:"ar"`
	NoiseSD      float64   `yaml:"noise_sd"`
	BurnIn       int       `yaml:"burn_in"`
	Seed         int64     `yaml:"seed"`
	Workers      int       `yaml:"workers"`
	Intercept    bool      `yaml:"intercept"`
}

type Config struct {
	Log        LogConfig        `yaml:"log"`
	Tests      TestsConfig      `yaml:"tests"`
	Model      ModelConfig      `yaml:"model"`
	Simulation SimulationConfig `yaml:"simulation"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	dgp := simulate.DefaultDGP()
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Tests: TestsConfig{
			Alpha:         0.05,
			PinvTolerance: restriction.DefaultPinvTolerance,
			HACKernel:     hac.Bartlett.String(),
			HACLag:        -1,
		},
		Model: ModelConfig{
			Shape:         "nealmon",
			Lags:          11,
			Frequency:     0,
			Start:         []float64{1, -0.1},
			Intercept:     true,
			MaxIterations: midas.DefaultFitOptions().MaxIterations,
		},
		Simulation: SimulationConfig{
			Replications: 500,
			Observations: dgp.Observations,
			Frequency:    dgp.Frequency,
			Lags:         dgp.Lags,
			Shape:        dgp.Shape.Tag().Name,
			Params:       dgp.Params,
			AR:           dgp.AR,
			NoiseSD:      dgp.NoiseSD,
			BurnIn:       dgp.BurnIn,
		},
	}
}

// Load overlays the YAML file at path on Default. An empty path returns the
// defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the values that cannot be caught later by the packages
// they are handed to.
func (c *Config) Validate() error {
	if c.Tests.Alpha <= 0 || c.Tests.Alpha >= 1 {
		return fmt.Errorf("tests.alpha must be in (0, 1), got %v", c.Tests.Alpha)
	}
	if _, err := hac.ParseKernel(c.Tests.HACKernel); err != nil {
		return err
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if _, err := logger.ParseFormat(c.Log.Format); err != nil {
		return err
	}
	if _, err := weights.ByName(c.Model.Shape); err != nil {
		return fmt.Errorf("model.shape: %w", err)
	}
	if _, err := weights.ByName(c.Simulation.Shape); err != nil {
		return fmt.Errorf("simulation.shape: %w", err)
	}
	return nil
}

// Logger converts the log section.
func (c *Config) Logger() (logger.Config, error) {
	lc := logger.DefaultConfig()
	level, err := logger.ParseLevel(c.Log.Level)
	if err != nil {
		return lc, err
	}
	format, err := logger.ParseFormat(c.Log.Format)
	if err != nil {
		return lc, err
	}
	lc.Level = level
	lc.Format = format
	return lc, nil
}

// TestOptions converts the tests section.
func (c *Config) TestOptions() (restriction.Options, error) {
	kernel, err := hac.ParseKernel(c.Tests.HACKernel)
	if err != nil {
		return restriction.Options{}, err
	}
	return restriction.Options{
		PinvTolerance: c.Tests.PinvTolerance,
		HAC:           hac.Options{Kernel: kernel, Lag: c.Tests.HACLag},
	}, nil
}

// FitOptions converts the model section's optimizer settings.
func (c *Config) FitOptions() midas.FitOptions {
	opts := midas.DefaultFitOptions()
	if c.Model.MaxIterations > 0 {
		opts.MaxIterations = c.Model.MaxIterations
	}
	return opts
}

// SimulationOptions converts the simulation section.
func (c *Config) SimulationOptions() (simulate.Options, error) {
	shape, err := weights.ByName(c.Simulation.Shape)
	if err != nil {
		return simulate.Options{}, err
	}
	tests, err := c.TestOptions()
	if err != nil {
		return simulate.Options{}, err
	}
	s := c.Simulation
	return simulate.Options{
		Replications: s.Replications,
		Seed:         s.Seed,
		Workers:      s.Workers,
		Alpha:        c.Tests.Alpha,
		Intercept:    s.Intercept,
		DGP: simulate.DGP{
			Observations: s.Observations,
			Frequency:    s.Frequency,
			Lags:         s.Lags,
			Shape:        shape,
			Params:       append([]float64(nil), s.Params...),
			AR:           s.AR,
			NoiseSD:      s.NoiseSD,
			BurnIn:       s.BurnIn,
		},
		Fit:   c.FitOptions(),
		Tests: tests,
	}, nil
}
