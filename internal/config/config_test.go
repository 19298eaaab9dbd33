// Authors: midasr contributors
// Date: Dec 12th 2025
// Project: Restriction Tests for Mixed-Frequency (MIDAS) Regressions
// Class: 02-613 at Carnegie Mellon University

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strategist922/midasr/hac"
	"github.com/strategist922/midasr/internal/logger"
	"github.com/strategist922/midasr/restriction"
	"github.com/strategist922/midasr/weights"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "midastest.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadEmptyPathIsDefault(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	require.NoError(t, cfg.Validate())
}

func TestLoadOverlaysFile(t *testing.T) {
	path := writeConfig(t, `
log:
  level: debug
  format: json
tests:
  alpha: 0.1
  hac_kernel: parzen
  hac_lag: 3
model:
  shape: almonp
  start: [0.5, -0.1, 0.01]
simulation:
  replications: 50
  shape: nealmon
  params: [1, 0.1, -0.02]
  seed: 42
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 0.1, cfg.Tests.Alpha)
	assert.Equal(t, "almonp", cfg.Model.Shape)
	assert.Equal(t, []float64{0.5, -0.1, 0.01}, cfg.Model.Start)
	// untouched keys keep their defaults
	assert.Equal(t, 11, cfg.Model.Lags)
	assert.Equal(t, restriction.DefaultPinvTolerance, cfg.Tests.PinvTolerance)

	lc, err := cfg.Logger()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lc.Level)
	assert.Equal(t, logger.FormatJSON, lc.Format)

	topts, err := cfg.TestOptions()
	require.NoError(t, err)
	assert.Equal(t, hac.Options{Kernel: hac.Parzen, Lag: 3}, topts.HAC)

	sopts, err := cfg.SimulationOptions()
	require.NoError(t, err)
	assert.Equal(t, 50, sopts.Replications)
	assert.Equal(t, int64(42), sopts.Seed)
	assert.Equal(t, 0.1, sopts.Alpha)
	assert.Equal(t, weights.NEAlmon{}, sopts.DGP.Shape)
	assert.NoError(t, sopts.DGP.Validate())
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "tests: [not, a, map]"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "tests:\n  alpha: 2\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "model:\n  shape: spline\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "tests:\n  hac_kernel: qs\n"))
	assert.Error(t, err)
}

func TestDefaultSimulationMatchesDGP(t *testing.T) {
	sopts, err := Default().SimulationOptions()
	require.NoError(t, err)
	assert.Equal(t, []float64{-0.1, 0.1, -0.1, -0.001}, sopts.DGP.Params)
	assert.Equal(t, "expalmon", sopts.DGP.Shape.Tag().Name)
	assert.Equal(t, 1000, sopts.Fit.MaxIterations)
}
