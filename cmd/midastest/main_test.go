// Authors: midasr contributors
// Date: Dec 12th 2025
// Project: Restriction Tests for Mixed-Frequency (MIDAS) Regressions
// Class: 02-613 at Carnegie Mellon University

package main

import (
	"bytes"
	"encoding/csv"
	"os"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
log:
  level: error
model:
  shape: nealmon
  lags: 5
  start: [1, 0]
  intercept: true
simulation:
  replications: 4
  observations: 120
  frequency: 3
  lags: 5
  shape: nealmon
  params: [1, 0.2, -0.05]
  noise_sd: 0.5
  seed: 7
  workers: 2
`

func writeTestConfig(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "midastest.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0o644))
	return path
}

func TestGenerateThenTest(t *testing.T) {
	dir := t.TempDir()
	cfg := writeTestConfig(t, dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "data", "q"), 0o755))

	var stdout bytes.Buffer
	require.NoError(t, run([]string{"generate", "-config", cfg, "-seed", "1", "-out", filepath.Join(dir, "data", "a.csv")}, &stdout))
	require.NoError(t, run([]string{"generate", "-config", cfg, "-seed", "2", "-out", filepath.Join(dir, "data", "q", "b.csv")}, &stdout))

	out := filepath.Join(dir, "results.csv")
	stdout.Reset()
	err := run([]string{"test", "-config", cfg, "-data", filepath.Join(dir, "data", "**", "*.csv"), "-out", out}, &stdout)
	require.NoError(t, err, stdout.String())
	assert.Contains(t, stdout.String(), "Restriction Tests: a")
	assert.Contains(t, stdout.String(), "Restriction Tests: b")

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	// header + (hAh, hAhr, agk) for two datasets
	require.Len(t, rows, 7)
	assert.Equal(t, "a", rows[1][0])
	assert.Equal(t, "hAh", rows[1][2])
	assert.Equal(t, "agk", rows[3][2])
	assert.Equal(t, "b", rows[4][0])
}

func TestSimulateCommand(t *testing.T) {
	dir := t.TempDir()
	cfg := writeTestConfig(t, dir)
	out := filepath.Join(dir, "summary.csv")

	var stdout bytes.Buffer
	require.NoError(t, run([]string{"simulate", "-config", cfg, "-replications", "3", "-out", out}, &stdout))
	assert.Contains(t, stdout.String(), "Monte Carlo size")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "3", rows[1][2])
}

func TestCommandErrors(t *testing.T) {
	dir := t.TempDir()
	cfg := writeTestConfig(t, dir)
	var stdout bytes.Buffer

	assert.Error(t, run(nil, &stdout))
	assert.Error(t, run([]string{"forecast"}, &stdout))
	assert.NoError(t, run([]string{"help"}, &stdout))
	assert.Error(t, run([]string{"test", "-config", cfg}, &stdout))
	assert.Error(t, run([]string{"test", "-config", cfg, "-data", filepath.Join(dir, "none", "*.csv")}, &stdout))
	assert.Error(t, run([]string{"test", "-config", cfg, "-data", "x.csv", "-shape", "spline"}, &stdout))
	assert.Error(t, run([]string{"generate", "-config", cfg}, &stdout))
	assert.Error(t, run([]string{"simulate", "-config", filepath.Join(dir, "missing.yaml")}, &stdout))
}

func TestParseFloats(t *testing.T) {
	got, err := parseFloats("1, -0.1,0.002")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, -0.1, 0.002}, got)

	_, err = parseFloats("1,x")
	assert.Error(t, err)
	_, err = parseFloats(" , ")
	assert.Error(t, err)
}

func TestSourceHeaders(t *testing.T) {
	root := filepath.Join("..", "..")
	want := []string{
		"// Authors: midasr contributors",
		"// Date: Dec 12th 2025",
		"// Project: Restriction Tests for Mixed-Frequency (MIDAS) Regressions",
		"// Class: 02-613 at Carnegie Mellon University",
	}
	checked := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if name := d.Name(); path != root && (strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".") || name == "testdata") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		lines := strings.SplitN(string(data), "\n", len(want)+1)
		require.GreaterOrEqual(t, len(lines), len(want), path)
		assert.Equal(t, want, lines[:len(want)], path)
		checked++
		return nil
	})
	require.NoError(t, err)
	assert.Greater(t, checked, 20)
}
