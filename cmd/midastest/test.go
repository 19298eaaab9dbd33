// Authors: midasr contributors
// Date: Dec 12th 2025
// Project: Restriction Tests for Mixed-Frequency (MIDAS) Regressions
// Class: 02-613 at Carnegie Mellon University

package main

import (
	"flag"
	"fmt"
	"io"
	"runtime"
	"sort"
	"sync"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/strategist922/midasr/internal/config"
	"github.com/strategist922/midasr/internal/dataio"
	"github.com/strategist922/midasr/internal/logger"
	"github.com/strategist922/midasr/midas"
	"github.com/strategist922/midasr/restriction"
	"github.com/strategist922/midasr/weights"
)

// datasetResult is the outcome of fitting and testing one file.
type datasetResult struct {
	index   int
	path    string
	name    string
	model   *midas.Model
	results []restriction.Result
	err     error
}

func runTest(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(stdout)
	configPath := fs.String("config", "", "YAML configuration file")
	data := fs.String("data", "", "glob of dataset CSV files, ** allowed")
	shapeName := fs.String("shape", "", "weight shape: "+fmt.Sprint(weights.Names()))
	lags := fs.Int("lags", 0, "highest high-frequency lag k")
	freq := fs.Int("freq", 0, "high-frequency observations per period (0 = from the data)")
	start := fs.String("start", "", "comma-separated starting hyperparameters")
	out := fs.String("out", "", "write results to this CSV file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *data == "" {
		return fmt.Errorf("test: -data is required")
	}

	// 1. Load configuration, command-line flags win
	cfg, err := setupConfig(*configPath)
	if err != nil {
		return err
	}
	set := visited(fs)
	if set["shape"] {
		cfg.Model.Shape = *shapeName
	}
	if set["lags"] {
		cfg.Model.Lags = *lags
	}
	if set["freq"] {
		cfg.Model.Frequency = *freq
	}
	if set["start"] {
		if cfg.Model.Start, err = parseFloats(*start); err != nil {
			return err
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	log := logger.ForComponent(logger.CLI)

	// 2. Find the datasets
	paths, err := doublestar.FilepathGlob(*data)
	if err != nil {
		return fmt.Errorf("bad -data pattern %q: %w", *data, err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no dataset matches %q", *data)
	}
	sort.Strings(paths)
	log.Info("running restriction tests", "datasets", len(paths), "shape", cfg.Model.Shape, "lags", cfg.Model.Lags)

	// 3. Fit and test every dataset
	results := testDatasets(paths, cfg)

	// 4. Report
	alpha := cfg.Tests.Alpha
	var records []dataio.Record
	failed := 0
	for _, r := range results {
		if r.err != nil {
			failed++
			log.Error("dataset failed", "path", r.path, "err", r.err)
			fmt.Fprintf(stdout, "\n=== %s: %v ===\n", r.path, r.err)
			continue
		}
		dataio.PrintModelSummary(stdout, r.name, r.model)
		dataio.PrintResults(stdout, r.name, r.results, alpha)
		for _, res := range r.results {
			records = append(records, dataio.Record{Dataset: r.name, Shape: cfg.Model.Shape, Result: res})
		}
	}

	// 5. Output results to CSV
	if *out != "" {
		if err := dataio.OutputResultsToCSV(*out, records, alpha); err != nil {
			return err
		}
		fmt.Fprintln(stdout, "Restriction test results written to", *out)
	}

	if failed == len(results) {
		return fmt.Errorf("all %d datasets failed", failed)
	}
	return nil
}

// testDatasets processes paths on a worker pool and returns the outcomes in
// the order of paths.
func testDatasets(paths []string, cfg *config.Config) []datasetResult {
	numWorkers := runtime.NumCPU()
	if numWorkers > len(paths) {
		numWorkers = len(paths)
	}

	jobs := make(chan int)
	resultsCh := make(chan datasetResult, len(paths))

	var wg sync.WaitGroup
	wg.Add(numWorkers)

	worker := func() {
		defer wg.Done()
		for i := range jobs {
			resultsCh <- testDataset(i, paths[i], cfg)
		}
	}

	for w := 0; w < numWorkers; w++ {
		go worker()
	}

	go func() {
		for i := range paths {
			jobs <- i
		}
		close(jobs)
	}()

	out := make([]datasetResult, len(paths))
	for range paths {
		r := <-resultsCh
		out[r.index] = r
	}

	wg.Wait()
	close(resultsCh)
	return out
}

func testDataset(i int, path string, cfg *config.Config) datasetResult {
	res := datasetResult{index: i, path: path}

	ds, err := dataio.LoadCSV(path)
	if err != nil {
		res.err = err
		return res
	}
	res.name = ds.Name

	if cfg.Model.Frequency > 0 && cfg.Model.Frequency != ds.Frequency {
		res.err = fmt.Errorf("dataset has frequency %d, model expects %d", ds.Frequency, cfg.Model.Frequency)
		return res
	}

	shape, err := weights.ByName(cfg.Model.Shape)
	if err != nil {
		res.err = err
		return res
	}
	spec, err := midas.SingleRegressor(ds.Y, ds.X, ds.Header[1], cfg.Model.Lags, ds.Frequency,
		shape, append([]float64(nil), cfg.Model.Start...), cfg.Model.Intercept)
	if err != nil {
		res.err = err
		return res
	}

	model, err := midas.Fit(spec, cfg.FitOptions())
	if err != nil {
		res.err = fmt.Errorf("fit: %w", err)
		return res
	}
	res.model = model

	opts, err := cfg.TestOptions()
	if err != nil {
		res.err = err
		return res
	}
	res.results, res.err = restriction.RunAll(model, opts)
	return res
}
