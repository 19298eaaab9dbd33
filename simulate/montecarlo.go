// Authors: midasr contributors
// Date: Dec 12th 2025
// Project: Restriction Tests for Mixed-Frequency (MIDAS) Regressions
// Class: 02-613 at Carnegie Mellon University

package simulate

import (
	"fmt"
	"math"
	"math/rand/v2"
	"runtime"
	"slices"
	"sync"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/strategist922/midasr/internal/logger"
	"github.com/strategist922/midasr/midas"
	"github.com/strategist922/midasr/restriction"
	"github.com/strategist922/midasr/weights"
)

// Options for a Monte Carlo size study.
type Options struct {
	// Number of simulated samples (e.g. 500–2000)
	Replications int
	// RNG seed; 0 = time-based
	Seed int64
	// Concurrent workers; 0 = runtime.NumCPU()
	Workers int
	// Nominal level of the tests (e.g. 0.05)
	Alpha float64
	// Fit an intercept alongside the lag term.
	Intercept bool

	DGP   DGP
	Fit   midas.FitOptions
	Tests restriction.Options
}

func DefaultOptions() Options {
	return Options{
		Replications: 500,
		Alpha:        0.05,
		DGP:          DefaultDGP(),
		Fit:          midas.DefaultFitOptions(),
		Tests:        restriction.DefaultOptions(),
	}
}

// Summary aggregates one test over all replications.
type Summary struct {
	Method        string
	DF            int
	Replications  int     // replications where the test ran
	Failed        int     // replications where the fit or the test failed
	Rejections    int     // p-value < Alpha
	RejectionRate float64 // Rejections / Replications
	MeanStatistic float64
	Q05           float64
	Q50           float64
	Q95           float64
}

// replication holds the outcome of one simulated sample.
type replication struct {
	index   int
	results map[string]restriction.Result
	failed  map[string]error
	err     error
}

// Methods lists the tests run for a DGP, in report order.
func (o Options) Methods() []string {
	methods := []string{restriction.MethodClassical, restriction.MethodRobust}
	if o.DGP.Shape != nil && o.DGP.Shape.Tag().Kind == weights.KindExponentialAlmon {
		methods = append(methods, restriction.MethodLM)
	}
	return methods
}

// MonteCarlo simulates opts.Replications samples from opts.DGP, fits the
// true shape to each and runs the restriction tests. Under the true null the
// rejection rates estimate the size of each test.
func MonteCarlo(opts Options) ([]Summary, error) {
	log := logger.ForComponent(logger.Simulate)

	// Defaults
	if opts.Replications <= 0 {
		opts.Replications = 500
	}
	if opts.Alpha <= 0 || opts.Alpha >= 1 {
		opts.Alpha = 0.05
	}
	if err := opts.DGP.Validate(); err != nil {
		return nil, fmt.Errorf("invalid data generating process: %w", err)
	}

	// RNG seeding
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	masterRng := rand.New(rand.NewPCG(uint64(seed), 0x9e3779b97f4a7c15))

	// Per-replication seeds so workers don't share RNG
	seeds := make([]uint64, opts.Replications)
	for i := range seeds {
		seeds[i] = masterRng.Uint64()
	}

	// Worker pool setup
	numWorkers := opts.Workers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if numWorkers > opts.Replications {
		numWorkers = opts.Replications
	}

	methods := opts.Methods()
	log.Debug("starting Monte Carlo",
		"replications", opts.Replications, "workers", numWorkers,
		"shape", opts.DGP.Shape.Tag().String(), "observations", opts.DGP.Observations)

	jobs := make(chan int)
	resultsCh := make(chan replication, opts.Replications)

	var wg sync.WaitGroup
	wg.Add(numWorkers)

	worker := func() {
		defer wg.Done()
		for b := range jobs {
			resultsCh <- runReplication(b, rand.NewPCG(seeds[b], uint64(b)), opts, methods)
		}
	}

	// Start workers
	for w := 0; w < numWorkers; w++ {
		go worker()
	}

	// Feed jobs
	go func() {
		for b := 0; b < opts.Replications; b++ {
			jobs <- b
		}
		close(jobs)
	}()

	// Aggregator: store replications by index so the summary does not depend
	// on scheduling.
	reps := make([]replication, opts.Replications)
	var firstErr error
	for i := 0; i < opts.Replications; i++ {
		rep := <-resultsCh
		reps[rep.index] = rep
		if rep.err != nil && firstErr == nil {
			firstErr = fmt.Errorf("replication %d: %w", rep.index, rep.err)
		}
	}

	wg.Wait()
	close(resultsCh)

	if firstErr != nil {
		return nil, firstErr
	}

	out := make([]Summary, len(methods))
	for i, method := range methods {
		out[i] = summarize(method, reps, opts.Alpha)
		log.Debug("Monte Carlo summary",
			"method", method, "rejection_rate", out[i].RejectionRate,
			"mean", out[i].MeanStatistic, "failed", out[i].Failed)
	}
	return out, nil
}

// runReplication simulates one sample, fits it and runs every test.
func runReplication(b int, src rand.Source, opts Options, methods []string) replication {
	rep := replication{
		index:   b,
		results: make(map[string]restriction.Result, len(methods)),
		failed:  make(map[string]error),
	}

	y, x, err := opts.DGP.Generate(src)
	if err != nil {
		rep.err = err
		return rep
	}

	d := opts.DGP
	spec, err := midas.SingleRegressor(y, x, "x", d.Lags, d.Frequency, d.Shape, append([]float64(nil), d.Params...), opts.Intercept)
	if err != nil {
		rep.err = err
		return rep
	}

	model, err := midas.Fit(spec, opts.Fit)
	if err != nil {
		for _, method := range methods {
			rep.failed[method] = err
		}
		return rep
	}

	for _, method := range methods {
		var res restriction.Result
		switch method {
		case restriction.MethodClassical:
			res, err = restriction.ClassicalTest(model, opts.Tests)
		case restriction.MethodRobust:
			res, err = restriction.RobustTest(model, nil, opts.Tests)
		case restriction.MethodLM:
			res, err = restriction.ExpAlmonLMTest(model, opts.Tests)
		default:
			err = fmt.Errorf("unknown test %q", method)
		}
		if err != nil {
			rep.failed[method] = err
			continue
		}
		rep.results[method] = res
	}
	return rep
}

func summarize(method string, reps []replication, alpha float64) Summary {
	s := Summary{Method: method}
	var stats []float64
	for _, rep := range reps {
		if _, ok := rep.failed[method]; ok {
			s.Failed++
			continue
		}
		res, ok := rep.results[method]
		if !ok {
			continue
		}
		s.DF = res.DF
		stats = append(stats, res.Statistic)
		if res.Reject(alpha) {
			s.Rejections++
		}
	}

	s.Replications = len(stats)
	if s.Replications == 0 {
		s.RejectionRate = math.NaN()
		s.MeanStatistic = math.NaN()
		s.Q05, s.Q50, s.Q95 = math.NaN(), math.NaN(), math.NaN()
		return s
	}
	s.RejectionRate = float64(s.Rejections) / float64(s.Replications)
	s.MeanStatistic = stat.Mean(stats, nil)
	s.Q05 = quantile(stats, 0.05)
	s.Q50 = quantile(stats, 0.50)
	s.Q95 = quantile(stats, 0.95)
	return s
}

// quantile returns the empirical q-quantile of samples, interpolating
// linearly between order statistics.
func quantile(samples []float64, q float64) float64 {
	if len(samples) == 0 {
		return math.NaN()
	}
	sorted := slices.Sorted(slices.Values(samples))
	q = math.Max(0, math.Min(1, q))

	pos := q * float64(len(sorted)-1)
	lo := int(pos)
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}
