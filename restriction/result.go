// Authors: midasr contributors
// Date: Dec 12th 2025
// Project: Restriction Tests for Mixed-Frequency (MIDAS) Regressions
// Class: 02-613 at Carnegie Mellon University

package restriction

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/strategist922/midasr/hac"
	"github.com/strategist922/midasr/linalg"
)

// Method labels.
const (
	MethodClassical = "hAh"
	MethodRobust    = "hAhr"
	MethodLM        = "agk"
)

var descriptions = map[string]string{
	MethodClassical: "hAh restriction test",
	MethodRobust:    "hAh restriction test (robust version)",
	MethodLM:        "Andreou, Ghysels, Kourtellos LM test",
}

// Result holds the outcome of a restriction test. It is returned by value.
type Result struct {
	Statistic float64 // chi-square statistic
	DF        int     // degrees of freedom
	PValue    float64 // P(χ²_DF > Statistic)
	Method    string  // "hAh", "hAhr" or "agk"
	// Inverse describes the generalized inverse the statistic was built
	// from. It is the zero value for agk.
	Inverse linalg.Diagnostics
}

// newResult attaches the chi-square p-value to stat. The statistic is kept
// as given: a NaN statistic gets a NaN p-value and a non-positive one gets 1.
func newResult(method string, stat float64, df int) Result {
	pValue := 1.0
	switch {
	case math.IsNaN(stat):
		pValue = math.NaN()
	case math.IsInf(stat, 1):
		pValue = 0
	case stat > 0:
		pValue = distuv.ChiSquared{K: float64(df)}.Survival(stat)
	}

	// Final sanity clamp on pValue to ensure it's in [0, 1]
	if pValue < 0 {
		pValue = 0
	}
	if pValue > 1 {
		pValue = 1
	}

	return Result{Statistic: stat, DF: df, PValue: pValue, Method: method}
}

// snapRoundoff returns 0 for a quadratic form that is negative by no more
// than tol times scale, the magnitude it was accumulated from.
func snapRoundoff(stat, scale, tol float64) float64 {
	if tol <= 0 {
		tol = DefaultPinvTolerance
	}
	if stat < 0 && -stat <= tol*scale {
		return 0
	}
	return stat
}

// Reject reports whether the restriction is rejected at level alpha. A NaN
// p-value is never a rejection.
func (r Result) Reject(alpha float64) bool { return r.PValue < alpha }

// Description is the long name of the test.
func (r Result) Description() string {
	if d, ok := descriptions[r.Method]; ok {
		return d
	}
	return r.Method
}

func (r Result) String() string {
	return fmt.Sprintf("\n\t%s\n\n%s = %.4f, df = %d, p-value = %.4g\n",
		r.Description(), r.Method, r.Statistic, r.DF, r.PValue)
}

// Options tune the numerical side of the tests.
type Options struct {
	// PinvTolerance is the relative singular value cut-off of every
	// generalized inverse.
	PinvTolerance float64
	// HAC configures the default meat matrix of RobustTest.
	HAC hac.Options
}

// DefaultPinvTolerance is sqrt(machine epsilon).
var DefaultPinvTolerance = math.Sqrt(math.Nextafter(1, 2) - 1)

func DefaultOptions() Options {
	return Options{
		PinvTolerance: DefaultPinvTolerance,
		HAC:           hac.DefaultOptions(),
	}
}
