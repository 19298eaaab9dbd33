// Authors: midasr contributors
// Date: Dec 12th 2025
// Project: Restriction Tests for Mixed-Frequency (MIDAS) Regressions
// Class: 02-613 at Carnegie Mellon University

package restriction

import (
	"fmt"

	"github.com/strategist922/midasr/weights"
)

// RunAll runs hAh, hAhr (with the default HAC meat) and, when the model has
// an exponential Almon term, agk. Results are returned in that order. The
// first failing test aborts the run.
func RunAll(model FittedModel, opts Options) ([]Result, error) {
	results := make([]Result, 0, 3)

	classical, err := ClassicalTest(model, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", MethodClassical, err)
	}
	results = append(results, classical)

	robust, err := RobustTest(model, nil, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", MethodRobust, err)
	}
	results = append(results, robust)

	if !HasExpAlmon(model) {
		return results, nil
	}
	lm, err := ExpAlmonLMTest(model, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", MethodLM, err)
	}
	return append(results, lm), nil
}

// HasExpAlmon reports whether any term of model uses the normalized
// exponential Almon shape.
func HasExpAlmon(model FittedModel) bool {
	for _, t := range model.Terms() {
		if t.Shape.Kind == weights.KindExponentialAlmon {
			return true
		}
	}
	return false
}
