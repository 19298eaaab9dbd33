// Authors: midasr contributors
// Date: Dec 12th 2025
// Project: Restriction Tests for Mixed-Frequency (MIDAS) Regressions
// Class: 02-613 at Carnegie Mellon University

// Package restriction tests whether the lag-weight restriction of a MIDAS
// regression is compatible with the unrestricted fit.
//
// Three tests are provided:
//
//	ClassicalTest   "hAh"   homoskedastic, serially uncorrelated errors
//	RobustTest      "hAhr"  HAC robust version of hAh
//	ExpAlmonLMTest  "agk"   LM test of flat normalized exponential Almon weights
//
// The tests only see a model through the FittedModel interface and never
// modify it. Every call recomputes what it needs, so concurrent calls on the
// same model are safe.
package restriction
