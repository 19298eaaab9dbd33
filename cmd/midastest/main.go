// Authors: midasr contributors
// Date: Dec 12th 2025
// Project: Restriction Tests for Mixed-Frequency (MIDAS) Regressions
// Class: 02-613 at Carnegie Mellon University

package main

import (
	"fmt"
	"io"
	"os"
)

// midastest runs the restriction tests on mixed-frequency datasets.
//
//	midastest test     [-config f] -data 'dir/**/*.csv' [-shape nealmon -lags 11 -freq 3 -start 1,-0.1] [-out results.csv]
//	midastest simulate [-config f] [-replications n -seed s -workers w] [-out summary.csv]
//	midastest generate [-config f] [-seed s] -out dataset.csv
//
// Datasets are wide CSV files: the response followed by the high-frequency
// observations of the same period, oldest first.

const usage = `Usage:
  midastest test     [-config file] -data glob [-shape name] [-lags k] [-freq m] [-start p1,p2,...] [-out results.csv]
  midastest simulate [-config file] [-replications n] [-seed s] [-workers w] [-out summary.csv]
  midastest generate [-config file] [-seed s] -out dataset.csv
`

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "midastest:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	if len(args) < 1 {
		fmt.Fprint(stdout, usage)
		return fmt.Errorf("missing command")
	}

	switch args[0] {
	case "test":
		return runTest(args[1:], stdout)
	case "simulate":
		return runSimulate(args[1:], stdout)
	case "generate":
		return runGenerate(args[1:], stdout)
	case "help", "-h", "-help", "--help":
		fmt.Fprint(stdout, usage)
		return nil
	default:
		fmt.Fprint(stdout, usage)
		return fmt.Errorf("unknown command %q. Options: test, simulate, generate", args[0])
	}
}
