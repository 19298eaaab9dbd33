// Authors: midasr contributors
// Date: Dec 12th 2025
// Project: Restriction Tests for Mixed-Frequency (MIDAS) Regressions
// Class: 02-613 at Carnegie Mellon University

package dataio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/strategist922/midasr/midas"
	"github.com/strategist922/midasr/restriction"
	"github.com/strategist922/midasr/simulate"
)

// Record is one test outcome on one dataset.
type Record struct {
	Dataset string
	Shape   string
	restriction.Result
}

// OutputResultsToCSV writes test records to path.
// Columns: Dataset, Shape, Method, Statistic, DF, PValue, Reject
func OutputResultsToCSV(path string, records []Record, alpha float64) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteResultsCSV(file, records, alpha)
}

func WriteResultsCSV(w io.Writer, records []Record, alpha float64) error {
	writer := csv.NewWriter(w)

	header := []string{"Dataset", "Shape", "Method", "Statistic", "DF", "PValue", "Reject"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, rec := range records {
		row := []string{
			rec.Dataset,
			rec.Shape,
			rec.Method,
			fmt.Sprintf("%f", rec.Statistic),
			fmt.Sprintf("%d", rec.DF),
			fmt.Sprintf("%f", rec.PValue),
			fmt.Sprintf("%t", rec.Reject(alpha)),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// PrintResults prints the restriction tests of one dataset as a table.
func PrintResults(w io.Writer, dataset string, results []restriction.Result, alpha float64) {
	fmt.Fprintf(w, "\n=== Restriction Tests: %s ===\n", dataset)
	fmt.Fprintln(w, "Null Hypothesis: the lag-weight restriction holds")
	fmt.Fprintf(w, "Significance level: α = %g\n\n", alpha)

	fmt.Fprintf(w, "%-6s | %-40s | %11s | %3s | %8s | %s\n", "Test", "Description", "Statistic", "DF", "P-Value", "Conclusion")
	fmt.Fprintln(w, strings.Repeat("-", 96))

	for _, r := range results {
		conclusion := "Not rejected"
		if r.Reject(alpha) {
			conclusion = "REJECTED"
		}
		fmt.Fprintf(w, "%-6s | %-40s | %11.4f | %3d | %8.6f | %s\n",
			r.Method, r.Description(), r.Statistic, r.DF, r.PValue, conclusion)
	}
	fmt.Fprintln(w)
}

// PrintModelSummary produces a summary of a fitted restricted model.
func PrintModelSummary(w io.Writer, dataset string, m *midas.Model) {
	if m == nil {
		fmt.Fprintln(w, "MIDAS model is nil")
		return
	}
	fmt.Fprintln(w, "=======================================")
	fmt.Fprintf(w, "   Restricted MIDAS model: %s\n", dataset)
	fmt.Fprintln(w, "=======================================")

	fmt.Fprintf(w, "Sample size (n):           %d\n", m.NObs())
	fmt.Fprintf(w, "Hyperparameters:           %d\n", len(m.Coefficients()))
	fmt.Fprintf(w, "Unrestricted coefficients: %d\n", len(m.ExpandedCoefficients()))
	fmt.Fprintf(w, "Objective ‖u‖²/2n:         %.6g\n", m.Objective())
	fmt.Fprintf(w, "Optimizer status:          %v\n", m.Status())
	fmt.Fprintln(w)

	for i, t := range m.Terms() {
		fmt.Fprintf(w, "Term %s (%s)\n", t.Name, t.Shape)
		fmt.Fprint(w, "  θ:")
		for _, p := range t.Params {
			fmt.Fprintf(w, " %10.6f", m.Coefficients()[p])
		}
		fmt.Fprintln(w)
		fmt.Fprint(w, "  w:")
		for _, v := range m.TermWeights(i) {
			fmt.Fprintf(w, " %10.6f", v)
		}
		fmt.Fprintln(w)
	}
	if m.Unrestricted() == nil {
		fmt.Fprintln(w, "\nUnrestricted model could not be estimated")
	}
	fmt.Fprintln(w, "=======================================")
}

// OutputSummariesToCSV writes Monte Carlo summaries to path.
// Columns: Method, DF, Replications, Failed, Rejections, RejectionRate, Mean, Q05, Q50, Q95
func OutputSummariesToCSV(path string, summaries []simulate.Summary) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteSummariesCSV(file, summaries)
}

func WriteSummariesCSV(w io.Writer, summaries []simulate.Summary) error {
	writer := csv.NewWriter(w)

	header := []string{"Method", "DF", "Replications", "Failed", "Rejections", "RejectionRate", "Mean", "Q05", "Q50", "Q95"}
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, s := range summaries {
		row := []string{
			s.Method,
			fmt.Sprintf("%d", s.DF),
			fmt.Sprintf("%d", s.Replications),
			fmt.Sprintf("%d", s.Failed),
			fmt.Sprintf("%d", s.Rejections),
			fmt.Sprintf("%f", s.RejectionRate),
			fmt.Sprintf("%f", s.MeanStatistic),
			fmt.Sprintf("%f", s.Q05),
			fmt.Sprintf("%f", s.Q50),
			fmt.Sprintf("%f", s.Q95),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// PrintSummaries prints the Monte Carlo size table.
func PrintSummaries(w io.Writer, summaries []simulate.Summary, alpha float64) {
	fmt.Fprintln(w, "\n=== Monte Carlo size of the restriction tests ===")
	fmt.Fprintf(w, "Nominal level: α = %g\n\n", alpha)
	fmt.Fprintf(w, "%-6s | %3s | %6s | %6s | %9s | %9s | %9s | %9s | %9s\n",
		"Test", "DF", "Reps", "Failed", "Rejection", "Mean", "Q05", "Q50", "Q95")
	fmt.Fprintln(w, strings.Repeat("-", 92))
	for _, s := range summaries {
		fmt.Fprintf(w, "%-6s | %3d | %6d | %6d | %9.4f | %9.4f | %9.4f | %9.4f | %9.4f\n",
			s.Method, s.DF, s.Replications, s.Failed, s.RejectionRate, s.MeanStatistic, s.Q05, s.Q50, s.Q95)
	}
	fmt.Fprintln(w)
}
