// Authors: midasr contributors
// Date: Dec 12th 2025
// Project: Restriction Tests for Mixed-Frequency (MIDAS) Regressions
// Class: 02-613 at Carnegie Mellon University

// Package dataio reads mixed-frequency datasets and writes test reports.
package dataio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Dataset is a low-frequency response with its high-frequency predictor.
type Dataset struct {
	// Name is the file name without extension.
	Name string
	// Response y_t, one per low-frequency period.
	Y []float64
	// High-frequency predictor flattened in time order, Frequency values per
	// low-frequency period.
	X []float64
	// Frequency is the number of high-frequency observations per period.
	Frequency int
	// Header of the CSV file.
	Header []string
}

// LoadCSV loads a wide mixed-frequency CSV file. The header names the
// response followed by the m high-frequency columns; row t holds
// y_t, x_{t,1}, ..., x_{t,m} with x_{t,m} the most recent observation.
func LoadCSV(path string) (*Dataset, error) {
	// 1. Open file
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	ds, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	ds.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return ds, nil
}

// ReadCSV parses the wide layout described in LoadCSV.
func ReadCSV(src io.Reader) (*Dataset, error) {
	// 2. Make CSV reader
	r := csv.NewReader(src)
	r.TrimLeadingSpace = true
	r.Comment = '#'

	// 3. Read header row
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("header needs a response and at least one high-frequency column, got %d columns", len(header))
	}
	K := len(header)

	var (
		y   []float64 // response
		x   []float64 // flattened predictor
		row int       // row counter
	)

	// 4. Read each data row
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", row+2, err) // +2 for header + 1-based
		}

		if len(record) == 1 && record[0] == "" {
			continue
		}

		if len(record) != K {
			return nil, fmt.Errorf("row %d: expected %d columns, got %d", row+2, K, len(record))
		}

		for j, s := range record {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("parse float at row %d col %d (%q): %w", row+2, j+1, s, err)
			}
			if j == 0 {
				y = append(y, v)
			} else {
				x = append(x, v)
			}
		}
		row++
	}

	if row == 0 {
		return nil, fmt.Errorf("no data rows")
	}

	return &Dataset{
		Y:         y,
		X:         x,
		Frequency: K - 1,
		Header:    header,
	}, nil
}

// WriteCSV writes ds in the layout read by ReadCSV.
func WriteCSV(w io.Writer, ds *Dataset) error {
	m := ds.Frequency
	if m < 1 || len(ds.X) != len(ds.Y)*m {
		return fmt.Errorf("dataset has %d responses and %d predictor values for frequency %d", len(ds.Y), len(ds.X), m)
	}

	header := ds.Header
	if len(header) != m+1 {
		header = make([]string, m+1)
		header[0] = "y"
		for j := 1; j <= m; j++ {
			header[j] = fmt.Sprintf("x%d", j)
		}
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return err
	}
	rec := make([]string, m+1)
	for t, yt := range ds.Y {
		rec[0] = strconv.FormatFloat(yt, 'g', -1, 64)
		for j := 0; j < m; j++ {
			rec[j+1] = strconv.FormatFloat(ds.X[t*m+j], 'g', -1, 64)
		}
		if err := writer.Write(rec); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
