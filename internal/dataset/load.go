// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dataset acquires and prepares the CT slice-localization table:
// download, CSV parsing, redundant-column removal, train/test splitting,
// and standardization.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"gonum.org/v1/gonum/mat"
)

// Table holds the feature matrix, target vector, and row provenance for
// one split of the dataset. X and Y always have matching row counts.
type Table struct {
	// PatientID identifies the scan each row came from. Kept for
	// reporting; never used as a feature.
	PatientID []int

	// X is the n×d feature matrix.
	X *mat.Dense

	// Y is the slice location target, length n.
	Y []float64

	// Names labels the columns of X.
	Names []string
}

// Rows returns the number of rows in the table.
func (t *Table) Rows() int {
	r, _ := t.X.Dims()
	return r
}

// Features returns the number of feature columns in the table.
func (t *Table) Features() int {
	_, c := t.X.Dims()
	return c
}

// Load parses the slice-localization CSV at path. The first column is the
// patient ID, the last column is the reference slice location, and the
// columns between are histogram features. The header row names the
// columns. Malformed rows are an error naming the offending line.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()

	return Read(f)
}

// Read parses CSV records from r into a Table. See Load for the expected
// layout.
func Read(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}
	if len(header) < 3 {
		return nil, fmt.Errorf("CSV has %d columns, need at least patient ID, one feature, and target", len(header))
	}
	// The reader reuses its record slice, so detach the header from it.
	header = append([]string(nil), header...)

	nFeatures := len(header) - 2
	names := make([]string, nFeatures)
	copy(names, header[1:len(header)-1])

	var (
		patientIDs []int
		values     []float64
		targets    []float64
	)

	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV line %d: %w", line, err)
		}
		if len(record) != len(header) {
			return nil, fmt.Errorf("CSV line %d has %d fields, want %d", line, len(record), len(header))
		}

		id, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("CSV line %d: patient ID %q: %w", line, record[0], err)
		}
		patientIDs = append(patientIDs, id)

		for i := 1; i < len(record)-1; i++ {
			v, err := strconv.ParseFloat(record[i], 64)
			if err != nil {
				return nil, fmt.Errorf("CSV line %d column %s: %w", line, header[i], err)
			}
			values = append(values, v)
		}

		y, err := strconv.ParseFloat(record[len(record)-1], 64)
		if err != nil {
			return nil, fmt.Errorf("CSV line %d: target %q: %w", line, record[len(record)-1], err)
		}
		targets = append(targets, y)
	}

	if len(targets) == 0 {
		return nil, fmt.Errorf("CSV contains no data rows")
	}

	return &Table{
		PatientID: patientIDs,
		X:         mat.NewDense(len(targets), nFeatures, values),
		Y:         targets,
		Names:     names,
	}, nil
}
