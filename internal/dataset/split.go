// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Split divides t into train and test tables using a seeded shuffle.
// testFraction is the share of rows assigned to the test set; it must be
// in (0, 1). The same seed always produces the same split.
func Split(t *Table, testFraction float64, seed int64) (train, test *Table, err error) {
	if testFraction <= 0 || testFraction >= 1 {
		return nil, nil, fmt.Errorf("test fraction %v out of range (0, 1)", testFraction)
	}

	n := t.Rows()
	nTest := int(math.Round(float64(n) * testFraction))
	if nTest == 0 || nTest == n {
		return nil, nil, fmt.Errorf("test fraction %v leaves an empty split for %d rows", testFraction, n)
	}

	perm := rand.New(rand.NewSource(seed)).Perm(n)
	return t.rows(perm[nTest:]), t.rows(perm[:nTest]), nil
}

// rows returns a copy of t restricted to the given row indices.
func (t *Table) rows(idx []int) *Table {
	_, d := t.X.Dims()

	x := mat.NewDense(len(idx), d, nil)
	y := make([]float64, len(idx))
	ids := make([]int, len(idx))
	for i, r := range idx {
		x.SetRow(i, t.X.RawRowView(r))
		y[i] = t.Y[r]
		ids[i] = t.PatientID[r]
	}

	names := make([]string, len(t.Names))
	copy(names, t.Names)

	return &Table{PatientID: ids, X: x, Y: y, Names: names}
}

// Scaler standardizes features and centers the target using statistics
// fitted on the training split.
type Scaler struct {
	Mean  []float64
	Std   []float64
	YMean float64
}

// FitScaler computes per-column mean and standard deviation of t's
// features and the mean of its target. Columns with zero deviation scale
// by 1 so transformed values stay finite.
func FitScaler(t *Table) *Scaler {
	n, d := t.X.Dims()

	s := &Scaler{
		Mean: make([]float64, d),
		Std:  make([]float64, d),
	}

	col := make([]float64, n)
	for j := 0; j < d; j++ {
		mat.Col(col, j, t.X)
		s.Mean[j], s.Std[j] = stat.MeanStdDev(col, nil)
		if s.Std[j] == 0 {
			s.Std[j] = 1
		}
	}
	s.YMean = stat.Mean(t.Y, nil)

	return s
}

// Transform returns a copy of t with features standardized and the target
// centered by the fitted statistics.
func (s *Scaler) Transform(t *Table) (*Table, error) {
	n, d := t.X.Dims()
	if d != len(s.Mean) {
		return nil, fmt.Errorf("scaler fitted on %d features, table has %d", len(s.Mean), d)
	}

	x := mat.NewDense(n, d, nil)
	for i := 0; i < n; i++ {
		row := t.X.RawRowView(i)
		for j := 0; j < d; j++ {
			x.Set(i, j, (row[j]-s.Mean[j])/s.Std[j])
		}
	}

	y := make([]float64, len(t.Y))
	for i, v := range t.Y {
		y[i] = v - s.YMean
	}

	ids := make([]int, len(t.PatientID))
	copy(ids, t.PatientID)
	names := make([]string, len(t.Names))
	copy(names, t.Names)

	return &Table{PatientID: ids, X: x, Y: y, Names: names}, nil
}
