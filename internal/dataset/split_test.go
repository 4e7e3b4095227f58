// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func splitTable(t *testing.T, n int) *Table {
	t.Helper()

	x := mat.NewDense(n, 2, nil)
	y := make([]float64, n)
	ids := make([]int, n)
	for i := 0; i < n; i++ {
		x.Set(i, 0, float64(i))
		x.Set(i, 1, float64(i*i))
		y[i] = float64(i) * 10
		ids[i] = i
	}
	return &Table{PatientID: ids, X: x, Y: y, Names: []string{"a", "b"}}
}

func TestSplitSizes(t *testing.T) {
	train, test, err := Split(splitTable(t, 8), 0.25, 1)
	if err != nil {
		t.Fatal(err)
	}
	if train.Rows() != 6 || test.Rows() != 2 {
		t.Errorf("split sizes = %d/%d, want 6/2", train.Rows(), test.Rows())
	}
}

func TestSplitDeterministic(t *testing.T) {
	table := splitTable(t, 20)

	train1, _, err := Split(table, 0.25, 42)
	if err != nil {
		t.Fatal(err)
	}
	train2, _, err := Split(table, 0.25, 42)
	if err != nil {
		t.Fatal(err)
	}

	for i := range train1.Y {
		if train1.Y[i] != train2.Y[i] {
			t.Fatalf("same seed produced different splits at row %d", i)
		}
	}
}

func TestSplitPartitions(t *testing.T) {
	table := splitTable(t, 10)
	train, test, err := Split(table, 0.3, 7)
	if err != nil {
		t.Fatal(err)
	}

	seen := make(map[float64]bool)
	for _, v := range train.Y {
		seen[v] = true
	}
	for _, v := range test.Y {
		if seen[v] {
			t.Fatalf("row with target %v appears in both splits", v)
		}
		seen[v] = true
	}
	if len(seen) != 10 {
		t.Errorf("splits cover %d rows, want 10", len(seen))
	}
}

func TestSplitBadFraction(t *testing.T) {
	table := splitTable(t, 8)
	for _, frac := range []float64{0, 1, -0.5, 1.5} {
		if _, _, err := Split(table, frac, 1); err == nil {
			t.Errorf("Split(frac=%v) succeeded, want error", frac)
		}
	}
}

func TestScalerStandardizes(t *testing.T) {
	table := splitTable(t, 10)

	scaler := FitScaler(table)
	scaled, err := scaler.Transform(table)
	if err != nil {
		t.Fatal(err)
	}

	n, d := scaled.X.Dims()
	col := make([]float64, n)
	for j := 0; j < d; j++ {
		mat.Col(col, j, scaled.X)
		var sum float64
		for _, v := range col {
			sum += v
		}
		if mean := sum / float64(n); math.Abs(mean) > 1e-10 {
			t.Errorf("column %d mean = %v after standardization", j, mean)
		}
	}

	var ySum float64
	for _, v := range scaled.Y {
		ySum += v
	}
	if mean := ySum / float64(n); math.Abs(mean) > 1e-10 {
		t.Errorf("target mean = %v after centering", mean)
	}
}

func TestScalerDimensionMismatch(t *testing.T) {
	scaler := FitScaler(splitTable(t, 10))

	other := &Table{
		X:     mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6}),
		Y:     []float64{1, 2},
		Names: []string{"a", "b", "c"},
	}
	if _, err := scaler.Transform(other); err == nil {
		t.Fatal("Transform() succeeded on mismatched feature count")
	}
}
