// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// CleanReport records which feature columns Clean removed and why.
type CleanReport struct {
	// Constant lists columns dropped for having zero standard deviation.
	Constant []int

	// Duplicate maps each dropped column to the earlier column it
	// duplicates.
	Duplicate map[int]int

	// Kept lists the surviving column indices, in original order.
	Kept []int
}

// Dropped returns the total number of removed columns.
func (r CleanReport) Dropped() int {
	return len(r.Constant) + len(r.Duplicate)
}

// Clean returns a copy of t without constant and duplicate feature
// columns. Constant columns have standard deviation exactly zero.
// Duplicate detection groups candidates by column sum and confirms with
// an element-wise comparison, keeping the earlier column of each pair.
// Per-column status is written to w.
func Clean(t *Table, w io.Writer) (*Table, CleanReport) {
	n, d := t.X.Dims()

	report := CleanReport{Duplicate: make(map[int]int)}
	col := make([]float64, n)

	// Pass 1: constant columns.
	constant := make([]bool, d)
	for j := 0; j < d; j++ {
		mat.Col(col, j, t.X)
		if _, std := stat.MeanStdDev(col, nil); std == 0 {
			constant[j] = true
			report.Constant = append(report.Constant, j)
			fmt.Fprintf(w, "dropping %s: constant\n", t.Names[j])
		}
	}

	// Pass 2: duplicate columns among the survivors, bucketed by sum.
	sums := make(map[float64][]int)
	other := make([]float64, n)
	dup := make([]bool, d)
	for j := 0; j < d; j++ {
		if constant[j] {
			continue
		}
		mat.Col(col, j, t.X)
		sum := floats.Sum(col)

		matched := -1
		for _, k := range sums[sum] {
			mat.Col(other, k, t.X)
			if floats.Equal(col, other) {
				matched = k
				break
			}
		}
		if matched >= 0 {
			dup[j] = true
			report.Duplicate[j] = matched
			fmt.Fprintf(w, "dropping %s: duplicate of %s\n", t.Names[j], t.Names[matched])
			continue
		}
		sums[sum] = append(sums[sum], j)
	}

	for j := 0; j < d; j++ {
		if !constant[j] && !dup[j] {
			report.Kept = append(report.Kept, j)
		}
	}

	fmt.Fprintf(w, "kept %d of %d columns (%d constant, %d duplicate)\n",
		len(report.Kept), d, len(report.Constant), len(report.Duplicate))

	return t.Select(report.Kept), report
}

// Select returns a copy of t restricted to the given feature columns.
func (t *Table) Select(cols []int) *Table {
	n, _ := t.X.Dims()

	x := mat.NewDense(n, len(cols), nil)
	names := make([]string, len(cols))
	buf := make([]float64, n)
	for i, j := range cols {
		mat.Col(buf, j, t.X)
		x.SetCol(i, buf)
		names[i] = t.Names[j]
	}

	ids := make([]int, len(t.PatientID))
	copy(ids, t.PatientID)
	y := make([]float64, len(t.Y))
	copy(y, t.Y)

	return &Table{PatientID: ids, X: x, Y: y, Names: names}
}
