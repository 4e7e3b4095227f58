// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logistic

import (
	"context"
	"fmt"
	"io"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/pdiddy/slicebench/pkg/types"
)

// Bank is an ordered set of logistic models, one per threshold task.
type Bank struct {
	Models []Model
}

// Thresholds returns k evenly spaced quantile levels of y, excluding the
// extremes so every task has examples of both classes.
func Thresholds(y []float64, k int) ([]float64, error) {
	if k <= 0 {
		return nil, fmt.Errorf("task count %d must be positive", k)
	}
	if len(y) < 2 {
		return nil, fmt.Errorf("need at least 2 targets, have %d", len(y))
	}

	sorted := make([]float64, len(y))
	copy(sorted, y)
	sort.Float64s(sorted)

	thresholds := make([]float64, k)
	for i := 0; i < k; i++ {
		p := float64(i+1) / float64(k+1)
		thresholds[i] = stat.Quantile(p, stat.Empirical, sorted, nil)
	}
	return thresholds, nil
}

// FitBank trains cfg.Tasks logistic regressions over quantile thresholds
// of y, writing per-task progress to w.
func FitBank(ctx context.Context, x *mat.Dense, y []float64, cfg types.FeatureConfig, w io.Writer) (*Bank, error) {
	thresholds, err := Thresholds(y, cfg.Tasks)
	if err != nil {
		return nil, err
	}

	bank := &Bank{Models: make([]Model, len(thresholds))}
	for i, threshold := range thresholds {
		labels := Labels(y, threshold)

		model, err := Fit(ctx, x, labels, threshold, cfg.Lambda, cfg.LearningRate, cfg.Iterations)
		if err != nil {
			return nil, fmt.Errorf("task %d (threshold %.3f): %w", i+1, threshold, err)
		}
		bank.Models[i] = model
		fmt.Fprintf(w, "task %2d/%d: threshold %8.3f\n", i+1, len(thresholds), threshold)
	}
	return bank, nil
}

// Features returns the n×k matrix of per-task probabilities for x.
func (b *Bank) Features(x *mat.Dense) *mat.Dense {
	n, _ := x.Dims()
	out := mat.NewDense(n, len(b.Models), nil)
	for j, model := range b.Models {
		out.SetCol(j, model.Probabilities(x))
	}
	return out
}
