// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package boost

import (
	"context"
	"io"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/pdiddy/slicebench/internal/metrics"
	"github.com/pdiddy/slicebench/pkg/types"
)

func boostConfig() types.BoostConfig {
	return types.BoostConfig{
		Rounds:          50,
		Shrinkage:       0.3,
		MaxDepth:        3,
		MinLeaf:         2,
		CandidateSplits: 8,
	}
}

// stepData is a piecewise-constant target, the easy case for trees.
func stepData() (*mat.Dense, []float64) {
	n := 40
	x := mat.NewDense(n, 1, nil)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		x.Set(i, 0, float64(i))
		switch {
		case i < 10:
			y[i] = -5
		case i < 25:
			y[i] = 2
		default:
			y[i] = 8
		}
	}
	return x, y
}

func TestFitStepFunction(t *testing.T) {
	x, y := stepData()

	model, err := Fit(context.Background(), x, y, boostConfig(), io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if len(model.Trees) != 50 {
		t.Fatalf("ensemble has %d trees, want 50", len(model.Trees))
	}

	pred := model.Predict(x)
	if len(pred) != len(y) {
		t.Fatalf("Predict() returned %d values, want %d", len(pred), len(y))
	}

	rmse, err := metrics.RMSE(pred, y)
	if err != nil {
		t.Fatal(err)
	}
	if rmse > 0.5 {
		t.Errorf("train RMSE = %v, want < 0.5", rmse)
	}
}

func TestFitImprovesOnMean(t *testing.T) {
	x, y := stepData()

	cfg := boostConfig()
	cfg.Rounds = 5
	model, err := Fit(context.Background(), x, y, cfg, io.Discard)
	if err != nil {
		t.Fatal(err)
	}

	baseline := make([]float64, len(y))
	for i := range baseline {
		baseline[i] = model.Base
	}
	baseRMSE, _ := metrics.RMSE(baseline, y)
	fitRMSE, _ := metrics.RMSE(model.Predict(x), y)

	if fitRMSE >= baseRMSE {
		t.Errorf("boosting did not improve on the mean: %v vs %v", fitRMSE, baseRMSE)
	}
}

func TestFitValidation(t *testing.T) {
	x, y := stepData()

	cfg := boostConfig()
	cfg.Rounds = 0
	if _, err := Fit(context.Background(), x, y, cfg, io.Discard); err == nil {
		t.Error("Fit() accepted zero rounds")
	}

	cfg = boostConfig()
	cfg.Shrinkage = 1.5
	if _, err := Fit(context.Background(), x, y, cfg, io.Discard); err == nil {
		t.Error("Fit() accepted shrinkage > 1")
	}

	if _, err := Fit(context.Background(), x, y[:3], boostConfig(), io.Discard); err == nil {
		t.Error("Fit() accepted mismatched target count")
	}
}

func TestFitCancellation(t *testing.T) {
	x, y := stepData()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Fit(ctx, x, y, boostConfig(), io.Discard); err != context.Canceled {
		t.Errorf("Fit() error = %v, want context.Canceled", err)
	}
}

func TestTreeRespectsMinLeaf(t *testing.T) {
	x, y := stepData()
	rows := make([]int, len(y))
	for i := range rows {
		rows[i] = i
	}

	cfg := boostConfig()
	cfg.MinLeaf = 15
	tree := fitTree(x, y, rows, cfg)

	// Count the rows reaching each leaf; none may fall under MinLeaf.
	counts := make(map[float64]int)
	for i := range rows {
		counts[tree.PredictRow(x.RawRowView(i))]++
	}
	for value, count := range counts {
		if count < cfg.MinLeaf {
			t.Errorf("leaf %v holds %d rows, want >= %d", value, count, cfg.MinLeaf)
		}
	}
}

func TestTreeConstantTarget(t *testing.T) {
	x, _ := stepData()
	y := make([]float64, 40)
	for i := range y {
		y[i] = 3
	}
	rows := make([]int, len(y))
	for i := range rows {
		rows[i] = i
	}

	tree := fitTree(x, y, rows, boostConfig())
	if got := tree.PredictRow(x.RawRowView(0)); math.Abs(got-3) > 1e-12 {
		t.Errorf("constant-target prediction = %v, want 3", got)
	}
}

func TestCandidatesDistinct(t *testing.T) {
	values := []float64{1, 1, 1, 1, 2, 2, 3, 3, 3, 4}
	out := candidates(values, 6)

	for i := 1; i < len(out); i++ {
		if out[i] == out[i-1] {
			t.Errorf("duplicate candidate %v at %d: %v", out[i], i, out)
		}
	}
}
