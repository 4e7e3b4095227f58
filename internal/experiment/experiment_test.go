// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package experiment

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/slicebench/internal/dataset"
	"github.com/pdiddy/slicebench/pkg/types"
)

// writeSyntheticCSV builds a small slice-localization-shaped CSV: a
// patient column, informative features, one constant and one duplicate
// column to exercise cleaning, and a linear target with mild noise.
func writeSyntheticCSV(t *testing.T, dir string, rows int) {
	t.Helper()

	rng := rand.New(rand.NewSource(5))
	var b strings.Builder
	b.WriteString("patientId,value0,value1,value2,const,dup0,reference\n")
	for i := 0; i < rows; i++ {
		v0 := rng.NormFloat64()
		v1 := rng.NormFloat64()
		v2 := rng.NormFloat64()
		target := 40 + 12*v0 - 7*v1 + 3*v2 + 0.1*rng.NormFloat64()
		fmt.Fprintf(&b, "%d,%.6f,%.6f,%.6f,1.0,%.6f,%.4f\n", i%10, v0, v1, v2, v0, target)
	}

	path := filepath.Join(dir, dataset.CSVName)
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatal(err)
	}
}

func prepared(t *testing.T, rows int) *Data {
	t.Helper()

	dir := t.TempDir()
	writeSyntheticCSV(t, dir, rows)

	cfg := types.DatasetConfig{DataDir: dir, TestFraction: 0.25, Seed: 1}
	d, err := Prepare(cfg, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestPrepareCleansAndSplits(t *testing.T) {
	d := prepared(t, 80)

	// const dropped as constant, dup0 dropped as duplicate of value0.
	if got := d.Train.Features(); got != 3 {
		t.Fatalf("Features() = %d, want 3", got)
	}
	if len(d.Clean.Constant) != 1 {
		t.Errorf("Constant = %v, want one column", d.Clean.Constant)
	}
	if len(d.Clean.Duplicate) != 1 {
		t.Errorf("Duplicate = %v, want one column", d.Clean.Duplicate)
	}
	if d.Train.Rows() != 60 || d.Test.Rows() != 20 {
		t.Errorf("split = %d/%d, want 60/20", d.Train.Rows(), d.Test.Rows())
	}
}

func TestRunLinearSolversAgree(t *testing.T) {
	d := prepared(t, 80)

	cfg := types.LinearConfig{Lambda: 0.1, LearningRate: 0.3, Iterations: 3000}
	evals, err := RunLinear(context.Background(), d, cfg, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if len(evals) != 2 {
		t.Fatalf("evaluations = %d, want 2", len(evals))
	}

	closed, gd := evals[0], evals[1]
	if closed.Model != "ridge-closed-form" || gd.Model != "ridge-gd" {
		t.Fatalf("models = %q, %q", closed.Model, gd.Model)
	}

	// The target is near-linear, so both solvers fit tightly and agree.
	if closed.TestRMSE > 1 {
		t.Errorf("closed-form test RMSE = %v, want < 1", closed.TestRMSE)
	}
	if diff := gd.TestRMSE - closed.TestRMSE; diff > 0.05 || diff < -0.05 {
		t.Errorf("solver RMSE gap = %v, want within 0.05", diff)
	}
}

func TestRunFeaturesAndWarmStart(t *testing.T) {
	d := prepared(t, 80)
	ctx := context.Background()

	featCfg := types.FeatureConfig{
		Tasks:        4,
		Lambda:       0.01,
		LearningRate: 0.5,
		Iterations:   200,
		RidgeLambda:  0.1,
	}
	featEvals, artifacts, err := RunFeatures(ctx, d, featCfg, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if len(featEvals) != 1 || featEvals[0].Model != "logistic-features" {
		t.Fatalf("feature evaluations = %+v", featEvals)
	}
	if len(artifacts.Bank.Models) != 4 || len(artifacts.RidgeW) != 4 {
		t.Fatalf("artifacts sized %d/%d, want 4/4", len(artifacts.Bank.Models), len(artifacts.RidgeW))
	}

	neuralCfg := types.NeuralConfig{
		HiddenUnits:  4,
		WeightDecay:  0.01,
		LearningRate: 0.1,
		Epochs:       200,
		Seed:         1,
	}
	evals, err := RunNeural(ctx, d, neuralCfg, artifacts, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if len(evals) != 2 {
		t.Fatalf("neural evaluations = %d, want 2", len(evals))
	}
	if evals[0].Model != "neural-random" || evals[1].Model != "neural-warm-start" {
		t.Errorf("models = %q, %q", evals[0].Model, evals[1].Model)
	}

	// Hidden width must match the bank for warm starting.
	neuralCfg.HiddenUnits = 7
	if _, err := RunNeural(ctx, d, neuralCfg, artifacts, io.Discard); err == nil {
		t.Error("RunNeural() accepted mismatched bank and hidden width")
	}
}

func TestRunNeuralWithoutArtifacts(t *testing.T) {
	d := prepared(t, 80)

	cfg := types.NeuralConfig{HiddenUnits: 3, LearningRate: 0.1, Epochs: 50, Seed: 1}
	evals, err := RunNeural(context.Background(), d, cfg, nil, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if len(evals) != 1 || evals[0].Model != "neural-random" {
		t.Errorf("evaluations = %+v, want neural-random only", evals)
	}
}

func TestRunTune(t *testing.T) {
	d := prepared(t, 80)

	neuralCfg := types.NeuralConfig{HiddenUnits: 3, LearningRate: 0.1, Epochs: 50, Seed: 1}
	tuneCfg := types.TuneConfig{
		LogLambdaMin:   -4,
		LogLambdaMax:   1,
		InitialSamples: 2,
		Iterations:     2,
		Candidates:     10,
		Acquisition:    types.AcquisitionPI,
		Xi:             0.01,
		KernelWidth:    1,
		Noise:          1e-6,
		Seed:           1,
	}

	result, evals, err := RunTune(context.Background(), d, neuralCfg, tuneCfg, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := len(result.Trace), 4; got != want {
		t.Errorf("trace length = %d, want %d", got, want)
	}
	if len(evals) != 1 || evals[0].Model != "neural-tuned" {
		t.Fatalf("evaluations = %+v, want neural-tuned", evals)
	}
	if evals[0].Params["weight_decay"] != result.Best.Lambda {
		t.Errorf("recorded weight decay %v, best %v", evals[0].Params["weight_decay"], result.Best.Lambda)
	}
}

func TestRunBoost(t *testing.T) {
	d := prepared(t, 80)

	cfg := types.BoostConfig{
		Rounds:          30,
		Shrinkage:       0.2,
		MaxDepth:        3,
		MinLeaf:         3,
		CandidateSplits: 8,
	}
	evals, err := RunBoost(context.Background(), d, cfg, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if len(evals) != 1 || evals[0].Model != "gbt" {
		t.Fatalf("evaluations = %+v, want gbt", evals)
	}
	if evals[0].TrainRMSE >= evals[0].TestRMSE*2 {
		t.Errorf("train RMSE %v implausibly above test %v", evals[0].TrainRMSE, evals[0].TestRMSE)
	}
}
