// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package experiment

import (
	"context"
	"fmt"
	"io"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/pdiddy/slicebench/internal/boost"
	"github.com/pdiddy/slicebench/internal/dataset"
	"github.com/pdiddy/slicebench/internal/linear"
	"github.com/pdiddy/slicebench/internal/logistic"
	"github.com/pdiddy/slicebench/internal/metrics"
	"github.com/pdiddy/slicebench/internal/neural"
	"github.com/pdiddy/slicebench/internal/tune"
	"github.com/pdiddy/slicebench/pkg/types"
)

// RunLinear fits the ridge regression with both solvers and reports how
// far apart their coefficient vectors end up.
func RunLinear(ctx context.Context, d *Data, cfg types.LinearConfig, w io.Writer) ([]types.Evaluation, error) {
	params := map[string]float64{"lambda": cfg.Lambda}

	closed, err := linear.Ridge(d.Train.X, d.Train.Y, cfg.Lambda)
	if err != nil {
		return nil, fmt.Errorf("closed-form ridge: %w", err)
	}
	closedEval, err := d.evaluate("linear", "ridge-closed-form", params,
		linear.Predict(d.Train.X, closed), linear.Predict(d.Test.X, closed))
	if err != nil {
		return nil, err
	}

	descended, err := linear.RidgeGD(ctx, d.Train.X, d.Train.Y, cfg.Lambda, cfg.LearningRate, cfg.Iterations)
	if err != nil {
		return nil, fmt.Errorf("gradient-descent ridge: %w", err)
	}
	gdParams := map[string]float64{
		"lambda":        cfg.Lambda,
		"learning_rate": cfg.LearningRate,
		"iterations":    float64(cfg.Iterations),
	}
	gdEval, err := d.evaluate("linear", "ridge-gd", gdParams,
		linear.Predict(d.Train.X, descended), linear.Predict(d.Test.X, descended))
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(w, "solver coefficient distance: %.6f\n", floats.Distance(closed, descended, 2))

	return []types.Evaluation{closedEval, gdEval}, nil
}

// FeatureArtifacts carries what the neural warm start needs from the
// logistic stage: the fitted bank, the second-stage ridge coefficients,
// and the probability-feature scaler they were fitted under.
type FeatureArtifacts struct {
	Bank   *logistic.Bank
	RidgeW []float64
	Scaler *dataset.Scaler
}

// RunFeatures fits the logistic bank, derives probability features, and
// fits the second-stage ridge regression over them. Per-task test
// accuracy goes to w.
func RunFeatures(ctx context.Context, d *Data, cfg types.FeatureConfig, w io.Writer) ([]types.Evaluation, *FeatureArtifacts, error) {
	bank, err := logistic.FitBank(ctx, d.Train.X, d.Train.Y, cfg, w)
	if err != nil {
		return nil, nil, fmt.Errorf("fitting logistic bank: %w", err)
	}

	for i, model := range bank.Models {
		labels := logistic.Labels(d.Test.Y, model.Threshold)
		acc, err := metrics.Accuracy(model.Probabilities(d.Test.X), labels)
		if err != nil {
			return nil, nil, fmt.Errorf("task %d accuracy: %w", i+1, err)
		}
		fmt.Fprintf(w, "task %2d: threshold %8.3f test accuracy %.3f\n", i+1, model.Threshold, acc)
	}

	trainFeats := featureTable(bank, d.Train)
	testFeats := featureTable(bank, d.Test)

	scaler := dataset.FitScaler(trainFeats)
	trainStd, err := scaler.Transform(trainFeats)
	if err != nil {
		return nil, nil, err
	}
	testStd, err := scaler.Transform(testFeats)
	if err != nil {
		return nil, nil, err
	}

	ridgeW, err := linear.Ridge(trainStd.X, trainStd.Y, cfg.RidgeLambda)
	if err != nil {
		return nil, nil, fmt.Errorf("second-stage ridge: %w", err)
	}

	params := map[string]float64{
		"tasks":        float64(cfg.Tasks),
		"lambda":       cfg.Lambda,
		"ridge_lambda": cfg.RidgeLambda,
	}
	eval, err := d.evaluate("features", "logistic-features", params,
		linear.Predict(trainStd.X, ridgeW), linear.Predict(testStd.X, ridgeW))
	if err != nil {
		return nil, nil, err
	}

	artifacts := &FeatureArtifacts{Bank: bank, RidgeW: ridgeW, Scaler: scaler}
	return []types.Evaluation{eval}, artifacts, nil
}

// featureTable wraps the bank's probability features for t into a Table
// so the dataset scaler can operate on them.
func featureTable(bank *logistic.Bank, t *dataset.Table) *dataset.Table {
	names := make([]string, len(bank.Models))
	for i := range names {
		names[i] = fmt.Sprintf("task%02d", i+1)
	}
	return &dataset.Table{
		PatientID: t.PatientID,
		X:         bank.Features(t.X),
		Y:         t.Y,
		Names:     names,
	}
}

// RunNeural trains the two-layer network from a random initialization
// and, when artifacts are provided, from the logistic warm start. Warm
// starting requires the hidden width to match the bank size.
func RunNeural(ctx context.Context, d *Data, cfg types.NeuralConfig, artifacts *FeatureArtifacts, w io.Writer) ([]types.Evaluation, error) {
	params := map[string]float64{
		"hidden_units":  float64(cfg.HiddenUnits),
		"weight_decay":  cfg.WeightDecay,
		"learning_rate": cfg.LearningRate,
		"epochs":        float64(cfg.Epochs),
	}

	random := neural.New(d.Train.Features(), cfg.HiddenUnits, cfg.Seed)
	fmt.Fprintln(w, "training from random initialization:")
	if err := random.Train(ctx, d.Train.X, d.Train.Y, cfg, w); err != nil {
		return nil, fmt.Errorf("random-init network: %w", err)
	}
	randomEval, err := d.evaluate("neural", "neural-random", params,
		random.Predict(d.Train.X), random.Predict(d.Test.X))
	if err != nil {
		return nil, err
	}
	evals := []types.Evaluation{randomEval}

	if artifacts == nil {
		return evals, nil
	}
	if len(artifacts.Bank.Models) != cfg.HiddenUnits {
		return nil, fmt.Errorf("warm start needs %d hidden units to match the logistic bank, have %d",
			len(artifacts.Bank.Models), cfg.HiddenUnits)
	}

	warm, err := neural.FromBank(artifacts.Bank, artifacts.RidgeW, artifacts.Scaler.Mean, artifacts.Scaler.Std)
	if err != nil {
		return nil, fmt.Errorf("building warm start: %w", err)
	}
	fmt.Fprintln(w, "training from logistic warm start:")
	if err := warm.Train(ctx, d.Train.X, d.Train.Y, cfg, w); err != nil {
		return nil, fmt.Errorf("warm-start network: %w", err)
	}
	warmEval, err := d.evaluate("neural", "neural-warm-start", params,
		warm.Predict(d.Train.X), warm.Predict(d.Test.X))
	if err != nil {
		return nil, err
	}

	return append(evals, warmEval), nil
}

// RunTune searches the network's weight decay by Bayesian optimization
// against a validation split of the training data, then retrains at the
// best value and evaluates on the test split.
func RunTune(ctx context.Context, d *Data, neuralCfg types.NeuralConfig, tuneCfg types.TuneConfig, w io.Writer) (tune.Result, []types.Evaluation, error) {
	subTrain, validation, err := dataset.Split(d.Train, 0.25, tuneCfg.Seed)
	if err != nil {
		return tune.Result{}, nil, fmt.Errorf("validation split: %w", err)
	}

	objective := func(ctx context.Context, lambda float64) (float64, error) {
		cfg := neuralCfg
		cfg.WeightDecay = lambda
		net := neural.New(subTrain.Features(), cfg.HiddenUnits, cfg.Seed)
		if err := net.Train(ctx, subTrain.X, subTrain.Y, cfg, io.Discard); err != nil {
			return 0, err
		}
		return metrics.RMSE(net.Predict(validation.X), validation.Y)
	}

	result, err := tune.Optimize(ctx, tuneCfg, objective, w)
	if err != nil {
		return result, nil, err
	}

	// Retrain on the full training split at the tuned strength.
	tuned := neuralCfg
	tuned.WeightDecay = result.Best.Lambda
	net := neural.New(d.Train.Features(), tuned.HiddenUnits, tuned.Seed)
	fmt.Fprintf(w, "retraining at lambda %.4g:\n", tuned.WeightDecay)
	if err := net.Train(ctx, d.Train.X, d.Train.Y, tuned, w); err != nil {
		return result, nil, fmt.Errorf("retraining tuned network: %w", err)
	}

	params := map[string]float64{
		"hidden_units": float64(tuned.HiddenUnits),
		"weight_decay": tuned.WeightDecay,
		"log_lambda":   math.Log10(tuned.WeightDecay),
		"iterations":   float64(tuneCfg.Iterations),
	}
	eval, err := d.evaluate("tune", "neural-tuned", params,
		net.Predict(d.Train.X), net.Predict(d.Test.X))
	if err != nil {
		return result, nil, err
	}

	return result, []types.Evaluation{eval}, nil
}

// RunBoost fits the gradient-boosted-tree baseline.
func RunBoost(ctx context.Context, d *Data, cfg types.BoostConfig, w io.Writer) ([]types.Evaluation, error) {
	model, err := boost.Fit(ctx, d.Train.X, d.Train.Y, cfg, w)
	if err != nil {
		return nil, fmt.Errorf("boosting: %w", err)
	}

	params := map[string]float64{
		"rounds":    float64(cfg.Rounds),
		"shrinkage": cfg.Shrinkage,
		"max_depth": float64(cfg.MaxDepth),
		"min_leaf":  float64(cfg.MinLeaf),
	}
	eval, err := d.evaluate("boost", "gbt", params,
		model.Predict(d.Train.X), model.Predict(d.Test.X))
	if err != nil {
		return nil, err
	}
	return []types.Evaluation{eval}, nil
}
