// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package experiment wires the stage packages into runnable experiments:
// it prepares the dataset once and trains each model family against the
// same standardized splits.
package experiment

import (
	"fmt"
	"io"

	"github.com/pdiddy/slicebench/internal/dataset"
	"github.com/pdiddy/slicebench/internal/metrics"
	"github.com/pdiddy/slicebench/pkg/types"
)

// Data is the prepared dataset shared by all stages: cleaned,
// deterministically split, and standardized with train statistics.
type Data struct {
	Train  *dataset.Table
	Test   *dataset.Table
	Scaler *dataset.Scaler
	Clean  dataset.CleanReport
}

// Prepare loads the CSV, removes redundant columns, splits, and
// standardizes. Cleaning status lines go to w.
func Prepare(cfg types.DatasetConfig, w io.Writer) (*Data, error) {
	table, err := dataset.Load(dataset.Path(cfg))
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(w, "loaded %d rows, %d features\n", table.Rows(), table.Features())

	cleaned, report := dataset.Clean(table, w)

	train, test, err := dataset.Split(cleaned, cfg.TestFraction, cfg.Seed)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(w, "split: %d train / %d test rows\n", train.Rows(), test.Rows())

	scaler := dataset.FitScaler(train)
	trainStd, err := scaler.Transform(train)
	if err != nil {
		return nil, err
	}
	testStd, err := scaler.Transform(test)
	if err != nil {
		return nil, err
	}

	return &Data{Train: trainStd, Test: testStd, Scaler: scaler, Clean: report}, nil
}

// evaluate builds an Evaluation from train/test predictions.
func (d *Data) evaluate(stage, model string, params map[string]float64, trainPred, testPred []float64) (types.Evaluation, error) {
	trainRMSE, err := metrics.RMSE(trainPred, d.Train.Y)
	if err != nil {
		return types.Evaluation{}, fmt.Errorf("%s train RMSE: %w", model, err)
	}
	testRMSE, err := metrics.RMSE(testPred, d.Test.Y)
	if err != nil {
		return types.Evaluation{}, fmt.Errorf("%s test RMSE: %w", model, err)
	}

	return types.Evaluation{
		Stage:     stage,
		Model:     model,
		Params:    params,
		TrainRMSE: trainRMSE,
		TestRMSE:  testRMSE,
	}, nil
}
