// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Evaluation holds the outcome of training one model on the prepared
// dataset. Stage code produces Evaluations; the results store persists
// them.
type Evaluation struct {
	// Stage names the experiment stage (e.g. "linear", "neural").
	Stage string `json:"stage" yaml:"stage"`

	// Model names the specific model within the stage
	// (e.g. "ridge-closed-form", "neural-warm-start").
	Model string `json:"model" yaml:"model"`

	// Params records the hyperparameters used for the run.
	Params map[string]float64 `json:"params" yaml:"params"`

	// TrainRMSE and TestRMSE are root-mean-square errors on the train
	// and held-out splits, in target units.
	TrainRMSE float64 `json:"train_rmse" yaml:"train_rmse"`
	TestRMSE  float64 `json:"test_rmse" yaml:"test_rmse"`
}

// RunRecord is a persisted Evaluation with store-assigned identity.
type RunRecord struct {
	ID        int64     `json:"id" yaml:"id"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`

	Evaluation `yaml:",inline"`
}
