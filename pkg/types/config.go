// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "slicebench/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// DatasetConfig holds settings for dataset acquisition and preparation.
type DatasetConfig struct {
	HTTPConfig `yaml:",inline"`

	// DataDir is the directory holding the dataset CSV (default "data").
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// SourceURL is the download location of the slice-localization CSV.
	SourceURL string `json:"source_url" yaml:"source_url"`

	// TestFraction is the share of rows held out for testing (default 0.25).
	TestFraction float64 `json:"test_fraction" yaml:"test_fraction"`

	// Seed drives the deterministic train/test shuffle.
	Seed int64 `json:"seed" yaml:"seed"`
}

// LinearConfig holds settings for the regularized linear regression stage.
type LinearConfig struct {
	// Lambda is the ridge regularization strength.
	Lambda float64 `json:"lambda" yaml:"lambda"`

	// LearningRate is the step size for the gradient-descent solver.
	LearningRate float64 `json:"learning_rate" yaml:"learning_rate"`

	// Iterations is the number of full-batch gradient steps.
	Iterations int `json:"iterations" yaml:"iterations"`
}

// FeatureConfig holds settings for the logistic-derived feature stage.
type FeatureConfig struct {
	// Tasks is the number of binary threshold tasks (default 20).
	Tasks int `json:"tasks" yaml:"tasks"`

	// Lambda is the L2 penalty applied to each logistic regression.
	Lambda float64 `json:"lambda" yaml:"lambda"`

	// LearningRate is the step size for logistic gradient descent.
	LearningRate float64 `json:"learning_rate" yaml:"learning_rate"`

	// Iterations is the number of gradient steps per logistic task.
	Iterations int `json:"iterations" yaml:"iterations"`

	// RidgeLambda is the regularization for the second-stage regression
	// over the probability features.
	RidgeLambda float64 `json:"ridge_lambda" yaml:"ridge_lambda"`
}

// NeuralConfig holds settings for the two-layer network stage.
type NeuralConfig struct {
	// HiddenUnits is the number of sigmoid hidden units. Warm starting
	// from the logistic stage requires this to equal FeatureConfig.Tasks.
	HiddenUnits int `json:"hidden_units" yaml:"hidden_units"`

	// WeightDecay is the L2 penalty on all network weights.
	WeightDecay float64 `json:"weight_decay" yaml:"weight_decay"`

	// LearningRate is the full-batch gradient step size.
	LearningRate float64 `json:"learning_rate" yaml:"learning_rate"`

	// Epochs is the number of full-batch gradient steps.
	Epochs int `json:"epochs" yaml:"epochs"`

	// Seed drives the random weight initialization.
	Seed int64 `json:"seed" yaml:"seed"`
}

// AcquisitionKind selects the acquisition rule used by the tuner.
type AcquisitionKind string

const (
	AcquisitionPI  AcquisitionKind = "pi"
	AcquisitionEI  AcquisitionKind = "ei"
	AcquisitionLCB AcquisitionKind = "lcb"
)

// TuneConfig holds settings for the Bayesian-optimization stage.
type TuneConfig struct {
	// LogLambdaMin and LogLambdaMax bound the search interval in
	// log10(weight decay).
	LogLambdaMin float64 `json:"log_lambda_min" yaml:"log_lambda_min"`
	LogLambdaMax float64 `json:"log_lambda_max" yaml:"log_lambda_max"`

	// InitialSamples is the number of evaluations before the surrogate
	// drives candidate selection (default 3).
	InitialSamples int `json:"initial_samples" yaml:"initial_samples"`

	// Iterations is the number of surrogate-guided evaluations (default 5).
	Iterations int `json:"iterations" yaml:"iterations"`

	// Candidates is the number of points scored by the acquisition
	// function per iteration (default 50).
	Candidates int `json:"candidates" yaml:"candidates"`

	// Acquisition selects the acquisition rule (default pi).
	Acquisition AcquisitionKind `json:"acquisition" yaml:"acquisition"`

	// Xi is the minimum-improvement margin for pi and ei.
	Xi float64 `json:"xi" yaml:"xi"`

	// Beta is the exploration weight for lcb.
	Beta float64 `json:"beta" yaml:"beta"`

	// KernelWidth is the RBF length scale of the surrogate.
	KernelWidth float64 `json:"kernel_width" yaml:"kernel_width"`

	// Noise is the observation-noise jitter added to the kernel diagonal.
	Noise float64 `json:"noise" yaml:"noise"`

	// Seed drives candidate sampling and the initial design.
	Seed int64 `json:"seed" yaml:"seed"`
}

// BoostConfig holds settings for the gradient-boosted-tree stage.
type BoostConfig struct {
	// Rounds is the number of boosting rounds (trees).
	Rounds int `json:"rounds" yaml:"rounds"`

	// Shrinkage scales each tree's contribution (default 0.1).
	Shrinkage float64 `json:"shrinkage" yaml:"shrinkage"`

	// MaxDepth limits tree depth (default 3).
	MaxDepth int `json:"max_depth" yaml:"max_depth"`

	// MinLeaf is the minimum number of rows per leaf (default 20).
	MinLeaf int `json:"min_leaf" yaml:"min_leaf"`

	// CandidateSplits is the number of quantile split candidates
	// considered per feature (default 16).
	CandidateSplits int `json:"candidate_splits" yaml:"candidate_splits"`
}

// ResultsConfig holds settings for the results store.
type ResultsConfig struct {
	// ResultsDir is the directory containing the SQLite database and
	// exports (default "results").
	ResultsDir string `json:"results_dir" yaml:"results_dir"`

	// MaxResults is the default maximum number of listed runs (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// ExperimentConfig groups all stage configurations.
type ExperimentConfig struct {
	Dataset  DatasetConfig `json:"dataset" yaml:"dataset"`
	Linear   LinearConfig  `json:"linear" yaml:"linear"`
	Features FeatureConfig `json:"features" yaml:"features"`
	Neural   NeuralConfig  `json:"neural" yaml:"neural"`
	Tune     TuneConfig    `json:"tune" yaml:"tune"`
	Boost    BoostConfig   `json:"boost" yaml:"boost"`
	Results  ResultsConfig `json:"results" yaml:"results"`
}

// DefaultExperimentConfig returns the configuration used when no config
// file overrides are present. Defaults follow the original study: 20
// threshold tasks, 20 hidden units, 5 tuner iterations.
func DefaultExperimentConfig() ExperimentConfig {
	return ExperimentConfig{
		Dataset: DatasetConfig{
			HTTPConfig: HTTPConfig{
				Timeout:   60 * time.Second,
				UserAgent: "slicebench/0.1",
			},
			DataDir:      "data",
			SourceURL:    "https://archive.ics.uci.edu/static/public/206/relative+location+of+ct+slices+on+axial+axis.zip",
			TestFraction: 0.25,
			Seed:         1,
		},
		Linear: LinearConfig{
			Lambda:       1.0,
			LearningRate: 0.01,
			Iterations:   500,
		},
		Features: FeatureConfig{
			Tasks:        20,
			Lambda:       0.1,
			LearningRate: 0.5,
			Iterations:   300,
			RidgeLambda:  0.1,
		},
		Neural: NeuralConfig{
			HiddenUnits:  20,
			WeightDecay:  0.01,
			LearningRate: 0.1,
			Epochs:       400,
			Seed:         1,
		},
		Tune: TuneConfig{
			LogLambdaMin:   -6,
			LogLambdaMax:   2,
			InitialSamples: 3,
			Iterations:     5,
			Candidates:     50,
			Acquisition:    AcquisitionPI,
			Xi:             0.01,
			Beta:           2.0,
			KernelWidth:    1.0,
			Noise:          1e-6,
			Seed:           1,
		},
		Boost: BoostConfig{
			Rounds:          100,
			Shrinkage:       0.1,
			MaxDepth:        3,
			MinLeaf:         20,
			CandidateSplits: 16,
		},
		Results: ResultsConfig{
			ResultsDir: "results",
			MaxResults: 20,
		},
	}
}
