// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/slicebench/pkg/types"
)

// experimentConfig overlays config-file and environment values onto the
// built-in defaults. Keys mirror the YAML layout of ExperimentConfig.
func experimentConfig() types.ExperimentConfig {
	cfg := types.DefaultExperimentConfig()

	overlayDuration("dataset.timeout", &cfg.Dataset.Timeout)
	overlayString("dataset.user_agent", &cfg.Dataset.UserAgent)
	overlayString("dataset.data_dir", &cfg.Dataset.DataDir)
	overlayString("dataset.source_url", &cfg.Dataset.SourceURL)
	overlayFloat("dataset.test_fraction", &cfg.Dataset.TestFraction)
	overlayInt64("dataset.seed", &cfg.Dataset.Seed)

	overlayFloat("linear.lambda", &cfg.Linear.Lambda)
	overlayFloat("linear.learning_rate", &cfg.Linear.LearningRate)
	overlayInt("linear.iterations", &cfg.Linear.Iterations)

	overlayInt("features.tasks", &cfg.Features.Tasks)
	overlayFloat("features.lambda", &cfg.Features.Lambda)
	overlayFloat("features.learning_rate", &cfg.Features.LearningRate)
	overlayInt("features.iterations", &cfg.Features.Iterations)
	overlayFloat("features.ridge_lambda", &cfg.Features.RidgeLambda)

	overlayInt("neural.hidden_units", &cfg.Neural.HiddenUnits)
	overlayFloat("neural.weight_decay", &cfg.Neural.WeightDecay)
	overlayFloat("neural.learning_rate", &cfg.Neural.LearningRate)
	overlayInt("neural.epochs", &cfg.Neural.Epochs)
	overlayInt64("neural.seed", &cfg.Neural.Seed)

	overlayFloat("tune.log_lambda_min", &cfg.Tune.LogLambdaMin)
	overlayFloat("tune.log_lambda_max", &cfg.Tune.LogLambdaMax)
	overlayInt("tune.initial_samples", &cfg.Tune.InitialSamples)
	overlayInt("tune.iterations", &cfg.Tune.Iterations)
	overlayInt("tune.candidates", &cfg.Tune.Candidates)
	overlayFloat("tune.xi", &cfg.Tune.Xi)
	overlayFloat("tune.beta", &cfg.Tune.Beta)
	overlayFloat("tune.kernel_width", &cfg.Tune.KernelWidth)
	overlayFloat("tune.noise", &cfg.Tune.Noise)
	overlayInt64("tune.seed", &cfg.Tune.Seed)
	if viper.IsSet("tune.acquisition") {
		cfg.Tune.Acquisition = types.AcquisitionKind(viper.GetString("tune.acquisition"))
	}

	overlayInt("boost.rounds", &cfg.Boost.Rounds)
	overlayFloat("boost.shrinkage", &cfg.Boost.Shrinkage)
	overlayInt("boost.max_depth", &cfg.Boost.MaxDepth)
	overlayInt("boost.min_leaf", &cfg.Boost.MinLeaf)
	overlayInt("boost.candidate_splits", &cfg.Boost.CandidateSplits)

	overlayString("results.results_dir", &cfg.Results.ResultsDir)
	overlayInt("results.max_results", &cfg.Results.MaxResults)

	return cfg
}

func overlayString(key string, dst *string) {
	if viper.IsSet(key) {
		*dst = viper.GetString(key)
	}
}

func overlayFloat(key string, dst *float64) {
	if viper.IsSet(key) {
		*dst = viper.GetFloat64(key)
	}
}

func overlayInt(key string, dst *int) {
	if viper.IsSet(key) {
		*dst = viper.GetInt(key)
	}
}

func overlayInt64(key string, dst *int64) {
	if viper.IsSet(key) {
		*dst = viper.GetInt64(key)
	}
}

func overlayDuration(key string, dst *time.Duration) {
	if viper.IsSet(key) {
		*dst = viper.GetDuration(key)
	}
}
