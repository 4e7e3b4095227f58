// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/slicebench/internal/experiment"
)

var neuralCmd = &cobra.Command{
	Use:   "neural",
	Short: "Train the two-layer network",
	Long: `Neural trains a sigmoid-hidden-layer network on the cleaned dataset
twice: once from a random initialization and once warm-started from the
logistic feature stage, and compares the two.

Warm starting refits the logistic bank first, so the hidden width must
equal the task count. Pass --no-warm-start to train only the random
initialization.`,
	RunE: runNeural,
}

func runNeural(cmd *cobra.Command, args []string) error {
	cfg := experimentConfig()
	if cmd.Flags().Changed("hidden") {
		cfg.Neural.HiddenUnits, _ = cmd.Flags().GetInt("hidden")
	}
	if cmd.Flags().Changed("weight-decay") {
		cfg.Neural.WeightDecay, _ = cmd.Flags().GetFloat64("weight-decay")
	}
	noWarmStart, _ := cmd.Flags().GetBool("no-warm-start")

	data, err := prepareData(cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()

	var artifacts *experiment.FeatureArtifacts
	if !noWarmStart {
		_, artifacts, err = experiment.RunFeatures(ctx, data, cfg.Features, os.Stdout)
		if err != nil {
			return err
		}
	}

	evals, err := experiment.RunNeural(ctx, data, cfg.Neural, artifacts, os.Stdout)
	if err != nil {
		return err
	}

	printEvaluations(evals)
	return recordEvaluations(ctx, cfg.Results, evals)
}

func init() {
	neuralCmd.Flags().Int("hidden", 20, "number of sigmoid hidden units")
	neuralCmd.Flags().Float64("weight-decay", 0.01, "L2 penalty on network weights")
	neuralCmd.Flags().Bool("no-warm-start", false, "skip the logistic warm start")

	rootCmd.AddCommand(neuralCmd)
}
