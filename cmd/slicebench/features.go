// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/slicebench/internal/experiment"
)

var featuresCmd = &cobra.Command{
	Use:   "features",
	Short: "Fit the logistic-derived feature model",
	Long: `Features builds binary classification tasks by thresholding the
target at evenly spaced quantiles, fits an independent logistic
regression per task, and regresses the target on the resulting
probability features.`,
	RunE: runFeatures,
}

func runFeatures(cmd *cobra.Command, args []string) error {
	cfg := experimentConfig()
	if cmd.Flags().Changed("tasks") {
		cfg.Features.Tasks, _ = cmd.Flags().GetInt("tasks")
	}

	data, err := prepareData(cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()
	evals, _, err := experiment.RunFeatures(ctx, data, cfg.Features, os.Stdout)
	if err != nil {
		return err
	}

	printEvaluations(evals)
	return recordEvaluations(ctx, cfg.Results, evals)
}

func init() {
	featuresCmd.Flags().Int("tasks", 20, "number of binary threshold tasks")

	rootCmd.AddCommand(featuresCmd)
}
