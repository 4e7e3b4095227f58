// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/slicebench/internal/experiment"
	"github.com/pdiddy/slicebench/pkg/types"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run every experiment stage and print a comparison",
	Long: `Run prepares the dataset once, then executes the linear, features,
neural, tune, and boost stages in order against the same splits. All
evaluations are recorded and printed as one table sorted by test RMSE.`,
	RunE: runAll,
}

func runAll(cmd *cobra.Command, args []string) error {
	cfg := experimentConfig()

	data, err := prepareData(cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()
	var evals []types.Evaluation

	fmt.Println("\n--- linear ---")
	linearEvals, err := experiment.RunLinear(ctx, data, cfg.Linear, os.Stdout)
	if err != nil {
		return err
	}
	evals = append(evals, linearEvals...)

	fmt.Println("\n--- features ---")
	featureEvals, artifacts, err := experiment.RunFeatures(ctx, data, cfg.Features, os.Stdout)
	if err != nil {
		return err
	}
	evals = append(evals, featureEvals...)

	fmt.Println("\n--- neural ---")
	neuralEvals, err := experiment.RunNeural(ctx, data, cfg.Neural, artifacts, os.Stdout)
	if err != nil {
		return err
	}
	evals = append(evals, neuralEvals...)

	fmt.Println("\n--- tune ---")
	_, tuneEvals, err := experiment.RunTune(ctx, data, cfg.Neural, cfg.Tune, os.Stdout)
	if err != nil {
		return err
	}
	evals = append(evals, tuneEvals...)

	fmt.Println("\n--- boost ---")
	boostEvals, err := experiment.RunBoost(ctx, data, cfg.Boost, os.Stdout)
	if err != nil {
		return err
	}
	evals = append(evals, boostEvals...)

	printEvaluations(evals)
	return recordEvaluations(ctx, cfg.Results, evals)
}

func init() {
	rootCmd.AddCommand(runCmd)
}
