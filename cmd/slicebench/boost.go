// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/slicebench/internal/experiment"
)

var boostCmd = &cobra.Command{
	Use:   "boost",
	Short: "Fit the gradient-boosted-tree baseline",
	Long: `Boost fits shallow regression trees to residuals with shrinkage and
reports the ensemble's train and test RMSE as a baseline for the other
stages.`,
	RunE: runBoost,
}

func runBoost(cmd *cobra.Command, args []string) error {
	cfg := experimentConfig()
	if cmd.Flags().Changed("rounds") {
		cfg.Boost.Rounds, _ = cmd.Flags().GetInt("rounds")
	}
	if cmd.Flags().Changed("max-depth") {
		cfg.Boost.MaxDepth, _ = cmd.Flags().GetInt("max-depth")
	}

	data, err := prepareData(cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()
	evals, err := experiment.RunBoost(ctx, data, cfg.Boost, os.Stdout)
	if err != nil {
		return err
	}

	printEvaluations(evals)
	return recordEvaluations(ctx, cfg.Results, evals)
}

func init() {
	boostCmd.Flags().Int("rounds", 100, "number of boosting rounds")
	boostCmd.Flags().Int("max-depth", 3, "maximum tree depth")

	rootCmd.AddCommand(boostCmd)
}
