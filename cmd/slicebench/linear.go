// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/slicebench/internal/experiment"
)

var linearCmd = &cobra.Command{
	Use:   "linear",
	Short: "Fit regularized linear regression with two solvers",
	Long: `Linear fits ridge regression on the cleaned dataset with both a
direct normal-equations solve and full-batch gradient descent, then
compares their root-mean-square errors and coefficients.`,
	RunE: runLinear,
}

func runLinear(cmd *cobra.Command, args []string) error {
	cfg := experimentConfig()
	if cmd.Flags().Changed("lambda") {
		cfg.Linear.Lambda, _ = cmd.Flags().GetFloat64("lambda")
	}

	data, err := prepareData(cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()
	evals, err := experiment.RunLinear(ctx, data, cfg.Linear, os.Stdout)
	if err != nil {
		return err
	}

	printEvaluations(evals)
	return recordEvaluations(ctx, cfg.Results, evals)
}

func init() {
	linearCmd.Flags().Float64("lambda", 1.0, "ridge regularization strength")

	rootCmd.AddCommand(linearCmd)
}
