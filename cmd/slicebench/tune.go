// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/slicebench/internal/experiment"
	"github.com/pdiddy/slicebench/pkg/types"
)

var tuneCmd = &cobra.Command{
	Use:   "tune",
	Short: "Tune the network's weight decay by Bayesian optimization",
	Long: `Tune searches log10 of the network's weight decay with a
Gaussian-process surrogate and a probability-of-improvement acquisition
rule. Each evaluation trains the network on a sub-split of the training
data and scores it on a held-out validation split; the best strength is
then retrained on the full training split and evaluated on the test set.`,
	RunE: runTune,
}

func runTune(cmd *cobra.Command, args []string) error {
	cfg := experimentConfig()
	if cmd.Flags().Changed("iterations") {
		cfg.Tune.Iterations, _ = cmd.Flags().GetInt("iterations")
	}
	if cmd.Flags().Changed("acquisition") {
		acq, _ := cmd.Flags().GetString("acquisition")
		cfg.Tune.Acquisition = types.AcquisitionKind(acq)
	}
	jsonOutput, _ := cmd.Flags().GetBool("json")

	data, err := prepareData(cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()
	result, evals, err := experiment.RunTune(ctx, data, cfg.Neural, cfg.Tune, os.Stdout)
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return err
		}
	} else {
		fmt.Printf("\nbest lambda %.4g (validation rmse %.4f, %d evaluations)\n",
			result.Best.Lambda, result.Best.RMSE, len(result.Trace))
	}

	printEvaluations(evals)
	return recordEvaluations(ctx, cfg.Results, evals)
}

func init() {
	tuneCmd.Flags().Int("iterations", 5, "surrogate-guided iterations")
	tuneCmd.Flags().String("acquisition", "pi", "acquisition rule: pi, ei, or lcb")
	tuneCmd.Flags().Bool("json", false, "output the tuning trace as JSON")

	rootCmd.AddCommand(tuneCmd)
}
