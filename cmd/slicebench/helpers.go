// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/pdiddy/slicebench/internal/experiment"
	"github.com/pdiddy/slicebench/internal/results"
	"github.com/pdiddy/slicebench/pkg/types"
)

// prepareData loads and prepares the dataset, printing status to stdout.
func prepareData(cfg types.ExperimentConfig) (*experiment.Data, error) {
	return experiment.Prepare(cfg.Dataset, os.Stdout)
}

// recordEvaluations appends evaluations to the results store.
func recordEvaluations(ctx context.Context, cfg types.ResultsConfig, evals []types.Evaluation) error {
	store, err := results.NewStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	for _, eval := range evals {
		id, err := store.Record(ctx, eval)
		if err != nil {
			return fmt.Errorf("recording %s/%s: %w", eval.Stage, eval.Model, err)
		}
		fmt.Printf("recorded run %d: %s/%s\n", id, eval.Stage, eval.Model)
	}
	return nil
}

// printEvaluations writes a comparison table sorted by test RMSE.
func printEvaluations(evals []types.Evaluation) {
	sorted := make([]types.Evaluation, len(evals))
	copy(sorted, evals)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].TestRMSE < sorted[j].TestRMSE
	})

	fmt.Printf("\n%-10s  %-22s  %-12s  %-12s\n", "Stage", "Model", "Train RMSE", "Test RMSE")
	fmt.Println(strings.Repeat("-", 62))
	for _, e := range sorted {
		fmt.Printf("%-10s  %-22s  %-12.4f  %-12.4f\n", e.Stage, e.Model, e.TrainRMSE, e.TestRMSE)
	}
}
