// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/slicebench/internal/dataset"
)

var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Acquire and inspect the slice-localization dataset",
}

var datasetFetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download the dataset CSV into the data directory",
	Long: `Fetch downloads the UCI slice-localization archive, unpacks the CSV
into the data directory, and skips the download when the file already
exists. The download is retried with backoff on transient failures.`,
	RunE: runDatasetFetch,
}

func runDatasetFetch(cmd *cobra.Command, args []string) error {
	cfg := experimentConfig().Dataset

	client := &http.Client{Timeout: cfg.Timeout}
	_, err := dataset.Fetch(context.Background(), client, cfg, os.Stdout)
	return err
}

var datasetInspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Load the dataset and report redundant columns",
	Long: `Inspect parses the CSV, reports constant and duplicate feature
columns, and prints the resulting table shape without training anything.`,
	RunE: runDatasetInspect,
}

func runDatasetInspect(cmd *cobra.Command, args []string) error {
	cfg := experimentConfig().Dataset

	table, err := dataset.Load(dataset.Path(cfg))
	if err != nil {
		return err
	}
	fmt.Printf("loaded %d rows, %d features\n", table.Rows(), table.Features())

	cleaned, report := dataset.Clean(table, os.Stdout)
	fmt.Printf("cleaned table: %d rows, %d features (%d columns dropped)\n",
		cleaned.Rows(), cleaned.Features(), report.Dropped())
	return nil
}

func init() {
	datasetCmd.AddCommand(datasetFetchCmd)
	datasetCmd.AddCommand(datasetInspectCmd)

	rootCmd.AddCommand(datasetCmd)
}
