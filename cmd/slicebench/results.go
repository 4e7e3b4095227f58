// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/slicebench/internal/results"
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "List and export recorded evaluations",
}

var resultsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded runs ranked by test RMSE",
	RunE:  runResultsList,
}

func runResultsList(cmd *cobra.Command, args []string) error {
	cfg := experimentConfig().Results

	store, err := results.NewStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := queryOptsFromFlags(cmd)
	records, err := store.List(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	fmt.Printf("%-4s  %-10s  %-22s  %-12s  %-12s  %s\n",
		"ID", "Stage", "Model", "Train RMSE", "Test RMSE", "Recorded")
	fmt.Println(strings.Repeat("-", 90))
	for _, r := range records {
		fmt.Printf("%-4d  %-10s  %-22s  %-12.4f  %-12.4f  %s\n",
			r.ID, r.Stage, r.Model, r.TrainRMSE, r.TestRMSE,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}
	fmt.Printf("\n%d runs\n", len(records))
	return nil
}

var resultsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export recorded runs to YAML or JSON",
	RunE:  runResultsExport,
}

func runResultsExport(cmd *cobra.Command, args []string) error {
	cfg := experimentConfig().Results
	format, _ := cmd.Flags().GetString("format")

	store, err := results.NewStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := queryOptsFromFlags(cmd)

	switch format {
	case "yaml", "":
		if err := store.ExportYAML(context.Background(), opts); err != nil {
			return err
		}
		fmt.Printf("Exported to %s/export.yaml\n", cfg.ResultsDir)
	case "json":
		if err := store.ExportJSON(context.Background(), opts); err != nil {
			return err
		}
		fmt.Printf("Exported to %s/export.json\n", cfg.ResultsDir)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	return nil
}

func queryOptsFromFlags(cmd *cobra.Command) results.QueryOptions {
	stage, _ := cmd.Flags().GetString("stage")
	limit, _ := cmd.Flags().GetInt("limit")
	return results.QueryOptions{Stage: stage, Limit: limit}
}

func init() {
	resultsListCmd.Flags().String("stage", "", "filter by stage name")
	resultsListCmd.Flags().Int("limit", 0, "maximum runs to list (0 = use default)")
	resultsListCmd.Flags().Bool("json", false, "output runs as JSON")

	resultsExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	resultsExportCmd.Flags().String("stage", "", "filter by stage name")
	resultsExportCmd.Flags().Int("limit", 0, "maximum runs to export (0 = all up to default)")

	resultsCmd.AddCommand(resultsListCmd)
	resultsCmd.AddCommand(resultsExportCmd)

	rootCmd.AddCommand(resultsCmd)
}
