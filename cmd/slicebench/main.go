// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the slicebench CLI, a bench of
// regression experiments on the CT slice-localization dataset. Each
// experiment stage is a subcommand: dataset, linear, features, neural,
// tune, boost, and results; run executes the full comparison.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the slicebench CLI.
var rootCmd = &cobra.Command{
	Use:   "slicebench",
	Short: "Regression experiments on CT slice localization",
	Long: `slicebench compares regression techniques for predicting the relative
axial location of CT slices from histogram features: regularized linear
regression, logistic-derived features, a small neural network with
Bayesian-optimized weight decay, and gradient-boosted trees.

Each stage is a subcommand; run executes them all against the same
prepared dataset and prints a comparison. Evaluations are appended to a
local SQLite results store.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./slicebench.yaml or ~/.config/slicebench/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("slicebench")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "slicebench"))
		}
	}

	viper.SetEnvPrefix("SLICEBENCH")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
