// Package cmd wires the analysis pipeline to a cobra CLI.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/autoprice/internal/config"
	"github.com/YuminosukeSato/autoprice/pkg/log"
)

var (
	// Global flags (wired to config via initConfig)
	cfgFile  string
	logLevel string

	// Loaded configuration
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "autoprice",
	Short: "autoprice: KNN price regression over the automobile dataset",
	Long: `autoprice loads the 26-column automobile CSV, cleans it, renders
exploratory plots, fits a cross-validated k-nearest-neighbors price
regressor, and writes a markdown report with the results.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(initConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent global flags available to all subcommands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML, optional)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error (overrides config)")
}

func initConfig() {
	c, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	cfg = c

	if rootCmd.PersistentFlags().Changed("log-level") && logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if err := log.SetupLogger(cfg.LogLevel); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	log.SetupWarnSink()
}
