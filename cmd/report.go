package cmd

import (
	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/autoprice/pkg/errors"
	"github.com/YuminosukeSato/autoprice/report"
)

var (
	flagData      string
	flagOut       string
	flagThreshold float64
	flagSeed      uint64
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run the full analysis pipeline and write report.md plus plots",
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagData != "" {
			cfg.DataPath = flagData
		}
		if flagOut != "" {
			cfg.OutputDir = flagOut
		}
		if cmd.Flags().Changed("outlier-threshold") {
			cfg.OutlierPriceThreshold = flagThreshold
		}
		if cmd.Flags().Changed("seed") {
			cfg.Seed = flagSeed
		}

		if cfg.DataPath == "" {
			return errors.NewValidationError("data", "path to the automobile CSV is required (--data)", cfg.DataPath)
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		return report.Run(cfg)
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringVar(&flagData, "data", "", "path to the header-less automobile CSV")
	reportCmd.Flags().StringVar(&flagOut, "out", "", "output directory for report.md and plots")
	reportCmd.Flags().Float64Var(&flagThreshold, "outlier-threshold", 0, "price threshold for the outlier-filtered run (overrides config)")
	reportCmd.Flags().Uint64Var(&flagSeed, "seed", 0, "random seed for split and fold assignment (overrides config)")
}
