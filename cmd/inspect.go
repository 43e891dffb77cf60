package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/autoprice/dataset"
	"github.com/YuminosukeSato/autoprice/pkg/errors"
)

var inspectData string

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print the declared schema and missing-value census without training",
	RunE: func(cmd *cobra.Command, args []string) error {
		if inspectData != "" {
			cfg.DataPath = inspectData
		}
		if cfg.DataPath == "" {
			return errors.NewValidationError("data", "path to the automobile CSV is required (--data)", cfg.DataPath)
		}

		schema := dataset.AutomobileSchema()
		if cfg.Sentinel != "" {
			schema.Sentinel = cfg.Sentinel
		}

		t, err := dataset.LoadWithSchema(cfg.DataPath, schema)
		if err != nil {
			return err
		}

		fmt.Printf("%d rows, %d columns (sentinel %q)\n\n", t.NRows(), t.NCols(), schema.Sentinel)
		fmt.Printf("%-20s %-8s %s\n", "column", "kind", "missing")
		for _, cc := range t.MissingCensus() {
			kind, _ := schema.Kind(cc.Column)
			kindName := "string"
			if kind == dataset.KindNumeric {
				kindName = "numeric"
			}
			fmt.Printf("%-20s %-8s %d\n", cc.Column, kindName, cc.Count)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringVar(&inspectData, "data", "", "path to the header-less automobile CSV")
}
