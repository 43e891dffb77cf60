package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/YuminosukeSato/autoprice/pkg/errors"
)

// configCmd prints the effective configuration after defaults, config file
// and flag overrides are layered, so a run can be reproduced exactly.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := yaml.Marshal(cfg)
		if err != nil {
			return errors.Wrap(err, "config: marshal")
		}
		fmt.Fprint(os.Stdout, string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
