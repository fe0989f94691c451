package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	sim "github.com/library-sim/library-sim/sim"
)

// validateCmd checks a configuration file without running it.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		if path == "" {
			return fmt.Errorf("--config is required")
		}
		if _, err := sim.LoadConfig(path); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "ok")
		return nil
	},
}

// defaultsCmd prints the built-in configuration as YAML.
var defaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Print the default configuration as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := marshalDefaults()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

// marshalDefaults renders DefaultConfig in the config file format.
func marshalDefaults() ([]byte, error) {
	data, err := yaml.Marshal(sim.DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("encoding defaults: %w", err)
	}
	return data, nil
}

func init() {
	validateCmd.Flags().String("config", "", "Path to a YAML configuration file")
}
