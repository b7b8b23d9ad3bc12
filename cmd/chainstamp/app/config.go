package app

import (
	"github.com/spf13/cobra"

	"github.com/chainstamp/chainstamp/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the chainstamp configuration",
}

var configDumpCmd = &cobra.Command{
	Use:   "dump <file>",
	Short: "Write the effective configuration to a yaml file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := cmd.Flags().GetString("config")
		if err != nil {
			return err
		}

		return config.DumpConfig(args[0], configDir)
	},
}

func init() {
	configDumpCmd.Flags().String("config", "", "path to the directory containing config.yaml")
	configCmd.AddCommand(configDumpCmd)
}
