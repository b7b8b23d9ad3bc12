package app

import (
	"github.com/spf13/cobra"

	"github.com/chainstamp/chainstamp/internal/version"
)

var RootCmd = &cobra.Command{
	Use:           "chainstamp",
	Short:         "Timestamp data hashes on an EVM chain",
	Version:       version.Version + " (" + version.Commit + ")",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	RootCmd.AddCommand(serveCmd)
	RootCmd.AddCommand(hashCmd)
	RootCmd.AddCommand(verifyCmd)
	RootCmd.AddCommand(configCmd)
}

func Execute() error {
	return RootCmd.Execute()
}
