package app

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/chainstamp/chainstamp/internal/hashing"
)

var hashCmd = &cobra.Command{
	Use:   "hash <json|->",
	Short: "Print the data hash of a JSON value, read from stdin when the argument is -",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw := []byte(args[0])
		if args[0] == "-" {
			var err error
			raw, err = io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
		}

		dataHash, err := hashing.HashData(json.RawMessage(raw))
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(cmd.OutOrStdout(), dataHash)
		return err
	},
}
