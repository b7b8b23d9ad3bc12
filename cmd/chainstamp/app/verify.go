package app

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/enescakir/emoji"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/chainstamp/chainstamp/pkg/api"
	"github.com/chainstamp/chainstamp/pkg/client"
)

var ErrNotVerified = errors.New("not all hashes are verified")

var verifyCmd = &cobra.Command{
	Use:   "verify <hash>...",
	Short: "Verify data hashes against a running chainstamp API",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		url, err := cmd.Flags().GetString("url")
		if err != nil {
			return err
		}
		apiKey, err := cmd.Flags().GetString("api-key")
		if err != nil {
			return err
		}

		c := client.New(url, client.WithAPIKey(apiKey), client.WithRetries(time.Second, 3))

		result, err := c.VerifyBatch(cmd.Context(), args)
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(cmd.OutOrStdout(), renderVerification(result))
		if err != nil {
			return err
		}

		if result.Summary.Verified != result.Summary.Total {
			return ErrNotVerified
		}

		return nil
	},
}

func init() {
	verifyCmd.Flags().String("url", "http://localhost:9090"+api.DefaultBasePath, "base url of the chainstamp API")
	verifyCmd.Flags().String("api-key", "", "API key sent in the "+api.APIKeyHeader+" header")
}

func renderVerification(result *api.BatchVerificationResult) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Data hash", "Verified", "Source", "Transaction", "Block"})

	for _, r := range result.Results {
		verified := emoji.CrossMark.String()
		if r.Verified {
			verified = emoji.CheckMarkButton.String()
		}

		block := ""
		if r.Block != nil {
			block = strconv.FormatUint(r.Block.Number, 10)
		}

		t.AppendRow(table.Row{r.DataHash, verified, r.Source, r.TransactionHash, block})
	}

	t.AppendFooter(table.Row{
		fmt.Sprintf("total %d", result.Summary.Total),
		fmt.Sprintf("verified %d", result.Summary.Verified),
		fmt.Sprintf("not found %d", result.Summary.NotFound),
		fmt.Sprintf("failed %d", result.Summary.Failed),
		"",
	})

	return t.Render()
}
