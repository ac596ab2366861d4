package cli

import (
	"github.com/spf13/cobra"
)

var (
	putFile string
	putSets []string
)

// putCmd represents the put command
var putCmd = &cobra.Command{
	Use:   "put ENDPOINT [flags]",
	Short: "Update a resource",
	Long: `Update a resource from a JSON file or --set flags.

Examples:
  # Update a product from a file
  wcapi put products/42 -f product.json

  # Change one field
  wcapi put products/42 --set regular_price=12.50`,
	Args: cobra.ExactArgs(1),
	RunE: runPut,
}

func runPut(cmd *cobra.Command, args []string) error {
	client, err := newAPIClient()
	if err != nil {
		return err
	}

	body, err := buildBody(putFile, putSets)
	if err != nil {
		return err
	}

	payload, err := client.Put(cmd.Context(), args[0], body)
	if err != nil {
		return err
	}
	return printPayload(payload)
}

func init() {
	putCmd.Flags().StringVarP(&putFile, "file", "f", "", "Path to a JSON file with the request body")
	putCmd.Flags().StringArrayVarP(&putSets, "set", "", nil, "Body field in key=value form (repeatable)")
	rootCmd.AddCommand(putCmd)
}
