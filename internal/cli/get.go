package cli

import (
	"github.com/spf13/cobra"
)

var getParams []string

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get ENDPOINT [flags]",
	Short: "Retrieve a resource or collection",
	Long: `Retrieve a resource or collection from the store.

Examples:
  # List products
  wcapi get products

  # Get one order
  wcapi get orders/118

  # List published products, two per page
  wcapi get products -q status=publish -q per_page=2`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	client, err := newAPIClient()
	if err != nil {
		return err
	}

	params, err := parseParams(getParams)
	if err != nil {
		return err
	}

	payload, err := client.Get(cmd.Context(), args[0], params)
	if err != nil {
		return err
	}
	return printPayload(payload)
}

func init() {
	getCmd.Flags().StringArrayVarP(&getParams, "param", "q", nil, "Query parameter in key=value form (repeatable)")
	rootCmd.AddCommand(getCmd)
}
