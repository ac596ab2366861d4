package cli

import (
	"github.com/spf13/cobra"
)

var (
	postFile string
	postSets []string
)

// postCmd represents the post command
var postCmd = &cobra.Command{
	Use:   "post ENDPOINT [flags]",
	Short: "Create a resource",
	Long: `Create a resource from a JSON file or --set flags.

Examples:
  # Create a product from a file
  wcapi post products -f product.json

  # Create a product inline
  wcapi post products --set name=Widget --set regular_price=9.90`,
	Args: cobra.ExactArgs(1),
	RunE: runPost,
}

func runPost(cmd *cobra.Command, args []string) error {
	client, err := newAPIClient()
	if err != nil {
		return err
	}

	body, err := buildBody(postFile, postSets)
	if err != nil {
		return err
	}

	payload, err := client.Post(cmd.Context(), args[0], body)
	if err != nil {
		return err
	}
	return printPayload(payload)
}

func init() {
	postCmd.Flags().StringVarP(&postFile, "file", "f", "", "Path to a JSON file with the request body")
	postCmd.Flags().StringArrayVarP(&postSets, "set", "", nil, "Body field in key=value form (repeatable)")
	rootCmd.AddCommand(postCmd)
}
