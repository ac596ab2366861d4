package cli

import (
	"github.com/spf13/cobra"
)

var deleteParams []string

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete ENDPOINT [flags]",
	Short: "Delete a resource",
	Long: `Delete a resource.

Examples:
  # Move a product to the trash
  wcapi delete products/42

  # Delete permanently
  wcapi delete products/42 -q force=true`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	client, err := newAPIClient()
	if err != nil {
		return err
	}

	params, err := parseParams(deleteParams)
	if err != nil {
		return err
	}

	payload, err := client.Delete(cmd.Context(), args[0], params)
	if err != nil {
		return err
	}

	okLabel.Println("Deleted")
	return printPayload(payload)
}

func init() {
	deleteCmd.Flags().StringArrayVarP(&deleteParams, "param", "q", nil, "Query parameter in key=value form (repeatable)")
	rootCmd.AddCommand(deleteCmd)
}
