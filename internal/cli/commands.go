// Package cli implements the wcapi command line interface. It loads store
// credentials from a config file or environment, builds an API client, and
// maps the get/post/put/delete subcommands onto single API calls.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// CLIVersion is the version reported by the version command.
const CLIVersion = "0.1.0"

var (
	// Global flags
	jsonOutput bool
	configFile string
	verbose    bool
)

var ErrAlreadyHandled = errors.New("already handled")

var okLabel = color.New(color.FgGreen)
var errorLabel = color.New(color.FgRed)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "wcapi [command] [flags]",
	Short: "wcapi - a command line client for WooCommerce-style REST APIs",
	Long: `wcapi is a command line client for WooCommerce-style REST APIs.
It signs each request with the configured consumer credentials and prints
the decoded response.

Examples:
  # List products
  wcapi get products -q status=publish

  # Create a product
  wcapi post products --set name=Widget --set regular_price=9.90

  # Update a product from a file
  wcapi put products/42 -f product.json

  # Delete a product
  wcapi delete products/42 -q force=true`,
	PersistentPreRunE: preRunHandlePersistents,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "", "", "Path to configuration file to override default")
	rootCmd.PersistentFlags().BoolVarP(&jsonOutput, "json", "j", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log request lifecycle to stderr")

	rootCmd.AddCommand(newVersionCmd())
}

// preRunHandlePersistents loads configuration before any subcommand runs.
// The version command works without a config file.
func preRunHandlePersistents(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}
	return LoadConfig(configFile)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SilenceErrors = true // Prevent Cobra from printing the error
	rootCmd.SilenceUsage = true  // Prevent Cobra from printing usage on error

	err := rootCmd.Execute()
	if err != nil {
		if errors.Is(err, ErrAlreadyHandled) {
			os.Exit(1)
		}
		if jsonOutput {
			printJSON(map[string]string{"error": err.Error()})
		} else {
			errorLabel.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// newVersionCmd creates and returns a new version command
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of wcapi",
		Run: func(cmd *cobra.Command, args []string) {
			configPath, err := GetDefaultConfigPath()
			if err != nil {
				configPath = "unknown"
			}

			if jsonOutput {
				printJSON(map[string]string{
					"version":     CLIVersion,
					"config_file": configPath,
				})
			} else {
				cmd.Printf("wcapi %s\n", CLIVersion)
				cmd.Printf("Config file: %s\n", configPath)
			}
		},
	}
}

// newLogger returns the logger handed to the API client. Logging is off
// unless --verbose is set.
func newLogger() zerolog.Logger {
	if !verbose {
		return zerolog.Nop()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.DebugLevel)
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to render JSON: %v\n", err)
		return
	}
	fmt.Println(string(out))
}
