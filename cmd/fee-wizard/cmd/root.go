// Package cmd provides the CLI commands for fee-wizard.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fee-wizard/internal/config"
	"fee-wizard/internal/logging"
)

// Version is set at build time with -ldflags "-X fee-wizard/cmd/fee-wizard/cmd.Version=..."
var Version = "0.1.0"

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "fee-wizard",
	Short: "Guide users through the legal aid fee questionnaire",
	Long: `fee-wizard serves the fee calculation questionnaire as a JSON API.

It walks a user through law category, matter codes, case stage, location,
VAT and additional costs, then asks the fee API for the final fee.

Examples:
  fee-wizard serve --config fee-wizard.yaml
  fee-wizard catalog
  fee-wizard ask
  fee-wizard calculate answers.json --format markdown`,
	SilenceUsage: true,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file, .json or .yaml (default: built-in defaults)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	// Add subcommands
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(cfg)
	}

	// Initialize logging
	cfg := config.Get()
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "fee-wizard version %s\n", Version)
	},
}
