// =============================================================================
// Receipt Analyzer - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. All other commands
// are attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (receipts)
//   ├── processCmd (receipts process)
//   ├── extractCmd (receipts extract <file>)
//   └── versionCmd (receipts version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (--config, --verbose)
//   2. Loading the configuration file
//   3. Setting up logging
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/receipt-analyzer/internal/config"
	"github.com/ginjaninja78/receipt-analyzer/internal/logger"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// mainConfig is set by the root command before any subcommand runs.
var mainConfig *config.MainConfig

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "receipts",
	Short: "Receipt Analyzer - Catalog Yahoo! Shopping receipt PDFs",
	Long: `Receipt Analyzer reads the receipt PDFs issued by Yahoo! Shopping
(ヤフショ), extracts the purchase data of each one, and produces:

  - A table with one row per receipt, sorted by purchase date and order number
  - A copy of every valid receipt under a canonical, self-describing name
  - An error log with the text of every receipt that could not be fully read

Fields that cannot be extracted are shown as ERROR in the table. Such
receipts are not renamed.

Example Usage:
  receipts process                      # Process every PDF in the input directory
  receipts process --format xlsx        # Write the table as an Excel workbook
  receipts process --dry-run            # Extract and report without writing
  receipts extract ./input/receipt.pdf  # Show what one receipt yields`,

	SilenceUsage: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadMainConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load main config: %w", err)
		}
		mainConfig = cfg

		level := cfg.LogLevel
		if verbose {
			level = "debug"
		}
		cmd.SetContext(logger.WithContext(cmd.Context(), logger.New(level)))
		return nil
	},

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	// Persistent flags are available to this command and all subcommands.
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file; defaults apply when it is absent",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable debug logging",
	)
}
