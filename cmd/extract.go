// =============================================================================
// Receipt Analyzer - Extract Command
// =============================================================================
//
// This file defines the 'extract' command, which shows what a single receipt
// yields without copying or writing anything.
//
// COMMAND USAGE:
//   receipts extract <file> [--text]
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/receipt-analyzer/internal/converter"
	"github.com/ginjaninja78/receipt-analyzer/internal/logger"
	"github.com/ginjaninja78/receipt-analyzer/internal/receipt"
	"github.com/ginjaninja78/receipt-analyzer/internal/textsource"
	"github.com/ginjaninja78/receipt-analyzer/internal/validation"
)

// showText prints the normalized document text before the fields.
var showText bool

var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Show the fields extracted from one receipt",
	Long: `The extract command reads one receipt and prints every table column,
the checks that failed, and the name the receipt would be copied under.

Use --text to also print the normalized text the fields were read from.`,

	Args: cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		conv := converter.New(mainConfig, textsource.FileSource{}, logger.FromContext(cmd.Context()))
		doc := conv.ProcessDocument(cmd.Context(), args[0])
		if doc.Err != nil {
			return doc.Err
		}

		out := cmd.OutOrStdout()
		if showText {
			fmt.Fprintln(out, "=== Text ===")
			fmt.Fprintln(out, doc.Text)
		}

		fmt.Fprintln(out, "=== Fields ===")
		row := doc.Result.Record.Row()
		for i, col := range receipt.Columns {
			fmt.Fprintf(out, "%-12s %s\n", col, row[i])
		}

		if len(doc.Issues) > 0 {
			fmt.Fprintf(out, "\n=== Issues (%d errors, %d warnings) ===\n",
				validation.CountBySeverity(doc.Issues, validation.SeverityError),
				validation.CountBySeverity(doc.Issues, validation.SeverityWarning))
			for _, issue := range doc.Issues {
				fmt.Fprintf(out, "  ✗ %v\n", issue)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().BoolVar(&showText, "text", false, "Print the normalized document text")
}
