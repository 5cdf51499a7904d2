// =============================================================================
// Receipt Analyzer - Process Command
// =============================================================================
//
// This file defines the 'process' command, which runs the batch pipeline
// over the input directory.
//
// COMMAND USAGE:
//   receipts process [flags]
//
// FLAGS:
//   --input        : Input directory (overrides input_dir)
//   --output       : Directory for renamed copies (overrides output_dir)
//   --format       : Table format, csv or xlsx (overrides table_format)
//   --concurrency  : Documents read in parallel (overrides max_concurrency)
//   --dry-run      : Extract and report without writing anything
//   --fail-fast    : Stop at the first unreadable document
//
// =============================================================================

package cmd

import (
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/receipt-analyzer/internal/converter"
	"github.com/ginjaninja78/receipt-analyzer/internal/logger"
	"github.com/ginjaninja78/receipt-analyzer/internal/textsource"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	inputDir    string
	outputDir   string
	tableFormat string
	concurrency int
	dryRun      bool
	failFast    bool
)

// =============================================================================
// PROCESS COMMAND DEFINITION
// =============================================================================

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Extract every receipt in the input directory",
	Long: `The process command reads every receipt in the input directory and
extracts its purchase data.

On completion:
  - list_YYYYMMDD_hhmm.csv (or .xlsx) holds one row per receipt
  - Valid receipts are copied to the output directory under their new name
  - error_YYYYMMDD_hhmm.txt holds the text of each receipt with an ERROR
    field (only written when there is at least one)

Input documents are never modified. A document that cannot be read is
reported and skipped unless --fail-fast is given.`,

	Args: cobra.NoArgs,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess(cmd)
	},
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVar(&inputDir, "input", "", "Input directory (overrides input_dir)")
	processCmd.Flags().StringVar(&outputDir, "output", "", "Directory for renamed copies (overrides output_dir)")
	processCmd.Flags().StringVar(&tableFormat, "format", "", "Table format: csv or xlsx (overrides table_format)")
	processCmd.Flags().IntVar(&concurrency, "concurrency", 0, "Documents read in parallel (overrides max_concurrency)")
	processCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Extract and report without writing output files")
	processCmd.Flags().BoolVar(&failFast, "fail-fast", false, "Stop at the first document that cannot be read")
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runProcess applies the flag overrides and runs the pipeline.
func runProcess(cmd *cobra.Command) error {
	startTime := time.Now()
	cfg := mainConfig

	// =========================================================================
	// STEP 1: APPLY FLAG OVERRIDES
	// =========================================================================

	flags := cmd.Flags()
	if flags.Changed("input") {
		cfg.InputDir = inputDir
	}
	if flags.Changed("output") {
		cfg.OutputDir = outputDir
	}
	if flags.Changed("format") {
		cfg.TableFormat = tableFormat
	}
	if flags.Changed("concurrency") && concurrency > 0 {
		cfg.MaxConcurrency = concurrency
	}
	if flags.Changed("dry-run") {
		cfg.DryRun = dryRun
	}
	if flags.Changed("fail-fast") {
		cfg.FailFast = failFast
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	// =========================================================================
	// STEP 2: RUN THE PIPELINE
	// =========================================================================

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	conv := converter.New(cfg, textsource.FileSource{}, logger.FromContext(cmd.Context()))
	report, err := conv.Run(ctx)
	if err != nil {
		return err
	}

	// =========================================================================
	// STEP 3: PRINT SUMMARY
	// =========================================================================

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "=== Processing Complete ===")
	fmt.Fprintf(out, "Run ID:          %s\n", report.RunID)
	fmt.Fprintf(out, "Documents:       %d\n", report.Documents)
	fmt.Fprintf(out, "Records:         %d\n", len(report.Records))
	fmt.Fprintf(out, "With errors:     %d\n", report.Errored)
	fmt.Fprintf(out, "Renamed copies:  %d\n", report.Copied)
	fmt.Fprintf(out, "Failed:          %d\n", len(report.Failures))
	fmt.Fprintf(out, "Total spend:     %s円\n", report.TotalSpend.StringFixed(0))
	if report.TablePath != "" {
		fmt.Fprintf(out, "Table:           %s\n", report.TablePath)
	}
	if report.ErrorLogPath != "" {
		fmt.Fprintf(out, "Error log:       %s\n", report.ErrorLogPath)
	}
	fmt.Fprintf(out, "Time elapsed:    %s\n", time.Since(startTime).Round(time.Millisecond))

	for _, f := range report.Failures {
		fmt.Fprintf(out, "  ✗ %s: %v\n", filepath.Base(f.Path), f.Err)
	}

	return nil
}
