// =============================================================================
// Receipt Analyzer - Main Entry Point
// =============================================================================
//
// USAGE:
//   receipts process       - Extract every receipt in the input directory
//   receipts extract FILE  - Show what one receipt yields
//   receipts version       - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Extraction, validation, table output, pipeline
//   - pkg/           : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/receipt-analyzer/cmd"
)

func main() {
	cmd.Execute()
}
