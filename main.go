// =============================================================================
// Statutes at Large Tools - Main Entry Point
// =============================================================================
//
// salaudit audits the PDF start pages recorded in a Statutes at Large index
// spreadsheet and publishes the audited records as an HTML fragment.
//
// USAGE:
//   salaudit run        - Audit (or resume), then generate HTML
//   salaudit generate   - Generate HTML from the audited workbook
//   salaudit validate   - Check the user config and mapping tables
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Audit, generation and workbook I/O
//   - pkg/           : Shared file utilities
//   - maps/          : Header, statute-type and generator mapping tables
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/loc-sal-tools/cmd"
)

func main() {
	cmd.Execute()
}
