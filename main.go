// =============================================================================
// Relatório de Visitas - Main Entry Point
// =============================================================================
//
// This is the main entry point for the Relatório de Visitas CLI application.
// It initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   relatorio render        - Render PDF reports from drafts in the drafts directory
//   relatorio validate      - Validate drafts without rendering
//   relatorio export        - Export an XLSX summary of all drafts
//   relatorio version       - Display the application version
//
// ARCHITECTURE:
//   This application follows a modular design where:
//   - cmd/           : Contains all CLI command definitions (Cobra)
//   - internal/      : Contains core business logic (not for external import)
//   - pkg/           : Contains shared utilities
//
// =============================================================================

package main

import (
	"github.com/coopvisita/relatorio-visitas/cmd"
)

// main is the entry point of the application.
func main() {
	cmd.Execute()
}
