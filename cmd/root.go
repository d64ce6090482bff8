// =============================================================================
// Relatório de Visitas - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands (like 'render', 'validate') are
// attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (relatorio)
//   ├── renderCmd (relatorio render)
//   ├── validateCmd (relatorio validate)
//   ├── exportCmd (relatorio export)
//   └── versionCmd (relatorio version)
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
	"go.uber.org/zap"

	"github.com/coopvisita/relatorio-visitas/internal/config"
	"github.com/coopvisita/relatorio-visitas/internal/logging"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables verbose logging when set to true.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use: "relatorio",

	Short: "Relatório de Visitas - Generate Sicoob visit report PDFs from saved drafts",

	Long: `Relatório de Visitas is a CLI tool that turns saved visit-report drafts
into formatted PDF reports.

Drafts are JSON files produced by the visit form. Each draft may carry a
sidecar photo directory (<draft>_fotos/) with the facade, interior, stock,
and other photos taken during the visit.

Key Features:
  - Field validation with the same rules the visit form applies
  - PDF rendering with the Sicoob report layout
  - XLSX summary export for the back office
  - Concurrent processing of the drafts directory
  - Automatic archival of processed drafts

Example Usage:
  relatorio render                     # Render every draft in the drafts directory
  relatorio render --config ./my.yaml  # Use a custom configuration file
  relatorio validate                   # Validate drafts without rendering
  relatorio export                     # Write the XLSX summary workbook`,

	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand is provided, print the help message.
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init sets up the global flags.
func init() {
	// Persistent flags are available to this command and all subcommands.
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file (default is config.yaml)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// =============================================================================
// SHARED SETUP
// =============================================================================

// setup loads the configuration and builds the logger. Every subcommand that
// touches the pipeline starts here.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logging.New(cfg.LogLevel, verbose)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logging: %w", err)
	}

	return cfg, log, nil
}
