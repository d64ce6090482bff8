// =============================================================================
// Relatório de Visitas - Export Command
// =============================================================================
//
// This file defines the 'export' command, which writes the XLSX summary
// workbook the back office consumes: one row per draft with the member
// identification, visit metadata, and validation status.
//
// COMMAND USAGE:
//   relatorio export [flags]
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/coopvisita/relatorio-visitas/internal/export"
	"github.com/coopvisita/relatorio-visitas/internal/pipeline"
	"github.com/coopvisita/relatorio-visitas/internal/validation"
	"github.com/coopvisita/relatorio-visitas/pkg/utils"
)

// exportOut overrides the workbook output path.
var exportOut string

// exportCmd represents the 'export' command.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export an XLSX summary of all drafts",
	Long: `The export command reads every draft in the drafts directory and writes a
summary workbook with one row per draft: member identification, visit date,
relationship manager, bank and photo counts, and the validation status.

Drafts are not modified or archived; export can run at any time.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport()
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(
		&exportOut,
		"out",
		"",
		"Path for the workbook (default is the output directory)",
	)
}

// runExport builds the summary workbook from the drafts directory.
func runExport() error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	fm := utils.NewFileManager(cfg.DraftsDir, cfg.OutputDir, cfg.ArchiveDir)
	if err := fm.EnsureDirectories(); err != nil {
		return err
	}

	drafts, err := fm.DiscoverDrafts("")
	if err != nil {
		return err
	}

	if len(drafts) == 0 {
		fmt.Println("No draft files found in the drafts directory.")
		return nil
	}

	rows := make([]export.Row, 0, len(drafts))
	for _, path := range drafts {
		d, err := pipeline.Load(path)
		if err != nil {
			// A broken draft still gets a row so the back office sees it.
			fmt.Printf("  ✗ %s: %v\n", filepath.Base(path), err)
			rows = append(rows, export.Row{
				Source: filepath.Base(path),
				Violations: []validation.ValidationError{
					{Message: err.Error()},
				},
			})
			continue
		}

		rows = append(rows, export.Row{
			Source:     filepath.Base(path),
			Draft:      d,
			Violations: validation.ValidateAll(d),
		})
	}

	out := exportOut
	if out == "" {
		out = filepath.Join(cfg.OutputDir, export.SummaryFilename(time.Now()))
	}

	if err := export.Summary(rows, out); err != nil {
		return err
	}

	fmt.Printf("Wrote summary for %d draft(s) to %s\n", len(rows), out)
	return nil
}
