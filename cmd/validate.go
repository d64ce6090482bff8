// =============================================================================
// Relatório de Visitas - Validate Command
// =============================================================================
//
// This file defines the 'validate' command, which checks drafts against the
// form rules without rendering anything. It is the dry run before 'render'.
//
// COMMAND USAGE:
//   relatorio validate [flags]
//
// OUTPUT:
//   One line per draft, plus the pending fields of each invalid draft with
//   the same messages the visit form shows.
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/coopvisita/relatorio-visitas/internal/pipeline"
	"github.com/coopvisita/relatorio-visitas/internal/validation"
	"github.com/coopvisita/relatorio-visitas/pkg/utils"
)

// validateCmd represents the 'validate' command.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate drafts without rendering reports",
	Long: `The validate command reads every draft in the drafts directory, attaches
its sidecar photos, and runs the form validation rules. Nothing is written
and nothing is archived.

Each invalid draft is listed with its pending fields, using the same
messages the visit form shows next to each field.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate()
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(
		&draftFile,
		"draft",
		"",
		"Path to a specific draft file to validate",
	)
}

// runValidate checks every discovered draft and prints its pending fields.
func runValidate() error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	fm := utils.NewFileManager(cfg.DraftsDir, cfg.OutputDir, cfg.ArchiveDir)
	drafts, err := discoverDrafts(fm)
	if err != nil {
		return err
	}

	if len(drafts) == 0 {
		fmt.Println("No draft files found in the drafts directory.")
		return nil
	}

	invalid := 0
	for _, path := range drafts {
		name := filepath.Base(path)

		d, err := pipeline.Load(path)
		if err != nil {
			invalid++
			fmt.Printf("  ✗ %s: %v\n", name, err)
			continue
		}

		violations := validation.ValidateAll(d)
		if len(violations) == 0 {
			fmt.Printf("  ✓ %s\n", name)
			continue
		}

		invalid++
		fmt.Printf("  ✗ %s: %d pending field(s)\n", name, len(violations))
		for _, v := range violations {
			fmt.Printf("      %s: %s\n", v.Field, v.Message)
		}
	}

	fmt.Printf("\n%d of %d draft(s) valid\n", len(drafts)-invalid, len(drafts))
	if invalid > 0 {
		return fmt.Errorf("%d draft(s) have pending fields", invalid)
	}
	return nil
}
