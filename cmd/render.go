// =============================================================================
// Relatório de Visitas - Render Command
// =============================================================================
//
// This file defines the 'render' command, which is the main command for
// turning saved drafts into PDF reports. It orchestrates the processing
// pipeline over the drafts directory.
//
// COMMAND USAGE:
//   relatorio render [flags]
//
// FLAGS:
//   --draft   : Path to a specific draft file to render
//   --force   : Render even when validation finds pending fields
//
// PROCESSING PIPELINE:
//   1. Load the configuration
//   2. Discover draft files in the drafts directory
//   3. For each draft (concurrently):
//      a. Read and parse the draft JSON
//      b. Attach sidecar photos
//      c. Validate the draft
//      d. Render the PDF report
//   4. Archive processed drafts
//   5. Remove archives past the retention window
//   6. Print a summary
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/coopvisita/relatorio-visitas/internal/pipeline"
	"github.com/coopvisita/relatorio-visitas/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// draftFile is the path to a specific draft to render.
var draftFile string

// force renders drafts even when validation finds pending fields.
var force bool

// =============================================================================
// RENDER COMMAND DEFINITION
// =============================================================================

// renderCmd represents the 'render' command.
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render PDF reports from saved drafts",
	Long: `The render command scans the drafts directory for draft files, validates
each one, and renders it as a PDF report with the Sicoob layout.

Processing is done concurrently. Each draft is processed independently, and
errors in one draft do not affect the processing of others.

On successful processing:
  - The generated PDF is placed in the output directory
  - The draft and its photo directory are moved to the archive

On error:
  - The draft remains in the drafts directory
  - Processing continues for other drafts

A draft with pending required fields is not rendered unless --force is given.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runRender()
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the render command with the root command and sets up flags.
func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVar(
		&draftFile,
		"draft",
		"",
		"Path to a specific draft file to render",
	)

	renderCmd.Flags().BoolVar(
		&force,
		"force",
		false,
		"Render even when validation finds pending fields",
	)
}

// =============================================================================
// MAIN RENDER FUNCTION
// =============================================================================

// runRender orchestrates the rendering pipeline.
func runRender() error {
	startTime := time.Now()

	// =========================================================================
	// STEP 1: LOAD CONFIGURATION
	// =========================================================================

	fmt.Println("=== Relatório de Visitas ===")

	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	fm := utils.NewFileManager(cfg.DraftsDir, cfg.OutputDir, cfg.ArchiveDir)
	if err := fm.EnsureDirectories(); err != nil {
		return err
	}

	// =========================================================================
	// STEP 2: DISCOVER DRAFTS
	// =========================================================================

	drafts, err := discoverDrafts(fm)
	if err != nil {
		return err
	}

	if len(drafts) == 0 {
		fmt.Println("No draft files found in the drafts directory.")
		return nil
	}

	fmt.Printf("Found %d draft(s) to render\n", len(drafts))

	// =========================================================================
	// STEP 3: PROCESS DRAFTS CONCURRENTLY
	// =========================================================================

	var wg sync.WaitGroup
	results := make(chan pipeline.Result, len(drafts))

	for _, draft := range drafts {
		wg.Add(1)

		go func(path string) {
			defer wg.Done()
			proc := pipeline.New(path, cfg, force, log)
			results <- proc.Run()
		}(draft)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	// =========================================================================
	// STEP 4: COLLECT RESULTS
	// =========================================================================

	var successCount, errorCount int

	for result := range results {
		if result.Success {
			successCount++
			fmt.Printf("  ✓ %s -> %s\n", filepath.Base(result.DraftPath), result.OutputFile)
		} else {
			errorCount++
			fmt.Printf("  ✗ %s: %v\n", filepath.Base(result.DraftPath), result.Error)
		}
	}

	// =========================================================================
	// STEP 5: APPLY ARCHIVE RETENTION
	// =========================================================================

	if cfg.ArchiveRetentionDays > 0 {
		removed, err := fm.CleanOldArchives(cfg.ArchiveRetention())
		if err != nil {
			log.Warn("Failed to clean old archives", zap.Error(err))
		} else if removed > 0 {
			fmt.Printf("Removed %d expired archive file(s)\n", removed)
		}
	}

	// =========================================================================
	// STEP 6: PRINT SUMMARY
	// =========================================================================

	elapsed := time.Since(startTime)
	fmt.Println("\n=== Rendering Complete ===")
	fmt.Printf("Total drafts:    %d\n", len(drafts))
	fmt.Printf("Successful:      %d\n", successCount)
	fmt.Printf("Errors:          %d\n", errorCount)
	fmt.Printf("Time elapsed:    %s\n", elapsed)

	if errorCount > 0 {
		return fmt.Errorf("%d draft(s) failed", errorCount)
	}
	return nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// discoverDrafts returns the drafts to process, honoring the --draft flag.
func discoverDrafts(fm *utils.FileManager) ([]string, error) {
	if draftFile != "" {
		if !utils.FileExists(draftFile) {
			return nil, fmt.Errorf("draft file not found: %s", draftFile)
		}
		return []string{draftFile}, nil
	}
	return fm.DiscoverDrafts("")
}
